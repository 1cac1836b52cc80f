package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTargetCategory(t *testing.T) {
	for c := TargetCategory(0); c < numTargetCategories; c++ {
		got, err := ParseTargetCategory(targetNames[c])
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseTargetCategory("everywhere")
	assert.Error(t, err)
}

func TestTargetTable_EveryCategoryHasCandidates(t *testing.T) {
	for c := TargetCategory(0); c < numTargetCategories; c++ {
		assert.NotEmpty(t, targetTable[c], c.String())
	}
}

func TestCandidateSlots(t *testing.T) {
	tests := []struct {
		category TargetCategory
		want     []Slot
	}{
		{TargetAdjacentAlly, []Slot{SlotAllyB}},
		{TargetAdjacentAllyOrSelf, []Slot{SlotAllyB, SlotAllyA}},
		{TargetAdjacentFoe, []Slot{SlotFoeA, SlotFoeB}},
		{TargetAny, []Slot{SlotAllyB, SlotFoeA, SlotFoeB}},
		{TargetNormal, []Slot{SlotAllyB, SlotFoeA, SlotFoeB}},
		{TargetUndeclared, []Slot{SlotAllyB, SlotFoeA, SlotFoeB}},
		{TargetAllAdjacentFoes, []Slot{SlotEmpty}},
		{TargetSelf, []Slot{SlotEmpty}},
		{TargetFoeSide, []Slot{SlotEmpty}},
	}
	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, candidateSlots(tt.category, SlotAllyA, SlotAllyB))
		})
	}
}
