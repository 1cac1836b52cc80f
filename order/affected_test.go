package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showdown-doubles/game"
	"showdown-doubles/game/gametest"
	"showdown-doubles/order"
)

func TestAffectedTargets(t *testing.T) {
	req := gametest.Request(1)
	req.Active[0].Moves = gametest.Menu("thunderbolt", "protect")
	req.Active[1].Moves = gametest.Menu("heatwave", "acupressure", "earthquake", "tailwind")
	b := gametest.Battle(t, req)

	tests := []struct {
		name string
		slot int
		mo   order.MoveOrder
		want []game.Slot
	}{
		{"chosen target", 0, order.MoveOrder{Move: gametest.Move(t, b, 0, "thunderbolt"), Target: game.SlotFoeB}, []game.Slot{game.SlotFoeB}},
		{"self only", 0, order.MoveOrder{Move: gametest.Move(t, b, 0, "protect")}, nil},
		{"foe spread", 1, order.MoveOrder{Move: gametest.Move(t, b, 1, "heatwave")}, []game.Slot{game.SlotFoeA, game.SlotFoeB}},
		{"everyone adjacent", 1, order.MoveOrder{Move: gametest.Move(t, b, 1, "earthquake")}, []game.Slot{game.SlotAllyA, game.SlotFoeA, game.SlotFoeB}},
		{"ally side", 1, order.MoveOrder{Move: gametest.Move(t, b, 1, "tailwind")}, []game.Slot{game.SlotAllyA}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := order.AffectedTargets(b, tt.slot, tt.mo)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAffectedTargets_SkipsEmptySlots(t *testing.T) {
	req := gametest.Request(1)
	req.Active[1].Moves = gametest.Menu("heatwave")
	b := gametest.Battle(t, req)
	heatwave := gametest.Move(t, b, 1, "heatwave")
	require.NoError(t, b.ApplyFaint("p2a: Gengar"))

	got, err := order.AffectedTargets(b, 1, order.MoveOrder{Move: heatwave})
	require.NoError(t, err)
	assert.Equal(t, []game.Slot{game.SlotFoeB}, got)

	_, err = order.AffectedTargets(b, 1, order.MoveOrder{Move: heatwave, Target: game.SlotFoeA})
	assert.Error(t, err)
}
