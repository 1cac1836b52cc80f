package game

import (
	"fmt"
	"slices"

	"showdown-doubles/data"
)

// exemptType is the type that keeps a non-ghost-target move's normal targets.
const exemptType = "ghost"

// LegalTargets returns the Showdown targets mon may pick for move, in table
// order. dynamax is whether the order also starts dynamax. The result always
// holds at least one slot; SlotEmpty means "no target needed".
func (b *Battle) LegalTargets(move *Move, mon *Pokemon, dynamax bool) ([]Slot, error) {
	if move.IsSpecial() {
		return []Slot{SlotEmpty}, nil
	}

	actives, err := b.ActivePokemon()
	if err != nil {
		return nil, fmt.Errorf("legal targets: %w", err)
	}
	var self, ally Slot
	switch {
	case mon != nil && mon == actives.A && hasMove(b.availableMoves.A, move):
		self, ally = SlotAllyA, SlotAllyB
	case mon != nil && mon == actives.B && hasMove(b.availableMoves.B, move):
		self, ally = SlotAllyB, SlotAllyA
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnownedMove, move.ID)
	}

	var targets []Slot
	switch {
	case dynamax || mon.Dynamaxed:
		if move.Category() == data.CategoryStatus {
			targets = []Slot{SlotEmpty}
		} else {
			targets = []Slot{SlotFoeA, SlotFoeB}
		}
	case move.NonGhostTarget() && !mon.HasType(exemptType):
		return []Slot{SlotEmpty}, nil
	default:
		targets = candidateSlots(move.Target(), self, ally)
	}

	occupied, err := b.OccupiedSlots()
	if err != nil {
		return nil, err
	}
	occupied[SlotEmpty] = true
	kept := slices.DeleteFunc(targets, func(s Slot) bool { return !occupied[s] })
	if len(kept) == 0 {
		return []Slot{SlotEmpty}, nil
	}
	return kept, nil
}

func hasMove(moves []*Move, move *Move) bool {
	return slices.ContainsFunc(moves, func(m *Move) bool { return m.ID == move.ID })
}
