package order

import (
	"fmt"

	"showdown-doubles/game"
)

// AffectedTargets lists the occupied slots a move order from slot i would
// hit. A chosen target is returned as is. Spread moves return every live
// pokemon they reach; moves that hit only the user return nothing.
func AffectedTargets(b *game.Battle, i int, mo MoveOrder) ([]game.Slot, error) {
	occupied, err := b.OccupiedSlots()
	if err != nil {
		return nil, err
	}
	if mo.Target != game.SlotEmpty {
		if !occupied[mo.Target] {
			return nil, fmt.Errorf("%s targets empty slot %s", mo.Move.ID, mo.Target)
		}
		return []game.Slot{mo.Target}, nil
	}

	self := game.SlotAt(i, false)
	var candidates []game.Slot
	switch mo.Move.Target() {
	case game.TargetAllAdjacent:
		candidates = []game.Slot{game.SlotAllyA, game.SlotAllyB, game.SlotFoeA, game.SlotFoeB}
	case game.TargetAllAdjacentFoes, game.TargetFoeSide:
		candidates = []game.Slot{game.SlotFoeA, game.SlotFoeB}
	case game.TargetAllies, game.TargetAllySide, game.TargetAllyTeam:
		candidates = []game.Slot{game.SlotAllyA, game.SlotAllyB}
	default:
		return nil, nil
	}

	var affected []game.Slot
	for _, s := range candidates {
		if s != self && occupied[s] {
			affected = append(affected, s)
		}
	}
	return affected, nil
}
