package order

import (
	"slices"

	"showdown-doubles/game"
)

// Validate checks o against the current request and board. Move and switch
// orders are checked as the first half of a DoubleOrder. The error is only
// set when the battle has no player role yet.
func Validate(b *game.Battle, o Order) (Reason, error) {
	switch v := o.(type) {
	case DefaultOrder, ForfeitOrder:
		return ReasonNone, nil
	case DoubleOrder:
		return validateDouble(b, v)
	case nil:
		return validateDouble(b, DoubleOrder{})
	default:
		return validateDouble(b, DoubleOrder{First: v})
	}
}

func validateDouble(b *game.Battle, d DoubleOrder) (Reason, error) {
	actives, err := b.ActivePokemon()
	if err != nil {
		return ReasonNone, err
	}
	occupied, err := b.OccupiedSlots()
	if err != nil {
		return ReasonNone, err
	}
	orders := game.Pair[Order]{A: d.First, B: d.Second}
	force := b.ForceSwitch()

	for i := range 2 {
		switch orders.At(i).(type) {
		case nil, MoveOrder, SwitchOrder:
		default:
			return ReasonNotSlotOrder, nil
		}
	}

	// A forced switch request only wants orders for the slots being refilled.
	for i := range 2 {
		expected := actives.At(i) != nil
		if game.Any(force) {
			expected = force.At(i)
		}
		switch present := orders.At(i) != nil; {
		case expected && !present:
			return ReasonMissingOrder, nil
		case !expected && present:
			return ReasonUnexpectedOrder, nil
		}
	}

	for i := range 2 {
		mo, ok := orders.At(i).(MoveOrder)
		if !ok {
			continue
		}
		if !offered(b.AvailableMoves().At(i), mo.Move) {
			return ReasonMoveUnavailable, nil
		}
	}

	for i := range 2 {
		mo, ok := orders.At(i).(MoveOrder)
		if !ok {
			continue
		}
		if r := checkModifiers(b, i, actives.At(i), mo); r != ReasonNone {
			return r, nil
		}
	}

	if game.Any(force) {
		for i := range 2 {
			if !force.At(i) {
				continue
			}
			if _, ok := orders.At(i).(SwitchOrder); !ok {
				return ReasonForcedSwitch, nil
			}
		}
	}

	_, firstMove := orders.A.(MoveOrder)
	_, secondMove := orders.B.(MoveOrder)
	if firstMove && secondMove && (actives.A == nil || actives.B == nil) {
		return ReasonTwoMovesOneActive, nil
	}

	if r := conflict(orders.A, orders.B); r != ReasonNone {
		return r, nil
	}

	for i := range 2 {
		if so, ok := orders.At(i).(SwitchOrder); ok {
			if r := checkSwitch(b, i, so); r != ReasonNone {
				return r, nil
			}
		}
	}

	for i := range 2 {
		if mo, ok := orders.At(i).(MoveOrder); ok && mo.Target != game.SlotEmpty && !occupied[mo.Target] {
			return ReasonTargetMissing, nil
		}
	}

	for i := range 2 {
		if mo, ok := orders.At(i).(MoveOrder); ok {
			if r := checkDynamaxTarget(actives.At(i), mo); r != ReasonNone {
				return r, nil
			}
		}
	}
	return ReasonNone, nil
}

func offered(menu []*game.Move, m *game.Move) bool {
	if m == nil {
		return false
	}
	return slices.ContainsFunc(menu, func(x *game.Move) bool { return x.ID == m.ID })
}

func checkModifiers(b *game.Battle, i int, actor *game.Pokemon, mo MoveOrder) Reason {
	switch {
	case mo.Dynamax && !b.CanDynamax().At(i):
		return ReasonCannotDynamax
	case mo.Dynamax && actor != nil && actor.Dynamaxed:
		return ReasonAlreadyDynamaxed
	case mo.Mega && !b.CanMegaEvolve().At(i):
		return ReasonCannotMegaEvolve
	case mo.ZMove && !b.CanZMove().At(i):
		return ReasonCannotZMove
	}
	return ReasonNone
}

// conflict reports pairings no turn can hold: one mega, one z-move and one
// dynamax per side, and a bench pokemon can only come in once.
func conflict(a, b Order) Reason {
	if ma, ok := a.(MoveOrder); ok {
		if mb, ok := b.(MoveOrder); ok {
			switch {
			case ma.Mega && mb.Mega:
				return ReasonDoubleMega
			case ma.ZMove && mb.ZMove:
				return ReasonDoubleZMove
			case ma.Dynamax && mb.Dynamax:
				return ReasonDoubleDynamax
			}
		}
	}
	if sa, ok := a.(SwitchOrder); ok {
		if sb, ok := b.(SwitchOrder); ok && sa.Pokemon == sb.Pokemon {
			return ReasonSameSwitch
		}
	}
	return ReasonNone
}

func checkSwitch(b *game.Battle, i int, so SwitchOrder) Reason {
	if b.Trapped().At(i) {
		return ReasonTrapped
	}
	if so.Pokemon == nil || !slices.Contains(b.AvailableSwitches().At(i), so.Pokemon) {
		return ReasonSwitchUnavailable
	}
	return ReasonNone
}

// checkDynamaxTarget applies when the move is dynamaxed or the user already
// is.
func checkDynamaxTarget(actor *game.Pokemon, mo MoveOrder) Reason {
	if !mo.Dynamax && (actor == nil || !actor.Dynamaxed) {
		return ReasonNone
	}
	if mo.Target.IsAlly() {
		return ReasonDynamaxAllyTarget
	}
	if mo.Move.Damaging() && !mo.Target.IsFoe() {
		return ReasonDynamaxNeedsTarget
	}
	return ReasonNone
}
