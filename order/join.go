package order

import (
	"showdown-doubles/game"
)

// JoinOrders combines per-slot candidates into double orders. With both
// lists non-empty it keeps every compatible pair; with one list empty each
// candidate fills its own slot and the other is sent as default. If nothing
// survives, the result is a single all-default order.
func JoinOrders(first, second []Order) []DoubleOrder {
	var orders []DoubleOrder
	switch {
	case len(first) > 0 && len(second) > 0:
		for _, f := range first {
			for _, s := range second {
				if f == s || conflict(f, s) != ReasonNone {
					continue
				}
				orders = append(orders, DoubleOrder{First: f, Second: s})
			}
		}
	case len(first) > 0:
		for _, f := range first {
			orders = append(orders, DoubleOrder{First: f})
		}
	case len(second) > 0:
		for _, s := range second {
			orders = append(orders, DoubleOrder{Second: s})
		}
	}
	if len(orders) == 0 {
		return []DoubleOrder{{}}
	}
	return orders
}

// SlotOrders lists the candidate orders for slot i: every offered move with
// each allowed modifier at each legal target, then every allowed switch.
func SlotOrders(b *game.Battle, i int) ([]Order, error) {
	actives, err := b.ActivePokemon()
	if err != nil {
		return nil, err
	}
	force := b.ForceSwitch()
	if game.Any(force) {
		if !force.At(i) {
			return nil, nil
		}
		return switchOrders(b, i), nil
	}
	mon := actives.At(i)
	if mon == nil {
		return nil, nil
	}

	var orders []Order
	for _, m := range b.AvailableMoves().At(i) {
		variants := []MoveOrder{{Move: m}}
		if !m.IsSpecial() {
			if b.CanMegaEvolve().At(i) {
				variants = append(variants, MoveOrder{Move: m, Mega: true})
			}
			if b.CanZMove().At(i) {
				variants = append(variants, MoveOrder{Move: m, ZMove: true})
			}
			if b.CanDynamax().At(i) && !mon.Dynamaxed {
				variants = append(variants, MoveOrder{Move: m, Dynamax: true})
			}
		}
		for _, v := range variants {
			targets, err := b.LegalTargets(m, mon, v.Dynamax)
			if err != nil {
				return nil, err
			}
			for _, t := range targets {
				v.Target = t
				orders = append(orders, v)
			}
		}
	}
	return append(orders, switchOrders(b, i)...), nil
}

func switchOrders(b *game.Battle, i int) []Order {
	if b.Trapped().At(i) {
		return nil
	}
	var orders []Order
	for _, p := range b.AvailableSwitches().At(i) {
		orders = append(orders, SwitchOrder{Pokemon: p})
	}
	return orders
}

// ValidOrders enumerates every double order Validate accepts for the current
// request.
func ValidOrders(b *game.Battle) ([]DoubleOrder, error) {
	first, err := SlotOrders(b, 0)
	if err != nil {
		return nil, err
	}
	second, err := SlotOrders(b, 1)
	if err != nil {
		return nil, err
	}
	var valid []DoubleOrder
	for _, d := range JoinOrders(first, second) {
		r, err := Validate(b, d)
		if err != nil {
			return nil, err
		}
		if r.Valid() {
			valid = append(valid, d)
		}
	}
	return valid, nil
}
