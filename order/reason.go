package order

import "fmt"

// Reason says why an order was rejected. ReasonNone means it is legal.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNotSlotOrder
	ReasonMissingOrder
	ReasonUnexpectedOrder
	ReasonMoveUnavailable
	ReasonCannotDynamax
	ReasonAlreadyDynamaxed
	ReasonCannotMegaEvolve
	ReasonCannotZMove
	ReasonForcedSwitch
	ReasonTwoMovesOneActive
	ReasonDoubleMega
	ReasonDoubleZMove
	ReasonDoubleDynamax
	ReasonSameSwitch
	ReasonSameOrder
	ReasonTrapped
	ReasonSwitchUnavailable
	ReasonTargetMissing
	ReasonDynamaxAllyTarget
	ReasonDynamaxNeedsTarget
)

var reasonText = map[Reason]string{
	ReasonNone:               "valid",
	ReasonNotSlotOrder:       "only move and switch orders can fill a slot",
	ReasonMissingOrder:       "a pokemon that has to act has no order",
	ReasonUnexpectedOrder:    "an order was given for a slot that does not act",
	ReasonMoveUnavailable:    "move is not available to that pokemon",
	ReasonCannotDynamax:      "pokemon cannot dynamax",
	ReasonAlreadyDynamaxed:   "pokemon is already dynamaxed",
	ReasonCannotMegaEvolve:   "pokemon cannot mega evolve",
	ReasonCannotZMove:        "pokemon cannot use a z-move",
	ReasonForcedSwitch:       "forced switches were not answered with switches",
	ReasonTwoMovesOneActive:  "two moves requested with only one active pokemon",
	ReasonDoubleMega:         "two mega evolutions requested",
	ReasonDoubleZMove:        "two z-moves requested",
	ReasonDoubleDynamax:      "two dynamaxes requested",
	ReasonSameSwitch:         "both slots switch to the same pokemon",
	ReasonSameOrder:          "both slots give the same order",
	ReasonTrapped:            "trapped pokemon cannot switch",
	ReasonSwitchUnavailable:  "switch target is not available",
	ReasonTargetMissing:      "target slot is empty",
	ReasonDynamaxAllyTarget:  "dynamaxed pokemon cannot target its own side",
	ReasonDynamaxNeedsTarget: "dynamaxed damaging move needs a foe target",
}

func (r Reason) String() string {
	if s, ok := reasonText[r]; ok {
		return s
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

func (r Reason) Valid() bool { return r == ReasonNone }
