// Package order builds, checks and serializes the choices sent for a
// doubles turn.
package order

import (
	"fmt"
	"strings"

	"showdown-doubles/game"
)

const defaultMessage = "/choose default"

// Order is one of MoveOrder, SwitchOrder, DefaultOrder, ForfeitOrder or
// DoubleOrder. Message renders the command sent to the server.
type Order interface {
	Message() string
	isOrder()
}

// MoveOrder uses a move, optionally with one modifier, at Target.
type MoveOrder struct {
	Move    *game.Move
	Mega    bool
	ZMove   bool
	Dynamax bool
	Target  game.Slot
}

// SwitchOrder sends Pokemon in from the bench.
type SwitchOrder struct {
	Pokemon *game.Pokemon
}

// DefaultOrder lets the server pick.
type DefaultOrder struct{}

type ForfeitOrder struct{}

// DoubleOrder pairs the orders for slot A and slot B. A nil side is sent as
// "default".
type DoubleOrder struct {
	First  Order
	Second Order
}

func (MoveOrder) isOrder()    {}
func (SwitchOrder) isOrder()  {}
func (DefaultOrder) isOrder() {}
func (ForfeitOrder) isOrder() {}
func (DoubleOrder) isOrder()  {}

func (o MoveOrder) Message() string {
	if o.Move == nil {
		return "/choose move <nil move>"
	}
	if o.Move.ID == "recharge" {
		return "/choose move 1"
	}
	var sb strings.Builder
	sb.WriteString("/choose move ")
	sb.WriteString(o.Move.ID)
	switch {
	case o.Mega:
		sb.WriteString(" mega")
	case o.ZMove:
		sb.WriteString(" zmove")
	case o.Dynamax:
		sb.WriteString(" dynamax")
	}
	if o.Target != game.SlotEmpty {
		fmt.Fprintf(&sb, " %d", o.Target.Position())
	}
	return sb.String()
}

func (o SwitchOrder) Message() string {
	if o.Pokemon == nil {
		return "/choose switch <nil pokemon>"
	}
	return "/choose switch " + o.Pokemon.Species
}

func (DefaultOrder) Message() string { return defaultMessage }

func (ForfeitOrder) Message() string { return "/forfeit" }

func (d DoubleOrder) Message() string {
	if d.First == nil && d.Second == nil {
		return defaultMessage
	}
	first := defaultMessage
	if d.First != nil {
		first = d.First.Message()
	}
	second := "default"
	if d.Second != nil {
		second = strings.TrimPrefix(d.Second.Message(), "/choose ")
	}
	return first + ", " + second
}

func (d DoubleOrder) String() string {
	return fmt.Sprintf("%q", d.Message())
}

// At returns the order for slot i.
func (d DoubleOrder) At(i int) Order {
	if i == 0 {
		return d.First
	}
	return d.Second
}
