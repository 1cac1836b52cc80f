package game

import "fmt"

// Slot is one of the four doubles positions, valued as its Showdown target
// integer. SlotEmpty means "no target".
type Slot int

const (
	SlotAllyB Slot = -2
	SlotAllyA Slot = -1
	SlotEmpty Slot = 0
	SlotFoeA  Slot = 1
	SlotFoeB  Slot = 2
)

// Slots lists every non-empty slot in wire order.
var Slots = [4]Slot{SlotAllyA, SlotAllyB, SlotFoeA, SlotFoeB}

// SlotFromPosition maps a Showdown target integer back to a Slot.
func SlotFromPosition(pos int) (Slot, error) {
	if pos < -2 || pos > 2 {
		return SlotEmpty, fmt.Errorf("invalid showdown target %d", pos)
	}
	return Slot(pos), nil
}

// SlotAt returns the slot for active index i (0 = A, 1 = B) on either side.
func SlotAt(i int, opponent bool) Slot {
	s := Slot(i + 1)
	if !opponent {
		s = -s
	}
	return s
}

func (s Slot) Position() int { return int(s) }

func (s Slot) IsAlly() bool { return s < 0 }

func (s Slot) IsFoe() bool { return s > 0 }

// Index is 0 for the A slots, 1 for the B slots and -1 for SlotEmpty.
func (s Slot) Index() int {
	switch s {
	case SlotAllyA, SlotFoeA:
		return 0
	case SlotAllyB, SlotFoeB:
		return 1
	}
	return -1
}

func (s Slot) String() string {
	switch s {
	case SlotAllyA:
		return "ally-a"
	case SlotAllyB:
		return "ally-b"
	case SlotFoeA:
		return "foe-a"
	case SlotFoeB:
		return "foe-b"
	case SlotEmpty:
		return "empty"
	}
	return fmt.Sprintf("slot(%d)", int(s))
}

// Pair holds one value per ally slot. A is always index 0.
type Pair[T any] struct {
	A T
	B T
}

// PairOf returns a pair with both slots set to v.
func PairOf[T any](v T) Pair[T] {
	return Pair[T]{A: v, B: v}
}

func (p Pair[T]) At(i int) T {
	if i == 0 {
		return p.A
	}
	return p.B
}

func (p *Pair[T]) Set(i int, v T) {
	if i == 0 {
		p.A = v
		return
	}
	p.B = v
}

func Any(p Pair[bool]) bool { return p.A || p.B }

func All(p Pair[bool]) bool { return p.A && p.B }
