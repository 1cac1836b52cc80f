package game

import "fmt"

// TargetCategory is the declared target of a move. The zero value means the
// dex declared none.
type TargetCategory int

const (
	TargetUndeclared TargetCategory = iota
	TargetAdjacentAlly
	TargetAdjacentAllyOrSelf
	TargetAdjacentFoe
	TargetAll
	TargetAllAdjacent
	TargetAllAdjacentFoes
	TargetAllies
	TargetAllySide
	TargetAllyTeam
	TargetAny
	TargetFoeSide
	TargetNormal
	TargetRandomNormal
	TargetScripted
	TargetSelf
	TargetNone

	numTargetCategories
)

var targetNames = [numTargetCategories]string{
	TargetUndeclared:         "",
	TargetAdjacentAlly:       "adjacentAlly",
	TargetAdjacentAllyOrSelf: "adjacentAllyOrSelf",
	TargetAdjacentFoe:        "adjacentFoe",
	TargetAll:                "all",
	TargetAllAdjacent:        "allAdjacent",
	TargetAllAdjacentFoes:    "allAdjacentFoes",
	TargetAllies:             "allies",
	TargetAllySide:           "allySide",
	TargetAllyTeam:           "allyTeam",
	TargetAny:                "any",
	TargetFoeSide:            "foeSide",
	TargetNormal:             "normal",
	TargetRandomNormal:       "randomNormal",
	TargetScripted:           "scripted",
	TargetSelf:               "self",
	TargetNone:               "none",
}

// ParseTargetCategory maps a dex target string to its category. An empty
// string is TargetUndeclared; anything unrecognized is an error.
func ParseTargetCategory(s string) (TargetCategory, error) {
	for c, name := range targetNames {
		if name == s {
			return TargetCategory(c), nil
		}
	}
	return TargetUndeclared, fmt.Errorf("unknown move target %q", s)
}

func (c TargetCategory) String() string {
	if c < 0 || c >= numTargetCategories {
		return fmt.Sprintf("target(%d)", int(c))
	}
	if c == TargetUndeclared {
		return "undeclared"
	}
	return targetNames[c]
}

// relTarget is a target position relative to the acting slot.
type relTarget int

const (
	relEmpty relTarget = iota
	relSelf
	relAlly
	relFoeA
	relFoeB
)

// targetTable is compiled once and only read afterwards.
var targetTable = compileTargetTable()

func compileTargetTable() [numTargetCategories][]relTarget {
	var table [numTargetCategories][]relTarget
	for c := TargetCategory(0); c < numTargetCategories; c++ {
		table[c] = relTargetsFor(c)
	}
	return table
}

func relTargetsFor(c TargetCategory) []relTarget {
	switch c {
	case TargetAdjacentAlly:
		return []relTarget{relAlly}
	case TargetAdjacentAllyOrSelf:
		return []relTarget{relAlly, relSelf}
	case TargetAdjacentFoe:
		return []relTarget{relFoeA, relFoeB}
	case TargetAny, TargetNormal, TargetUndeclared:
		return []relTarget{relAlly, relFoeA, relFoeB}
	case TargetAll, TargetAllAdjacent, TargetAllAdjacentFoes, TargetAllies,
		TargetAllySide, TargetAllyTeam, TargetFoeSide, TargetRandomNormal,
		TargetScripted, TargetSelf, TargetNone:
		return []relTarget{relEmpty}
	}
	panic(fmt.Sprintf("no target rule for category %d", int(c)))
}

// candidateSlots resolves the category for a user standing in self with its
// partner in ally.
func candidateSlots(c TargetCategory, self, ally Slot) []Slot {
	rel := targetTable[c]
	slots := make([]Slot, 0, len(rel))
	for _, r := range rel {
		switch r {
		case relSelf:
			slots = append(slots, self)
		case relAlly:
			slots = append(slots, ally)
		case relFoeA:
			slots = append(slots, SlotFoeA)
		case relFoeB:
			slots = append(slots, SlotFoeB)
		default:
			slots = append(slots, SlotEmpty)
		}
	}
	return slots
}
