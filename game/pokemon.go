package game

import (
	"fmt"
	"strconv"
	"strings"

	"showdown-doubles/data"
)

// Dex is the read-only species and move lookup the battle core relies on.
type Dex interface {
	PokemonTypes(species string) []string
	Move(name string) (data.MoveData, bool)
}

type emptyDex struct{}

func (emptyDex) PokemonTypes(string) []string { return nil }

func (emptyDex) Move(string) (data.MoveData, bool) { return data.MoveData{}, false }

// specialMoves never take a target and are not part of a move set.
var specialMoves = map[string]bool{
	"recharge": true,
	"struggle": true,
}

type Move struct {
	ID     string
	info   data.MoveData
	target TargetCategory
}

// NewMove builds a move from the dex. Unknown moves get an undeclared target
// and no category; a dex entry with an unknown target string is an error.
func NewMove(id string, dex Dex) (*Move, error) {
	id = data.ToID(id)
	m := &Move{ID: id, info: data.MoveData{ID: id, Name: id}}
	if specialMoves[id] {
		return m, nil
	}
	info, ok := dex.Move(id)
	if !ok {
		return m, nil
	}
	target, err := ParseTargetCategory(info.Target)
	if err != nil {
		return nil, fmt.Errorf("move %s: %w", id, err)
	}
	m.info = info
	m.target = target
	return m, nil
}

func (m *Move) Name() string { return m.info.Name }

func (m *Move) Category() string { return m.info.Category }

func (m *Move) Target() TargetCategory { return m.target }

func (m *Move) NonGhostTarget() bool { return m.info.NonGhostTarget }

func (m *Move) Damaging() bool { return m.info.Damaging() }

func (m *Move) IsSpecial() bool { return specialMoves[m.ID] }

type Pokemon struct {
	Ident     string
	Name      string
	Species   string
	Level     int
	Types     []string
	HP        int
	MaxHP     int
	Status    string
	Item      string
	Ability   string
	Fainted   bool
	Active    bool
	Dynamaxed bool
	Boosts    map[string]int

	moves   map[string]*Move
	moveIDs []string
}

func newPokemon(ident, details string, dex Dex) *Pokemon {
	p := &Pokemon{
		Ident:  ident,
		Level:  100,
		Boosts: make(map[string]int),
		moves:  make(map[string]*Move),
	}
	if _, name, ok := strings.Cut(ident, ": "); ok {
		p.Name = name
	}
	p.Species = data.ToID(p.Name)
	p.applyDetails(details, dex)
	return p
}

// applyDetails reads "Species, L50, M, shiny" style details.
func (p *Pokemon) applyDetails(details string, dex Dex) {
	if details != "" {
		parts := strings.Split(details, ", ")
		p.Species = data.ToID(parts[0])
		for _, part := range parts[1:] {
			if strings.HasPrefix(part, "L") {
				if lvl, err := strconv.Atoi(part[1:]); err == nil {
					p.Level = lvl
				}
			}
		}
	}
	if types := dex.PokemonTypes(p.Species); types != nil {
		p.Types = types
	}
}

// SetHPStatus parses conditions such as "75/100 par", "100/100" or "0 fnt".
func (p *Pokemon) SetHPStatus(hpStatus string) {
	fields := strings.Fields(hpStatus)
	if len(fields) == 0 {
		return
	}
	hp, maxHP, found := strings.Cut(fields[0], "/")
	if v, err := strconv.Atoi(hp); err == nil {
		p.HP = v
	}
	if found {
		if v, err := strconv.Atoi(maxHP); err == nil {
			p.MaxHP = v
		}
	}
	p.Status = ""
	if len(fields) > 1 {
		if fields[1] == "fnt" {
			p.Faint()
			return
		}
		p.Status = fields[1]
	}
	if p.HP > 0 {
		p.Fainted = false
	}
}

func (p *Pokemon) SwitchIn() {
	p.Active = true
}

// SwitchOut clears everything that does not survive leaving the field.
func (p *Pokemon) SwitchOut() {
	p.Active = false
	p.Dynamaxed = false
	clear(p.Boosts)
}

func (p *Pokemon) Faint() {
	p.HP = 0
	p.Fainted = true
	p.Status = "fnt"
	p.Dynamaxed = false
}

func (p *Pokemon) HasType(t string) bool {
	t = strings.ToLower(t)
	for _, own := range p.Types {
		if own == t {
			return true
		}
	}
	return false
}

// Moves returns the known move set in discovery order.
func (p *Pokemon) Moves() []*Move {
	moves := make([]*Move, 0, len(p.moveIDs))
	for _, id := range p.moveIDs {
		moves = append(moves, p.moves[id])
	}
	return moves
}

// LearnMove returns the move with the given id, adding it to the move set
// the first time it is seen.
func (p *Pokemon) LearnMove(id string, dex Dex) (*Move, error) {
	id = data.ToID(id)
	if m, ok := p.moves[id]; ok {
		return m, nil
	}
	m, err := NewMove(id, dex)
	if err != nil {
		return nil, err
	}
	p.moves[id] = m
	p.moveIDs = append(p.moveIDs, id)
	return m, nil
}

func (p *Pokemon) updateFromRequest(entry RequestPokemon, dex Dex) error {
	if entry.Details != "" {
		p.applyDetails(entry.Details, dex)
	}
	p.SetHPStatus(entry.Condition)
	p.Active = entry.Active
	if entry.Item != "" {
		p.Item = entry.Item
	}
	if entry.Ability != "" {
		p.Ability = entry.Ability
	} else if entry.BaseAbility != "" {
		p.Ability = entry.BaseAbility
	}
	for _, id := range entry.Moves {
		if _, err := p.LearnMove(id, dex); err != nil {
			return err
		}
	}
	return nil
}

// availableMoves turns an active request's move menu into moves, skipping
// disabled entries.
func (p *Pokemon) availableMoves(active ActiveRequest, dex Dex) ([]*Move, error) {
	moves := make([]*Move, 0, len(active.Moves))
	for _, slot := range active.Moves {
		if slot.Disabled {
			continue
		}
		id := slot.ID
		if id == "" {
			id = slot.Move
		}
		id = data.ToID(id)
		if specialMoves[id] {
			m, err := NewMove(id, dex)
			if err != nil {
				return nil, err
			}
			moves = append(moves, m)
			continue
		}
		m, err := p.LearnMove(id, dex)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

func (p *Pokemon) String() string {
	if p == nil {
		return "<none>"
	}
	return p.Ident
}
