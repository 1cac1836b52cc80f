package game

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Truthy decodes any JSON value with Python-like truthiness. Showdown sends
// some flags as bools, some as strings or arrays (canZMove, disabled).
type Truthy bool

func (t *Truthy) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "", "null", "false", "0", `""`, "[]", "{}":
		*t = false
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case bool:
		*t = Truthy(x)
	case float64:
		*t = x != 0
	default:
		*t = true
	}
	return nil
}

// Request is the turn-menu snapshot sent in |request| lines.
type Request struct {
	Wait        bool            `json:"wait"`
	ForceSwitch []bool          `json:"forceSwitch"`
	RQID        int             `json:"rqid"`
	TeamPreview bool            `json:"teamPreview"`
	MaxTeamSize int             `json:"maxTeamSize"`
	Side        RequestSide     `json:"side"`
	Active      []ActiveRequest `json:"active"`
}

type RequestSide struct {
	Name    string           `json:"name"`
	ID      string           `json:"id"`
	Pokemon []RequestPokemon `json:"pokemon"`
}

type RequestPokemon struct {
	Ident       string   `json:"ident"`
	Details     string   `json:"details"`
	Condition   string   `json:"condition"`
	Active      bool     `json:"active"`
	Moves       []string `json:"moves"`
	BaseAbility string   `json:"baseAbility"`
	Ability     string   `json:"ability"`
	Item        string   `json:"item"`
}

type ActiveRequest struct {
	Moves        []RequestMove `json:"moves"`
	Trapped      Truthy        `json:"trapped"`
	MaybeTrapped Truthy        `json:"maybeTrapped"`
	CanMegaEvo   Truthy        `json:"canMegaEvo"`
	CanZMove     Truthy        `json:"canZMove"`
	CanDynamax   Truthy        `json:"canDynamax"`
}

type RequestMove struct {
	Move     string `json:"move"`
	ID       string `json:"id"`
	PP       int    `json:"pp"`
	MaxPP    int    `json:"maxpp"`
	Target   string `json:"target"`
	Disabled Truthy `json:"disabled"`
}

// ParseRequest decodes the JSON payload of a |request| line.
func ParseRequest(raw []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("decoding request: %w", err)
	}
	return &req, nil
}

// menus holds what a request offers per slot.
type menus struct {
	moves        Pair[[]*Move]
	switches     Pair[[]*Pokemon]
	canMega      Pair[bool]
	canZMove     Pair[bool]
	canDynamax   Pair[bool]
	trapped      Pair[bool]
	maybeTrapped Pair[bool]
	forceSwitch  Pair[bool]
}

// ApplyRequest rebuilds the choice menus from a request. The menus are
// replaced even when the request id is not newer than RQID; only the stored
// id is kept from going backwards. The menus and request flags are only
// replaced once the whole request has been read, so a failing request leaves
// the previous ones in place. The player role and team entries it creates
// before failing are kept.
func (b *Battle) ApplyRequest(req *Request) error {
	b.logger.Debug("Parsing request", "rqid", req.RQID, "seen", b.rqid)

	var m menus
	for i, v := range req.ForceSwitch {
		if i > 1 {
			break
		}
		m.forceSwitch.Set(i, v)
	}

	side := req.Side
	if len(side.Pokemon) > 0 && b.playerRole == "" {
		ident := side.Pokemon[0].Ident
		if len(ident) < 2 {
			return fmt.Errorf("%w: %q", ErrBadIdentifier, ident)
		}
		b.playerRole = ident[:2]
	}

	roster := make([]*Pokemon, 0, len(side.Pokemon))
	for _, entry := range side.Pokemon {
		p, err := b.GetPokemon(entry.Ident, true, entry.Details)
		if err != nil {
			return fmt.Errorf("request pokemon: %w", err)
		}
		if err := p.updateFromRequest(entry, b.dex); err != nil {
			return fmt.Errorf("request pokemon %s: %w", p.Ident, err)
		}
		roster = append(roster, p)
	}

	for i, active := range req.Active {
		if i > 1 || i >= len(roster) {
			break
		}
		p := roster[i]
		if p.Fainted {
			continue
		}
		moves, err := p.availableMoves(active, b.dex)
		if err != nil {
			return fmt.Errorf("request moves for %s: %w", p.Ident, err)
		}
		m.moves.Set(i, moves)
		m.trapped.Set(i, bool(active.Trapped))
		m.canMega.Set(i, bool(active.CanMegaEvo))
		m.canZMove.Set(i, bool(active.CanZMove))
		m.canDynamax.Set(i, bool(active.CanDynamax))
		m.maybeTrapped.Set(i, bool(active.MaybeTrapped))
	}

	for i := range 2 {
		if m.trapped.At(i) && !m.forceSwitch.At(i) {
			continue
		}
		var switches []*Pokemon
		for _, p := range roster {
			if !p.Active && !p.Fainted {
				switches = append(switches, p)
			}
		}
		m.switches.Set(i, switches)
	}

	b.clearFainted()
	for i := range req.Active {
		if i > 1 || i >= len(roster) {
			break
		}
		p := roster[i]
		if b.playerRole != "" && !p.Fainted {
			token := b.playerRole + string(rune('a'+i))
			if _, ok := b.active[token]; !ok {
				b.active[token] = p
			}
		}
	}

	b.wait = req.Wait
	b.availableMoves = m.moves
	b.availableSwitches = m.switches
	b.canMegaEvolve = m.canMega
	b.canZMove = m.canZMove
	b.canDynamax = m.canDynamax
	b.trapped = m.trapped
	b.maybeTrapped = m.maybeTrapped
	b.forceSwitch = m.forceSwitch
	if Any(m.forceSwitch) {
		b.moveOnNextRequest = true
	}
	if req.RQID != 0 {
		b.rqid = max(b.rqid, req.RQID)
	}
	if req.TeamPreview {
		b.teamPreview = true
		b.maxTeamSize = req.MaxTeamSize
		if b.maxTeamSize == 0 {
			b.maxTeamSize = len(side.Pokemon)
		}
	} else {
		b.teamPreview = false
	}

	for _, p := range roster {
		b.addSent(p)
	}
	return nil
}
