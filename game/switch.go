package game

import (
	"fmt"
	"strings"

	"showdown-doubles/data"
)

// ApplySwitch handles |switch| and |drag|: whatever stood in the slot named
// by identifier leaves, the named pokemon comes in with hpStatus.
func (b *Battle) ApplySwitch(identifier, details, hpStatus string) error {
	token, err := positionToken(identifier)
	if err != nil {
		return err
	}
	in, err := b.GetPokemon(identifier, false, details)
	if err != nil {
		return fmt.Errorf("switch: %w", err)
	}
	if out, ok := b.active[token]; ok {
		out.SwitchOut()
		delete(b.active, token)
	}
	in.SwitchIn()
	in.SetHPStatus(hpStatus)
	if !in.Fainted {
		b.active[token] = in
	}
	if token[:2] == b.playerRole {
		b.addSent(in)
	}

	b.logger.Debug("Switch", "slot", token, "in", in.Ident, "hp", hpStatus)
	return nil
}

// ApplySwap handles |swap|. slot is "0" or "1", the position identifier's
// pokemon ends up in.
func (b *Battle) ApplySwap(identifier, slot string) error {
	if len(identifier) < 2 {
		return fmt.Errorf("%w: %q", ErrBadIdentifier, identifier)
	}
	role := identifier[:2]
	tokenA, tokenB := role+"a", role+"b"
	monA, monB := b.active[tokenA], b.active[tokenB]
	if monA == nil || monB == nil || monA.Fainted || monB.Fainted {
		return nil
	}

	p, err := b.GetPokemon(identifier, false, "")
	if err != nil {
		return fmt.Errorf("swap: %w", err)
	}
	if (slot == "0" && p == monA) || (slot == "1" && p == monB) {
		return nil
	}
	b.active[tokenA], b.active[tokenB] = monB, monA

	b.logger.Debug("Swap", "side", role, "a", monB.Ident, "b", monA.Ident)
	return nil
}

// ApplyFaint marks the pokemon fainted and frees its slot.
func (b *Battle) ApplyFaint(identifier string) error {
	p, err := b.GetPokemon(identifier, false, "")
	if err != nil {
		return fmt.Errorf("faint: %w", err)
	}
	p.Faint()
	b.clearFainted()
	return nil
}

// ApplyHPStatus handles |-damage|, |-heal| and |-sethp|.
func (b *Battle) ApplyHPStatus(identifier, hpStatus string) error {
	p, err := b.GetPokemon(identifier, false, "")
	if err != nil {
		return err
	}
	p.SetHPStatus(hpStatus)
	b.clearFainted()
	return nil
}

// ApplyStart handles |-start|. Only dynamax affects choice legality.
func (b *Battle) ApplyStart(identifier, effect string) error {
	p, err := b.GetPokemon(identifier, false, "")
	if err != nil {
		return err
	}
	if data.ToID(strings.TrimPrefix(effect, "move: ")) != "dynamax" {
		return nil
	}
	p.Dynamaxed = true
	if b.isOurs(p) {
		if b.dynamaxTurn < 0 {
			b.dynamaxTurn = b.turn
		}
		return nil
	}
	if b.opponentDynamaxTurn < 0 {
		b.opponentDynamaxTurn = b.turn
		b.opponentCanDynamax = PairOf(false)
	}
	return nil
}

// ApplyEnd handles |-end|.
func (b *Battle) ApplyEnd(identifier, effect string) error {
	p, err := b.GetPokemon(identifier, false, "")
	if err != nil {
		return err
	}
	if data.ToID(effect) == "dynamax" {
		p.Dynamaxed = false
	}
	return nil
}

func (b *Battle) isOurs(p *Pokemon) bool {
	return b.team[p.Ident] == p
}

// clearFainted keeps fainted pokemon out of active slots.
func (b *Battle) clearFainted() {
	for token, p := range b.active {
		if p.Fainted {
			delete(b.active, token)
		}
	}
}

// ApplyMove records a move seen in |move| so the pokemon's known move set
// grows as the battle reveals it.
func (b *Battle) ApplyMove(identifier, move string) error {
	p, err := b.GetPokemon(identifier, false, "")
	if err != nil {
		return err
	}
	if specialMoves[data.ToID(move)] {
		return nil
	}
	if _, err := p.LearnMove(move, b.dex); err != nil {
		return fmt.Errorf("move %s: %w", identifier, err)
	}
	return nil
}
