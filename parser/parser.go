package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"showdown-doubles/game"
)

// ErrShortLine is returned for protocol lines missing required fields.
var ErrShortLine = errors.New("protocol line has too few fields")

// ParseLog replays a full battle log into a new battle.
func ParseLog(tag, logText string, dex game.Dex, logger *slog.Logger) (*game.Battle, error) {
	b := game.NewBattle(tag, dex, logger)
	for i, line := range strings.Split(logText, "\n") {
		if err := ProcessLine(b, line); err != nil {
			return b, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return b, nil
}

// ProcessLine applies one protocol line to b. Unknown message types are
// ignored.
func ProcessLine(b *game.Battle, line string) error {
	parts := strings.Split(strings.TrimSpace(line), "|")
	if len(parts) < 2 {
		return nil
	}
	need := func(n int) error {
		if len(parts) < n {
			return fmt.Errorf("%w: %q", ErrShortLine, line)
		}
		return nil
	}

	switch parts[1] {
	case "request":
		if len(parts) < 3 || parts[2] == "" {
			return nil
		}
		raw := strings.Join(parts[2:], "|")
		req, err := game.ParseRequest([]byte(raw))
		if err != nil {
			return err
		}
		return b.ApplyRequest(req)
	case "player":
		if err := need(4); err != nil {
			return err
		}
		b.SetPlayer(parts[2], parts[3])
	case "teamsize":
		if err := need(4); err != nil {
			return err
		}
		size, err := strconv.Atoi(parts[3])
		if err != nil {
			return fmt.Errorf("teamsize %q: %w", parts[3], err)
		}
		b.SetTeamSize(parts[2], size)
	case "poke":
		if err := need(4); err != nil {
			return err
		}
		b.RegisterPreviewPokemon(parts[2], parts[3])
	case "switch", "drag":
		if err := need(5); err != nil {
			return err
		}
		return b.ApplySwitch(parts[2], parts[3], parts[4])
	case "swap":
		if err := need(4); err != nil {
			return err
		}
		return b.ApplySwap(parts[2], parts[3])
	case "faint":
		if err := need(3); err != nil {
			return err
		}
		return b.ApplyFaint(parts[2])
	case "move":
		if err := need(4); err != nil {
			return err
		}
		return b.ApplyMove(parts[2], parts[3])
	case "-damage", "-heal", "-sethp":
		if err := need(4); err != nil {
			return err
		}
		return b.ApplyHPStatus(parts[2], parts[3])
	case "-start":
		if err := need(4); err != nil {
			return err
		}
		return b.ApplyStart(parts[2], parts[3])
	case "-end":
		if err := need(4); err != nil {
			return err
		}
		return b.ApplyEnd(parts[2], parts[3])
	case "-status":
		if err := need(4); err != nil {
			return err
		}
		p, err := b.GetPokemon(parts[2], false, "")
		if err != nil {
			return err
		}
		p.Status = parts[3]
	case "-curestatus":
		if err := need(3); err != nil {
			return err
		}
		p, err := b.GetPokemon(parts[2], false, "")
		if err != nil {
			return err
		}
		p.Status = ""
	case "-boost", "-unboost", "-setboost":
		if err := need(5); err != nil {
			return err
		}
		p, err := b.GetPokemon(parts[2], false, "")
		if err != nil {
			return err
		}
		amount, err := strconv.Atoi(parts[4])
		if err != nil {
			return fmt.Errorf("%s amount %q: %w", parts[1], parts[4], err)
		}
		switch parts[1] {
		case "-boost":
			p.Boosts[parts[3]] += amount
		case "-unboost":
			p.Boosts[parts[3]] -= amount
		default:
			p.Boosts[parts[3]] = amount
		}
	case "-ability":
		if err := need(4); err != nil {
			return err
		}
		p, err := b.GetPokemon(parts[2], false, "")
		if err != nil {
			return err
		}
		p.Ability = parts[3]
	case "turn":
		if err := need(3); err != nil {
			return err
		}
		turn, err := strconv.Atoi(parts[2])
		if err != nil {
			return fmt.Errorf("turn %q: %w", parts[2], err)
		}
		b.SetTurn(turn)
	case "-weather":
		if err := need(3); err != nil {
			return err
		}
		b.SetWeather(parts[2])
	case "-fieldstart":
		if err := need(3); err != nil {
			return err
		}
		b.StartField(fieldName(parts[2]))
	case "-fieldend":
		if err := need(3); err != nil {
			return err
		}
		b.EndField(fieldName(parts[2]))
	case "win":
		if err := need(3); err != nil {
			return err
		}
		b.Win(parts[2])
	case "tie":
		b.Tie()
	}
	return nil
}

func fieldName(effect string) string {
	return strings.TrimPrefix(effect, "move: ")
}
