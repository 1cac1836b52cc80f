package parser

import (
	"fmt"
	"html/template"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"showdown-doubles/game"
	"showdown-doubles/order"
)

// RenderBattleState returns an HTML summary of the four slots as seen by the
// controlled side.
func RenderBattleState(b *game.Battle) string {
	var sb strings.Builder

	sb.WriteString("<div class='battle-summary'>")

	if w := b.Weather(); w != "" {
		fmt.Fprintf(&sb, "<div><b>Clima:</b> %s</div>", template.HTMLEscapeString(w))
	}
	if fields := b.Fields(); len(fields) > 0 {
		sb.WriteString("<div><b>Campo:</b> " + template.HTMLEscapeString(strings.Join(fields, ", ")) + "</div>")
	}

	fmt.Fprintf(&sb, "<h3>Turno: %d</h3>", b.Turn())

	if b.Finished() {
		if w := b.Winner(); w != "" {
			fmt.Fprintf(&sb, "<div class='result'>Ganador: <b>%s</b></div>", template.HTMLEscapeString(w))
		} else {
			sb.WriteString("<div class='result'>Empate</div>")
		}
	}

	foes, err := b.OpponentActivePokemon()
	if err != nil {
		// Spectating before our side is known: nothing is ours to show.
		sb.WriteString("<div>Esperando jugadores...</div></div>")
		return sb.String()
	}
	allies, _ := b.ActivePokemon()

	sb.WriteString("<h4>Rivales</h4>")
	renderSlot(&sb, game.SlotFoeA, foes.A)
	renderSlot(&sb, game.SlotFoeB, foes.B)
	sb.WriteString("<h4>Aliados</h4>")
	renderSlot(&sb, game.SlotAllyA, allies.A)
	renderSlot(&sb, game.SlotAllyB, allies.B)

	if b.RQID() > 0 {
		if valid, err := order.ValidOrders(b); err == nil && len(valid) > 0 {
			fmt.Fprintf(&sb, "<div class='orders'>Órdenes legales: %d</div>", len(valid))
		}
	}

	sb.WriteString("</div>")
	return sb.String()
}

func renderSlot(sb *strings.Builder, slot game.Slot, poke *game.Pokemon) {
	fmt.Fprintf(sb, "<div class='slot' data-slot='%d'>", slot.Position())
	defer sb.WriteString("</div>")
	if poke == nil {
		sb.WriteString("<span style='color:#aaa;'>(vacío)</span>")
		return
	}

	hp := "?/?"
	if poke.MaxHP > 0 {
		hp = fmt.Sprintf("%d/%d", poke.HP, poke.MaxHP)
	}
	status := ""
	if poke.Status != "" {
		status = fmt.Sprintf("<span style='color:#f1c40f;'>[%s]</span>", template.HTMLEscapeString(poke.Status))
	}
	dynamax := ""
	if poke.Dynamaxed {
		dynamax = "<span style='color:#e74c3c;'>Dynamax</span>"
	}
	fmt.Fprintf(sb, "<b>%s</b> %s %s <span style='color:#aaa;'>[%s]</span>",
		template.HTMLEscapeString(poke.Name), status, dynamax, hp)

	if len(poke.Boosts) > 0 {
		stats := make([]string, 0, len(poke.Boosts))
		for stat := range poke.Boosts {
			stats = append(stats, stat)
		}
		slices.Sort(stats)
		title := cases.Title(language.Und)
		boosts := make([]string, 0, len(stats))
		for _, stat := range stats {
			if val := poke.Boosts[stat]; val != 0 {
				boosts = append(boosts, fmt.Sprintf("%+d %s", val, title.String(stat)))
			}
		}
		if len(boosts) > 0 {
			sb.WriteString("<br><span style='color:#e67e22;'>Boosts: " + template.HTMLEscapeString(strings.Join(boosts, ", ")) + "</span>")
		}
	}

	if moves := poke.Moves(); len(moves) > 0 {
		names := make([]string, 0, len(moves))
		for _, m := range moves {
			names = append(names, m.Name())
		}
		sb.WriteString("<br>Movimientos vistos: " + template.HTMLEscapeString(strings.Join(names, ", ")))
	}
}
