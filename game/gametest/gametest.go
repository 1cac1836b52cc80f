// Package gametest builds battle fixtures for tests.
package gametest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"showdown-doubles/data"
	"showdown-doubles/game"
)

// Catalog returns a small dex covering every fixture pokemon and move.
func Catalog() *data.Catalog {
	c := data.NewCatalog()
	for _, p := range []data.PokemonData{
		{Name: "Pikachu", Types: []string{"Electric"}},
		{Name: "Charizard", Types: []string{"Fire", "Flying"}},
		{Name: "Snorlax", Types: []string{"Normal"}},
		{Name: "Venusaur", Types: []string{"Grass", "Poison"}},
		{Name: "Gengar", Types: []string{"Ghost", "Poison"}},
		{Name: "Blastoise", Types: []string{"Water"}},
		{Name: "Dusclops", Types: []string{"Ghost"}},
	} {
		c.AddPokemon(p)
	}
	for _, m := range []data.MoveData{
		{Name: "Thunderbolt", Type: "Electric", Category: data.CategorySpecial, BasePower: 90, Target: "normal"},
		{Name: "Protect", Type: "Normal", Category: data.CategoryStatus, Target: "self"},
		{Name: "Fake Out", Type: "Normal", Category: data.CategoryPhysical, BasePower: 40, Target: "normal"},
		{Name: "Helping Hand", Type: "Normal", Category: data.CategoryStatus, Target: "adjacentAlly"},
		{Name: "Heat Wave", Type: "Fire", Category: data.CategorySpecial, BasePower: 95, Target: "allAdjacentFoes"},
		{Name: "Curse", Type: "Ghost", Category: data.CategoryStatus, Target: "randomNormal", NonGhostTarget: true},
		{Name: "Acupressure", Type: "Normal", Category: data.CategoryStatus, Target: "adjacentAllyOrSelf"},
		{Name: "Earthquake", Type: "Ground", Category: data.CategoryPhysical, BasePower: 100, Target: "allAdjacent"},
		{Name: "Seismic Toss", Type: "Fighting", Category: data.CategoryPhysical, Target: "normal", FixedDamage: true},
		{Name: "Tailwind", Type: "Flying", Category: data.CategoryStatus, Target: "allySide"},
		{Name: "Dark Pulse", Type: "Dark", Category: data.CategorySpecial, BasePower: 80, Target: "any"},
		{Name: "Spectral Grip", Type: "Ghost", Category: data.CategoryPhysical, BasePower: 60, Target: "normal", NonGhostTarget: true},
		{Name: "Mystery", Category: data.CategoryPhysical, BasePower: 50},
	} {
		c.AddMove(m)
	}
	return c
}

// Menu builds an active request move menu.
func Menu(ids ...string) []game.RequestMove {
	moves := make([]game.RequestMove, 0, len(ids))
	for _, id := range ids {
		moves = append(moves, game.RequestMove{Move: id, ID: id, PP: 10, MaxPP: 10})
	}
	return moves
}

// Request returns a p1 request with Pikachu and Charizard active and Snorlax
// and Venusaur on the bench.
func Request(rqid int) *game.Request {
	return &game.Request{
		RQID: rqid,
		Side: game.RequestSide{
			Name: "tester",
			ID:   "p1",
			Pokemon: []game.RequestPokemon{
				{Ident: "p1: Pikachu", Details: "Pikachu, L50, M", Condition: "100/100", Active: true,
					Moves: []string{"thunderbolt", "protect", "fakeout", "helpinghand"}},
				{Ident: "p1: Charizard", Details: "Charizard, L50, F", Condition: "150/150", Active: true,
					Moves: []string{"heatwave", "protect", "curse", "acupressure"}},
				{Ident: "p1: Snorlax", Details: "Snorlax, L50", Condition: "200/200",
					Moves: []string{"earthquake", "seismictoss"}},
				{Ident: "p1: Venusaur", Details: "Venusaur, L50", Condition: "160/160",
					Moves: []string{"tailwind"}},
			},
		},
		Active: []game.ActiveRequest{
			{Moves: Menu("thunderbolt", "protect", "fakeout", "helpinghand"), CanDynamax: true},
			{Moves: Menu("heatwave", "protect", "curse", "acupressure"), CanDynamax: true, CanMegaEvo: true},
		},
	}
}

// Battle applies req and puts Gengar and Blastoise on the opponent side.
func Battle(t testing.TB, req *game.Request) *game.Battle {
	t.Helper()
	b := game.NewBattle("battle-gen9doublescustomgame-1", Catalog(), nil)
	require.NoError(t, b.ApplyRequest(req))
	require.NoError(t, b.ApplySwitch("p2a: Gengar", "Gengar, L50", "100/100"))
	require.NoError(t, b.ApplySwitch("p2b: Blastoise", "Blastoise, L50", "100/100"))
	return b
}

// Default is Battle with Request(1).
func Default(t testing.TB) *game.Battle {
	t.Helper()
	return Battle(t, Request(1))
}

// Move returns the named move from a slot's menu.
func Move(t testing.TB, b *game.Battle, slot int, id string) *game.Move {
	t.Helper()
	for _, m := range b.AvailableMoves().At(slot) {
		if m.ID == id {
			return m
		}
	}
	require.Failf(t, "move not on menu", "slot %d has no %s", slot, id)
	return nil
}

// Bench returns our team member with the given ident.
func Bench(t testing.TB, b *game.Battle, ident string) *game.Pokemon {
	t.Helper()
	p, ok := b.Team()[ident]
	require.True(t, ok, "no team member %s", ident)
	return p
}
