package parser

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showdown-doubles/game"
	"showdown-doubles/game/gametest"
)

const battleLog = `|player|p1|tester|1|
|player|p2|rival|2|
|teamsize|p1|4
|teamsize|p2|4
|poke|p1|Pikachu, L50, M|
|poke|p2|Gengar, L50|
|poke|p2|Blastoise, L50|
|switch|p2a: Gengar|Gengar, L50|100/100
|switch|p2b: Blastoise|Blastoise, L50|100/100
|turn|1
|move|p2a: Gengar|Shadow Ball|p1a: Pikachu
|-damage|p1a: Pikachu|40/100
|-boost|p2b: Blastoise|spa|2
|-unboost|p2b: Blastoise|spe|1
|-status|p2a: Gengar|par
|-weather|RainDance
|-fieldstart|move: Grassy Terrain
|turn|2`

func newBattle(t *testing.T) *game.Battle {
	t.Helper()
	b := game.NewBattle("battle-gen9doublescustomgame-1", gametest.Catalog(), nil)
	raw, err := json.Marshal(gametest.Request(1))
	require.NoError(t, err)
	require.NoError(t, ProcessLine(b, "|request|"+string(raw)))
	return b
}

func TestProcessLine_Log(t *testing.T) {
	b := newBattle(t)
	for _, line := range strings.Split(battleLog, "\n") {
		require.NoError(t, ProcessLine(b, line), line)
	}

	assert.Equal(t, 2, b.Turn())
	assert.Equal(t, "RainDance", b.Weather())
	assert.Equal(t, []string{"Grassy Terrain"}, b.Fields())
	assert.Len(t, b.TeamPreviewOpponentTeam(), 2)

	foes, err := b.OpponentActivePokemon()
	require.NoError(t, err)
	require.NotNil(t, foes.A)
	assert.Equal(t, "par", foes.A.Status)
	assert.Equal(t, 2, foes.B.Boosts["spa"])
	assert.Equal(t, -1, foes.B.Boosts["spe"])
	require.Len(t, foes.A.Moves(), 1)
	assert.Equal(t, "shadowball", foes.A.Moves()[0].ID)

	allies, err := b.ActivePokemon()
	require.NoError(t, err)
	assert.Equal(t, 40, allies.A.HP)
}

func TestProcessLine_SwapAndFaint(t *testing.T) {
	b := newBattle(t)
	require.NoError(t, ProcessLine(b, "|switch|p2a: Gengar|Gengar, L50|100/100"))
	require.NoError(t, ProcessLine(b, "|switch|p2b: Blastoise|Blastoise, L50|100/100"))

	require.NoError(t, ProcessLine(b, "|swap|p2a: Gengar|1|[from] move: Ally Switch"))
	foes, err := b.OpponentActivePokemon()
	require.NoError(t, err)
	assert.Equal(t, "Blastoise", foes.A.Name)
	assert.Equal(t, "Gengar", foes.B.Name)

	require.NoError(t, ProcessLine(b, "|faint|p2b: Gengar"))
	occupied, err := b.OccupiedSlots()
	require.NoError(t, err)
	assert.False(t, occupied[game.SlotFoeB])

	require.NoError(t, ProcessLine(b, "|drag|p2b: Dusclops|Dusclops, L50|80/100"))
	foes, err = b.OpponentActivePokemon()
	require.NoError(t, err)
	assert.Equal(t, "Dusclops", foes.B.Name)
}

func TestProcessLine_Dynamax(t *testing.T) {
	b := newBattle(t)
	require.NoError(t, ProcessLine(b, "|switch|p2a: Gengar|Gengar, L50|100/100"))
	require.NoError(t, ProcessLine(b, "|turn|3"))
	require.NoError(t, ProcessLine(b, "|-start|p2a: Gengar|Dynamax"))

	assert.Equal(t, game.PairOf(false), b.OpponentCanDynamax())
	assert.Equal(t, 3, b.OpponentDynamaxTurn())

	require.NoError(t, ProcessLine(b, "|-end|p2a: Gengar|Dynamax"))
	foes, err := b.OpponentActivePokemon()
	require.NoError(t, err)
	assert.False(t, foes.A.Dynamaxed)
}

func TestProcessLine_WinAndTie(t *testing.T) {
	b := newBattle(t)
	b.SetUsername("tester")
	require.NoError(t, ProcessLine(b, "|win|tester"))
	assert.True(t, b.Finished())
	assert.True(t, b.Won())

	b = newBattle(t)
	require.NoError(t, ProcessLine(b, "|tie"))
	assert.True(t, b.Finished())
	assert.Empty(t, b.Winner())
}

func TestProcessLine_Errors(t *testing.T) {
	b := newBattle(t)
	tests := []struct {
		name string
		line string
	}{
		{"short switch", "|switch|p2a: Gengar"},
		{"bad turn", "|turn|abc"},
		{"bad identifier", "|faint|x"},
		{"bad boost", "|-boost|p2a: Gengar|atk|lots"},
		{"bad request", "|request|{not json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ProcessLine(b, tt.line))
		})
	}

	assert.ErrorIs(t, ProcessLine(b, "|switch|p2a: Gengar"), ErrShortLine)
	assert.NoError(t, ProcessLine(b, "|request|"))
	assert.NoError(t, ProcessLine(b, "|upkeep"))
	assert.NoError(t, ProcessLine(b, ""))
}

func TestParseLog(t *testing.T) {
	b, err := ParseLog("battle-1", "|player|p1|tester|1|\n|turn|4\n", gametest.Catalog(), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, b.Turn())

	_, err = ParseLog("battle-1", "|turn|1\n|turn|x", gametest.Catalog(), nil)
	assert.ErrorContains(t, err, "line 2")
}

func TestRenderBattleState(t *testing.T) {
	b := newBattle(t)
	for _, line := range strings.Split(battleLog, "\n") {
		require.NoError(t, ProcessLine(b, line))
	}

	out := RenderBattleState(b)
	assert.Contains(t, out, "Turno: 2")
	assert.Contains(t, out, "RainDance")
	assert.Contains(t, out, "Grassy Terrain")
	assert.Contains(t, out, "<b>Gengar</b>")
	assert.Contains(t, out, "+2 Spa")
	assert.Contains(t, out, "-1 Spe")
	assert.Contains(t, out, "Órdenes legales: 240")
}

func TestRenderBattleState_UnknownSide(t *testing.T) {
	b := game.NewBattle("battle-1", nil, nil)
	require.NoError(t, ProcessLine(b, "|turn|1"))
	out := RenderBattleState(b)
	assert.Contains(t, out, "Esperando jugadores")

	b.Spectate("p2")
	out = RenderBattleState(b)
	assert.Contains(t, out, "Rivales")
	assert.NotContains(t, out, "Órdenes legales")
}
