package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showdown-doubles/game"
	"showdown-doubles/game/gametest"
	"showdown-doubles/order"
)

func TestMessage(t *testing.T) {
	b := gametest.Default(t)
	thunderbolt := gametest.Move(t, b, 0, "thunderbolt")
	heatwave := gametest.Move(t, b, 1, "heatwave")
	recharge, err := game.NewMove("recharge", gametest.Catalog())
	require.NoError(t, err)
	snorlax := gametest.Bench(t, b, "p1: Snorlax")

	tests := []struct {
		name  string
		order order.Order
		want  string
	}{
		{"targeted move", order.MoveOrder{Move: thunderbolt, Target: game.SlotFoeA}, "/choose move thunderbolt 1"},
		{"ally target", order.MoveOrder{Move: thunderbolt, Target: game.SlotAllyB}, "/choose move thunderbolt -2"},
		{"dynamax", order.MoveOrder{Move: thunderbolt, Dynamax: true, Target: game.SlotFoeB}, "/choose move thunderbolt dynamax 2"},
		{"mega without target", order.MoveOrder{Move: heatwave, Mega: true}, "/choose move heatwave mega"},
		{"zmove", order.MoveOrder{Move: heatwave, ZMove: true}, "/choose move heatwave zmove"},
		{"recharge", order.MoveOrder{Move: recharge}, "/choose move 1"},
		{"switch", order.SwitchOrder{Pokemon: snorlax}, "/choose switch snorlax"},
		{"default", order.DefaultOrder{}, "/choose default"},
		{"forfeit", order.ForfeitOrder{}, "/forfeit"},
		{"double", order.DoubleOrder{
			First:  order.MoveOrder{Move: thunderbolt, Target: game.SlotFoeA},
			Second: order.SwitchOrder{Pokemon: snorlax},
		}, "/choose move thunderbolt 1, switch snorlax"},
		{"double first only", order.DoubleOrder{First: order.SwitchOrder{Pokemon: snorlax}}, "/choose switch snorlax, default"},
		{"double second only", order.DoubleOrder{Second: order.MoveOrder{Move: heatwave}}, "/choose default, move heatwave"},
		{"double empty", order.DoubleOrder{}, "/choose default"},
		{"nil move", order.MoveOrder{}, "/choose move <nil move>"},
		{"nil switch", order.DoubleOrder{First: order.MoveOrder{}, Second: order.SwitchOrder{}},
			"/choose move <nil move>, switch <nil pokemon>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.order.Message())
		})
	}
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "valid", order.ReasonNone.String())
	assert.True(t, order.ReasonNone.Valid())
	assert.False(t, order.ReasonTrapped.Valid())
	assert.Equal(t, "reason(99)", order.Reason(99).String())
}
