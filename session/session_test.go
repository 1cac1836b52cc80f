package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showdown-doubles/game"
	"showdown-doubles/game/gametest"
	"showdown-doubles/order"
)

type choice struct {
	room    string
	message string
	rqid    int
}

type fakeSender struct {
	sent []choice
	err  error
}

func (f *fakeSender) Choose(room, message string, rqid int) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, choice{room, message, rqid})
	return nil
}

func requestLine(t *testing.T, req *game.Request) string {
	t.Helper()
	raw, err := json.Marshal(req)
	require.NoError(t, err)
	return "|request|" + string(raw)
}

func newSession(t *testing.T) (*Session, *fakeSender) {
	t.Helper()
	sender := &fakeSender{}
	b := game.NewBattle("battle-gen9doublescustomgame-1", gametest.Catalog(), nil)
	s, err := New(b, sender, nil)
	require.NoError(t, err)

	require.NoError(t, s.Handle(context.Background(), []string{
		requestLine(t, gametest.Request(1)),
		"|switch|p2a: Gengar|Gengar, L50|100/100",
		"|switch|p2b: Blastoise|Blastoise, L50|100/100",
		"|turn|1",
	}))
	return s, sender
}

func TestSession_SubmitValid(t *testing.T) {
	s, sender := newSession(t)
	ctx := context.Background()

	orders, err := s.Orders()
	require.NoError(t, err)
	require.NotEmpty(t, orders)

	reason, err := s.Submit(ctx, orders[0])
	require.NoError(t, err)
	assert.True(t, reason.Valid())
	require.Len(t, sender.sent, 1)
	assert.Equal(t, choice{"battle-gen9doublescustomgame-1", orders[0].Message(), 1}, sender.sent[0])

	_, err = s.Submit(ctx, orders[0])
	assert.ErrorIs(t, err, ErrStaleRequest)

	require.NoError(t, s.Handle(ctx, []string{requestLine(t, gametest.Request(2))}))
	_, err = s.Submit(ctx, orders[0])
	require.NoError(t, err)
	assert.Len(t, sender.sent, 2)
	assert.Equal(t, 2, sender.sent[1].rqid)
}

func TestSession_SubmitRejected(t *testing.T) {
	s, sender := newSession(t)

	reason, err := s.Submit(context.Background(), order.DoubleOrder{})
	require.NoError(t, err)
	assert.Equal(t, order.ReasonMissingOrder, reason)
	assert.Empty(t, sender.sent)
}

func TestSession_SubmitMalformedOrder(t *testing.T) {
	s, sender := newSession(t)

	var reason order.Reason
	require.NotPanics(t, func() {
		var err error
		reason, err = s.Submit(context.Background(), order.DoubleOrder{
			First:  order.MoveOrder{},
			Second: order.SwitchOrder{},
		})
		require.NoError(t, err)
	})
	assert.Equal(t, order.ReasonMoveUnavailable, reason)
	assert.Empty(t, sender.sent)
}

func TestSession_MustActClearsAfterForcedSwitch(t *testing.T) {
	s, sender := newSession(t)
	ctx := context.Background()
	assert.False(t, s.MustAct())

	req := gametest.Request(2)
	req.ForceSwitch = []bool{true, false}
	require.NoError(t, s.Handle(ctx, []string{requestLine(t, req)}))
	assert.True(t, s.MustAct())

	_, err := s.Submit(ctx, order.DefaultOrder{})
	require.NoError(t, err)
	assert.True(t, s.MustAct(), "answering the forced switch keeps the flag")

	require.NoError(t, s.Handle(ctx, []string{requestLine(t, gametest.Request(3))}))
	assert.True(t, s.MustAct())

	_, err = s.Submit(ctx, order.DefaultOrder{})
	require.NoError(t, err)
	assert.False(t, s.MustAct())
	assert.Len(t, sender.sent, 2)
}

func TestSession_SubmitBeforeRequest(t *testing.T) {
	b := game.NewBattle("battle-1", gametest.Catalog(), nil)
	s, err := New(b, &fakeSender{}, nil)
	require.NoError(t, err)

	_, err = s.Submit(context.Background(), order.DefaultOrder{})
	assert.ErrorIs(t, err, ErrStaleRequest)
}

func TestSession_SendError(t *testing.T) {
	s, sender := newSession(t)
	sender.err = errors.New("connection closed")

	_, err := s.Submit(context.Background(), order.DefaultOrder{})
	assert.ErrorContains(t, err, "connection closed")

	// The request is still unanswered after a failed send.
	sender.err = nil
	_, err = s.Submit(context.Background(), order.DefaultOrder{})
	assert.NoError(t, err)
}

func TestSession_HandleBadLines(t *testing.T) {
	s, _ := newSession(t)
	err := s.Handle(context.Background(), []string{
		"|turn|x",
		"|turn|2",
		"|faint|?",
	})
	assert.Error(t, err)
	assert.Contains(t, s.Render(), "Turno: 2")
	assert.False(t, s.Finished())

	require.NoError(t, s.Handle(context.Background(), []string{"|win|tester"}))
	assert.True(t, s.Finished())
}
