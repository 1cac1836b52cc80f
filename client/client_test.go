package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer greets with one room frame and then records everything the
// client sends.
func fakeServer(t *testing.T, received chan<- string) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteMessage(websocket.TextMessage, []byte(">battle-gen9doublescustomgame-1\n|turn|1\n|upkeep"))
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			received <- string(msg)
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestSplitRoomMessage(t *testing.T) {
	msg := SplitRoomMessage(">battle-1\n|turn|2\n|upkeep\n")
	assert.Equal(t, "battle-1", msg.Room)
	assert.Equal(t, []string{"|turn|2", "|upkeep"}, msg.Lines)

	msg = SplitRoomMessage("|challstr|abc")
	assert.Empty(t, msg.Room)
	assert.Equal(t, []string{"|challstr|abc"}, msg.Lines)
}

func TestShowdownClient_RoundTrip(t *testing.T) {
	received := make(chan string, 4)
	url := fakeServer(t, received)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sc, err := NewShowdownClient(ctx, url, nil)
	require.NoError(t, err)
	defer sc.Close()

	require.NoError(t, sc.JoinRoom("battle-1"))
	require.NoError(t, sc.Choose("battle-1", "/choose move thunderbolt 1, switch snorlax", 7))
	assert.Equal(t, "|/join battle-1", <-received)
	assert.Equal(t, "battle-1|/choose move thunderbolt 1, switch snorlax|7", <-received)

	frames := make(chan Message, 1)
	listenCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- sc.Listen(listenCtx, func(m Message) { frames <- m })
	}()

	select {
	case m := <-frames:
		assert.Equal(t, "battle-gen9doublescustomgame-1", m.Room)
		assert.Equal(t, []string{"|turn|1", "|upkeep"}, m.Lines)
	case <-ctx.Done():
		t.Fatal("no frame received")
	}

	stop()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-ctx.Done():
		t.Fatal("listen did not stop")
	}
}

func TestNewShowdownClient_DialError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := NewShowdownClient(ctx, "ws://127.0.0.1:1/showdown", nil)
	assert.Error(t, err)
}
