package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

const DefaultServerURL = "wss://sim.psim.us/showdown/websocket"

// Message is one websocket frame from the server. Room is empty for global
// messages.
type Message struct {
	Room  string
	Lines []string
}

// SplitRoomMessage splits a frame into its ">room" header and protocol lines.
func SplitRoomMessage(raw string) Message {
	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")
	var msg Message
	if len(lines) > 0 && strings.HasPrefix(lines[0], ">") {
		msg.Room = strings.TrimSpace(lines[0][1:])
		lines = lines[1:]
	}
	msg.Lines = lines
	return msg
}

type ShowdownClient struct {
	Conn   *websocket.Conn
	logger *slog.Logger

	// gorilla connections allow a single concurrent writer.
	writeMu sync.Mutex
}

// NewShowdownClient dials serverURL. An empty serverURL uses the public
// server.
func NewShowdownClient(ctx context.Context, serverURL string, logger *slog.Logger) (*ShowdownClient, error) {
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("error al parsear la url del server: %w", err)
	}

	logger.Info("Conectando", "url", u.String())
	c, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error al conectar con el websocket: %w", err)
	}
	logger.Info("Conectado exitosamente al servidor de showdown")

	return &ShowdownClient{Conn: c, logger: logger}, nil
}

// Listen reads frames until the connection fails or ctx is done, handing
// each one to handle. It always returns a non-nil error.
func (sc *ShowdownClient) Listen(ctx context.Context, handle func(Message)) error {
	stop := context.AfterFunc(ctx, func() { sc.Conn.Close() })
	defer stop()

	for {
		_, raw, err := sc.Conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("error de lectura: %w", err)
		}
		sc.logger.Debug("Recibido", "bytes", len(raw))
		handle(SplitRoomMessage(string(raw)))
	}
}

func (sc *ShowdownClient) Send(message string) error {
	sc.writeMu.Lock()
	defer sc.writeMu.Unlock()
	sc.logger.Debug("Enviando", "message", message)
	return sc.Conn.WriteMessage(websocket.TextMessage, []byte(message))
}

func (sc *ShowdownClient) JoinRoom(roomID string) error {
	return sc.Send(fmt.Sprintf("|/join %s", roomID))
}

// Choose sends a choice command for room tagged with the request id it
// answers.
func (sc *ShowdownClient) Choose(room, message string, rqid int) error {
	return sc.Send(room + "|" + message + "|" + strconv.Itoa(rqid))
}

func (sc *ShowdownClient) Close() error {
	sc.writeMu.Lock()
	defer sc.writeMu.Unlock()
	err := sc.Conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if cerr := sc.Conn.Close(); err == nil {
		err = cerr
	}
	return err
}
