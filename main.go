package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"showdown-doubles/client"
	"showdown-doubles/config"
	"showdown-doubles/data"
	"showdown-doubles/game"
	"showdown-doubles/logging"
	"showdown-doubles/session"
)

// logLines are the protocol messages echoed to the page as they happen.
var logLines = map[string]bool{
	"turn": true, "move": true, "switch": true, "drag": true, "swap": true,
	"-damage": true, "-heal": true, "faint": true, "-start": true, "-end": true,
	"win": true, "tie": true,
}

func isLogLine(line string) bool {
	parts := strings.SplitN(line, "|", 3)
	return len(parts) >= 2 && logLines[parts[1]]
}

// liveClient is the session's sender across reconnects.
type liveClient struct {
	mu sync.Mutex
	sc *client.ShowdownClient
}

func (l *liveClient) set(sc *client.ShowdownClient) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sc = sc
}

func (l *liveClient) Choose(room, message string, rqid int) error {
	l.mu.Lock()
	sc := l.sc
	l.mu.Unlock()
	if sc == nil {
		return errors.New("sin conexión con showdown")
	}
	return sc.Choose(room, message, rqid)
}

type server struct {
	templates *template.Template
	dex       *data.Catalog
	logger    *slog.Logger
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := s.templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		s.logger.Error("Error al renderizar la plantilla", "error", err)
		http.Error(w, "Error al renderizar la plantilla", http.StatusInternalServerError)
	}
}

func sendEvent(w http.ResponseWriter, flusher http.Flusher, html string) {
	fmt.Fprintf(w, "data: %s\n\n", html)
	flusher.Flush()
}

func (s *server) handleConnect(w http.ResponseWriter, r *http.Request) {
	roomID := strings.TrimSpace(r.URL.Query().Get("roomid"))
	if roomID == "" {
		http.Error(w, "El ID de la sala no puede estar vacío", http.StatusBadRequest)
		return
	}
	if !strings.HasPrefix(roomID, "battle-") {
		roomID = "battle-" + roomID
	}
	logger := s.logger.With("room", roomID, "remote", r.RemoteAddr)
	logger.Info("Espectador conectado")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming no soportado", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Cache-Control")

	b := game.NewBattle(roomID, s.dex, logger)
	b.Spectate(config.GetString("battle.perspective"))
	live := &liveClient{}
	sess, err := session.New(b, live, logger)
	if err != nil {
		logger.Error("Error al crear la sesión", "error", err)
		sendEvent(w, flusher, "<p class='error'>Error interno</p>")
		return
	}

	ctx := r.Context()
	maxReconnects := config.GetInt("battle.maxReconnects")
	delay := config.GetDuration("battle.reconnectDelay")
	var lastErr error
	for attempt := 0; attempt < maxReconnects; attempt++ {
		if attempt > 0 {
			sendEvent(w, flusher, fmt.Sprintf("<p>Reconectando con Showdown... (intento %d/%d)</p>", attempt+1, maxReconnects))
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}

		sc, err := client.NewShowdownClient(ctx, config.GetString("server.url"), logger)
		if err != nil {
			lastErr = err
			logger.Warn("Error al conectar con Showdown", "attempt", attempt+1, "error", err)
			continue
		}
		live.set(sc)
		if err := sc.JoinRoom(roomID); err != nil {
			lastErr = err
			live.set(nil)
			sc.Close()
			continue
		}
		sendEvent(w, flusher, fmt.Sprintf("<p>Conectado a la sala <strong>%s</strong>. Esperando eventos...</p>",
			template.HTMLEscapeString(roomID)))

		done, err := s.stream(ctx, w, flusher, sc, sess, roomID)
		live.set(nil)
		sc.Close()
		if done {
			logger.Info("Batalla terminada, cerrando conexión SSE")
			return
		}
		lastErr = err
		logger.Warn("Conexión con Showdown perdida", "error", err)
	}
	if lastErr != nil {
		sendEvent(w, flusher, fmt.Sprintf("<p class='error'>Error persistente al conectar con Showdown: %s</p>",
			template.HTMLEscapeString(lastErr.Error())))
	}
}

// stream relays room frames until the battle ends or the page goes away
// (done) or the websocket fails.
func (s *server) stream(ctx context.Context, w http.ResponseWriter, flusher http.Flusher,
	sc *client.ShowdownClient, sess *session.Session, roomID string) (done bool, err error) {
	listenCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	frames := make(chan client.Message)
	errc := make(chan error, 1)
	go func() {
		errc <- sc.Listen(listenCtx, func(m client.Message) {
			select {
			case frames <- m:
			case <-listenCtx.Done():
			}
		})
	}()

	ping := time.NewTicker(config.GetDuration("battle.pingInterval"))
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return true, nil
		case err := <-errc:
			return false, err
		case <-ping.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case m := <-frames:
			if m.Room != "" && m.Room != roomID {
				continue
			}
			if err := sess.Handle(ctx, m.Lines); err != nil {
				s.logger.Warn("Líneas inválidas en el mensaje", "room", roomID, "error", err)
			}
			logged := false
			for _, line := range m.Lines {
				if isLogLine(line) {
					sendEvent(w, flusher, "<p class='logline'>"+template.HTMLEscapeString(line)+"</p>")
					logged = true
				}
			}
			if logged {
				sendEvent(w, flusher, sess.Render())
			}
			if sess.Finished() {
				return true, nil
			}
		}
	}
}

func loadCatalog(logger *slog.Logger) *data.Catalog {
	dex := data.NewCatalog()
	if err := dex.LoadPokemonData(config.GetString("data.pokedex")); err != nil {
		logger.Warn("Error cargando datos de Pokémon", "error", err)
	}
	if err := dex.LoadMoveData(config.GetString("data.moves")); err != nil {
		logger.Warn("Error cargando datos de movimientos", "error", err)
	}
	pokemon, moves := dex.Len()
	logger.Info("Datos cargados", "pokemon", pokemon, "moves", moves)
	return dex
}

func main() {
	configErr := config.Load(".")
	if configErr != nil {
		config.LoadDefaults()
	}

	var logFile *os.File
	if dir := config.GetString("logsDir"); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			logFile, _ = os.OpenFile(filepath.Join(dir, "showdown.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		}
	}
	var logger *slog.Logger
	if logFile != nil {
		defer logFile.Close()
		logger = logging.New(logFile, config.GetString("logLevel"))
	} else {
		logger = logging.New(nil, config.GetString("logLevel"))
	}
	if configErr != nil {
		logger.Info("Usando configuración por defecto", "reason", configErr)
	}

	s := &server{
		templates: template.Must(template.ParseGlob("templates/*.html")),
		dex:       loadCatalog(logger),
		logger:    logger,
	}

	mux := http.NewServeMux()
	fs := http.FileServer(http.Dir("static"))
	mux.Handle("/static/", http.StripPrefix("/static/", fs))
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/connect", s.handleConnect)

	addr := config.GetString("http.addr")
	logger.Info("Servidor iniciado", "addr", addr)
	// No write timeout: event streams stay open for the whole battle.
	srv := &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("Servidor detenido", "error", err)
		os.Exit(1)
	}
}
