// Package session ties one battle room to its state and to the connection
// that answers its requests.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"showdown-doubles/game"
	"showdown-doubles/order"
	"showdown-doubles/parser"
)

const instrumentationName = "showdown-doubles/session"

// ErrStaleRequest is returned when submitting without an unanswered request.
var ErrStaleRequest = errors.New("no unanswered request")

// Sender delivers a choice to the server. *client.ShowdownClient implements
// it.
type Sender interface {
	Choose(room, message string, rqid int) error
}

type Session struct {
	mu       sync.Mutex
	battle   *game.Battle
	sender   Sender
	logger   *slog.Logger
	answered int

	lines     metric.Int64Counter
	requests  metric.Int64Counter
	submitted metric.Int64Counter
	rejected  metric.Int64Counter
}

// New creates a session for b. Metrics go to the global OTel meter, which
// is a no-op unless the program installs a provider.
func New(b *game.Battle, sender Sender, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{
		battle: b,
		sender: sender,
		logger: logger.With("battle", b.Tag()),
	}

	m := otel.Meter(instrumentationName)
	var err error
	if s.lines, err = m.Int64Counter("session.lines.processed",
		metric.WithDescription("Protocol lines applied to battle state")); err != nil {
		return nil, fmt.Errorf("creating lines counter: %w", err)
	}
	if s.requests, err = m.Int64Counter("session.requests.applied",
		metric.WithDescription("Request snapshots applied")); err != nil {
		return nil, fmt.Errorf("creating requests counter: %w", err)
	}
	if s.submitted, err = m.Int64Counter("session.orders.submitted",
		metric.WithDescription("Orders sent to the server")); err != nil {
		return nil, fmt.Errorf("creating submitted counter: %w", err)
	}
	if s.rejected, err = m.Int64Counter("session.orders.rejected",
		metric.WithDescription("Orders refused by the validator")); err != nil {
		return nil, fmt.Errorf("creating rejected counter: %w", err)
	}
	return s, nil
}

// Handle applies the lines of one room frame. A bad line is logged and
// skipped; the joined errors are returned after the whole frame is applied.
func (s *Session) Handle(ctx context.Context, lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, line := range lines {
		if err := parser.ProcessLine(s.battle, line); err != nil {
			s.logger.Warn("Skipping protocol line", "line", line, "error", err)
			errs = append(errs, err)
			continue
		}
		s.lines.Add(ctx, 1)
		if strings.HasPrefix(line, "|request|{") {
			s.requests.Add(ctx, 1)
		}
	}
	return errors.Join(errs...)
}

// Submit validates o and sends it tagged with the current request id. A
// rejected order is not sent and its reason is returned with a nil error.
func (s *Session) Submit(ctx context.Context, o order.Order) (order.Reason, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rqid := s.battle.RQID()
	if rqid == 0 || rqid == s.answered {
		return order.ReasonNone, fmt.Errorf("%w: rqid %d", ErrStaleRequest, rqid)
	}
	reason, err := order.Validate(s.battle, o)
	if err != nil {
		return order.ReasonNone, err
	}
	if !reason.Valid() {
		s.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason.String())))
		s.logger.Debug("Order rejected", "order", o.Message(), "reason", reason)
		return reason, nil
	}

	if err := s.sender.Choose(s.battle.Tag(), o.Message(), rqid); err != nil {
		return order.ReasonNone, fmt.Errorf("sending order: %w", err)
	}
	s.answered = rqid
	if !game.Any(s.battle.ForceSwitch()) {
		s.battle.SetMoveOnNextRequest(false)
	}
	s.submitted.Add(ctx, 1)
	s.logger.Debug("Order submitted", "order", o.Message(), "rqid", rqid)
	return order.ReasonNone, nil
}

// MustAct reports that a forced switch has been requested and the request
// that follows it has not been answered yet.
func (s *Session) MustAct() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.battle.MoveOnNextRequest()
}

// Orders lists every double order the validator accepts right now.
func (s *Session) Orders() ([]order.DoubleOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return order.ValidOrders(s.battle)
}

// Render returns the HTML board summary.
func (s *Session) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return parser.RenderBattleState(s.battle)
}

// Finished reports whether the battle has ended.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.battle.Finished()
}
