package watch

import (
	"context"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	hideerrors "github.com/hidewatch/hidewatch/internal/errors"
	"github.com/hidewatch/hidewatch/internal/logging"
)

// suppressionCacheSize bounds the set of remembered hide destinations.
const suppressionCacheSize = 512

// DefaultSuppressionHorizon is how long the notification produced by a
// hide rename is recognized as self-induced.
const DefaultSuppressionHorizon = 2 * time.Second

// Handler acts on one relevant path. It returns the path the entry
// ended up at when it was hidden, or "" when it was not. A result that
// differs from the input means hiding renamed the entry, and the
// notification for the new name is the session's own doing.
type Handler func(path string) (string, error)

// Source is the notification side of a watcher as the session sees it:
// one blocking event channel whose closure means the source broke, and
// a channel of non-fatal delivery errors.
type Source interface {
	Events() <-chan Event
	Errors() <-chan error
}

// Session runs the watch loop: block for the next event, classify it,
// hand the relevant path to the handler, and keep the error breaker.
// Processing is synchronous; no event overlaps another.
type Session struct {
	source  Source
	handle  Handler
	breaker *hideerrors.Breaker
	recent  *lru.Cache[string, time.Time]
	horizon time.Duration
	logger  *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithBreaker replaces the default error breaker.
func WithBreaker(b *hideerrors.Breaker) SessionOption {
	return func(s *Session) {
		s.breaker = b
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithSuppressionHorizon sets how long hide destinations suppress their
// own notifications.
func WithSuppressionHorizon(d time.Duration) SessionOption {
	return func(s *Session) {
		s.horizon = d
	}
}

// NewSession creates a session over a started source.
func NewSession(source Source, handle Handler, opts ...SessionOption) *Session {
	recent, _ := lru.New[string, time.Time](suppressionCacheSize)

	s := &Session{
		source:  source,
		handle:  handle,
		breaker: hideerrors.NewBreaker(),
		recent:  recent,
		horizon: DefaultSuppressionHorizon,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run blocks until the context is cancelled or a fatal condition ends
// the watch. Cancellation returns nil. A closed notification channel or
// a tripped breaker returns a fatal watch error.
func (s *Session) Run(ctx context.Context) error {
	events := s.source.Events()
	errs := s.source.Errors()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return hideerrors.WatchError(hideerrors.ErrCodeChannelClosed,
					"notification channel closed", nil)
			}
			s.processEvent(ev)

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			notifyErr := hideerrors.Wrap(hideerrors.ErrCodeNotifyFailed, err)
			s.logger.Error("notification delivery failed", logging.ErrorAttrs(notifyErr)...)
			s.breaker.RecordFailure()
		}

		if s.breaker.Evaluate() == hideerrors.StateTripped {
			return hideerrors.WatchError(hideerrors.ErrCodeBreakerTripped,
				"too many errors in a short period of time", nil)
		}
	}
}

// processEvent classifies one event and hands the relevant path to the
// handler. Malformed events and handler failures are reported and
// recorded; neither ends the loop on its own.
func (s *Session) processEvent(ev Event) {
	path, relevant, err := Classify(ev)
	if err != nil {
		s.logger.Error("discarding malformed event", logging.ErrorAttrs(err)...)
		s.breaker.RecordFailure()
		return
	}
	if !relevant {
		s.logger.Debug("ignoring event", slog.String("kind", ev.Kind.String()))
		return
	}

	if s.suppressed(path) {
		s.logger.Debug("skipping self-induced event", slog.String("path", path))
		return
	}

	s.logger.Debug("evaluating path",
		slog.String("path", path),
		slog.String("kind", ev.Kind.String()))

	result, err := s.handle(path)
	if err != nil {
		s.logger.Error("failed to process path", logging.ErrorAttrs(err)...)
		s.breaker.RecordFailure()
		return
	}

	if result != "" && result != path {
		s.recent.Add(result, time.Now())
	}
}

// suppressed reports whether path was recently produced by this
// session's own hiding. Entries are consumed on first sight.
func (s *Session) suppressed(path string) bool {
	ts, ok := s.recent.Get(path)
	if !ok {
		return false
	}
	s.recent.Remove(path)
	return time.Since(ts) <= s.horizon
}
