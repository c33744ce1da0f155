package location

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultDebounce is the input-inactivity window before a suggestion lookup
// is dispatched.
const DefaultDebounce = 300 * time.Millisecond

// SessionConfig holds configuration for a search Session.
type SessionConfig struct {
	// Resolver performs the actual lookups.
	Resolver *Resolver

	// OnResults receives the suggestion list for the input that produced it.
	// Called at most once per surviving input revision.
	OnResults func(input string, results []Location)

	// Debounce overrides DefaultDebounce. Lookup dispatch waits for this
	// much input inactivity.
	Debounce time.Duration

	// LookupTimeout bounds each dispatched lookup. Default 10s.
	LookupTimeout time.Duration

	// Logger for session operations.
	Logger zerolog.Logger
}

// Session serializes interactive suggestion lookups for one input box.
//
// Every Update advances a generation counter; a lookup completion carrying a
// stale generation is discarded, so the delivered results always correspond
// to the latest input regardless of completion order.
type Session struct {
	resolver      *Resolver
	onResults     func(string, []Location)
	debounce      time.Duration
	lookupTimeout time.Duration
	logger        zerolog.Logger

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

// NewSession creates a new Session.
func NewSession(cfg SessionConfig) *Session {
	debounce := cfg.Debounce
	if debounce == 0 {
		debounce = DefaultDebounce
	}

	lookupTimeout := cfg.LookupTimeout
	if lookupTimeout == 0 {
		lookupTimeout = 10 * time.Second
	}

	onResults := cfg.OnResults
	if onResults == nil {
		onResults = func(string, []Location) {}
	}

	return &Session{
		resolver:      cfg.Resolver,
		onResults:     onResults,
		debounce:      debounce,
		lookupTimeout: lookupTimeout,
		logger:        cfg.Logger,
	}
}

// Update records a new input value. Short inputs clear the suggestion list
// immediately; longer inputs schedule a lookup after the debounce window,
// superseding any pending or in-flight lookup for older input.
func (s *Session) Update(input string) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if len([]rune(input)) <= 1 {
		s.mu.Unlock()
		s.deliver(gen, input, nil)
		return
	}

	s.timer = time.AfterFunc(s.debounce, func() {
		s.lookup(gen, input)
	})
	s.mu.Unlock()
}

// Close cancels any pending lookup dispatch.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++ // invalidate in-flight completions
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) lookup(gen uint64, input string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.lookupTimeout)
	defer cancel()

	results := s.resolver.Suggest(ctx, input)
	s.deliver(gen, input, results)
}

// deliver hands results to the callback unless a newer Update has started.
func (s *Session) deliver(gen uint64, input string, results []Location) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.logger.Debug().Str("input", input).Msg("discarding superseded suggestion results")
		return
	}
	s.mu.Unlock()

	s.onResults(input, results)
}
