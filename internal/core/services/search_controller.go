package services

import (
	"context"
	"sync"
	"time"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driving"
	"github.com/rocketfuel/rocketfuel-cli/internal/logger"
)

// Ensure SearchController implements the interface.
var _ driving.IncrementalSearch = (*SearchController)(nil)

// Searcher runs one search for a normalized, non-empty query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
}

// SearcherFunc adapts a function to Searcher.
type SearcherFunc func(ctx context.Context, query string) ([]domain.SearchResult, error)

// Search calls f.
func (f SearcherFunc) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	return f(ctx, query)
}

// SearchControllerOption configures a SearchController.
type SearchControllerOption func(*SearchController)

// WithDebounce sets the quiet period before a search is issued.
func WithDebounce(d time.Duration) SearchControllerOption {
	return func(s *SearchController) {
		s.delay = d
	}
}

// WithClock replaces the clock driving the debounce timer.
func WithClock(c Clock) SearchControllerOption {
	return func(s *SearchController) {
		s.clock = c
	}
}

// WithSpawn replaces how searches are started. The default runs each on its own goroutine.
func WithSpawn(spawn func(func())) SearchControllerOption {
	return func(s *SearchController) {
		s.spawn = spawn
	}
}

// SearchController is a debounced search-as-you-type field.
//
// Every issued search is tagged with a sequence number and its own
// cancellable context. A completion is applied only if its tag is still the
// accepted one, so a slow response for an old query never overwrites newer state.
type SearchController struct {
	name     string
	searcher Searcher
	clock    Clock
	delay    time.Duration
	spawn    func(func())
	timer    *DebounceTimer

	ctx    context.Context
	stop   context.CancelFunc
	notify chan struct{}

	mu       sync.Mutex
	state    domain.SearchState
	accepted uint64
	cancel   context.CancelFunc
	closed   bool
}

// NewSearchController creates a controller that searches with searcher.
// The name only appears in logs.
func NewSearchController(name string, searcher Searcher, opts ...SearchControllerOption) *SearchController {
	s := &SearchController{
		name:     name,
		searcher: searcher,
		clock:    RealClock(),
		delay:    domain.DefaultDebounce,
		spawn:    func(f func()) { go f() },
		notify:   make(chan struct{}, 1),
		state:    domain.SearchState{Phase: domain.SearchPhaseIdle},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.timer = NewDebounceTimer(s.clock, s.delay)
	s.ctx, s.stop = context.WithCancel(context.Background())
	return s
}

// OnQueryChange feeds the field's current raw text.
func (s *SearchController) OnQueryChange(raw string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	query := domain.NormalizeQuery(raw)
	s.state.QueryText = raw
	if query == s.state.NormalizedQuery {
		s.mu.Unlock()
		return
	}
	s.state.NormalizedQuery = query
	s.invalidateLocked()

	if query == "" {
		s.idleLocked()
		s.mu.Unlock()
		s.signal()
		return
	}

	s.timer.Arm(func() { s.fire(query) })
	s.state.Phase = domain.SearchPhasePendingDebounce
	s.state.IsLoading = false
	s.state.HasSearched = false
	s.state.Err = nil
	s.mu.Unlock()

	logger.Debug("%s: %q pending for %s", s.name, query, s.timer.Delay())
	s.signal()
}

// SearchNow issues a search for raw immediately, marked as explicit.
func (s *SearchController) SearchNow(raw string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	query := domain.NormalizeQuery(raw)
	s.state.QueryText = raw
	s.state.NormalizedQuery = query
	s.invalidateLocked()

	if query == "" {
		s.idleLocked()
		s.mu.Unlock()
		s.signal()
		return
	}

	launch := s.issueLocked(query, true)
	s.mu.Unlock()
	s.signal()
	launch()
}

// Flush fires a pending debounce timer immediately.
func (s *SearchController) Flush() {
	s.timer.Fire()
}

// State returns a snapshot of the field.
func (s *SearchController) State() domain.SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state
	if s.state.Results != nil {
		state.Results = make([]domain.SearchResult, len(s.state.Results))
		copy(state.Results, s.state.Results)
	}
	return state
}

// Results returns the current results.
func (s *SearchController) Results() []domain.SearchResult {
	return s.State().Results
}

// Changed receives after state changes. Several changes may share one receive.
func (s *SearchController) Changed() <-chan struct{} {
	return s.notify
}

// SetDelay changes the debounce delay for later keystrokes.
func (s *SearchController) SetDelay(d time.Duration) {
	s.timer.SetDelay(d)
}

// Close cancels pending and in-flight work. Later input is ignored.
func (s *SearchController) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.invalidateLocked()
	s.stop()
}

// fire runs when the debounce timer for query expires.
func (s *SearchController) fire(query string) {
	s.mu.Lock()
	if s.closed || query != s.state.NormalizedQuery {
		s.mu.Unlock()
		return
	}
	launch := s.issueLocked(query, false)
	s.mu.Unlock()
	s.signal()
	launch()
}

// issueLocked moves to Loading and returns the function that starts the request.
// explicit marks the request context with domain.WithExplicitSearch.
// The caller must release the lock before calling it.
func (s *SearchController) issueLocked(query string, explicit bool) func() {
	s.state.Seq++
	seq := s.state.Seq
	s.accepted = seq

	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	if explicit {
		ctx = domain.WithExplicitSearch(ctx)
	}

	s.state.Phase = domain.SearchPhaseLoading
	s.state.IsLoading = true
	s.state.HasSearched = false
	s.state.Err = nil

	logger.Debug("%s: issuing search #%d for %q", s.name, seq, query)
	return func() {
		s.spawn(func() {
			defer cancel()
			results, err := s.searcher.Search(ctx, query)
			s.complete(seq, results, err)
		})
	}
}

func (s *SearchController) complete(seq uint64, results []domain.SearchResult, err error) {
	s.mu.Lock()
	if s.closed || seq != s.accepted {
		s.mu.Unlock()
		logger.Debug("%s: discarding stale search #%d", s.name, seq)
		return
	}
	s.accepted = 0
	s.cancel = nil

	s.state.Phase = domain.SearchPhaseReady
	s.state.IsLoading = false
	s.state.HasSearched = true
	if err != nil {
		logger.Warn("%s: search #%d failed: %v", s.name, seq, err)
		s.state.Results = nil
		s.state.Err = err
	} else {
		if results == nil {
			results = []domain.SearchResult{}
		}
		s.state.Results = results
		s.state.Err = nil
	}
	s.mu.Unlock()
	s.signal()
}

// invalidateLocked cancels the pending timer and any in-flight request.
func (s *SearchController) invalidateLocked() {
	s.timer.Cancel()
	s.accepted = 0
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *SearchController) idleLocked() {
	s.state.Phase = domain.SearchPhaseIdle
	s.state.IsLoading = false
	s.state.HasSearched = false
	s.state.Results = nil
	s.state.Err = nil
}

func (s *SearchController) signal() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}
