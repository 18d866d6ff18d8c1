package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stevillis/megasena/internal/domain/model"
	"github.com/stevillis/megasena/pkg/metrics"
)

// Default in-memory store configuration constants.
const (
	defaultMetricsInterval = 5 * time.Second
)

// MemDrawStore is an in-memory DrawStore. Draws live in a contest-keyed map
// next to a sorted contest index so List can walk the history in contest
// order without sorting per call.
type MemDrawStore struct {
	memConfig

	mu       sync.RWMutex
	draws    map[int]model.Draw
	contests []int // sorted ascending

	// Background metrics management
	wg       sync.WaitGroup
	stopChan chan struct{}
}

// NewMemDrawStore constructs an in-memory draw store with configuration
// options.
func NewMemDrawStore(ctx context.Context, opts ...Option) *MemDrawStore {
	s := &MemDrawStore{
		memConfig: memConfig{metricsInterval: defaultMetricsInterval},
		draws:     make(map[int]model.Draw),
	}

	for _, opt := range opts {
		opt(&s.memConfig)
	}

	s.stopChan = make(chan struct{})
	s.startMetricsUpdater(ctx)

	return s
}

// startMetricsUpdater starts a background goroutine that publishes the store
// size gauge at the configured interval.
func (s *MemDrawStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.mu.RLock()
				count := len(s.draws)
				s.mu.RUnlock()
				metrics.UpdateStoreDraws(count)
			}
		}
	}()
}

// Close gracefully shuts down the background metrics goroutine.
func (s *MemDrawStore) Close() error {
	select {
	case <-s.stopChan:
		// Channel already closed
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}

// Put implements DrawStore.Put.
func (s *MemDrawStore) Put(ctx context.Context, draw model.Draw) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreWriteLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.draws[draw.Contest]; ok {
		metrics.RecordErrorByComponent("repository", "duplicate_contest")
		return ErrDuplicateContest
	}
	s.draws[draw.Contest] = draw
	s.insertContest(draw.Contest)
	return nil
}

// Replace implements DrawStore.Replace.
func (s *MemDrawStore) Replace(ctx context.Context, draw model.Draw) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreWriteLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.draws[draw.Contest]; !ok {
		s.insertContest(draw.Contest)
	}
	s.draws[draw.Contest] = draw
	return nil
}

// Get implements DrawStore.Get.
func (s *MemDrawStore) Get(ctx context.Context, contest int) (model.Draw, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	draw, ok := s.draws[contest]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Draw{}, ErrNotFound
	}
	return draw, nil
}

// List implements DrawStore.List. Draws come back in the requested contest
// order; the limit applies after ordering.
func (s *MemDrawStore) List(ctx context.Context, filter Filter) ([]model.Draw, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Draw, 0, len(s.contests))
	appendMatch := func(contest int) bool {
		draw := s.draws[contest]
		if filter.YearEndOnly && !draw.YearEndSpecial {
			return true
		}
		out = append(out, draw)
		return filter.Limit <= 0 || len(out) < filter.Limit
	}

	if filter.Order == OrderDesc {
		for i := len(s.contests) - 1; i >= 0; i-- {
			contest := s.contests[i]
			if filter.ToContest > 0 && contest > filter.ToContest {
				continue
			}
			if filter.FromContest > 0 && contest < filter.FromContest {
				break
			}
			if !appendMatch(contest) {
				break
			}
		}
		return out, nil
	}

	for _, contest := range s.contests {
		if filter.FromContest > 0 && contest < filter.FromContest {
			continue
		}
		if filter.ToContest > 0 && contest > filter.ToContest {
			break
		}
		if !appendMatch(contest) {
			break
		}
	}
	return out, nil
}

// MaxContest implements DrawStore.MaxContest.
func (s *MemDrawStore) MaxContest(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.contests) == 0 {
		return 0, nil
	}
	return s.contests[len(s.contests)-1], nil
}

// Count implements DrawStore.Count.
func (s *MemDrawStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.draws), nil
}

// insertContest keeps the contest index sorted. Callers hold the write lock.
func (s *MemDrawStore) insertContest(contest int) {
	i := sort.SearchInts(s.contests, contest)
	if i < len(s.contests) && s.contests[i] == contest {
		return
	}
	s.contests = append(s.contests, 0)
	copy(s.contests[i+1:], s.contests[i:])
	s.contests[i] = contest
}

// MemGuessStore is an in-memory GuessStore. Guesses live in an id-keyed map
// with an insertion-order index.
type MemGuessStore struct {
	memConfig

	mu       sync.RWMutex
	guesses  map[uuid.UUID]model.Guess
	inserted []uuid.UUID // insertion order

	// Background metrics management
	wg       sync.WaitGroup
	stopChan chan struct{}
}

// NewMemGuessStore constructs an in-memory guess store with configuration
// options.
func NewMemGuessStore(ctx context.Context, opts ...Option) *MemGuessStore {
	s := &MemGuessStore{
		memConfig: memConfig{metricsInterval: defaultMetricsInterval},
		guesses:   make(map[uuid.UUID]model.Guess),
	}

	for _, opt := range opts {
		opt(&s.memConfig)
	}

	s.stopChan = make(chan struct{})
	s.startMetricsUpdater(ctx)

	return s
}

// startMetricsUpdater starts a background goroutine that publishes the store
// size gauge at the configured interval.
func (s *MemGuessStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.mu.RLock()
				count := len(s.guesses)
				s.mu.RUnlock()
				metrics.UpdateStoreGuesses(count)
			}
		}
	}()
}

// Close gracefully shuts down the background metrics goroutine.
func (s *MemGuessStore) Close() error {
	select {
	case <-s.stopChan:
		// Channel already closed
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}

// Add implements GuessStore.Add.
func (s *MemGuessStore) Add(ctx context.Context, guess model.Guess) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreWriteLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.guesses[guess.ID]; !ok {
		s.inserted = append(s.inserted, guess.ID)
	}
	s.guesses[guess.ID] = guess
	return nil
}

// Get implements GuessStore.Get.
func (s *MemGuessStore) Get(ctx context.Context, id uuid.UUID) (model.Guess, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	guess, ok := s.guesses[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Guess{}, ErrNotFound
	}
	return guess, nil
}

// List implements GuessStore.List. Guesses come back ordered by creation
// time ascending; insertion order breaks ties.
func (s *MemGuessStore) List(ctx context.Context, filter GuessFilter) ([]model.Guess, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Guess, 0, len(s.inserted))
	for _, id := range s.inserted {
		guess := s.guesses[id]
		if filter.Committed != nil && guess.Committed != *filter.Committed {
			continue
		}
		out = append(out, guess)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// SetCommitted implements GuessStore.SetCommitted.
func (s *MemGuessStore) SetCommitted(ctx context.Context, id uuid.UUID, committed bool) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreWriteLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	guess, ok := s.guesses[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return ErrNotFound
	}
	guess.Committed = committed
	s.guesses[id] = guess
	return nil
}

// Count implements GuessStore.Count.
func (s *MemGuessStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.guesses), nil
}
