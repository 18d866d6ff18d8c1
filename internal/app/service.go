// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stevillis/megasena/internal/adapters/importer"
	"github.com/stevillis/megasena/internal/adapters/repository"
	"github.com/stevillis/megasena/internal/domain/analysis"
	"github.com/stevillis/megasena/internal/domain/generate"
	"github.com/stevillis/megasena/internal/domain/match"
	"github.com/stevillis/megasena/internal/domain/model"
	"github.com/stevillis/megasena/internal/domain/types"
	"github.com/stevillis/megasena/pkg/logger"
	"github.com/stevillis/megasena/pkg/metrics"
)

// DrawScope bounds an operation to a slice of the stored history. The zero
// value covers every stored draw.
type DrawScope struct {
	// SpecialOnly keeps only year-end Mega da Virada draws.
	SpecialOnly bool
	// FromContest and ToContest bound the contest range when positive.
	FromContest int
	ToContest   int
}

// SearchMode selects how queried numbers must match a draw.
type SearchMode string

// Search modes accepted by SearchDraws.
const (
	// SearchModeAll keeps draws containing every queried number.
	SearchModeAll SearchMode = "all"
	// SearchModeAny keeps draws containing at least one queried number.
	SearchModeAny SearchMode = "any"
)

// GuessScope selects which stored guesses ListGuesses returns.
type GuessScope string

// Guess listing scopes.
const (
	// GuessScopeAll returns every stored guess.
	GuessScopeAll GuessScope = "all"
	// GuessScopeCommitted returns guesses marked as played.
	GuessScopeCommitted GuessScope = "committed"
	// GuessScopeSuggestions returns generated guesses not yet committed.
	GuessScopeSuggestions GuessScope = "suggestions"
)

// Syncer backfills missing contests from the official results service.
type Syncer interface {
	Sync(ctx context.Context, from, to int) (model.SyncReport, error)
}

// Service implements the API dependencies for the draw analysis engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	draws     repository.DrawStore
	guesses   repository.GuessStore
	analyzer  *analysis.Analyzer
	generator *generate.Generator
	syncer    Syncer

	// Time source
	clock func() time.Time

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDrawStore sets the draw store backing the service.
func WithDrawStore(store repository.DrawStore) Option {
	return func(s *Service) {
		if store != nil {
			s.draws = store
		}
	}
}

// WithGuessStore sets the guess store backing the service.
func WithGuessStore(store repository.GuessStore) Option {
	return func(s *Service) {
		if store != nil {
			s.guesses = store
		}
	}
}

// WithAnalyzer sets the frequency analyzer used by the service.
func WithAnalyzer(a *analysis.Analyzer) Option {
	return func(s *Service) {
		if a != nil {
			s.analyzer = a
		}
	}
}

// WithGenerator sets the guess generator used by the service.
func WithGenerator(g *generate.Generator) Option {
	return func(s *Service) {
		if g != nil {
			s.generator = g
		}
	}
}

// WithSyncer sets the results syncer. Without one, SyncDraws fails with
// ErrSyncDisabled.
func WithSyncer(syncer Syncer) Option {
	return func(s *Service) {
		if syncer != nil {
			s.syncer = syncer
		}
	}
}

// WithClock sets the time source used for guess timestamps and uptime.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		clock: time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components that were not injected.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting draw analysis service...")

	if s.draws == nil {
		s.draws = repository.NewMemDrawStore(ctx)
		s.logger.Info(ctx, "using in-memory draw store")
	}
	if s.guesses == nil {
		s.guesses = repository.NewMemGuessStore(ctx)
		s.logger.Info(ctx, "using in-memory guess store")
	}
	if s.analyzer == nil {
		s.analyzer = analysis.New()
	}
	if s.generator == nil {
		s.generator = generate.New()
	}

	s.startedAt = s.clock()
	s.started = true
	s.logger.Info(ctx, "draw analysis service started",
		logger.Bool("syncEnabled", s.syncer != nil),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping draw analysis service...")

	if s.draws != nil {
		_ = s.draws.Close()
	}
	if s.guesses != nil {
		_ = s.guesses.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "draw analysis service stopped")
}

// Validate checks a raw number pick against the game rules and returns the
// normalized set.
func (s *Service) Validate(nums []int) (types.NumberSet, error) {
	return types.NewNumberSet(nums...)
}

// NumberFrequency counts how often each number was drawn inside the scope.
// The ranking holds the topN most frequent numbers, or every number when
// topN is not positive.
func (s *Service) NumberFrequency(ctx context.Context, scope DrawScope, topN int) (model.FrequencyReport, []model.RankedNumber, error) {
	draws, err := s.drawsInScope(ctx, scope)
	if err != nil {
		return model.FrequencyReport{}, nil, fmt.Errorf("load draws: %w", err)
	}

	start := time.Now()
	report := s.analyzer.Numbers(draws)
	metrics.RecordAnalysisLatency(float64(time.Since(start).Milliseconds()))

	return report, analysis.TopNumbers(report, topN), nil
}

// ComboFrequency counts how often each k-subset of drawn numbers appeared
// inside the scope. The ranking holds the topN most frequent combinations.
func (s *Service) ComboFrequency(ctx context.Context, scope DrawScope, k, topN int) (model.ComboFrequencyReport, []model.RankedCombo, error) {
	draws, err := s.drawsInScope(ctx, scope)
	if err != nil {
		return model.ComboFrequencyReport{}, nil, fmt.Errorf("load draws: %w", err)
	}

	start := time.Now()
	report, err := s.analyzer.Combinations(draws, k)
	if err != nil {
		return model.ComboFrequencyReport{}, nil, err
	}
	metrics.RecordAnalysisLatency(float64(time.Since(start).Milliseconds()))

	return report, analysis.TopCombos(report, topN), nil
}

// Evaluate scores a pick against one stored contest.
func (s *Service) Evaluate(ctx context.Context, nums []int, contest int) (model.MatchResult, error) {
	set, err := types.NewNumberSet(nums...)
	if err != nil {
		return model.MatchResult{}, err
	}

	draw, err := s.draws.Get(ctx, contest)
	if err != nil {
		return model.MatchResult{}, err
	}

	result := match.Evaluate(set, draw)
	if result.Tier != types.TierNone {
		metrics.RecordMatchByTier(string(result.Tier))
	}

	return result, nil
}

// Simulate replays a pick against every draw in scope and returns the
// prize-tier hits in contest order.
func (s *Service) Simulate(ctx context.Context, nums []int, scope DrawScope) ([]model.MatchResult, error) {
	set, err := types.NewNumberSet(nums...)
	if err != nil {
		return nil, err
	}

	draws, err := s.drawsInScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("load draws: %w", err)
	}

	start := time.Now()
	results := match.SimulateAll(set, draws)
	metrics.RecordSimulationRun()
	metrics.RecordSimulationLatency(float64(time.Since(start).Milliseconds()))
	for _, r := range results {
		metrics.RecordMatchByTier(string(r.Tier))
	}

	return results, nil
}

// SearchDraws returns draws containing the queried numbers, newest contest
// first. SearchModeAll requires every number to be present, SearchModeAny at
// least one. Each match carries the queried numbers the draw contains.
func (s *Service) SearchDraws(ctx context.Context, nums []int, mode SearchMode) ([]model.DrawMatch, error) {
	if mode != SearchModeAll && mode != SearchModeAny {
		return nil, fmt.Errorf("%w: unknown search mode %q", ErrInvalidQuery, mode)
	}

	query, err := normalizeQuery(nums)
	if err != nil {
		return nil, err
	}

	draws, err := s.draws.List(ctx, repository.Filter{Order: repository.OrderDesc})
	if err != nil {
		return nil, fmt.Errorf("load draws: %w", err)
	}

	matches := make([]model.DrawMatch, 0)
	for _, draw := range draws {
		matched := make([]int, 0, len(query))
		for _, n := range query {
			if draw.Numbers.Contains(n) {
				matched = append(matched, n)
			}
		}
		if mode == SearchModeAll && len(matched) != len(query) {
			continue
		}
		if len(matched) == 0 {
			continue
		}
		matches = append(matches, model.DrawMatch{Draw: draw, Matched: matched})
	}

	return matches, nil
}

// CheckGuesses scores every stored guess against one contest and keeps those
// with at least minHits matched numbers. Results are ordered by hits
// descending, committed guesses before suggestions on ties, oldest first
// after that.
func (s *Service) CheckGuesses(ctx context.Context, contest, minHits int) ([]model.GuessCheck, error) {
	if minHits < 1 || minHits > types.SetSize {
		return nil, fmt.Errorf("%w: min hits %d out of range", ErrInvalidQuery, minHits)
	}

	draw, err := s.draws.Get(ctx, contest)
	if err != nil {
		return nil, err
	}

	guesses, err := s.guesses.List(ctx, repository.GuessFilter{})
	if err != nil {
		return nil, fmt.Errorf("load guesses: %w", err)
	}

	checks := make([]model.GuessCheck, 0)
	for _, g := range guesses {
		hits := g.Numbers.Intersect(draw.Numbers)
		if hits < minHits {
			continue
		}
		checks = append(checks, model.GuessCheck{Guess: g, Hits: hits, Tier: match.TierFor(hits)})
	}

	sort.SliceStable(checks, func(i, j int) bool {
		if checks[i].Hits != checks[j].Hits {
			return checks[i].Hits > checks[j].Hits
		}
		if checks[i].Guess.Committed != checks[j].Guess.Committed {
			return checks[i].Guess.Committed
		}
		return checks[i].Guess.CreatedAt.Before(checks[j].Guess.CreatedAt)
	})

	return checks, nil
}

// Generate produces count random guesses embedding the fixed numbers and
// stores them. When commit is true the batch is stored already committed.
func (s *Service) Generate(ctx context.Context, fixed []int, count int, commit bool) ([]model.Guess, error) {
	subset, err := types.NewFixedSubset(fixed...)
	if err != nil {
		return nil, err
	}

	batch, err := s.generator.Batch(ctx, subset, count)
	if err != nil {
		return nil, err
	}

	for i := range batch {
		batch[i].Committed = commit
		if err := s.guesses.Add(ctx, batch[i]); err != nil {
			return nil, fmt.Errorf("store guess: %w", err)
		}
		if commit {
			metrics.RecordGuessCommitted()
		}
	}
	metrics.RecordGuessesGenerated(len(batch))

	s.logger.Info(ctx, "guesses generated",
		logger.Int("count", len(batch)),
		logger.Int("fixed", subset.Size()),
		logger.Bool("committed", commit),
	)

	return batch, nil
}

// RegisterDraw validates and stores one manually entered draw.
func (s *Service) RegisterDraw(ctx context.Context, contest int, date time.Time, nums []int) (model.Draw, error) {
	set, err := types.NewNumberSet(nums...)
	if err != nil {
		return model.Draw{}, err
	}

	draw, err := model.NewDraw(contest, date, set)
	if err != nil {
		return model.Draw{}, err
	}

	if err := s.draws.Put(ctx, draw); err != nil {
		return model.Draw{}, err
	}

	metrics.RecordDrawRegistered()
	s.logger.Info(ctx, "draw registered",
		logger.Int("contest", draw.Contest),
		logger.String("numbers", draw.Numbers.String()),
		logger.Bool("yearEndSpecial", draw.YearEndSpecial),
	)

	return draw, nil
}

// ImportDraws streams historical draws from src into the store under the
// given duplicate policy.
func (s *Service) ImportDraws(ctx context.Context, src importer.RowSource, policy importer.DuplicatePolicy) (model.ImportReport, error) {
	imp := importer.New(s.draws, importer.WithDuplicatePolicy(policy))

	report, err := imp.Import(ctx, src)
	if err != nil {
		return report, err
	}

	metrics.RecordDrawsImported(report.Added + report.Replaced)
	metrics.RecordImportRowsSkipped(report.Skipped)
	metrics.RecordImportRowErrors(len(report.Errors))
	s.logger.Info(ctx, "import finished",
		logger.Int("added", report.Added),
		logger.Int("skipped", report.Skipped),
		logger.Int("replaced", report.Replaced),
		logger.Int("rowErrors", len(report.Errors)),
	)

	return report, nil
}

// SyncDraws backfills contests missing from the store up to upTo. A zero or
// negative upTo syncs up to the latest published contest.
func (s *Service) SyncDraws(ctx context.Context, upTo int) (model.SyncReport, error) {
	if s.syncer == nil {
		return model.SyncReport{}, ErrSyncDisabled
	}
	return s.syncer.Sync(ctx, 0, upTo)
}

// ListDraws returns draws in scope, newest contest first. A positive limit
// caps the result length.
func (s *Service) ListDraws(ctx context.Context, scope DrawScope, limit int) ([]model.Draw, error) {
	return s.draws.List(ctx, repository.Filter{
		FromContest: scope.FromContest,
		ToContest:   scope.ToContest,
		YearEndOnly: scope.SpecialOnly,
		Order:       repository.OrderDesc,
		Limit:       limit,
	})
}

// ListGuesses returns stored guesses in the given scope in creation order.
func (s *Service) ListGuesses(ctx context.Context, scope GuessScope) ([]model.Guess, error) {
	var filter repository.GuessFilter

	switch scope {
	case GuessScopeAll, "":
	case GuessScopeCommitted:
		committed := true
		filter.Committed = &committed
	case GuessScopeSuggestions:
		committed := false
		filter.Committed = &committed
	default:
		return nil, fmt.Errorf("%w: unknown guess scope %q", ErrInvalidQuery, scope)
	}

	return s.guesses.List(ctx, filter)
}

// SetCommitted flips the committed flag on a stored guess.
func (s *Service) SetCommitted(ctx context.Context, id uuid.UUID, committed bool) error {
	if err := s.guesses.SetCommitted(ctx, id, committed); err != nil {
		return err
	}
	if committed {
		metrics.RecordGuessCommitted()
	}
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"syncEnabled": s.syncer != nil,
	}

	if s.started {
		stats["uptimeSeconds"] = int64(s.clock().Sub(s.startedAt).Seconds())

		if count, err := s.draws.Count(ctx); err == nil {
			stats["draws"] = count
			metrics.UpdateStoreDraws(count)
		}
		if last, err := s.draws.MaxContest(ctx); err == nil {
			stats["lastContest"] = last
		}
		if count, err := s.guesses.Count(ctx); err == nil {
			stats["guesses"] = count
			metrics.UpdateStoreGuesses(count)
		}
	}

	return stats
}

// drawsInScope loads the scoped slice of history in contest order for the
// analysis operations.
func (s *Service) drawsInScope(ctx context.Context, scope DrawScope) ([]model.Draw, error) {
	return s.draws.List(ctx, repository.Filter{
		FromContest: scope.FromContest,
		ToContest:   scope.ToContest,
		YearEndOnly: scope.SpecialOnly,
		Order:       repository.OrderAsc,
	})
}

// normalizeQuery validates search numbers and returns them sorted with
// duplicates removed.
func normalizeQuery(nums []int) ([]int, error) {
	if len(nums) == 0 {
		return nil, fmt.Errorf("%w: no numbers given", ErrInvalidQuery)
	}

	seen := make(map[int]struct{}, len(nums))
	query := make([]int, 0, len(nums))
	for _, n := range nums {
		if n < types.MinNumber || n > types.MaxNumber {
			return nil, fmt.Errorf("%w: number %d out of range", ErrInvalidQuery, n)
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		query = append(query, n)
	}
	sort.Ints(query)

	return query, nil
}
