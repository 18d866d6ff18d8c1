// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/stevillis/megasena/internal/adapters/importer"
	"github.com/stevillis/megasena/internal/adapters/repository"
	"github.com/stevillis/megasena/internal/adapters/results"
	service "github.com/stevillis/megasena/internal/app"
	"github.com/stevillis/megasena/internal/domain/analysis"
	"github.com/stevillis/megasena/internal/domain/generate"
	"github.com/stevillis/megasena/internal/domain/model"
	"github.com/stevillis/megasena/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Validate parses a raw pick without touching storage.
	Validate(nums []int) (types.NumberSet, error)

	// Frequency analysis over the stored draw history.
	NumberFrequency(ctx context.Context, scope DrawScope, topN int) (model.FrequencyReport, []model.RankedNumber, error)
	ComboFrequency(ctx context.Context, scope DrawScope, k, topN int) (model.ComboFrequencyReport, []model.RankedCombo, error)

	// Match scoring of picks against official draws.
	Evaluate(ctx context.Context, nums []int, contest int) (model.MatchResult, error)
	Simulate(ctx context.Context, nums []int, scope DrawScope) ([]model.MatchResult, error)

	// Draw registry operations.
	RegisterDraw(ctx context.Context, contest int, date time.Time, nums []int) (model.Draw, error)
	ListDraws(ctx context.Context, scope DrawScope, limit int) ([]model.Draw, error)
	SearchDraws(ctx context.Context, nums []int, mode SearchMode) ([]model.DrawMatch, error)
	ImportDraws(ctx context.Context, src importer.RowSource, policy importer.DuplicatePolicy) (model.ImportReport, error)
	SyncDraws(ctx context.Context, upTo int) (model.SyncReport, error)

	// Guess operations.
	Generate(ctx context.Context, fixed []int, count int, commit bool) ([]model.Guess, error)
	ListGuesses(ctx context.Context, scope GuessScope) ([]model.Guess, error)
	CheckGuesses(ctx context.Context, contest, minHits int) ([]model.GuessCheck, error)
	SetCommitted(ctx context.Context, id uuid.UUID, committed bool) error
}

// Query aliases mirror the service-layer query types used in handler
// signatures.
type (
	DrawScope  = service.DrawScope
	GuessScope = service.GuessScope
	SearchMode = service.SearchMode
)

// Search mode constants, re-exported for handler defaults.
const (
	SearchModeAll = service.SearchModeAll
	SearchModeAny = service.SearchModeAny
)

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	validateHandler  *ValidateHandler
	frequencyHandler *FrequencyHandler
	matchHandler     *MatchHandler
	drawsHandler     *DrawsHandler
	importHandler    *ImportHandler
	guessesHandler   *GuessesHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		validateHandler:  NewValidateHandler(deps),
		frequencyHandler: NewFrequencyHandler(deps),
		matchHandler:     NewMatchHandler(deps),
		drawsHandler:     NewDrawsHandler(deps),
		importHandler:    NewImportHandler(deps),
		guessesHandler:   NewGuessesHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/v1/validate", MetricsMiddleware(s.validateHandler.HandleValidate, "validate"))
	mux.HandleFunc("/api/v1/frequency", MetricsMiddleware(s.frequencyHandler.HandleNumberFrequency, "frequency"))
	mux.HandleFunc("/api/v1/combinations", MetricsMiddleware(s.frequencyHandler.HandleComboFrequency, "combinations"))
	mux.HandleFunc("/api/v1/evaluate", MetricsMiddleware(s.matchHandler.HandleEvaluate, "evaluate"))
	mux.HandleFunc("/api/v1/simulate", MetricsMiddleware(s.matchHandler.HandleSimulate, "simulate"))
	mux.HandleFunc("/api/v1/draws", MetricsMiddleware(s.drawsHandler.HandleDraws, "draws"))
	mux.HandleFunc("/api/v1/draws/search", MetricsMiddleware(s.drawsHandler.HandleSearchDraws, "draws_search"))
	mux.HandleFunc("/api/v1/draws/import", MetricsMiddleware(s.importHandler.HandleImportDraws, "draws_import"))
	mux.HandleFunc("/api/v1/draws/sync", MetricsMiddleware(s.drawsHandler.HandleSyncDraws, "draws_sync"))
	mux.HandleFunc("/api/v1/guesses", MetricsMiddleware(s.guessesHandler.HandleGuesses, "guesses"))
	mux.HandleFunc("/api/v1/guesses/generate", MetricsMiddleware(s.guessesHandler.HandleGenerateGuesses, "guesses_generate"))
	mux.HandleFunc("/api/v1/guesses/check", MetricsMiddleware(s.guessesHandler.HandleCheckGuesses, "guesses_check"))
	mux.HandleFunc("/api/v1/guesses/", MetricsMiddleware(s.guessesHandler.HandleGuessByID, "guesses_by_id"))
}

// errorResponse is the uniform error envelope for every API error.
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	detail := http.StatusText(status)
	if err != nil {
		detail = err.Error()
	}
	writeJSON(w, status, errorResponse{Error: code, Detail: detail})
}

// statusForError maps domain errors onto HTTP status codes and stable
// machine-readable error codes.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, types.ErrInvalidNumberSet),
		errors.Is(err, types.ErrInvalidFixedSubset),
		errors.Is(err, model.ErrInvalidContest),
		errors.Is(err, analysis.ErrInvalidComboSize),
		errors.Is(err, generate.ErrInvalidBatchSize),
		errors.Is(err, importer.ErrBadHeader),
		errors.Is(err, service.ErrInvalidQuery):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, repository.ErrDuplicateContest):
		return http.StatusConflict, "duplicate_contest"
	case errors.Is(err, generate.ErrGenerationExhausted):
		return http.StatusUnprocessableEntity, "generation_exhausted"
	case errors.Is(err, service.ErrSyncDisabled):
		return http.StatusServiceUnavailable, "sync_disabled"
	case errors.Is(err, results.ErrUpstream), errors.Is(err, results.ErrBadPayload):
		return http.StatusBadGateway, "sync_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeServiceError translates an error returned by the service layer into
// the matching HTTP response.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	status, code := statusForError(err)
	writeError(w, status, code, Wrap(op, err))
}
