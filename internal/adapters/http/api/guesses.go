// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/stevillis/megasena/internal/domain/model"
)

// GuessDependencies defines the interface for guess operations.
type GuessDependencies interface {
	Generate(ctx context.Context, fixed []int, count int, commit bool) ([]model.Guess, error)
	ListGuesses(ctx context.Context, scope GuessScope) ([]model.Guess, error)
	CheckGuesses(ctx context.Context, contest, minHits int) ([]model.GuessCheck, error)
	SetCommitted(ctx context.Context, id uuid.UUID, committed bool) error
}

// GuessesHandler handles guess requests.
type GuessesHandler struct {
	deps GuessDependencies
}

// NewGuessesHandler creates a new guesses handler.
func NewGuessesHandler(deps GuessDependencies) *GuessesHandler {
	return &GuessesHandler{deps: deps}
}

// generateRequest mirrors the OpenAPI schema for POST /api/v1/guesses/generate.
type generateRequest struct {
	Fixed  []int `json:"fixed"`
	Count  int   `json:"count"`
	Commit bool  `json:"commit"`
}

// checkGuessesRequest mirrors the OpenAPI schema for POST /api/v1/guesses/check.
type checkGuessesRequest struct {
	Contest int `json:"contest"`
	MinHits int `json:"min_hits"`
}

// patchGuessRequest mirrors the OpenAPI schema for PATCH /api/v1/guesses/{id}.
// Committed is a pointer so a missing field can be told apart from false.
type patchGuessRequest struct {
	Committed *bool `json:"committed"`
}

// HandleGuesses handles GET /api/v1/guesses requests.
func (h *GuessesHandler) HandleGuesses(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_guesses"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	guesses, err := h.deps.ListGuesses(r.Context(), GuessScope(r.URL.Query().Get("scope")))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if guesses == nil {
		guesses = []model.Guess{}
	}
	writeJSON(w, http.StatusOK, guesses)
}

// HandleGenerateGuesses handles POST /api/v1/guesses/generate requests.
func (h *GuessesHandler) HandleGenerateGuesses(w http.ResponseWriter, r *http.Request) {
	const op = "api.generate_guesses"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	guesses, err := h.deps.Generate(r.Context(), req.Fixed, req.Count, req.Commit)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, guesses)
}

// HandleCheckGuesses handles POST /api/v1/guesses/check requests.
func (h *GuessesHandler) HandleCheckGuesses(w http.ResponseWriter, r *http.Request) {
	const op = "api.check_guesses"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req checkGuessesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	checks, err := h.deps.CheckGuesses(r.Context(), req.Contest, req.MinHits)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if checks == nil {
		checks = []model.GuessCheck{}
	}
	writeJSON(w, http.StatusOK, checks)
}

// HandleGuessByID handles PATCH /api/v1/guesses/{id} requests.
func (h *GuessesHandler) HandleGuessByID(w http.ResponseWriter, r *http.Request) {
	const op = "api.patch_guess"
	if r.Method != http.MethodPatch {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /api/v1/guesses/
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/guesses/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	id, err := uuid.Parse(path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	var req patchGuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Committed == nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if err := h.deps.SetCommitted(r.Context(), id, *req.Committed); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
