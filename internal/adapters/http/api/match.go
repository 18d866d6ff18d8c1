// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/stevillis/megasena/internal/domain/model"
)

// MatchDependencies defines the interface for match scoring.
type MatchDependencies interface {
	Evaluate(ctx context.Context, nums []int, contest int) (model.MatchResult, error)
	Simulate(ctx context.Context, nums []int, scope DrawScope) ([]model.MatchResult, error)
}

// MatchHandler handles match scoring requests.
type MatchHandler struct {
	deps MatchDependencies
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps MatchDependencies) *MatchHandler {
	return &MatchHandler{deps: deps}
}

// evaluateRequest mirrors the OpenAPI schema for POST /api/v1/evaluate.
type evaluateRequest struct {
	Numbers []int `json:"numbers"`
	Contest int   `json:"contest"`
}

// simulateRequest mirrors the OpenAPI schema for POST /api/v1/simulate.
type simulateRequest struct {
	Numbers []int  `json:"numbers"`
	Scope   string `json:"scope"`
	From    int    `json:"from"`
	To      int    `json:"to"`
}

// HandleEvaluate handles POST /api/v1/evaluate requests.
func (h *MatchHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	result, err := h.deps.Evaluate(r.Context(), req.Numbers, req.Contest)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleSimulate handles POST /api/v1/simulate requests.
func (h *MatchHandler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	const op = "api.simulate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	scope, err := drawScopeFrom(req.Scope, req.From, req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	results, err := h.deps.Simulate(r.Context(), req.Numbers, scope)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if results == nil {
		results = []model.MatchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}
