// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/stevillis/megasena/internal/domain/model"
)

// FrequencyDependencies defines the interface for frequency analysis.
type FrequencyDependencies interface {
	NumberFrequency(ctx context.Context, scope DrawScope, topN int) (model.FrequencyReport, []model.RankedNumber, error)
	ComboFrequency(ctx context.Context, scope DrawScope, k, topN int) (model.ComboFrequencyReport, []model.RankedCombo, error)
}

// FrequencyHandler handles frequency analysis requests.
type FrequencyHandler struct {
	deps FrequencyDependencies
}

// NewFrequencyHandler creates a new frequency handler.
func NewFrequencyHandler(deps FrequencyDependencies) *FrequencyHandler {
	return &FrequencyHandler{deps: deps}
}

type frequencyResponse struct {
	Report  model.FrequencyReport `json:"report"`
	Ranking []model.RankedNumber  `json:"ranking"`
}

type comboFrequencyResponse struct {
	Report  model.ComboFrequencyReport `json:"report"`
	Ranking []model.RankedCombo        `json:"ranking"`
}

// HandleNumberFrequency handles GET /api/v1/frequency requests.
func (h *FrequencyHandler) HandleNumberFrequency(w http.ResponseWriter, r *http.Request) {
	const op = "api.frequency"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	scope, err := parseDrawScope(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	topN, err := parseCount(q, "top", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	report, ranking, err := h.deps.NumberFrequency(r.Context(), scope, topN)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, frequencyResponse{Report: report, Ranking: ranking})
}

// HandleComboFrequency handles GET /api/v1/combinations requests.
func (h *FrequencyHandler) HandleComboFrequency(w http.ResponseWriter, r *http.Request) {
	const op = "api.combinations"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	k, err := strconv.Atoi(q.Get("k"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	scope, err := parseDrawScope(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	topN, err := parseCount(q, "top", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	report, ranking, err := h.deps.ComboFrequency(r.Context(), scope, k, topN)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, comboFrequencyResponse{Report: report, Ranking: ranking})
}
