// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/stevillis/megasena/internal/domain/model"
)

// DrawDependencies defines the interface for draw registry operations.
type DrawDependencies interface {
	RegisterDraw(ctx context.Context, contest int, date time.Time, nums []int) (model.Draw, error)
	ListDraws(ctx context.Context, scope DrawScope, limit int) ([]model.Draw, error)
	SearchDraws(ctx context.Context, nums []int, mode SearchMode) ([]model.DrawMatch, error)
	SyncDraws(ctx context.Context, upTo int) (model.SyncReport, error)
}

// DrawsHandler handles draw registry requests.
type DrawsHandler struct {
	deps DrawDependencies
}

// NewDrawsHandler creates a new draws handler.
func NewDrawsHandler(deps DrawDependencies) *DrawsHandler {
	return &DrawsHandler{deps: deps}
}

// registerDrawRequest mirrors the OpenAPI schema for POST /api/v1/draws.
type registerDrawRequest struct {
	Contest int    `json:"contest"`
	Date    string `json:"date"`
	Numbers []int  `json:"numbers"`
}

// syncRequest mirrors the OpenAPI schema for POST /api/v1/draws/sync.
type syncRequest struct {
	UpTo int `json:"up_to"`
}

// HandleDraws handles GET and POST /api/v1/draws requests.
func (h *DrawsHandler) HandleDraws(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListDraws(w, r)
	case http.MethodPost:
		h.handleRegisterDraw(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *DrawsHandler) handleListDraws(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_draws"
	q := r.URL.Query()
	scope, err := parseDrawScope(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	limit, err := parseCount(q, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	draws, err := h.deps.ListDraws(r.Context(), scope, limit)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if draws == nil {
		draws = []model.Draw{}
	}
	writeJSON(w, http.StatusOK, draws)
}

func (h *DrawsHandler) handleRegisterDraw(w http.ResponseWriter, r *http.Request) {
	const op = "api.register_draw"
	var req registerDrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	date, err := parseDrawDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	draw, err := h.deps.RegisterDraw(r.Context(), req.Contest, date, req.Numbers)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, draw)
}

// HandleSearchDraws handles GET /api/v1/draws/search requests.
func (h *DrawsHandler) HandleSearchDraws(w http.ResponseWriter, r *http.Request) {
	const op = "api.search_draws"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	nums, err := parseNumberList(q.Get("numbers"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	mode := SearchMode(q.Get("mode"))
	if mode == "" {
		mode = SearchModeAll
	}
	matches, err := h.deps.SearchDraws(r.Context(), nums, mode)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if matches == nil {
		matches = []model.DrawMatch{}
	}
	writeJSON(w, http.StatusOK, matches)
}

// HandleSyncDraws handles POST /api/v1/draws/sync requests.
func (h *DrawsHandler) HandleSyncDraws(w http.ResponseWriter, r *http.Request) {
	const op = "api.sync_draws"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	report, err := h.deps.SyncDraws(r.Context(), req.UpTo)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
