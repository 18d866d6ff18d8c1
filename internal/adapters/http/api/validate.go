// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/stevillis/megasena/internal/domain/types"
)

// ValidateDependencies defines the interface for pick validation.
type ValidateDependencies interface {
	Validate(nums []int) (types.NumberSet, error)
}

// ValidateHandler handles pick validation requests.
type ValidateHandler struct {
	deps ValidateDependencies
}

// NewValidateHandler creates a new validate handler.
func NewValidateHandler(deps ValidateDependencies) *ValidateHandler {
	return &ValidateHandler{deps: deps}
}

// validateRequest mirrors the OpenAPI schema for POST /api/v1/validate.
type validateRequest struct {
	Numbers []int `json:"numbers"`
}

type validateResponse struct {
	Numbers types.NumberSet `json:"numbers"`
	Key     string          `json:"key"`
}

// HandleValidate handles POST /api/v1/validate requests.
func (h *ValidateHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	const op = "api.validate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	set, err := h.deps.Validate(req.Numbers)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{Numbers: set, Key: set.Key()})
}
