// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/stevillis/megasena/internal/adapters/importer"
	"github.com/stevillis/megasena/internal/domain/model"
)

// ImportDependencies defines the interface for bulk draw imports.
type ImportDependencies interface {
	ImportDraws(ctx context.Context, src importer.RowSource, policy importer.DuplicatePolicy) (model.ImportReport, error)
}

// ImportHandler handles bulk draw import requests.
type ImportHandler struct {
	deps ImportDependencies
}

// NewImportHandler creates a new import handler.
func NewImportHandler(deps ImportDependencies) *ImportHandler {
	return &ImportHandler{deps: deps}
}

// maxImportBytes caps accepted upload size.
const maxImportBytes = 32 << 20

// HandleImportDraws handles POST /api/v1/draws/import requests. The draw
// file arrives either as the raw request body or as the "file" field of a
// multipart form; format and policy are query parameters.
func (h *ImportHandler) HandleImportDraws(w http.ResponseWriter, r *http.Request) {
	const op = "api.import_draws"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	policy, err := parseDuplicatePolicy(q.Get("policy"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	body, err := importBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	defer func() { _ = body.Close() }()

	src, err := rowSourceFor(q.Get("format"), body)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	report, err := h.deps.ImportDraws(r.Context(), src, policy)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// importBody picks the upload stream: the multipart "file" field when the
// request is a multipart form, the raw body otherwise.
func importBody(w http.ResponseWriter, r *http.Request) (io.ReadCloser, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return http.MaxBytesReader(w, r.Body, maxImportBytes), nil
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: missing multipart file field", ErrBadRequest)
	}
	return file, nil
}

// rowSourceFor builds the tabular source matching the format parameter.
// CSV is the default format.
func rowSourceFor(format string, body io.Reader) (importer.RowSource, error) {
	switch format {
	case "", "csv":
		return importer.NewCSVSource(body)
	case "xlsx":
		return importer.NewXLSXSource(body)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrBadRequest, format)
	}
}

// parseDuplicatePolicy maps the policy parameter onto importer policies.
// Skipping duplicates is the default.
func parseDuplicatePolicy(raw string) (importer.DuplicatePolicy, error) {
	switch raw {
	case "", "skip":
		return importer.DuplicateSkip, nil
	case "replace":
		return importer.DuplicateReplace, nil
	case "error":
		return importer.DuplicateError, nil
	default:
		return importer.DuplicateSkip, fmt.Errorf("%w: unknown policy %q", ErrBadRequest, raw)
	}
}
