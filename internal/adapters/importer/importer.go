package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/stevillis/megasena/internal/adapters/repository"
	"github.com/stevillis/megasena/internal/domain/model"
	"github.com/stevillis/megasena/internal/domain/types"
)

// DuplicatePolicy selects how rows whose contest is already stored are
// handled.
type DuplicatePolicy int

// Duplicate contest policies.
const (
	// DuplicateSkip keeps the stored draw and counts the row as skipped.
	DuplicateSkip DuplicatePolicy = iota
	// DuplicateReplace overwrites the stored draw with the row.
	DuplicateReplace
	// DuplicateError keeps the stored draw and records a row error.
	DuplicateError
)

// Accepted date layouts, ISO first.
var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// Importer loads draws from a RowSource into a DrawStore. Malformed rows are
// collected per row and never abort the import.
type Importer struct {
	store  repository.DrawStore
	policy DuplicatePolicy
}

// New constructs an Importer writing to the given store.
func New(store repository.DrawStore, opts ...Option) *Importer {
	if store == nil {
		panic("importer: nil draw store")
	}

	im := &Importer{
		store:  store,
		policy: DuplicateSkip,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Import drains the source, validating each row and writing the resulting
// draws. The report counts added, skipped and replaced rows; rows that fail
// validation are collected as row errors. Source or store failures abort the
// import and return the report built so far.
func (im *Importer) Import(ctx context.Context, src RowSource) (model.ImportReport, error) {
	var report model.ImportReport

	for {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("import cancelled: %w", err)
		}

		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			return report, nil
		}
		if err != nil {
			var rowErr model.RowError
			if errors.As(err, &rowErr) {
				report.Errors = append(report.Errors, rowErr)
				continue
			}
			return report, fmt.Errorf("read source: %w", err)
		}

		draw, err := parseRow(row)
		if err != nil {
			var rowErr model.RowError
			if errors.As(err, &rowErr) {
				report.Errors = append(report.Errors, rowErr)
				continue
			}
			return report, err
		}

		if err := im.write(ctx, draw, row.Line, &report); err != nil {
			return report, err
		}
	}
}

// write stores one draw, applying the duplicate policy on contest conflicts.
func (im *Importer) write(ctx context.Context, draw model.Draw, line int, report *model.ImportReport) error {
	err := im.store.Put(ctx, draw)
	if err == nil {
		report.Added++
		return nil
	}
	if !errors.Is(err, repository.ErrDuplicateContest) {
		return fmt.Errorf("store draw %d: %w", draw.Contest, err)
	}

	switch im.policy {
	case DuplicateReplace:
		if err := im.store.Replace(ctx, draw); err != nil {
			return fmt.Errorf("replace draw %d: %w", draw.Contest, err)
		}
		report.Replaced++
	case DuplicateError:
		report.Errors = append(report.Errors, model.RowError{
			Row:    line,
			Reason: fmt.Sprintf("contest %d already stored", draw.Contest),
		})
	default:
		report.Skipped++
	}
	return nil
}

// parseRow validates one raw row into a Draw. All validation failures come
// back as model.RowError values.
func parseRow(row Row) (model.Draw, error) {
	contest, err := strconv.Atoi(strings.TrimSpace(row.Contest))
	if err != nil {
		return model.Draw{}, rowErrorf(row.Line, "bad contest %q", row.Contest)
	}

	date, err := parseDate(row.Date)
	if err != nil {
		return model.Draw{}, rowErrorf(row.Line, "bad date %q", row.Date)
	}

	nums := make([]int, 0, types.SetSize)
	for _, cell := range row.Balls {
		n, err := strconv.Atoi(strings.TrimSpace(cell))
		if err != nil {
			return model.Draw{}, rowErrorf(row.Line, "bad number %q", cell)
		}
		nums = append(nums, n)
	}

	set, err := types.NewNumberSet(nums...)
	if err != nil {
		return model.Draw{}, rowErrorf(row.Line, "invalid numbers: %v", err)
	}

	draw, err := model.NewDraw(contest, date, set)
	if err != nil {
		return model.Draw{}, rowErrorf(row.Line, "invalid contest %d", contest)
	}
	return draw, nil
}

func parseDate(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, cell); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", cell)
}

func rowErrorf(line int, format string, args ...any) model.RowError {
	return model.RowError{Row: line, Reason: fmt.Sprintf(format, args...)}
}
