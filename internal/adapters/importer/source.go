// Package importer loads official draw history from tabular files.
package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stevillis/megasena/internal/domain/model"
	"github.com/stevillis/megasena/internal/domain/types"
)

// Row is one tabular draw record with raw cell text.
type Row struct {
	// Line is the 1-based row number in the source, header included.
	Line    int
	Contest string
	Date    string
	Balls   [types.SetSize]string
}

// RowSource yields the data rows of a tabular document. Next returns io.EOF
// when the source is exhausted and a model.RowError for rows that are
// structurally broken but do not prevent reading further.
type RowSource interface {
	Next() (Row, error)
}

// colMap locates the draw columns inside a header row.
type colMap struct {
	contest int
	date    int
	balls   [types.SetSize]int
}

// mapHeader resolves column positions from the header row. Portuguese and
// English column names are accepted.
func mapHeader(header []string) (colMap, error) {
	cols := colMap{contest: -1, date: -1}
	for i := range cols.balls {
		cols.balls[i] = -1
	}

	for i, cell := range header {
		name := normalizeHeader(cell)
		switch name {
		case "concurso", "contest":
			cols.contest = i
		case "data", "date":
			cols.date = i
		default:
			if n, ok := ballColumn(name); ok {
				cols.balls[n-1] = i
			}
		}
	}

	if cols.contest < 0 || cols.date < 0 {
		return colMap{}, ErrBadHeader
	}
	for _, idx := range cols.balls {
		if idx < 0 {
			return colMap{}, ErrBadHeader
		}
	}
	return cols, nil
}

func normalizeHeader(cell string) string {
	cell = strings.ToLower(strings.TrimSpace(cell))
	cell = strings.ReplaceAll(cell, " ", "")
	cell = strings.ReplaceAll(cell, "_", "")
	return cell
}

// ballColumn reports the 1-based ball position named by a header cell.
func ballColumn(name string) (int, bool) {
	for _, prefix := range []string{"bola", "ball", "dezena"} {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err == nil && n >= 1 && n <= types.SetSize {
			return n, true
		}
	}
	return 0, false
}

// extract pulls the mapped cells out of one record.
func (c colMap) extract(line int, record []string) (Row, error) {
	width := c.contest
	if c.date > width {
		width = c.date
	}
	for _, idx := range c.balls {
		if idx > width {
			width = idx
		}
	}
	if len(record) <= width {
		return Row{}, model.RowError{
			Row:    line,
			Reason: fmt.Sprintf("row has %d fields, expected at least %d", len(record), width+1),
		}
	}

	row := Row{Line: line, Contest: record[c.contest], Date: record[c.date]}
	for i, idx := range c.balls {
		row.Balls[i] = record[idx]
	}
	return row, nil
}
