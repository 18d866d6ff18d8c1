package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXSource yields draw rows from the first sheet of a spreadsheet.
type XLSXSource struct {
	rows [][]string
	cols colMap
	next int // index of the next unread data row
}

// NewXLSXSource loads the first sheet and resolves the column layout from
// its first row. Returns ErrBadHeader when the required columns are missing.
func NewXLSXSource(r io.Reader) (*XLSXSource, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrBadHeader
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrBadHeader
	}

	cols, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}
	return &XLSXSource{rows: rows, cols: cols, next: 1}, nil
}

// Next implements RowSource. Blank spreadsheet rows are skipped.
func (s *XLSXSource) Next() (Row, error) {
	for s.next < len(s.rows) {
		record := s.rows[s.next]
		line := s.next + 1 // sheet rows are 1-based
		s.next++

		if blankRecord(record) {
			continue
		}
		return s.cols.extract(line, record)
	}
	return Row{}, io.EOF
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
