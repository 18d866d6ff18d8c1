package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/stevillis/megasena/internal/domain/model"
)

// CSVSource yields draw rows from a CSV document.
type CSVSource struct {
	reader *csv.Reader
	cols   colMap
	line   int // last consumed row, header included
}

// NewCSVSource consumes the header row and resolves the column layout.
// Returns ErrBadHeader when the required columns are missing.
func NewCSVSource(r io.Reader) (*CSVSource, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrBadHeader
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := mapHeader(header)
	if err != nil {
		return nil, err
	}
	return &CSVSource{reader: reader, cols: cols, line: 1}, nil
}

// Next implements RowSource. CSV records that cannot be parsed come back as
// model.RowError values so the caller can collect them and keep reading.
func (s *CSVSource) Next() (Row, error) {
	record, err := s.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}
		s.line++
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return Row{}, model.RowError{Row: parseErr.Line, Reason: parseErr.Err.Error()}
		}
		return Row{}, err
	}
	s.line++
	return s.cols.extract(s.line, record)
}
