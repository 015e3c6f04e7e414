package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	colDataAsOf  = "Data As Of"
	colStartDate = "Start Date"
	colEndDate   = "End Date"
	colGroup     = "Group"
	colYear      = "Year"
	colMonth     = "Month"
	colState     = "State"
	colSex       = "Sex"
	colAgeGroup  = "Age Group"
	colFootnote  = "Footnote"
)

var requiredColumns = []string{colState, colSex, colAgeGroup}

// Load reads the dataset from a CSV file.
func Load(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// Read parses CSV content with a header row. Columns are matched by trimmed
// header name; unknown columns are ignored and absent measures stay missing.
func Read(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		index[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	measureCols := make(map[Measure]int)
	for _, m := range Measures() {
		if i, ok := index[m.String()]; ok {
			measureCols[m] = i
		}
	}

	field := func(rec []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []Row
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := NewRow(field(rec, colState), field(rec, colSex), field(rec, colAgeGroup))
		row.DataAsOf = field(rec, colDataAsOf)
		row.StartDate = field(rec, colStartDate)
		row.EndDate = field(rec, colEndDate)
		row.Group = field(rec, colGroup)
		row.Year = field(rec, colYear)
		row.Month = field(rec, colMonth)
		row.Footnote = field(rec, colFootnote)

		for m, i := range measureCols {
			if i >= len(rec) {
				continue
			}
			v, err := parseNumber(rec[i])
			if err != nil {
				return nil, fmt.Errorf("line %d, column %q: %w", line, m.String(), err)
			}
			row.values[m] = v
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// parseNumber returns NaN for empty cells.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	return v, nil
}
