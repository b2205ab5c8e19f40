package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoHeader is returned when the input has no header row.
var ErrNoHeader = errors.New("csv: missing header row")

// ReadCSV parses a CSV stream with a header row into a Dataset.
// Every field of every record must parse as a float64; records must all have
// as many fields as the header.
func ReadCSV(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("csv header: %w", err)
	}

	var ds Dataset
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}

		line, _ := cr.FieldPos(0)
		p := make(Point, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("csv line %d column %d: %w", line, i+1, err)
			}
			p[i] = v
		}
		ds = append(ds, p)
	}

	return ds, nil
}

// WriteCSV writes ds with a header row. Two-dimensional data uses the header
// "x,y"; other dimensions use "x1,...,xd".
func WriteCSV(w io.Writer, ds Dataset) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header(ds.Dim())); err != nil {
		return err
	}

	record := make([]string, ds.Dim())
	for i, p := range ds {
		if len(p) != len(record) {
			return &ErrDimensionMismatch{Index: i, Expected: len(record), Actual: len(p)}
		}
		for j, v := range p {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Header returns the column names WriteCSV uses for dimension dim.
func Header(dim int) []string {
	if dim == 2 {
		return []string{"x", "y"}
	}
	h := make([]string, dim)
	for i := range h {
		h[i] = "x" + strconv.Itoa(i+1)
	}
	return h
}
