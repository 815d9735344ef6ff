// Package dataset moves point sets between CSV files and gonum matrices.
//
// Rows are points, columns are variables. A first row that does not parse
// as numbers is treated as a header and skipped.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmpty indicates a file without data rows.
	ErrEmpty = errors.New("dataset: no data rows")

	// ErrMalformed indicates a ragged row or a non-numeric cell.
	ErrMalformed = errors.New("dataset: malformed csv")
)

// Read parses CSV from r into a k×n matrix.
func Read(r io.Reader) (*mat.Dense, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "dataset: read"), ErrMalformed)
	}
	if len(records) > 0 && !numeric(records[0]) {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	k, n := len(records), len(records[0])
	out := mat.NewDense(k, n, nil)
	for i, rec := range records {
		if len(rec) != n {
			return nil, errors.Wrapf(ErrMalformed, "row %d has %d fields, want %d", i+1, len(rec), n)
		}
		for j, cell := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformed, "row %d column %d: %q", i+1, j+1, cell)
			}
			out.Set(i, j, v)
		}
	}

	return out, nil
}

// ReadFile reads a CSV file.
func ReadFile(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: %s", path)
	}

	return m, nil
}

// Write emits m as CSV with an optional header row. An empty matrix writes
// the header only.
func Write(w io.Writer, m *mat.Dense, header []string) error {
	cw := csv.NewWriter(w)
	if len(header) > 0 {
		if err := cw.Write(header); err != nil {
			return errors.Wrap(err, "dataset: write header")
		}
	}
	if !m.IsEmpty() {
		r, c := m.Dims()
		rec := make([]string, c)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				rec[j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
			}
			if err := cw.Write(rec); err != nil {
				return errors.Wrap(err, "dataset: write row")
			}
		}
	}
	cw.Flush()

	return errors.Wrap(cw.Error(), "dataset: flush")
}

// WriteFile writes m to path, creating or truncating it.
func WriteFile(path string, m *mat.Dense, header []string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "dataset: create %s", path)
	}
	if err = Write(f, m, header); err != nil {
		_ = f.Close()
		return err
	}

	return errors.Wrap(f.Close(), "dataset: close")
}

func numeric(rec []string) bool {
	for _, cell := range rec {
		if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err != nil {
			return false
		}
	}

	return true
}
