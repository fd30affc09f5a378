package civicsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// RowError marks a single bad row: recoverable, the caller should count
// the skip and keep reading
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string { return fmt.Sprintf("row %d: %v", e.Line, e.Err) }

// Unwrap exposes the underlying parse failure
func (e *RowError) Unwrap() error { return e.Err }

// Reader streams typed rows from one CSV export. Next returns io.EOF when
// the file is exhausted and *RowError for rows that fail to decode
type Reader[T any] struct {
	rc   io.ReadCloser
	cr   *csv.Reader
	cols map[string]int
	dec  func(get func(string) string) (T, error)
	rec  int // record ordinal, header is 1
	rows int
	err  error
}

// open maps the header row against the wanted columns and hands back a
// streaming reader bound to the decode function
func open[T any](path string, want []string, dec func(get func(string) string) (T, error)) (*Reader[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(f)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	hdr, err := cr.Read()
	if err != nil {
		if cerr := f.Close(); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	cols := make(map[string]int, len(hdr))
	for i, name := range hdr {
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF") // exports from spreadsheets carry a BOM
		}
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range want {
		if _, ok := cols[name]; !ok {
			if cerr := f.Close(); cerr != nil {
				return nil, cerr
			}
			return nil, fmt.Errorf("column %q missing in %s", name, path)
		}
	}
	return &Reader[T]{rc: f, cr: cr, cols: cols, dec: dec, rec: 1}, nil
}

// Next reads the next typed row; io.EOF when done
func (r *Reader[T]) Next() (T, error) {
	var zero T
	if r.err != nil {
		return zero, r.err
	}
	rec, err := r.cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.err = io.EOF
			return zero, io.EOF
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			r.rec++
			return zero, &RowError{Line: perr.Line, Err: err}
		}
		r.err = err
		return zero, err
	}
	r.rec++
	get := func(name string) string {
		i, ok := r.cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	v, err := r.dec(get)
	if err != nil {
		return zero, &RowError{Line: r.rec, Err: err}
	}
	r.rows++
	return v, nil
}

// Close closes the underlying file
func (r *Reader[T]) Close() error {
	return r.rc.Close()
}

// Rows returns the count of successfully decoded rows so far
func (r *Reader[T]) Rows() int {
	return r.rows
}

func parseID(s, field string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("%s is empty", field)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an integer", field, s)
	}
	return n, nil
}

// dateLayouts covers the export's DATE columns plus timestamped variants
// some tools write
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseDate(s, field string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%s is empty", field)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s %q is not a date", field, s)
}

func requireText(s, field string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%s is empty", field)
	}
	return s, nil
}
