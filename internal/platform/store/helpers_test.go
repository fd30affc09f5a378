package store

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"

	perr "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/errors"
)

type cmdTag string

func (c cmdTag) String() string { return string(c) }
func (c cmdTag) RowsAffected() int64 {
	s := string(c)
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return 0
	}
	n, err := strconv.ParseInt(s[i+1:], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

type fakeRowQuerier struct {
	lastExecSQL string
	lastExecArg []any
	execTag     CommandTag
	execErr     error

	queryRows Rows
	queryErr  error

	qrErr   error
	qrCalls int
}

func (f *fakeRowQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	f.lastExecSQL = sql
	f.lastExecArg = args
	return f.execTag, f.execErr
}

func (f *fakeRowQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return f.queryRows, f.queryErr
}

func (f *fakeRowQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	f.qrCalls++
	return &fakeRow{err: f.qrErr}
}

type fakeRow struct{ err error }

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) > 0 {
		switch p := dest[0].(type) {
		case *int:
			*p = 42
		case *int64:
			*p = 42
		case *string:
			*p = "ok"
		}
	}
	return nil
}

type fakeRows struct {
	cols   []string
	data   [][]any // each row is len(cols)
	idx    int     // -1 before first
	err    error
	closed bool
}

func newRows(cols []string, data [][]any) *fakeRows {
	return &fakeRows{cols: cols, data: data, idx: -1}
}

func (r *fakeRows) Columns() []string { return r.cols }

func (r *fakeRows) Next() bool {
	if r.err != nil {
		return false
	}
	r.idx++
	return r.idx >= 0 && r.idx < len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if r.idx < 0 || r.idx >= len(r.data) {
		return errors.New("scan out of bounds")
	}
	row := r.data[r.idx]
	if len(dest) != len(row) {
		return errors.New("dest len mismatch")
	}
	for i := range dest {
		dv := reflect.ValueOf(dest[i])
		if dv.Kind() != reflect.Pointer || !dv.Elem().CanSet() {
			return errors.New("dest not settable")
		}
		val := reflect.ValueOf(row[i])
		if val.IsValid() && val.Type().AssignableTo(dv.Elem().Type()) {
			dv.Elem().Set(val)
			continue
		}
		if val.IsValid() && val.Type().ConvertibleTo(dv.Elem().Type()) {
			dv.Elem().Set(val.Convert(dv.Elem().Type()))
			continue
		}
		dv.Elem().Set(reflect.Zero(dv.Elem().Type()))
	}
	return nil
}

func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Close()     { r.closed = true }

func TestExec_PassesThrough(t *testing.T) {
	t.Parallel()

	q := &fakeRowQuerier{execTag: cmdTag("UPDATE 3")}
	tag, err := Exec(context.Background(), q, `update complaints set title=$1 where complaint_id=$2`, "pothole", 7)
	if err != nil {
		t.Fatalf("Exec returned error: %v", err)
	}
	if tag.String() != "UPDATE 3" || tag.RowsAffected() != 3 {
		t.Fatalf("tag mismatch: %q affected=%d", tag.String(), tag.RowsAffected())
	}
	if q.lastExecSQL == "" || len(q.lastExecArg) != 2 {
		t.Fatalf("exec did not forward sql and args: %q %v", q.lastExecSQL, q.lastExecArg)
	}
}

func TestExecOne_ExactlyOne(t *testing.T) {
	t.Parallel()

	q := &fakeRowQuerier{execTag: cmdTag("UPDATE 1")}
	if err := ExecOne(context.Background(), q, `update residents set ward=$1 where resident_id=$2`, "North", 3); err != nil {
		t.Fatalf("ExecOne returned error for single row: %v", err)
	}
}

func TestExecOne_ZeroRows_Errors(t *testing.T) {
	t.Parallel()

	q := &fakeRowQuerier{execTag: cmdTag("UPDATE 0")}
	if err := ExecOne(context.Background(), q, `update residents set ward=$1 where resident_id=$2`, "North", 999); err == nil {
		t.Fatalf("expected ExecOne error when no rows affected")
	}
}

func TestExecOne_ExecError_Bubbles(t *testing.T) {
	t.Parallel()

	boom := errors.New("exec boom")
	q := &fakeRowQuerier{execErr: boom}
	if err := ExecOne(context.Background(), q, `delete from complaints`); !errors.Is(err, boom) {
		t.Fatalf("expected exec error to bubble, got %v", err)
	}
}

func TestScalar_Int(t *testing.T) {
	t.Parallel()

	q := &fakeRowQuerier{}
	n, err := Scalar[int](context.Background(), q, `select count(*) from complaints`)
	if err != nil {
		t.Fatalf("Scalar returned error: %v", err)
	}
	if n != 42 {
		t.Fatalf("Scalar mismatch got=%d want=42", n)
	}
	if q.qrCalls != 1 {
		t.Fatalf("QueryRow should be called once, got %d", q.qrCalls)
	}
}

func TestScalar_ScanError_Bubbles(t *testing.T) {
	t.Parallel()

	boom := errors.New("scan boom")
	q := &fakeRowQuerier{qrErr: boom}
	if _, err := Scalar[int](context.Background(), q, `select 1`); !errors.Is(err, boom) {
		t.Fatalf("expected scan error to bubble, got %v", err)
	}
}

type wardRow struct {
	Ward  string
	Count int64
}

func scanWardRow(r Row) (wardRow, error) {
	var w wardRow
	err := r.Scan(&w.Ward, &w.Count)
	return w, err
}

func TestOne_SingleRow(t *testing.T) {
	t.Parallel()

	rows := newRows([]string{"ward", "count"}, [][]any{{"North", int64(12)}})
	q := &fakeRowQuerier{queryRows: rows}

	got, err := One(context.Background(), q, scanWardRow, `select ward, count(*) from complaints group by ward limit 1`)
	if err != nil {
		t.Fatalf("One returned error: %v", err)
	}
	if got.Ward != "North" || got.Count != 12 {
		t.Fatalf("One mismatch: %#v", got)
	}
	if !rows.closed {
		t.Fatalf("One must close rows")
	}
}

func TestOne_NoRows_NotFound(t *testing.T) {
	t.Parallel()

	q := &fakeRowQuerier{queryRows: newRows([]string{"ward", "count"}, nil)}

	_, err := One(context.Background(), q, scanWardRow, `select ward, count(*) from complaints where 1=0`)
	if !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty result, got %v", err)
	}
}

func TestOne_MultipleRows_Errors(t *testing.T) {
	t.Parallel()

	rows := newRows([]string{"ward", "count"}, [][]any{
		{"North", int64(12)},
		{"South", int64(9)},
	})
	q := &fakeRowQuerier{queryRows: rows}

	if _, err := One(context.Background(), q, scanWardRow, `select ward, count(*) from complaints group by ward`); err == nil {
		t.Fatalf("expected error when One sees more than one row")
	}
}

func TestOne_QueryError_Bubbles(t *testing.T) {
	t.Parallel()

	boom := errors.New("query boom")
	q := &fakeRowQuerier{queryErr: boom}
	if _, err := One(context.Background(), q, scanWardRow, `select 1`); !errors.Is(err, boom) {
		t.Fatalf("expected query error to bubble, got %v", err)
	}
}

func TestMany_AllRows(t *testing.T) {
	t.Parallel()

	rows := newRows([]string{"ward", "count"}, [][]any{
		{"North", int64(12)},
		{"South", int64(9)},
		{"Harbor", int64(4)},
	})
	q := &fakeRowQuerier{queryRows: rows}

	got, err := Many(context.Background(), q, scanWardRow, `select ward, count(*) from complaints group by ward`)
	if err != nil {
		t.Fatalf("Many returned error: %v", err)
	}
	want := []wardRow{{"North", 12}, {"South", 9}, {"Harbor", 4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Many mismatch got=%#v want=%#v", got, want)
	}
	if !rows.closed {
		t.Fatalf("Many must close rows")
	}
}

func TestMany_Empty_ReturnsNilSlice(t *testing.T) {
	t.Parallel()

	q := &fakeRowQuerier{queryRows: newRows([]string{"ward", "count"}, nil)}
	got, err := Many(context.Background(), q, scanWardRow, `select ward, count(*) from complaints where 1=0`)
	if err != nil {
		t.Fatalf("Many returned error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil slice for empty result, got %#v", got)
	}
}

func TestMany_ScanError_Bubbles(t *testing.T) {
	t.Parallel()

	rows := newRows([]string{"ward"}, [][]any{{"North"}})
	q := &fakeRowQuerier{queryRows: rows}

	// scanner expects two columns; fakeRows reports a dest mismatch
	if _, err := Many(context.Background(), q, scanWardRow, `select ward from complaints`); err == nil {
		t.Fatalf("expected scan error to bubble")
	}
}
