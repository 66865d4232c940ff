package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// The fakes below script pool responses in call order so repository logic
// (query sequencing, scanning, grouping, transaction control) is exercised
// without a live database.

type recordedCall struct {
	sql  string
	args []any
}

type scriptedResult struct {
	rows *fakeRows
	row  *fakeRow
	tag  pgconn.CommandTag
	err  error
}

type fakeQuerier struct {
	calls    []recordedCall
	results  []scriptedResult
	beginErr error
	tx       *fakeTx
}

func (f *fakeQuerier) next(sql string, args []any) scriptedResult {
	f.calls = append(f.calls, recordedCall{sql: sql, args: args})
	if len(f.results) == 0 {
		return scriptedResult{err: errors.New("fakeQuerier: no scripted result")}
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r
}

func (f *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	r := f.next(sql, args)
	if r.err != nil {
		return nil, r.err
	}
	return r.rows, nil
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	r := f.next(sql, args)
	if r.err != nil {
		return &fakeRow{err: r.err}
	}
	return r.row
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r := f.next(sql, args)
	return r.tag, r.err
}

func (f *fakeQuerier) Begin(context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	if f.tx == nil {
		f.tx = &fakeTx{q: f}
	}
	return f.tx, nil
}

type fakeRow struct {
	vals []any
	err  error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assignValues(dest, r.vals)
}

type fakeRows struct {
	vals   [][]any
	pos    int
	err    error
	closed bool
}

func rowsOf(vals ...[]any) *fakeRows { return &fakeRows{vals: vals} }

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Next() bool {
	if r.pos >= len(r.vals) {
		return false
	}
	r.pos++
	return true
}
func (r *fakeRows) Scan(dest ...any) error {
	return assignValues(dest, r.vals[r.pos-1])
}
func (r *fakeRows) Values() ([]any, error) { return r.vals[r.pos-1], nil }
func (r *fakeRows) RawValues() [][]byte    { return nil }
func (r *fakeRows) Conn() *pgx.Conn        { return nil }

func assignValues(dest, vals []any) error {
	if len(dest) != len(vals) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(vals))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			p2, ok := vals[i].(int64)
			if !ok {
				return fmt.Errorf("scan: column %d is not int64", i)
			}
			*p = p2
		case *string:
			p2, ok := vals[i].(string)
			if !ok {
				return fmt.Errorf("scan: column %d is not string", i)
			}
			*p = p2
		case *bool:
			p2, ok := vals[i].(bool)
			if !ok {
				return fmt.Errorf("scan: column %d is not bool", i)
			}
			*p = p2
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
	}
	return nil
}

type fakeTx struct {
	q          *fakeQuerier
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

func (t *fakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("not implemented")
}

func (t *fakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects                         { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, errors.New("not implemented")
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.q.Exec(ctx, sql, args...)
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.q.Query(ctx, sql, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.q.QueryRow(ctx, sql, args...)
}

func (t *fakeTx) Conn() *pgx.Conn { return nil }
