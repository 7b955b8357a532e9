package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/flarelab/combust/internal/domain/catalog"
	"github.com/flarelab/combust/pkg/types/common"
)

// fakeQuerier satisfies the querier interface with scripted results. Each
// call is recorded so tests can assert on the SQL and arguments used.
type fakeQuerier struct {
	execTag  pgconn.CommandTag
	execErr  error
	rows     []catalog.Entry
	rowsErr  error
	countVal int64
	noRow    bool

	calls []call
}

type call struct {
	sql  string
	args []any
}

func (f *fakeQuerier) record(sql string, args []any) {
	f.calls = append(f.calls, call{sql: sql, args: args})
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.record(sql, args)
	return f.execTag, f.execErr
}

func (f *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.record(sql, args)
	if f.rowsErr != nil {
		return nil, f.rowsErr
	}
	return &fakeRows{entries: f.rows}, nil
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.record(sql, args)
	if f.noRow {
		return errRow{err: pgx.ErrNoRows}
	}
	if f.rowsErr != nil {
		return errRow{err: f.rowsErr}
	}
	if isCountQuery(sql) {
		return countRow{n: f.countVal}
	}
	if len(f.rows) == 0 {
		return errRow{err: pgx.ErrNoRows}
	}
	return entryRow{entry: f.rows[0]}
}

func isCountQuery(sql string) bool {
	return strings.Contains(strings.ToLower(sql), "count(*)")
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

type countRow struct{ n int64 }

func (r countRow) Scan(dest ...any) error {
	p, ok := dest[0].(*int64)
	if !ok {
		return fmt.Errorf("unexpected count dest %T", dest[0])
	}
	*p = r.n
	return nil
}

type entryRow struct{ entry catalog.Entry }

func (r entryRow) Scan(dest ...any) error {
	return assignEntry(dest, r.entry)
}

// fakeRows iterates over scripted entries.
type fakeRows struct {
	entries []catalog.Entry
	idx     int
	err     error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.entries) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return assignEntry(dest, r.entries[r.idx-1])
}

func (r *fakeRows) Values() ([]any, error) { return nil, nil }

func assignEntry(dest []any, e catalog.Entry) error {
	if len(dest) != 11 {
		return fmt.Errorf("expected 11 scan targets, got %d", len(dest))
	}
	*(dest[0].(*common.ID)) = e.ID
	*(dest[1].(*string)) = e.FileAuthor
	*(dest[2].(*string)) = e.FileDOI
	*(dest[3].(*string)) = e.ExperimentType
	*(dest[4].(*string)) = e.Reactor
	*(dest[5].(*int)) = e.DataGroups
	*(dest[6].(*int)) = e.DataPoints
	*(dest[7].(*string)) = e.ObjectKey
	*(dest[8].(*string)) = e.Checksum
	*(dest[9].(*time.Time)) = e.CreatedAt
	*(dest[10].(*time.Time)) = e.UpdatedAt
	return nil
}
