// Package repositories provides PostgreSQL-backed implementations of the
// domain repository interfaces.
package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/flarelab/combust/internal/domain/catalog"
	"github.com/flarelab/combust/internal/infrastructure/monitoring/logging"
	"github.com/flarelab/combust/pkg/errors"
	"github.com/flarelab/combust/pkg/types/common"
)

// querier is the subset of pgxpool.Pool the repositories need. Narrowing the
// dependency keeps the implementations testable without a live database.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ExperimentRepository is the PostgreSQL implementation of
// catalog.Repository. Every method takes a context for cancellation and uses
// parameterised queries exclusively.
type ExperimentRepository struct {
	db  querier
	log logging.Logger
}

// NewExperimentRepository constructs a ready-to-use repository.
func NewExperimentRepository(db querier, log logging.Logger) *ExperimentRepository {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ExperimentRepository{db: db, log: log.Named("experiment_repo")}
}

const experimentColumns = `id, file_author, file_doi, experiment_type, reactor,
	data_groups, data_points, object_key, checksum, created_at, updated_at`

// Save inserts a catalog entry, or refreshes the existing row when the
// checksum is already catalogued.
func (r *ExperimentRepository) Save(ctx context.Context, entry *catalog.Entry) error {
	if entry == nil {
		return errors.InvalidParam("entry must not be nil")
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO experiments (`+experimentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (checksum) DO UPDATE SET
			file_author = EXCLUDED.file_author,
			file_doi = EXCLUDED.file_doi,
			experiment_type = EXCLUDED.experiment_type,
			reactor = EXCLUDED.reactor,
			data_groups = EXCLUDED.data_groups,
			data_points = EXCLUDED.data_points,
			object_key = EXCLUDED.object_key,
			updated_at = EXCLUDED.updated_at`,
		entry.ID, entry.FileAuthor, entry.FileDOI, entry.ExperimentType, entry.Reactor,
		entry.DataGroups, entry.DataPoints, entry.ObjectKey, entry.Checksum,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		r.log.Error("failed to save catalog entry",
			logging.String("id", entry.ID.String()), logging.Err(err))
		return errors.Wrap(err, errors.CodeDatabase, "failed to save catalog entry")
	}
	return nil
}

// GetByID returns the entry with the given id, or CodeRecordNotFound.
func (r *ExperimentRepository) GetByID(ctx context.Context, id common.ID) (*catalog.Entry, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+experimentColumns+` FROM experiments WHERE id = $1`, id)
	return r.scanEntry(row, "id="+id.String())
}

// GetByChecksum returns the entry for a document checksum, or
// CodeRecordNotFound.
func (r *ExperimentRepository) GetByChecksum(ctx context.Context, checksum string) (*catalog.Entry, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+experimentColumns+` FROM experiments WHERE checksum = $1`, checksum)
	return r.scanEntry(row, "checksum="+checksum)
}

// List returns one page of entries, newest first, plus the total row count.
func (r *ExperimentRepository) List(ctx context.Context, page common.Pagination) ([]catalog.Entry, int64, error) {
	page.Normalize()

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM experiments`).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeDatabase, "failed to count catalog entries")
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+experimentColumns+`
		FROM experiments
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		page.PageSize, page.Offset(),
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeDatabase, "failed to list catalog entries")
	}
	defer rows.Close()

	entries := make([]catalog.Entry, 0, page.PageSize)
	for rows.Next() {
		var e catalog.Entry
		if err := scanInto(rows, &e); err != nil {
			return nil, 0, errors.Wrap(err, errors.CodeDatabase, "failed to scan catalog entry")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeDatabase, "failed to iterate catalog entries")
	}
	return entries, total, nil
}

// Delete removes an entry; deleting an unknown id returns CodeRecordNotFound.
func (r *ExperimentRepository) Delete(ctx context.Context, id common.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM experiments WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabase, "failed to delete catalog entry")
	}
	if tag.RowsAffected() == 0 {
		return errors.New(errors.CodeRecordNotFound, "catalog entry not found").
			WithDetail("id=" + id.String())
	}
	return nil
}

func (r *ExperimentRepository) scanEntry(row pgx.Row, detail string) (*catalog.Entry, error) {
	var e catalog.Entry
	if err := scanInto(row, &e); err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New(errors.CodeRecordNotFound, "catalog entry not found").
				WithDetail(detail)
		}
		return nil, errors.Wrap(err, errors.CodeDatabase, "failed to load catalog entry")
	}
	return &e, nil
}

func scanInto(row pgx.Row, e *catalog.Entry) error {
	return row.Scan(
		&e.ID, &e.FileAuthor, &e.FileDOI, &e.ExperimentType, &e.Reactor,
		&e.DataGroups, &e.DataPoints, &e.ObjectKey, &e.Checksum,
		&e.CreatedAt, &e.UpdatedAt,
	)
}
