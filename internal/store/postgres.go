package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/locbadge/locbadge/internal/stats"
)

const schema = `
CREATE TABLE IF NOT EXISTS repo (
	hash     TEXT PRIMARY KEY,
	lines    BIGINT NOT NULL,
	code     BIGINT NOT NULL,
	comments BIGINT NOT NULL,
	blanks   BIGINT NOT NULL,
	files    BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS language_stats (
	hash     TEXT NOT NULL REFERENCES repo (hash) ON DELETE CASCADE,
	name     TEXT NOT NULL,
	lines    BIGINT NOT NULL,
	code     BIGINT NOT NULL,
	comments BIGINT NOT NULL,
	blanks   BIGINT NOT NULL,
	PRIMARY KEY (hash, name)
);
`

// Postgres persists statistics in two tables: one aggregate row per
// revision plus its per-language breakdown.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens a connection pool for the given DSN and verifies
// connectivity.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("%w: open: %v", ErrStoreUnavailable, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("%w: ping: %v", ErrStoreUnavailable, err)
	}

	return &Postgres{db: db}, nil
}

// Migrate creates the statistics tables when missing.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: migrate: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// Get implements Store.
func (p *Postgres) Get(ctx context.Context, rev stats.Revision) (*stats.CacheEntry, error) {
	entry := &stats.CacheEntry{}

	err := p.db.QueryRowContext(ctx,
		`SELECT lines, code, comments, blanks, files FROM repo WHERE hash = $1`,
		string(rev),
	).Scan(
		&entry.Aggregate.Lines,
		&entry.Aggregate.Code,
		&entry.Aggregate.Comments,
		&entry.Aggregate.Blanks,
		&entry.Aggregate.Files,
	)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("%w: revision %s", ErrNotFound, rev)
	case err != nil:
		return nil, fmt.Errorf("%w: get: %v", ErrStoreUnavailable, err)
	}

	rows, err := p.db.QueryContext(ctx,
		`SELECT name, lines, code, comments, blanks FROM language_stats WHERE hash = $1 ORDER BY name`,
		string(rev),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: get languages: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var l stats.LanguageStats

		if err := rows.Scan(&l.Name, &l.Lines, &l.Code, &l.Comments, &l.Blanks); err != nil {
			return nil, fmt.Errorf("%w: scan language: %v", ErrStoreUnavailable, err)
		}

		entry.Languages = append(entry.Languages, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: get languages: %v", ErrStoreUnavailable, err)
	}

	return entry, nil
}

// Put implements Store. The aggregate insert content-addresses on the
// revision hash; when the row already exists the whole write is skipped,
// so the first writer wins and repeats are no-ops.
func (p *Postgres) Put(ctx context.Context, rev stats.Revision, entry *stats.CacheEntry) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrStoreUnavailable, err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO repo (hash, lines, code, comments, blanks, files)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (hash) DO NOTHING`,
		string(rev),
		entry.Aggregate.Lines,
		entry.Aggregate.Code,
		entry.Aggregate.Comments,
		entry.Aggregate.Blanks,
		entry.Aggregate.Files,
	)
	if err != nil {
		return fmt.Errorf("%w: put: %v", ErrStoreUnavailable, err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: put: %v", ErrStoreUnavailable, err)
	}

	if inserted == 0 {
		return nil
	}

	for _, l := range entry.Languages {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO language_stats (hash, name, lines, code, comments, blanks)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			string(rev), l.Name, l.Lines, l.Code, l.Comments, l.Blanks,
		)
		if err != nil {
			return fmt.Errorf("%w: put language %s: %v", ErrStoreUnavailable, l.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// Purge implements Store. Language rows go with the aggregate via the
// foreign key cascade. Purging an absent revision is not an error.
func (p *Postgres) Purge(ctx context.Context, rev stats.Revision) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM repo WHERE hash = $1`, string(rev)); err != nil {
		return fmt.Errorf("%w: purge: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// Ping implements Store.
func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}
