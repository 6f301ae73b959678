package repository

import (
	"context"

	"skill-vault/internal/database"
)

// DictionaryEntry is one row of a deduplication table (names or tags).
type DictionaryEntry struct {
	ID    int64
	Value string
}

// DictionaryRepository resolves display-name and tag strings to their
// stable ids, creating rows on first use. Resolution runs on whatever
// Querier the caller is in, so skill mutations resolve inside their
// own transaction.
type DictionaryRepository interface {
	ResolveName(ctx context.Context, q database.Querier, value string) (int64, error)
	ResolveTag(ctx context.Context, q database.Querier, value string) (int64, error)

	ListNames(ctx context.Context, limit, offset int) ([]DictionaryEntry, error)
	CountNames(ctx context.Context) (int, error)
	ListTags(ctx context.Context, limit, offset int) ([]DictionaryEntry, error)
	CountTags(ctx context.Context) (int, error)
}

type PostgresDictionaryRepository struct {
	db database.DB
}

func NewPostgresDictionaryRepository(db database.DB) *PostgresDictionaryRepository {
	return &PostgresDictionaryRepository{db: db}
}

// The DO UPDATE arm makes the statement return the existing id instead
// of raising on conflict, so two first-use resolutions of the same
// value cannot both insert.
const (
	upsertNameSQL = `INSERT INTO names (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`
	upsertTagSQL = `INSERT INTO tags (tag) VALUES ($1)
		 ON CONFLICT (tag) DO UPDATE SET tag = EXCLUDED.tag
		 RETURNING id`
)

func (r *PostgresDictionaryRepository) ResolveName(ctx context.Context, q database.Querier, value string) (int64, error) {
	return resolveValue(ctx, q, upsertNameSQL, value)
}

func (r *PostgresDictionaryRepository) ResolveTag(ctx context.Context, q database.Querier, value string) (int64, error) {
	return resolveValue(ctx, q, upsertTagSQL, value)
}

func resolveValue(ctx context.Context, q database.Querier, upsert, value string) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, upsert, value).Scan(&id)
	if err != nil && IsUniqueViolation(err) {
		// Residual race against a concurrent prune deleting the row
		// between conflict arbitration and the update arm. One retry;
		// a second failure surfaces to the caller.
		err = q.QueryRow(ctx, upsert, value).Scan(&id)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresDictionaryRepository) ListNames(ctx context.Context, limit, offset int) ([]DictionaryEntry, error) {
	return r.listEntries(ctx, `SELECT id, name FROM names ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *PostgresDictionaryRepository) CountNames(ctx context.Context) (int, error) {
	return r.countEntries(ctx, `SELECT COUNT(*) FROM names`)
}

func (r *PostgresDictionaryRepository) ListTags(ctx context.Context, limit, offset int) ([]DictionaryEntry, error) {
	return r.listEntries(ctx, `SELECT id, tag FROM tags ORDER BY tag LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *PostgresDictionaryRepository) CountTags(ctx context.Context) (int, error) {
	return r.countEntries(ctx, `SELECT COUNT(*) FROM tags`)
}

func (r *PostgresDictionaryRepository) listEntries(ctx context.Context, query string, limit, offset int) ([]DictionaryEntry, error) {
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DictionaryEntry, 0)
	for rows.Next() {
		var e DictionaryEntry
		if err := rows.Scan(&e.ID, &e.Value); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresDictionaryRepository) countEntries(ctx context.Context, query string) (int, error) {
	var c int
	if err := r.db.QueryRow(ctx, query).Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}
