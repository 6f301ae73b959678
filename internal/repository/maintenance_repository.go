package repository

import (
	"context"

	"skill-vault/internal/database"
)

type PruneResult struct {
	Names []DictionaryEntry
	Tags  []DictionaryEntry
}

// MaintenanceRepository removes dictionary rows with zero remaining
// references. Liveness is recomputed by anti-join at delete time; no
// row carries a stored reference count.
type MaintenanceRepository interface {
	Prune(ctx context.Context) (PruneResult, error)
}

type PostgresMaintenanceRepository struct {
	db database.DB
}

func NewPostgresMaintenanceRepository(db database.DB) *PostgresMaintenanceRepository {
	return &PostgresMaintenanceRepository{db: db}
}

// Prune runs SERIALIZABLE so a concurrent transaction attaching a new
// reference to an about-to-be-deleted row forces a serialization
// failure instead of leaving a dangling reference. A 40001 surfaces to
// the caller for a whole-request retry.
func (r *PostgresMaintenanceRepository) Prune(ctx context.Context) (PruneResult, error) {
	tx, err := r.db.BeginTx(ctx, database.TxOptions{IsoLevel: database.Serializable})
	if err != nil {
		return PruneResult{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	names, err := deleteUnreferenced(ctx, tx,
		`DELETE FROM names n
		 WHERE NOT EXISTS (SELECT 1 FROM skills s WHERE s.name_id = n.id)
		 RETURNING n.id, n.name`)
	if err != nil {
		return PruneResult{}, err
	}

	tags, err := deleteUnreferenced(ctx, tx,
		`DELETE FROM tags t
		 WHERE NOT EXISTS (SELECT 1 FROM skill_tags st WHERE st.tag_id = t.id)
		 RETURNING t.id, t.tag`)
	if err != nil {
		return PruneResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return PruneResult{}, err
	}
	return PruneResult{Names: names, Tags: tags}, nil
}

func deleteUnreferenced(ctx context.Context, tx database.Tx, query string) ([]DictionaryEntry, error) {
	rows, err := tx.Query(ctx, query)
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
