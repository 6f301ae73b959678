package repository

import (
	"context"
	"database/sql"
	"errors"

	"skill-vault/internal/database"
	"skill-vault/internal/domain/skill"

	"github.com/jackc/pgx/v5"
)

// SkillRepository owns all skill and skill_tag mutations. Every
// operation runs in a single transaction: name/tag resolution, the row
// writes, and subskill reconciliation commit or roll back together.
//
// Concurrency: update and delete lock the target row with
// SELECT .. FOR UPDATE under read committed, so concurrent mutations
// of the same skill serialize at the row and the last commit wins.
type SkillRepository interface {
	Create(ctx context.Context, in skill.Input) (skill.Skill, error)
	Update(ctx context.Context, id int64, in skill.Input) (skill.Skill, error)
	// Delete returns the number of subskills removed by the cascade.
	Delete(ctx context.Context, id int64) (int64, error)
}

type PostgresSkillRepository struct {
	db      database.DB
	dict    DictionaryRepository
	queries SkillQueryRepository
}

func NewPostgresSkillRepository(db database.DB, dict DictionaryRepository, queries SkillQueryRepository) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db, dict: dict, queries: queries}
}

func (r *PostgresSkillRepository) Create(ctx context.Context, in skill.Input) (skill.Skill, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return skill.Skill{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	id, err := r.insertOne(ctx, tx, in, nil)
	if err != nil {
		return skill.Skill{}, err
	}

	if in.Subskills != nil {
		for _, sub := range *in.Subskills {
			if _, err := r.insertOne(ctx, tx, sub, &id); err != nil {
				return skill.Skill{}, err
			}
		}
	}

	created, err := r.queries.GetByID(ctx, tx, id)
	if err != nil {
		return skill.Skill{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return skill.Skill{}, err
	}
	return created, nil
}

func (r *PostgresSkillRepository) Update(ctx context.Context, id int64, in skill.Input) (skill.Skill, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return skill.Skill{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	parentID, err := lockSkillRow(ctx, tx, id)
	if err != nil {
		return skill.Skill{}, err
	}
	if parentID != nil {
		// Subskills are only mutated through their parent's
		// reconciliation.
		return skill.Skill{}, ErrNotTopLevel
	}

	if err := r.updateOne(ctx, tx, id, in); err != nil {
		return skill.Skill{}, err
	}

	if in.Subskills != nil {
		if err := r.reconcileSubskills(ctx, tx, id, *in.Subskills); err != nil {
			return skill.Skill{}, err
		}
	}

	updated, err := r.queries.GetByID(ctx, tx, id)
	if err != nil {
		return skill.Skill{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return skill.Skill{}, err
	}
	return updated, nil
}

func (r *PostgresSkillRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := lockSkillRow(ctx, tx, id); err != nil {
		return 0, err
	}

	// Counted before the delete; only top-level rows have children, so
	// this is exactly the cascade size.
	var subCount int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM skills WHERE parent_id = $1`, id).Scan(&subCount); err != nil {
		return 0, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return subCount, nil
}

// insertOne creates a single skill row with its tag associations.
// parentID is nil for top-level skills.
func (r *PostgresSkillRepository) insertOne(ctx context.Context, tx database.Tx, in skill.Input, parentID *int64) (int64, error) {
	if in.Name == nil {
		return 0, errors.New("missing name")
	}
	nameID, err := r.dict.ResolveName(ctx, tx, *in.Name)
	if err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO skills (name_id, proficiency, years, icon, image, description, url, parent_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		nameID, in.Proficiency, in.Years, in.Icon, in.Image, in.Description, in.URL, parentID,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	if in.Tags != nil {
		if err := r.attachTags(ctx, tx, id, *in.Tags); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// updateOne applies a partial update to one skill row. Nil fields keep
// the persisted value; a present tags field replaces the association
// set wholesale.
func (r *PostgresSkillRepository) updateOne(ctx context.Context, tx database.Tx, id int64, in skill.Input) error {
	var nameID *int64
	if in.Name != nil {
		resolved, err := r.dict.ResolveName(ctx, tx, *in.Name)
		if err != nil {
			return err
		}
		nameID = &resolved
	}

	_, err := tx.Exec(ctx,
		`UPDATE skills SET
		 name_id = COALESCE($1, name_id),
		 proficiency = COALESCE($2, proficiency),
		 years = COALESCE($3, years),
		 icon = COALESCE($4, icon),
		 image = COALESCE($5, image),
		 description = COALESCE($6, description),
		 url = COALESCE($7, url)
		 WHERE id = $8`,
		nameID, in.Proficiency, in.Years, in.Icon, in.Image, in.Description, in.URL, id,
	)
	if err != nil {
		return err
	}

	if in.Tags != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM skill_tags WHERE skill_id = $1`, id); err != nil {
			return err
		}
		if err := r.attachTags(ctx, tx, id, *in.Tags); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresSkillRepository) attachTags(ctx context.Context, tx database.Tx, skillID int64, tags []string) error {
	for _, value := range tags {
		tagID, err := r.dict.ResolveTag(ctx, tx, value)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO skill_tags (skill_id, tag_id) VALUES ($1, $2)`,
			skillID, tagID,
		); err != nil {
			return err
		}
	}
	return nil
}

// reconcileSubskills diffs the incoming list against the persisted
// children of parentID and applies the resulting plan.
func (r *PostgresSkillRepository) reconcileSubskills(ctx context.Context, tx database.Tx, parentID int64, incoming []skill.Input) error {
	existing, err := subskillIDs(ctx, tx, parentID)
	if err != nil {
		return err
	}

	plan, err := skill.Reconcile(existing, incoming)
	if err != nil {
		return err
	}

	for _, delID := range plan.Delete {
		if _, err := tx.Exec(ctx, `DELETE FROM skills WHERE id = $1`, delID); err != nil {
			return err
		}
	}
	for _, up := range plan.Update {
		if err := r.updateOne(ctx, tx, *up.ID, up); err != nil {
			return err
		}
	}
	for _, cr := range plan.Create {
		if _, err := r.insertOne(ctx, tx, cr, &parentID); err != nil {
			return err
		}
	}
	return nil
}

func subskillIDs(ctx context.Context, tx database.Tx, parentID int64) ([]int64, error) {
	rows, err := tx.Query(ctx, `SELECT id FROM skills WHERE parent_id = $1 ORDER BY id`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// lockSkillRow takes a row lock on the skill and returns its
// parent_id, or ErrSkillNotFound.
func lockSkillRow(ctx context.Context, tx database.Tx, id int64) (*int64, error) {
	var parentID *int64
	err := tx.QueryRow(ctx, `SELECT parent_id FROM skills WHERE id = $1 FOR UPDATE`, id).Scan(&parentID)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	return parentID, nil
}
