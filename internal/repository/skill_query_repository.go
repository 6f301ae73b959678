package repository

import (
	"context"
	"fmt"
	"strings"

	"skill-vault/internal/database"
	"skill-vault/internal/domain/skill"
)

// SkillQueryRepository is the read side. Methods take an explicit
// Querier so assembled results can be produced either from the pool or
// from inside a mutation's transaction before it commits.
type SkillQueryRepository interface {
	List(ctx context.Context, q database.Querier, f skill.ListFilter, limit, offset int) ([]skill.Skill, error)
	Count(ctx context.Context, q database.Querier, f skill.ListFilter) (int, error)
	GetByID(ctx context.Context, q database.Querier, id int64) (skill.Skill, error)
}

type PostgresSkillQueryRepository struct{}

func NewPostgresSkillQueryRepository() *PostgresSkillQueryRepository {
	return &PostgresSkillQueryRepository{}
}

const skillSelectColumns = `s.id, n.name, s.proficiency, s.years,
	 COALESCE(s.icon, ''), COALESCE(s.image, ''), COALESCE(s.description, ''), COALESCE(s.url, ''),
	 s.parent_id,
	 ARRAY_AGG(t.tag ORDER BY t.tag) FILTER (WHERE t.tag IS NOT NULL) AS tags`

const skillFromJoins = `FROM skills s
	 JOIN names n ON n.id = s.name_id
	 LEFT JOIN skill_tags st ON st.skill_id = s.id
	 LEFT JOIN tags t ON t.id = st.tag_id`

// listConditions renders the filter into WHERE fragments with
// placeholders numbered from $1. The tags filter is an existential
// subquery so a multi-tag match cannot multiply rows in the count.
func listConditions(f skill.ListFilter) ([]string, []any) {
	conds := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if f.ProficiencyMin != nil {
		args = append(args, *f.ProficiencyMin)
		conds = append(conds, fmt.Sprintf("s.proficiency >= $%d", len(args)))
	}
	if f.YearsMin != nil {
		args = append(args, *f.YearsMin)
		conds = append(conds, fmt.Sprintf("s.years >= $%d", len(args)))
	}
	if len(f.Tags) > 0 {
		args = append(args, f.Tags)
		conds = append(conds, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM skill_tags st2 JOIN tags t2 ON t2.id = st2.tag_id
			 WHERE st2.skill_id = s.id AND t2.tag = ANY($%d))`, len(args)))
	}
	return conds, args
}

func (r *PostgresSkillQueryRepository) List(ctx context.Context, q database.Querier, f skill.ListFilter, limit, offset int) ([]skill.Skill, error) {
	conds, args := listConditions(f)
	conds = append([]string{"s.parent_id IS NULL"}, conds...)

	query := "SELECT " + skillSelectColumns + "\n" + skillFromJoins +
		"\n WHERE " + strings.Join(conds, " AND ") +
		"\n GROUP BY s.id, n.name" +
		fmt.Sprintf("\n ORDER BY s.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	parents, err := scanSkills(ctx, q, query, args...)
	if err != nil {
		return nil, err
	}
	if len(parents) == 0 {
		return parents, nil
	}

	ids := make([]int64, 0, len(parents))
	for _, p := range parents {
		ids = append(ids, p.ID)
	}
	children, err := r.subskillsByParentIDs(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	for i := range parents {
		parents[i].Subskills = children[parents[i].ID]
	}
	return parents, nil
}

func (r *PostgresSkillQueryRepository) Count(ctx context.Context, q database.Querier, f skill.ListFilter) (int, error) {
	conds, args := listConditions(f)
	conds = append([]string{"s.parent_id IS NULL"}, conds...)

	query := "SELECT COUNT(*) FROM skills s WHERE " + strings.Join(conds, " AND ")

	var c int
	if err := q.QueryRow(ctx, query, args...).Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

func (r *PostgresSkillQueryRepository) GetByID(ctx context.Context, q database.Querier, id int64) (skill.Skill, error) {
	query := "SELECT " + skillSelectColumns + "\n" + skillFromJoins +
		"\n WHERE s.id = $1 GROUP BY s.id, n.name"

	found, err := scanSkills(ctx, q, query, id)
	if err != nil {
		return skill.Skill{}, err
	}
	if len(found) == 0 {
		return skill.Skill{}, ErrSkillNotFound
	}

	s := found[0]
	if s.ParentID == nil {
		children, err := r.subskillsByParentIDs(ctx, q, []int64{s.ID})
		if err != nil {
			return skill.Skill{}, err
		}
		s.Subskills = children[s.ID]
	}
	return s, nil
}

// subskillsByParentIDs fetches the direct children of the given parent
// ids in one query, grouped per parent, ascending by id.
func (r *PostgresSkillQueryRepository) subskillsByParentIDs(ctx context.Context, q database.Querier, parentIDs []int64) (map[int64][]skill.Skill, error) {
	query := "SELECT " + skillSelectColumns + "\n" + skillFromJoins +
		"\n WHERE s.parent_id = ANY($1) GROUP BY s.id, n.name ORDER BY s.id"

	children, err := scanSkills(ctx, q, query, parentIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[int64][]skill.Skill, len(parentIDs))
	for _, c := range children {
		if c.ParentID == nil {
			continue
		}
		out[*c.ParentID] = append(out[*c.ParentID], c)
	}
	return out, nil
}

func scanSkills(ctx context.Context, q database.Querier, query string, args ...any) ([]skill.Skill, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Proficiency, &s.Years,
			&s.Icon, &s.Image, &s.Description, &s.URL,
			&s.ParentID, &s.Tags,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
