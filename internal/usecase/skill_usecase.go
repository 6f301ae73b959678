package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"skill-vault/internal/database"
	"skill-vault/internal/domain/skill"
	"skill-vault/internal/repository"
)

type ListSkillsParams struct {
	Filter skill.ListFilter
	Page   PageParams
}

type SkillUsecase interface {
	ListSkills(ctx context.Context, params ListSkillsParams) ([]skill.Skill, Pagination, error)
	GetSkill(ctx context.Context, id int64) (skill.Skill, error)
	CreateSkill(ctx context.Context, in skill.Input) (skill.Skill, error)
	UpdateSkill(ctx context.Context, id int64, in skill.Input) (skill.Skill, error)
	DeleteSkill(ctx context.Context, id int64) (int64, error)
}

type Skills struct {
	db      database.DB
	repo    repository.SkillRepository
	queries repository.SkillQueryRepository
	cache   ListCache
	logger  *log.Logger
}

func NewSkillUsecase(db database.DB, repo repository.SkillRepository, queries repository.SkillQueryRepository, cache ListCache, logger *log.Logger) *Skills {
	return &Skills{db: db, repo: repo, queries: queries, cache: cache, logger: logger}
}

type skillListEnvelope struct {
	Data       []skill.Skill
	Pagination Pagination
}

func (u *Skills) ListSkills(ctx context.Context, params ListSkillsParams) ([]skill.Skill, Pagination, error) {
	page := clampPageParams(params.Page)
	filter := skill.ListFilter{
		ProficiencyMin: params.Filter.ProficiencyMin,
		YearsMin:       params.Filter.YearsMin,
		Tags:           normalizeTags(params.Filter.Tags),
	}

	cacheKey := ""
	if u.cache != nil {
		version, _, err := u.cache.GetInt64(ctx, skillListVersionKey)
		if err == nil {
			cacheKey = skillListCacheKey(version, filter, page)
			var cached skillListEnvelope
			hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
			if err == nil && hit {
				return cached.Data, cached.Pagination, nil
			}
		}
	}

	total, err := u.queries.Count(ctx, u.db, filter)
	if err != nil {
		u.logf("count skills failed: %v", err)
		return nil, Pagination{}, ErrInternal
	}

	items, err := u.queries.List(ctx, u.db, filter, page.PageSize, page.offset())
	if err != nil {
		u.logf("list skills failed: %v", err)
		return nil, Pagination{}, ErrInternal
	}

	pagination := paginate(page, total)

	if u.cache != nil && cacheKey != "" {
		_ = u.cache.SetJSON(ctx, cacheKey, skillListEnvelope{Data: items, Pagination: pagination}, 0)
	}
	return items, pagination, nil
}

func (u *Skills) GetSkill(ctx context.Context, id int64) (skill.Skill, error) {
	s, err := u.queries.GetByID(ctx, u.db, id)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return skill.Skill{}, ErrNotFound
		}
		u.logf("get skill id=%d failed: %v", id, err)
		return skill.Skill{}, ErrInternal
	}
	return s, nil
}

func (u *Skills) CreateSkill(ctx context.Context, in skill.Input) (skill.Skill, error) {
	in = normalizeInput(in)
	if err := validateCreateInput(in); err != nil {
		return skill.Skill{}, err
	}

	created, err := u.repo.Create(ctx, in)
	if err != nil {
		return skill.Skill{}, u.mapMutationErr("create", err)
	}

	u.bumpListVersion(ctx)
	return created, nil
}

func (u *Skills) UpdateSkill(ctx context.Context, id int64, in skill.Input) (skill.Skill, error) {
	in = normalizeInput(in)
	if err := validateUpdateInput(in); err != nil {
		return skill.Skill{}, err
	}

	updated, err := u.repo.Update(ctx, id, in)
	if err != nil {
		return skill.Skill{}, u.mapMutationErr("update", err)
	}

	u.bumpListVersion(ctx)
	return updated, nil
}

func (u *Skills) DeleteSkill(ctx context.Context, id int64) (int64, error) {
	deletedSubskills, err := u.repo.Delete(ctx, id)
	if err != nil {
		return 0, u.mapMutationErr("delete", err)
	}

	u.bumpListVersion(ctx)
	return deletedSubskills, nil
}

func (u *Skills) mapMutationErr(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrSkillNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrNotTopLevel):
		return invalidf("subskills can only be updated through their parent's subskills field")
	case errors.Is(err, skill.ErrUnknownSubskill):
		return invalidf("subskill does not belong to this skill")
	case repository.IsUniqueViolation(err) || repository.IsSerializationFailure(err):
		return ErrConflict
	default:
		u.logf("%s skill failed: %v", op, err)
		return ErrInternal
	}
}

func (u *Skills) bumpListVersion(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if _, err := u.cache.Incr(ctx, skillListVersionKey); err != nil {
		u.logf("bump list cache version failed: %v", err)
	}
}

func (u *Skills) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf("[Skills] "+format, args...)
	}
}

func validateCreateInput(in skill.Input) error {
	if err := validateRequired(in); err != nil {
		return err
	}
	if err := validateScalars(in); err != nil {
		return err
	}
	if in.Subskills == nil {
		return nil
	}
	for _, sub := range *in.Subskills {
		if sub.ID != nil {
			return invalidf("subskills cannot carry an id on create")
		}
		if err := validateSubskillEntry(sub, true); err != nil {
			return err
		}
	}
	return nil
}

func validateUpdateInput(in skill.Input) error {
	if in.Name != nil && *in.Name == "" {
		return invalidf("name must not be empty")
	}
	if err := validateScalars(in); err != nil {
		return err
	}
	if in.Subskills == nil {
		return nil
	}
	for _, sub := range *in.Subskills {
		// No id means create intent; those entries need the full
		// required set, update entries only valid bounds.
		if err := validateSubskillEntry(sub, sub.ID == nil); err != nil {
			return err
		}
	}
	return nil
}

func validateSubskillEntry(sub skill.Input, create bool) error {
	if sub.Subskills != nil && len(*sub.Subskills) > 0 {
		return invalidf("nesting depth exceeded: a subskill cannot have subskills")
	}
	if create {
		if err := validateRequired(sub); err != nil {
			return err
		}
	} else if sub.Name != nil && *sub.Name == "" {
		return invalidf("name must not be empty")
	}
	return validateScalars(sub)
}

func validateRequired(in skill.Input) error {
	if in.Name == nil || *in.Name == "" {
		return invalidf("name is required")
	}
	if in.Proficiency == nil {
		return invalidf("proficiency is required")
	}
	return nil
}

func validateScalars(in skill.Input) error {
	if in.Proficiency != nil && (*in.Proficiency < skill.ProficiencyMin || *in.Proficiency > skill.ProficiencyMax) {
		return invalidf("proficiency must be between %d and %d", skill.ProficiencyMin, skill.ProficiencyMax)
	}
	if in.Years != nil && *in.Years < 0 {
		return invalidf("years must not be negative")
	}
	return nil
}

// normalizeInput trims the name and dedupes tags, recursively for
// subskill entries, so the unique (skill_id, tag_id) constraint is
// never tripped by repeated input values.
func normalizeInput(in skill.Input) skill.Input {
	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		in.Name = &v
	}
	if in.Tags != nil {
		v := normalizeTags(*in.Tags)
		in.Tags = &v
	}
	if in.Subskills != nil {
		subs := make([]skill.Input, 0, len(*in.Subskills))
		for _, sub := range *in.Subskills {
			subs = append(subs, normalizeInput(sub))
		}
		in.Subskills = &subs
	}
	return in
}

func normalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
