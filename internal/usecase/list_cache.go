package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"skill-vault/internal/domain/skill"
)

// ListCache is the read-cache surface for the skill list. Mutations
// bump a version counter baked into every key, so stale entries are
// never served and expire on their own TTL.
type ListCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
	GetInt64(ctx context.Context, key string) (int64, bool, error)
}

const skillListVersionKey = "skills:list:version"

func skillListCacheKey(version int64, f skill.ListFilter, p PageParams) string {
	prof := "-"
	if f.ProficiencyMin != nil {
		prof = fmt.Sprintf("%d", *f.ProficiencyMin)
	}
	years := "-"
	if f.YearsMin != nil {
		years = fmt.Sprintf("%d", *f.YearsMin)
	}

	tags := "-"
	if len(f.Tags) > 0 {
		sorted := append([]string(nil), f.Tags...)
		sort.Strings(sorted)
		tags = strings.Join(sorted, ",")
	}

	return fmt.Sprintf("skills:list:v%d:page=%d:size=%d:prof=%s:years=%s:tags=%s",
		version, p.Page, p.PageSize, prof, years, tags)
}
