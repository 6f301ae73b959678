package dto

import "skill-vault/internal/domain/skill"

// SkillPayload is the create/update request body. Pointer fields keep
// the absent-vs-provided distinction the partial-update and
// reconciliation semantics depend on: a missing "subskills" key leaves
// children untouched, an empty array deletes them all.
type SkillPayload struct {
	ID          *int64          `json:"id,omitempty"`
	Name        *string         `json:"name"`
	Proficiency *int            `json:"proficiency"`
	Years       *int            `json:"years"`
	Icon        *string         `json:"icon"`
	Image       *string         `json:"image"`
	Description *string         `json:"description"`
	URL         *string         `json:"url"`
	Tags        *[]string       `json:"tags"`
	Subskills   *[]SkillPayload `json:"subskills"`
}

func (p SkillPayload) ToInput() skill.Input {
	in := skill.Input{
		ID:          p.ID,
		Name:        p.Name,
		Proficiency: p.Proficiency,
		Years:       p.Years,
		Icon:        p.Icon,
		Image:       p.Image,
		Description: p.Description,
		URL:         p.URL,
		Tags:        p.Tags,
	}
	if p.Subskills != nil {
		subs := make([]skill.Input, 0, len(*p.Subskills))
		for _, sp := range *p.Subskills {
			subs = append(subs, sp.ToInput())
		}
		in.Subskills = &subs
	}
	return in
}
