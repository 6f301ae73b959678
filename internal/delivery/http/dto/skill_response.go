package dto

import "skill-vault/internal/domain/skill"

type SkillResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Proficiency int             `json:"proficiency"`
	Years       *int            `json:"years"`
	Icon        string          `json:"icon"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	ParentID    *int64          `json:"parent_id,omitempty"`
	Tags        []string        `json:"tags"`
	Subskills   []SkillResponse `json:"subskills,omitempty"`
}

func FromSkill(s skill.Skill) SkillResponse {
	out := SkillResponse{
		ID:          s.ID,
		Name:        s.Name,
		Proficiency: s.Proficiency,
		Years:       s.Years,
		Icon:        s.Icon,
		Image:       s.Image,
		Description: s.Description,
		URL:         s.URL,
		ParentID:    s.ParentID,
		Tags:        s.Tags,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if len(s.Subskills) > 0 {
		out.Subskills = FromSkills(s.Subskills)
	}
	return out
}

func FromSkills(items []skill.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(items))
	for _, s := range items {
		out = append(out, FromSkill(s))
	}
	return out
}

type SkillListResponse struct {
	Data       []SkillResponse    `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

type DeleteSkillResponse struct {
	ID                    int64 `json:"id"`
	DeletedSubskillsCount int64 `json:"deletedSubskillsCount"`
}
