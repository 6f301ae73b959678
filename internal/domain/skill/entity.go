package skill

const (
	ProficiencyMin = 1
	ProficiencyMax = 100
)

type Skill struct {
	ID          int64
	Name        string
	Proficiency int
	Years       *int
	Icon        string
	Image       string
	Description string
	URL         string
	ParentID    *int64
	Tags        []string
	Subskills   []Skill
}

// Input carries a create or partial-update payload. Nil fields are
// "leave unchanged" on update; Tags and Subskills distinguish absent
// (nil) from present-but-empty.
type Input struct {
	ID          *int64
	Name        *string
	Proficiency *int
	Years       *int
	Icon        *string
	Image       *string
	Description *string
	URL         *string
	Tags        *[]string
	Subskills   *[]Input
}

type ListFilter struct {
	ProficiencyMin *int
	YearsMin       *int
	Tags           []string
}
