package repository

import (
	"strings"
	"testing"

	"skill-vault/internal/domain/skill"
)

func intPtr(v int) *int { return &v }

func TestListConditions_Empty(t *testing.T) {
	conds, args := listConditions(skill.ListFilter{})
	if len(conds) != 0 || len(args) != 0 {
		t.Fatalf("expected no conditions, got conds=%v args=%v", conds, args)
	}
}

func TestListConditions_AllFilters(t *testing.T) {
	f := skill.ListFilter{
		ProficiencyMin: intPtr(70),
		YearsMin:       intPtr(3),
		Tags:           []string{"go", "cloud"},
	}

	conds, args := listConditions(f)
	if len(conds) != 3 {
		t.Fatalf("expected 3 conditions, got %v", conds)
	}
	if conds[0] != "s.proficiency >= $1" {
		t.Fatalf("unexpected proficiency condition: %s", conds[0])
	}
	if conds[1] != "s.years >= $2" {
		t.Fatalf("unexpected years condition: %s", conds[1])
	}
	if !strings.Contains(conds[2], "ANY($3)") || !strings.Contains(conds[2], "EXISTS") {
		t.Fatalf("unexpected tags condition: %s", conds[2])
	}

	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %v", args)
	}
	if args[0] != 70 || args[1] != 3 {
		t.Fatalf("unexpected scalar args: %v", args)
	}
	tags, ok := args[2].([]string)
	if !ok || len(tags) != 2 {
		t.Fatalf("expected tags arg, got %v", args[2])
	}
}

func TestListConditions_TagsOnlyNumbersFromOne(t *testing.T) {
	conds, args := listConditions(skill.ListFilter{Tags: []string{"rust"}})
	if len(conds) != 1 || len(args) != 1 {
		t.Fatalf("expected one condition, got conds=%v args=%v", conds, args)
	}
	if !strings.Contains(conds[0], "ANY($1)") {
		t.Fatalf("expected placeholder $1, got %s", conds[0])
	}
}
