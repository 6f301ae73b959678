package skill

import (
	"errors"
	"testing"
)

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func TestReconcile_SplitsByIntent(t *testing.T) {
	incoming := []Input{
		{ID: int64Ptr(2), Name: strPtr("renamed")},
		{Name: strPtr("new")},
	}

	plan, err := Reconcile([]int64{1, 2, 3}, incoming)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(plan.Update) != 1 || *plan.Update[0].ID != 2 {
		t.Fatalf("expected update of id 2, got %+v", plan.Update)
	}
	if len(plan.Create) != 1 || plan.Create[0].Name == nil || *plan.Create[0].Name != "new" {
		t.Fatalf("expected one create, got %+v", plan.Create)
	}
	if len(plan.Delete) != 2 || plan.Delete[0] != 1 || plan.Delete[1] != 3 {
		t.Fatalf("expected delete of ids 1 and 3, got %v", plan.Delete)
	}
}

func TestReconcile_UnknownIDRejected(t *testing.T) {
	_, err := Reconcile([]int64{1, 2}, []Input{{ID: int64Ptr(99)}})
	if !errors.Is(err, ErrUnknownSubskill) {
		t.Fatalf("expected ErrUnknownSubskill, got %v", err)
	}
}

func TestReconcile_EmptyIncomingDeletesAll(t *testing.T) {
	plan, err := Reconcile([]int64{4, 5}, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(plan.Create) != 0 || len(plan.Update) != 0 {
		t.Fatalf("expected no creates or updates, got %+v", plan)
	}
	if len(plan.Delete) != 2 || plan.Delete[0] != 4 || plan.Delete[1] != 5 {
		t.Fatalf("expected delete of ids 4 and 5, got %v", plan.Delete)
	}
}

func TestReconcile_NoExistingAllCreates(t *testing.T) {
	plan, err := Reconcile(nil, []Input{{Name: strPtr("a")}, {Name: strPtr("b")}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(plan.Create) != 2 || len(plan.Update) != 0 || len(plan.Delete) != 0 {
		t.Fatalf("expected two creates only, got %+v", plan)
	}
}
