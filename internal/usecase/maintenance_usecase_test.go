package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-vault/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

type mockMaintenanceRepo struct {
	result repository.PruneResult
	err    error
}

func (m *mockMaintenanceRepo) Prune(context.Context) (repository.PruneResult, error) {
	return m.result, m.err
}

func TestPrune_ReturnsRemovedRows(t *testing.T) {
	repo := &mockMaintenanceRepo{result: repository.PruneResult{
		Names: []repository.DictionaryEntry{{ID: 1, Value: "orphaned"}},
		Tags:  []repository.DictionaryEntry{{ID: 9, Value: "unused"}},
	}}
	uc := NewMaintenanceUsecase(repo, nil)

	res, err := uc.Prune(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Names) != 1 || res.Names[0].Value != "orphaned" {
		t.Fatalf("unexpected names: %+v", res.Names)
	}
	if len(res.Tags) != 1 || res.Tags[0].ID != 9 {
		t.Fatalf("unexpected tags: %+v", res.Tags)
	}
}

func TestPrune_SerializationFailureIsConflict(t *testing.T) {
	uc := NewMaintenanceUsecase(&mockMaintenanceRepo{err: &pgconn.PgError{Code: "40001"}}, nil)
	if _, err := uc.Prune(context.Background()); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestPrune_OtherFailureIsInternal(t *testing.T) {
	uc := NewMaintenanceUsecase(&mockMaintenanceRepo{err: errors.New("boom")}, nil)
	if _, err := uc.Prune(context.Background()); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
