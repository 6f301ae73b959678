package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-vault/internal/database"
	"skill-vault/internal/repository"
)

type mockDictRepo struct {
	entries []repository.DictionaryEntry
	count   int
	err     error

	gotLimit  int
	gotOffset int
}

func (m *mockDictRepo) ResolveName(context.Context, database.Querier, string) (int64, error) {
	return 0, nil
}

func (m *mockDictRepo) ResolveTag(context.Context, database.Querier, string) (int64, error) {
	return 0, nil
}

func (m *mockDictRepo) ListNames(_ context.Context, limit, offset int) ([]repository.DictionaryEntry, error) {
	m.gotLimit = limit
	m.gotOffset = offset
	return m.entries, m.err
}

func (m *mockDictRepo) CountNames(context.Context) (int, error) { return m.count, m.err }

func (m *mockDictRepo) ListTags(_ context.Context, limit, offset int) ([]repository.DictionaryEntry, error) {
	m.gotLimit = limit
	m.gotOffset = offset
	return m.entries, m.err
}

func (m *mockDictRepo) CountTags(context.Context) (int, error) { return m.count, m.err }

func TestListNames_PaginationEnvelope(t *testing.T) {
	repo := &mockDictRepo{
		entries: []repository.DictionaryEntry{{ID: 1, Value: "Go"}},
		count:   250,
	}
	uc := NewDictionaryUsecase(repo, nil)

	items, pagination, err := uc.ListNames(context.Background(), PageParams{Page: 2, PageSize: 100})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if repo.gotLimit != 100 || repo.gotOffset != 100 {
		t.Fatalf("expected limit=100 offset=100, got limit=%d offset=%d", repo.gotLimit, repo.gotOffset)
	}
	if pagination.TotalPages != 3 || !pagination.HasNext || !pagination.HasPrev {
		t.Fatalf("unexpected pagination: %+v", pagination)
	}
}

func TestListTags_DefaultsPageSize(t *testing.T) {
	repo := &mockDictRepo{}
	uc := NewDictionaryUsecase(repo, nil)

	_, pagination, err := uc.ListTags(context.Background(), PageParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if pagination.Page != 1 || pagination.PageSize != 10 {
		t.Fatalf("expected page=1 pageSize=10, got %+v", pagination)
	}
}

func TestListNames_RepoFailure(t *testing.T) {
	uc := NewDictionaryUsecase(&mockDictRepo{err: errors.New("boom")}, nil)
	if _, _, err := uc.ListNames(context.Background(), PageParams{Page: 1}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
