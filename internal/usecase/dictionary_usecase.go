package usecase

import (
	"context"
	"log"

	"skill-vault/internal/repository"
)

type DictionaryUsecase interface {
	ListNames(ctx context.Context, page PageParams) ([]repository.DictionaryEntry, Pagination, error)
	ListTags(ctx context.Context, page PageParams) ([]repository.DictionaryEntry, Pagination, error)
}

type Dictionary struct {
	repo   repository.DictionaryRepository
	logger *log.Logger
}

func NewDictionaryUsecase(repo repository.DictionaryRepository, logger *log.Logger) *Dictionary {
	return &Dictionary{repo: repo, logger: logger}
}

func (u *Dictionary) ListNames(ctx context.Context, page PageParams) ([]repository.DictionaryEntry, Pagination, error) {
	return u.list(ctx, page, u.repo.ListNames, u.repo.CountNames)
}

func (u *Dictionary) ListTags(ctx context.Context, page PageParams) ([]repository.DictionaryEntry, Pagination, error) {
	return u.list(ctx, page, u.repo.ListTags, u.repo.CountTags)
}

func (u *Dictionary) list(
	ctx context.Context,
	page PageParams,
	fetch func(context.Context, int, int) ([]repository.DictionaryEntry, error),
	count func(context.Context) (int, error),
) ([]repository.DictionaryEntry, Pagination, error) {
	page = clampPageParams(page)

	total, err := count(ctx)
	if err != nil {
		u.logf("count dictionary entries failed: %v", err)
		return nil, Pagination{}, ErrInternal
	}

	items, err := fetch(ctx, page.PageSize, page.offset())
	if err != nil {
		u.logf("list dictionary entries failed: %v", err)
		return nil, Pagination{}, ErrInternal
	}

	return items, paginate(page, total), nil
}

func (u *Dictionary) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf("[Dictionary] "+format, args...)
	}
}
