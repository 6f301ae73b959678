package usecase

import (
	"context"
	"log"

	"skill-vault/internal/repository"
)

type MaintenanceUsecase interface {
	Prune(ctx context.Context) (repository.PruneResult, error)
}

type Maintenance struct {
	repo   repository.MaintenanceRepository
	logger *log.Logger
}

func NewMaintenanceUsecase(repo repository.MaintenanceRepository, logger *log.Logger) *Maintenance {
	return &Maintenance{repo: repo, logger: logger}
}

func (u *Maintenance) Prune(ctx context.Context) (repository.PruneResult, error) {
	res, err := u.repo.Prune(ctx)
	if err != nil {
		if repository.IsSerializationFailure(err) {
			// Lost against a concurrent skill mutation attaching one of
			// the candidate rows; the caller retries the request.
			return repository.PruneResult{}, ErrConflict
		}
		if u.logger != nil {
			u.logger.Printf("[Maintenance] prune failed: %v", err)
		}
		return repository.PruneResult{}, ErrInternal
	}
	return res, nil
}
