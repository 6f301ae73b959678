package handler

import (
	"skill-vault/internal/delivery/http/dto"
	"skill-vault/internal/pkg/response"
	"skill-vault/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MaintenanceHandler struct {
	uc usecase.MaintenanceUsecase
}

func NewMaintenanceHandler(uc usecase.MaintenanceUsecase) *MaintenanceHandler {
	return &MaintenanceHandler{uc: uc}
}

func (h *MaintenanceHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/prune", h.Prune)
}

func (h *MaintenanceHandler) Prune(c fiber.Ctx) error {
	res, err := h.uc.Prune(c.Context())
	if err != nil {
		return mapSkillUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Pruning completed", dto.PruneResponse{
		RemovedNames: dto.FromNameEntries(res.Names),
		RemovedTags:  dto.FromTagEntries(res.Tags),
	})
}
