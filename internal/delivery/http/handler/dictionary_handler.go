package handler

import (
	"skill-vault/internal/delivery/http/dto"
	"skill-vault/internal/delivery/http/middleware"
	"skill-vault/internal/pkg/response"
	"skill-vault/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DictionaryHandler struct {
	uc usecase.DictionaryUsecase
}

func NewDictionaryHandler(uc usecase.DictionaryUsecase) *DictionaryHandler {
	return &DictionaryHandler{uc: uc}
}

func (h *DictionaryHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/names", h.ListNames)
	r.Get("/tags", h.ListTags)
}

func (h *DictionaryHandler) ListNames(c fiber.Ctx) error {
	page, err := parsePageParams(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	items, pagination, err := h.uc.ListNames(c.Context(), page)
	if err != nil {
		return mapSkillUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NameListResponse{
		Data:       dto.FromNameEntries(items),
		Pagination: dto.FromPagination(pagination),
	})
}

func (h *DictionaryHandler) ListTags(c fiber.Ctx) error {
	page, err := parsePageParams(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	items, pagination, err := h.uc.ListTags(c.Context(), page)
	if err != nil {
		return mapSkillUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.TagListResponse{
		Data:       dto.FromTagEntries(items),
		Pagination: dto.FromPagination(pagination),
	})
}
