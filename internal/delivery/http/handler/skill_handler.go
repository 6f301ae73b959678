package handler

import (
	"errors"
	"strconv"
	"strings"

	"skill-vault/internal/delivery/http/dto"
	"skill-vault/internal/delivery/http/middleware"
	"skill-vault/internal/domain/skill"
	"skill-vault/internal/pkg/response"
	"skill-vault/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/paginated", h.List)
	grp.Post("/create", h.Create)
	grp.Post("/update/:id", h.Update)
	grp.Post("/delete/:id", h.Delete)
	grp.Get("/:id", h.Get)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	page, err := parsePageParams(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	filter := skill.ListFilter{Tags: parseCSVQuery(c.Query("tags"))}
	filter.ProficiencyMin, err = parseOptionalIntQuery(c, "proficiency")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	filter.YearsMin, err = parseOptionalIntQuery(c, "years")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	items, pagination, err := h.uc.ListSkills(c.Context(), usecase.ListSkillsParams{Filter: filter, Page: page})
	if err != nil {
		return mapSkillUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SkillListResponse{
		Data:       dto.FromSkills(items),
		Pagination: dto.FromPagination(pagination),
	})
}

func (h *SkillHandler) Get(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	s, err := h.uc.GetSkill(c.Context(), id)
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromSkill(s))
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req dto.SkillPayload
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	created, err := h.uc.CreateSkill(c.Context(), req.ToInput())
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Skill created successfully", dto.FromSkill(created))
}

func (h *SkillHandler) Update(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	var req dto.SkillPayload
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	updated, err := h.uc.UpdateSkill(c.Context(), id, req.ToInput())
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill updated successfully", dto.FromSkill(updated))
}

func (h *SkillHandler) Delete(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	deletedSubskills, err := h.uc.DeleteSkill(c.Context(), id)
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill deleted successfully", dto.DeleteSkillResponse{
		ID:                    id,
		DeletedSubskillsCount: deletedSubskills,
	})
}

func parseIDParam(c fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func parsePageParams(c fiber.Ctx) (usecase.PageParams, error) {
	page, err := parseQueryIntStrict(c, "page", 1)
	if err != nil {
		return usecase.PageParams{}, err
	}
	pageSize, err := parseQueryIntStrict(c, "pageSize", 0)
	if err != nil {
		return usecase.PageParams{}, err
	}
	return usecase.PageParams{Page: page, PageSize: pageSize}, nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

func parseOptionalIntQuery(c fiber.Ctx, key string) (*int, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseCSVQuery(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func mapSkillUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, response.MessageConflict, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
