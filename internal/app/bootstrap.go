package app

import (
	"fmt"
	"strings"

	"skill-vault/internal/delivery/http/handler"
	"skill-vault/internal/delivery/http/middleware"
	"skill-vault/internal/delivery/http/routes"
	"skill-vault/internal/repository"
	"skill-vault/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

func Bootstrap(c *Container) (*App, error) {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	errMw := middleware.NewErrorMiddleware(c.Logger)
	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	f.Use(errMw.Middleware())
	f.Use(accessMw.Middleware())

	dictRepo := repository.NewPostgresDictionaryRepository(c.DB)
	queryRepo := repository.NewPostgresSkillQueryRepository()
	skillRepo := repository.NewPostgresSkillRepository(c.DB, dictRepo, queryRepo)
	maintRepo := repository.NewPostgresMaintenanceRepository(c.DB)

	skillUC := usecase.NewSkillUsecase(c.DB, skillRepo, queryRepo, c.Cache, c.Logger)
	dictUC := usecase.NewDictionaryUsecase(dictRepo, c.Logger)
	maintUC := usecase.NewMaintenanceUsecase(maintRepo, c.Logger)

	registry := &routes.Registry{
		Health:      handler.NewHealthHandler(),
		Skills:      handler.NewSkillHandler(skillUC),
		Dictionary:  handler.NewDictionaryHandler(dictUC),
		Maintenance: handler.NewMaintenanceHandler(maintUC),
		Auth:        middleware.NewAuthMiddleware(c.Config.App.APIKey),
	}
	registry.Register(f)

	return &App{Fiber: f}, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
