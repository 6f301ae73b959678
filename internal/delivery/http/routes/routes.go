package routes

import (
	"skill-vault/internal/delivery/http/handler"
	"skill-vault/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health      *handler.HealthHandler
	Skills      *handler.SkillHandler
	Dictionary  *handler.DictionaryHandler
	Maintenance *handler.MaintenanceHandler

	Auth *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.Health.RegisterRoutes(app)

	api := app.Group("/api")
	v1 := api.Group("/v1", r.Auth.Middleware())

	r.Skills.RegisterRoutes(v1)
	r.Dictionary.RegisterRoutes(v1)
	r.Maintenance.RegisterRoutes(v1)
}
