package equipment

import (
	"github.com/gofiber/fiber/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/config"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/auth"
)

func SetupEquipmentRoutes(app *fiber.App) {
	api := app.Group("/api/equipment", auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetEquipmentAPI(c, config.GetDB())
	})
	api.Get("/issues/open", func(c *fiber.Ctx) error {
		return GetOpenIssuesAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetEquipmentByIDAPI(c, config.GetDB())
	})

	staff := auth.RequireRole(models.RoleAdmin, models.RoleOps, models.RoleInstructor)
	api.Post("/:id/issue", staff, func(c *fiber.Ctx) error {
		return IssueEquipmentAPI(c, config.GetDB())
	})
	api.Post("/issues/:issueId/return", staff, func(c *fiber.Ctx) error {
		return ReturnEquipmentAPI(c, config.GetDB())
	})

	admin := auth.RequireRole(models.RoleAdmin, models.RoleOps)
	api.Post("/", admin, func(c *fiber.Ctx) error {
		return CreateEquipmentAPI(c, config.GetDB())
	})
	api.Put("/:id", admin, func(c *fiber.Ctx) error {
		return UpdateEquipmentAPI(c, config.GetDB())
	})
	api.Delete("/:id", admin, func(c *fiber.Ctx) error {
		return DeleteEquipmentAPI(c, config.GetDB())
	})
}
