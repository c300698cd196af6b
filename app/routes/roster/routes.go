package roster

import (
	"github.com/gofiber/fiber/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/config"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/auth"
)

func SetupRosterRoutes(app *fiber.App) {
	app.Get("/roster", auth.AuthMiddleware, ShowRosterPage)

	api := app.Group("/api/roster", auth.AuthMiddleware)

	api.Get("/rules", func(c *fiber.Ctx) error {
		return GetRosterRulesAPI(c, config.GetDB())
	})
	api.Get("/rules/:id", func(c *fiber.Ctx) error {
		return GetRosterRuleByIDAPI(c, config.GetDB())
	})
	api.Get("/available", func(c *fiber.Ctx) error {
		return GetAvailableInstructorsAPI(c, config.GetDB())
	})
	api.Get("/grid", func(c *fiber.Ctx) error {
		return GetRosterGridAPI(c, config.GetDB())
	})

	staff := auth.RequireRole(models.RoleAdmin, models.RoleOps)
	api.Post("/rules", staff, func(c *fiber.Ctx) error {
		return CreateRosterRuleAPI(c, config.GetDB())
	})
	api.Put("/rules/:id", staff, func(c *fiber.Ctx) error {
		return UpdateRosterRuleAPI(c, config.GetDB())
	})
	api.Delete("/rules/:id", staff, func(c *fiber.Ctx) error {
		return VoidRosterRuleAPI(c, config.GetDB())
	})
}

func ShowRosterPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return c.Render("roster/index", fiber.Map{
		"Title":       "Roster - FlightDesk",
		"CurrentPage": "roster",
		"user":        user,
	})
}
