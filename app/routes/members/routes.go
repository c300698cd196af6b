package members

import (
	"github.com/gofiber/fiber/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/config"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/auth"
)

func SetupMemberRoutes(app *fiber.App) {
	app.Get("/members", auth.AuthMiddleware, ShowMembersPage)

	api := app.Group("/api/members", auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetMembersAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetMemberByIDAPI(c, config.GetDB())
	})

	staff := auth.RequireRole(models.RoleAdmin, models.RoleOps)
	api.Post("/", staff, func(c *fiber.Ctx) error {
		return CreateMemberAPI(c, config.GetDB())
	})
	api.Put("/:id", staff, func(c *fiber.Ctx) error {
		return UpdateMemberAPI(c, config.GetDB())
	})
	api.Delete("/:id", staff, func(c *fiber.Ctx) error {
		return DeleteMemberAPI(c, config.GetDB())
	})
}

func ShowMembersPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return c.Render("members/index", fiber.Map{
		"Title":       "Members - FlightDesk",
		"CurrentPage": "members",
		"user":        user,
	})
}
