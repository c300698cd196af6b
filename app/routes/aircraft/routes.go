package aircraft

import (
	"github.com/gofiber/fiber/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/config"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/auth"
)

func SetupAircraftRoutes(app *fiber.App) {
	app.Get("/aircraft", auth.AuthMiddleware, ShowAircraftPage)

	api := app.Group("/api/aircraft", auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetAircraftAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetAircraftByIDAPI(c, config.GetDB())
	})

	admin := auth.RequireRole(models.RoleAdmin, models.RoleOps)
	api.Post("/", admin, func(c *fiber.Ctx) error {
		return CreateAircraftAPI(c, config.GetDB())
	})
	api.Put("/:id", admin, func(c *fiber.Ctx) error {
		return UpdateAircraftAPI(c, config.GetDB())
	})
	api.Delete("/:id", admin, func(c *fiber.Ctx) error {
		return DeleteAircraftAPI(c, config.GetDB())
	})
}

func ShowAircraftPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return c.Render("aircraft/index", fiber.Map{
		"Title":       "Fleet - FlightDesk",
		"CurrentPage": "aircraft",
		"user":        user,
	})
}
