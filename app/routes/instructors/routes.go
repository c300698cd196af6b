package instructors

import (
	"github.com/gofiber/fiber/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/config"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/auth"
)

func SetupInstructorRoutes(app *fiber.App) {
	app.Get("/instructors", auth.AuthMiddleware, ShowInstructorsPage)

	api := app.Group("/api/instructors", auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetInstructorsAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetInstructorByIDAPI(c, config.GetDB())
	})

	admin := auth.RequireRole(models.RoleAdmin)
	api.Post("/", admin, func(c *fiber.Ctx) error {
		return CreateInstructorAPI(c, config.GetDB())
	})
	api.Put("/:id", admin, func(c *fiber.Ctx) error {
		return UpdateInstructorAPI(c, config.GetDB())
	})
	api.Delete("/:id", admin, func(c *fiber.Ctx) error {
		return DeleteInstructorAPI(c, config.GetDB())
	})
}

func ShowInstructorsPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return c.Render("instructors/index", fiber.Map{
		"Title":       "Instructors - FlightDesk",
		"CurrentPage": "instructors",
		"user":        user,
	})
}
