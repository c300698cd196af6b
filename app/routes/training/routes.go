package training

import (
	"github.com/gofiber/fiber/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/config"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/auth"
)

func SetupTrainingRoutes(app *fiber.App) {
	api := app.Group("/api/training", auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetTrainingRecordsAPI(c, config.GetDB())
	})
	api.Get("/booking/:bookingId", func(c *fiber.Ctx) error {
		return GetTrainingRecordByBookingAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetTrainingRecordByIDAPI(c, config.GetDB())
	})

	instructorOnly := auth.RequireRole(models.RoleAdmin, models.RoleInstructor)
	api.Put("/:id", instructorOnly, func(c *fiber.Ctx) error {
		return UpdateTrainingRecordAPI(c, config.GetDB())
	})
	api.Delete("/:id", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return DeleteTrainingRecordAPI(c, config.GetDB())
	})
}
