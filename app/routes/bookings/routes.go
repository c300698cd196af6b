package bookings

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/config"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/database"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/auth"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/scheduling"
)

func SetupBookingRoutes(app *fiber.App) {
	app.Get("/bookings", auth.AuthMiddleware, ShowBookingsPage)

	api := app.Group("/api/bookings", auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetBookingsAPI(c, config.GetDB())
	})
	api.Get("/availability", func(c *fiber.Ctx) error {
		return GetAvailabilityAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetBookingByIDAPI(c, config.GetDB())
	})
	api.Get("/:id/progress", func(c *fiber.Ctx) error {
		return GetBookingProgressAPI(c, config.GetDB())
	})

	api.Post("/", func(c *fiber.Ctx) error {
		return CreateBookingAPI(c, config.GetDB())
	})
	api.Post("/batch", func(c *fiber.Ctx) error {
		return CreateBookingsBatchAPI(c, config.GetDB())
	})
	api.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateBookingAPI(c, config.GetDB())
	})

	staff := auth.RequireRole(models.RoleAdmin, models.RoleOps, models.RoleInstructor)
	api.Post("/:id/confirm", staff, func(c *fiber.Ctx) error {
		return ConfirmBookingAPI(c, config.GetDB())
	})
	api.Post("/:id/brief", staff, func(c *fiber.Ctx) error {
		return StartBriefingAPI(c, config.GetDB())
	})
	api.Post("/:id/checkout", staff, func(c *fiber.Ctx) error {
		return CheckOutBookingAPI(c, config.GetDB())
	})
	api.Post("/:id/dispatch", staff, func(c *fiber.Ctx) error {
		return DispatchBookingAPI(c, config.GetDB())
	})
	api.Post("/:id/checkin", staff, func(c *fiber.Ctx) error {
		return CheckInBookingAPI(c, config.GetDB())
	})
	api.Post("/:id/complete", staff, func(c *fiber.Ctx) error {
		return CompleteBookingAPI(c, config.GetDB())
	})
	api.Post("/:id/debrief", staff, func(c *fiber.Ctx) error {
		return DebriefBookingAPI(c, config.GetDB())
	})
	api.Post("/:id/cancel", func(c *fiber.Ctx) error {
		return CancelBookingAPI(c, config.GetDB())
	})
}

func ShowBookingsPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return c.Render("bookings/index", fiber.Map{
		"Title":       "Bookings - FlightDesk",
		"CurrentPage": "bookings",
		"user":        user,
		"Stages":      scheduling.Stages,
	})
}

// GetBookingProgressAPI returns the stage tracker for one booking.
func GetBookingProgressAPI(c *fiber.Ctx, db *sql.DB) error {
	booking, err := database.GetBookingByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Booking not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch booking")
	}

	progress, err := scheduling.StageProgress(booking.Status)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"status":    booking.Status,
		"cancelled": booking.IsCancelled(),
		"stages":    progress,
	})
}
