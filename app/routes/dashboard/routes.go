package dashboard

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/config"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/database"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/auth"
)

func SetupDashboardRoutes(app *fiber.App) {
	app.Get("/dashboard", auth.AuthMiddleware, ShowDashboardPage)
	app.Get("/api/dashboard/stats", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		return GetDashboardStatsAPI(c, config.GetDB())
	})
}

func ShowDashboardPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	stats, err := database.GetDashboardStats(config.GetDB())
	if err != nil {
		stats = &database.DashboardStats{}
	}

	return c.Render("dashboard/index", fiber.Map{
		"Title":       "Dashboard - FlightDesk",
		"CurrentPage": "dashboard",
		"user":        user,
		"FirstName":   user.FirstName,
		"Stats":       stats,
	})
}

func GetDashboardStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	stats, err := database.GetDashboardStats(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch dashboard stats")
	}
	return c.JSON(fiber.Map{"success": true, "stats": stats})
}
