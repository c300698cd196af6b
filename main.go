package main

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/config"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/database"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/aircraft"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/auth"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/bookings"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/dashboard"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/equipment"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/instructors"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/invoices"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/members"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/roster"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/settings"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/training"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/services"
)

// customErrorHandler renders JSON for API paths and error pages for the web.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if len(c.Path()) >= 4 && c.Path()[:4] == "/api" {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	switch code {
	case 404:
		return c.Status(404).Render("404", fiber.Map{
			"Title":       "Page Not Found - FlightDesk",
			"CurrentPage": "",
		})
	case 401:
		return c.Status(401).Render("error", fiber.Map{
			"Title":        "Unauthorized - FlightDesk",
			"CurrentPage":  "",
			"ErrorCode":    "401",
			"ErrorTitle":   "Unauthorized",
			"ErrorMessage": "Please log in to access this resource.",
		})
	case 403:
		return c.Status(403).Render("error", fiber.Map{
			"Title":        "Access Forbidden - FlightDesk",
			"CurrentPage":  "",
			"ErrorCode":    "403",
			"ErrorTitle":   "Access Forbidden",
			"ErrorMessage": "You don't have permission to access this resource.",
		})
	case 500:
		return c.Status(500).Render("500", fiber.Map{
			"Title":        "Server Error - FlightDesk",
			"CurrentPage":  "",
			"ErrorCode":    "500",
			"ErrorTitle":   "Internal Server Error",
			"ErrorMessage": "We're experiencing technical difficulties. Please try again later.",
			"ShowRetry":    true,
		})
	default:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Error - FlightDesk",
			"CurrentPage":  "",
			"ErrorCode":    code,
			"ErrorTitle":   "An Error Occurred",
			"ErrorMessage": err.Error(),
		})
	}
}

func main() {
	config.InitDB()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	services.StartScheduler(config.GetDB())

	engine := html.New("./app/templates", ".html")
	engine.AddFunc("json", func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	})
	engine.Reload(true)
	engine.Debug(false)

	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New())

	app.Static("/static", "./static")
	app.Get("/favicon.ico", func(c *fiber.Ctx) error {
		return c.SendFile("./static/favicon.ico")
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})

	auth.SetupAuthRoutes(app)
	dashboard.SetupDashboardRoutes(app)
	bookings.SetupBookingRoutes(app)
	roster.SetupRosterRoutes(app)
	aircraft.SetupAircraftRoutes(app)
	members.SetupMemberRoutes(app)
	instructors.SetupInstructorRoutes(app)
	invoices.SetupInvoiceRoutes(app)
	training.SetupTrainingRoutes(app)
	equipment.SetupEquipmentRoutes(app)
	settings.SetupSettingsRoutes(app)

	// Catch-all for 404s, must be last
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	log.Println("Server starting on :8080")
	log.Fatal(app.Listen(":8080"))
}
