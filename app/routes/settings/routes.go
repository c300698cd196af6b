package settings

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/config"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/database"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/auth"
)

func SetupSettingsRoutes(app *fiber.App) {
	admin := auth.RequireRole(models.RoleAdmin)

	api := app.Group("/api/settings", auth.AuthMiddleware)
	api.Get("/", func(c *fiber.Ctx) error {
		return GetSettingsAPI(c, config.GetDB())
	})
	api.Put("/", admin, func(c *fiber.Ctx) error {
		return UpdateSettingsAPI(c, config.GetDB())
	})
}

func GetSettingsAPI(c *fiber.Ctx, db *sql.DB) error {
	s, err := database.GetSchoolSettings(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load settings")
	}
	return c.JSON(fiber.Map{"success": true, "settings": s})
}

func UpdateSettingsAPI(c *fiber.Ctx, db *sql.DB) error {
	current, err := database.GetSchoolSettings(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load settings")
	}

	var req struct {
		Name           string   `json:"name"`
		ContactEmail   string   `json:"contact_email"`
		ContactPhone   string   `json:"contact_phone"`
		DefaultTaxRate *float64 `json:"default_tax_rate"`
		InvoiceDueDays *int     `json:"invoice_due_days"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	if req.DefaultTaxRate != nil {
		if *req.DefaultTaxRate < 0 || *req.DefaultTaxRate > 1 {
			return fiber.NewError(fiber.StatusBadRequest, "default_tax_rate must be between 0 and 1")
		}
		current.DefaultTaxRate = *req.DefaultTaxRate
	}
	if req.InvoiceDueDays != nil {
		if *req.InvoiceDueDays < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invoice_due_days cannot be negative")
		}
		current.InvoiceDueDays = *req.InvoiceDueDays
	}
	current.Name = req.Name
	current.ContactEmail = req.ContactEmail
	current.ContactPhone = req.ContactPhone

	if err := database.UpdateSchoolSettings(db, current); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update settings")
	}
	return c.JSON(fiber.Map{"success": true, "settings": current})
}
