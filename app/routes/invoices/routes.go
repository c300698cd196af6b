package invoices

import (
	"github.com/gofiber/fiber/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/config"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/routes/auth"
)

func SetupInvoiceRoutes(app *fiber.App) {
	app.Get("/invoices", auth.AuthMiddleware, ShowInvoicesPage)

	api := app.Group("/api/invoices", auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetInvoicesAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetInvoiceByIDAPI(c, config.GetDB())
	})

	staff := auth.RequireRole(models.RoleAdmin, models.RoleOps)
	api.Post("/", staff, func(c *fiber.Ctx) error {
		return CreateInvoiceAPI(c, config.GetDB())
	})
	api.Post("/:id/items", staff, func(c *fiber.Ctx) error {
		return AddInvoiceItemAPI(c, config.GetDB())
	})
	api.Put("/:id/items/:itemId", staff, func(c *fiber.Ctx) error {
		return UpdateInvoiceItemAPI(c, config.GetDB())
	})
	api.Delete("/:id/items/:itemId", staff, func(c *fiber.Ctx) error {
		return DeleteInvoiceItemAPI(c, config.GetDB())
	})
	api.Post("/:id/issue", staff, func(c *fiber.Ctx) error {
		return IssueInvoiceAPI(c, config.GetDB())
	})
	api.Post("/:id/pay", staff, func(c *fiber.Ctx) error {
		return MarkInvoicePaidAPI(c, config.GetDB())
	})
	api.Post("/:id/void", staff, func(c *fiber.Ctx) error {
		return VoidInvoiceAPI(c, config.GetDB())
	})
}

func ShowInvoicesPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return c.Render("invoices/index", fiber.Map{
		"Title":       "Invoices - FlightDesk",
		"CurrentPage": "invoices",
		"user":        user,
	})
}
