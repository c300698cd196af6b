package invoices

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/billing"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/database"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

// GetInvoicesAPI lists invoices, optionally filtered by member or status.
func GetInvoicesAPI(c *fiber.Ctx, db *sql.DB) error {
	invoices, err := database.GetInvoices(db, c.Query("member_id"), c.Query("status"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch invoices")
	}
	return c.JSON(fiber.Map{"success": true, "invoices": invoices})
}

// GetInvoiceByIDAPI fetches one invoice with its items.
func GetInvoiceByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	invoice, err := database.GetInvoiceByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch invoice")
	}
	return c.JSON(fiber.Map{"success": true, "invoice": invoice})
}

// CreateInvoiceAPI creates an empty draft invoice for a member.
func CreateInvoiceAPI(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		MemberID  string  `json:"member_id"`
		BookingID *string `json:"booking_id"`
		Notes     string  `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.MemberID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "member_id is required")
	}
	if _, err := database.GetMemberByID(db, req.MemberID); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Member not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch member")
	}

	invoice := &models.Invoice{
		MemberID:  req.MemberID,
		BookingID: req.BookingID,
		Status:    models.InvoiceDraft,
		Notes:     req.Notes,
	}
	if err := database.CreateInvoice(db, invoice); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create invoice")
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "invoice": invoice})
}

type itemRequest struct {
	Description string   `json:"description"`
	Quantity    *float64 `json:"quantity"`
	UnitPrice   *float64 `json:"unit_price"`
	TaxRate     *float64 `json:"tax_rate"`
}

func (req *itemRequest) validate() error {
	if req.Description == "" {
		return fiber.NewError(fiber.StatusBadRequest, "description is required")
	}
	if req.Quantity == nil || req.UnitPrice == nil || req.TaxRate == nil {
		return fiber.NewError(fiber.StatusBadRequest, "quantity, unit_price and tax_rate are required")
	}
	return nil
}

func mapBillingError(err error) error {
	switch {
	case errors.Is(err, billing.ErrInvalidQuantity),
		errors.Is(err, billing.ErrInvalidPrice),
		errors.Is(err, billing.ErrInvalidTaxRate):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "Failed to save invoice item")
}

// requireDraft loads the invoice and rejects item edits once it has been
// issued.
func requireDraft(db *sql.DB, invoiceID string) (*models.Invoice, error) {
	invoice, err := database.GetInvoiceByID(db, invoiceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fiber.NewError(fiber.StatusNotFound, "Invoice not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch invoice")
	}
	if invoice.Status != models.InvoiceDraft {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Only draft invoices can be edited")
	}
	return invoice, nil
}

// AddInvoiceItemAPI adds a line item to a draft invoice; the monetary
// fields are derived server-side and the totals re-aggregated.
func AddInvoiceItemAPI(c *fiber.Ctx, db *sql.DB) error {
	invoice, err := requireDraft(db, c.Params("id"))
	if err != nil {
		return err
	}

	var req itemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	item := &models.InvoiceItem{
		InvoiceID:   invoice.ID,
		Description: req.Description,
		Quantity:    *req.Quantity,
		UnitPrice:   *req.UnitPrice,
		TaxRate:     *req.TaxRate,
	}
	if err := database.AddInvoiceItem(db, item); err != nil {
		return mapBillingError(err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "item": item})
}

// UpdateInvoiceItemAPI re-derives a line item from new inputs.
func UpdateInvoiceItemAPI(c *fiber.Ctx, db *sql.DB) error {
	if _, err := requireDraft(db, c.Params("id")); err != nil {
		return err
	}

	var req itemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	item := &models.InvoiceItem{
		ID:          c.Params("itemId"),
		Description: req.Description,
		Quantity:    *req.Quantity,
		UnitPrice:   *req.UnitPrice,
		TaxRate:     *req.TaxRate,
	}
	if err := database.UpdateInvoiceItem(db, item); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Invoice item not found")
		}
		return mapBillingError(err)
	}
	return c.JSON(fiber.Map{"success": true, "item": item})
}

// DeleteInvoiceItemAPI soft-deletes a line item and re-aggregates the
// invoice without it.
func DeleteInvoiceItemAPI(c *fiber.Ctx, db *sql.DB) error {
	if _, err := requireDraft(db, c.Params("id")); err != nil {
		return err
	}
	if err := database.DeleteInvoiceItem(db, c.Params("itemId")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Invoice item not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete invoice item")
	}
	return c.JSON(fiber.Map{"success": true})
}

// IssueInvoiceAPI moves a draft invoice to issued. The due date defaults to
// the school's configured payment terms.
func IssueInvoiceAPI(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		DueDate string `json:"due_date"` // YYYY-MM-DD, optional
	}
	_ = c.BodyParser(&req)

	var dueDate time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid due_date, expected YYYY-MM-DD")
		}
		dueDate = parsed
	} else {
		settings, err := database.GetSchoolSettings(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load settings")
		}
		dueDate = time.Now().AddDate(0, 0, settings.InvoiceDueDays)
	}

	if err := database.IssueInvoice(db, c.Params("id"), dueDate); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Invoice is not a draft")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to issue invoice")
	}
	return c.JSON(fiber.Map{"success": true, "due_date": dueDate.Format("2006-01-02")})
}

// MarkInvoicePaidAPI records payment on an issued or overdue invoice.
func MarkInvoicePaidAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.MarkInvoicePaid(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Invoice is not awaiting payment")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to mark invoice paid")
	}
	return c.JSON(fiber.Map{"success": true})
}

// VoidInvoiceAPI voids an invoice.
func VoidInvoiceAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.VoidInvoice(db, c.Params("id")); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to void invoice")
	}
	return c.JSON(fiber.Map{"success": true})
}
