package equipment

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/database"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

func GetEquipmentAPI(c *fiber.Ctx, db *sql.DB) error {
	items, err := database.GetEquipment(db, c.Query("status"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch equipment")
	}
	return c.JSON(fiber.Map{"success": true, "equipment": items})
}

func GetEquipmentByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	item, err := database.GetEquipmentByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Equipment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch equipment")
	}
	return c.JSON(fiber.Map{"success": true, "equipment": item})
}

func CreateEquipmentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		Name         string `json:"name"`
		SerialNumber string `json:"serial_number"`
		Status       string `json:"status"`
		Notes        string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	status := models.EquipmentStatus(req.Status)
	if status == "" {
		status = models.EquipmentAvailable
	}

	item := &models.Equipment{
		Name:         req.Name,
		SerialNumber: req.SerialNumber,
		Status:       status,
		Notes:        req.Notes,
	}
	if err := database.CreateEquipment(db, item); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create equipment")
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "equipment": item})
}

func UpdateEquipmentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		Name         string `json:"name"`
		SerialNumber string `json:"serial_number"`
		Status       string `json:"status"`
		Notes        string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	item := &models.Equipment{
		ID:           c.Params("id"),
		Name:         req.Name,
		SerialNumber: req.SerialNumber,
		Status:       models.EquipmentStatus(req.Status),
		Notes:        req.Notes,
	}
	if err := database.UpdateEquipment(db, item); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Equipment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update equipment")
	}
	return c.JSON(fiber.Map{"success": true, "equipment": item})
}

func DeleteEquipmentAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteEquipment(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Equipment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete equipment")
	}
	return c.JSON(fiber.Map{"success": true})
}

// IssueEquipmentAPI issues a piece of equipment to a member, typically a
// headset or lifejacket handed over at check-out.
func IssueEquipmentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		MemberID string  `json:"member_id"`
		DueBack  *string `json:"due_back"` // YYYY-MM-DD, optional
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.MemberID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "member_id is required")
	}

	issue := &models.EquipmentIssue{
		EquipmentID: c.Params("id"),
		MemberID:    req.MemberID,
	}
	if req.DueBack != nil && *req.DueBack != "" {
		dueBack, err := time.Parse("2006-01-02", *req.DueBack)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid due_back, expected YYYY-MM-DD")
		}
		issue.DueBack = &dueBack
	}

	if err := database.IssueEquipment(db, issue); err != nil {
		if errors.Is(err, database.ErrEquipmentUnavailable) {
			return fiber.NewError(fiber.StatusConflict, "Equipment is not available for issue")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to issue equipment")
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "issue": issue})
}

// ReturnEquipmentAPI closes an open issue.
func ReturnEquipmentAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.ReturnEquipment(db, c.Params("issueId")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "No open issue with that id")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to return equipment")
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetOpenIssuesAPI lists equipment currently out.
func GetOpenIssuesAPI(c *fiber.Ctx, db *sql.DB) error {
	issues, err := database.GetOpenEquipmentIssues(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch equipment issues")
	}
	return c.JSON(fiber.Map{"success": true, "issues": issues})
}
