package aircraft

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/database"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

type aircraftRequest struct {
	Registration string   `json:"registration"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Type         string   `json:"type"`
	Status       string   `json:"status"`
	Seats        int      `json:"seats"`
	HourlyRate   *float64 `json:"hourly_rate"`
	CurrentHobbs float64  `json:"current_hobbs"`
	CurrentTach  float64  `json:"current_tach"`
	Notes        string   `json:"notes"`
}

func (req *aircraftRequest) parse() (*models.Aircraft, error) {
	if req.Registration == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "registration is required")
	}
	if req.HourlyRate == nil || *req.HourlyRate < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "hourly_rate is required and cannot be negative")
	}
	status := models.AircraftStatus(req.Status)
	if status == "" {
		status = models.AircraftOnline
	}
	return &models.Aircraft{
		Registration: req.Registration,
		Make:         req.Make,
		Model:        req.Model,
		Type:         req.Type,
		Status:       status,
		Seats:        req.Seats,
		HourlyRate:   *req.HourlyRate,
		CurrentHobbs: req.CurrentHobbs,
		CurrentTach:  req.CurrentTach,
		Notes:        req.Notes,
	}, nil
}

func GetAircraftAPI(c *fiber.Ctx, db *sql.DB) error {
	fleet, err := database.GetAircraft(db, c.Query("status"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch aircraft")
	}
	return c.JSON(fiber.Map{"success": true, "aircraft": fleet})
}

func GetAircraftByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	a, err := database.GetAircraftByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Aircraft not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch aircraft")
	}
	return c.JSON(fiber.Map{"success": true, "aircraft": a})
}

func CreateAircraftAPI(c *fiber.Ctx, db *sql.DB) error {
	var req aircraftRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	a, err := req.parse()
	if err != nil {
		return err
	}
	if err := database.CreateAircraft(db, a); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create aircraft")
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "aircraft": a})
}

func UpdateAircraftAPI(c *fiber.Ctx, db *sql.DB) error {
	var req aircraftRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	a, err := req.parse()
	if err != nil {
		return err
	}
	a.ID = c.Params("id")
	if err := database.UpdateAircraft(db, a); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Aircraft not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update aircraft")
	}
	return c.JSON(fiber.Map{"success": true, "aircraft": a})
}

func DeleteAircraftAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteAircraft(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Aircraft not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete aircraft")
	}
	return c.JSON(fiber.Map{"success": true})
}
