package training

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/database"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

func GetTrainingRecordsAPI(c *fiber.Ctx, db *sql.DB) error {
	records, err := database.GetTrainingRecords(db, c.Query("member_id"), c.Query("instructor_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch training records")
	}
	return c.JSON(fiber.Map{"success": true, "records": records})
}

func GetTrainingRecordByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	record, err := database.GetTrainingRecordByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Training record not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch training record")
	}
	return c.JSON(fiber.Map{"success": true, "record": record})
}

// GetTrainingRecordByBookingAPI looks up the record created at check-in for
// a booking, for the debrief screen.
func GetTrainingRecordByBookingAPI(c *fiber.Ctx, db *sql.DB) error {
	record, err := database.GetTrainingRecordByBooking(db, c.Params("bookingId"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "No training record for this booking")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch training record")
	}
	return c.JSON(fiber.Map{"success": true, "record": record})
}

type recordRequest struct {
	Lesson   string  `json:"lesson"`
	Comments string  `json:"comments"`
	Outcome  string  `json:"outcome"`
	DualTime float64 `json:"dual_time"`
	SoloTime float64 `json:"solo_time"`
}

func validOutcome(outcome string) bool {
	switch outcome {
	case "", "pass", "repeat", "incomplete":
		return true
	}
	return false
}

// UpdateTrainingRecordAPI fills in the instructional fields at debrief.
func UpdateTrainingRecordAPI(c *fiber.Ctx, db *sql.DB) error {
	var req recordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if !validOutcome(req.Outcome) {
		return fiber.NewError(fiber.StatusBadRequest, "outcome must be pass, repeat or incomplete")
	}
	if req.DualTime < 0 || req.SoloTime < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Flight times cannot be negative")
	}

	record := &models.TrainingRecord{
		ID:       c.Params("id"),
		Lesson:   req.Lesson,
		Comments: req.Comments,
		Outcome:  req.Outcome,
		DualTime: req.DualTime,
		SoloTime: req.SoloTime,
	}
	if err := database.UpdateTrainingRecord(db, record); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Training record not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update training record")
	}
	return c.JSON(fiber.Map{"success": true, "record": record})
}

func DeleteTrainingRecordAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteTrainingRecord(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Training record not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete training record")
	}
	return c.JSON(fiber.Map{"success": true})
}
