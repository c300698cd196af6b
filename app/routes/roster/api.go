package roster

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/database"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/scheduling"
)

// RosterRuleRequest is the payload for creating or updating a roster rule.
// On update, nil fields are left untouched.
type RosterRuleRequest struct {
	InstructorID   *string `json:"instructor_id"`
	DayOfWeek      *int    `json:"day_of_week"`
	StartTime      *string `json:"start_time"` // HH:MM
	EndTime        *string `json:"end_time"`
	EffectiveFrom  *string `json:"effective_from"` // YYYY-MM-DD
	EffectiveUntil *string `json:"effective_until"`
	IsActive       *bool   `json:"is_active"`
}

func parseDay(value string, field string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Invalid "+field+", expected YYYY-MM-DD")
	}
	return t, nil
}

// GetRosterRulesAPI lists roster rules, voided ones included so the roster
// history stays visible.
func GetRosterRulesAPI(c *fiber.Ctx, db *sql.DB) error {
	rules, err := database.GetRosterRules(db, c.Query("instructor_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch roster rules")
	}
	return c.JSON(fiber.Map{"success": true, "rules": rules})
}

// GetRosterRuleByIDAPI fetches one rule.
func GetRosterRuleByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	rule, err := database.GetRosterRuleByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Roster rule not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch roster rule")
	}
	return c.JSON(fiber.Map{"success": true, "rule": rule})
}

// CreateRosterRuleAPI creates a weekly roster rule.
func CreateRosterRuleAPI(c *fiber.Ctx, db *sql.DB) error {
	var req RosterRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.InstructorID == nil || *req.InstructorID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "instructor_id is required")
	}
	if req.DayOfWeek == nil || *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
		return fiber.NewError(fiber.StatusBadRequest, "day_of_week must be 0 (Sunday) through 6 (Saturday)")
	}
	if req.StartTime == nil || req.EndTime == nil {
		return fiber.NewError(fiber.StatusBadRequest, "start_time and end_time are required")
	}
	if _, err := scheduling.ParseWindow(*req.StartTime, *req.EndTime); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid shift times: "+err.Error())
	}
	if req.EffectiveFrom == nil {
		return fiber.NewError(fiber.StatusBadRequest, "effective_from is required")
	}
	from, err := parseDay(*req.EffectiveFrom, "effective_from")
	if err != nil {
		return err
	}

	rule := &models.RosterRule{
		InstructorID:  *req.InstructorID,
		DayOfWeek:     *req.DayOfWeek,
		StartTime:     *req.StartTime,
		EndTime:       *req.EndTime,
		EffectiveFrom: from,
		IsActive:      true,
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	if req.EffectiveUntil != nil && *req.EffectiveUntil != "" {
		until, err := parseDay(*req.EffectiveUntil, "effective_until")
		if err != nil {
			return err
		}
		if until.Before(from) {
			return fiber.NewError(fiber.StatusBadRequest, "effective_until cannot be before effective_from")
		}
		rule.EffectiveUntil = &until
	}

	if err := database.CreateRosterRule(db, rule); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create roster rule")
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "rule": rule})
}

// UpdateRosterRuleAPI applies a partial update; only the supplied fields
// change.
func UpdateRosterRuleAPI(c *fiber.Ctx, db *sql.DB) error {
	var req RosterRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	var sets []string
	var args []interface{}
	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if req.DayOfWeek != nil {
		if *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
			return fiber.NewError(fiber.StatusBadRequest, "day_of_week must be 0 (Sunday) through 6 (Saturday)")
		}
		add("day_of_week", *req.DayOfWeek)
	}
	if req.StartTime != nil || req.EndTime != nil {
		if req.StartTime == nil || req.EndTime == nil {
			return fiber.NewError(fiber.StatusBadRequest, "start_time and end_time must be updated together")
		}
		if _, err := scheduling.ParseWindow(*req.StartTime, *req.EndTime); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid shift times: "+err.Error())
		}
		add("start_time", *req.StartTime)
		add("end_time", *req.EndTime)
	}
	if req.EffectiveFrom != nil {
		from, err := parseDay(*req.EffectiveFrom, "effective_from")
		if err != nil {
			return err
		}
		add("effective_from", from)
	}
	if req.EffectiveUntil != nil {
		if *req.EffectiveUntil == "" {
			add("effective_until", nil)
		} else {
			until, err := parseDay(*req.EffectiveUntil, "effective_until")
			if err != nil {
				return err
			}
			add("effective_until", until)
		}
	}
	if req.IsActive != nil {
		add("is_active", *req.IsActive)
	}

	if len(sets) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No fields to update")
	}
	if err := database.UpdateRosterRule(db, c.Params("id"), sets, args); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Roster rule not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update roster rule")
	}

	rule, err := database.GetRosterRuleByID(db, c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch roster rule")
	}
	return c.JSON(fiber.Map{"success": true, "rule": rule})
}

// VoidRosterRuleAPI voids a rule. Voided rules stop matching availability
// queries but stay on record.
func VoidRosterRuleAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.VoidRosterRule(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Roster rule not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to void roster rule")
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetAvailableInstructorsAPI answers "who is rostered on for this window":
// date (YYYY-MM-DD) plus start/end times of day (HH:MM).
func GetAvailableInstructorsAPI(c *fiber.Ctx, db *sql.DB) error {
	date, err := parseDay(c.Query("date"), "date")
	if err != nil {
		return err
	}

	rules, err := database.GetRosterRulesForDate(db, date)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load roster")
	}
	rostered, err := scheduling.RosteredInstructorsFor(rules, date, c.Query("start"), c.Query("end"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	instructors, err := database.GetInstructors(db, true)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch instructors")
	}
	available := make([]*models.Instructor, 0, len(rostered))
	for _, instructor := range instructors {
		if _, ok := rostered[instructor.ID]; ok {
			available = append(available, instructor)
		}
	}
	return c.JSON(fiber.Map{"success": true, "instructors": available})
}

// GetRosterGridAPI returns each instructor's shift windows for a date,
// the data behind the day-view roster grid.
func GetRosterGridAPI(c *fiber.Ctx, db *sql.DB) error {
	date, err := parseDay(c.Query("date"), "date")
	if err != nil {
		return err
	}

	rules, err := database.GetRosterRulesForDate(db, date)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load roster")
	}

	grid := make(map[string][]fiber.Map)
	for instructorID, windows := range scheduling.InstructorAvailabilityMap(rules) {
		shifts := make([]fiber.Map, 0, len(windows))
		for _, w := range windows {
			shifts = append(shifts, fiber.Map{
				"start": w.Start,
				"end":   w.End,
				"label": w.String(),
			})
		}
		grid[instructorID] = shifts
	}
	return c.JSON(fiber.Map{"success": true, "date": c.Query("date"), "grid": grid})
}
