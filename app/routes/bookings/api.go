package bookings

import (
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/billing"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/database"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/scheduling"
)

// BookingRequest is the payload for creating or updating a booking.
type BookingRequest struct {
	AircraftID   string  `json:"aircraft_id"`
	InstructorID *string `json:"instructor_id"`
	UserID       *string `json:"user_id"`
	StartTime    string  `json:"start_time"` // RFC 3339
	EndTime      string  `json:"end_time"`
	FlightType   string  `json:"flight_type"`
	Remarks      string  `json:"remarks"`
}

func (req *BookingRequest) parse() (*models.Booking, error) {
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid start_time, expected RFC 3339")
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid end_time, expected RFC 3339")
	}
	if !end.After(start) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "end_time must be after start_time")
	}
	if req.AircraftID == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "aircraft_id is required")
	}
	flightType := models.FlightType(req.FlightType)
	if flightType == "" {
		flightType = models.FlightHire
	}
	return &models.Booking{
		AircraftID:   req.AircraftID,
		InstructorID: req.InstructorID,
		UserID:       req.UserID,
		StartTime:    start,
		EndTime:      end,
		Status:       models.BookingUnconfirmed,
		FlightType:   flightType,
		Remarks:      req.Remarks,
	}, nil
}

// checkInstructorRostered verifies the instructor is rostered on for the
// booking window. Instructor bookings must fall within one calendar day so
// the window maps onto a weekly roster rule.
func checkInstructorRostered(db *sql.DB, b *models.Booking) error {
	if b.InstructorID == nil {
		return nil
	}
	startDay := b.StartTime.Format("2006-01-02")
	if b.EndTime.Format("2006-01-02") != startDay && !isMidnight(b.EndTime) {
		return fiber.NewError(fiber.StatusBadRequest, "Instructor bookings must start and end on the same day")
	}

	rules, err := database.GetRosterRulesForDate(db, b.StartTime)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load roster")
	}
	endHHMM := b.EndTime.Format("15:04")
	if isMidnight(b.EndTime) {
		endHHMM = "23:59"
	}
	rostered, err := scheduling.RosteredInstructorsFor(rules, b.StartTime, b.StartTime.Format("15:04"), endHHMM)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if _, ok := rostered[*b.InstructorID]; !ok {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Instructor is not rostered on for this time")
	}
	return nil
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0
}

// checkConflicts runs the advisory overlap check before a write touches the
// exclusion constraints.
func checkConflicts(db *sql.DB, b *models.Booking, excludeID string) error {
	existing, err := database.GetBookingsOverlapping(db, b.StartTime, b.EndTime)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check conflicts")
	}
	conflicts := scheduling.FindConflicts(scheduling.ProposedBooking{
		AircraftID:   b.AircraftID,
		InstructorID: b.InstructorID,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		ExcludeID:    excludeID,
	}, existing)
	if conflicts.Any() {
		return conflictError(conflicts)
	}
	return nil
}

func conflictError(conflicts scheduling.Conflicts) error {
	msg := "Booking conflicts with an existing booking"
	if conflicts.Aircraft && !conflicts.Instructor {
		msg = "Aircraft is already booked for this time"
	} else if conflicts.Instructor && !conflicts.Aircraft {
		msg = "Instructor is already booked for this time"
	}
	return fiber.NewError(fiber.StatusConflict, msg)
}

// GetBookingsAPI lists bookings with optional filters.
func GetBookingsAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.BookingFilters{
		AircraftID:       c.Query("aircraft_id"),
		InstructorID:     c.Query("instructor_id"),
		UserID:           c.Query("user_id"),
		Status:           c.Query("status"),
		IncludeCancelled: c.Query("include_cancelled") == "true",
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid from")
		}
		filters.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid to")
		}
		filters.To = &t
	}

	bookings, err := database.GetBookings(db, filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch bookings")
	}
	return c.JSON(fiber.Map{"success": true, "bookings": bookings})
}

// GetBookingByIDAPI returns one booking plus its progress stages.
func GetBookingByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	booking, err := database.GetBookingByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Booking not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch booking")
	}

	progress, err := scheduling.StageProgress(booking.Status)
	if err != nil {
		// A status outside the declared set is a data defect; surface it
		// instead of rendering an empty tracker.
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"success": true, "booking": booking, "progress": progress})
}

// GetAvailabilityAPI reports which resources are free for a window: tied-up
// aircraft and instructors, plus the instructors rostered on.
func GetAvailabilityAPI(c *fiber.Ctx, db *sql.DB) error {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid start, expected RFC 3339")
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid end, expected RFC 3339")
	}
	if !end.After(start) {
		return fiber.NewError(fiber.StatusBadRequest, "end must be after start")
	}

	existing, err := database.GetBookingsOverlapping(db, start, end)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch bookings")
	}
	aircraftIDs, instructorIDs := scheduling.UnavailableResources(existing, start, end, c.Query("exclude"))

	rules, err := database.GetRosterRulesForDate(db, start)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load roster")
	}
	endHHMM := end.Format("15:04")
	if isMidnight(end) {
		endHHMM = "23:59"
	}
	rostered, err := scheduling.RosteredInstructorsFor(rules, start, start.Format("15:04"), endHHMM)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"success":                 true,
		"unavailable_aircraft":    setToSlice(aircraftIDs),
		"unavailable_instructors": setToSlice(instructorIDs),
		"rostered_instructors":    setToSlice(rostered),
	})
}

func setToSlice(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// CreateBookingAPI creates one booking: roster check, advisory conflict
// check, then insert. The exclusion constraints re-check at write time and
// a rejection comes back as 409, never a partial write.
func CreateBookingAPI(c *fiber.Ctx, db *sql.DB) error {
	var req BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	booking, err := req.parse()
	if err != nil {
		return err
	}
	if err := checkInstructorRostered(db, booking); err != nil {
		return err
	}
	if err := checkConflicts(db, booking, ""); err != nil {
		return err
	}

	if err := database.CreateBooking(db, booking); err != nil {
		if errors.Is(err, database.ErrBookingConflict) {
			return fiber.NewError(fiber.StatusConflict, "Booking conflicts with an existing booking")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create booking")
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "booking": booking})
}

// CreateBookingsBatchAPI creates several bookings atomically. Every
// candidate is roster-checked before any insert; the transactional insert
// makes the batch all-or-nothing.
func CreateBookingsBatchAPI(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		Bookings []BookingRequest `json:"bookings"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.Bookings) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No bookings supplied")
	}

	parsed := make([]*models.Booking, 0, len(req.Bookings))
	for i := range req.Bookings {
		booking, err := req.Bookings[i].parse()
		if err != nil {
			return err
		}
		if err := checkInstructorRostered(db, booking); err != nil {
			return err
		}
		if err := checkConflicts(db, booking, ""); err != nil {
			return err
		}
		parsed = append(parsed, booking)
	}

	if err := database.CreateBookingsBatch(db, parsed); err != nil {
		if errors.Is(err, database.ErrBookingConflict) {
			return fiber.NewError(fiber.StatusConflict, "A booking in the batch conflicts; nothing was created")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create bookings")
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "bookings": parsed})
}

// UpdateBookingAPI moves a booking to a new window or resources, excluding
// itself from the conflict check.
func UpdateBookingAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	current, err := database.GetBookingByID(db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Booking not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch booking")
	}
	if current.IsCancelled() {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Cancelled bookings cannot be edited")
	}

	var req BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	booking, err := req.parse()
	if err != nil {
		return err
	}
	booking.ID = id
	if err := checkInstructorRostered(db, booking); err != nil {
		return err
	}
	if err := checkConflicts(db, booking, id); err != nil {
		return err
	}

	if err := database.UpdateBookingWindow(db, booking); err != nil {
		if errors.Is(err, database.ErrBookingConflict) {
			return fiber.NewError(fiber.StatusConflict, "Booking conflicts with an existing booking")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update booking")
	}
	return c.JSON(fiber.Map{"success": true, "booking": booking})
}

// transition loads the booking, validates the lifecycle move and applies it.
func transition(c *fiber.Ctx, db *sql.DB, to models.BookingStatus) (*models.Booking, error) {
	booking, err := database.GetBookingByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fiber.NewError(fiber.StatusNotFound, "Booking not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch booking")
	}
	if !scheduling.ValidStatus(booking.Status) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Booking has an unknown status: "+string(booking.Status))
	}
	if !scheduling.CanTransition(booking.Status, to) {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity,
			"Cannot move booking from "+string(booking.Status)+" to "+string(to))
	}
	return booking, nil
}

// ConfirmBookingAPI moves unconfirmed -> confirmed.
func ConfirmBookingAPI(c *fiber.Ctx, db *sql.DB) error {
	booking, err := transition(c, db, models.BookingConfirmed)
	if err != nil {
		return err
	}
	if err := database.UpdateBookingStatus(db, booking.ID, models.BookingConfirmed); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to confirm booking")
	}
	return c.JSON(fiber.Map{"success": true, "status": models.BookingConfirmed})
}

// StartBriefingAPI moves confirmed -> briefing.
func StartBriefingAPI(c *fiber.Ctx, db *sql.DB) error {
	booking, err := transition(c, db, models.BookingBriefing)
	if err != nil {
		return err
	}
	if err := database.UpdateBookingStatus(db, booking.ID, models.BookingBriefing); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update booking")
	}
	return c.JSON(fiber.Map{"success": true, "status": models.BookingBriefing})
}

// CheckOutBookingAPI moves briefing -> checkout and captures the opening
// Hobbs/Tach readings.
func CheckOutBookingAPI(c *fiber.Ctx, db *sql.DB) error {
	booking, err := transition(c, db, models.BookingCheckout)
	if err != nil {
		return err
	}

	var req struct {
		HobbsStart *float64 `json:"hobbs_start"`
		TachStart  *float64 `json:"tach_start"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.HobbsStart == nil || req.TachStart == nil {
		return fiber.NewError(fiber.StatusBadRequest, "hobbs_start and tach_start are required at check-out")
	}

	if err := database.CheckOutBooking(db, booking.ID, *req.HobbsStart, *req.TachStart); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check out booking")
	}
	return c.JSON(fiber.Map{"success": true, "status": models.BookingCheckout})
}

// DispatchBookingAPI moves checkout -> flying.
func DispatchBookingAPI(c *fiber.Ctx, db *sql.DB) error {
	booking, err := transition(c, db, models.BookingFlying)
	if err != nil {
		return err
	}
	if err := database.UpdateBookingStatus(db, booking.ID, models.BookingFlying); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update booking")
	}
	return c.JSON(fiber.Map{"success": true, "status": models.BookingFlying})
}

// CheckInBookingAPI moves flying -> checkin: captures closing readings,
// computes flight time from the Hobbs delta, rolls the aircraft meters
// forward, creates a training-record shell for dual flights and drafts the
// flight-hire invoice.
func CheckInBookingAPI(c *fiber.Ctx, db *sql.DB) error {
	booking, err := transition(c, db, models.BookingCheckin)
	if err != nil {
		return err
	}
	if booking.HobbsStart == nil || booking.TachStart == nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Booking was never checked out")
	}

	var req struct {
		HobbsEnd *float64 `json:"hobbs_end"`
		TachEnd  *float64 `json:"tach_end"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.HobbsEnd == nil || req.TachEnd == nil {
		return fiber.NewError(fiber.StatusBadRequest, "hobbs_end and tach_end are required at check-in")
	}
	if *req.HobbsEnd < *booking.HobbsStart || *req.TachEnd < *booking.TachStart {
		return fiber.NewError(fiber.StatusBadRequest, "Closing readings cannot be below opening readings")
	}

	// Flight time in hours to one decimal, the aviation convention.
	flightTime := math.Round((*req.HobbsEnd-*booking.HobbsStart)*10) / 10

	if err := database.CheckInBooking(db, booking, *req.HobbsEnd, *req.TachEnd, flightTime); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check in booking")
	}

	if booking.FlightType == models.FlightDual && booking.UserID != nil && booking.InstructorID != nil {
		if member, err := database.GetMemberByUserID(db, *booking.UserID); err == nil {
			record := &models.TrainingRecord{
				BookingID:    booking.ID,
				MemberID:     member.ID,
				InstructorID: *booking.InstructorID,
				DualTime:     flightTime,
			}
			_ = database.CreateTrainingRecord(db, record)
		}
	}

	invoice := draftFlightInvoice(db, booking, flightTime)

	return c.JSON(fiber.Map{
		"success":     true,
		"status":      models.BookingCheckin,
		"flight_time": flightTime,
		"invoice":     invoice,
	})
}

// draftFlightInvoice creates a draft invoice for the flight at the
// aircraft's hourly rate and the school's default tax rate. Billing is best
// effort at check-in; staff can redo it from the invoices screen.
func draftFlightInvoice(db *sql.DB, booking *models.Booking, flightTime float64) *models.Invoice {
	if booking.UserID == nil || flightTime <= 0 {
		return nil
	}
	member, err := database.GetMemberByUserID(db, *booking.UserID)
	if err != nil {
		return nil
	}
	aircraft, err := database.GetAircraftByID(db, booking.AircraftID)
	if err != nil {
		return nil
	}
	settings, err := database.GetSchoolSettings(db)
	if err != nil {
		return nil
	}

	invoice := &models.Invoice{
		MemberID:  member.ID,
		BookingID: &booking.ID,
		Status:    models.InvoiceDraft,
	}
	if err := database.CreateInvoice(db, invoice); err != nil {
		return nil
	}

	item := &models.InvoiceItem{
		InvoiceID:   invoice.ID,
		Description: "Aircraft hire " + aircraft.Registration,
		Quantity:    flightTime,
		UnitPrice:   aircraft.HourlyRate,
		TaxRate:     settings.DefaultTaxRate,
	}
	if err := database.AddInvoiceItem(db, item); err != nil {
		return invoice
	}

	totals := billing.CalculateInvoiceTotals([]models.InvoiceItem{*item})
	invoice.Subtotal = totals.Subtotal
	invoice.TaxTotal = totals.TaxTotal
	invoice.TotalAmount = totals.TotalAmount
	invoice.Items = []models.InvoiceItem{*item}
	return invoice
}

// CompleteBookingAPI moves checkin -> complete.
func CompleteBookingAPI(c *fiber.Ctx, db *sql.DB) error {
	booking, err := transition(c, db, models.BookingComplete)
	if err != nil {
		return err
	}
	if err := database.UpdateBookingStatus(db, booking.ID, models.BookingComplete); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update booking")
	}
	return c.JSON(fiber.Map{"success": true, "status": models.BookingComplete})
}

// DebriefBookingAPI moves complete -> debrief.
func DebriefBookingAPI(c *fiber.Ctx, db *sql.DB) error {
	booking, err := transition(c, db, models.BookingDebrief)
	if err != nil {
		return err
	}
	if err := database.UpdateBookingStatus(db, booking.ID, models.BookingDebrief); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update booking")
	}
	return c.JSON(fiber.Map{"success": true, "status": models.BookingDebrief})
}

// CancelBookingAPI cancels a booking from any non-terminal state, freeing
// its window for other bookings.
func CancelBookingAPI(c *fiber.Ctx, db *sql.DB) error {
	booking, err := transition(c, db, models.BookingCancelled)
	if err != nil {
		return err
	}
	if err := database.CancelBooking(db, booking.ID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to cancel booking")
	}
	return c.JSON(fiber.Map{"success": true, "status": models.BookingCancelled})
}
