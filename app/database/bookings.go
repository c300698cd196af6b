package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

// ErrBookingConflict is returned when the bookings table's exclusion
// constraints reject a write because a non-cancelled booking already holds
// the aircraft or instructor for an overlapping window. The in-memory
// conflict check is advisory; this is the authoritative answer.
var ErrBookingConflict = errors.New("booking conflicts with an existing booking")

// exclusionViolation is the SQLSTATE raised by EXCLUDE constraints.
const exclusionViolation = "23P01"

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == exclusionViolation
}

// BookingFilters narrows booking listings.
type BookingFilters struct {
	AircraftID   string
	InstructorID string
	UserID       string
	Status       string
	From         *time.Time
	To           *time.Time
	IncludeCancelled bool
}

const bookingColumns = `b.id, b.aircraft_id, b.instructor_id, b.user_id, b.start_time, b.end_time,
	b.status, b.flight_type, b.remarks, b.hobbs_start, b.hobbs_end, b.tach_start, b.tach_end,
	b.flight_time, b.cancelled_at, b.created_at, b.updated_at`

func scanBooking(scanner interface{ Scan(...interface{}) error }, b *models.Booking) error {
	return scanner.Scan(
		&b.ID, &b.AircraftID, &b.InstructorID, &b.UserID, &b.StartTime, &b.EndTime,
		&b.Status, &b.FlightType, &b.Remarks, &b.HobbsStart, &b.HobbsEnd, &b.TachStart, &b.TachEnd,
		&b.FlightTime, &b.CancelledAt, &b.CreatedAt, &b.UpdatedAt,
	)
}

// GetBookings lists bookings newest-first with optional filters.
func GetBookings(db *sql.DB, filters BookingFilters) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + `,
			  a.registration,
			  COALESCE(iu.first_name || ' ' || iu.last_name, ''),
			  COALESCE(mu.first_name || ' ' || mu.last_name, '')
			  FROM bookings b
			  JOIN aircraft a ON a.id = b.aircraft_id
			  LEFT JOIN instructors i ON i.id = b.instructor_id
			  LEFT JOIN users iu ON iu.id = i.user_id
			  LEFT JOIN users mu ON mu.id = b.user_id
			  WHERE 1=1`

	var args []interface{}
	argIndex := 1
	add := func(cond string, val interface{}) {
		query += fmt.Sprintf(" AND "+cond, argIndex)
		args = append(args, val)
		argIndex++
	}

	if !filters.IncludeCancelled {
		query += ` AND b.cancelled_at IS NULL AND b.status != 'cancelled'`
	}
	if filters.AircraftID != "" {
		add("b.aircraft_id = $%d", filters.AircraftID)
	}
	if filters.InstructorID != "" {
		add("b.instructor_id = $%d", filters.InstructorID)
	}
	if filters.UserID != "" {
		add("b.user_id = $%d", filters.UserID)
	}
	if filters.Status != "" {
		add("b.status = $%d", filters.Status)
	}
	if filters.From != nil {
		add("b.end_time > $%d", *filters.From)
	}
	if filters.To != nil {
		add("b.start_time < $%d", *filters.To)
	}
	query += " ORDER BY b.start_time DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b := &models.Booking{}
		err := rows.Scan(
			&b.ID, &b.AircraftID, &b.InstructorID, &b.UserID, &b.StartTime, &b.EndTime,
			&b.Status, &b.FlightType, &b.Remarks, &b.HobbsStart, &b.HobbsEnd, &b.TachStart, &b.TachEnd,
			&b.FlightTime, &b.CancelledAt, &b.CreatedAt, &b.UpdatedAt,
			&b.AircraftRegistration, &b.InstructorName, &b.MemberName,
		)
		if err != nil {
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// GetBookingByID fetches one booking.
func GetBookingByID(db *sql.DB, id string) (*models.Booking, error) {
	b := &models.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1`
	if err := scanBooking(db.QueryRow(query, id), b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBookingsOverlapping returns the non-cancelled bookings overlapping
// [start, end), the candidate set for the advisory conflict check.
func GetBookingsOverlapping(db *sql.DB, start, end time.Time) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
			  FROM bookings b
			  WHERE b.cancelled_at IS NULL AND b.status != 'cancelled'
			  AND b.start_time < $2 AND b.end_time > $1`

	rows, err := db.Query(query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := scanBooking(rows, &b); err != nil {
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

const insertBookingQuery = `INSERT INTO bookings
	(aircraft_id, instructor_id, user_id, start_time, end_time, status, flight_type, remarks)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id, created_at, updated_at`

// CreateBooking inserts a booking. An exclusion-constraint rejection maps to
// ErrBookingConflict; it is not retried here, the caller decides.
func CreateBooking(db *sql.DB, b *models.Booking) error {
	err := db.QueryRow(insertBookingQuery,
		b.AircraftID, b.InstructorID, b.UserID, b.StartTime, b.EndTime,
		b.Status, b.FlightType, b.Remarks,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrBookingConflict
		}
		return fmt.Errorf("failed to insert booking: %v", err)
	}
	return nil
}

// CreateBookingsBatch inserts a set of bookings in one transaction. If any
// insert trips an exclusion constraint the whole batch rolls back: all or
// nothing, never a partial batch.
func CreateBookingsBatch(db *sql.DB, bookings []*models.Booking) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, b := range bookings {
		err := tx.QueryRow(insertBookingQuery,
			b.AircraftID, b.InstructorID, b.UserID, b.StartTime, b.EndTime,
			b.Status, b.FlightType, b.Remarks,
		).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			if isExclusionViolation(err) {
				return ErrBookingConflict
			}
			return fmt.Errorf("failed to insert booking: %v", err)
		}
	}

	return tx.Commit()
}

// UpdateBookingWindow moves a booking to a new window/resources; the
// exclusion constraints re-check the new range.
func UpdateBookingWindow(db *sql.DB, b *models.Booking) error {
	query := `UPDATE bookings
			  SET aircraft_id = $1, instructor_id = $2, user_id = $3, start_time = $4, end_time = $5,
			      flight_type = $6, remarks = $7, updated_at = NOW()
			  WHERE id = $8
			  RETURNING updated_at`
	err := db.QueryRow(query,
		b.AircraftID, b.InstructorID, b.UserID, b.StartTime, b.EndTime,
		b.FlightType, b.Remarks, b.ID,
	).Scan(&b.UpdatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrBookingConflict
		}
		return fmt.Errorf("failed to update booking: %v", err)
	}
	return nil
}

// UpdateBookingStatus records a lifecycle transition. Legality is checked by
// the caller via scheduling.CanTransition before calling this.
func UpdateBookingStatus(db *sql.DB, id string, status models.BookingStatus) error {
	_, err := db.Exec(`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	return err
}

// CancelBooking marks a booking cancelled. Cancelled rows leave the
// exclusion constraints' guarded set, freeing the window.
func CancelBooking(db *sql.DB, id string) error {
	_, err := db.Exec(`UPDATE bookings
		SET status = 'cancelled', cancelled_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND cancelled_at IS NULL`, id)
	return err
}

// CheckOutBooking stores the meter readings captured at check-out.
func CheckOutBooking(db *sql.DB, id string, hobbsStart, tachStart float64) error {
	_, err := db.Exec(`UPDATE bookings
		SET status = 'checkout', hobbs_start = $1, tach_start = $2, updated_at = NOW()
		WHERE id = $3`, hobbsStart, tachStart, id)
	return err
}

// CheckInBooking stores the closing meter readings and the computed flight
// time, moves the booking to checkin and rolls the aircraft meters forward,
// all in one transaction.
func CheckInBooking(db *sql.DB, b *models.Booking, hobbsEnd, tachEnd, flightTime float64) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`UPDATE bookings
		SET status = 'checkin', hobbs_end = $1, tach_end = $2, flight_time = $3, updated_at = NOW()
		WHERE id = $4`, hobbsEnd, tachEnd, flightTime, b.ID)
	if err != nil {
		return fmt.Errorf("failed to record check-in: %v", err)
	}

	_, err = tx.Exec(`UPDATE aircraft
		SET current_hobbs = $1, current_tach = $2, updated_at = NOW()
		WHERE id = $3`, hobbsEnd, tachEnd, b.AircraftID)
	if err != nil {
		return fmt.Errorf("failed to update aircraft meters: %v", err)
	}

	return tx.Commit()
}

// CancelStaleUnconfirmedBookings cancels unconfirmed bookings whose start
// time has passed. Run by the nightly scheduler.
func CancelStaleUnconfirmedBookings(db *sql.DB, olderThan time.Time) (int64, error) {
	res, err := db.Exec(`UPDATE bookings
		SET status = 'cancelled', cancelled_at = NOW(), updated_at = NOW()
		WHERE status = 'unconfirmed' AND cancelled_at IS NULL AND start_time < $1`, olderThan)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
