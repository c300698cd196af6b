package database

import (
	"database/sql"
	"fmt"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

const trainingColumns = `t.id, t.booking_id, t.member_id, t.instructor_id, t.lesson, t.comments,
	t.outcome, t.dual_time, t.solo_time, t.created_at, t.updated_at`

func scanTrainingRecord(scanner interface{ Scan(...interface{}) error }, t *models.TrainingRecord) error {
	return scanner.Scan(
		&t.ID, &t.BookingID, &t.MemberID, &t.InstructorID, &t.Lesson, &t.Comments,
		&t.Outcome, &t.DualTime, &t.SoloTime, &t.CreatedAt, &t.UpdatedAt,
	)
}

// GetTrainingRecords lists records, optionally filtered by member or
// instructor.
func GetTrainingRecords(db *sql.DB, memberID, instructorID string) ([]*models.TrainingRecord, error) {
	query := `SELECT ` + trainingColumns + ` FROM training_records t WHERE t.deleted_at IS NULL`
	var args []interface{}
	argIndex := 1
	if memberID != "" {
		query += fmt.Sprintf(" AND t.member_id = $%d", argIndex)
		args = append(args, memberID)
		argIndex++
	}
	if instructorID != "" {
		query += fmt.Sprintf(" AND t.instructor_id = $%d", argIndex)
		args = append(args, instructorID)
		argIndex++
	}
	query += " ORDER BY t.created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.TrainingRecord
	for rows.Next() {
		t := &models.TrainingRecord{}
		if err := scanTrainingRecord(rows, t); err != nil {
			continue
		}
		records = append(records, t)
	}
	return records, rows.Err()
}

// GetTrainingRecordByID fetches one record.
func GetTrainingRecordByID(db *sql.DB, id string) (*models.TrainingRecord, error) {
	t := &models.TrainingRecord{}
	query := `SELECT ` + trainingColumns + ` FROM training_records t WHERE t.id = $1 AND t.deleted_at IS NULL`
	if err := scanTrainingRecord(db.QueryRow(query, id), t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetTrainingRecordByBooking fetches the record created for a booking.
func GetTrainingRecordByBooking(db *sql.DB, bookingID string) (*models.TrainingRecord, error) {
	t := &models.TrainingRecord{}
	query := `SELECT ` + trainingColumns + ` FROM training_records t WHERE t.booking_id = $1 AND t.deleted_at IS NULL`
	if err := scanTrainingRecord(db.QueryRow(query, bookingID), t); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateTrainingRecord inserts a record. The check-in path creates a shell
// with the flight time; the instructor fills in lesson and outcome later.
func CreateTrainingRecord(db *sql.DB, t *models.TrainingRecord) error {
	query := `INSERT INTO training_records (booking_id, member_id, instructor_id, lesson, comments, outcome, dual_time, solo_time)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, created_at, updated_at`
	err := db.QueryRow(query,
		t.BookingID, t.MemberID, t.InstructorID, t.Lesson, t.Comments, t.Outcome, t.DualTime, t.SoloTime,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert training record: %v", err)
	}
	return nil
}

// UpdateTrainingRecord updates the instructional fields.
func UpdateTrainingRecord(db *sql.DB, t *models.TrainingRecord) error {
	query := `UPDATE training_records
			  SET lesson = $1, comments = $2, outcome = $3, dual_time = $4, solo_time = $5, updated_at = NOW()
			  WHERE id = $6 AND deleted_at IS NULL
			  RETURNING updated_at`
	return db.QueryRow(query, t.Lesson, t.Comments, t.Outcome, t.DualTime, t.SoloTime, t.ID).Scan(&t.UpdatedAt)
}

// DeleteTrainingRecord soft-deletes a record.
func DeleteTrainingRecord(db *sql.DB, id string) error {
	res, err := db.Exec(`UPDATE training_records SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
