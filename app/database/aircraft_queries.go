package database

import (
	"database/sql"
	"fmt"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

const aircraftColumns = `a.id, a.registration, a.make, a.model, a.type, a.status, a.seats,
	a.hourly_rate, a.current_hobbs, a.current_tach, a.notes, a.created_at, a.updated_at, a.deleted_at`

func scanAircraft(scanner interface{ Scan(...interface{}) error }, a *models.Aircraft) error {
	return scanner.Scan(
		&a.ID, &a.Registration, &a.Make, &a.Model, &a.Type, &a.Status, &a.Seats,
		&a.HourlyRate, &a.CurrentHobbs, &a.CurrentTach, &a.Notes, &a.CreatedAt, &a.UpdatedAt, &a.DeletedAt,
	)
}

// GetAircraft lists non-deleted aircraft, optionally by status.
func GetAircraft(db *sql.DB, status string) ([]*models.Aircraft, error) {
	query := `SELECT ` + aircraftColumns + ` FROM aircraft a WHERE a.deleted_at IS NULL`
	var args []interface{}
	if status != "" {
		query += ` AND a.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY a.registration`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fleet []*models.Aircraft
	for rows.Next() {
		a := &models.Aircraft{}
		if err := scanAircraft(rows, a); err != nil {
			continue
		}
		fleet = append(fleet, a)
	}
	return fleet, rows.Err()
}

// GetAircraftByID fetches one aircraft.
func GetAircraftByID(db *sql.DB, id string) (*models.Aircraft, error) {
	a := &models.Aircraft{}
	query := `SELECT ` + aircraftColumns + ` FROM aircraft a WHERE a.id = $1 AND a.deleted_at IS NULL`
	if err := scanAircraft(db.QueryRow(query, id), a); err != nil {
		return nil, err
	}
	return a, nil
}

// CreateAircraft inserts an aircraft.
func CreateAircraft(db *sql.DB, a *models.Aircraft) error {
	query := `INSERT INTO aircraft (registration, make, model, type, status, seats, hourly_rate, current_hobbs, current_tach, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id, created_at, updated_at`
	err := db.QueryRow(query,
		a.Registration, a.Make, a.Model, a.Type, a.Status, a.Seats,
		a.HourlyRate, a.CurrentHobbs, a.CurrentTach, a.Notes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert aircraft: %v", err)
	}
	return nil
}

// UpdateAircraft updates the editable fields of an aircraft.
func UpdateAircraft(db *sql.DB, a *models.Aircraft) error {
	query := `UPDATE aircraft
			  SET registration = $1, make = $2, model = $3, type = $4, status = $5, seats = $6,
			      hourly_rate = $7, notes = $8, updated_at = NOW()
			  WHERE id = $9 AND deleted_at IS NULL
			  RETURNING updated_at`
	err := db.QueryRow(query,
		a.Registration, a.Make, a.Model, a.Type, a.Status, a.Seats,
		a.HourlyRate, a.Notes, a.ID,
	).Scan(&a.UpdatedAt)
	if err != nil {
		return err
	}
	return nil
}

// DeleteAircraft soft-deletes an aircraft.
func DeleteAircraft(db *sql.DB, id string) error {
	res, err := db.Exec(`UPDATE aircraft SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
