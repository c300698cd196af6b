package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

// ErrEquipmentUnavailable is returned when issuing equipment that is not in
// the available state.
var ErrEquipmentUnavailable = errors.New("equipment is not available for issue")

// GetEquipment lists non-deleted equipment, optionally by status.
func GetEquipment(db *sql.DB, status string) ([]*models.Equipment, error) {
	query := `SELECT e.id, e.name, e.serial_number, e.status, e.notes, e.created_at, e.updated_at
			  FROM equipment e WHERE e.deleted_at IS NULL`
	var args []interface{}
	if status != "" {
		query += ` AND e.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY e.name`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Equipment
	for rows.Next() {
		e := &models.Equipment{}
		if err := rows.Scan(&e.ID, &e.Name, &e.SerialNumber, &e.Status, &e.Notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
			continue
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// GetEquipmentByID fetches one piece of equipment.
func GetEquipmentByID(db *sql.DB, id string) (*models.Equipment, error) {
	e := &models.Equipment{}
	query := `SELECT e.id, e.name, e.serial_number, e.status, e.notes, e.created_at, e.updated_at
			  FROM equipment e WHERE e.id = $1 AND e.deleted_at IS NULL`
	err := db.QueryRow(query, id).Scan(&e.ID, &e.Name, &e.SerialNumber, &e.Status, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CreateEquipment inserts a piece of equipment.
func CreateEquipment(db *sql.DB, e *models.Equipment) error {
	query := `INSERT INTO equipment (name, serial_number, status, notes)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at, updated_at`
	err := db.QueryRow(query, e.Name, e.SerialNumber, e.Status, e.Notes).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert equipment: %v", err)
	}
	return nil
}

// UpdateEquipment updates equipment fields.
func UpdateEquipment(db *sql.DB, e *models.Equipment) error {
	query := `UPDATE equipment
			  SET name = $1, serial_number = $2, status = $3, notes = $4, updated_at = NOW()
			  WHERE id = $5 AND deleted_at IS NULL
			  RETURNING updated_at`
	return db.QueryRow(query, e.Name, e.SerialNumber, e.Status, e.Notes, e.ID).Scan(&e.UpdatedAt)
}

// DeleteEquipment soft-deletes equipment.
func DeleteEquipment(db *sql.DB, id string) error {
	res, err := db.Exec(`UPDATE equipment SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// IssueEquipment records an issue to a member and flips the equipment
// status, in one transaction. Only available equipment can be issued.
func IssueEquipment(db *sql.DB, issue *models.EquipmentIssue) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE equipment SET status = 'issued', updated_at = NOW()
		WHERE id = $1 AND status = 'available' AND deleted_at IS NULL`, issue.EquipmentID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEquipmentUnavailable
	}

	query := `INSERT INTO equipment_issues (equipment_id, member_id, due_back)
			  VALUES ($1, $2, $3)
			  RETURNING id, issued_at`
	err = tx.QueryRow(query, issue.EquipmentID, issue.MemberID, issue.DueBack).
		Scan(&issue.ID, &issue.IssuedAt)
	if err != nil {
		return fmt.Errorf("failed to record equipment issue: %v", err)
	}

	return tx.Commit()
}

// ReturnEquipment closes the open issue and makes the equipment available
// again, in one transaction.
func ReturnEquipment(db *sql.DB, issueID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var equipmentID string
	err = tx.QueryRow(`UPDATE equipment_issues SET returned_at = NOW()
		WHERE id = $1 AND returned_at IS NULL
		RETURNING equipment_id`, issueID).Scan(&equipmentID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`UPDATE equipment SET status = 'available', updated_at = NOW()
		WHERE id = $1`, equipmentID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetOpenEquipmentIssues lists equipment currently out.
func GetOpenEquipmentIssues(db *sql.DB) ([]*models.EquipmentIssue, error) {
	query := `SELECT ei.id, ei.equipment_id, ei.member_id, ei.issued_at, ei.due_back, ei.returned_at,
			  e.name, COALESCE(u.first_name || ' ' || u.last_name, '')
			  FROM equipment_issues ei
			  JOIN equipment e ON e.id = ei.equipment_id
			  JOIN members m ON m.id = ei.member_id
			  JOIN users u ON u.id = m.user_id
			  WHERE ei.returned_at IS NULL
			  ORDER BY ei.issued_at DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []*models.EquipmentIssue
	for rows.Next() {
		issue := &models.EquipmentIssue{}
		err := rows.Scan(
			&issue.ID, &issue.EquipmentID, &issue.MemberID, &issue.IssuedAt, &issue.DueBack, &issue.ReturnedAt,
			&issue.EquipmentName, &issue.MemberName,
		)
		if err != nil {
			continue
		}
		issues = append(issues, issue)
	}
	return issues, rows.Err()
}
