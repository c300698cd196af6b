package database

import (
	"database/sql"
	"fmt"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

// GetInstructors lists non-deleted instructors with their user records.
func GetInstructors(db *sql.DB, activeOnly bool) ([]*models.Instructor, error) {
	query := `SELECT i.id, i.user_id, i.rating, i.licence_number, i.is_active, i.created_at, i.updated_at,
			  u.id, u.email, u.first_name, u.last_name, u.phone, u.is_active
			  FROM instructors i
			  JOIN users u ON u.id = i.user_id
			  WHERE i.deleted_at IS NULL`
	if activeOnly {
		query += ` AND i.is_active = true`
	}
	query += ` ORDER BY u.last_name, u.first_name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instructors []*models.Instructor
	for rows.Next() {
		ins := &models.Instructor{User: &models.User{}}
		err := rows.Scan(
			&ins.ID, &ins.UserID, &ins.Rating, &ins.LicenceNumber, &ins.IsActive, &ins.CreatedAt, &ins.UpdatedAt,
			&ins.User.ID, &ins.User.Email, &ins.User.FirstName, &ins.User.LastName, &ins.User.Phone, &ins.User.IsActive,
		)
		if err != nil {
			continue
		}
		instructors = append(instructors, ins)
	}
	return instructors, rows.Err()
}

// GetInstructorByID fetches one instructor with its user record.
func GetInstructorByID(db *sql.DB, id string) (*models.Instructor, error) {
	ins := &models.Instructor{User: &models.User{}}
	query := `SELECT i.id, i.user_id, i.rating, i.licence_number, i.is_active, i.created_at, i.updated_at,
			  u.id, u.email, u.first_name, u.last_name, u.phone, u.is_active
			  FROM instructors i
			  JOIN users u ON u.id = i.user_id
			  WHERE i.id = $1 AND i.deleted_at IS NULL`
	err := db.QueryRow(query, id).Scan(
		&ins.ID, &ins.UserID, &ins.Rating, &ins.LicenceNumber, &ins.IsActive, &ins.CreatedAt, &ins.UpdatedAt,
		&ins.User.ID, &ins.User.Email, &ins.User.FirstName, &ins.User.LastName, &ins.User.Phone, &ins.User.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return ins, nil
}

// CreateInstructor creates the user (with the instructor role) and the
// instructor record.
func CreateInstructor(db *sql.DB, ins *models.Instructor, user *models.User) error {
	if err := CreateUser(db, user, models.RoleInstructor); err != nil {
		return err
	}
	ins.UserID = user.ID

	query := `INSERT INTO instructors (user_id, rating, licence_number, is_active)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at, updated_at`
	err := db.QueryRow(query, ins.UserID, ins.Rating, ins.LicenceNumber, ins.IsActive).
		Scan(&ins.ID, &ins.CreatedAt, &ins.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert instructor: %v", err)
	}
	ins.User = user
	return nil
}

// UpdateInstructor updates instructor fields.
func UpdateInstructor(db *sql.DB, ins *models.Instructor) error {
	query := `UPDATE instructors
			  SET rating = $1, licence_number = $2, is_active = $3, updated_at = NOW()
			  WHERE id = $4 AND deleted_at IS NULL
			  RETURNING updated_at`
	return db.QueryRow(query, ins.Rating, ins.LicenceNumber, ins.IsActive, ins.ID).Scan(&ins.UpdatedAt)
}

// DeleteInstructor soft-deletes an instructor.
func DeleteInstructor(db *sql.DB, id string) error {
	res, err := db.Exec(`UPDATE instructors SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
