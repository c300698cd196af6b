package database

import (
	"database/sql"
	"fmt"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

const memberColumns = `m.id, m.user_id, m.member_number, m.status, m.joined_at, m.licence_number,
	m.medical_expiry, m.bfr_expiry, m.created_at, m.updated_at, m.deleted_at`

// GetMembers lists non-deleted members with their user records.
func GetMembers(db *sql.DB, status string) ([]*models.Member, error) {
	query := `SELECT ` + memberColumns + `, u.id, u.email, u.first_name, u.last_name, u.phone, u.is_active
			  FROM members m
			  JOIN users u ON u.id = m.user_id
			  WHERE m.deleted_at IS NULL`
	var args []interface{}
	if status != "" {
		query += ` AND m.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY m.member_number`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		m := &models.Member{User: &models.User{}}
		err := rows.Scan(
			&m.ID, &m.UserID, &m.MemberNumber, &m.Status, &m.JoinedAt, &m.LicenceNumber,
			&m.MedicalExpiry, &m.BFRExpiry, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
			&m.User.ID, &m.User.Email, &m.User.FirstName, &m.User.LastName, &m.User.Phone, &m.User.IsActive,
		)
		if err != nil {
			continue
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// GetMemberByID fetches one member with its user record.
func GetMemberByID(db *sql.DB, id string) (*models.Member, error) {
	m := &models.Member{User: &models.User{}}
	query := `SELECT ` + memberColumns + `, u.id, u.email, u.first_name, u.last_name, u.phone, u.is_active
			  FROM members m
			  JOIN users u ON u.id = m.user_id
			  WHERE m.id = $1 AND m.deleted_at IS NULL`
	err := db.QueryRow(query, id).Scan(
		&m.ID, &m.UserID, &m.MemberNumber, &m.Status, &m.JoinedAt, &m.LicenceNumber,
		&m.MedicalExpiry, &m.BFRExpiry, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
		&m.User.ID, &m.User.Email, &m.User.FirstName, &m.User.LastName, &m.User.Phone, &m.User.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetMemberByUserID resolves the membership record of a user, used by the
// check-in path to bill the right member.
func GetMemberByUserID(db *sql.DB, userID string) (*models.Member, error) {
	m := &models.Member{}
	query := `SELECT ` + memberColumns + `
			  FROM members m
			  WHERE m.user_id = $1 AND m.deleted_at IS NULL`
	err := db.QueryRow(query, userID).Scan(
		&m.ID, &m.UserID, &m.MemberNumber, &m.Status, &m.JoinedAt, &m.LicenceNumber,
		&m.MedicalExpiry, &m.BFRExpiry, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// CreateMember creates the user (with the member role) and the membership
// record in sequence. Member numbers are generated from a sequence.
func CreateMember(db *sql.DB, m *models.Member, user *models.User) error {
	if err := CreateUser(db, user, models.RoleMember); err != nil {
		return err
	}
	m.UserID = user.ID

	query := `INSERT INTO members (user_id, member_number, status, joined_at, licence_number, medical_expiry, bfr_expiry)
			  VALUES ($1, 'M-' || lpad(nextval('member_number_seq')::text, 5, '0'), $2, COALESCE($3, NOW()), $4, $5, $6)
			  RETURNING id, member_number, joined_at, created_at, updated_at`
	err := db.QueryRow(query,
		m.UserID, m.Status, m.JoinedAt, m.LicenceNumber, m.MedicalExpiry, m.BFRExpiry,
	).Scan(&m.ID, &m.MemberNumber, &m.JoinedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert member: %v", err)
	}
	m.User = user
	return nil
}

// UpdateMember updates membership fields (not the user record).
func UpdateMember(db *sql.DB, m *models.Member) error {
	query := `UPDATE members
			  SET status = $1, licence_number = $2, medical_expiry = $3, bfr_expiry = $4, updated_at = NOW()
			  WHERE id = $5 AND deleted_at IS NULL
			  RETURNING updated_at`
	return db.QueryRow(query, m.Status, m.LicenceNumber, m.MedicalExpiry, m.BFRExpiry, m.ID).Scan(&m.UpdatedAt)
}

// DeleteMember soft-deletes a membership.
func DeleteMember(db *sql.DB, id string) error {
	res, err := db.Exec(`UPDATE members SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
