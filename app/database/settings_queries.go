package database

import (
	"database/sql"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

// GetSchoolSettings returns the single settings row, creating defaults on
// first use.
func GetSchoolSettings(db *sql.DB) (*models.SchoolSettings, error) {
	s := &models.SchoolSettings{}
	query := `SELECT id, name, contact_email, contact_phone, default_tax_rate, invoice_due_days, created_at, updated_at
			  FROM school_settings LIMIT 1`
	err := db.QueryRow(query).Scan(
		&s.ID, &s.Name, &s.ContactEmail, &s.ContactPhone, &s.DefaultTaxRate, &s.InvoiceDueDays,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		insert := `INSERT INTO school_settings (name, default_tax_rate, invoice_due_days)
				   VALUES ('Flight School', 0.15, 14)
				   RETURNING id, name, contact_email, contact_phone, default_tax_rate, invoice_due_days, created_at, updated_at`
		err = db.QueryRow(insert).Scan(
			&s.ID, &s.Name, &s.ContactEmail, &s.ContactPhone, &s.DefaultTaxRate, &s.InvoiceDueDays,
			&s.CreatedAt, &s.UpdatedAt,
		)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateSchoolSettings updates the settings row.
func UpdateSchoolSettings(db *sql.DB, s *models.SchoolSettings) error {
	query := `UPDATE school_settings
			  SET name = $1, contact_email = $2, contact_phone = $3, default_tax_rate = $4, invoice_due_days = $5, updated_at = NOW()
			  WHERE id = $6
			  RETURNING updated_at`
	return db.QueryRow(query, s.Name, s.ContactEmail, s.ContactPhone, s.DefaultTaxRate, s.InvoiceDueDays, s.ID).Scan(&s.UpdatedAt)
}
