package models

import "time"

// SchoolSettings holds the deployment-wide school profile.
type SchoolSettings struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	ContactEmail   string    `json:"contact_email,omitempty" db:"contact_email"`
	ContactPhone   string    `json:"contact_phone,omitempty" db:"contact_phone"`
	DefaultTaxRate float64   `json:"default_tax_rate" db:"default_tax_rate"`
	InvoiceDueDays int       `json:"invoice_due_days" db:"invoice_due_days"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
