package models

import "time"

// Invoice is the billing aggregate for a member. Monetary totals are always
// recomputed from the non-deleted items by app/billing; they are stored
// denormalised for listing screens only.
type Invoice struct {
	ID          string        `json:"id" db:"id"`
	MemberID    string        `json:"member_id" db:"member_id"`
	BookingID   *string       `json:"booking_id,omitempty" db:"booking_id"`
	Number      string        `json:"number" db:"number"`
	Status      InvoiceStatus `json:"status" db:"status"`
	IssuedAt    *time.Time    `json:"issued_at,omitempty" db:"issued_at"`
	DueDate     *time.Time    `json:"due_date,omitempty" db:"due_date"`
	Subtotal    float64       `json:"subtotal" db:"subtotal"`
	TaxTotal    float64       `json:"tax_total" db:"tax_total"`
	TotalAmount float64       `json:"total_amount" db:"total_amount"`
	PaidAt      *time.Time    `json:"paid_at,omitempty" db:"paid_at"`
	Notes       string        `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
	DeletedAt   *time.Time    `json:"deleted_at,omitempty" db:"deleted_at"`

	Items      []InvoiceItem `json:"items,omitempty"`
	MemberName string        `json:"member_name,omitempty"`
}

// InvoiceItem is a single line on an invoice. Quantity, UnitPrice and
// TaxRate are the inputs; the remaining monetary fields are derived by
// billing.CalculateItemAmounts and rounded to 2dp at every step.
type InvoiceItem struct {
	ID          string     `json:"id" db:"id"`
	InvoiceID   string     `json:"invoice_id" db:"invoice_id"`
	Description string     `json:"description" db:"description"`
	Quantity    float64    `json:"quantity" db:"quantity"`
	UnitPrice   float64    `json:"unit_price" db:"unit_price"` // tax-exclusive
	TaxRate     float64    `json:"tax_rate" db:"tax_rate"`     // fraction, 0-1

	Amount        float64 `json:"amount" db:"amount"`
	TaxAmount     float64 `json:"tax_amount" db:"tax_amount"`
	RateInclusive float64 `json:"rate_inclusive" db:"rate_inclusive"`
	LineTotal     float64 `json:"line_total" db:"line_total"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// IsDeleted reports whether the item has been soft-deleted; deleted items
// are kept for audit but excluded from totals.
func (i *InvoiceItem) IsDeleted() bool {
	return i.DeletedAt != nil
}
