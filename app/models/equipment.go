package models

import "time"

// Equipment is a loanable item (headset, nav gear, life jacket).
type Equipment struct {
	ID           string          `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	SerialNumber string          `json:"serial_number,omitempty" db:"serial_number"`
	Status       EquipmentStatus `json:"status" db:"status"`
	Notes        string          `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time      `json:"deleted_at,omitempty" db:"deleted_at"`
}

// EquipmentIssue records a piece of equipment being issued to a member.
// ReturnedAt nil means the item is still out.
type EquipmentIssue struct {
	ID          string     `json:"id" db:"id"`
	EquipmentID string     `json:"equipment_id" db:"equipment_id"`
	MemberID    string     `json:"member_id" db:"member_id"`
	IssuedAt    time.Time  `json:"issued_at" db:"issued_at"`
	DueBack     *time.Time `json:"due_back,omitempty" db:"due_back"`
	ReturnedAt  *time.Time `json:"returned_at,omitempty" db:"returned_at"`

	EquipmentName string `json:"equipment_name,omitempty"`
	MemberName    string `json:"member_name,omitempty"`
}
