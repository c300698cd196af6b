package models

import "time"

// Member represents a flying member of the school. The person record lives
// in users; Member carries the membership-specific fields.
type Member struct {
	ID            string           `json:"id" db:"id"`
	UserID        string           `json:"user_id" db:"user_id"`
	MemberNumber  string           `json:"member_number" db:"member_number"`
	Status        MembershipStatus `json:"status" db:"status"`
	JoinedAt      time.Time        `json:"joined_at" db:"joined_at"`
	LicenceNumber string           `json:"licence_number,omitempty" db:"licence_number"`
	MedicalExpiry *time.Time       `json:"medical_expiry,omitempty" db:"medical_expiry"`
	BFRExpiry     *time.Time       `json:"bfr_expiry,omitempty" db:"bfr_expiry"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" db:"updated_at"`
	DeletedAt     *time.Time       `json:"deleted_at,omitempty" db:"deleted_at"`

	User *User `json:"user,omitempty"`
}

// CanFly returns true if the membership is in good standing.
func (m *Member) CanFly() bool {
	return m.Status == MembershipActive && m.DeletedAt == nil
}
