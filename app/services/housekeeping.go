package services

import (
	"database/sql"
	"time"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/database"
)

// FlagOverdueInvoices marks issued invoices past their due date as overdue.
func FlagOverdueInvoices(db *sql.DB) (int64, error) {
	return database.FlagOverdueInvoices(db)
}

// CancelStaleBookings cancels unconfirmed bookings whose start time has
// already passed, releasing their aircraft and instructor windows.
func CancelStaleBookings(db *sql.DB) (int64, error) {
	return database.CancelStaleUnconfirmedBookings(db, time.Now())
}
