package database

import (
	"database/sql"
	"time"
)

// DashboardStats are the headline numbers on the dashboard screen.
type DashboardStats struct {
	BookingsToday   int     `json:"bookings_today"`
	FlyingNow       int     `json:"flying_now"`
	AircraftOnline  int     `json:"aircraft_online"`
	ActiveMembers   int     `json:"active_members"`
	OverdueInvoices int     `json:"overdue_invoices"`
	OverdueAmount   float64 `json:"overdue_amount"`
	EquipmentOut    int     `json:"equipment_out"`
}

// GetDashboardStats collects the aggregate counts for the dashboard.
func GetDashboardStats(db *sql.DB) (*DashboardStats, error) {
	stats := &DashboardStats{}
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	err := db.QueryRow(`SELECT COUNT(*) FROM bookings
		WHERE cancelled_at IS NULL AND status != 'cancelled'
		AND start_time < $2 AND end_time > $1`, dayStart, dayEnd).Scan(&stats.BookingsToday)
	if err != nil {
		return nil, err
	}

	if err := db.QueryRow(`SELECT COUNT(*) FROM bookings WHERE status = 'flying'`).Scan(&stats.FlyingNow); err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM aircraft
		WHERE status = 'online' AND deleted_at IS NULL`).Scan(&stats.AircraftOnline)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM members
		WHERE status = 'active' AND deleted_at IS NULL`).Scan(&stats.ActiveMembers)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(total_amount), 0) FROM invoices
		WHERE status = 'overdue' AND deleted_at IS NULL`).Scan(&stats.OverdueInvoices, &stats.OverdueAmount)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM equipment_issues WHERE returned_at IS NULL`).Scan(&stats.EquipmentOut)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
