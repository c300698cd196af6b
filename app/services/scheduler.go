package services

import (
	"database/sql"
	"log"
	"time"
)

// StartScheduler starts the background task scheduler.
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Nightly housekeeping at 00:05
			if now.Hour() == 0 && now.Minute() == 5 {
				log.Println("Running nightly housekeeping [00:05]...")
				RunNightlyTasks(db)
			}
		}
	}()
}

// RunNightlyTasks flags overdue invoices and clears out stale unconfirmed
// bookings whose start time has passed.
func RunNightlyTasks(db *sql.DB) {
	if n, err := FlagOverdueInvoices(db); err != nil {
		log.Printf("Error flagging overdue invoices: %v", err)
	} else if n > 0 {
		log.Printf("Flagged %d invoice(s) as overdue", n)
	}

	if n, err := CancelStaleBookings(db); err != nil {
		log.Printf("Error cancelling stale bookings: %v", err)
	} else if n > 0 {
		log.Printf("Cancelled %d stale unconfirmed booking(s)", n)
	}
}
