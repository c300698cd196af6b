package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates. The full
// schema lives in schema.sql (applied by cmd/migrate); these guards keep a
// running deployment consistent after upgrades.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	if err := ensureBtreeGist(db); err != nil {
		return err
	}
	if err := ensureBookingExclusionConstraints(db); err != nil {
		return err
	}
	if err := ensureFlightTimeColumn(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func ensureBtreeGist(db *sql.DB) error {
	_, err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	if err != nil {
		log.Printf("Failed to ensure btree_gist extension: %v", err)
		return err
	}
	return nil
}

// ensureBookingExclusionConstraints installs the authoritative double-booking
// guards. The advisory in-memory check can race between read and write;
// these constraints cannot.
func ensureBookingExclusionConstraints(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'bookings_aircraft_no_overlap'
			) THEN
				ALTER TABLE bookings ADD CONSTRAINT bookings_aircraft_no_overlap
					EXCLUDE USING gist (
						aircraft_id WITH =,
						tstzrange(start_time, end_time) WITH &&
					) WHERE (cancelled_at IS NULL AND status != 'cancelled');
			END IF;

			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'bookings_instructor_no_overlap'
			) THEN
				ALTER TABLE bookings ADD CONSTRAINT bookings_instructor_no_overlap
					EXCLUDE USING gist (
						instructor_id WITH =,
						tstzrange(start_time, end_time) WITH &&
					) WHERE (instructor_id IS NOT NULL AND cancelled_at IS NULL AND status != 'cancelled');
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to ensure booking exclusion constraints: %v", err)
		return err
	}
	return nil
}

func ensureFlightTimeColumn(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'bookings'
				AND column_name = 'flight_time'
			) THEN
				ALTER TABLE bookings ADD COLUMN flight_time NUMERIC(6,1);
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for flight_time column: %v", err)
		return err
	}
	return nil
}
