package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

const rosterColumns = `r.id, r.instructor_id, r.day_of_week, r.start_time, r.end_time,
	r.effective_from, r.effective_until, r.is_active, r.voided_at, r.created_at, r.updated_at`

func scanRosterRule(scanner interface{ Scan(...interface{}) error }, r *models.RosterRule) error {
	return scanner.Scan(
		&r.ID, &r.InstructorID, &r.DayOfWeek, &r.StartTime, &r.EndTime,
		&r.EffectiveFrom, &r.EffectiveUntil, &r.IsActive, &r.VoidedAt, &r.CreatedAt, &r.UpdatedAt,
	)
}

// GetRosterRules lists roster rules, optionally for one instructor.
// Voided rules are included so staff tooling can show history; availability
// computations filter them out in app/scheduling.
func GetRosterRules(db *sql.DB, instructorID string) ([]models.RosterRule, error) {
	query := `SELECT ` + rosterColumns + ` FROM roster_rules r`
	var args []interface{}
	if instructorID != "" {
		query += ` WHERE r.instructor_id = $1`
		args = append(args, instructorID)
	}
	query += ` ORDER BY r.day_of_week, r.start_time`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.RosterRule
	for rows.Next() {
		var r models.RosterRule
		if err := scanRosterRule(rows, &r); err != nil {
			continue
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// GetRosterRulesForDate returns the live rules applying to date's weekday,
// pre-filtered the way the availability resolver expects its input.
func GetRosterRulesForDate(db *sql.DB, date time.Time) ([]models.RosterRule, error) {
	query := `SELECT ` + rosterColumns + `
			  FROM roster_rules r
			  WHERE r.is_active = true AND r.voided_at IS NULL
			  AND r.day_of_week = $1
			  AND r.effective_from <= $2
			  AND (r.effective_until IS NULL OR r.effective_until >= $2)
			  ORDER BY r.start_time`

	rows, err := db.Query(query, int(date.Weekday()), date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.RosterRule
	for rows.Next() {
		var r models.RosterRule
		if err := scanRosterRule(rows, &r); err != nil {
			continue
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// GetRosterRuleByID fetches one rule.
func GetRosterRuleByID(db *sql.DB, id string) (*models.RosterRule, error) {
	r := &models.RosterRule{}
	query := `SELECT ` + rosterColumns + ` FROM roster_rules r WHERE r.id = $1`
	if err := scanRosterRule(db.QueryRow(query, id), r); err != nil {
		return nil, err
	}
	return r, nil
}

// CreateRosterRule inserts a rule. The end-after-start invariant is also
// CHECKed by the schema.
func CreateRosterRule(db *sql.DB, r *models.RosterRule) error {
	query := `INSERT INTO roster_rules
			  (instructor_id, day_of_week, start_time, end_time, effective_from, effective_until, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, created_at, updated_at`
	err := db.QueryRow(query,
		r.InstructorID, r.DayOfWeek, r.StartTime, r.EndTime,
		r.EffectiveFrom, r.EffectiveUntil, r.IsActive,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert roster rule: %v", err)
	}
	return nil
}

// UpdateRosterRule applies a partial update built by the handler.
func UpdateRosterRule(db *sql.DB, id string, sets []string, args []interface{}) error {
	if len(sets) == 0 {
		return nil
	}
	query := "UPDATE roster_rules SET " + sets[0]
	for i := 1; i < len(sets); i++ {
		query += ", " + sets[i]
	}
	query += fmt.Sprintf(", updated_at = NOW() WHERE id = $%d AND voided_at IS NULL", len(args)+1)
	args = append(args, id)

	res, err := db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update roster rule: %v", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// VoidRosterRule soft-deletes a rule. Voided rules never come back and are
// excluded from every availability computation.
func VoidRosterRule(db *sql.DB, id string) error {
	res, err := db.Exec(`UPDATE roster_rules
		SET voided_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND voided_at IS NULL`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
