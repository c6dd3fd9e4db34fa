package store

import (
	"fmt"
	"time"

	"github.com/pedrosv/gole/internal/tracker"
)

// DayTotal is the archived intake for one calendar day.
type DayTotal struct {
	Day        string
	TotalMl    int
	DrinkCount int
}

// archiveDay replaces the archived rows for the ledger's day with the
// ledger's current drinks. Undo and reset shrink the day's archive the same
// way they shrink the ledger; prior days are never touched.
func (s *Store) archiveDay(p tracker.Progress) error {
	if p.LastDrinkDate == "" {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("archive day: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM intake_log WHERE day = ?`, p.LastDrinkDate); err != nil {
		return fmt.Errorf("clear day %s: %w", p.LastDrinkDate, err)
	}
	for _, d := range p.Drinks {
		_, err := tx.Exec(
			`INSERT INTO intake_log (drink_id, day, amount_ml, recorded_at) VALUES (?, ?, ?, ?)`,
			d.ID, p.LastDrinkDate, d.AmountMl, d.Timestamp.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("archive drink %s: %w", d.ID, err)
		}
	}
	return tx.Commit()
}

// DailyTotals aggregates archived intake per day over [from, to).
// Day keys are compared lexically, which for YYYY-MM-DD is date order.
func (s *Store) DailyTotals(from, to string) ([]DayTotal, error) {
	rows, err := s.db.Query(`
		SELECT day, COALESCE(SUM(amount_ml), 0), COUNT(*)
		FROM intake_log
		WHERE day >= ? AND day < ?
		GROUP BY day
		ORDER BY day`, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()

	var totals []DayTotal
	for rows.Next() {
		var dt DayTotal
		if err := rows.Scan(&dt.Day, &dt.TotalMl, &dt.DrinkCount); err != nil {
			return nil, err
		}
		totals = append(totals, dt)
	}
	return totals, rows.Err()
}
