package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/pedrosv/gole/internal/tracker"
)

// ToCSV writes the day's drink log to path, one row per drink.
func ToCSV(cfg tracker.Config, p tracker.Progress, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Day", "Time", "Amount (ml)", "Running Total (ml)", "Goal (ml)"}); err != nil {
		return err
	}

	running := 0
	for _, d := range p.Drinks {
		running += d.AmountMl
		row := []string{
			d.ID,
			p.LastDrinkDate,
			d.Timestamp.Local().Format(time.RFC3339),
			fmt.Sprintf("%d", d.AmountMl),
			fmt.Sprintf("%d", running),
			fmt.Sprintf("%d", cfg.DailyGoalMl),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
