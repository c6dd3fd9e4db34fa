package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pedrosv/gole/internal/tracker"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Day        string      `json:"day"`
	GoalMl     int         `json:"goal_ml"`
	ConsumedMl int         `json:"consumed_ml"`
	Percent    int         `json:"percent"`
	Streak     int         `json:"streak"`
	Count      int         `json:"count"`
	Drinks     []jsonDrink `json:"drinks"`
}

type jsonDrink struct {
	ID       string `json:"id"`
	AmountMl int    `json:"amount_ml"`
	Time     string `json:"time"`
}

// ToJSON writes the day's drink log and goal summary to path.
func ToJSON(cfg tracker.Config, p tracker.Progress, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Day:        p.LastDrinkDate,
		GoalMl:     cfg.DailyGoalMl,
		ConsumedMl: p.ConsumedMl,
		Percent:    p.Percent(cfg.DailyGoalMl),
		Streak:     p.Streak,
		Count:      len(p.Drinks),
	}

	for _, d := range p.Drinks {
		export.Drinks = append(export.Drinks, jsonDrink{
			ID:       d.ID,
			AmountMl: d.AmountMl,
			Time:     d.Timestamp.Local().Format(time.RFC3339),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
