package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pedrosv/gole/internal/tracker"
)

func fixtures() (tracker.Config, tracker.Progress) {
	cfg := tracker.DefaultConfig()
	ts := time.Date(2026, 8, 29, 9, 0, 0, 0, time.Local)
	p := tracker.Progress{
		ConsumedMl: 420,
		Drinks: []tracker.Drink{
			{ID: "a", AmountMl: 170, Timestamp: ts},
			{ID: "b", AmountMl: 250, Timestamp: ts.Add(time.Hour)},
		},
		Streak:        3,
		LastDrinkDate: "2026-08-29",
	}
	return cfg, p
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	cfg, p := fixtures()
	path := filepath.Join(t.TempDir(), "day.csv")

	if err := ToCSV(cfg, p, path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 drinks", len(rows))
	}
	if rows[0][0] != "ID" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][3] != "170" || rows[2][3] != "250" {
		t.Fatalf("amounts wrong: %v / %v", rows[1], rows[2])
	}
	// Running total accumulates.
	if rows[1][4] != "170" || rows[2][4] != "420" {
		t.Fatalf("running totals wrong: %v / %v", rows[1], rows[2])
	}
	if rows[2][5] != "2450" {
		t.Fatalf("goal column = %q", rows[2][5])
	}
}

func TestToCSVEmptyDay(t *testing.T) {
	cfg, _ := fixtures()
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(cfg, tracker.Progress{}, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("empty day should write only the header, got %d lines", len(lines))
	}
}

func TestToCSVBadPath(t *testing.T) {
	cfg, p := fixtures()
	if err := ToCSV(cfg, p, "/nonexistent-dir/out.csv"); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	cfg, p := fixtures()
	path := filepath.Join(t.TempDir(), "day.json")

	if err := ToJSON(cfg, p, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got jsonExport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}

	if got.Day != "2026-08-29" {
		t.Fatalf("day = %q", got.Day)
	}
	if got.GoalMl != 2450 || got.ConsumedMl != 420 {
		t.Fatalf("summary wrong: %+v", got)
	}
	if got.Percent != 17 {
		t.Fatalf("percent = %d, want 17", got.Percent)
	}
	if got.Streak != 3 || got.Count != 2 || len(got.Drinks) != 2 {
		t.Fatalf("log wrong: %+v", got)
	}
	if got.Drinks[0].ID != "a" || got.Drinks[1].AmountMl != 250 {
		t.Fatalf("drinks wrong: %+v", got.Drinks)
	}
	if got.ExportedAt == "" {
		t.Fatal("exported_at missing")
	}
}

func TestToJSONBadPath(t *testing.T) {
	cfg, p := fixtures()
	if err := ToJSON(cfg, p, "/nonexistent-dir/out.json"); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
