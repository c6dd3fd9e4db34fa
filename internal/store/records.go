package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pedrosv/gole/internal/tracker"
)

// The two whole-document records. Last write wins, no partial updates.
const (
	docConfig   = "config"
	docProgress = "progress"
)

func (s *Store) saveDocument(name string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO documents (name, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		name, string(body), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// loadDocument unmarshals the named record into v, which the caller
// pre-fills with defaults so stored fields overlay them (older records
// missing newer fields stay forward-compatible). A missing or malformed
// body reports ok=false; errors are real I/O failures only.
func (s *Store) loadDocument(name string, v any) (bool, error) {
	var body string
	err := s.db.QueryRow(`SELECT body FROM documents WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return false, nil
	}
	return true, nil
}

// SaveConfig persists the configuration record.
func (s *Store) SaveConfig(cfg tracker.Config) error {
	return s.saveDocument(docConfig, cfg)
}

// LoadConfig reads the configuration record merged over defaults.
func (s *Store) LoadConfig() (tracker.Config, bool, error) {
	cfg := tracker.DefaultConfig()
	ok, err := s.loadDocument(docConfig, &cfg)
	if !ok || err != nil {
		return tracker.DefaultConfig(), false, err
	}
	return cfg, true, nil
}

// SaveProgress persists the ledger record and replays today's drinks into
// the intake archive, so history outlives the ledger's daily rollover.
func (s *Store) SaveProgress(p tracker.Progress) error {
	if err := s.saveDocument(docProgress, p); err != nil {
		return err
	}
	return s.archiveDay(p)
}

// LoadProgress reads the ledger record.
func (s *Store) LoadProgress() (tracker.Progress, bool, error) {
	var p tracker.Progress
	ok, err := s.loadDocument(docProgress, &p)
	if !ok || err != nil {
		return tracker.Progress{}, false, err
	}
	if !validProgress(p) {
		return tracker.Progress{}, false, nil
	}
	return p, true, nil
}

// validProgress is the shape check applied at load time. A record that
// fails it is treated as absent, never as a crash.
func validProgress(p tracker.Progress) bool {
	if p.ConsumedMl < 0 || p.Streak < 0 {
		return false
	}
	sum := 0
	for _, d := range p.Drinks {
		if d.AmountMl <= 0 || d.ID == "" {
			return false
		}
		sum += d.AmountMl
	}
	return sum == p.ConsumedMl
}
