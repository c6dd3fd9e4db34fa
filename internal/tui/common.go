package tui

import (
	"fmt"
	"time"

	"github.com/pedrosv/gole/internal/store"
	"github.com/pedrosv/gole/internal/tracker"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewHistory
	viewSettings
)

var viewNames = []string{"Today", "History", "Settings"}

// --- Messages ---

// stateMsg carries the tracker state after an operation, with an optional
// status note for the footer.
type stateMsg struct {
	state tracker.State
	note  string
}

type statusMsg struct {
	text    string
	isError bool
}

// reminderMsg is a fired hydration reminder forwarded from the scheduler.
type reminderMsg struct {
	payload string
}

type historyDataMsg struct {
	totals []store.DayTotal
}

type exportDoneMsg struct {
	path string
}

type tickMsg time.Time

// --- Helpers ---

func formatMl(ml int) string {
	if ml >= 1000 && ml%100 == 0 {
		return fmt.Sprintf("%.1f L", float64(ml)/1000)
	}
	return fmt.Sprintf("%d ml", ml)
}

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
