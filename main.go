package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pedrosv/gole/internal/notify"
	"github.com/pedrosv/gole/internal/store"
	"github.com/pedrosv/gole/internal/tracker"
	"github.com/pedrosv/gole/internal/tui"
)

func main() {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	reminders := make(chan string, 8)
	scheduler := notify.New(func(payload string) {
		select {
		case reminders <- payload:
		default: // never block a timer goroutine on a full UI
		}
	})
	defer scheduler.CancelAll()

	tr := tracker.New(s, scheduler)

	app := tui.NewApp(tr, s, reminders)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
