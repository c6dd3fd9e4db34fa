package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pedrosv/gole/internal/tracker"
)

type homeModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	state tracker.State
	now   time.Time

	// Reset confirmation overlay
	confirming    bool
	confirmCursor int
}

func newHomeModel(tr *tracker.Tracker) homeModel {
	return homeModel{
		tracker: tr,
		state:   tr.State(),
		now:     time.Now(),
	}
}

func (h *homeModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

func (h homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		h.state = msg.state
		return h, nil

	case tickMsg:
		h.now = time.Time(msg)
		return h, nil

	case tea.KeyMsg:
		if h.confirming {
			return h.updateConfirm(msg)
		}

		switch {
		case key.Matches(msg, keys.Drink):
			return h.recordDrink()

		case key.Matches(msg, keys.Undo):
			state, err := h.tracker.UndoLastDrink()
			if err != nil {
				return h, errStatus(err)
			}
			h.state = state
			return h, notify("Last drink undone")

		case key.Matches(msg, keys.Reset):
			if len(h.state.Progress.Drinks) == 0 {
				return h, notify("Nothing to reset")
			}
			h.confirming = true
			h.confirmCursor = 0
			return h, nil
		}
	}
	return h, nil
}

func (h homeModel) recordDrink() (homeModel, tea.Cmd) {
	state, err := h.tracker.RecordDrink()
	if err != nil {
		return h, errStatus(err)
	}
	h.state = state

	switch {
	case state.GoalJustReached:
		return h, notify("Goal reached! Hydration complete for today.")
	case state.OverGoal:
		return h, notify("Careful: goal already met, too much water can hurt.")
	default:
		return h, notify(fmt.Sprintf("Logged %s", formatMl(state.Progress.Drinks[len(state.Progress.Drinks)-1].AmountMl)))
	}
}

func (h homeModel) updateConfirm(msg tea.KeyMsg) (homeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Left), key.Matches(msg, keys.Up):
		h.confirmCursor = 0
	case key.Matches(msg, keys.Right), key.Matches(msg, keys.Down):
		h.confirmCursor = 1
	case key.Matches(msg, keys.Enter):
		h.confirming = false
		if h.confirmCursor == 1 {
			state, err := h.tracker.ResetDay()
			if err != nil {
				return h, errStatus(err)
			}
			h.state = state
			return h, notify("Day reset. Today's log cleared.")
		}
	case key.Matches(msg, keys.Back):
		h.confirming = false
	}
	return h, nil
}

func (h homeModel) view() string {
	if h.width < 20 {
		return "Terminal too small"
	}
	w := h.width - 4

	progress := h.renderProgressPanel(w)

	var bottom string
	if h.confirming {
		bottom = h.renderConfirm(w)
	} else {
		bottom = h.renderControlsPanel(w)
	}

	return lipgloss.JoinVertical(lipgloss.Left, progress, bottom)
}

func (h homeModel) renderProgressPanel(w int) string {
	p := h.state.Progress
	goal := h.state.Config.DailyGoalMl

	readout := fmt.Sprintf("%s / %s  (%d%%)", formatMl(p.ConsumedMl), formatMl(goal), h.state.Percent)
	style := consumedStyle
	if p.GoalMet(goal) {
		style = goalMetStyle
	}
	display := style.Width(w - 6).Render(readout)

	bar := renderBar(w-6, p.ConsumedMl, goal)

	streak := mutedStyle.Render("No streak yet")
	if p.Streak > 0 {
		streak = accentStyle.Render(fmt.Sprintf("🔥 %d day streak", p.Streak))
	}

	var extra string
	switch {
	case p.GoalMet(goal):
		extra = successStyle.Render("Goal met, anything more is a bonus")
	default:
		if at, ok := h.tracker.NextReminder(); ok {
			extra = mutedStyle.Render(fmt.Sprintf("Next reminder %s (in %s)",
				at.Format("15:04"), formatCountdown(at.Sub(h.now))))
		} else {
			extra = mutedStyle.Render("No more reminders today")
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center, display, bar, streak, extra)
	return activePanelStyle.Width(w).Render(content)
}

// renderBar draws the fill bar, clamped at full even past the goal.
func renderBar(w, consumed, goal int) string {
	if w < 10 {
		w = 10
	}
	filled := 0
	if goal > 0 {
		filled = consumed * w / goal
	}
	filled = min(filled, w)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", w-filled)
	return highlightStyle.Render(bar)
}

func (h homeModel) renderControlsPanel(w int) string {
	next := h.state.NextDrinkMl

	drink := titleStyle.Render(fmt.Sprintf("Press d to drink %s", formatMl(next)))

	var rows []string
	rows = append(rows, drink)
	if len(h.state.Progress.Drinks) > 0 {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("u: undo last   r: reset day"))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (h homeModel) renderConfirm(w int) string {
	title := titleStyle.Render("Reset the day?")
	body := mutedStyle.Render("Today's log is erased; the streak loses today's credit.")

	options := []string{"Cancel", "Yes, reset"}
	var rendered []string
	for i, o := range options {
		style := normalItemStyle
		cursor := "  "
		if i == h.confirmCursor {
			style = selectedItemStyle
			cursor = "> "
		}
		if i == 1 {
			style = style.Foreground(colorError)
		}
		rendered = append(rendered, style.Render(cursor+o))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title, body, "",
		lipgloss.JoinHorizontal(lipgloss.Top, rendered[0], "   ", rendered[1]),
		"",
		mutedStyle.Render("enter: confirm  esc: cancel"),
	)
	return activePanelStyle.Width(w).Render(content)
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errStatus(err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true} }
}
