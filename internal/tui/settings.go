package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pedrosv/gole/internal/tracker"
)

type settingsModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	mode          *string
	weight        *string
	goal          *string
	cup           *string
	wakeTime      *string
	sleepTime     *string
	interval      *string
	notifications *bool
}

func newSettingsModel(tr *tracker.Tracker) settingsModel {
	mo, we, gl, cu := "", "", "", ""
	wt, st, iv := "", "", ""
	nt := false
	return settingsModel{
		tracker:       tr,
		mode:          &mo,
		weight:        &we,
		goal:          &gl,
		cup:           &cu,
		wakeTime:      &wt,
		sleepTime:     &st,
		interval:      &iv,
		notifications: &nt,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	cfg := s.tracker.Config()

	*s.mode = string(cfg.Mode)
	*s.weight = strconv.FormatFloat(cfg.WeightKg, 'f', -1, 64)
	*s.goal = strconv.Itoa(cfg.DailyGoalMl)
	*s.cup = strconv.Itoa(cfg.CupSizeMl)
	*s.wakeTime = cfg.WakeTime
	*s.sleepTime = cfg.SleepTime
	*s.interval = strconv.Itoa(cfg.IntervalMinutes)
	*s.notifications = cfg.NotificationsEnabled

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Goal calculation").
				Options(
					huh.NewOption("By body weight (35 ml/kg)", string(tracker.ModeAuto)),
					huh.NewOption("Manual", string(tracker.ModeManual)),
				).Value(s.mode),
			huh.NewInput().Title("Weight (kg)").Value(s.weight),
			huh.NewInput().Title("Daily goal (ml, manual mode)").Value(s.goal),
			huh.NewInput().Title("Cup size (ml, manual mode)").Value(s.cup),
		).Title("Goal"),
		huh.NewGroup(
			huh.NewInput().Title("Wake time (HH:MM)").Value(s.wakeTime),
			huh.NewInput().Title("Sleep time (HH:MM)").Value(s.sleepTime),
			huh.NewSelect[string]().Title("Reminder interval").
				Options(
					huh.NewOption("Every 30 minutes", "30"),
					huh.NewOption("Every hour", "60"),
				).Value(s.interval),
			huh.NewConfirm().Title("Reminders enabled").Value(s.notifications),
		).Title("Reminders"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, s.save()
	}

	return s, cmd
}

// save builds the draft from the form values and hands it to the tracker.
// A validation error leaves the old configuration in force, exactly like a
// persist failure; both surface in the status line.
func (s settingsModel) save() tea.Cmd {
	draft := s.tracker.Config()

	draft.Mode = tracker.Mode(*s.mode)
	if w, err := strconv.ParseFloat(*s.weight, 64); err == nil {
		draft.WeightKg = w
	}
	if g, err := strconv.Atoi(*s.goal); err == nil {
		draft.DailyGoalMl = g
	}
	if c, err := strconv.Atoi(*s.cup); err == nil {
		draft.CupSizeMl = c
	}
	draft.WakeTime = *s.wakeTime
	draft.SleepTime = *s.sleepTime
	if iv, err := strconv.Atoi(*s.interval); err == nil {
		draft.IntervalMinutes = iv
	}
	draft.NotificationsEnabled = *s.notifications

	return func() tea.Msg {
		state, err := s.tracker.UpdateConfig(draft)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Not saved: %v", err), isError: true}
		}
		note := "Settings saved"
		if state.HeavyWeight {
			note = "Settings saved. That weight is unusually high, double-check it"
		}
		return stateMsg{state: state, note: note}
	}
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	cfg := s.tracker.Config()

	modeLabel := "by weight"
	if cfg.Mode == tracker.ModeManual {
		modeLabel = "manual"
	}

	rows := []string{
		titleStyle.Render("Settings"),
		"",
		settingRow("Goal calculation", modeLabel),
		settingRow("Weight", fmt.Sprintf("%.0f kg", cfg.WeightKg)),
		settingRow("Daily goal", formatMl(cfg.DailyGoalMl)),
		settingRow("Cup size", formatMl(cfg.CupSizeMl)),
		settingRow("Waking window", fmt.Sprintf("%s – %s", cfg.WakeTime, cfg.SleepTime)),
		settingRow("Reminder interval", fmt.Sprintf("%d min", cfg.IntervalMinutes)),
		settingRow("Reminders", onOff(cfg.NotificationsEnabled)),
		"",
		mutedStyle.Render("Press enter to edit settings"),
	}

	if cfg.Mode == tracker.ModeAuto {
		preview := tracker.GoalForWeight(cfg.WeightKg)
		rows = append(rows, "", mutedStyle.Render(
			fmt.Sprintf("Goal follows weight: %.0f kg × 35 ml = %s", cfg.WeightKg, formatMl(preview))))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(label, value string) string {
	l := lipgloss.NewStyle().Width(20).Render(label)
	return fmt.Sprintf("  %s %s", l, highlightStyle.Render(value))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
