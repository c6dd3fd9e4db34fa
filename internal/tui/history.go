package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pedrosv/gole/internal/store"
	"github.com/pedrosv/gole/internal/tracker"
)

type historyModel struct {
	store   *store.Store
	tracker *tracker.Tracker
	width   int
	height  int

	totals []store.DayTotal
	offset int // 7-day blocks back from today (0 = current)

	chart barchart.Model
}

func newHistoryModel(s *store.Store, tr *tracker.Tracker) historyModel {
	return historyModel{
		store:   s,
		tracker: tr,
		chart:   barchart.New(60, 12),
	}
}

func (m *historyModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := m.dateRange()
		totals, _ := m.store.DailyTotals(from, to)
		return historyDataMsg{totals: totals}
	}
}

// dateRange returns the [from, to) day keys of the visible 7-day block.
func (m historyModel) dateRange() (string, string) {
	now := time.Now()
	end := now.AddDate(0, 0, 1-7*m.offset)
	start := end.AddDate(0, 0, -7)
	return tracker.DayKey(start), tracker.DayKey(end)
}

func (m historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		m.totals = msg.totals
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.offset++
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			if m.offset > 0 {
				m.offset--
			}
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *historyModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	goal := m.tracker.Config().DailyGoalMl
	byDay := make(map[string]store.DayTotal, len(m.totals))
	for _, dt := range m.totals {
		byDay[dt.Day] = dt
	}

	from, _ := m.dateRange()
	start, _ := time.ParseInLocation("2006-01-02", from, time.Local)

	var bars []barchart.BarData
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		dayKey := tracker.DayKey(d)
		label := d.Format("Mon 02")

		liters := 0.0
		style := lipgloss.NewStyle().Foreground(colorSubtle)
		if dt, ok := byDay[dayKey]; ok {
			liters = float64(dt.TotalMl) / 1000.0
			style = lipgloss.NewStyle().Foreground(colorPrimary)
			if goal > 0 && dt.TotalMl >= goal {
				style = lipgloss.NewStyle().Foreground(colorSuccess)
			}
		}

		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: dayKey, Value: liters, Style: style},
			},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m historyModel) view() string {
	w := m.width - 4

	from, to := m.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s to %s", from, prevDay(to)))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Intake history"), "  ", dateLabel,
	)

	chartView := m.chart.View()
	tableView := m.renderTable(w)
	drinksView := m.renderTodayDrinks()
	nav := mutedStyle.Render("  ←/→: navigate weeks")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", tableView, "", drinksView, "", nav,
		),
	)
}

func (m historyModel) renderTable(w int) string {
	if len(m.totals) == 0 {
		return mutedStyle.Render("  No intake recorded in this period")
	}

	goal := m.tracker.Config().DailyGoalMl

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %10s %8s", "Date", "Intake", "Drinks")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 34))))
	for _, dt := range m.totals {
		mark := " "
		if goal > 0 && dt.TotalMl >= goal {
			mark = successStyle.Render("✓")
		}
		rows = append(rows, fmt.Sprintf("  %-12s %10s %7d %s", dt.Day, formatMl(dt.TotalMl), dt.DrinkCount, mark))
	}
	return strings.Join(rows, "\n")
}

func (m historyModel) renderTodayDrinks() string {
	drinks := m.tracker.Progress().Drinks
	if len(drinks) == 0 {
		return mutedStyle.Render("  No drinks logged today")
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Today's log"))
	shown := drinks
	if len(shown) > 5 {
		shown = shown[len(shown)-5:]
	}
	for _, d := range shown {
		rows = append(rows, fmt.Sprintf("  %s  %s",
			d.Timestamp.Local().Format("15:04"), highlightStyle.Render(formatMl(d.AmountMl))))
	}
	if len(drinks) > len(shown) {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … and %d earlier", len(drinks)-len(shown))))
	}
	return strings.Join(rows, "\n")
}

func prevDay(dayKey string) string {
	t, err := time.ParseInLocation("2006-01-02", dayKey, time.Local)
	if err != nil {
		return dayKey
	}
	return tracker.DayKey(t.AddDate(0, 0, -1))
}
