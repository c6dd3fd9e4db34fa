package tracker

import "time"

// ReminderInstants derives the remaining reminder times for today.
//
// Candidates sit at wake + k·interval for k = 1, 2, … up to and including
// sleep time; only candidates strictly after now survive, so a slot that
// already passed today is never rescheduled. The whole schedule is empty
// when notifications are off or the goal is already met.
//
// The function is pure and idempotent; the caller's external effect is
// always cancel-everything-then-reinstall, never an incremental diff.
func ReminderInstants(cfg Config, p Progress, now time.Time) []time.Time {
	if !cfg.NotificationsEnabled {
		return nil
	}
	if p.GoalMet(cfg.DailyGoalMl) {
		return nil
	}

	wake, sleep := cfg.wakingWindow()
	interval := cfg.IntervalMinutes
	if interval < 1 {
		interval = 1
	}

	year, month, day := now.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	var instants []time.Time
	for minute := wake + interval; minute <= sleep; minute += interval {
		at := midnight.Add(time.Duration(minute) * time.Minute)
		if at.After(now) {
			instants = append(instants, at)
		}
	}
	return instants
}
