package tracker

import (
	"fmt"
	"time"
)

// Storage persists the two whole-document records. Loads report absence
// (or a malformed record) as ok=false rather than an error; errors are
// reserved for real I/O failures.
type Storage interface {
	LoadConfig() (Config, bool, error)
	SaveConfig(Config) error
	LoadProgress() (Progress, bool, error)
	SaveProgress(Progress) error
}

// Notifier delivers scheduled reminders. The tracker never queries what is
// pending: it cancels everything and reinstalls the fresh schedule.
type Notifier interface {
	CancelAll()
	ScheduleAt(at time.Time, payload string)
	RequestPermission() bool
}

// ReminderPayload is the text attached to every scheduled reminder.
const ReminderPayload = "Time for water! Keep the pace with one more sip."

// State is the derived snapshot returned to the UI after every operation.
type State struct {
	Config      Config
	Progress    Progress
	NextDrinkMl int
	Percent     int

	// GoalJustReached is set on the exact operation that crossed the goal,
	// at most once per day.
	GoalJustReached bool
	// OverGoal warns that a drink was logged past an already-met goal.
	OverGoal bool
	// HeavyWeight carries the non-blocking health advisory after a save.
	HeavyWeight bool
	// RemindersSet is how many reminders were (re)installed.
	RemindersSet int
}

// Tracker orchestrates the config and progress snapshots. It is the only
// holder of current state; operations run to completion one at a time since
// the UI shell serializes user actions.
type Tracker struct {
	storage  Storage
	notifier Notifier
	now      func() time.Time

	config   Config
	progress Progress
}

// Option customizes a Tracker.
type Option func(*Tracker)

// WithClock replaces the wall clock, for tests and simulations.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New loads both records and builds the tracker. An absent, malformed, or
// unreadable record falls back to defaults; startup never fails on state.
func New(storage Storage, notifier Notifier, opts ...Option) *Tracker {
	t := &Tracker{
		storage:  storage,
		notifier: notifier,
		now:      time.Now,
		config:   DefaultConfig(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if cfg, ok, err := storage.LoadConfig(); err == nil && ok {
		if normalized, nerr := cfg.Normalize(); nerr == nil {
			t.config = normalized
		}
	}
	if p, ok, err := storage.LoadProgress(); err == nil && ok {
		t.progress = p
	}

	t.reschedule()
	return t
}

// Config returns the current configuration snapshot.
func (t *Tracker) Config() Config { return t.config }

// Progress returns the current ledger snapshot.
func (t *Tracker) Progress() Progress { return t.progress }

// State returns the derived view of the current snapshots.
func (t *Tracker) State() State {
	return State{
		Config:      t.config,
		Progress:    t.progress,
		NextDrinkMl: t.nextDrink(),
		Percent:     t.progress.Percent(t.config.DailyGoalMl),
		HeavyWeight: t.config.HeavyWeightAdvisory(),
	}
}

// NextReminder returns the earliest pending reminder instant, if any.
func (t *Tracker) NextReminder() (time.Time, bool) {
	instants := ReminderInstants(t.config, t.progress, t.now())
	if len(instants) == 0 {
		return time.Time{}, false
	}
	return instants[0], true
}

func (t *Tracker) nextDrink() int {
	amount := NextDrink(t.config, t.progress)
	if amount <= 0 {
		// remainingMl can sit exactly on 0 at the goal line; never
		// suggest a zero or negative pour.
		amount = FallbackDrinkMl
	}
	return amount
}

// RecordDrink logs the currently suggested drink size. The in-memory ledger
// is updated optimistically and rolled back if the persist fails.
func (t *Tracker) RecordDrink() (State, error) {
	now := t.now()
	amount := t.nextDrink()

	before := t.progress
	after := before.RecordDrink(amount, now)

	// The goal-crossing comparison is day-scoped: a rollover starts from 0,
	// the prior day's volume never suppresses a new day's goal event.
	beforeMl := before.ConsumedMl
	if before.LastDrinkDate != TodayKey(now) {
		beforeMl = 0
	}
	goal := t.config.DailyGoalMl
	crossed := beforeMl < goal && after.ConsumedMl >= goal
	overGoal := beforeMl >= goal

	if err := t.commitProgress(after); err != nil {
		return t.State(), err
	}

	state := t.State()
	state.GoalJustReached = crossed
	state.OverGoal = overGoal
	state.RemindersSet = t.reschedule()
	return state, nil
}

// UndoLastDrink removes the most recent drink of the day.
func (t *Tracker) UndoLastDrink() (State, error) {
	after := t.progress.UndoLastDrink()
	if err := t.commitProgress(after); err != nil {
		return t.State(), err
	}
	state := t.State()
	state.RemindersSet = t.reschedule()
	return state, nil
}

// ResetDay clears today's ledger. Confirmation is the UI's job; the
// operation itself is unconditional.
func (t *Tracker) ResetDay() (State, error) {
	after := t.progress.ResetDay()
	if err := t.commitProgress(after); err != nil {
		return t.State(), err
	}
	state := t.State()
	state.RemindersSet = t.reschedule()
	return state, nil
}

// UpdateConfig validates and applies a draft configuration. On a validation
// error nothing changes and nothing is persisted; on a persist error the
// previous configuration stays in force.
func (t *Tracker) UpdateConfig(draft Config) (State, error) {
	normalized, err := draft.Normalize()
	if err != nil {
		return t.State(), err
	}

	before := t.config
	t.config = normalized
	if err := t.storage.SaveConfig(normalized); err != nil {
		t.config = before
		return t.State(), fmt.Errorf("save config: %w", err)
	}

	state := t.State()
	state.RemindersSet = t.reschedule()
	return state, nil
}

func (t *Tracker) commitProgress(after Progress) error {
	before := t.progress
	t.progress = after
	if err := t.storage.SaveProgress(after); err != nil {
		t.progress = before
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// reschedule cancels every pending reminder and installs the freshly
// computed set, returning how many were installed. A denied permission
// degrades to an empty schedule; it is never an error.
func (t *Tracker) reschedule() int {
	t.notifier.CancelAll()

	instants := ReminderInstants(t.config, t.progress, t.now())
	if len(instants) == 0 {
		return 0
	}
	if !t.notifier.RequestPermission() {
		return 0
	}
	for _, at := range instants {
		t.notifier.ScheduleAt(at, ReminderPayload)
	}
	return len(instants)
}
