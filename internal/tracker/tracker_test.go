package tracker

import (
	"errors"
	"testing"
	"time"
)

// fakeStorage is an in-memory Storage with injectable failures.
type fakeStorage struct {
	config      Config
	hasConfig   bool
	progress    Progress
	hasProgress bool

	failSaveConfig   bool
	failSaveProgress bool
	configSaves      int
	progressSaves    int
}

var errDisk = errors.New("disk full")

func (f *fakeStorage) LoadConfig() (Config, bool, error) { return f.config, f.hasConfig, nil }
func (f *fakeStorage) LoadProgress() (Progress, bool, error) {
	return f.progress, f.hasProgress, nil
}

func (f *fakeStorage) SaveConfig(c Config) error {
	if f.failSaveConfig {
		return errDisk
	}
	f.config, f.hasConfig = c, true
	f.configSaves++
	return nil
}

func (f *fakeStorage) SaveProgress(p Progress) error {
	if f.failSaveProgress {
		return errDisk
	}
	f.progress, f.hasProgress = p, true
	f.progressSaves++
	return nil
}

// fakeNotifier records the cancel/schedule call sequence.
type fakeNotifier struct {
	cancels    int
	scheduled  []time.Time
	denyAccess bool
}

func (f *fakeNotifier) CancelAll() {
	f.cancels++
	f.scheduled = nil
}

func (f *fakeNotifier) ScheduleAt(at time.Time, payload string) {
	f.scheduled = append(f.scheduled, at)
}

func (f *fakeNotifier) RequestPermission() bool { return !f.denyAccess }

func newTestTracker(t *testing.T, now time.Time) (*Tracker, *fakeStorage, *fakeNotifier) {
	t.Helper()
	st := &fakeStorage{}
	nt := &fakeNotifier{}
	tr := New(st, nt, WithClock(func() time.Time { return now }))
	return tr, st, nt
}

var morning = time.Date(2026, 8, 29, 9, 30, 0, 0, time.Local)

// ============================================================
// Startup
// ============================================================

func TestNewFallsBackToDefaults(t *testing.T) {
	tr, _, _ := newTestTracker(t, morning)

	if tr.Config() != DefaultConfig() {
		t.Fatalf("config = %+v, want defaults", tr.Config())
	}
	if tr.Progress().ConsumedMl != 0 || tr.Progress().Streak != 0 {
		t.Fatalf("progress = %+v, want zero", tr.Progress())
	}
}

func TestNewLoadsPersistedState(t *testing.T) {
	st := &fakeStorage{
		config:      Config{Mode: ModeManual, WakeTime: "07:00", SleepTime: "23:00", IntervalMinutes: 30, DailyGoalMl: 3000, CupSizeMl: 500},
		hasConfig:   true,
		progress:    Progress{ConsumedMl: 750, Streak: 4, LastDrinkDate: "2026-08-28"},
		hasProgress: true,
	}
	tr := New(st, &fakeNotifier{}, WithClock(func() time.Time { return morning }))

	if tr.Config().DailyGoalMl != 3000 {
		t.Fatalf("goal = %d, want 3000", tr.Config().DailyGoalMl)
	}
	if tr.Progress().Streak != 4 {
		t.Fatalf("streak = %d, want 4", tr.Progress().Streak)
	}
}

func TestNewRejectsCorruptStoredConfig(t *testing.T) {
	st := &fakeStorage{
		config:    Config{Mode: ModeAuto, WeightKg: -1, WakeTime: "08:00", SleepTime: "22:00", IntervalMinutes: 60},
		hasConfig: true,
	}
	tr := New(st, &fakeNotifier{}, WithClock(func() time.Time { return morning }))

	if tr.Config() != DefaultConfig() {
		t.Fatal("corrupt stored config must fall back to defaults")
	}
}

func TestNewInstallsInitialSchedule(t *testing.T) {
	_, _, nt := newTestTracker(t, morning)

	if nt.cancels == 0 {
		t.Fatal("startup must cancel stale reminders before installing")
	}
	if len(nt.scheduled) == 0 {
		t.Fatal("startup with defaults should schedule reminders")
	}
}

// ============================================================
// RecordDrink
// ============================================================

func TestRecordDrinkPersistsAndReturnsState(t *testing.T) {
	tr, st, _ := newTestTracker(t, morning)

	state, err := tr.RecordDrink()
	if err != nil {
		t.Fatal(err)
	}
	if state.Progress.ConsumedMl != 170 {
		t.Fatalf("consumed = %d, want the 170 ml suggestion", state.Progress.ConsumedMl)
	}
	if st.progressSaves != 1 {
		t.Fatalf("progress saves = %d, want 1", st.progressSaves)
	}
	if state.NextDrinkMl <= 0 {
		t.Fatalf("next drink = %d", state.NextDrinkMl)
	}
	if state.Percent != 7 {
		t.Fatalf("percent = %d, want 7", state.Percent)
	}
}

func TestRecordDrinkRollsBackOnPersistFailure(t *testing.T) {
	tr, st, _ := newTestTracker(t, morning)
	if _, err := tr.RecordDrink(); err != nil {
		t.Fatal(err)
	}
	before := tr.Progress()

	st.failSaveProgress = true
	_, err := tr.RecordDrink()
	if err == nil {
		t.Fatal("expected persist error")
	}
	if !errors.Is(err, errDisk) {
		t.Fatalf("error not propagated: %v", err)
	}
	if tr.Progress().ConsumedMl != before.ConsumedMl || len(tr.Progress().Drinks) != len(before.Drinks) {
		t.Fatalf("in-memory ledger not rolled back: %+v", tr.Progress())
	}
}

func TestGoalJustReachedFiresOnceOnCrossing(t *testing.T) {
	tr, _, _ := newTestTracker(t, morning)

	var crossings int
	for i := 0; i < 20; i++ {
		state, err := tr.RecordDrink()
		if err != nil {
			t.Fatal(err)
		}
		if state.GoalJustReached {
			crossings++
			if state.Progress.ConsumedMl < tr.Config().DailyGoalMl {
				t.Fatal("crossing flagged below the goal")
			}
		}
		if state.Progress.ConsumedMl >= tr.Config().DailyGoalMl {
			break
		}
	}
	if crossings != 1 {
		t.Fatalf("goal crossing fired %d times, want exactly 1", crossings)
	}

	// The landing is exact: the final-stretch suggestion never overshoots.
	if tr.Progress().ConsumedMl != tr.Config().DailyGoalMl {
		t.Fatalf("consumed = %d, want exactly %d", tr.Progress().ConsumedMl, tr.Config().DailyGoalMl)
	}
}

func TestOverGoalAdvisoryAfterCrossing(t *testing.T) {
	tr, _, _ := newTestTracker(t, morning)
	for tr.Progress().ConsumedMl < tr.Config().DailyGoalMl {
		if _, err := tr.RecordDrink(); err != nil {
			t.Fatal(err)
		}
	}

	state, err := tr.RecordDrink()
	if err != nil {
		t.Fatal(err)
	}
	if !state.OverGoal {
		t.Fatal("expected over-goal advisory")
	}
	if state.GoalJustReached {
		t.Fatal("crossing must not re-fire past the goal")
	}
	if state.NextDrinkMl != 170 {
		t.Fatalf("infinite mode suggestion = %d, want 170", state.NextDrinkMl)
	}
}

func TestGoalCrossingIgnoresPriorDayVolume(t *testing.T) {
	st := &fakeStorage{
		progress:    Progress{ConsumedMl: 5000, Streak: 1, LastDrinkDate: "2026-08-28"},
		hasProgress: true,
	}
	tr := New(st, &fakeNotifier{}, WithClock(func() time.Time { return morning }))

	state, err := tr.RecordDrink()
	if err != nil {
		t.Fatal(err)
	}
	if state.OverGoal {
		t.Fatal("yesterday's volume must not mark a fresh day over-goal")
	}
	if state.GoalJustReached {
		t.Fatal("one drink on a fresh day cannot reach a 2450 ml goal")
	}
}

// ============================================================
// Undo / Reset
// ============================================================

func TestUndoRoundTripThroughController(t *testing.T) {
	tr, st, _ := newTestTracker(t, morning)
	if _, err := tr.RecordDrink(); err != nil {
		t.Fatal(err)
	}

	state, err := tr.UndoLastDrink()
	if err != nil {
		t.Fatal(err)
	}
	if state.Progress.ConsumedMl != 0 || len(state.Progress.Drinks) != 0 {
		t.Fatalf("undo left %+v", state.Progress)
	}
	if st.progressSaves != 2 {
		t.Fatalf("progress saves = %d, want 2", st.progressSaves)
	}
}

func TestResetDayThroughController(t *testing.T) {
	tr, _, _ := newTestTracker(t, morning)
	tr.RecordDrink()
	tr.RecordDrink()

	state, err := tr.ResetDay()
	if err != nil {
		t.Fatal(err)
	}
	if state.Progress.ConsumedMl != 0 || len(state.Progress.Drinks) != 0 {
		t.Fatalf("reset left %+v", state.Progress)
	}
	if state.Progress.Streak != 0 {
		t.Fatalf("streak = %d, want 0 after losing today's credit", state.Progress.Streak)
	}
}

// ============================================================
// UpdateConfig
// ============================================================

func TestUpdateConfigValidatesBeforeMutating(t *testing.T) {
	tr, st, _ := newTestTracker(t, morning)

	draft := tr.Config()
	draft.WakeTime = "22:00"
	draft.SleepTime = "08:00"

	_, err := tr.UpdateConfig(draft)
	if !errors.Is(err, ErrWindowInverted) {
		t.Fatalf("expected ErrWindowInverted, got %v", err)
	}
	if tr.Config() != DefaultConfig() {
		t.Fatal("rejected draft mutated the live config")
	}
	if st.configSaves != 0 {
		t.Fatal("rejected draft reached storage")
	}
}

func TestUpdateConfigRevertsOnPersistFailure(t *testing.T) {
	tr, st, _ := newTestTracker(t, morning)
	st.failSaveConfig = true

	draft := tr.Config()
	draft.WeightKg = 80

	_, err := tr.UpdateConfig(draft)
	if err == nil {
		t.Fatal("expected persist error")
	}
	if tr.Config().WeightKg != DefaultWeightKg {
		t.Fatal("failed save must leave the previous config in force")
	}
}

func TestUpdateConfigRecomputesGoalAndAdvisory(t *testing.T) {
	tr, _, _ := newTestTracker(t, morning)

	draft := tr.Config()
	draft.WeightKg = 200

	state, err := tr.UpdateConfig(draft)
	if err != nil {
		t.Fatal(err)
	}
	if state.Config.DailyGoalMl != 7000 {
		t.Fatalf("goal = %d, want 7000", state.Config.DailyGoalMl)
	}
	if !state.HeavyWeight {
		t.Fatal("expected heavy weight advisory")
	}
}

// ============================================================
// Reminder synchronization
// ============================================================

func TestEveryMutationReinstallsSchedule(t *testing.T) {
	tr, _, nt := newTestTracker(t, morning)
	base := nt.cancels

	tr.RecordDrink()
	tr.UndoLastDrink()
	draft := tr.Config()
	draft.IntervalMinutes = 30
	tr.UpdateConfig(draft)

	if nt.cancels != base+3 {
		t.Fatalf("cancels = %d, want one per mutation (%d)", nt.cancels-base, 3)
	}
	// 30-minute interval from 09:30: 10:00 through 22:00.
	if len(nt.scheduled) != 25 {
		t.Fatalf("scheduled = %d, want 25", len(nt.scheduled))
	}
}

func TestScheduleClearedWhenGoalMet(t *testing.T) {
	tr, _, nt := newTestTracker(t, morning)
	for tr.Progress().ConsumedMl < tr.Config().DailyGoalMl {
		if _, err := tr.RecordDrink(); err != nil {
			t.Fatal(err)
		}
	}

	if len(nt.scheduled) != 0 {
		t.Fatalf("goal met but %d reminders still pending", len(nt.scheduled))
	}
}

func TestScheduleClearedWhenNotificationsDisabled(t *testing.T) {
	tr, _, nt := newTestTracker(t, morning)

	draft := tr.Config()
	draft.NotificationsEnabled = false
	state, err := tr.UpdateConfig(draft)
	if err != nil {
		t.Fatal(err)
	}
	if state.RemindersSet != 0 || len(nt.scheduled) != 0 {
		t.Fatalf("notifications off but %d pending", len(nt.scheduled))
	}
}

func TestDeniedPermissionDegradesToNoSchedule(t *testing.T) {
	st := &fakeStorage{}
	nt := &fakeNotifier{denyAccess: true}
	tr := New(st, nt, WithClock(func() time.Time { return morning }))

	state, err := tr.RecordDrink()
	if err != nil {
		t.Fatal(err)
	}
	if state.RemindersSet != 0 || len(nt.scheduled) != 0 {
		t.Fatal("denied permission must degrade to an empty schedule, not an error")
	}
}

func TestNextReminderCountdownSource(t *testing.T) {
	tr, _, _ := newTestTracker(t, morning)

	at, ok := tr.NextReminder()
	if !ok {
		t.Fatal("expected a pending reminder")
	}
	want := time.Date(2026, 8, 29, 10, 0, 0, 0, time.Local)
	if !at.Equal(want) {
		t.Fatalf("next reminder = %v, want %v", at, want)
	}
}
