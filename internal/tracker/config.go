package tracker

import "errors"

// Hydration formula and bounds, matching the values the app has always used.
const (
	MlPerKg = 35

	DefaultWeightKg     = 70
	MinWeightKg         = 20
	MaxWeightKg         = 650
	HealthWarnWeightKg  = 200

	DefaultWakeTime  = "08:00"
	DefaultSleepTime = "22:00"

	DefaultIntervalMinutes = 60

	RoundingStepMl  = 10
	FallbackDrinkMl = 250

	MinDailyGoalMl = 500
	MinCupSizeMl   = 50
)

// Mode selects how the daily goal is derived.
type Mode string

const (
	// ModeAuto derives the goal from body weight (35 ml per kg).
	ModeAuto Mode = "auto"
	// ModeManual uses a user-entered goal and cup size.
	ModeManual Mode = "manual"
)

// Config validation errors.
var (
	ErrInvalidWeight     = errors.New("weight out of range")
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrWindowInverted    = errors.New("wake time must precede sleep time")
	ErrGoalTooLow        = errors.New("daily goal below minimum")
	ErrCupTooSmall       = errors.New("cup size below minimum")
	ErrInvalidInterval   = errors.New("unsupported reminder interval")
)

// Config is the user's hydration configuration. It is a value snapshot:
// mutations go through Normalize, which either accepts the whole draft or
// rejects it without partial effect.
type Config struct {
	Mode                 Mode    `json:"mode"`
	WeightKg             float64 `json:"weightKg"`
	WakeTime             string  `json:"wakeTime"`
	SleepTime            string  `json:"sleepTime"`
	IntervalMinutes      int     `json:"reminderIntervalMinutes"`
	NotificationsEnabled bool    `json:"notificationsEnabled"`
	CupSizeMl            int     `json:"manualCupSizeMl"`
	DailyGoalMl          int     `json:"dailyGoalMl"`
}

// DefaultConfig is the configuration created on first launch.
func DefaultConfig() Config {
	return Config{
		Mode:                 ModeAuto,
		WeightKg:             DefaultWeightKg,
		WakeTime:             DefaultWakeTime,
		SleepTime:            DefaultSleepTime,
		IntervalMinutes:      DefaultIntervalMinutes,
		NotificationsEnabled: true,
		CupSizeMl:            FallbackDrinkMl,
		DailyGoalMl:          DefaultWeightKg * MlPerKg,
	}
}

// GoalForWeight derives the daily goal for a body weight.
func GoalForWeight(weightKg float64) int {
	return int(weightKg * MlPerKg)
}

// Normalize validates the draft and returns the accepted configuration. In
// automatic mode the daily goal is always recomputed from weight; it is never
// independently editable there. Validation is atomic: on error the zero
// Config is returned and nothing should be applied.
func (c Config) Normalize() (Config, error) {
	switch c.Mode {
	case ModeAuto:
		if c.WeightKg < MinWeightKg || c.WeightKg > MaxWeightKg {
			return Config{}, ErrInvalidWeight
		}
		c.DailyGoalMl = GoalForWeight(c.WeightKg)
	case ModeManual:
		if c.DailyGoalMl < MinDailyGoalMl {
			return Config{}, ErrGoalTooLow
		}
		if c.CupSizeMl < MinCupSizeMl {
			return Config{}, ErrCupTooSmall
		}
	default:
		return Config{}, errors.New("unknown mode")
	}

	wake, err := TimeToMinutes(c.WakeTime)
	if err != nil {
		return Config{}, err
	}
	sleep, err := TimeToMinutes(c.SleepTime)
	if err != nil {
		return Config{}, err
	}
	if wake >= sleep {
		return Config{}, ErrWindowInverted
	}

	switch c.IntervalMinutes {
	case 30, 60:
	default:
		return Config{}, ErrInvalidInterval
	}

	return c, nil
}

// HeavyWeightAdvisory reports whether the configured weight is above the
// health-warning threshold. Advisory only; never blocks a save.
func (c Config) HeavyWeightAdvisory() bool {
	return c.Mode == ModeAuto && c.WeightKg >= HealthWarnWeightKg
}

// wakingWindow returns the wake and sleep instants as minutes of day.
// Config is assumed normalized; on a corrupt value the window collapses
// to a single slot rather than failing.
func (c Config) wakingWindow() (wake, sleep int) {
	wake, _ = TimeToMinutes(c.WakeTime)
	sleep, _ = TimeToMinutes(c.SleepTime)
	if sleep < wake {
		sleep = wake
	}
	return wake, sleep
}
