package tracker

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const dayKeyLayout = "2006-01-02"

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// TimeToMinutes parses a 24-hour "HH:MM" clock string into minutes since
// midnight. The minute part must be exactly two digits.
func TimeToMinutes(clock string) (int, error) {
	m := clockPattern.FindStringSubmatch(clock)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}
	return hours*60 + minutes, nil
}

// DayKey formats t as YYYY-MM-DD in t's own location. Day keys always come
// from the local calendar, never UTC: converting to UTC shifts the day
// boundary for users west of Greenwich and corrupts the streak.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// TodayKey returns the local calendar date of now.
func TodayKey(now time.Time) string {
	return DayKey(now)
}

// YesterdayKey returns the local calendar date of the day before now.
func YesterdayKey(now time.Time) string {
	return DayKey(now.AddDate(0, 0, -1))
}
