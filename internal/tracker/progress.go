package tracker

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Drink is one logged intake. Immutable once created; it leaves the ledger
// only through undo (last entry) or a day reset.
type Drink struct {
	ID        string    `json:"id"`
	AmountMl  int       `json:"amountMl"`
	Timestamp time.Time `json:"timestamp"`
}

// Progress is the current-day consumption ledger plus the day streak. It is
// a value snapshot: every operation returns a new Progress and leaves the
// receiver untouched.
type Progress struct {
	ConsumedMl    int     `json:"consumedMl"`
	Drinks        []Drink `json:"drinks"`
	Streak        int     `json:"streak"`
	LastDrinkDate string  `json:"lastDrinkDate"`
}

// RecordDrink appends a drink of the given size at now.
//
// If the ledger still holds a previous calendar day it is rolled over first:
// the old drinks are discarded wholesale and the new drink starts the day.
// The streak rule fires on the first drink of the day (after rollover, or
// after undo/reset emptied the ledger): a last-drink date of yesterday
// continues the streak, a same-day re-entry restores the credit the
// undo/reset took back, anything else starts over at 1.
func (p Progress) RecordDrink(amount int, now time.Time) Progress {
	today := TodayKey(now)
	yesterday := YesterdayKey(now)

	next := p
	if p.LastDrinkDate != today {
		next.Drinks = nil
		next.ConsumedMl = 0
	}

	if len(next.Drinks) == 0 {
		switch p.LastDrinkDate {
		case yesterday, today:
			next.Streak = p.Streak + 1
		default:
			next.Streak = 1
		}
	}

	drink := Drink{ID: uuid.NewString(), AmountMl: amount, Timestamp: now}
	next.Drinks = append(append([]Drink(nil), next.Drinks...), drink)
	next.ConsumedMl += amount
	next.LastDrinkDate = today
	return next
}

// UndoLastDrink removes the most recent drink. Removing the day's only drink
// also takes back the streak credit that drink earned. No-op on an empty
// ledger; LastDrinkDate is never touched.
func (p Progress) UndoLastDrink() Progress {
	if len(p.Drinks) == 0 {
		return p
	}

	next := p
	last := p.Drinks[len(p.Drinks)-1]
	next.Drinks = append([]Drink(nil), p.Drinks[:len(p.Drinks)-1]...)
	next.ConsumedMl = p.ConsumedMl - last.AmountMl
	if next.ConsumedMl < 0 {
		next.ConsumedMl = 0
	}
	if len(next.Drinks) == 0 && next.Streak > 0 {
		next.Streak--
	}
	return next
}

// ResetDay clears the day's drinks and volume. A day that had drinks loses
// its streak credit; resetting an already-empty day costs nothing.
// LastDrinkDate is never touched.
func (p Progress) ResetDay() Progress {
	next := p
	if len(p.Drinks) > 0 && next.Streak > 0 {
		next.Streak--
	}
	next.Drinks = nil
	next.ConsumedMl = 0
	return next
}

// Percent is the unclamped share of the goal consumed, rounded to the
// nearest whole percent. May exceed 100.
func (p Progress) Percent(goalMl int) int {
	if goalMl <= 0 {
		return 0
	}
	return int(math.Round(float64(p.ConsumedMl) / float64(goalMl) * 100))
}

// GoalMet reports whether the day's goal is already reached.
func (p Progress) GoalMet(goalMl int) bool {
	return p.ConsumedMl >= goalMl
}
