package tracker

// NextDrink suggests the size of the next drink in milliliters.
//
// Manual mode always suggests the configured cup. Automatic mode divides the
// waking window into interval-sized slots and spreads the goal across them,
// rounding each suggestion up to a clean multiple of RoundingStepMl. Near the
// goal the suggestion shrinks to exactly the remaining volume, so the last
// drink lands on the goal without overshooting; once the goal is met the
// standard size keeps being suggested (drinks may still be logged past the
// goal, they just stop shrinking).
//
// Pure function of its inputs; recompute after every config or ledger change.
func NextDrink(cfg Config, p Progress) int {
	remaining := cfg.DailyGoalMl - p.ConsumedMl
	if remaining < 0 {
		remaining = 0
	}

	standard := standardSize(cfg)

	switch {
	case p.ConsumedMl >= cfg.DailyGoalMl:
		return standard
	case remaining < standard:
		return remaining
	default:
		return standard
	}
}

func standardSize(cfg Config) int {
	if cfg.Mode == ModeManual {
		return cfg.CupSizeMl
	}

	wake, sleep := cfg.wakingWindow()
	interval := cfg.IntervalMinutes
	if interval < 1 {
		interval = 1
	}

	slots := (sleep-wake)/interval + 1
	if slots < 1 {
		slots = 1
	}

	perSlot := ceilDiv(cfg.DailyGoalMl, slots)
	return ceilDiv(perSlot, RoundingStepMl) * RoundingStepMl
}

func ceilDiv(a, b int) int {
	if b < 1 {
		b = 1
	}
	return (a + b - 1) / b
}
