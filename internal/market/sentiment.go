package market

import "math/rand"

// MacroIndicators are the macroeconomic inputs to the sentiment model,
// all expressed in percent.
type MacroIndicators struct {
	GDPGrowth    float64 `json:"gdp_growth"`
	Inflation    float64 `json:"inflation"`
	InterestRate float64 `json:"interest_rate"`
}

// ComputeSentiment aggregates macro indicators, macro news impacts, and
// the current trend into a scalar in [-1, 1]. The only randomness is the
// base draw, so output is deterministic under a seeded rng.
func ComputeSentiment(rng *rand.Rand, macro MacroIndicators, news []NewsEvent, trend Trend) float64 {
	// Base mood: uniform in [-0.2, 0.2].
	sentiment := rng.Float64()*0.4 - 0.2

	switch {
	case macro.GDPGrowth > 3:
		sentiment += 0.1
	case macro.GDPGrowth < 2:
		sentiment -= 0.1
	}

	switch {
	case macro.Inflation > 3:
		sentiment -= 0.15
	case macro.Inflation < 2:
		sentiment += 0.05
	}

	switch {
	case macro.InterestRate > 4:
		sentiment -= 0.1
	case macro.InterestRate < 3:
		sentiment += 0.05
	}

	for _, ev := range news {
		if ev.Type == NewsMacroPositive || ev.Type == NewsMacroNegative {
			sentiment += ev.Impact
		}
	}

	switch trend {
	case TrendBull:
		sentiment += 0.1
	case TrendBear:
		sentiment -= 0.1
	}

	return clampUnit(sentiment)
}

// drawMacro samples a fresh set of indicators for a new session within
// plausible bands.
func drawMacro(rng *rand.Rand) MacroIndicators {
	return MacroIndicators{
		GDPGrowth:    1.0 + rng.Float64()*4.0, // 1% .. 5%
		Inflation:    1.0 + rng.Float64()*5.0, // 1% .. 6%
		InterestRate: 2.0 + rng.Float64()*4.0, // 2% .. 6%
	}
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
