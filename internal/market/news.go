package market

import "math/rand"

// NewsType categorizes a news event by what it moves: the whole market,
// one sector, or gold.
type NewsType string

const (
	NewsMacroPositive NewsType = "macro_positive"
	NewsMacroNegative NewsType = "macro_negative"
	NewsSector        NewsType = "sector"
	NewsGold          NewsType = "gold"
)

// Trend is the categorical market direction derived from aggregate news
// impact.
type Trend string

const (
	TrendBull   Trend = "bull"
	TrendBear   Trend = "bear"
	TrendStable Trend = "stable"
)

// Trend classification thresholds on summed news impact.
const (
	bullThreshold = 0.1
	bearThreshold = -0.1
)

// NewsEvent is one sampled headline with its signed price pressure.
// Events are generated wholesale and never mutated individually; slice
// order is relevance order.
type NewsEvent struct {
	Type     NewsType `json:"type"`
	Impact   float64  `json:"impact"`
	Sector   string   `json:"sector,omitempty"`
	Headline string   `json:"headline"`
}

// maxEventsPerCycle caps how many events one generation draws.
const maxEventsPerCycle = 5

// Generator samples a day's news from fixed candidate pools.
type Generator struct {
	pool []NewsEvent
}

// NewGenerator builds a generator over the default event pools.
func NewGenerator() *Generator {
	return &Generator{pool: defaultPool()}
}

// Generate samples min(5, len(pool)) events without replacement. The
// returned slice replaces the previous active news set wholesale.
func (g *Generator) Generate(rng *rand.Rand) []NewsEvent {
	n := maxEventsPerCycle
	if len(g.pool) < n {
		n = len(g.pool)
	}

	sampled := make([]NewsEvent, 0, n)
	for _, idx := range rng.Perm(len(g.pool))[:n] {
		sampled = append(sampled, g.pool[idx])
	}
	return sampled
}

// ClassifyTrend derives the trend label from the summed impact of the
// sampled set: above +0.1 is bull, below -0.1 is bear, otherwise stable.
func ClassifyTrend(events []NewsEvent) Trend {
	var sum float64
	for _, ev := range events {
		sum += ev.Impact
	}
	switch {
	case sum > bullThreshold:
		return TrendBull
	case sum < bearThreshold:
		return TrendBear
	default:
		return TrendStable
	}
}

func defaultPool() []NewsEvent {
	return []NewsEvent{
		// Macro, market-wide.
		{Type: NewsMacroPositive, Impact: 0.08, Headline: "Central bank signals steady rates through year end"},
		{Type: NewsMacroPositive, Impact: 0.06, Headline: "Consumer confidence index hits a two-year high"},
		{Type: NewsMacroPositive, Impact: 0.10, Headline: "Trade pact lifts export outlook across industries"},
		{Type: NewsMacroPositive, Impact: 0.05, Headline: "Unemployment falls for the fourth straight month"},
		{Type: NewsMacroNegative, Impact: -0.08, Headline: "Inflation print comes in hotter than forecast"},
		{Type: NewsMacroNegative, Impact: -0.06, Headline: "Factory orders slump on weak overseas demand"},
		{Type: NewsMacroNegative, Impact: -0.10, Headline: "Credit downgrade rattles institutional investors"},
		{Type: NewsMacroNegative, Impact: -0.05, Headline: "Retail sales miss estimates for the quarter"},

		// Sector-specific.
		{Type: NewsSector, Impact: 0.07, Sector: "Technology", Headline: "Chip breakthrough promises cheaper processing power"},
		{Type: NewsSector, Impact: -0.06, Sector: "Technology", Headline: "Regulators open antitrust probe into platform giants"},
		{Type: NewsSector, Impact: 0.05, Sector: "Finance", Headline: "Lenders report record quarterly margins"},
		{Type: NewsSector, Impact: -0.07, Sector: "Finance", Headline: "Bad-loan provisions surge at regional banks"},
		{Type: NewsSector, Impact: 0.08, Sector: "Energy", Headline: "Supply cuts push crude to a six-month high"},
		{Type: NewsSector, Impact: -0.05, Sector: "Energy", Headline: "Mild winter leaves energy inventories bloated"},
		{Type: NewsSector, Impact: 0.06, Sector: "Healthcare", Headline: "Late-stage trial results exceed expectations"},
		{Type: NewsSector, Impact: -0.04, Sector: "Healthcare", Headline: "Drug pricing bill advances in the legislature"},
		{Type: NewsSector, Impact: 0.04, Sector: "Consumer", Headline: "Harvest yields beat projections, cutting input costs"},
		{Type: NewsSector, Impact: -0.04, Sector: "Consumer", Headline: "Shipping bottlenecks squeeze grocery margins"},

		// Gold-specific.
		{Type: NewsGold, Impact: 0.05, Headline: "Safe-haven demand lifts bullion buying"},
		{Type: NewsGold, Impact: 0.03, Headline: "Central banks add to gold reserves"},
		{Type: NewsGold, Impact: -0.04, Headline: "Strong dollar weighs on precious metals"},
		{Type: NewsGold, Impact: -0.02, Headline: "Mining output rises as new veins come online"},
	}
}
