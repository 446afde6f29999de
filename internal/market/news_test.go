package market

import (
	"math/rand"
	"testing"
)

func TestGenerate(t *testing.T) {
	t.Run("samples_at_most_five", func(t *testing.T) {
		g := NewGenerator()
		rng := rand.New(rand.NewSource(1))

		events := g.Generate(rng)
		if len(events) != maxEventsPerCycle {
			t.Fatalf("expected %d events, got %d", maxEventsPerCycle, len(events))
		}
	})

	t.Run("samples_without_replacement", func(t *testing.T) {
		g := NewGenerator()
		rng := rand.New(rand.NewSource(7))

		for i := 0; i < 50; i++ {
			events := g.Generate(rng)
			seen := make(map[string]bool, len(events))
			for _, ev := range events {
				if seen[ev.Headline] {
					t.Fatalf("duplicate headline in one cycle: %q", ev.Headline)
				}
				seen[ev.Headline] = true
			}
		}
	})

	t.Run("small_pool_returns_everything", func(t *testing.T) {
		g := &Generator{pool: []NewsEvent{
			{Type: NewsMacroPositive, Impact: 0.05, Headline: "a"},
			{Type: NewsMacroNegative, Impact: -0.05, Headline: "b"},
		}}
		rng := rand.New(rand.NewSource(1))

		events := g.Generate(rng)
		if len(events) != 2 {
			t.Fatalf("expected 2 events from pool of 2, got %d", len(events))
		}
	})

	t.Run("deterministic_under_seed", func(t *testing.T) {
		g := NewGenerator()

		a := g.Generate(rand.New(rand.NewSource(42)))
		b := g.Generate(rand.New(rand.NewSource(42)))

		if len(a) != len(b) {
			t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if a[i].Headline != b[i].Headline {
				t.Errorf("event %d differs: %q vs %q", i, a[i].Headline, b[i].Headline)
			}
		}
	})
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name    string
		impacts []float64
		want    Trend
	}{
		{"strongly_positive", []float64{0.08, 0.07}, TrendBull},
		{"strongly_negative", []float64{-0.08, -0.07}, TrendBear},
		{"mixed_nets_out", []float64{0.08, -0.06}, TrendStable},
		{"exactly_at_bull_threshold", []float64{0.1}, TrendStable},
		{"exactly_at_bear_threshold", []float64{-0.1}, TrendStable},
		{"just_over_bull_threshold", []float64{0.11}, TrendBull},
		{"empty", nil, TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := make([]NewsEvent, len(tt.impacts))
			for i, impact := range tt.impacts {
				events[i] = NewsEvent{Type: NewsMacroPositive, Impact: impact}
			}
			if got := ClassifyTrend(events); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
