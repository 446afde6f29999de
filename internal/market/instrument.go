// Package market implements the simulated financial market: instrument
// price evolution, macro sentiment, news events, and the session clock.
// One Engine instance is shared by all users; every mutation goes through
// its single mutex.
package market

// Kind distinguishes the two tradable asset classes.
type Kind string

const (
	KindStock Kind = "stock"
	KindGold  Kind = "gold"
)

// Price clamp parameters. Stocks are clamped relative to the pre-tick
// price, so prices are a random walk without mean reversion; gold is
// clamped to an absolute band.
const (
	stockClampLow  = 0.1
	stockClampHigh = 10.0
	goldFloor      = 100.0
	goldCeiling    = 5000.0
)

// Instrument is one tradable asset: a sector stock or gold. DayOpen,
// DayHigh, DayLow, and Volume are reset at each market open.
type Instrument struct {
	Kind       Kind    `json:"kind"`
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Sector     string  `json:"sector,omitempty"`
	Price      float64 `json:"price"`
	PrevPrice  float64 `json:"prev_price"`
	Volatility float64 `json:"volatility"`
	DayOpen    float64 `json:"day_open"`
	DayHigh    float64 `json:"day_high"`
	DayLow     float64 `json:"day_low"`
	Volume     int64   `json:"volume"`
}

// clampPrice bounds a candidate price for this instrument. prev is the
// pre-tick price the relative stock bounds are taken from.
func (i *Instrument) clampPrice(prev, next float64) float64 {
	var lo, hi float64
	if i.Kind == KindGold {
		lo, hi = goldFloor, goldCeiling
	} else {
		lo, hi = prev*stockClampLow, prev*stockClampHigh
	}
	if next < lo {
		return lo
	}
	if next > hi {
		return hi
	}
	return next
}

// DayChangePct returns the percentage move since the session opened.
func (i *Instrument) DayChangePct() float64 {
	if i.DayOpen == 0 {
		return 0
	}
	return (i.Price - i.DayOpen) / i.DayOpen * 100
}

// resetSession rebases the intraday extremes and volume on the current
// price at a market-open transition.
func (i *Instrument) resetSession() {
	i.DayOpen = i.Price
	i.DayHigh = i.Price
	i.DayLow = i.Price
	i.Volume = 0
}

// DefaultUniverse returns the built-in instrument set: gold plus eight
// sector stocks.
func DefaultUniverse() []Instrument {
	return []Instrument{
		{Kind: KindGold, Symbol: "XAU", Name: "Gold", Price: 1850.0, Volatility: 0.005},
		{Kind: KindStock, Symbol: "TECH", Name: "Techtron Systems", Sector: "Technology", Price: 150.0, Volatility: 0.03},
		{Kind: KindStock, Symbol: "BYTE", Name: "ByteWorks Software", Sector: "Technology", Price: 88.0, Volatility: 0.035},
		{Kind: KindStock, Symbol: "BANK", Name: "First Meridian Bank", Sector: "Finance", Price: 64.0, Volatility: 0.02},
		{Kind: KindStock, Symbol: "FUND", Name: "Crownvale Capital", Sector: "Finance", Price: 112.0, Volatility: 0.025},
		{Kind: KindStock, Symbol: "ENRG", Name: "Helios Energy", Sector: "Energy", Price: 75.0, Volatility: 0.04},
		{Kind: KindStock, Symbol: "DRIL", Name: "Northfield Drilling", Sector: "Energy", Price: 42.0, Volatility: 0.045},
		{Kind: KindStock, Symbol: "HEAL", Name: "Vitacore Health", Sector: "Healthcare", Price: 97.0, Volatility: 0.022},
		{Kind: KindStock, Symbol: "FOOD", Name: "Granary Foods", Sector: "Consumer", Price: 55.0, Volatility: 0.018},
	}
}
