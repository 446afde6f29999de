package market

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	apperrors "bourse/internal/errors"
)

// Tick constants for stocks: the independent earnings-surprise noise and
// the per-tick traded volume band.
const (
	earningsNoiseStd = 0.02
	volumeMin        = 1000
	volumeMax        = 10000
)

// Config configures an Engine. Zero-value fields fall back to defaults
// (09-17 UTC window, time-based seed, built-in universe).
type Config struct {
	OpenHour    int
	CloseHour   int
	Seed        int64
	Instruments []Instrument
	Macro       *MacroIndicators
}

// Engine owns all market state: the instrument map, active news, macro
// indicators, sentiment, and the session clock. Every public method takes
// the engine mutex, so price ticks, clock evaluation, and order execution
// are serialized against each other.
type Engine struct {
	mu sync.Mutex

	rng       *rand.Rand
	clock     *Clock
	generator *Generator

	instruments map[string]*Instrument
	symbols     []string // stable iteration order
	goldSymbol  string

	news      []NewsEvent
	macro     MacroIndicators
	sentiment float64
	trend     Trend

	lastUpdate  time.Time
	dailyVolume int64
}

// NewEngine validates the configuration and builds an engine. Invalid
// volatility or a malformed trading window is a construction error, never
// a runtime one.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.OpenHour == 0 && cfg.CloseHour == 0 {
		cfg.OpenHour, cfg.CloseHour = 9, 17
	}
	if cfg.OpenHour < 0 || cfg.CloseHour > 24 || cfg.OpenHour >= cfg.CloseHour {
		return nil, fmt.Errorf("invalid trading window %d-%d", cfg.OpenHour, cfg.CloseHour)
	}

	instruments := cfg.Instruments
	if len(instruments) == 0 {
		instruments = DefaultUniverse()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		rng:         rand.New(rand.NewSource(seed)),
		clock:       NewClock(cfg.OpenHour, cfg.CloseHour),
		generator:   NewGenerator(),
		instruments: make(map[string]*Instrument, len(instruments)),
		trend:       TrendStable,
	}

	for i := range instruments {
		inst := instruments[i]
		if inst.Symbol == "" {
			return nil, fmt.Errorf("instrument %d has no symbol", i)
		}
		if inst.Volatility <= 0 {
			return nil, fmt.Errorf("instrument %s: volatility must be positive, got %g", inst.Symbol, inst.Volatility)
		}
		if inst.Price <= 0 {
			return nil, fmt.Errorf("instrument %s: price must be positive, got %g", inst.Symbol, inst.Price)
		}
		if _, dup := e.instruments[inst.Symbol]; dup {
			return nil, fmt.Errorf("duplicate instrument symbol %s", inst.Symbol)
		}
		inst.PrevPrice = inst.Price
		inst.resetSession()
		e.instruments[inst.Symbol] = &inst
		e.symbols = append(e.symbols, inst.Symbol)
		if inst.Kind == KindGold {
			e.goldSymbol = inst.Symbol
		}
	}
	if e.goldSymbol == "" {
		return nil, fmt.Errorf("universe has no gold instrument")
	}

	if cfg.Macro != nil {
		e.macro = *cfg.Macro
	} else {
		e.macro = drawMacro(e.rng)
	}

	e.news = e.generator.Generate(e.rng)
	e.trend = ClassifyTrend(e.news)
	e.sentiment = ComputeSentiment(e.rng, e.macro, e.news, e.trend)

	return e, nil
}

// Tick advances every instrument by one simulated step. When the market
// is closed this is a no-op, not an error.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.clock.Open() {
		return
	}

	e.sentiment = ComputeSentiment(e.rng, e.macro, e.news, e.trend)

	for _, sym := range e.symbols {
		e.tickInstrument(e.instruments[sym])
	}
	e.lastUpdate = time.Now()
}

func (e *Engine) tickInstrument(inst *Instrument) {
	prev := inst.Price
	inst.PrevPrice = prev

	change := e.rng.NormFloat64() * inst.Volatility

	if inst.Kind == KindGold {
		change += e.sentiment * 0.01
	} else {
		change += e.sentiment * inst.Volatility * 2
	}

	for _, ev := range e.news {
		switch {
		case ev.Type == NewsSector && inst.Kind == KindStock && ev.Sector == inst.Sector:
			change += ev.Impact
		case ev.Type == NewsGold && inst.Kind == KindGold:
			change += ev.Impact * 0.5
		}
	}

	// Idiosyncratic earnings surprise, stocks only.
	if inst.Kind == KindStock {
		change += e.rng.NormFloat64() * earningsNoiseStd
	}

	next := inst.clampPrice(prev, prev*(1+change))
	inst.Price = next

	if next > inst.DayHigh {
		inst.DayHigh = next
	}
	if next < inst.DayLow {
		inst.DayLow = next
	}

	if inst.Kind == KindStock {
		vol := int64(volumeMin + e.rng.Intn(volumeMax-volumeMin+1))
		inst.Volume += vol
		e.dailyVolume += vol
	}
}

// SessionChange describes one clock transition for the scheduler to act
// on (announce, persist, snapshot valuations).
type SessionChange struct {
	Event   SessionEvent
	Summary SessionSummary
}

// SessionSummary is the state digest attached to session announcements.
type SessionSummary struct {
	Sentiment float64 `json:"sentiment"`
	Trend     Trend   `json:"trend"`
	Volume    int64   `json:"volume"`
	TopMovers []Mover `json:"top_movers"`
}

// Mover is one entry of the session's biggest percentage moves.
type Mover struct {
	Symbol    string  `json:"symbol"`
	ChangePct float64 `json:"change_pct"`
}

// Evaluate advances the session clock to match now. On an open transition
// it regenerates news, re-draws macro indicators, and resets intraday
// state; on close it only reports the summary. Returns nil when nothing
// changed.
func (e *Engine) Evaluate(now time.Time) *SessionChange {
	e.mu.Lock()
	defer e.mu.Unlock()

	event, changed := e.clock.Evaluate(now)
	if !changed {
		return nil
	}

	if event == SessionOpened {
		e.openSession()
	}
	e.lastUpdate = now

	return &SessionChange{Event: event, Summary: e.summary()}
}

func (e *Engine) openSession() {
	e.macro = drawMacro(e.rng)
	e.regenerateNews()

	for _, sym := range e.symbols {
		e.instruments[sym].resetSession()
	}
	e.dailyVolume = 0
}

// regenerateNews replaces the active news set and recomputes trend and
// sentiment. Callers must hold the engine mutex.
func (e *Engine) regenerateNews() {
	e.news = e.generator.Generate(e.rng)
	e.trend = ClassifyTrend(e.news)
	e.sentiment = ComputeSentiment(e.rng, e.macro, e.news, e.trend)
}

// RegenerateNews forces a fresh news cycle outside the normal open
// transition (admin override).
func (e *Engine) RegenerateNews() []NewsEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.regenerateNews()
	e.lastUpdate = time.Now()
	return append([]NewsEvent(nil), e.news...)
}

func (e *Engine) summary() SessionSummary {
	movers := make([]Mover, 0, len(e.symbols))
	for _, sym := range e.symbols {
		inst := e.instruments[sym]
		movers = append(movers, Mover{Symbol: sym, ChangePct: inst.DayChangePct()})
	}
	sort.Slice(movers, func(a, b int) bool {
		absA, absB := movers[a].ChangePct, movers[b].ChangePct
		if absA < 0 {
			absA = -absA
		}
		if absB < 0 {
			absB = -absB
		}
		return absA > absB
	})
	if len(movers) > 3 {
		movers = movers[:3]
	}

	return SessionSummary{
		Sentiment: e.sentiment,
		Trend:     e.trend,
		Volume:    e.dailyVolume,
		TopMovers: movers,
	}
}

// MarketView is the read surface order execution sees while holding the
// engine lock.
type MarketView interface {
	// Open reports whether trading is allowed right now.
	Open() bool
	// Quote returns the current unit price for gold or a stock symbol.
	Quote(kind Kind, symbol string) (float64, error)
	// RecordVolume adds executed trade quantity to an instrument's volume.
	RecordVolume(symbol string, qty int64)
}

type lockedView struct{ e *Engine }

func (v lockedView) Open() bool { return v.e.clock.Open() }

func (v lockedView) Quote(kind Kind, symbol string) (float64, error) {
	if kind == KindGold {
		symbol = v.e.goldSymbol
	}
	inst, ok := v.e.instruments[symbol]
	if !ok || inst.Kind != kind {
		return 0, apperrors.ErrUnknownSymbol
	}
	return inst.Price, nil
}

func (v lockedView) RecordVolume(symbol string, qty int64) {
	if inst, ok := v.e.instruments[symbol]; ok {
		inst.Volume += qty
		v.e.dailyVolume += qty
	}
}

// Execute runs fn while holding the engine lock, so a price tick can
// never land between the quote an order was validated at and the ledger
// debit that funds it.
func (e *Engine) Execute(fn func(view MarketView) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(lockedView{e})
}

// Open reports whether the market is currently open.
func (e *Engine) Open() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.Open()
}

// Instruments returns a copy of every instrument in stable order.
func (e *Engine) Instruments() []Instrument {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Instrument, 0, len(e.symbols))
	for _, sym := range e.symbols {
		out = append(out, *e.instruments[sym])
	}
	return out
}

// News returns a copy of the active news set in relevance order.
func (e *Engine) News() []NewsEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]NewsEvent(nil), e.news...)
}

// Macro returns the current macro indicators.
func (e *Engine) Macro() MacroIndicators {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.macro
}

// StateSnapshot is the JSON-serializable blob handed to the persistence
// collaborator. No schema beyond the entity shapes is prescribed.
type StateSnapshot struct {
	Open        bool            `json:"open"`
	Sentiment   float64         `json:"sentiment"`
	Trend       Trend           `json:"trend"`
	LastUpdate  time.Time       `json:"last_update"`
	DailyVolume int64           `json:"daily_volume"`
	Macro       MacroIndicators `json:"macro"`
	Instruments []Instrument    `json:"instruments"`
	News        []NewsEvent     `json:"news"`
}

// Snapshot captures the full market state.
func (e *Engine) Snapshot() StateSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	instruments := make([]Instrument, 0, len(e.symbols))
	for _, sym := range e.symbols {
		instruments = append(instruments, *e.instruments[sym])
	}

	return StateSnapshot{
		Open:        e.clock.Open(),
		Sentiment:   e.sentiment,
		Trend:       e.trend,
		LastUpdate:  e.lastUpdate,
		DailyVolume: e.dailyVolume,
		Macro:       e.macro,
		Instruments: instruments,
		News:        append([]NewsEvent(nil), e.news...),
	}
}

// Restore overwrites engine state from a persisted snapshot. Instruments
// unknown to the configured universe are ignored, so the universe can
// evolve between releases without breaking old snapshots. Saved entries
// that would not pass construction (non-positive price or volatility)
// are skipped, keeping the configured instrument instead.
func (e *Engine) Restore(snap StateSnapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range snap.Instruments {
		saved := snap.Instruments[i]
		if saved.Price <= 0 || saved.Volatility <= 0 {
			continue
		}
		if inst, ok := e.instruments[saved.Symbol]; ok && inst.Kind == saved.Kind {
			*inst = saved
		}
	}

	e.clock.setOpen(snap.Open)
	e.sentiment = snap.Sentiment
	if snap.Trend != "" {
		e.trend = snap.Trend
	}
	e.lastUpdate = snap.LastUpdate
	e.dailyVolume = snap.DailyVolume
	e.macro = snap.Macro
	if snap.News != nil {
		e.news = append([]NewsEvent(nil), snap.News...)
	}
}
