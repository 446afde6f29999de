package market

import (
	"context"
	"time"

	"bourse/internal/logger"
)

// Announcer delivers market announcements. Delivery is fire-and-forget;
// the scheduler never blocks on it and treats failures as non-fatal.
type Announcer interface {
	Announce(text string, fields map[string]interface{})
}

// StatePersister stores the engine snapshot after mutations.
type StatePersister interface {
	SaveState(snap StateSnapshot) error
}

// ValuationRecorder snapshots every user's portfolio valuation, called at
// market close.
type ValuationRecorder interface {
	RecordValuations(at time.Time) (int, error)
}

// Scheduler drives the two periodic jobs, price ticks and clock
// evaluation, on independent timers. Both funnel into the engine's
// single mutex, so they never run concurrently against the instrument
// map.
type Scheduler struct {
	engine     *Engine
	announcer  Announcer
	persister  StatePersister
	valuations ValuationRecorder

	tickEvery  time.Duration
	clockEvery time.Duration
}

// NewScheduler wires a scheduler. persister and valuations may be nil.
func NewScheduler(engine *Engine, announcer Announcer, persister StatePersister, valuations ValuationRecorder, tickEvery, clockEvery time.Duration) *Scheduler {
	return &Scheduler{
		engine:     engine,
		announcer:  announcer,
		persister:  persister,
		valuations: valuations,
		tickEvery:  tickEvery,
		clockEvery: clockEvery,
	}
}

// Run blocks until ctx is cancelled. The clock is evaluated immediately
// so the session state matches the wall clock from startup.
func (s *Scheduler) Run(ctx context.Context) {
	s.evaluateClock(time.Now())

	tick := time.NewTicker(s.tickEvery)
	defer tick.Stop()
	clock := time.NewTicker(s.clockEvery)
	defer clock.Stop()

	logger.Get().Infow("market scheduler started",
		"tick_interval", s.tickEvery.String(),
		"clock_interval", s.clockEvery.String(),
	)

	for {
		select {
		case <-ctx.Done():
			logger.Get().Info("market scheduler stopped")
			return
		case <-tick.C:
			s.engine.Tick()
			s.persist()
		case now := <-clock.C:
			s.evaluateClock(now)
		}
	}
}

func (s *Scheduler) evaluateClock(now time.Time) {
	change := s.engine.Evaluate(now)
	if change == nil {
		return
	}

	switch change.Event {
	case SessionOpened:
		logger.Get().Infow("market opened",
			"sentiment", change.Summary.Sentiment,
			"trend", change.Summary.Trend,
		)
		s.announce("The market is open for trading.", map[string]interface{}{
			"event":     string(SessionOpened),
			"sentiment": change.Summary.Sentiment,
			"trend":     change.Summary.Trend,
		})

	case SessionClosed:
		logger.Get().Infow("market closed",
			"sentiment", change.Summary.Sentiment,
			"trend", change.Summary.Trend,
			"volume", change.Summary.Volume,
		)
		s.announce("The market has closed.", map[string]interface{}{
			"event":      string(SessionClosed),
			"sentiment":  change.Summary.Sentiment,
			"trend":      change.Summary.Trend,
			"volume":     change.Summary.Volume,
			"top_movers": change.Summary.TopMovers,
		})

		if s.valuations != nil {
			count, err := s.valuations.RecordValuations(now)
			if err != nil {
				logger.Get().Warnw("valuation snapshots failed", "error", err)
			} else {
				logger.Get().Infow("valuation snapshots recorded", "count", count)
			}
		}
	}

	s.persist()
}

func (s *Scheduler) announce(text string, fields map[string]interface{}) {
	if s.announcer == nil {
		return
	}
	s.announcer.Announce(text, fields)
}

func (s *Scheduler) persist() {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveState(s.engine.Snapshot()); err != nil {
		logger.Get().Warnw("market state persistence failed", "error", err)
	}
}
