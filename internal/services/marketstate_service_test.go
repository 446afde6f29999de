package services

import (
	"testing"
	"time"

	"bourse/internal/market"
	"bourse/internal/models"
	"bourse/internal/testutil"
)

func TestSaveAndLoadState(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMarketStateService(db)

		engine := newOpenMarket(t)
		engine.Tick()
		snap := engine.Snapshot()

		testutil.AssertNoError(t, svc.SaveState(snap))

		loaded, err := svc.LoadState()
		testutil.AssertNoError(t, err)
		if loaded == nil {
			t.Fatal("expected a snapshot")
		}

		if loaded.Open != snap.Open || loaded.Trend != snap.Trend {
			t.Errorf("session state not preserved: %+v vs %+v", loaded, snap)
		}
		testutil.AssertFloatEquals(t, loaded.Sentiment, snap.Sentiment, "sentiment")
		if len(loaded.Instruments) != len(snap.Instruments) {
			t.Fatalf("expected %d instruments, got %d", len(snap.Instruments), len(loaded.Instruments))
		}
		for i := range snap.Instruments {
			testutil.AssertFloatEquals(t, loaded.Instruments[i].Price, snap.Instruments[i].Price,
				snap.Instruments[i].Symbol+" price")
		}
	})

	t.Run("latest_row_wins", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMarketStateService(db)

		old := market.StateSnapshot{Sentiment: 0.1, LastUpdate: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
		recent := market.StateSnapshot{Sentiment: 0.7, LastUpdate: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)}

		testutil.AssertNoError(t, svc.SaveState(old))
		testutil.AssertNoError(t, svc.SaveState(recent))

		loaded, err := svc.LoadState()
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, loaded.Sentiment, 0.7, "sentiment of latest snapshot")
	})

	t.Run("empty_store_returns_nil", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMarketStateService(db)

		loaded, err := svc.LoadState()
		testutil.AssertNoError(t, err)
		if loaded != nil {
			t.Errorf("expected nil from an empty store, got %+v", loaded)
		}
	})

	t.Run("history_is_pruned", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMarketStateService(db)

		base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 105; i++ {
			snap := market.StateSnapshot{LastUpdate: base.Add(time.Duration(i) * time.Minute)}
			testutil.AssertNoError(t, svc.SaveState(snap))
		}

		var count int64
		db.Model(&models.MarketRecord{}).Count(&count)
		if count != 100 {
			t.Errorf("expected history pruned to 100 rows, got %d", count)
		}

		// The survivor set is the newest tail.
		loaded, err := svc.LoadState()
		testutil.AssertNoError(t, err)
		want := base.Add(104 * time.Minute)
		if !loaded.LastUpdate.Equal(want) {
			t.Errorf("expected latest snapshot %v, got %v", want, loaded.LastUpdate)
		}
	})
}
