// internal/rating/elo_test.go
package rating

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, profile Profile) *Engine {
	t.Helper()
	e := NewEngine(profile, NewMemoryStore())
	require.NoError(t, e.Load(context.Background(), []string{"alpha", "beta"}, false))
	return e
}

func TestExpectedScore(t *testing.T) {
	e := newTestEngine(t, Profile{})
	assert.InDelta(t, 0.5, e.Expected(1500, 1500), 1e-9)
	assert.InDelta(t, 0.64, e.Expected(1600, 1500), 0.005)
	assert.InDelta(t, 1.0, e.Expected(1500, 1500)+e.Expected(1500, 1500), 1e-9, "expected scores sum to one")
}

func TestUpdateSingleWin(t *testing.T) {
	e := newTestEngine(t, Profile{KFactor: 16})
	e.Update([]Outcome{{TeamA: "alpha", TeamB: "beta", WinsA: 2, WinsB: 0}})

	assert.InDelta(t, 1508, e.Rating("alpha"), 1e-9)
	assert.InDelta(t, 1492, e.Rating("beta"), 1e-9)
}

func TestUpdateZeroSum(t *testing.T) {
	e := newTestEngine(t, Profile{UseMargin: true})
	e.Update([]Outcome{{TeamA: "alpha", TeamB: "beta", WinsA: 2, WinsB: 1}})

	total := e.Rating("alpha") + e.Rating("beta")
	assert.InDelta(t, 2*DefaultInitRating, total, 1e-9, "two-team updates are zero-sum")
}

func TestUpdateNoChangeOnExpectedResult(t *testing.T) {
	e := newTestEngine(t, Profile{})
	// equal ratings, one win each within the unit
	e.Update([]Outcome{
		{TeamA: "alpha", TeamB: "beta", WinsA: 2, WinsB: 0},
		{TeamA: "beta", TeamB: "alpha", WinsA: 2, WinsB: 0},
	})
	assert.InDelta(t, DefaultInitRating, e.Rating("alpha"), 1e-9)
	assert.InDelta(t, DefaultInitRating, e.Rating("beta"), 1e-9)
}

func TestUpdateOrderIndependentWithinUnit(t *testing.T) {
	outcomes := []Outcome{
		{TeamA: "alpha", TeamB: "beta", WinsA: 2, WinsB: 1},
		{TeamA: "beta", TeamB: "alpha", WinsA: 2, WinsB: 0},
	}
	e1 := newTestEngine(t, Profile{UseMargin: true})
	e1.Update(outcomes)

	e2 := newTestEngine(t, Profile{UseMargin: true})
	e2.Update([]Outcome{outcomes[1], outcomes[0]})

	assert.InDelta(t, e1.Rating("alpha"), e2.Rating("alpha"), 1e-9)
	assert.InDelta(t, e1.Rating("beta"), e2.Rating("beta"), 1e-9)
}

func TestMarginScore(t *testing.T) {
	e := newTestEngine(t, Profile{UseMargin: true})

	sweep := e.actualScore(Outcome{WinsA: 2, WinsB: 0})
	narrow := e.actualScore(Outcome{WinsA: 2, WinsB: 1})
	loss := e.actualScore(Outcome{WinsA: 0, WinsB: 2})

	assert.Greater(t, sweep, narrow, "larger margin scores higher")
	assert.Greater(t, narrow, 0.5)
	assert.Less(t, loss, 0.5)
	assert.Greater(t, sweep, 0.0)
	assert.Less(t, sweep, 1.0, "margin score stays inside (0,1)")
	assert.InDelta(t, 1.0, sweep+e.actualScore(Outcome{WinsA: 0, WinsB: 2}), 1e-9, "mirror outcomes are symmetric")
}

func TestHistoryAndSorted(t *testing.T) {
	e := newTestEngine(t, Profile{})
	e.Update([]Outcome{{TeamA: "alpha", TeamB: "beta", WinsA: 2, WinsB: 0}})

	hist := e.History("alpha")
	require.Len(t, hist, 2)
	assert.Equal(t, DefaultInitRating, hist[0])
	assert.Greater(t, hist[1], hist[0])

	sorted := e.Sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, "alpha", sorted[0].Team)
	assert.Equal(t, "beta", sorted[1].Team)
}

func TestLoadPersistedAndReset(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, "default", map[string]float64{"alpha": 1600}))

	e := NewEngine(Profile{}, store)
	require.NoError(t, e.Load(ctx, []string{"alpha", "beta"}, false))
	assert.Equal(t, 1600.0, e.Rating("alpha"), "persisted rating survives")
	assert.Equal(t, DefaultInitRating, e.Rating("beta"), "unknown team gets the initial rating")

	require.NoError(t, e.Load(ctx, []string{"alpha", "beta"}, true))
	assert.Equal(t, DefaultInitRating, e.Rating("alpha"), "reset discards persisted ratings")
}

func TestFlushRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	e := NewEngine(Profile{}, store)
	require.NoError(t, e.Load(ctx, []string{"alpha", "beta"}, false))
	e.Update([]Outcome{{TeamA: "alpha", TeamB: "beta", WinsA: 2, WinsB: 0}})
	require.NoError(t, e.Flush(ctx))

	e2 := NewEngine(Profile{}, store)
	require.NoError(t, e2.Load(ctx, []string{"alpha", "beta"}, false))
	assert.Equal(t, e.Rating("alpha"), e2.Rating("alpha"))
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/ratings.json"
	store := NewFileStore(path)
	require.NoError(t, store.Save(ctx, "p1", map[string]float64{"alpha": 1510.5}))

	loaded, err := store.Load(ctx, "p1", []string{"alpha", "beta"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"alpha": 1510.5}, loaded)
}
