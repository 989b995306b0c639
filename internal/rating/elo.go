// internal/rating/elo.go
package rating

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Defaults for the logistic rating formula.
const (
	DefaultInitRating = 1500.0
	DefaultDValue     = 400.0
	DefaultKFactor    = 24.0
)

// Unit is the granularity at which ratings are recomputed.
type Unit string

const (
	UnitMatch      Unit = "match"
	UnitPass       Unit = "pass"
	UnitTournament Unit = "tournament"
)

// Valid reports whether u names a known rating unit.
func (u Unit) Valid() bool {
	switch u {
	case UnitMatch, UnitPass, UnitTournament:
		return true
	}
	return false
}

// Profile is a rating configuration. Its ID keys persistence alongside the
// team identity, so different D-value/K-factor profiles never collide.
type Profile struct {
	ID         string
	InitRating float64
	DValue     float64
	KFactor    float64
	UseMargin  bool
	Unit       Unit
}

// WithDefaults fills zero-valued fields with the standard constants.
func (p Profile) WithDefaults() Profile {
	if p.ID == "" {
		p.ID = "default"
	}
	if p.InitRating == 0 {
		p.InitRating = DefaultInitRating
	}
	if p.DValue == 0 {
		p.DValue = DefaultDValue
	}
	if p.KFactor == 0 {
		p.KFactor = DefaultKFactor
	}
	if p.Unit == "" {
		p.Unit = UnitPass
	}
	return p
}

// Outcome is one match result as seen by the rating engine: the two team
// names and their game-win counts.
type Outcome struct {
	TeamA, TeamB string
	WinsA, WinsB int
}

// TeamRating pairs a team name with its current rating.
type TeamRating struct {
	Team   string
	Rating float64
}

// Engine maintains one rating per team and applies a single aggregated
// logistic update per rating unit. All mutation is serialized behind a
// mutex so concurrent match completions never race on a team's record.
type Engine struct {
	profile Profile
	store   Store

	mu      sync.Mutex
	ratings map[string]float64
	history map[string][]float64
}

// NewEngine creates a rating engine over the given persisted store.
func NewEngine(profile Profile, store Store) *Engine {
	return &Engine{
		profile: profile.WithDefaults(),
		store:   store,
		ratings: make(map[string]float64),
		history: make(map[string][]float64),
	}
}

// Profile returns the engine's (defaulted) configuration.
func (e *Engine) Profile() Profile {
	return e.profile
}

// Load reads persisted ratings for the given teams, initializing missing
// (or, with reset set, all) teams to the profile's initial rating.
func (e *Engine) Load(ctx context.Context, teams []string, reset bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var persisted map[string]float64
	if !reset {
		var err error
		persisted, err = e.store.Load(ctx, e.profile.ID, teams)
		if err != nil {
			return fmt.Errorf("rating load (profile %q): %w", e.profile.ID, err)
		}
	}
	for _, team := range teams {
		r, ok := persisted[team]
		if !ok {
			r = e.profile.InitRating
		}
		e.ratings[team] = r
		e.history[team] = []float64{r}
	}
	return nil
}

// Rating returns the current rating for team (initial rating if unknown).
func (e *Engine) Rating(team string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if r, ok := e.ratings[team]; ok {
		return r
	}
	return e.profile.InitRating
}

// History returns the sequence of rating values for team within this run.
func (e *Engine) History(team string) []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]float64(nil), e.history[team]...)
}

// Sorted returns all loaded teams ordered by descending rating.
func (e *Engine) Sorted() []TeamRating {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]TeamRating, 0, len(e.ratings))
	for team, r := range e.ratings {
		out = append(out, TeamRating{Team: team, Rating: r})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Team < out[j].Team
	})
	return out
}

// Expected is the logistic expected score for a team rated ra against rb.
func (e *Engine) Expected(ra, rb float64) float64 {
	return 1.0 / (1.0 + math.Pow(10.0, (rb-ra)/e.profile.DValue))
}

// actualScore maps a match outcome to the actual score for side A: 1/0 on
// win/loss, or, with margin weighting, a value in (0,1) monotonic in the
// game-win margin. Side B's score is always 1 - actualA.
func (e *Engine) actualScore(o Outcome) float64 {
	if e.profile.UseMargin {
		games := o.WinsA + o.WinsB
		return 0.5 + 0.5*float64(o.WinsA-o.WinsB)/float64(games+1)
	}
	if o.WinsA > o.WinsB {
		return 1.0
	}
	return 0.0
}

// Update applies one rating-unit update for the given outcomes. All of a
// team's matches within the unit are aggregated into a single averaged
// expected/actual pair before the update, so the result does not depend on
// match ordering within the unit. Inbound ratings are fixed for the whole
// unit. Changes are in-memory until Flush.
func (e *Engine) Update(outcomes []Outcome) {
	e.mu.Lock()
	defer e.mu.Unlock()

	type accum struct {
		expected float64
		actual   float64
		n        int
	}
	acc := make(map[string]*accum)
	get := func(team string) *accum {
		a, ok := acc[team]
		if !ok {
			a = &accum{}
			acc[team] = a
		}
		return a
	}

	for _, o := range outcomes {
		ra, rb := e.rating(o.TeamA), e.rating(o.TeamB)
		ea := e.Expected(ra, rb)
		sa := e.actualScore(o)

		a, b := get(o.TeamA), get(o.TeamB)
		a.expected += ea
		a.actual += sa
		a.n++
		b.expected += 1.0 - ea
		b.actual += 1.0 - sa
		b.n++
	}

	for team, a := range acc {
		avgExp := a.expected / float64(a.n)
		avgAct := a.actual / float64(a.n)
		newRating := e.rating(team) + e.profile.KFactor*(avgAct-avgExp)
		e.ratings[team] = newRating
		e.history[team] = append(e.history[team], newRating)
	}
}

// rating is the lock-held variant of Rating.
func (e *Engine) rating(team string) float64 {
	if r, ok := e.ratings[team]; ok {
		return r
	}
	return e.profile.InitRating
}

// Flush durably writes the current ratings. On failure the in-memory
// ratings remain valid; the caller must report the non-durable update.
func (e *Engine) Flush(ctx context.Context) error {
	e.mu.Lock()
	snapshot := make(map[string]float64, len(e.ratings))
	for team, r := range e.ratings {
		snapshot[team] = r
	}
	e.mu.Unlock()

	if err := e.store.Save(ctx, e.profile.ID, snapshot); err != nil {
		return fmt.Errorf("rating flush (profile %q): %w", e.profile.ID, err)
	}
	return nil
}
