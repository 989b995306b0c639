// internal/tournament/tournament.go
package tournament

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/crashka/euchre-plt/internal/game"
	"github.com/crashka/euchre-plt/internal/rating"
)

// Format selects one of the closed set of tournament formats. Unknown
// names are rejected at construction, not at use time.
type Format string

const (
	FormatRoundRobin      Format = "round_robin"
	FormatChallengeLadder Format = "challenge_ladder"
	FormatSingleElim      Format = "single_elim"
	FormatDoubleElim      Format = "double_elim"
	FormatHeadToHead      Format = "head_to_head"
)

// ConfigError reports malformed or inconsistent tournament parameters,
// detected at setup before any match runs.
type ConfigError string

func (e ConfigError) Error() string { return string(e) }

// Config holds the format selector and per-format parameters.
type Config struct {
	Name   string
	Format Format
	Game   game.Options

	// Passes is the number of scheduling cycles: round-robin passes,
	// ladder traversals, or head-to-head matches. Elimination formats
	// derive their round count from the field and ignore it.
	Passes int

	// Round-robin elimination: after every ElimPasses passes, the bottom
	// ElimPct percent (of the original field) is dropped. Zero disables.
	ElimPasses int
	ElimPct    int

	// RoundMatches is the match wins needed to take a ladder challenge.
	RoundMatches int

	// Seed drives all shuffling and dealer flips; zero means time-based.
	Seed int64

	Rating       rating.Profile
	ResetRatings bool
}

func (c *Config) applyDefaults() {
	if c.Passes <= 0 {
		c.Passes = 1
	}
	if c.RoundMatches <= 0 {
		c.RoundMatches = 1
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
}

func (c *Config) validate(numTeams int) error {
	if numTeams < 2 {
		return ConfigError("at least two teams required")
	}
	if c.Format == FormatHeadToHead && numTeams != 2 {
		return ConfigError(fmt.Sprintf("head_to_head requires exactly 2 teams, got %d", numTeams))
	}
	if c.Passes < 0 {
		return ConfigError("passes cannot be negative")
	}
	if c.ElimPasses < 0 || c.ElimPct < 0 || c.ElimPct > 100 {
		return ConfigError("invalid elimination parameters")
	}
	if c.ElimPasses > 0 && c.ElimPct == 0 {
		return ConfigError("elim_passes set without elim_pct")
	}
	if c.Rating.Unit != "" && !c.Rating.Unit.Valid() {
		return ConfigError(fmt.Sprintf("unknown rating unit %q", c.Rating.Unit))
	}
	return nil
}

// Standing is one team's cumulative tournament record.
type Standing struct {
	Team          *game.Team
	MatchesPlayed int
	MatchesWon    int
	Stats         game.Stats
	Eliminated    bool
}

// WinPct is the team's match win percentage (0 with no matches played).
func (s *Standing) WinPct() float64 {
	if s.MatchesPlayed == 0 {
		return 0
	}
	return float64(s.MatchesWon) / float64(s.MatchesPlayed) * 100.0
}

// LeaderboardRow is one reporting row handed to the ReportSink.
type LeaderboardRow struct {
	Team       string
	Wins       int
	Losses     int
	WinPct     float64
	Points     int
	Rating     float64
	WinPctRank int
	RatingRank int
}

// ReportSink receives per-pass leaderboards and the final winner
// declaration; serialization is the consumer's concern.
type ReportSink interface {
	PassResults(passNum int, rows []LeaderboardRow)
	Winner(teams []string)
}

type nopSink struct{}

func (nopSink) PassResults(int, []LeaderboardRow) {}
func (nopSink) Winner([]string)                   {}

// Result is the outcome of a tournament run.
type Result struct {
	Winner    []string             // winning team name(s)
	Order     []string             // full final ranking, best first
	Standings map[string]*Standing // by team name
	Passes    int                  // passes actually completed

	// Stopped is set when a cooperative stop request took effect at a
	// pass boundary before the configured end.
	Stopped bool

	// RatingsDurable is false when a rating store write failed; in-memory
	// standings and ratings remain valid.
	RatingsDurable bool
}

// Scheduler drives one tournament to completion.
type Scheduler interface {
	Run(ctx context.Context) (*Result, error)
}

type builder func(*tourney) Scheduler

// formats is the closed registry of known schedulers.
var formats = map[Format]builder{
	FormatRoundRobin:      func(t *tourney) Scheduler { return &roundRobin{tourney: t} },
	FormatChallengeLadder: func(t *tourney) Scheduler { return &challengeLadder{tourney: t} },
	FormatSingleElim:      func(t *tourney) Scheduler { return &singleElim{tourney: t} },
	FormatDoubleElim:      func(t *tourney) Scheduler { return &doubleElim{tourney: t} },
	FormatHeadToHead:      func(t *tourney) Scheduler { return &headToHead{tourney: t} },
}

// New validates the configuration and returns the scheduler for the
// configured format. The rating engine is loaded with all roster teams
// before any match runs.
func New(cfg Config, teams []*game.Team, engine *rating.Engine, sink ReportSink, logger *logrus.Logger) (Scheduler, error) {
	cfg.applyDefaults()
	if err := cfg.validate(len(teams)); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(teams))
	for _, tm := range teams {
		if seen[tm.Name] {
			return nil, ConfigError(fmt.Sprintf("duplicate team name %q", tm.Name))
		}
		seen[tm.Name] = true
	}
	build, ok := formats[cfg.Format]
	if !ok {
		return nil, ConfigError(fmt.Sprintf("unknown tournament format %q", cfg.Format))
	}
	if sink == nil {
		sink = nopSink{}
	}
	if logger == nil {
		logger = logrus.New()
	}

	t := &tourney{
		cfg:       cfg,
		teams:     teams,
		engine:    engine,
		sink:      sink,
		log:       logger,
		standings: make(map[string]*Standing, len(teams)),
		durable:   true,
	}
	for _, tm := range teams {
		t.standings[tm.Name] = &Standing{Team: tm}
	}
	return build(t), nil
}

// tourney carries the state and helpers shared by all format drivers.
type tourney struct {
	cfg    Config
	teams  []*game.Team
	engine *rating.Engine
	sink   ReportSink
	log    *logrus.Logger

	standings map[string]*Standing
	pending   []rating.Outcome // outcomes awaiting a tournament-unit update
	matchSeq  int64            // per-match RNG stream counter
	durable   bool
}

// prepare loads persisted ratings for the roster (resetting if requested).
func (t *tourney) prepare(ctx context.Context) error {
	names := make([]string, len(t.teams))
	for i, tm := range t.teams {
		names[i] = tm.Name
	}
	return t.engine.Load(ctx, names, t.cfg.ResetRatings)
}

// matchup is one scheduled pairing within a pass.
type matchup struct {
	a, b *game.Team
}

// runMatches executes the pass's matchups, each on its own goroutine so a
// blocking decision provider stalls only its own match. It joins on all of
// them before returning; standings are tabulated by the caller afterwards,
// at the pass boundary. A cooperative stop never interrupts a running
// match, so matches get a non-cancelable context.
func (t *tourney) runMatches(ctx context.Context, pairings []matchup) ([]*game.MatchResult, error) {
	matchCtx := context.WithoutCancel(ctx)
	results := make([]*game.MatchResult, len(pairings))
	errs := make([]error, len(pairings))

	var wg sync.WaitGroup
	for i, p := range pairings {
		seq := t.matchSeq
		t.matchSeq++
		wg.Add(1)
		go func(i int, p matchup, rng *rand.Rand) {
			defer wg.Done()
			m := game.NewMatch([2]*game.Team{p.a, p.b}, t.cfg.Game, rng)
			results[i], errs[i] = m.Run(matchCtx)
		}(i, p, rand.New(rand.NewSource(t.cfg.Seed+seq)))
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			// default policy: abort and report rather than forfeit,
			// since silent forfeiture would corrupt ratings
			return nil, fmt.Errorf("match %s vs %s failed: %w",
				pairings[i].a, pairings[i].b, err)
		}
	}
	return results, nil
}

// tabulate folds completed match results into the standings and returns
// the rating outcomes for the batch.
func (t *tourney) tabulate(results []*game.MatchResult) []rating.Outcome {
	outcomes := make([]rating.Outcome, 0, len(results))
	for _, res := range results {
		for i := 0; i < 2; i++ {
			st := t.standings[res.Teams[i].Name]
			st.MatchesPlayed++
			if i == res.Winner {
				st.MatchesWon++
			}
			st.Stats.Add(&res.Stats[i])
		}
		outcomes = append(outcomes, rating.Outcome{
			TeamA: res.Teams[0].Name,
			TeamB: res.Teams[1].Name,
			WinsA: res.Wins[0],
			WinsB: res.Wins[1],
		})
		t.log.WithFields(logrus.Fields{
			"tournament": t.cfg.Name,
			"winner":     res.WinnerTeam().Name,
			"score":      fmt.Sprintf("%d-%d", res.Wins[0], res.Wins[1]),
		}).Debug("match complete")
	}
	return outcomes
}

// applyRating performs rating updates for a batch of outcomes at the given
// unit boundary, flushing the store afterwards. A persistence failure is
// reported, not fatal: in-memory ratings stay valid.
func (t *tourney) applyRating(ctx context.Context, unit rating.Unit, outcomes []rating.Outcome) {
	profileUnit := t.engine.Profile().Unit
	switch {
	case profileUnit == rating.UnitMatch && unit == rating.UnitMatch:
		for _, o := range outcomes {
			t.engine.Update([]rating.Outcome{o})
		}
	case profileUnit == unit:
		t.engine.Update(outcomes)
	case profileUnit == rating.UnitTournament:
		// every outcome reaches exactly one pass-level call, so accumulate
		// there and flush only at tournament end
		if unit == rating.UnitPass {
			t.pending = append(t.pending, outcomes...)
		}
		return
	default:
		return
	}

	if err := t.engine.Flush(ctx); err != nil {
		t.durable = false
		t.log.WithError(err).Warn("rating update not durably persisted")
	}
}

// finishRating applies any tournament-unit update and does the final flush.
func (t *tourney) finishRating(ctx context.Context) {
	if t.engine.Profile().Unit == rating.UnitTournament && len(t.pending) > 0 {
		t.engine.Update(t.pending)
		t.pending = nil
	}
	if err := t.engine.Flush(ctx); err != nil {
		t.durable = false
		t.log.WithError(err).Warn("rating update not durably persisted")
	}
}

// rankTeams orders teams by the fixed tie-break policy: win percentage,
// then rating, then raw win count, then registration order.
func (t *tourney) rankTeams(teams []*game.Team) []*game.Team {
	out := append([]*game.Team(nil), teams...)
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := t.standings[out[i].Name], t.standings[out[j].Name]
		if si.WinPct() != sj.WinPct() {
			return si.WinPct() > sj.WinPct()
		}
		ri, rj := t.engine.Rating(out[i].Name), t.engine.Rating(out[j].Name)
		if ri != rj {
			return ri > rj
		}
		if si.MatchesWon != sj.MatchesWon {
			return si.MatchesWon > sj.MatchesWon
		}
		return out[i].Seed < out[j].Seed
	})
	return out
}

// leaderboard builds reporting rows for the given teams in rank order.
func (t *tourney) leaderboard(teams []*game.Team) []LeaderboardRow {
	ranked := t.rankTeams(teams)
	rows := make([]LeaderboardRow, len(ranked))
	winPcts := make([]float64, len(ranked))
	ratings := make([]float64, len(ranked))
	for i, tm := range ranked {
		st := t.standings[tm.Name]
		rows[i] = LeaderboardRow{
			Team:   tm.Name,
			Wins:   st.MatchesWon,
			Losses: st.MatchesPlayed - st.MatchesWon,
			WinPct: st.WinPct(),
			Points: st.Stats.Points,
			Rating: t.engine.Rating(tm.Name),
		}
		winPcts[i] = rows[i].WinPct
		ratings[i] = rows[i].Rating
	}
	for i := range rows {
		rows[i].WinPctRank = minRank(winPcts, winPcts[i])
		rows[i].RatingRank = minRank(ratings, ratings[i])
	}
	return rows
}

// minRank is rank with ties sharing the best position (1-based).
func minRank(vals []float64, v float64) int {
	rank := 1
	for _, other := range vals {
		if other > v {
			rank++
		}
	}
	return rank
}

// activeTeams returns the non-eliminated roster in registration order.
func (t *tourney) activeTeams() []*game.Team {
	var out []*game.Team
	for _, tm := range t.teams {
		if !t.standings[tm.Name].Eliminated {
			out = append(out, tm)
		}
	}
	return out
}

// result assembles the final Result for the given ranking order.
func (t *tourney) result(winner []string, order []string, passes int, stopped bool) *Result {
	return &Result{
		Winner:         winner,
		Order:          order,
		Standings:      t.standings,
		Passes:         passes,
		Stopped:        stopped,
		RatingsDurable: t.durable,
	}
}

func teamNames(teams []*game.Team) []string {
	names := make([]string, len(teams))
	for i, tm := range teams {
		names[i] = tm.Name
	}
	return names
}
