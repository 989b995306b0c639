// internal/tournament/roundrobin.go
package tournament

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/crashka/euchre-plt/internal/game"
	"github.com/crashka/euchre-plt/internal/rating"
)

// roundRobin schedules every-vs-every passes using the circle method, with
// optional periodic elimination of the bottom of the field.
type roundRobin struct {
	*tourney
}

func (r *roundRobin) Run(ctx context.Context) (*Result, error) {
	if err := r.prepare(ctx); err != nil {
		return nil, err
	}

	origCount := len(r.teams)
	var eliminated []*game.Team // in elimination order, first out first
	stopped := false
	passesDone := 0

	for pass := 0; pass < r.cfg.Passes; pass++ {
		if ctx.Err() != nil {
			stopped = true
			break
		}
		active := r.activeTeams()
		if len(active) < 2 {
			break
		}
		r.log.WithFields(logrus.Fields{
			"tournament": r.cfg.Name,
			"pass":       pass + 1,
			"teams":      len(active),
		}).Info("round-robin pass")

		var passOutcomes []rating.Outcome
		for _, round := range circleRounds(active) {
			results, err := r.runMatches(ctx, round)
			if err != nil {
				return nil, err
			}
			outcomes := r.tabulate(results)
			r.applyRating(ctx, rating.UnitMatch, outcomes)
			passOutcomes = append(passOutcomes, outcomes...)
		}
		r.applyRating(ctx, rating.UnitPass, passOutcomes)
		passesDone++
		r.sink.PassResults(passesDone, r.leaderboard(r.activeTeams()))

		if cut := r.eliminationCut(pass, origCount); len(cut) > 0 {
			for _, tm := range cut {
				r.standings[tm.Name].Eliminated = true
				eliminated = append(eliminated, tm)
				r.log.WithField("team", tm.Name).Info("team eliminated")
			}
		}
	}

	r.finishRating(ctx)

	ranked := r.rankTeams(r.activeTeams())
	order := teamNames(ranked)
	for i := len(eliminated) - 1; i >= 0; i-- {
		order = append(order, eliminated[i].Name)
	}
	winner := []string{}
	if len(ranked) > 0 {
		winner = append(winner, ranked[0].Name)
	}
	res := r.result(winner, order, passesDone, stopped)
	r.sink.Winner(winner)
	return res, nil
}

// eliminationCut returns the teams to drop after the given pass, or nil.
// The cut size is a fixed fraction of the original field, and never shrinks
// the field below two teams.
func (r *roundRobin) eliminationCut(pass, origCount int) []*game.Team {
	if r.cfg.ElimPasses == 0 || (pass+1)%r.cfg.ElimPasses != 0 {
		return nil
	}
	n := origCount * r.cfg.ElimPct / 100
	if n < 1 {
		n = 1
	}
	active := r.rankTeams(r.activeTeams())
	if len(active)-n < 2 {
		n = len(active) - 2
	}
	if n <= 0 {
		return nil
	}
	return active[len(active)-n:]
}

// circleRounds produces the classic circle-method schedule: every pair of
// teams meets exactly once across the rounds, and each round's matchups are
// disjoint so they can run concurrently. An odd field gets a rotating bye.
func circleRounds(teams []*game.Team) [][]matchup {
	field := append([]*game.Team(nil), teams...)
	if len(field)%2 != 0 {
		field = append(field, nil) // bye marker
	}
	n := len(field)
	rounds := make([][]matchup, 0, n-1)
	for r := 0; r < n-1; r++ {
		var round []matchup
		for i := 0; i < n/2; i++ {
			a, b := field[i], field[n-1-i]
			if a == nil || b == nil {
				continue // sits out this round
			}
			round = append(round, matchup{a: a, b: b})
		}
		rounds = append(rounds, round)
		// rotate all but the first slot
		last := field[n-1]
		copy(field[2:], field[1:n-1])
		field[1] = last
	}
	return rounds
}
