// internal/tournament/headtohead.go
package tournament

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/crashka/euchre-plt/internal/rating"
)

// headToHead plays a fixed series of matches between exactly two teams;
// each match is its own pass.
type headToHead struct {
	*tourney
}

func (h *headToHead) Run(ctx context.Context) (*Result, error) {
	if err := h.prepare(ctx); err != nil {
		return nil, err
	}

	stopped := false
	passesDone := 0
	for pass := 0; pass < h.cfg.Passes; pass++ {
		if ctx.Err() != nil {
			stopped = true
			break
		}
		results, err := h.runMatches(ctx, []matchup{{a: h.teams[0], b: h.teams[1]}})
		if err != nil {
			return nil, err
		}
		outcomes := h.tabulate(results)
		h.applyRating(ctx, rating.UnitMatch, outcomes)
		h.applyRating(ctx, rating.UnitPass, outcomes)
		passesDone++
		h.sink.PassResults(passesDone, h.leaderboard(h.teams))
		h.log.WithFields(logrus.Fields{
			"tournament": h.cfg.Name,
			"match":      passesDone,
			"winner":     results[0].WinnerTeam().Name,
		}).Info("head-to-head match")
	}

	h.finishRating(ctx)

	ranked := h.rankTeams(h.teams)
	order := teamNames(ranked)
	winner := []string{order[0]}
	res := h.result(winner, order, passesDone, stopped)
	h.sink.Winner(winner)
	return res, nil
}
