// internal/tournament/ladder.go
package tournament

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/crashka/euchre-plt/internal/game"
	"github.com/crashka/euchre-plt/internal/rating"
)

// challengeLadder runs repeated bottom-up challenges: each team in turn
// challenges the team directly above it, and a successful challenge swaps
// the two positions. Challenge rounds are inherently sequential since a
// swap changes the next pairing.
type challengeLadder struct {
	*tourney

	ladder []*game.Team
}

func (l *challengeLadder) Run(ctx context.Context) (*Result, error) {
	if err := l.prepare(ctx); err != nil {
		return nil, err
	}
	l.ladder = append([]*game.Team(nil), l.teams...)

	stopped := false
	passesDone := 0
	for pass := 0; pass < l.cfg.Passes; pass++ {
		if ctx.Err() != nil {
			stopped = true
			break
		}
		l.log.WithFields(logrus.Fields{
			"tournament": l.cfg.Name,
			"pass":       pass + 1,
		}).Info("ladder pass")

		var passOutcomes []rating.Outcome
		for pos := len(l.ladder) - 1; pos >= 1; pos-- {
			outcomes, challengerWon, err := l.challenge(ctx, pos)
			if err != nil {
				return nil, err
			}
			if challengerWon {
				l.ladder[pos-1], l.ladder[pos] = l.ladder[pos], l.ladder[pos-1]
			}
			passOutcomes = append(passOutcomes, outcomes...)
		}
		l.applyRating(ctx, rating.UnitPass, passOutcomes)
		passesDone++
		l.sink.PassResults(passesDone, l.leaderboard(l.ladder))
	}

	l.finishRating(ctx)

	order := teamNames(l.ladder)
	winner := []string{order[0]}
	res := l.result(winner, order, passesDone, stopped)
	l.sink.Winner(winner)
	return res, nil
}

// challenge plays the team at pos against the one above it, first side to
// the configured match-win count. Reports whether the challenger took the
// round.
func (l *challengeLadder) challenge(ctx context.Context, pos int) ([]rating.Outcome, bool, error) {
	incumbent, challenger := l.ladder[pos-1], l.ladder[pos]
	wins := [2]int{} // incumbent, challenger
	var outcomes []rating.Outcome

	for wins[0] < l.cfg.RoundMatches && wins[1] < l.cfg.RoundMatches {
		results, err := l.runMatches(ctx, []matchup{{a: incumbent, b: challenger}})
		if err != nil {
			return nil, false, err
		}
		out := l.tabulate(results)
		l.applyRating(ctx, rating.UnitMatch, out)
		outcomes = append(outcomes, out...)
		wins[results[0].Winner]++
	}
	challengerWon := wins[1] >= l.cfg.RoundMatches
	if challengerWon {
		l.log.WithFields(logrus.Fields{
			"challenger": challenger.Name,
			"incumbent":  incumbent.Name,
			"position":   pos - 1,
		}).Debug("ladder positions swapped")
	}
	return outcomes, challengerWon, nil
}
