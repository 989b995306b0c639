// internal/tournament/elimination.go
package tournament

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/crashka/euchre-plt/internal/game"
	"github.com/crashka/euchre-plt/internal/rating"
)

// elimPairings splits the field for one knockout round. With an odd count
// the top seed among the remaining teams gets the bye; the rest pair best
// against worst. Field must already be in seed order.
func elimPairings(field []*game.Team) (bye *game.Team, pairings []matchup) {
	rest := field
	if len(rest)%2 != 0 {
		bye, rest = rest[0], rest[1:]
	}
	for i := 0; i < len(rest)/2; i++ {
		pairings = append(pairings, matchup{a: rest[i], b: rest[len(rest)-1-i]})
	}
	return bye, pairings
}

func sortBySeed(teams []*game.Team) []*game.Team {
	out := append([]*game.Team(nil), teams...)
	sort.Slice(out, func(i, j int) bool { return out[i].Seed < out[j].Seed })
	return out
}

// singleElim is a knockout bracket: lose once and you are out. Each round
// is a pass; byes are re-derived per round so at most one team sits out.
type singleElim struct {
	*tourney
}

func (s *singleElim) Run(ctx context.Context) (*Result, error) {
	if err := s.prepare(ctx); err != nil {
		return nil, err
	}

	survivors := sortBySeed(s.teams)
	var eliminated []*game.Team // first out first
	stopped := false
	round := 0

	for len(survivors) > 1 {
		if ctx.Err() != nil {
			stopped = true
			break
		}
		round++
		bye, pairings := elimPairings(survivors)
		s.log.WithFields(logrus.Fields{
			"tournament": s.cfg.Name,
			"round":      round,
			"matches":    len(pairings),
			"bye":        bye != nil,
		}).Info("elimination round")

		results, err := s.runMatches(ctx, pairings)
		if err != nil {
			return nil, err
		}
		outcomes := s.tabulate(results)
		s.applyRating(ctx, rating.UnitMatch, outcomes)
		s.applyRating(ctx, rating.UnitPass, outcomes)

		next := make([]*game.Team, 0, len(pairings)+1)
		if bye != nil {
			next = append(next, bye)
		}
		var out []*game.Team
		for _, res := range results {
			next = append(next, res.WinnerTeam())
			out = append(out, res.Teams[1-res.Winner])
		}
		// rank the round's losers among themselves for the final order
		out = s.rankTeams(out)
		for i := len(out) - 1; i >= 0; i-- {
			s.standings[out[i].Name].Eliminated = true
			eliminated = append(eliminated, out[i])
		}
		survivors = sortBySeed(next)
		s.sink.PassResults(round, s.leaderboard(s.teams))
	}

	s.finishRating(ctx)

	order := teamNames(s.rankTeams(survivors))
	for i := len(eliminated) - 1; i >= 0; i-- {
		order = append(order, eliminated[i].Name)
	}
	var winner []string
	if !stopped && len(survivors) == 1 {
		winner = []string{survivors[0].Name}
	} else if len(order) > 0 {
		winner = []string{order[0]}
	}
	res := s.result(winner, order, round, stopped)
	s.sink.Winner(winner)
	return res, nil
}

// doubleElim runs a winners and a losers bracket; a team is out after its
// second loss. The losers-bracket survivor meets the winners-bracket champ
// in a grand final, with a second deciding match if the undefeated side
// takes its first loss there.
type doubleElim struct {
	*tourney
}

func (d *doubleElim) Run(ctx context.Context) (*Result, error) {
	if err := d.prepare(ctx); err != nil {
		return nil, err
	}

	wb := sortBySeed(d.teams)
	var lb []*game.Team
	var eliminated []*game.Team
	stopped := false
	round := 0

	for len(wb) > 1 || len(lb) > 1 {
		if ctx.Err() != nil {
			stopped = true
			break
		}
		round++
		var roundOutcomes []rating.Outcome

		if len(wb) > 1 {
			bye, pairings := elimPairings(wb)
			results, err := d.runMatches(ctx, pairings)
			if err != nil {
				return nil, err
			}
			outcomes := d.tabulate(results)
			d.applyRating(ctx, rating.UnitMatch, outcomes)
			roundOutcomes = append(roundOutcomes, outcomes...)

			next := []*game.Team{}
			if bye != nil {
				next = append(next, bye)
			}
			for _, res := range results {
				next = append(next, res.WinnerTeam())
				lb = append(lb, res.Teams[1-res.Winner])
			}
			wb = sortBySeed(next)
			lb = sortBySeed(lb)
		}

		if len(lb) > 1 {
			bye, pairings := elimPairings(lb)
			results, err := d.runMatches(ctx, pairings)
			if err != nil {
				return nil, err
			}
			outcomes := d.tabulate(results)
			d.applyRating(ctx, rating.UnitMatch, outcomes)
			roundOutcomes = append(roundOutcomes, outcomes...)

			next := []*game.Team{}
			if bye != nil {
				next = append(next, bye)
			}
			var out []*game.Team
			for _, res := range results {
				next = append(next, res.WinnerTeam())
				out = append(out, res.Teams[1-res.Winner])
			}
			out = d.rankTeams(out)
			for i := len(out) - 1; i >= 0; i-- {
				d.standings[out[i].Name].Eliminated = true
				eliminated = append(eliminated, out[i])
			}
			lb = sortBySeed(next)
		}

		d.applyRating(ctx, rating.UnitPass, roundOutcomes)
		d.sink.PassResults(round, d.leaderboard(d.teams))
		d.log.WithFields(logrus.Fields{
			"tournament": d.cfg.Name,
			"round":      round,
			"wb":         len(wb),
			"lb":         len(lb),
		}).Info("double-elimination round")
	}

	var champion, runnerUp *game.Team
	if !stopped && len(wb) == 1 && len(lb) == 1 {
		var err error
		champion, runnerUp, err = d.grandFinal(ctx, wb[0], lb[0], &round)
		if err != nil {
			return nil, err
		}
		d.standings[runnerUp.Name].Eliminated = true
	}

	d.finishRating(ctx)

	var order []string
	var winner []string
	if champion != nil {
		winner = []string{champion.Name}
		order = []string{champion.Name, runnerUp.Name}
	} else {
		order = teamNames(d.rankTeams(append(wb, lb...)))
		if len(order) > 0 {
			winner = []string{order[0]}
		}
	}
	for i := len(eliminated) - 1; i >= 0; i-- {
		order = append(order, eliminated[i].Name)
	}
	res := d.result(winner, order, round, stopped)
	d.sink.Winner(winner)
	return res, nil
}

// grandFinal plays the winners-bracket champ against the losers-bracket
// survivor. The undefeated side must be beaten twice: a first loss forces
// one deciding rematch.
func (d *doubleElim) grandFinal(ctx context.Context, undefeated, contender *game.Team, round *int) (champion, runnerUp *game.Team, err error) {
	decider := false
	for {
		*round++
		results, err := d.runMatches(ctx, []matchup{{a: undefeated, b: contender}})
		if err != nil {
			return nil, nil, err
		}
		outcomes := d.tabulate(results)
		d.applyRating(ctx, rating.UnitMatch, outcomes)
		d.applyRating(ctx, rating.UnitPass, outcomes)
		d.sink.PassResults(*round, d.leaderboard(d.teams))

		win := results[0].WinnerTeam()
		if win == undefeated || decider {
			lose := results[0].Teams[1-results[0].Winner]
			return win, lose, nil
		}
		// bracket reset: both sides now carry one loss
		decider = true
		d.log.WithFields(logrus.Fields{
			"tournament": d.cfg.Name,
			"winner":     win.Name,
		}).Info("grand final reset, deciding match")
	}
}
