// internal/game/match.go
package game

import (
	"context"
	"fmt"
	"math/rand"
)

// DefaultMatchGames is the number of game wins needed to take a match.
const DefaultMatchGames = 2

// MatchResult reports a finished match, including the full game-score log
// for margin-sensitive rating.
type MatchResult struct {
	Teams      [2]*Team
	Wins       [2]int
	Winner     int
	GameScores [][2]int
	Stats      [2]Stats
}

// WinnerTeam returns the winning team.
func (r *MatchResult) WinnerTeam() *Team {
	return r.Teams[r.Winner]
}

// Match repeats games between two teams until one reaches the configured
// games-to-win count.
type Match struct {
	teams [2]*Team
	opts  Options
	rng   *rand.Rand
}

// NewMatch creates a match between the two teams. rng must be exclusive to
// this match; concurrent matches each get their own source.
func NewMatch(teams [2]*Team, opts Options, rng *rand.Rand) *Match {
	return &Match{teams: teams, opts: opts, rng: rng}
}

// Run plays games until one team reaches the games-to-win threshold and
// stops immediately at that point.
func (m *Match) Run(ctx context.Context) (*MatchResult, error) {
	res := &MatchResult{Teams: m.teams}
	target := m.opts.matchGames()
	for res.Wins[0] < target && res.Wins[1] < target {
		gr, err := NewGame(m.teams, m.opts, m.rng).Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("match %s vs %s: %w", m.teams[0], m.teams[1], err)
		}
		res.Wins[gr.Winner]++
		res.GameScores = append(res.GameScores, gr.Score)
		for i := 0; i < 2; i++ {
			res.Stats[i].Add(&gr.Stats[i])
			res.Stats[i].GamesPlayed++
		}
		res.Stats[gr.Winner].GamesWon++
	}

	if res.Wins[0] >= target {
		res.Winner = 0
	} else {
		res.Winner = 1
	}
	return res, nil
}
