// internal/game/game_test.go
package game

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crashka/euchre-plt/internal/euchre"
)

// testTeams builds two teams where team 0's provider orders up from seat 0
// and everyone else passes, so every deal produces a contract and the game
// always terminates.
func testTeams() [2]*Team {
	caller := &testProvider{bid: orderUpSeat0(false)}
	passer := &testProvider{}
	return [2]*Team{
		NewTeam("callers", 0, caller),
		NewTeam("passers", 1, passer),
	}
}

func TestGameRunsToThreshold(t *testing.T) {
	teams := testTeams()
	rng := rand.New(rand.NewSource(42))

	res, err := NewGame(teams, Options{}, rng).Run(context.Background())
	require.NoError(t, err)

	winner, loser := res.Score[res.Winner], res.Score[1-res.Winner]
	assert.GreaterOrEqual(t, winner, DefaultGamePoints)
	assert.Less(t, loser, DefaultGamePoints)
	assert.Positive(t, res.Deals)
	assert.Equal(t, res.Deals, res.Stats[0].DealsTotal)
	assert.Equal(t, res.Stats[0].DealsPlayed, res.Stats[1].DealsPlayed)
}

func TestGameCustomThreshold(t *testing.T) {
	teams := testTeams()
	rng := rand.New(rand.NewSource(7))

	res, err := NewGame(teams, Options{GamePoints: 5}, rng).Run(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Score[res.Winner], 5)
	assert.Less(t, res.Score[1-res.Winner], 5)
}

func TestGameCancellation(t *testing.T) {
	teams := testTeams()
	rng := rand.New(rand.NewSource(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewGame(teams, Options{}, rng).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatchBestOf(t *testing.T) {
	teams := testTeams()
	rng := rand.New(rand.NewSource(99))

	res, err := NewMatch(teams, Options{MatchGames: 2}, rng).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Wins[res.Winner])
	assert.Less(t, res.Wins[1-res.Winner], 2)
	assert.Len(t, res.GameScores, res.Wins[0]+res.Wins[1])
	assert.Equal(t, res.Wins[0], res.Stats[0].GamesWon)
	assert.Equal(t, res.Wins[1], res.Stats[1].GamesWon)
	assert.Equal(t, res.WinnerTeam(), res.Teams[res.Winner])
}

func TestMatchStopsAtTarget(t *testing.T) {
	teams := testTeams()
	rng := rand.New(rand.NewSource(3))

	res, err := NewMatch(teams, Options{MatchGames: 3}, rng).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Wins[res.Winner])
	games := res.Wins[0] + res.Wins[1]
	assert.LessOrEqual(t, games, 5, "best-of-five never exceeds five games")
}

func TestStatsTabulation(t *testing.T) {
	var stats [2]Stats
	res := &DealResult{
		Trump:     euchre.Spades,
		Caller:    0,
		CallPos:   2,
		TricksWon: [4]int{3, 2, 3, 2},
		Points:    [4]int{1, 0, 1, 0},
		Made:      true,
	}
	tabulateDeal(&stats, res, seatTeam)

	assert.Equal(t, 1, stats[0].Calls)
	assert.Equal(t, 1, stats[0].CallsMade)
	assert.Equal(t, 1, stats[0].CallsByPos[2])
	assert.Equal(t, 3, stats[0].Tricks)
	assert.Equal(t, 1, stats[0].Points)
	assert.Equal(t, 1, stats[1].Defenses)
	assert.Equal(t, 1, stats[1].DefLosses)
	assert.Equal(t, 0, stats[1].Points)
}
