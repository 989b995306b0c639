// internal/game/game.go
package game

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/crashka/euchre-plt/internal/euchre"
)

// DefaultGamePoints is the score threshold that ends a game.
const DefaultGamePoints = 10

// Options configures the game and match runners. The zero value is usable;
// defaults are applied by each runner.
type Options struct {
	GamePoints int // win threshold per game (default 10)
	MatchGames int // games needed to win a match (default 2)

	// FixedDealer pins the first dealer for every game instead of flipping
	// randomly; it is 1-based (1-4 for seats 0-3) so the zero value flips.
	FixedDealer int

	// RedealKeepsDealer keeps the same dealer on a passed deal instead of
	// rotating. Rotation is the default.
	RedealKeepsDealer bool
}

func (o Options) gamePoints() int {
	if o.GamePoints <= 0 {
		return DefaultGamePoints
	}
	return o.GamePoints
}

func (o Options) matchGames() int {
	if o.MatchGames <= 0 {
		return DefaultMatchGames
	}
	return o.MatchGames
}

// GameResult reports a finished game: final score by team index and the
// winning team index.
type GameResult struct {
	Score  [2]int
	Winner int
	Deals  int
	Stats  [2]Stats
}

// Game repeats deals, rotating the dealer, until one team's score reaches
// the win threshold. Team 0 holds seats 0/2, team 1 holds seats 1/3.
type Game struct {
	teams [2]*Team
	opts  Options
	rng   *rand.Rand
}

// NewGame creates a game between the two teams. rng drives shuffling and
// the dealer flip and must not be shared across concurrent matches.
func NewGame(teams [2]*Team, opts Options, rng *rand.Rand) *Game {
	return &Game{teams: teams, opts: opts, rng: rng}
}

// seatTeam maps a seat to its team index.
func seatTeam(seat int) int {
	return euchre.TeamIdx(seat)
}

// Run plays the game to completion.
func (g *Game) Run(ctx context.Context) (*GameResult, error) {
	var providers [euchre.NumSeats]euchre.DecisionProvider
	for seat := 0; seat < euchre.NumSeats; seat++ {
		providers[seat] = g.teams[seatTeam(seat)].Provider
	}

	dealer := g.opts.FixedDealer - 1
	if dealer < 0 || dealer >= euchre.NumSeats {
		dealer = g.rng.Intn(euchre.NumSeats)
	}

	res := &GameResult{}
	target := g.opts.gamePoints()
	for res.Score[0] < target && res.Score[1] < target {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		deal, err := NewDeal(providers, dealer, euchre.ShuffledDeck(g.rng))
		if err != nil {
			return nil, err
		}
		dr, err := deal.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("deal %d: %w", res.Deals+1, err)
		}
		res.Deals++
		tabulateDeal(&res.Stats, dr, seatTeam)
		if !dr.Passed {
			// seats 0 and 1 carry each team's shared point award
			res.Score[0] += dr.Points[0]
			res.Score[1] += dr.Points[1]
		}
		if !dr.Passed || !g.opts.RedealKeepsDealer {
			dealer = (dealer + 1) % euchre.NumSeats
		}
	}

	if res.Score[0] >= target {
		res.Winner = 0
	} else {
		res.Winner = 1
	}
	return res, nil
}
