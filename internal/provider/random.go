// internal/provider/random.go

// Package provider contains the built-in DecisionProvider implementations:
// a uniform-random baseline, a simple heuristic player, and a websocket
// bridge to an external decision service.
package provider

import (
	"context"
	"math/rand"
	"sync"

	"github.com/crashka/euchre-plt/internal/euchre"
)

// Random picks uniformly among the legal actions at every decision point.
// It is the baseline opponent for calibrating other providers' ratings.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom creates a random provider with its own seeded source.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (p *Random) intn(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Intn(n)
}

func (p *Random) Bid(_ context.Context, state *euchre.DealState) (euchre.Bid, error) {
	var options []euchre.Bid
	switch {
	case state.Contract != nil:
		// defend-alone query
		options = []euchre.Bid{euchre.PassBid, euchre.DefendBid, euchre.DefendAlone}
	case state.TurnCard != nil:
		options = []euchre.Bid{
			euchre.PassBid,
			{Suit: state.TurnSuit},
			{Suit: state.TurnSuit, Alone: true},
		}
	default:
		options = []euchre.Bid{euchre.PassBid}
		for s := euchre.Clubs; s <= euchre.Spades; s++ {
			if s == state.TurnSuit {
				continue
			}
			options = append(options, euchre.Bid{Suit: s}, euchre.Bid{Suit: s, Alone: true})
		}
	}
	return options[p.intn(len(options))], nil
}

func (p *Random) Discard(_ context.Context, state *euchre.DealState) (euchre.Card, error) {
	return state.Hand[p.intn(len(state.Hand))], nil
}

func (p *Random) PlayCard(_ context.Context, state *euchre.DealState) (euchre.Card, error) {
	playable := state.Playable()
	return playable[p.intn(len(playable))], nil
}
