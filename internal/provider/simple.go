// internal/provider/simple.go
package provider

import (
	"context"
	"fmt"
	"sort"

	"github.com/crashka/euchre-plt/internal/euchre"
)

// Aggressiveness bit flags for the Simple provider.
const (
	// AggrPreemptThird plays high from third seat even when the partner is
	// winning, instead of ducking.
	AggrPreemptThird = 0x01
	// AggrTakeHigh takes with the highest winning card from second or third
	// seat (fourth seat always takes low).
	AggrTakeHigh = 0x02
)

// Simple is a conservative heuristic player: it bids on trump length plus a
// bower or off-ace, leads high, ducks under a winning partner, and otherwise
// takes tricks as cheaply as possible.
type Simple struct {
	// Aggressive is a bitfield of Aggr* flags; zero is the stock behavior.
	Aggressive int
}

// NewSimple creates a simple heuristic provider.
func NewSimple() *Simple {
	return &Simple{}
}

// handProfile summarizes a hand against a candidate trump suit.
type handProfile struct {
	numTrump  int
	offAces   int
	numBowers int
}

func profile(hand []euchre.Card, trump euchre.Suit) handProfile {
	var p handProfile
	for _, c := range hand {
		if c.IsTrump(trump) {
			p.numTrump++
			if c.EffLevel(trump) >= euchre.LeftLevel {
				p.numBowers++
			}
		} else if c.Rank == euchre.Ace {
			p.offAces++
		}
	}
	return p
}

// goAlone applies the lone-hand rule: four or more trump with a bower, or
// three trump with a bower and an off-ace.
func (p handProfile) goAlone() bool {
	if p.numBowers == 0 {
		return false
	}
	return p.numTrump >= 4 || (p.numTrump == 3 && p.offAces > 0)
}

func (s *Simple) Bid(_ context.Context, state *euchre.DealState) (euchre.Bid, error) {
	if state.Contract != nil {
		// defend alone with four or more trump, or three trump and an off-ace
		p := profile(state.Hand, state.Contract.Suit)
		if p.numTrump >= 4 || (p.numTrump == 3 && p.offAces > 0) {
			return euchre.DefendAlone, nil
		}
		return euchre.PassBid, nil
	}

	if state.TurnCard != nil {
		p := profile(state.Hand, state.TurnSuit)
		if state.Seat == state.Dealer {
			// dealer counts the turn card as an extra trump
			p.numTrump++
			if state.TurnCard.Rank == euchre.Jack {
				p.numBowers++
			}
			if p.numTrump >= 2 && p.offAces > 0 {
				return euchre.Bid{Suit: state.TurnSuit, Alone: p.goAlone()}, nil
			}
		} else if p.numTrump >= 3 && (p.offAces > 0 || p.numBowers > 0) {
			return euchre.Bid{Suit: state.TurnSuit, Alone: p.goAlone()}, nil
		}
		return euchre.PassBid, nil
	}

	for suit := euchre.Clubs; suit <= euchre.Spades; suit++ {
		if suit == state.TurnSuit {
			continue
		}
		p := profile(state.Hand, suit)
		if p.numTrump >= 3 && (p.offAces > 0 || p.numBowers > 0) {
			return euchre.Bid{Suit: suit, Alone: p.goAlone()}, nil
		}
	}
	return euchre.PassBid, nil
}

// byLevel sorts cards descending by effective level, with all trump above
// all non-trump.
func byLevel(cards []euchre.Card, trump euchre.Suit) []euchre.Card {
	out := append([]euchre.Card(nil), cards...)
	key := func(c euchre.Card) int {
		lvl := c.EffLevel(trump)
		if c.IsTrump(trump) {
			lvl += euchre.RightLevel + 1
		}
		return lvl
	}
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) > key(out[j]) })
	return out
}

func (s *Simple) Discard(_ context.Context, state *euchre.DealState) (euchre.Card, error) {
	if state.Contract == nil {
		return euchre.Card{}, fmt.Errorf("discard requested with no contract")
	}
	ordered := byLevel(state.Hand, state.Contract.Suit)
	return ordered[len(ordered)-1], nil
}

func (s *Simple) PlayCard(_ context.Context, state *euchre.DealState) (euchre.Card, error) {
	trick := state.CurTrick()
	if trick == nil || state.Contract == nil {
		return euchre.Card{}, fmt.Errorf("play requested with no trick in progress")
	}
	trump := state.Contract.Suit
	playable := byLevel(state.Playable(), trump) // descending
	playSeq := len(trick.Plays)

	// leading: highest card
	if playSeq == 0 {
		return playable[0], nil
	}

	// partner winning: duck, unless pre-empting from third seat
	if trick.WinningSeat == euchre.Partner(state.Seat) {
		if s.Aggressive&AggrPreemptThird != 0 && playSeq == 2 {
			return playable[0], nil
		}
		return playable[len(playable)-1], nil
	}

	// opponents winning: take the trick if possible, cheaply unless
	// configured to take high before fourth seat
	winning := trick.WinningCard()
	takeHigh := s.Aggressive&AggrTakeHigh != 0 && playSeq < 3
	if takeHigh {
		for _, c := range playable {
			if c.Beats(winning, trick.LedSuit, trump) {
				return c, nil
			}
		}
	} else {
		for i := len(playable) - 1; i >= 0; i-- {
			if playable[i].Beats(winning, trick.LedSuit, trump) {
				return playable[i], nil
			}
		}
	}
	// can't take, slough the lowest
	return playable[len(playable)-1], nil
}
