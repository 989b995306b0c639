// internal/provider/simple_test.go
package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crashka/euchre-plt/internal/euchre"
)

func card(r euchre.Rank, s euchre.Suit) euchre.Card {
	return euchre.Card{Rank: r, Suit: s}
}

func bidState(hand []euchre.Card, turn euchre.Card, seat, dealer int) *euchre.DealState {
	return &euchre.DealState{
		Seat:     seat,
		Dealer:   dealer,
		Hand:     hand,
		TurnCard: &turn,
		TurnSuit: turn.Suit,
		Caller:   -1,
		DefSeat:  -1,
	}
}

func TestSimpleBidsStrongHand(t *testing.T) {
	p := NewSimple()
	// three spades including the right bower plus an off-ace
	hand := []euchre.Card{
		card(euchre.Jack, euchre.Spades),
		card(euchre.Ace, euchre.Spades),
		card(euchre.Ten, euchre.Spades),
		card(euchre.Ace, euchre.Hearts),
		card(euchre.Nine, euchre.Diamonds),
	}
	bid, err := p.Bid(context.Background(), bidState(hand, card(euchre.King, euchre.Spades), 0, 3))
	require.NoError(t, err)
	assert.Equal(t, euchre.Spades, bid.Suit)
	assert.True(t, bid.Alone, "three trump with a bower and an off-ace goes alone")
}

func TestSimplePassesJunk(t *testing.T) {
	p := NewSimple()
	hand := []euchre.Card{
		card(euchre.Nine, euchre.Hearts),
		card(euchre.Ten, euchre.Hearts),
		card(euchre.Queen, euchre.Diamonds),
		card(euchre.Nine, euchre.Clubs),
		card(euchre.Ten, euchre.Clubs),
	}
	bid, err := p.Bid(context.Background(), bidState(hand, card(euchre.King, euchre.Spades), 0, 3))
	require.NoError(t, err)
	assert.True(t, bid.IsPass(false))
}

func TestSimpleDealerCountsTurnCard(t *testing.T) {
	p := NewSimple()
	// only one spade in hand, but the turn card makes two plus an off-ace
	hand := []euchre.Card{
		card(euchre.King, euchre.Spades),
		card(euchre.Ace, euchre.Hearts),
		card(euchre.Nine, euchre.Diamonds),
		card(euchre.Ten, euchre.Diamonds),
		card(euchre.Nine, euchre.Clubs),
	}
	bid, err := p.Bid(context.Background(), bidState(hand, card(euchre.Queen, euchre.Spades), 3, 3))
	require.NoError(t, err)
	assert.Equal(t, euchre.Spades, bid.Suit, "dealer counts the turn card as trump")

	// same hand from a non-dealer seat is a pass
	bid, err = p.Bid(context.Background(), bidState(hand, card(euchre.Queen, euchre.Spades), 1, 3))
	require.NoError(t, err)
	assert.True(t, bid.IsPass(false))
}

func TestSimpleSecondRoundBid(t *testing.T) {
	p := NewSimple()
	hand := []euchre.Card{
		card(euchre.Jack, euchre.Hearts),
		card(euchre.Ace, euchre.Hearts),
		card(euchre.King, euchre.Hearts),
		card(euchre.Ace, euchre.Clubs),
		card(euchre.Nine, euchre.Diamonds),
	}
	state := &euchre.DealState{
		Seat:     0,
		Dealer:   3,
		Hand:     hand,
		TurnSuit: euchre.Spades, // turned down; spades not callable
		Caller:   -1,
		DefSeat:  -1,
	}
	bid, err := p.Bid(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, euchre.Hearts, bid.Suit)
}

func TestSimpleDefendAlone(t *testing.T) {
	p := NewSimple()
	contract := &euchre.Bid{Suit: euchre.Spades, Alone: true}
	state := &euchre.DealState{
		Seat:     1,
		Dealer:   3,
		Contract: contract,
		Caller:   0,
		GoAlone:  true,
		DefSeat:  -1,
		Hand: []euchre.Card{
			card(euchre.Jack, euchre.Spades),
			card(euchre.Jack, euchre.Clubs),
			card(euchre.Ace, euchre.Spades),
			card(euchre.King, euchre.Spades),
			card(euchre.Nine, euchre.Hearts),
		},
	}
	bid, err := p.Bid(context.Background(), state)
	require.NoError(t, err)
	assert.True(t, bid.IsDefend())
	assert.True(t, bid.Alone)

	state.Hand = []euchre.Card{
		card(euchre.Nine, euchre.Hearts),
		card(euchre.Ten, euchre.Hearts),
		card(euchre.Queen, euchre.Diamonds),
		card(euchre.Nine, euchre.Clubs),
		card(euchre.Ten, euchre.Clubs),
	}
	bid, err = p.Bid(context.Background(), state)
	require.NoError(t, err)
	assert.True(t, bid.IsPass(false), "weak hand declines to defend alone")
}

func TestSimpleDiscardLowest(t *testing.T) {
	p := NewSimple()
	contract := &euchre.Bid{Suit: euchre.Spades}
	state := &euchre.DealState{
		Seat:     3,
		Dealer:   3,
		Contract: contract,
		Caller:   0,
		DefSeat:  -1,
		Hand: []euchre.Card{
			card(euchre.Ace, euchre.Spades),
			card(euchre.King, euchre.Spades),
			card(euchre.Ace, euchre.Hearts),
			card(euchre.King, euchre.Diamonds),
			card(euchre.Nine, euchre.Clubs),
			card(euchre.Queen, euchre.Spades),
		},
	}
	discard, err := p.Discard(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, card(euchre.Nine, euchre.Clubs), discard, "lowest off-suit card goes")
}

func playState(hand []euchre.Card, trick *euchre.Trick, seat int) *euchre.DealState {
	contract := &euchre.Bid{Suit: euchre.Spades}
	return &euchre.DealState{
		Seat:     seat,
		Dealer:   3,
		Hand:     hand,
		Contract: contract,
		Caller:   0,
		DefSeat:  -1,
		Tricks:   []*euchre.Trick{trick},
	}
}

func TestSimpleLeadsHigh(t *testing.T) {
	p := NewSimple()
	hand := []euchre.Card{
		card(euchre.Nine, euchre.Hearts),
		card(euchre.Ace, euchre.Spades),
		card(euchre.King, euchre.Diamonds),
	}
	got, err := p.PlayCard(context.Background(), playState(hand, euchre.NewTrick(euchre.Spades), 0))
	require.NoError(t, err)
	assert.Equal(t, card(euchre.Ace, euchre.Spades), got)
}

func TestSimpleDucksUnderPartner(t *testing.T) {
	p := NewSimple()
	trick := euchre.NewTrick(euchre.Spades)
	trick.PlayCard(2, card(euchre.Ace, euchre.Hearts)) // partner of seat 0 is winning
	trick.PlayCard(3, card(euchre.Nine, euchre.Hearts))

	hand := []euchre.Card{
		card(euchre.King, euchre.Hearts),
		card(euchre.Ten, euchre.Hearts),
	}
	got, err := p.PlayCard(context.Background(), playState(hand, trick, 0))
	require.NoError(t, err)
	assert.Equal(t, card(euchre.Ten, euchre.Hearts), got, "ducks when the partner holds the trick")
}

func TestSimpleTakesCheaply(t *testing.T) {
	p := NewSimple()
	trick := euchre.NewTrick(euchre.Spades)
	trick.PlayCard(3, card(euchre.Nine, euchre.Hearts)) // opponent of seat 0 leads

	hand := []euchre.Card{
		card(euchre.Ace, euchre.Hearts),
		card(euchre.Queen, euchre.Hearts),
		card(euchre.Ten, euchre.Hearts),
	}
	got, err := p.PlayCard(context.Background(), playState(hand, trick, 0))
	require.NoError(t, err)
	assert.Equal(t, card(euchre.Ten, euchre.Hearts), got, "takes with the cheapest winner")

	p.Aggressive = AggrTakeHigh
	got, err = p.PlayCard(context.Background(), playState(hand, trick, 0))
	require.NoError(t, err)
	assert.Equal(t, card(euchre.Ace, euchre.Hearts), got, "aggressive mode takes high early")
}

func TestRandomStaysLegal(t *testing.T) {
	p := NewRandom(1)
	trick := euchre.NewTrick(euchre.Spades)
	trick.PlayCard(3, card(euchre.Ace, euchre.Hearts))

	hand := []euchre.Card{
		card(euchre.Nine, euchre.Hearts),
		card(euchre.Ace, euchre.Diamonds),
		card(euchre.King, euchre.Clubs),
	}
	state := playState(hand, trick, 0)
	for i := 0; i < 50; i++ {
		got, err := p.PlayCard(context.Background(), state)
		require.NoError(t, err)
		assert.Equal(t, card(euchre.Nine, euchre.Hearts), got, "must follow suit when able")
	}
}

func TestRandomBidsLegally(t *testing.T) {
	p := NewRandom(2)
	hand := []euchre.Card{card(euchre.Nine, euchre.Hearts)}
	state := bidState(hand, card(euchre.King, euchre.Spades), 0, 3)
	for i := 0; i < 50; i++ {
		bid, err := p.Bid(context.Background(), state)
		require.NoError(t, err)
		if !bid.IsPass(false) {
			assert.Equal(t, euchre.Spades, bid.Suit, "first round can only order up the turn suit")
		}
	}

	state.TurnCard = nil // second round
	for i := 0; i < 50; i++ {
		bid, err := p.Bid(context.Background(), state)
		require.NoError(t, err)
		if !bid.IsPass(false) {
			assert.NotEqual(t, euchre.Spades, bid.Suit, "turned-down suit is not callable")
		}
	}
}
