// internal/euchre/hand_test.go
package euchre

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandFollowSuit(t *testing.T) {
	trump := Spades
	hand := NewHand([]Card{
		{Jack, Clubs}, // left bower, effectively a spade
		{Ace, Hearts},
		{Nine, Diamonds},
	})

	// spades led: the left bower is the only legal play
	playable := hand.Playable(Spades, trump)
	assert.Equal(t, []Card{{Jack, Clubs}}, playable)
	assert.True(t, hand.CanPlay(Card{Jack, Clubs}, Spades, trump))
	assert.False(t, hand.CanPlay(Card{Ace, Hearts}, Spades, trump))

	// clubs led: the jack is not a club under spade trump, so with no real
	// clubs held anything goes
	playable = hand.Playable(Clubs, trump)
	assert.Len(t, playable, 3)

	// leading: everything is legal
	assert.Len(t, hand.Playable(SuitNone, trump), 3)
}

func TestHandRemove(t *testing.T) {
	hand := NewHand([]Card{{Ace, Hearts}, {Nine, Diamonds}})
	assert.True(t, hand.Remove(Card{Ace, Hearts}))
	assert.False(t, hand.Remove(Card{Ace, Hearts}), "double removal")
	assert.Equal(t, 1, hand.Len())
}

func TestPartnerAndTeam(t *testing.T) {
	assert.Equal(t, 2, Partner(0))
	assert.Equal(t, 0, Partner(2))
	assert.Equal(t, 3, Partner(1))
	for seat := 0; seat < NumSeats; seat++ {
		assert.Equal(t, TeamIdx(seat), TeamIdx(Partner(seat)), "partners share a team")
	}
}

func TestTrickWinnerTracking(t *testing.T) {
	trick := NewTrick(Spades)
	trick.PlayCard(0, Card{Ace, Hearts})
	assert.Equal(t, Hearts, trick.LedSuit)
	assert.Equal(t, 0, trick.WinningSeat)

	trick.PlayCard(1, Card{King, Hearts})
	assert.Equal(t, 0, trick.WinningSeat, "lower follower does not take")

	trick.PlayCard(2, Card{Nine, Spades})
	assert.Equal(t, 2, trick.WinningSeat, "trump takes the led ace")

	trick.PlayCard(3, Card{Jack, Clubs})
	assert.Equal(t, 3, trick.WinningSeat, "left bower takes low trump")
	assert.True(t, trick.Complete(4))
}
