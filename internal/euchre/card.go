// internal/euchre/card.go
package euchre

import (
	"fmt"
	"math/rand"
)

// Suit is one of the four card suits. The in-memory ordering is chosen so
// that the same-color suit (the "next" suit, holder of the left bower) is
// always idx^3: clubs<->spades, diamonds<->hearts.
type Suit int8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Sentinel suits used only inside Bid values; they never appear on a Card.
const (
	SuitNone   Suit = -1 // no suit chosen (unset contract)
	SuitPass   Suit = -2 // bid action: pass
	SuitNull   Suit = -3 // recorded placeholder for a seat not asked to bid
	SuitDefend Suit = -4 // bid action: defend against a lone hand
)

var suitTags = map[Suit]string{
	Clubs:    "♣",
	Diamonds: "♦",
	Hearts:   "♥",
	Spades:   "♠",
}

// IsReal reports whether s is an actual card suit (not a sentinel).
func (s Suit) IsReal() bool {
	return s >= Clubs && s <= Spades
}

// Next returns the same-color companion suit, i.e. the suit whose jack
// becomes the left bower when s is trump.
func (s Suit) Next() Suit {
	return s ^ 0x3
}

// Green returns the two off-color suits relative to s as trump.
func (s Suit) Green() [2]Suit {
	return [2]Suit{s ^ 0x1, s ^ 0x2}
}

func (s Suit) String() string {
	if tag, ok := suitTags[s]; ok {
		return tag
	}
	switch s {
	case SuitPass:
		return "pass"
	case SuitNull:
		return "null"
	case SuitDefend:
		return "defend"
	}
	return "none"
}

// Rank is a euchre card rank (nine through ace).
type Rank int8

const (
	Nine Rank = iota
	Ten
	Jack
	Queen
	King
	Ace
)

var rankTags = [...]string{"9", "10", "J", "Q", "K", "A"}

// Level is the natural (non-trump) strength of the rank, 1..6.
func (r Rank) Level() int {
	return int(r) + 1
}

func (r Rank) String() string {
	if r < Nine || r > Ace {
		return fmt.Sprintf("Rank(%d)", int8(r))
	}
	return rankTags[r]
}

// Levels for the promoted jacks, above the natural ace (level 6).
const (
	LeftLevel  = 7
	RightLevel = 8
)

// Card is an immutable card value. Effective rank and suit under a trump
// context are derived via EffLevel/EffSuit, never stored.
type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// EffSuit returns the card's suit under trump context; only the left bower
// differs from the printed suit.
func (c Card) EffSuit(trump Suit) Suit {
	if c.Rank == Jack && c.Suit == trump.Next() {
		return trump
	}
	return c.Suit
}

// EffLevel returns the card's strength under trump context. The trump jack
// maps to the right bower level, the next-suit jack to the left bower level;
// all other cards keep their natural level.
func (c Card) EffLevel(trump Suit) int {
	if c.Rank == Jack {
		if c.Suit == trump {
			return RightLevel
		}
		if c.Suit == trump.Next() {
			return LeftLevel
		}
	}
	return c.Rank.Level()
}

// IsTrump reports whether the card counts as trump (including left bower).
func (c Card) IsTrump(trump Suit) bool {
	return c.EffSuit(trump) == trump
}

// Beats reports whether c wins over other within a trick, given the
// effective led suit and trump. A trump card beats any non-trump card;
// among same effective suits, higher effective level wins; a card that
// neither follows nor trumps cannot win.
func (c Card) Beats(other Card, led, trump Suit) bool {
	cTrump, oTrump := c.IsTrump(trump), other.IsTrump(trump)
	switch {
	case cTrump && oTrump:
		return c.EffLevel(trump) > other.EffLevel(trump)
	case cTrump:
		return true
	case oTrump:
		return false
	}
	cFollows, oFollows := c.EffSuit(trump) == led, other.EffSuit(trump) == led
	switch {
	case cFollows && oFollows:
		return c.EffLevel(trump) > other.EffLevel(trump)
	case cFollows:
		return true
	default:
		return false
	}
}

// DeckSize is the number of cards in a euchre deck (9 through A, 4 suits).
const DeckSize = 24

// NewDeck returns an unshuffled 24-card euchre deck.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for s := Clubs; s <= Spades; s++ {
		for r := Nine; r <= Ace; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// ShuffledDeck returns a fresh deck shuffled with rng.
func ShuffledDeck(rng *rand.Rand) []Card {
	deck := NewDeck()
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}
