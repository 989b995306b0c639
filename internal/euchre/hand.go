// internal/euchre/hand.go
package euchre

import "strings"

// Hand is the unordered set of cards held by one seat. It mutates only by
// the dealer's single discard and by card removal on play.
type Hand struct {
	cards []Card
}

// NewHand wraps the given cards (the slice is copied).
func NewHand(cards []Card) *Hand {
	return &Hand{cards: append([]Card(nil), cards...)}
}

// Cards returns a copy of the hand's cards.
func (h *Hand) Cards() []Card {
	return append([]Card(nil), h.cards...)
}

// Len returns the number of cards held.
func (h *Hand) Len() int {
	return len(h.cards)
}

// Contains reports whether the hand holds card.
func (h *Hand) Contains(card Card) bool {
	for _, c := range h.cards {
		if c == card {
			return true
		}
	}
	return false
}

// Append adds a card to the hand (used for the dealer pickup).
func (h *Hand) Append(card Card) {
	h.cards = append(h.cards, card)
}

// Remove takes card out of the hand; returns false if not held.
func (h *Hand) Remove(card Card) bool {
	for i, c := range h.cards {
		if c == card {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return true
		}
	}
	return false
}

// HasSuit reports whether the hand holds any card of the given effective
// suit under trump.
func (h *Hand) HasSuit(suit, trump Suit) bool {
	for _, c := range h.cards {
		if c.EffSuit(trump) == suit {
			return true
		}
	}
	return false
}

// CanPlay reports whether card is a legal play given the led effective suit
// and trump: the hand must follow the led suit if able.
func (h *Hand) CanPlay(card Card, led, trump Suit) bool {
	if !h.Contains(card) {
		return false
	}
	if h.HasSuit(led, trump) && card.EffSuit(trump) != led {
		return false
	}
	return true
}

// Playable returns the legal plays for the given led suit and trump. If led
// is SuitNone (leading the trick), every held card is legal.
func (h *Hand) Playable(led, trump Suit) []Card {
	if led == SuitNone {
		return h.Cards()
	}
	var out []Card
	for _, c := range h.cards {
		if h.CanPlay(c, led, trump) {
			out = append(out, c)
		}
	}
	return out
}

// Copy returns an independent copy of the hand.
func (h *Hand) Copy() *Hand {
	return NewHand(h.cards)
}

func (h *Hand) String() string {
	tags := make([]string, len(h.cards))
	for i, c := range h.cards {
		tags[i] = c.String()
	}
	return strings.Join(tags, " ")
}
