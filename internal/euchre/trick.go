// internal/euchre/trick.go
package euchre

// NumSeats is the number of seats at the table; seats 0 and 2 are partners,
// as are 1 and 3.
const NumSeats = 4

// Partner returns the seat across the table.
func Partner(seat int) int {
	return seat ^ 0x2
}

// TeamIdx maps a seat to its team index (0 or 1).
func TeamIdx(seat int) int {
	return seat & 0x1
}

// Play is one card contributed to a trick by a seat.
type Play struct {
	Seat int
	Card Card
}

// Trick collects the plays of one trick. The led effective suit is fixed by
// the first card; the winner is tracked incrementally under the deal's
// trump. Seats sitting out (lone hands) simply never appear in Plays.
type Trick struct {
	Trump       Suit
	Plays       []Play
	LedSuit     Suit // SuitNone until the lead card is played
	WinningSeat int  // -1 until the lead card is played
	winningCard Card
}

// NewTrick starts an empty trick under the given trump.
func NewTrick(trump Suit) *Trick {
	return &Trick{Trump: trump, LedSuit: SuitNone, WinningSeat: -1}
}

// PlayCard records a play and returns true if it is the new winning card.
// Re-evaluation with the same cards and trump is deterministic: the winner
// depends only on effective levels under the fixed led suit and trump.
func (t *Trick) PlayCard(seat int, card Card) bool {
	t.Plays = append(t.Plays, Play{Seat: seat, Card: card})
	if t.LedSuit == SuitNone {
		t.LedSuit = card.EffSuit(t.Trump)
		t.WinningSeat = seat
		t.winningCard = card
		return true
	}
	if card.Beats(t.winningCard, t.LedSuit, t.Trump) {
		t.WinningSeat = seat
		t.winningCard = card
		return true
	}
	return false
}

// WinningCard returns the current winning card (zero Card before any play).
func (t *Trick) WinningCard() Card {
	return t.winningCard
}

// Complete reports whether all active seats have played.
func (t *Trick) Complete(activeSeats int) bool {
	return len(t.Plays) == activeSeats
}

// Copy returns a snapshot copy of the trick.
func (t *Trick) Copy() *Trick {
	cp := *t
	cp.Plays = append([]Play(nil), t.Plays...)
	return &cp
}
