// internal/euchre/provider.go
package euchre

import "context"

// DealState is the immutable snapshot handed to a DecisionProvider on every
// decision call. It is rebuilt from the deal after each transition, so a
// provider running on its own goroutine never aliases live engine state.
type DealState struct {
	Seat      int
	Dealer    int
	Hand      []Card // copy of the seat's current hand
	TurnCard  *Card  // nil once turned down (second bid round)
	TurnSuit  Suit   // turn card's suit, kept after the turn-down
	Bids      []Bid  // full bidding record so far
	Tricks    []*Trick
	Contract  *Bid // nil until a suit is called
	Caller    int  // -1 until a suit is called
	GoAlone   bool
	DefAlone  bool
	DefSeat   int    // -1 unless a defender declared alone
	TricksWon [4]int // by seat, shared with partner
	Points    [4]int // by seat, only set once scored
}

// BidRound returns 1 or 2 for the current bidding round. Only meaningful
// while bidding (before the contract is set).
func (s *DealState) BidRound() int {
	return len(s.Bids)/NumSeats + 1
}

// CurTrick returns the trick in progress, or nil before play starts.
func (s *DealState) CurTrick() *Trick {
	if len(s.Tricks) == 0 {
		return nil
	}
	return s.Tricks[len(s.Tricks)-1]
}

// Playable returns the legal plays for this seat in the current trick.
func (s *DealState) Playable() []Card {
	hand := NewHand(s.Hand)
	cur := s.CurTrick()
	if cur == nil || s.Contract == nil {
		return hand.Cards()
	}
	return hand.Playable(cur.LedSuit, s.Contract.Suit)
}

// IsCaller reports whether this seat called the contract.
func (s *DealState) IsCaller() bool {
	return s.Contract != nil && s.Seat == s.Caller
}

// IsPartnerCaller reports whether this seat's partner called the contract.
func (s *DealState) IsPartnerCaller() bool {
	return s.Contract != nil && Partner(s.Seat) == s.Caller
}

// EventType identifies a lifecycle notification sent to providers that
// implement Notifier.
type EventType string

const (
	EventTrickComplete EventType = "trick_complete"
	EventDealComplete  EventType = "deal_complete"
)

// DecisionProvider supplies the bid, discard, and play decisions for the
// seats bound to it. Implementations must return a legal action for the
// presented state; an illegal return is a contract violation surfaced as
// ErrIllegalAction by the deal engine, not a recoverable game event. The
// error return is for collaborator I/O failures (e.g. a remote provider).
type DecisionProvider interface {
	// Bid is called for every bidding opportunity: both ordinary rounds
	// and, after a lone call, the defend-alone query to each opponent.
	Bid(ctx context.Context, state *DealState) (Bid, error)

	// Discard is called only for the dealer after a first-round order-up;
	// state.Hand holds six cards and exactly one must be returned.
	Discard(ctx context.Context, state *DealState) (Card, error)

	// PlayCard is called for every card play opportunity.
	PlayCard(ctx context.Context, state *DealState) (Card, error)
}

// Notifier is optionally implemented by a DecisionProvider to receive
// lifecycle events (trick complete, deal complete).
type Notifier interface {
	Notify(event EventType, state *DealState)
}
