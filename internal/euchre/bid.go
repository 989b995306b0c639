// internal/euchre/bid.go
package euchre

// Bid is one bidding decision: a called suit (or sentinel) plus the alone
// flag. A deal's bidding record is a sequence of up to eight Bids (two
// rounds of four seats), optionally followed by defend-alone responses.
type Bid struct {
	Suit  Suit
	Alone bool
}

// Convenience singletons matching the handful of non-suit bids.
var (
	PassBid     = Bid{Suit: SuitPass}
	NullBid     = Bid{Suit: SuitNull}
	DefendBid   = Bid{Suit: SuitDefend}
	DefendAlone = Bid{Suit: SuitDefend, Alone: true}
)

// IsPass reports whether the bid is a pass. If includeNull is set, the
// recorded placeholder for an unasked seat also counts.
func (b Bid) IsPass(includeNull bool) bool {
	if includeNull && b.Suit == SuitNull {
		return true
	}
	return b.Suit == SuitPass
}

// IsDefend reports whether the bid is a defense declaration.
func (b Bid) IsDefend() bool {
	return b.Suit == SuitDefend
}

// IsCall reports whether the bid names a real trump suit.
func (b Bid) IsCall() bool {
	return b.Suit.IsReal()
}

func (b Bid) String() string {
	s := b.Suit.String()
	if b.Alone {
		s += " alone"
	}
	return s
}
