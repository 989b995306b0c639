// internal/game/deal.go
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/crashka/euchre-plt/internal/euchre"
)

// ErrIllegalAction marks a protocol violation by a DecisionProvider: an
// illegal bid, discard, or play. It is fatal to the deal and indicates a
// defect in the provider, never a recoverable game event.
var ErrIllegalAction = errors.New("illegal action from decision provider")

// HandSize is the number of cards dealt to each seat.
const HandSize = 5

// DealResult is the scored outcome of one deal, folded into the owning
// game and then discarded.
type DealResult struct {
	Passed    bool // all eight bid slots passed; no points awarded
	Trump     euchre.Suit
	Caller    int
	GoAlone   bool
	DefAlone  bool
	DefSeat   int
	TricksWon [4]int
	Points    [4]int

	// result attributes for stats tabulation
	Made    bool // calling side took >= 3 tricks
	AllFive bool // calling side took all 5
	Euchred bool // defending side took >= 3 tricks
	CallPos int  // 0-7, bid slot at which the contract was called
}

// Deal runs one hand to completion: deal, two-round bidding, optional
// discard and lone declarations, five tricks, scoring. The deck is consumed
// as given; shuffling is the caller's concern.
type Deal struct {
	providers [euchre.NumSeats]euchre.DecisionProvider
	dealer    int
	deck      []euchre.Card

	hands      [euchre.NumSeats]*euchre.Hand
	turnCard   euchre.Card
	turnedDown bool
	buries     []euchre.Card
	bids       []euchre.Bid
	tricks     []*euchre.Trick
	contract   *euchre.Bid
	caller     int
	callPos    int
	goAlone    bool
	defAlone   bool
	defSeat    int
	tricksWon  [euchre.NumSeats]int
	points     [euchre.NumSeats]int
}

// NewDeal creates a deal for the given seat providers, dealer seat, and a
// full 24-card deck.
func NewDeal(providers [euchre.NumSeats]euchre.DecisionProvider, dealer int, deck []euchre.Card) (*Deal, error) {
	if len(deck) != euchre.DeckSize {
		return nil, fmt.Errorf("deal: expected %d-card deck, got %d", euchre.DeckSize, len(deck))
	}
	if dealer < 0 || dealer >= euchre.NumSeats {
		return nil, fmt.Errorf("deal: invalid dealer seat %d", dealer)
	}
	return &Deal{
		providers: providers,
		dealer:    dealer,
		deck:      deck,
		caller:    -1,
		callPos:   -1,
		defSeat:   -1,
	}, nil
}

// Run drives the deal to completion and returns its scored result.
func (d *Deal) Run(ctx context.Context) (*DealResult, error) {
	d.dealCards()
	if err := d.runBidding(ctx); err != nil {
		return nil, err
	}
	if d.contract == nil {
		return &DealResult{Passed: true, Trump: euchre.SuitNone, Caller: -1, DefSeat: -1, CallPos: -1}, nil
	}
	if err := d.playTricks(ctx); err != nil {
		return nil, err
	}
	res := d.score()
	d.notifyAll(euchre.EventDealComplete)
	return res, nil
}

// dealCards distributes five cards per seat round-robin starting left of
// the dealer, exposes the turn card, and buries the rest.
func (d *Deal) dealCards() {
	dealt := euchre.NumSeats * HandSize
	var cards [euchre.NumSeats][]euchre.Card
	for i := 0; i < dealt; i++ {
		seat := (d.dealer + 1 + i) % euchre.NumSeats
		cards[seat] = append(cards[seat], d.deck[i])
	}
	for seat := 0; seat < euchre.NumSeats; seat++ {
		d.hands[seat] = euchre.NewHand(cards[seat])
	}
	d.turnCard = d.deck[dealt]
	d.buries = append([]euchre.Card(nil), d.deck[dealt+1:]...)
}

func (d *Deal) runBidding(ctx context.Context) error {
	// first round: order up the turn card's suit, or pass
	for i := 0; i < euchre.NumSeats; i++ {
		seat := (d.dealer + 1 + i) % euchre.NumSeats
		bid, err := d.providers[seat].Bid(ctx, d.snapshot(seat))
		if err != nil {
			return fmt.Errorf("bid (seat %d): %w", seat, err)
		}
		d.bids = append(d.bids, bid)
		if bid.IsPass(false) {
			continue
		}
		if !bid.IsCall() || bid.Suit != d.turnCard.Suit {
			return fmt.Errorf("%w: seat %d first-round bid %v (turn card %v)",
				ErrIllegalAction, seat, bid, d.turnCard)
		}
		d.setContract(bid, seat, i)
		if err := d.dealerDiscard(ctx); err != nil {
			return err
		}
		break
	}

	// second round: turn card withdrawn, any suit but its suit callable
	if d.contract == nil {
		d.turnedDown = true
		d.buries = append(d.buries, d.turnCard)
		for i := 0; i < euchre.NumSeats; i++ {
			seat := (d.dealer + 1 + i) % euchre.NumSeats
			bid, err := d.providers[seat].Bid(ctx, d.snapshot(seat))
			if err != nil {
				return fmt.Errorf("bid (seat %d): %w", seat, err)
			}
			d.bids = append(d.bids, bid)
			if bid.IsPass(false) {
				continue
			}
			if !bid.IsCall() || bid.Suit == d.turnCard.Suit {
				return fmt.Errorf("%w: seat %d second-round bid %v (turn card %v)",
					ErrIllegalAction, seat, bid, d.turnCard)
			}
			d.setContract(bid, seat, euchre.NumSeats+i)
			break
		}
	}

	if d.contract == nil {
		return nil // passed deal, redeal policy belongs to the game runner
	}

	if d.goAlone {
		return d.defenseBids(ctx)
	}
	return nil
}

// defenseBids gives each opponent of a lone caller the chance to defend
// alone. The caller's partner is recorded with a null bid, not asked.
func (d *Deal) defenseBids(ctx context.Context) error {
	for i := 1; i < euchre.NumSeats; i++ {
		seat := (d.caller + i) % euchre.NumSeats
		if seat == euchre.Partner(d.caller) {
			d.bids = append(d.bids, euchre.NullBid)
			continue
		}
		bid, err := d.providers[seat].Bid(ctx, d.snapshot(seat))
		if err != nil {
			return fmt.Errorf("defense bid (seat %d): %w", seat, err)
		}
		d.bids = append(d.bids, bid)
		if bid.IsPass(true) {
			continue
		}
		if !bid.IsDefend() {
			return fmt.Errorf("%w: seat %d defense bid %v", ErrIllegalAction, seat, bid)
		}
		d.defSeat = seat
		d.defAlone = bid.Alone
		if bid.Alone {
			break
		}
	}
	return nil
}

func (d *Deal) setContract(bid euchre.Bid, seat, callPos int) {
	contract := bid
	d.contract = &contract
	d.caller = seat
	d.callPos = callPos
	d.goAlone = bid.Alone
}

// dealerDiscard hands the turn card to the dealer and collects exactly one
// discard from the resulting six-card hand.
func (d *Deal) dealerDiscard(ctx context.Context) error {
	d.hands[d.dealer].Append(d.turnCard)
	discard, err := d.providers[d.dealer].Discard(ctx, d.snapshot(d.dealer))
	if err != nil {
		return fmt.Errorf("discard (seat %d): %w", d.dealer, err)
	}
	if !d.hands[d.dealer].Remove(discard) {
		return fmt.Errorf("%w: dealer discard %v not in hand", ErrIllegalAction, discard)
	}
	d.buries = append(d.buries, discard)
	return nil
}

// sittingOut reports whether the seat is skipped for the whole deal
// because its partner is playing alone.
func (d *Deal) sittingOut(seat int) bool {
	if d.goAlone && seat == euchre.Partner(d.caller) {
		return true
	}
	if d.defAlone && seat == euchre.Partner(d.defSeat) {
		return true
	}
	return false
}

func (d *Deal) playTricks(ctx context.Context) error {
	trump := d.contract.Suit
	leader := (d.dealer + 1) % euchre.NumSeats
	for d.sittingOut(leader) {
		leader = (leader + 1) % euchre.NumSeats
	}

	for trickNo := 0; trickNo < HandSize; trickNo++ {
		trick := euchre.NewTrick(trump)
		d.tricks = append(d.tricks, trick)
		for i := 0; i < euchre.NumSeats; i++ {
			seat := (leader + i) % euchre.NumSeats
			if d.sittingOut(seat) {
				continue
			}
			card, err := d.providers[seat].PlayCard(ctx, d.snapshot(seat))
			if err != nil {
				return fmt.Errorf("play (seat %d): %w", seat, err)
			}
			hand := d.hands[seat]
			if !hand.Contains(card) {
				return fmt.Errorf("%w: seat %d played %v not in hand", ErrIllegalAction, seat, card)
			}
			if trick.LedSuit != euchre.SuitNone && !hand.CanPlay(card, trick.LedSuit, trump) {
				return fmt.Errorf("%w: seat %d played %v, must follow %v",
					ErrIllegalAction, seat, card, trick.LedSuit)
			}
			hand.Remove(card)
			trick.PlayCard(seat, card)
		}
		winner := trick.WinningSeat
		d.tricksWon[winner]++
		d.tricksWon[euchre.Partner(winner)]++
		d.notifyAll(euchre.EventTrickComplete)
		leader = winner
	}
	return nil
}

// score applies the flat point table: 1 for a simple contract win (3-4
// tricks), 2 for a march or any five-trick lone win, 2 for the defense on
// a euchre regardless of alone status.
func (d *Deal) score() *DealResult {
	callerTricks := d.tricksWon[d.caller]
	made := callerTricks >= 3
	allFive := callerTricks == HandSize

	var scoringSeat, pts int
	switch {
	case allFive:
		scoringSeat, pts = d.caller, 2
	case made:
		scoringSeat, pts = d.caller, 1
	default:
		// euchre: award the defense, whether or not defending alone
		scoringSeat, pts = (d.caller+1)%euchre.NumSeats, 2
		if d.defSeat >= 0 {
			scoringSeat = d.defSeat
		}
	}
	d.points[scoringSeat] = pts
	d.points[euchre.Partner(scoringSeat)] = pts

	return &DealResult{
		Trump:     d.contract.Suit,
		Caller:    d.caller,
		GoAlone:   d.goAlone,
		DefAlone:  d.defAlone,
		DefSeat:   d.defSeat,
		TricksWon: d.tricksWon,
		Points:    d.points,
		Made:      made,
		AllFive:   allFive,
		Euchred:   !made,
		CallPos:   d.callPos,
	}
}

// snapshot builds the immutable per-seat view of the deal so far.
func (d *Deal) snapshot(seat int) *euchre.DealState {
	state := &euchre.DealState{
		Seat:      seat,
		Dealer:    d.dealer,
		Hand:      d.hands[seat].Cards(),
		TurnSuit:  d.turnCard.Suit,
		Bids:      append([]euchre.Bid(nil), d.bids...),
		Caller:    d.caller,
		GoAlone:   d.goAlone,
		DefAlone:  d.defAlone,
		DefSeat:   d.defSeat,
		TricksWon: d.tricksWon,
		Points:    d.points,
	}
	if !d.turnedDown {
		turn := d.turnCard
		state.TurnCard = &turn
	}
	if d.contract != nil {
		contract := *d.contract
		state.Contract = &contract
	}
	for _, t := range d.tricks {
		state.Tricks = append(state.Tricks, t.Copy())
	}
	return state
}

func (d *Deal) notifyAll(event euchre.EventType) {
	for seat := 0; seat < euchre.NumSeats; seat++ {
		if n, ok := d.providers[seat].(euchre.Notifier); ok {
			n.Notify(event, d.snapshot(seat))
		}
	}
}
