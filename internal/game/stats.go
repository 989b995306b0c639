// internal/game/stats.go
package game

// NumCallPos is the number of bid slots in a deal (two rounds of four
// seats); per-position counters are indexed 0-7, with 3 and 7 being the
// dealer's slots.
const NumCallPos = 8

// Stats accumulates per-team play counters across deals, games, and
// matches; the tournament scheduler aggregates them further.
type Stats struct {
	DealsTotal  int
	DealsPlayed int
	DealsPassed int
	Tricks      int
	Points      int

	Calls        int
	CallsMade    int
	CallsAllFive int
	CallsEuchred int
	LonersCalled int
	LonersMade   int

	Defenses   int
	DefLosses  int
	DefEuchres int

	GamesPlayed int
	GamesWon    int

	// caller-side counters tabulated by bid slot
	CallsByPos        [NumCallPos]int
	CallsMadeByPos    [NumCallPos]int
	CallsEuchredByPos [NumCallPos]int
}

// Add merges other into s.
func (s *Stats) Add(other *Stats) {
	s.DealsTotal += other.DealsTotal
	s.DealsPlayed += other.DealsPlayed
	s.DealsPassed += other.DealsPassed
	s.Tricks += other.Tricks
	s.Points += other.Points
	s.Calls += other.Calls
	s.CallsMade += other.CallsMade
	s.CallsAllFive += other.CallsAllFive
	s.CallsEuchred += other.CallsEuchred
	s.LonersCalled += other.LonersCalled
	s.LonersMade += other.LonersMade
	s.Defenses += other.Defenses
	s.DefLosses += other.DefLosses
	s.DefEuchres += other.DefEuchres
	s.GamesPlayed += other.GamesPlayed
	s.GamesWon += other.GamesWon
	for i := 0; i < NumCallPos; i++ {
		s.CallsByPos[i] += other.CallsByPos[i]
		s.CallsMadeByPos[i] += other.CallsMadeByPos[i]
		s.CallsEuchredByPos[i] += other.CallsEuchredByPos[i]
	}
}

// tabulateDeal folds one deal result into the per-team stats. Seats 0 and 1
// stand in for their teams, since partners share tricks and points.
func tabulateDeal(stats *[2]Stats, res *DealResult, seatTeam func(seat int) int) {
	for team := 0; team < 2; team++ {
		stats[team].DealsTotal++
	}
	if res.Passed {
		for team := 0; team < 2; team++ {
			stats[team].DealsPassed++
		}
		return
	}

	callTeam := seatTeam(res.Caller)
	defTeam := callTeam ^ 0x1
	for seat := 0; seat < 2; seat++ {
		team := seatTeam(seat)
		stats[team].DealsPlayed++
		stats[team].Tricks += res.TricksWon[seat]
		stats[team].Points += res.Points[seat]
	}

	cs := &stats[callTeam]
	ds := &stats[defTeam]
	cs.Calls++
	cs.CallsByPos[res.CallPos]++
	ds.Defenses++
	if res.GoAlone {
		cs.LonersCalled++
	}
	if res.Made {
		cs.CallsMade++
		cs.CallsMadeByPos[res.CallPos]++
		ds.DefLosses++
		if res.AllFive {
			cs.CallsAllFive++
			if res.GoAlone {
				cs.LonersMade++
			}
		}
	} else {
		cs.CallsEuchred++
		cs.CallsEuchredByPos[res.CallPos]++
		ds.DefEuchres++
	}
}
