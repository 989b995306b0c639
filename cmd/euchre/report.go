// cmd/euchre/report.go
package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/crashka/euchre-plt/internal/tournament"
)

// textSink renders leaderboards as aligned text tables.
type textSink struct {
	w io.Writer
}

func newTextSink(w io.Writer) *textSink {
	return &textSink{w: w}
}

func (s *textSink) PassResults(passNum int, rows []tournament.LeaderboardRow) {
	fmt.Fprintf(s.w, "\nPass %d\n", passNum)
	tw := tabwriter.NewWriter(s.w, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Team\tW\tL\tWin%\tPts\tRating\tRank\tElo Rank")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f\t%d\t%.1f\t%d\t%d\n",
			r.Team, r.Wins, r.Losses, r.WinPct, r.Points, r.Rating, r.WinPctRank, r.RatingRank)
	}
	tw.Flush()
}

func (s *textSink) Winner(teams []string) {
	fmt.Fprintf(s.w, "\nWinner: %s\n", strings.Join(teams, ", "))
}
