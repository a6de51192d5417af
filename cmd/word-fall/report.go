package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lixenwraith/word-fall/arcade"
)

// maxReview caps the words listed for review after a session
const maxReview = 5

// printResult writes the end-of-session summary shown after the terminal is restored
func printResult(w io.Writer, res arcade.Result, added, totalXP int) {
	outcome := "exited"
	if res.GameOver {
		outcome = "game over"
	}
	fmt.Fprintf(w, "word-fall: %s after %s\n", outcome, res.Duration.Round(time.Second))
	fmt.Fprintf(w, "  score %d, level %d, +%d XP (total %d)\n", res.Score, res.Level, res.XPAwarded, totalXP)

	if len(res.Learned) > 0 {
		pairs := make([]string, len(res.Learned))
		for i, it := range res.Learned {
			pairs[i] = it.Source + " = " + it.Target
		}
		fmt.Fprintf(w, "  learned %d new (%d saved): %s\n", len(res.Learned), added, strings.Join(pairs, ", "))
	}

	if len(res.Struggles) > 0 {
		n := min(len(res.Struggles), maxReview)
		review := make([]string, n)
		for i, st := range res.Struggles[:n] {
			review[i] = fmt.Sprintf("%s = %s (%d)", st.Item.Source, st.Item.Target, st.Total())
		}
		fmt.Fprintf(w, "  review: %s\n", strings.Join(review, ", "))
	}
}
