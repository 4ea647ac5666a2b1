package ai

import (
	"context"
	"time"
	"unicode"
)

// DefaultRevealInterval paces word-by-word display.
const DefaultRevealInterval = 30 * time.Millisecond

// Reveal emits growing prefixes of text, one word more each tick, ending
// with text itself. The channel closes when done or when ctx is cancelled.
// It only reads text, so stopping early loses nothing.
func Reveal(ctx context.Context, text string, interval time.Duration) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		ends := wordEnds(text)
		if len(ends) == 0 {
			ends = []int{len(text)}
		}
		ends[len(ends)-1] = len(text)

		var tick <-chan time.Time
		if interval > 0 {
			t := time.NewTicker(interval)
			defer t.Stop()
			tick = t.C
		}
		for i, end := range ends {
			if i > 0 && tick != nil {
				select {
				case <-ctx.Done():
					return
				case <-tick:
				}
			}
			select {
			case <-ctx.Done():
				return
			case out <- text[:end]:
			}
		}
	}()
	return out
}

// wordEnds returns the byte offset just past each word.
func wordEnds(s string) []int {
	var ends []int
	inWord := false
	for i, r := range s {
		space := unicode.IsSpace(r)
		if inWord && space {
			ends = append(ends, i)
		}
		inWord = !space
	}
	if inWord {
		ends = append(ends, len(s))
	}
	return ends
}
