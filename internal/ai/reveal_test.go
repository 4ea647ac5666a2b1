package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(ch <-chan string) []string {
	var out []string
	for s := range ch {
		out = append(out, s)
	}
	return out
}

func TestReveal_CumulativeWords(t *testing.T) {
	got := collect(Reveal(context.Background(), "Use strong\nverbs.  ", 0))
	assert.Equal(t, []string{"Use", "Use strong", "Use strong\nverbs.  "}, got)
}

func TestReveal_EmptyText(t *testing.T) {
	assert.Equal(t, []string{""}, collect(Reveal(context.Background(), "", 0)))
}

func TestReveal_Cancel(t *testing.T) {
	reply := Reply{Message: "one two three four five", Edits: noEdits("").Edits}
	ctx, cancel := context.WithCancel(context.Background())
	ch := Reveal(ctx, reply.Message, time.Hour)

	first, ok := <-ch
	require.True(t, ok)
	assert.Equal(t, "one", first)
	cancel()

	for range ch {
	}
	assert.Equal(t, "one two three four five", reply.Message)
}
