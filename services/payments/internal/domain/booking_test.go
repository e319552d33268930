package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext_HappyPathChain(t *testing.T) {
	// one webhook walks the whole remaining chain; this is the hop order
	hops := []Status{}
	cur := StatusPending
	for {
		next, ok := Next(cur)
		if !ok {
			break
		}
		hops = append(hops, next)
		cur = next
	}
	assert.Equal(t, []Status{StatusAccepted, StatusConfirmed, StatusCompleted}, hops)
	assert.Equal(t, StatusCompleted, cur)
}

func TestNext_FromIntermediate(t *testing.T) {
	next, ok := Next(StatusConfirmed)
	assert.True(t, ok)
	assert.Equal(t, StatusCompleted, next)

	_, ok = Next(StatusCompleted)
	assert.False(t, ok)
}

func TestNext_TerminalAndUnknown(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCanceled, Status("BOGUS")} {
		got, ok := Next(s)
		assert.False(t, ok, "status %s must not advance", s)
		assert.Equal(t, s, got)
	}
}

func TestTerminal(t *testing.T) {
	cases := map[Status]bool{
		StatusPending:   false,
		StatusAccepted:  false,
		StatusConfirmed: false,
		StatusCompleted: true,
		StatusCanceled:  true,
	}
	for s, want := range cases {
		assert.Equal(t, want, Terminal(s), "status %s", s)
	}
}
