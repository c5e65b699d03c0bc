package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIDGenerator_Prefix(t *testing.T) {
	g := newIDGenerator(nil)

	id := g.next(prefixProduct)
	assert.Regexp(t, `^PRD\d+$`, id)
}

func TestIDGenerator_SameMillisecond(t *testing.T) {
	frozen := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	g := newIDGenerator(func() time.Time { return frozen })

	seen := make(map[string]struct{})
	for range 100 {
		id := g.next(prefixTransaction)

		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestIDGenerator_Monotonic(t *testing.T) {
	g := newIDGenerator(nil)

	prev := g.next(prefixJournal)
	for range 10 {
		id := g.next(prefixJournal)
		assert.Greater(t, id, prev)
		prev = id
	}
}
