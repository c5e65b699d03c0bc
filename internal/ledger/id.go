package ledger

import (
	"strconv"
	"sync"
	"time"
)

// Identity prefixes, one per collection, so record IDs stay visually
// distinct on receipts and reports.
const (
	prefixProduct     = "PRD"
	prefixTransaction = "TRX"
	prefixPurchase    = "PUR"
	prefixJournal     = "JRN"
	prefixExpense     = "EXP"
)

// idGenerator produces prefixed, time-derived identities. The reference
// system used the wall clock in milliseconds; the counter guards against two
// records landing on the same millisecond.
type idGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func newIDGenerator(now func() time.Time) *idGenerator {
	if now == nil {
		now = time.Now
	}

	return &idGenerator{now: now}
}

func (g *idGenerator) next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}

	g.last = ms

	return prefix + strconv.FormatInt(ms, 10)
}
