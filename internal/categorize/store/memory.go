package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/anindyar/kasbon/internal/ledger"
)

type mapping struct {
	pattern  string
	category ledger.ExpenseCategory
}

// Memory keeps learned mappings in process. Matching is case-insensitive
// substring search, longest pattern first so specific patterns win over
// generic ones.
type Memory struct {
	mu       sync.RWMutex
	mappings []mapping
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) FindMatch(ctx context.Context, description string) (ledger.ExpenseCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lower := strings.ToLower(description)

	for _, mp := range m.mappings {
		if strings.Contains(lower, strings.ToLower(mp.pattern)) {
			return mp.category, nil
		}
	}

	return "", nil
}

func (m *Memory) CreateMapping(ctx context.Context, pattern string, category ledger.ExpenseCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mappings = append(m.mappings, mapping{pattern: pattern, category: category})

	sort.SliceStable(m.mappings, func(i, j int) bool {
		return len(m.mappings[i].pattern) > len(m.mappings[j].pattern)
	})

	return nil
}
