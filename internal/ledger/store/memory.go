// Package store provides the record containers behind ledger.Service: an
// in-memory store used by default and a Postgres-backed store for
// deployments that want the books to survive a restart.
package store

import (
	"context"
	"slices"

	"github.com/anindyar/kasbon/internal/ledger"
)

// Memory holds all collections in process memory. State lives for the
// process lifetime only. Concurrency discipline is owned by ledger.Service,
// so no locking happens here; list results are copied so a caller can hold
// them across later mutations.
type Memory struct {
	products     []ledger.Product
	transactions []ledger.Transaction
	purchases    []ledger.Purchase
	expenses     []ledger.Expense
	entries      []ledger.JournalEntry
}

func NewMemory() *Memory {
	return &Memory{}
}

// prepend inserts at the head so lists read most-recent-first.
func prepend[T any](list []T, rec T) []T {
	return append([]T{rec}, list...)
}

// Records with nested slices are cloned element by element on the way out;
// a flat slices.Clone would leave Items and journal lines aliasing the
// store's backing arrays.

func cloneTransaction(tx ledger.Transaction) ledger.Transaction {
	tx.Items = slices.Clone(tx.Items)
	return tx
}

func clonePurchase(p ledger.Purchase) ledger.Purchase {
	p.Items = slices.Clone(p.Items)
	return p
}

func cloneEntry(e ledger.JournalEntry) ledger.JournalEntry {
	e.Debit = slices.Clone(e.Debit)
	e.Credit = slices.Clone(e.Credit)

	return e
}

func cloneAll[T any](list []T, clone func(T) T) []T {
	out := make([]T, len(list))
	for i, rec := range list {
		out[i] = clone(rec)
	}

	return out
}

func removeByID[T any](list []T, match func(T) bool) ([]T, bool) {
	i := slices.IndexFunc(list, match)
	if i < 0 {
		return list, false
	}

	return slices.Delete(list, i, i+1), true
}

func (m *Memory) InsertProduct(_ context.Context, p ledger.Product) error {
	m.products = prepend(m.products, p)
	return nil
}

func (m *Memory) SaveProduct(_ context.Context, p ledger.Product) error {
	i := slices.IndexFunc(m.products, func(e ledger.Product) bool { return e.ID == p.ID })
	if i < 0 {
		return ledger.ErrNotFound
	}

	m.products[i] = p

	return nil
}

func (m *Memory) DeleteProduct(_ context.Context, id string) error {
	var ok bool

	m.products, ok = removeByID(m.products, func(p ledger.Product) bool { return p.ID == id })
	if !ok {
		return ledger.ErrNotFound
	}

	return nil
}

func (m *Memory) GetProduct(_ context.Context, id string) (ledger.Product, error) {
	i := slices.IndexFunc(m.products, func(p ledger.Product) bool { return p.ID == id })
	if i < 0 {
		return ledger.Product{}, ledger.ErrNotFound
	}

	return m.products[i], nil
}

func (m *Memory) ListProducts(_ context.Context) ([]ledger.Product, error) {
	return slices.Clone(m.products), nil
}

func (m *Memory) InsertTransaction(_ context.Context, tx ledger.Transaction) error {
	m.transactions = prepend(m.transactions, tx)
	return nil
}

func (m *Memory) DeleteTransaction(_ context.Context, id string) error {
	var ok bool

	m.transactions, ok = removeByID(m.transactions, func(tx ledger.Transaction) bool { return tx.ID == id })
	if !ok {
		return ledger.ErrNotFound
	}

	return nil
}

func (m *Memory) GetTransaction(_ context.Context, id string) (ledger.Transaction, error) {
	i := slices.IndexFunc(m.transactions, func(tx ledger.Transaction) bool { return tx.ID == id })
	if i < 0 {
		return ledger.Transaction{}, ledger.ErrNotFound
	}

	return cloneTransaction(m.transactions[i]), nil
}

func (m *Memory) ListTransactions(_ context.Context) ([]ledger.Transaction, error) {
	return cloneAll(m.transactions, cloneTransaction), nil
}

func (m *Memory) InsertPurchase(_ context.Context, p ledger.Purchase) error {
	m.purchases = prepend(m.purchases, p)
	return nil
}

func (m *Memory) DeletePurchase(_ context.Context, id string) error {
	var ok bool

	m.purchases, ok = removeByID(m.purchases, func(p ledger.Purchase) bool { return p.ID == id })
	if !ok {
		return ledger.ErrNotFound
	}

	return nil
}

func (m *Memory) GetPurchase(_ context.Context, id string) (ledger.Purchase, error) {
	i := slices.IndexFunc(m.purchases, func(p ledger.Purchase) bool { return p.ID == id })
	if i < 0 {
		return ledger.Purchase{}, ledger.ErrNotFound
	}

	return clonePurchase(m.purchases[i]), nil
}

func (m *Memory) ListPurchases(_ context.Context) ([]ledger.Purchase, error) {
	return cloneAll(m.purchases, clonePurchase), nil
}

func (m *Memory) InsertExpense(_ context.Context, e ledger.Expense) error {
	m.expenses = prepend(m.expenses, e)
	return nil
}

func (m *Memory) DeleteExpense(_ context.Context, id string) error {
	var ok bool

	m.expenses, ok = removeByID(m.expenses, func(e ledger.Expense) bool { return e.ID == id })
	if !ok {
		return ledger.ErrNotFound
	}

	return nil
}

func (m *Memory) ListExpenses(_ context.Context) ([]ledger.Expense, error) {
	return slices.Clone(m.expenses), nil
}

func (m *Memory) InsertJournalEntry(_ context.Context, e ledger.JournalEntry) error {
	m.entries = prepend(m.entries, e)
	return nil
}

func (m *Memory) DeleteJournalEntry(_ context.Context, id string) error {
	var ok bool

	m.entries, ok = removeByID(m.entries, func(e ledger.JournalEntry) bool { return e.ID == id })
	if !ok {
		return ledger.ErrNotFound
	}

	return nil
}

func (m *Memory) ListJournalEntries(_ context.Context) ([]ledger.JournalEntry, error) {
	return cloneAll(m.entries, cloneEntry), nil
}
