// Package export writes the ledger collections as CSV, the format the
// bookkeeper's spreadsheet tooling reads back in.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/anindyar/kasbon/internal/ledger"
)

// Dataset selects which collection to export.
type Dataset string

const (
	DatasetProducts     Dataset = "products"
	DatasetTransactions Dataset = "transactions"
	DatasetPurchases    Dataset = "purchases"
	DatasetExpenses     Dataset = "expenses"
	DatasetJournal      Dataset = "journal"
)

// Valid reports whether the dataset names a known collection.
func (d Dataset) Valid() bool {
	switch d {
	case DatasetProducts, DatasetTransactions, DatasetPurchases, DatasetExpenses, DatasetJournal:
		return true
	}

	return false
}

type Service struct {
	ledger *ledger.Service
}

func NewService(ledgerSvc *ledger.Service) *Service {
	return &Service{ledger: ledgerSvc}
}

// Export streams the named dataset as CSV to w.
func (s *Service) Export(ctx context.Context, dataset Dataset, w io.Writer) error {
	cw := csv.NewWriter(w)

	var err error

	switch dataset {
	case DatasetProducts:
		err = s.writeProducts(ctx, cw)
	case DatasetTransactions:
		err = s.writeTransactions(ctx, cw)
	case DatasetPurchases:
		err = s.writePurchases(ctx, cw)
	case DatasetExpenses:
		err = s.writeExpenses(ctx, cw)
	case DatasetJournal:
		err = s.writeJournal(ctx, cw)
	default:
		return fmt.Errorf("unknown dataset: %s", dataset)
	}

	if err != nil {
		return err
	}

	cw.Flush()

	return cw.Error()
}

func (s *Service) writeProducts(ctx context.Context, cw *csv.Writer) error {
	products, err := s.ledger.Products(ctx)
	if err != nil {
		return fmt.Errorf("listing products: %w", err)
	}

	if err := cw.Write([]string{"id", "name", "category", "price", "cost", "stock", "min_stock", "supplier"}); err != nil {
		return err
	}

	for _, p := range products {
		row := []string{
			p.ID,
			p.Name,
			p.Category,
			strconv.FormatInt(p.Price, 10),
			strconv.FormatInt(p.Cost, 10),
			strconv.Itoa(p.Stock),
			strconv.Itoa(p.MinStock),
			p.Supplier,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) writeTransactions(ctx context.Context, cw *csv.Writer) error {
	txs, err := s.ledger.Transactions(ctx)
	if err != nil {
		return fmt.Errorf("listing transactions: %w", err)
	}

	if err := cw.Write([]string{"id", "date", "customer", "type", "amount", "description", "status", "payment_method", "items"}); err != nil {
		return err
	}

	for _, tx := range txs {
		row := []string{
			tx.ID,
			tx.Date.Format(time.DateOnly),
			tx.Customer,
			string(tx.Type),
			strconv.FormatInt(tx.Amount, 10),
			tx.Description,
			string(tx.Status),
			string(tx.PaymentMethod),
			strconv.Itoa(len(tx.Items)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) writePurchases(ctx context.Context, cw *csv.Writer) error {
	purchases, err := s.ledger.Purchases(ctx)
	if err != nil {
		return fmt.Errorf("listing purchases: %w", err)
	}

	if err := cw.Write([]string{"id", "date", "supplier", "amount", "description", "status", "payment_method", "items"}); err != nil {
		return err
	}

	for _, p := range purchases {
		row := []string{
			p.ID,
			p.Date.Format(time.DateOnly),
			p.Supplier,
			strconv.FormatInt(p.Amount, 10),
			p.Description,
			string(p.Status),
			string(p.PaymentMethod),
			strconv.Itoa(len(p.Items)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) writeExpenses(ctx context.Context, cw *csv.Writer) error {
	expenses, err := s.ledger.Expenses(ctx)
	if err != nil {
		return fmt.Errorf("listing expenses: %w", err)
	}

	if err := cw.Write([]string{"id", "date", "description", "amount", "category", "status"}); err != nil {
		return err
	}

	for _, e := range expenses {
		row := []string{
			e.ID,
			e.Date.Format(time.DateOnly),
			e.Description,
			strconv.FormatInt(e.Amount, 10),
			string(e.Category),
			string(e.Status),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// writeJournal flattens entries to one row per line so both sides of every
// entry land in the file.
func (s *Service) writeJournal(ctx context.Context, cw *csv.Writer) error {
	entries, err := s.ledger.JournalEntries(ctx)
	if err != nil {
		return fmt.Errorf("listing journal entries: %w", err)
	}

	if err := cw.Write([]string{"id", "date", "description", "reference", "type", "side", "account", "amount"}); err != nil {
		return err
	}

	writeLines := func(e ledger.JournalEntry, side string, lines []ledger.Line) error {
		for _, l := range lines {
			row := []string{
				e.ID,
				e.Date.Format(time.DateOnly),
				e.Description,
				e.Reference,
				string(e.Type),
				side,
				l.Account,
				strconv.FormatInt(l.Amount, 10),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}

		return nil
	}

	for _, e := range entries {
		if err := writeLines(e, "debit", e.Debit); err != nil {
			return err
		}

		if err := writeLines(e, "credit", e.Credit); err != nil {
			return err
		}
	}

	return nil
}
