package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/anindyar/kasbon/internal/ledger"
)

// Postgres persists the collections in PostgreSQL. Records keep their
// ledger-assigned string identities; seq preserves insertion order so lists
// come back most-recent-first, matching the in-memory store. Line items and
// journal lines are stored as JSONB since they are only ever read back
// whole.
type Postgres struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	seq         BIGSERIAL,
	name        TEXT NOT NULL,
	category    TEXT NOT NULL DEFAULT '',
	price       BIGINT NOT NULL DEFAULT 0,
	cost        BIGINT NOT NULL DEFAULT 0,
	stock       INTEGER NOT NULL DEFAULT 0,
	min_stock   INTEGER NOT NULL DEFAULT 0,
	supplier    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS transactions (
	id             TEXT PRIMARY KEY,
	seq            BIGSERIAL,
	date           TIMESTAMPTZ NOT NULL,
	customer       TEXT NOT NULL DEFAULT '',
	type           TEXT NOT NULL,
	amount         BIGINT NOT NULL DEFAULT 0,
	description    TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL,
	items          JSONB NOT NULL DEFAULT '[]',
	payment_method TEXT NOT NULL DEFAULT '',
	cash_received  BIGINT NOT NULL DEFAULT 0,
	change         BIGINT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS purchases (
	id             TEXT PRIMARY KEY,
	seq            BIGSERIAL,
	date           TIMESTAMPTZ NOT NULL,
	supplier       TEXT NOT NULL DEFAULT '',
	amount         BIGINT NOT NULL DEFAULT 0,
	description    TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL,
	items          JSONB NOT NULL DEFAULT '[]',
	payment_method TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS expenses (
	id          TEXT PRIMARY KEY,
	seq         BIGSERIAL,
	date        TIMESTAMPTZ NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	amount      BIGINT NOT NULL DEFAULT 0,
	category    TEXT NOT NULL,
	status      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS journal_entries (
	id          TEXT PRIMARY KEY,
	seq         BIGSERIAL,
	date        TIMESTAMPTZ NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	reference   TEXT NOT NULL DEFAULT '',
	type        TEXT NOT NULL,
	debit       JSONB NOT NULL DEFAULT '[]',
	credit      JSONB NOT NULL DEFAULT '[]'
);
`

// NewPostgres creates the store and bootstraps the schema.
func NewPostgres(ctx context.Context, db *sql.DB) (*Postgres, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("bootstrapping schema: %w", err)
	}

	return &Postgres{db: db}, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *Postgres) InsertProduct(ctx context.Context, p ledger.Product) error {
	query := `
		INSERT INTO products (id, name, category, price, cost, stock, min_stock, supplier)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Category, p.Price, p.Cost, p.Stock, p.MinStock, p.Supplier)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}

func (s *Postgres) SaveProduct(ctx context.Context, p ledger.Product) error {
	query := `
		UPDATE products
		SET name = $1, category = $2, price = $3, cost = $4, stock = $5, min_stock = $6, supplier = $7
		WHERE id = $8
	`

	res, err := s.db.ExecContext(ctx, query,
		p.Name, p.Category, p.Price, p.Cost, p.Stock, p.MinStock, p.Supplier, p.ID)
	if err != nil {
		return fmt.Errorf("saving product: %w", err)
	}

	return affected(res)
}

func (s *Postgres) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	return affected(res)
}

const selectProductColumns = `id, name, category, price, cost, stock, min_stock, supplier`

func scanProduct(sc scanner) (ledger.Product, error) {
	var p ledger.Product

	err := sc.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Cost, &p.Stock, &p.MinStock, &p.Supplier)

	return p, err
}

func (s *Postgres) GetProduct(ctx context.Context, id string) (ledger.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return ledger.Product{}, ledger.ErrNotFound
		}

		return ledger.Product{}, fmt.Errorf("getting product: %w", err)
	}

	return p, nil
}

func (s *Postgres) ListProducts(ctx context.Context) ([]ledger.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products ORDER BY seq DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []ledger.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, p)
	}

	return products, rows.Err()
}

const selectTransactionColumns = `id, date, customer, type, amount, description, status, items, payment_method, cash_received, change`

func scanTransaction(sc scanner) (ledger.Transaction, error) {
	var (
		tx    ledger.Transaction
		items []byte
	)

	err := sc.Scan(&tx.ID, &tx.Date, &tx.Customer, &tx.Type, &tx.Amount,
		&tx.Description, &tx.Status, &items, &tx.PaymentMethod,
		&tx.CashReceived, &tx.Change)
	if err != nil {
		return ledger.Transaction{}, err
	}

	if err := json.Unmarshal(items, &tx.Items); err != nil {
		return ledger.Transaction{}, fmt.Errorf("decoding items: %w", err)
	}

	return tx, nil
}

func (s *Postgres) InsertTransaction(ctx context.Context, tx ledger.Transaction) error {
	items, err := json.Marshal(tx.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	query := `
		INSERT INTO transactions (id, date, customer, type, amount, description, status, items, payment_method, cash_received, change)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = s.db.ExecContext(ctx, query,
		tx.ID, tx.Date, tx.Customer, tx.Type, tx.Amount, tx.Description,
		tx.Status, items, tx.PaymentMethod, tx.CashReceived, tx.Change)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}

	return nil
}

func (s *Postgres) DeleteTransaction(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return affected(res)
}

func (s *Postgres) GetTransaction(ctx context.Context, id string) (ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return ledger.Transaction{}, ledger.ErrNotFound
		}

		return ledger.Transaction{}, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Postgres) ListTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions ORDER BY seq DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []ledger.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

const selectPurchaseColumns = `id, date, supplier, amount, description, status, items, payment_method`

func scanPurchase(sc scanner) (ledger.Purchase, error) {
	var (
		p     ledger.Purchase
		items []byte
	)

	err := sc.Scan(&p.ID, &p.Date, &p.Supplier, &p.Amount, &p.Description,
		&p.Status, &items, &p.PaymentMethod)
	if err != nil {
		return ledger.Purchase{}, err
	}

	if err := json.Unmarshal(items, &p.Items); err != nil {
		return ledger.Purchase{}, fmt.Errorf("decoding items: %w", err)
	}

	return p, nil
}

func (s *Postgres) InsertPurchase(ctx context.Context, p ledger.Purchase) error {
	items, err := json.Marshal(p.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	query := `
		INSERT INTO purchases (id, date, supplier, amount, description, status, items, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = s.db.ExecContext(ctx, query,
		p.ID, p.Date, p.Supplier, p.Amount, p.Description, p.Status, items, p.PaymentMethod)
	if err != nil {
		return fmt.Errorf("inserting purchase: %w", err)
	}

	return nil
}

func (s *Postgres) DeletePurchase(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting purchase: %w", err)
	}

	return affected(res)
}

func (s *Postgres) GetPurchase(ctx context.Context, id string) (ledger.Purchase, error) {
	query := `SELECT ` + selectPurchaseColumns + ` FROM purchases WHERE id = $1`

	p, err := scanPurchase(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return ledger.Purchase{}, ledger.ErrNotFound
		}

		return ledger.Purchase{}, fmt.Errorf("getting purchase: %w", err)
	}

	return p, nil
}

func (s *Postgres) ListPurchases(ctx context.Context) ([]ledger.Purchase, error) {
	query := `SELECT ` + selectPurchaseColumns + ` FROM purchases ORDER BY seq DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing purchases: %w", err)
	}
	defer rows.Close()

	var purchases []ledger.Purchase

	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning purchase: %w", err)
		}

		purchases = append(purchases, p)
	}

	return purchases, rows.Err()
}

func (s *Postgres) InsertExpense(ctx context.Context, e ledger.Expense) error {
	query := `
		INSERT INTO expenses (id, date, description, amount, category, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.Date, e.Description, e.Amount, e.Category, e.Status)
	if err != nil {
		return fmt.Errorf("inserting expense: %w", err)
	}

	return nil
}

func (s *Postgres) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	return affected(res)
}

func (s *Postgres) ListExpenses(ctx context.Context) ([]ledger.Expense, error) {
	query := `SELECT id, date, description, amount, category, status FROM expenses ORDER BY seq DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []ledger.Expense

	for rows.Next() {
		var e ledger.Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.Description, &e.Amount, &e.Category, &e.Status); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

func (s *Postgres) InsertJournalEntry(ctx context.Context, e ledger.JournalEntry) error {
	debit, err := json.Marshal(e.Debit)
	if err != nil {
		return fmt.Errorf("encoding debit lines: %w", err)
	}

	credit, err := json.Marshal(e.Credit)
	if err != nil {
		return fmt.Errorf("encoding credit lines: %w", err)
	}

	query := `
		INSERT INTO journal_entries (id, date, description, reference, type, debit, credit)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = s.db.ExecContext(ctx, query,
		e.ID, e.Date, e.Description, e.Reference, e.Type, debit, credit)
	if err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}

	return nil
}

func (s *Postgres) DeleteJournalEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting journal entry: %w", err)
	}

	return affected(res)
}

func (s *Postgres) ListJournalEntries(ctx context.Context) ([]ledger.JournalEntry, error) {
	query := `SELECT id, date, description, reference, type, debit, credit FROM journal_entries ORDER BY seq DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.JournalEntry

	for rows.Next() {
		var (
			e             ledger.JournalEntry
			debit, credit []byte
		)

		if err := rows.Scan(&e.ID, &e.Date, &e.Description, &e.Reference, &e.Type, &debit, &credit); err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}

		if err := json.Unmarshal(debit, &e.Debit); err != nil {
			return nil, fmt.Errorf("decoding debit lines: %w", err)
		}

		if err := json.Unmarshal(credit, &e.Credit); err != nil {
			return nil, fmt.Errorf("decoding credit lines: %w", err)
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// affected maps a zero-row write to ErrNotFound.
func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}
