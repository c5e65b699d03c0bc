package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

//go:generate mockgen -source=service.go -destination=store_mock.go -package=ledger

// Store owns the five ordered record collections. Insert prepends, so list
// order defaults to most-recent-first. Implementations do not need to be
// concurrency-safe: the Service serializes all access behind its own lock.
type Store interface {
	InsertProduct(ctx context.Context, p Product) error
	SaveProduct(ctx context.Context, p Product) error
	DeleteProduct(ctx context.Context, id string) error
	GetProduct(ctx context.Context, id string) (Product, error)
	ListProducts(ctx context.Context) ([]Product, error)

	InsertTransaction(ctx context.Context, tx Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	GetTransaction(ctx context.Context, id string) (Transaction, error)
	ListTransactions(ctx context.Context) ([]Transaction, error)

	InsertPurchase(ctx context.Context, p Purchase) error
	DeletePurchase(ctx context.Context, id string) error
	GetPurchase(ctx context.Context, id string) (Purchase, error)
	ListPurchases(ctx context.Context) ([]Purchase, error)

	InsertExpense(ctx context.Context, e Expense) error
	DeleteExpense(ctx context.Context, id string) error
	ListExpenses(ctx context.Context) ([]Expense, error)

	InsertJournalEntry(ctx context.Context, e JournalEntry) error
	DeleteJournalEntry(ctx context.Context, id string) error
	ListJournalEntries(ctx context.Context) ([]JournalEntry, error)
}

// Service is the ledger engine: record store operations plus the cascading
// stock adjustments and journal generation they trigger. A single instance
// owns the store; every mutation runs to completion under the write lock, so
// no reader ever observes a transaction without its stock and journal side
// effects.
type Service struct {
	mu    sync.RWMutex
	store Store
	ids   *idGenerator
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		ids:   newIDGenerator(nil),
		now:   time.Now,
	}
}

// ProductParams are the caller-supplied fields of a new product.
type ProductParams struct {
	Name     string
	Category string
	Price    int64
	Cost     int64
	Stock    int
	MinStock int
	Supplier string
}

func (s *Service) AddProduct(ctx context.Context, params ProductParams) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Product{
		ID:       s.ids.next(prefixProduct),
		Name:     params.Name,
		Category: params.Category,
		Price:    params.Price,
		Cost:     params.Cost,
		Stock:    params.Stock,
		MinStock: params.MinStock,
		Supplier: params.Supplier,
	}

	if err := s.store.InsertProduct(ctx, p); err != nil {
		return Product{}, fmt.Errorf("inserting product: %w", err)
	}

	return p, nil
}

// ProductUpdate carries a partial merge; nil fields are left untouched.
type ProductUpdate struct {
	Name     *string
	Category *string
	Price    *int64
	Cost     *int64
	Stock    *int
	MinStock *int
	Supplier *string
}

func (s *Service) UpdateProduct(ctx context.Context, id string, upd ProductUpdate) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return Product{}, err
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}

	if upd.Category != nil {
		p.Category = *upd.Category
	}

	if upd.Price != nil {
		p.Price = *upd.Price
	}

	if upd.Cost != nil {
		p.Cost = *upd.Cost
	}

	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}

	if upd.MinStock != nil {
		p.MinStock = *upd.MinStock
	}

	if upd.Supplier != nil {
		p.Supplier = *upd.Supplier
	}

	if err := s.store.SaveProduct(ctx, p); err != nil {
		return Product{}, fmt.Errorf("saving product: %w", err)
	}

	return p, nil
}

// DeleteProduct removes the product only. Historical transaction and
// purchase lines keep their name and cost snapshots, so references to the
// deleted product stay renderable.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.DeleteProduct(ctx, id)
}

func (s *Service) Product(ctx context.Context, id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.GetProduct(ctx, id)
}

func (s *Service) Products(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.ListProducts(ctx)
}

// LowStockProducts returns products at or below their reorder threshold.
func (s *Service) LowStockProducts(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	low := make([]Product, 0)

	for _, p := range products {
		if p.LowStock() {
			low = append(low, p)
		}
	}

	return low, nil
}

// StockDirection is the sign of a stock adjustment.
type StockDirection string

const (
	DirectionSale     StockDirection = "sale"
	DirectionPurchase StockDirection = "purchase"
)

// StockAdjustment reports the outcome of an adjustment. Clamped is set when
// a sale would have driven stock negative and the quantity was floored at
// zero instead.
type StockAdjustment struct {
	ProductID string
	NewStock  int
	Clamped   bool
}

// AdjustStock moves a product's on-hand quantity: sale subtracts, purchase
// adds. Unknown products return ErrNotFound.
func (s *Service) AdjustStock(ctx context.Context, productID string, quantity int, direction StockDirection) (StockAdjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.adjustStock(ctx, productID, quantity, direction)
}

// adjustStock is the lock-free core shared with the compound add operations.
func (s *Service) adjustStock(ctx context.Context, productID string, quantity int, direction StockDirection) (StockAdjustment, error) {
	p, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return StockAdjustment{}, err
	}

	adj := StockAdjustment{ProductID: productID}

	switch direction {
	case DirectionPurchase:
		p.Stock += quantity
	default:
		p.Stock -= quantity
		if p.Stock < 0 {
			p.Stock = 0
			adj.Clamped = true
		}
	}

	adj.NewStock = p.Stock

	if err := s.store.SaveProduct(ctx, p); err != nil {
		return StockAdjustment{}, fmt.Errorf("saving stock: %w", err)
	}

	return adj, nil
}

// TransactionParams are the caller-supplied fields of a new transaction.
// Amount is taken as given; keeping it equal to the item total is the
// caller's responsibility.
type TransactionParams struct {
	Date          time.Time
	Customer      string
	Type          TransactionType
	Amount        int64
	Description   string
	Status        Status
	Items         []Item
	PaymentMethod PaymentMethod
	CashReceived  int64
	Change        int64
}

// AddTransaction inserts the record, adjusts stock for every line item in
// the direction implied by the transaction type, and appends the derived
// journal entries, all as one atomic unit under the write lock. Line items
// referencing unknown products are kept as-is (their snapshots still render)
// and simply skip the stock step.
func (s *Service) AddTransaction(ctx context.Context, params TransactionParams) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if params.Date.IsZero() {
		params.Date = s.now()
	}

	tx := Transaction{
		ID:            s.ids.next(prefixTransaction),
		Date:          params.Date,
		Customer:      params.Customer,
		Type:          params.Type,
		Amount:        params.Amount,
		Description:   params.Description,
		Status:        params.Status,
		Items:         append([]Item(nil), params.Items...),
		PaymentMethod: params.PaymentMethod,
		CashReceived:  params.CashReceived,
		Change:        params.Change,
	}

	// Snapshot the current unit cost onto sale lines, same as the name
	// snapshot: it survives later cost edits and product deletion.
	if tx.Type == TypeSale {
		for i, item := range tx.Items {
			if item.Cost != 0 {
				continue
			}

			if p, err := s.store.GetProduct(ctx, item.ProductID); err == nil {
				tx.Items[i].Cost = p.Cost
			}
		}
	}

	if err := s.store.InsertTransaction(ctx, tx); err != nil {
		return Transaction{}, fmt.Errorf("inserting transaction: %w", err)
	}

	direction := DirectionSale
	if tx.Type == TypePurchase {
		direction = DirectionPurchase
	}

	for _, item := range tx.Items {
		adj, err := s.adjustStock(ctx, item.ProductID, item.Quantity, direction)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return Transaction{}, fmt.Errorf("adjusting stock for %s: %w", item.ProductID, err)
		}

		if adj.Clamped {
			slog.Warn("sale overdrew stock, clamped at zero",
				"transaction_id", tx.ID,
				"product_id", item.ProductID,
				"quantity", item.Quantity)
		}
	}

	var drafts []entryDraft

	if tx.Type == TypeSale {
		drafts = saleDrafts(tx, s.costLookup(ctx))
	} else {
		drafts = []entryDraft{purchaseTransactionDraft(tx)}
	}

	if err := s.appendEntries(ctx, drafts); err != nil {
		return Transaction{}, err
	}

	return tx, nil
}

// purchaseTransactionDraft books a purchase-typed transaction the same way
// as a supplier purchase record.
func purchaseTransactionDraft(tx Transaction) entryDraft {
	cashOrPayable := AccountCash
	if tx.Status == StatusUnpaid {
		cashOrPayable = AccountPayable
	}

	return entryDraft{
		Date:        tx.Date,
		Description: "Pembelian - " + tx.Description,
		Reference:   tx.ID,
		Debit:       []Line{{Account: AccountInventory, Amount: tx.Amount}},
		Credit:      []Line{{Account: cashOrPayable, Amount: tx.Amount}},
	}
}

// DeleteTransaction removes the record only; stock adjustments and journal
// entries generated at creation are not reversed.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.DeleteTransaction(ctx, id)
}

func (s *Service) Transaction(ctx context.Context, id string) (Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.GetTransaction(ctx, id)
}

func (s *Service) Transactions(ctx context.Context) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.ListTransactions(ctx)
}

// PurchaseParams are the caller-supplied fields of a new supplier purchase.
type PurchaseParams struct {
	Date          time.Time
	Supplier      string
	Amount        int64
	Description   string
	Status        Status
	Items         []PurchaseItem
	PaymentMethod PaymentMethod
}

// AddPurchase inserts the record, increases stock for every line item and
// appends the derived journal entry as one atomic unit.
func (s *Service) AddPurchase(ctx context.Context, params PurchaseParams) (Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if params.Date.IsZero() {
		params.Date = s.now()
	}

	p := Purchase{
		ID:            s.ids.next(prefixPurchase),
		Date:          params.Date,
		Supplier:      params.Supplier,
		Amount:        params.Amount,
		Description:   params.Description,
		Status:        params.Status,
		Items:         append([]PurchaseItem(nil), params.Items...),
		PaymentMethod: params.PaymentMethod,
	}

	if err := s.store.InsertPurchase(ctx, p); err != nil {
		return Purchase{}, fmt.Errorf("inserting purchase: %w", err)
	}

	for _, item := range p.Items {
		_, err := s.adjustStock(ctx, item.ProductID, item.Quantity, DirectionPurchase)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return Purchase{}, fmt.Errorf("adjusting stock for %s: %w", item.ProductID, err)
		}
	}

	if err := s.appendEntries(ctx, []entryDraft{purchaseDraft(p)}); err != nil {
		return Purchase{}, err
	}

	return p, nil
}

func (s *Service) DeletePurchase(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.DeletePurchase(ctx, id)
}

func (s *Service) Purchase(ctx context.Context, id string) (Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.GetPurchase(ctx, id)
}

func (s *Service) Purchases(ctx context.Context) ([]Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.ListPurchases(ctx)
}

// ExpenseParams are the caller-supplied fields of a new expense.
type ExpenseParams struct {
	Date        time.Time
	Description string
	Amount      int64
	Category    ExpenseCategory
	Status      Status
}

// AddExpense inserts the record and appends exactly one derived journal
// entry.
func (s *Service) AddExpense(ctx context.Context, params ExpenseParams) (Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if params.Date.IsZero() {
		params.Date = s.now()
	}

	e := Expense{
		ID:          s.ids.next(prefixExpense),
		Date:        params.Date,
		Description: params.Description,
		Amount:      params.Amount,
		Category:    params.Category,
		Status:      params.Status,
	}

	if err := s.store.InsertExpense(ctx, e); err != nil {
		return Expense{}, fmt.Errorf("inserting expense: %w", err)
	}

	if err := s.appendEntries(ctx, []entryDraft{expenseDraft(e)}); err != nil {
		return Expense{}, err
	}

	return e, nil
}

func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.DeleteExpense(ctx, id)
}

func (s *Service) Expenses(ctx context.Context) ([]Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.ListExpenses(ctx)
}

// EntryParams are the caller-supplied fields of a manual journal entry.
type EntryParams struct {
	Date        time.Time
	Description string
	Reference   string
	Debit       []Line
	Credit      []Line
}

// AddJournalEntry records a manual entry. The balance invariant is only
// guaranteed for generated entries; manual entries are stored as given.
func (s *Service) AddJournalEntry(ctx context.Context, params EntryParams) (JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if params.Date.IsZero() {
		params.Date = s.now()
	}

	e := JournalEntry{
		ID:          s.ids.next(prefixJournal),
		Date:        params.Date,
		Description: params.Description,
		Reference:   params.Reference,
		Type:        OriginManual,
		Debit:       append([]Line(nil), params.Debit...),
		Credit:      append([]Line(nil), params.Credit...),
	}

	if err := s.store.InsertJournalEntry(ctx, e); err != nil {
		return JournalEntry{}, fmt.Errorf("inserting journal entry: %w", err)
	}

	return e, nil
}

func (s *Service) DeleteJournalEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.DeleteJournalEntry(ctx, id)
}

func (s *Service) JournalEntries(ctx context.Context) ([]JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.ListJournalEntries(ctx)
}

// Summary recomputes the financial aggregates from the current collections.
func (s *Service) Summary(ctx context.Context) (FinancialSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products, txs, purchases, expenses, err := s.readAll(ctx)
	if err != nil {
		return FinancialSummary{}, err
	}

	return summarize(products, txs, purchases, expenses), nil
}

// Accounts returns the proxy account breakdown derived from the summary.
func (s *Service) Accounts(ctx context.Context) (AccountsData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products, txs, purchases, expenses, err := s.readAll(ctx)
	if err != nil {
		return AccountsData{}, err
	}

	return accountsData(summarize(products, txs, purchases, expenses)), nil
}

// TrialBalance computes per-account balances from the journal entry lines.
func (s *Service) TrialBalance(ctx context.Context) (TrialBalance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.store.ListJournalEntries(ctx)
	if err != nil {
		return TrialBalance{}, err
	}

	return trialBalance(entries), nil
}

func (s *Service) readAll(ctx context.Context) ([]Product, []Transaction, []Purchase, []Expense, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	purchases, err := s.store.ListPurchases(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return products, txs, purchases, expenses, nil
}

func (s *Service) costLookup(ctx context.Context) costFunc {
	return func(productID string) (int64, bool) {
		p, err := s.store.GetProduct(ctx, productID)
		if err != nil {
			return 0, false
		}

		return p.Cost, true
	}
}

func (s *Service) appendEntries(ctx context.Context, drafts []entryDraft) error {
	for _, d := range drafts {
		entry := JournalEntry{
			ID:          s.ids.next(prefixJournal),
			Date:        d.Date,
			Description: d.Description,
			Reference:   d.Reference,
			Type:        OriginAutomatic,
			Debit:       d.Debit,
			Credit:      d.Credit,
		}

		if err := s.store.InsertJournalEntry(ctx, entry); err != nil {
			return fmt.Errorf("inserting journal entry: %w", err)
		}
	}

	return nil
}
