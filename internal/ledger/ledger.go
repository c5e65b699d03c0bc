package ledger

import (
	"errors"
	"time"
)

// ErrNotFound is returned when an operation targets an identity that is not
// present in the store. Callers can distinguish "nothing to do" from
// "succeeded" (the reference system silently swallowed both).
var ErrNotFound = errors.New("record not found")

// Status marks whether a record has been settled. The Indonesian wire values
// are kept so existing frontends keep working.
type Status string

const (
	StatusPaid   Status = "Lunas"
	StatusUnpaid Status = "Belum Lunas"
)

// TransactionType distinguishes outbound sales from inbound purchases booked
// through the transactions collection.
type TransactionType string

const (
	TypeSale     TransactionType = "Penjualan"
	TypePurchase TransactionType = "Pembelian"
)

// PaymentMethod is how a settled record was paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Tunai"
	PaymentTransfer PaymentMethod = "Transfer"
	PaymentCredit   PaymentMethod = "Kredit"
)

// ExpenseCategory buckets operating expenses.
type ExpenseCategory string

const (
	CategoryOperational    ExpenseCategory = "Operasional"
	CategoryAdministrative ExpenseCategory = "Administrasi"
	CategorySales          ExpenseCategory = "Penjualan"
	CategoryOther          ExpenseCategory = "Lainnya"
)

// EntryOrigin tags whether a journal entry was typed in by the bookkeeper or
// derived from a business event.
type EntryOrigin string

const (
	OriginManual    EntryOrigin = "Manual"
	OriginAutomatic EntryOrigin = "Automatic"
)

// Account names used by the journal generator.
const (
	AccountCash       = "Cash"
	AccountReceivable = "Accounts Receivable"
	AccountRevenue    = "Sales Revenue"
	AccountCOGS       = "Cost of Goods Sold"
	AccountInventory  = "Merchandise Inventory"
	AccountPayable    = "Accounts Payable"

	expenseAccountPrefix = "Expense:"
)

// ExpenseAccount returns the journal account name for an expense category.
func ExpenseAccount(c ExpenseCategory) string {
	return expenseAccountPrefix + string(c)
}

// All monetary amounts are integer rupiah.

// Product is a catalog item with its on-hand stock.
type Product struct {
	ID       string
	Name     string
	Category string
	Price    int64
	Cost     int64 // unit cost basis (harga pokok)
	Stock    int
	MinStock int // reorder threshold
	Supplier string
}

// LowStock reports whether the product is at or below its reorder threshold.
func (p Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

// Item is one line of a sale or purchase transaction. ProductName and Cost
// are snapshots taken at creation, so the line stays meaningful after the
// referenced product is edited or deleted.
type Item struct {
	ProductID   string
	ProductName string
	Quantity    int
	Price       int64
	Cost        int64
}

// Transaction is a sale (or a purchase booked through the POS screen).
type Transaction struct {
	ID            string
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

// PurchaseItem is one line of a supplier purchase.
type PurchaseItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	Cost        int64
}

// Purchase is an inbound stock order from a supplier.
type Purchase struct {
	ID            string
	Date          time.Time
	Supplier      string
	Amount        int64
	Description   string
	Status        Status
	Items         []PurchaseItem
	PaymentMethod PaymentMethod
}

// Line is one side of a journal entry: an account and an amount.
type Line struct {
	Account string
	Amount  int64
}

// JournalEntry is a double-entry record. Entries are immutable once created;
// they can be deleted but never edited. Reference carries the identity of the
// originating transaction/purchase/expense for Automatic entries.
type JournalEntry struct {
	ID          string
	Date        time.Time
	Description string
	Reference   string
	Type        EntryOrigin
	Debit       []Line
	Credit      []Line
}

// DebitTotal sums the debit side.
func (e JournalEntry) DebitTotal() int64 {
	return lineTotal(e.Debit)
}

// CreditTotal sums the credit side.
func (e JournalEntry) CreditTotal() int64 {
	return lineTotal(e.Credit)
}

// Balanced reports whether the debit and credit sides agree.
func (e JournalEntry) Balanced() bool {
	return e.DebitTotal() == e.CreditTotal()
}

func lineTotal(lines []Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.Amount
	}

	return total
}

// Expense is an operating cost outside of stock purchases.
type Expense struct {
	ID          string
	Date        time.Time
	Description string
	Amount      int64
	Category    ExpenseCategory
	Status      Status
}
