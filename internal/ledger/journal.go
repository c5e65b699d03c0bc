package ledger

import "time"

// entryDraft is a journal entry before the store assigns its identity.
type entryDraft struct {
	Date        time.Time
	Description string
	Reference   string
	Debit       []Line
	Credit      []Line
}

// costFunc looks up the current unit cost of a product. The bool reports
// whether the product exists.
type costFunc func(productID string) (int64, bool)

// saleDrafts derives the journal entries for a committed sale: revenue
// recognition against cash or receivable, plus a cost-of-goods entry when
// the sale lines resolve to a positive cost. COGS uses each product's
// current cost field, not a cost frozen at sale time.
func saleDrafts(tx Transaction, costOf costFunc) []entryDraft {
	cashOrReceivable := AccountCash
	if tx.Status == StatusUnpaid {
		cashOrReceivable = AccountReceivable
	}

	drafts := []entryDraft{{
		Date:        tx.Date,
		Description: "Penjualan - " + tx.Description,
		Reference:   tx.ID,
		Debit:       []Line{{Account: cashOrReceivable, Amount: tx.Amount}},
		Credit:      []Line{{Account: AccountRevenue, Amount: tx.Amount}},
	}}

	var cogs int64

	for _, item := range tx.Items {
		cost, ok := costOf(item.ProductID)
		if !ok {
			continue
		}

		cogs += int64(item.Quantity) * cost
	}

	if cogs > 0 {
		drafts = append(drafts, entryDraft{
			Date:        tx.Date,
			Description: "HPP - " + tx.Description,
			Reference:   tx.ID,
			Debit:       []Line{{Account: AccountCOGS, Amount: cogs}},
			Credit:      []Line{{Account: AccountInventory, Amount: cogs}},
		})
	}

	return drafts
}

// purchaseDraft derives the single journal entry for a supplier purchase:
// inventory in, cash out (or payable when unpaid).
func purchaseDraft(p Purchase) entryDraft {
	cashOrPayable := AccountCash
	if p.Status == StatusUnpaid {
		cashOrPayable = AccountPayable
	}

	return entryDraft{
		Date:        p.Date,
		Description: "Pembelian - " + p.Description,
		Reference:   p.ID,
		Debit:       []Line{{Account: AccountInventory, Amount: p.Amount}},
		Credit:      []Line{{Account: cashOrPayable, Amount: p.Amount}},
	}
}

// expenseDraft derives the single journal entry for an operating expense.
func expenseDraft(e Expense) entryDraft {
	return entryDraft{
		Date:        e.Date,
		Description: "Beban " + string(e.Category) + " - " + e.Description,
		Reference:   e.ID,
		Debit:       []Line{{Account: ExpenseAccount(e.Category), Amount: e.Amount}},
		Credit:      []Line{{Account: AccountCash, Amount: e.Amount}},
	}
}
