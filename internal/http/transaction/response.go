package transaction

import (
	"time"

	"github.com/anindyar/kasbon/internal/ledger"
)

type itemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
	Cost        int64  `json:"cost"`
	Subtotal    int64  `json:"subtotal"`
}

type transactionResponse struct {
	ID            string                 `json:"id"`
	Date          time.Time              `json:"date"`
	Customer      string                 `json:"customer,omitempty"`
	Type          ledger.TransactionType `json:"type"`
	Amount        int64                  `json:"amount"`
	Description   string                 `json:"description"`
	Status        ledger.Status          `json:"status"`
	Items         []itemResponse         `json:"items"`
	PaymentMethod ledger.PaymentMethod   `json:"payment_method,omitempty"`
	CashReceived  int64                  `json:"cash_received,omitempty"`
	Change        int64                  `json:"change,omitempty"`
}

func toResponse(tx ledger.Transaction) transactionResponse {
	items := make([]itemResponse, len(tx.Items))
	for i, it := range tx.Items {
		items[i] = itemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Cost:        it.Cost,
			Subtotal:    int64(it.Quantity) * it.Price,
		}
	}

	return transactionResponse{
		ID:            tx.ID,
		Date:          tx.Date,
		Customer:      tx.Customer,
		Type:          tx.Type,
		Amount:        tx.Amount,
		Description:   tx.Description,
		Status:        tx.Status,
		Items:         items,
		PaymentMethod: tx.PaymentMethod,
		CashReceived:  tx.CashReceived,
		Change:        tx.Change,
	}
}

func toResponseList(txs []ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
