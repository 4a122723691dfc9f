package models

import "time"

// TransactionKind indicates whether a transaction adds or removes money
type TransactionKind string

const (
	KindRevenue TransactionKind = "revenue"
	KindExpense TransactionKind = "expense"
)

// Transaction represents a financial transaction
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Kind        TransactionKind `json:"kind"`
	Amount      float64         `json:"amount"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
