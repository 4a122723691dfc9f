package models

import "time"

// DebtStatus indicates whether a debt is still being paid
type DebtStatus string

const (
	DebtOpen    DebtStatus = "open"
	DebtSettled DebtStatus = "settled"
)

// Debt represents a debt with its payment installments
type Debt struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id"`
	Name         string            `json:"name"`
	Status       DebtStatus        `json:"status"`
	Installments []DebtInstallment `json:"installments"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// DebtInstallment represents a scheduled payment for a debt
type DebtInstallment struct {
	ID      string    `json:"id"`
	DebtID  string    `json:"debt_id"`
	Amount  float64   `json:"amount"`
	DueDate time.Time `json:"due_date"`
	Paid    bool      `json:"paid"`
}
