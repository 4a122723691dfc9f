package models

// MonthSummary represents revenue and expense totals for one month
type MonthSummary struct {
	Revenue float64 `json:"revenue"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}
