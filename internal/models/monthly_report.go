package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyReport is the export payload for one calendar month of a user's transactions.
// TotalExpenses sums every amount in the month regardless of type; the
// Breakdown splits the same rows by type.
type MonthlyReport struct {
	Month            string                    `json:"month"`
	StartDate        time.Time                 `json:"-"`
	EndDate          time.Time                 `json:"-"`
	TotalExpenses    decimal.Decimal           `json:"totalExpenses"`
	Breakdown        ReportBreakdown           `json:"breakdown"`
	TransactionCount int                       `json:"transactionCount"`
	Transactions     []MonthlyReportTransaction `json:"transactions"`
}

type ReportBreakdown struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// MonthlyReportTransaction is a reshaped transaction with defaults applied.
type MonthlyReportTransaction struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
}
