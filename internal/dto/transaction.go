package dto

import (
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the body of POST /transactions. Type, amount
// and date are mandatory; pointers distinguish absent from zero.
type CreateTransactionRequest struct {
	Type        *string          `json:"type" validate:"required,transaction_type"`
	Category    string           `json:"category" validate:"max=100"`
	Amount      *decimal.Decimal `json:"amount" validate:"required,gte=0"`
	Date        *string          `json:"date" validate:"required,calendar_date"`
	Description string           `json:"description" validate:"max=500"`
}

// UpdateTransactionRequest is the body of PUT /transactions/:id. Only the
// fields present in the body are applied.
type UpdateTransactionRequest struct {
	Type        *string          `json:"type,omitempty" validate:"omitempty,transaction_type"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Amount      *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Date        *string          `json:"date,omitempty" validate:"omitempty,calendar_date"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=500"`
}

// IsEmpty reports whether the request carries no field to change.
func (r *UpdateTransactionRequest) IsEmpty() bool {
	return r.Type == nil && r.Category == nil && r.Amount == nil && r.Date == nil && r.Description == nil
}

// ListTransactionsQuery holds the optional filters of GET /transactions.
type ListTransactionsQuery struct {
	StartDate string `query:"startDate" validate:"omitempty,calendar_date"`
	EndDate   string `query:"endDate" validate:"omitempty,calendar_date"`
	Type      string `query:"type" validate:"omitempty,transaction_type"`
	Category  string `query:"category" validate:"max=100"`
}

// ReportQuery holds the month of GET /transactions/report. The month format
// is checked by the report service so the rejection carries REPORT_001.
type ReportQuery struct {
	Month string `query:"month"`
}

// TransactionResponse is the wire form of a transaction.
type TransactionResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Amount      string    `json:"amount"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ToTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Type:        t.Type,
		Category:    t.Category,
		Amount:      t.Amount.StringFixed(2),
		Date:        t.Date.UTC().Format(models.DateLayout),
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ToTransactionResponses(transactions []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		out = append(out, ToTransactionResponse(&transactions[i]))
	}
	return out
}

// ListTransactionsResponse wraps the full, unpaginated result of a list.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
}

type ReportBreakdownResponse struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

type ReportTransactionResponse struct {
	ID          uuid.UUID `json:"id"`
	Date        string    `json:"date"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
}

// MonthlyReportResponse is the export payload of one month.
type MonthlyReportResponse struct {
	Month            string                      `json:"month"`
	TotalExpenses    string                      `json:"totalExpenses"`
	Breakdown        ReportBreakdownResponse     `json:"breakdown"`
	TransactionCount int                         `json:"transactionCount"`
	Transactions     []ReportTransactionResponse `json:"transactions"`
}

func ToMonthlyReportResponse(r *models.MonthlyReport) MonthlyReportResponse {
	rows := make([]ReportTransactionResponse, 0, len(r.Transactions))
	for _, t := range r.Transactions {
		rows = append(rows, ReportTransactionResponse{
			ID:          t.ID,
			Date:        t.Date.UTC().Format(models.DateLayout),
			Amount:      t.Amount.StringFixed(2),
			Category:    t.Category,
			Type:        t.Type,
			Description: t.Description,
		})
	}

	return MonthlyReportResponse{
		Month:         r.Month,
		TotalExpenses: r.TotalExpenses.StringFixed(2),
		Breakdown: ReportBreakdownResponse{
			Income:  r.Breakdown.Income.StringFixed(2),
			Expense: r.Breakdown.Expense.StringFixed(2),
		},
		TransactionCount: r.TransactionCount,
		Transactions:     rows,
	}
}

// MessageResponse is a bare acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
