package dto

import (
	"encoding/json"
	"testing"
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToTransactionResponse(t *testing.T) {
	tx := &models.Transaction{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Type:        models.TransactionTypeExpense,
		Category:    "Food",
		Amount:      decimal.RequireFromString("12.5"),
		Date:        time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		Description: "Lunch",
	}

	resp := ToTransactionResponse(tx)

	assert.Equal(t, tx.ID, resp.ID)
	assert.Equal(t, tx.UserID, resp.UserID)
	assert.Equal(t, "12.50", resp.Amount)
	assert.Equal(t, "2024-02-29", resp.Date)
	assert.Equal(t, "Food", resp.Category)
}

func TestToTransactionResponses_EmptyIsNotNull(t *testing.T) {
	data, err := json.Marshal(ListTransactionsResponse{Transactions: ToTransactionResponses(nil)})
	require.NoError(t, err)

	assert.JSONEq(t, `{"transactions":[],"count":0}`, string(data))
}

func TestToMonthlyReportResponse(t *testing.T) {
	report := &models.MonthlyReport{
		Month:         "2024-02",
		TotalExpenses: decimal.RequireFromString("150"),
		Breakdown: models.ReportBreakdown{
			Income:  decimal.RequireFromString("100"),
			Expense: decimal.RequireFromString("50"),
		},
		TransactionCount: 1,
		Transactions: []models.MonthlyReportTransaction{{
			ID:       uuid.New(),
			Date:     time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Amount:   decimal.RequireFromString("50"),
			Category: models.CategoryUncategorized,
			Type:     models.TransactionTypeExpense,
		}},
	}

	resp := ToMonthlyReportResponse(report)

	assert.Equal(t, "150.00", resp.TotalExpenses)
	assert.Equal(t, "100.00", resp.Breakdown.Income)
	assert.Equal(t, "50.00", resp.Breakdown.Expense)
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, "2024-02-01", resp.Transactions[0].Date)
	assert.Equal(t, "Uncategorized", resp.Transactions[0].Category)
	assert.Equal(t, "", resp.Transactions[0].Description)
}

func TestUpdateTransactionRequest_IsEmpty(t *testing.T) {
	assert.True(t, (&UpdateTransactionRequest{}).IsEmpty())

	category := "Rent"
	assert.False(t, (&UpdateTransactionRequest{Category: &category}).IsEmpty())
}

func TestCreateTransactionRequest_DecodesAmountFromNumberOrString(t *testing.T) {
	var fromNumber, fromString CreateTransactionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"type":"income","amount":10.25,"date":"2024-01-01"}`), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`{"type":"income","amount":"10.25","date":"2024-01-01"}`), &fromString))

	require.NotNil(t, fromNumber.Amount)
	require.NotNil(t, fromString.Amount)
	assert.True(t, fromNumber.Amount.Equal(*fromString.Amount))
	assert.Nil(t, (&CreateTransactionRequest{}).Amount)
}
