package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_Validate(t *testing.T) {
	validUserID := uuid.New()
	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		transaction Transaction
		wantErr     error
	}{
		{
			name: "valid expense",
			transaction: Transaction{
				UserID: validUserID,
				Type:   TransactionTypeExpense,
				Amount: decimal.NewFromFloat(42.50),
				Date:   date,
			},
		},
		{
			name: "valid income with zero amount",
			transaction: Transaction{
				UserID: validUserID,
				Type:   TransactionTypeIncome,
				Amount: decimal.Zero,
				Date:   date,
			},
		},
		{
			name: "missing owner",
			transaction: Transaction{
				Type:   TransactionTypeExpense,
				Amount: decimal.NewFromInt(1),
				Date:   date,
			},
			wantErr: ErrMissingOwner,
		},
		{
			name: "invalid type",
			transaction: Transaction{
				UserID: validUserID,
				Type:   "credit",
				Amount: decimal.NewFromInt(1),
				Date:   date,
			},
			wantErr: ErrInvalidTransactionType,
		},
		{
			name: "negative amount",
			transaction: Transaction{
				UserID: validUserID,
				Type:   TransactionTypeExpense,
				Amount: decimal.NewFromInt(-5),
				Date:   date,
			},
			wantErr: ErrNegativeAmount,
		},
		{
			name: "missing date",
			transaction: Transaction{
				UserID: validUserID,
				Type:   TransactionTypeIncome,
				Amount: decimal.NewFromInt(5),
			},
			wantErr: ErrMissingDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transaction.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTransaction_CategoryOrDefault(t *testing.T) {
	assert.Equal(t, CategoryUncategorized, (&Transaction{}).CategoryOrDefault())
	assert.Equal(t, "Food", (&Transaction{Category: "Food"}).CategoryOrDefault())
}

func TestTransaction_TypePredicates(t *testing.T) {
	income := &Transaction{Type: TransactionTypeIncome}
	expense := &Transaction{Type: TransactionTypeExpense}

	assert.True(t, income.IsIncome())
	assert.False(t, income.IsExpense())
	assert.True(t, expense.IsExpense())
	assert.False(t, expense.IsIncome())
}

func TestNormalizeDate(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	in := time.Date(2024, 2, 29, 1, 30, 0, 0, loc)

	got := NormalizeDate(in)

	require.Equal(t, time.UTC, got.Location())
	assert.Equal(t, time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), got)
	assert.True(t, NormalizeDate(time.Time{}).IsZero())
}

func TestIsValidTransactionType(t *testing.T) {
	assert.True(t, IsValidTransactionType("income"))
	assert.True(t, IsValidTransactionType("expense"))
	assert.False(t, IsValidTransactionType("Income"))
	assert.False(t, IsValidTransactionType(""))
}

func TestCheckOwnership(t *testing.T) {
	owner := uuid.New()
	tx := &Transaction{ID: uuid.New(), UserID: owner}

	assert.Equal(t, OwnershipGranted, CheckOwnership(tx, owner))
	assert.Equal(t, OwnershipForbidden, CheckOwnership(tx, uuid.New()))
	assert.Equal(t, OwnershipNotFound, CheckOwnership(nil, owner))
	assert.Equal(t, "forbidden", OwnershipForbidden.String())
	assert.Equal(t, "not_found", OwnershipNotFound.String())
}

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name         string
		input        string
		want         time.Time
		wantDateOnly bool
		wantErr      bool
	}{
		{"calendar date", "2024-02-29", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), true, false},
		{"rfc3339 utc", "2024-03-01T10:15:00Z", time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC), false, false},
		{"rfc3339 offset converted to utc", "2024-03-01T01:00:00+02:00", time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC), false, false},
		{"impossible day", "2023-02-29", time.Time{}, false, true},
		{"slashes", "2024/02/01", time.Time{}, false, true},
		{"empty", "", time.Time{}, false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, dateOnly, err := ParseDate(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %s", got)
			assert.Equal(t, tc.wantDateOnly, dateOnly)
		})
	}
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC), EndOfDay(in))
}
