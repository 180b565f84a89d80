package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"

	// CategoryUncategorized is both a literal tag users may store and the
	// label reports fall back to when a transaction has no category.
	CategoryUncategorized = "Uncategorized"
	// CategoryAll is a filter keyword meaning "do not constrain category".
	CategoryAll = "All"

	DateLayout = "2006-01-02"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrNegativeAmount         = errors.New("transaction amount must not be negative")
	ErrMissingOwner           = errors.New("transaction owner is required")
	ErrMissingDate            = errors.New("transaction date is required")
	ErrCategoryTooLong        = errors.New("category name too long")
)

// Transaction is a single income or expense entry owned by one user.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_user_date,priority:1" json:"userId"`
	Type        string          `gorm:"type:varchar(20);not null;index" json:"type"`
	Category    string          `gorm:"type:varchar(100);index" json:"category,omitempty"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index:idx_transactions_user_date,priority:2" json:"date"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updatedAt"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	t.Date = NormalizeDate(t.Date)

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	t.Date = NormalizeDate(t.Date)
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return ErrMissingOwner
	}

	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}

	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	if t.Date.IsZero() {
		return ErrMissingDate
	}

	if len(t.Category) > 100 {
		return ErrCategoryTooLong
	}

	return nil
}

// IsIncome reports whether the transaction is an income entry
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// IsExpense reports whether the transaction is an expense entry
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// CategoryOrDefault returns the category, or Uncategorized when none is set.
func (t *Transaction) CategoryOrDefault() string {
	if t.Category == "" {
		return CategoryUncategorized
	}
	return t.Category
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}

// NormalizeDate strips the time of day, keeping the calendar date in UTC.
func NormalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD or RFC 3339")

// ParseDate accepts a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp.
// dateOnly reports which form was given so callers can widen an upper
// bound to the end of that day.
func ParseDate(value string) (t time.Time, dateOnly bool, err error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), false, nil
	}
	return time.Time{}, false, ErrInvalidDate
}

// EndOfDay returns the last second of t's calendar day in UTC.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}
