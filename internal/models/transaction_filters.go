package models

import (
	"time"

	"github.com/google/uuid"
)

// Clause is one conjunct of a transaction query: a SQL fragment with its arguments.
type Clause struct {
	Query string
	Args  []interface{}
}

// TransactionFilters contains filtering options for transaction queries.
// UserID is always applied; every other field is optional.
type TransactionFilters struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Type      string
	Category  string
}

// NewTransactionFilters returns filters scoped to a single owner.
func NewTransactionFilters(userID uuid.UUID) TransactionFilters {
	return TransactionFilters{UserID: userID}
}

func (f TransactionFilters) WithDateRange(start, end *time.Time) TransactionFilters {
	f.StartDate = start
	f.EndDate = end
	return f
}

func (f TransactionFilters) WithType(transactionType string) TransactionFilters {
	f.Type = transactionType
	return f
}

func (f TransactionFilters) WithCategory(category string) TransactionFilters {
	f.Category = category
	return f
}

// Clauses returns the filter as a list of clauses to be joined with AND.
func (f TransactionFilters) Clauses() []Clause {
	clauses := []Clause{{Query: "user_id = ?", Args: []interface{}{f.UserID}}}

	if f.StartDate != nil {
		clauses = append(clauses, Clause{Query: "date >= ?", Args: []interface{}{*f.StartDate}})
	}
	if f.EndDate != nil {
		clauses = append(clauses, Clause{Query: "date <= ?", Args: []interface{}{*f.EndDate}})
	}
	if f.Type != "" {
		clauses = append(clauses, Clause{Query: "type = ?", Args: []interface{}{f.Type}})
	}
	if clause, ok := f.categoryClause(); ok {
		clauses = append(clauses, clause)
	}

	return clauses
}

// categoryClause handles the three category cases: All adds nothing,
// Uncategorized matches only rows literally tagged that way, and anything
// else is an exact match.
func (f TransactionFilters) categoryClause() (Clause, bool) {
	switch f.Category {
	case "", CategoryAll:
		return Clause{}, false
	case CategoryUncategorized:
		return Clause{Query: "category = ?", Args: []interface{}{CategoryUncategorized}}, true
	default:
		return Clause{Query: "category = ?", Args: []interface{}{f.Category}}, true
	}
}
