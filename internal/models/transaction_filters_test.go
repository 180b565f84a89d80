package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionFilters_OwnerOnly(t *testing.T) {
	userID := uuid.New()

	clauses := NewTransactionFilters(userID).Clauses()

	require.Len(t, clauses, 1)
	assert.Equal(t, "user_id = ?", clauses[0].Query)
	assert.Equal(t, []interface{}{userID}, clauses[0].Args)
}

func TestTransactionFilters_AllClauses(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	clauses := NewTransactionFilters(userID).
		WithDateRange(&start, &end).
		WithType(TransactionTypeExpense).
		WithCategory("Food").
		Clauses()

	queries := make([]string, 0, len(clauses))
	for _, c := range clauses {
		queries = append(queries, c.Query)
	}

	assert.Equal(t, []string{
		"user_id = ?",
		"date >= ?",
		"date <= ?",
		"type = ?",
		"category = ?",
	}, queries)
	assert.Equal(t, start, clauses[1].Args[0])
	assert.Equal(t, end, clauses[2].Args[0])
	assert.Equal(t, "Food", clauses[4].Args[0])
}

func TestTransactionFilters_CategoryCases(t *testing.T) {
	userID := uuid.New()

	testCases := []struct {
		name       string
		category   string
		wantClause bool
		wantArg    string
	}{
		{"empty adds nothing", "", false, ""},
		{"All adds nothing", CategoryAll, false, ""},
		{"Uncategorized matches the literal tag", CategoryUncategorized, true, CategoryUncategorized},
		{"named category is exact", "Rent", true, "Rent"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clauses := NewTransactionFilters(userID).WithCategory(tc.category).Clauses()
			if !tc.wantClause {
				assert.Len(t, clauses, 1)
				return
			}
			require.Len(t, clauses, 2)
			assert.Equal(t, "category = ?", clauses[1].Query)
			assert.Equal(t, tc.wantArg, clauses[1].Args[0])
		})
	}
}

func TestTransactionFilters_OnlyOneBound(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	clauses := NewTransactionFilters(uuid.New()).WithDateRange(&start, nil).Clauses()

	require.Len(t, clauses, 2)
	assert.Equal(t, "date >= ?", clauses[1].Query)
}
