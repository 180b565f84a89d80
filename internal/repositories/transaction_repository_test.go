package repositories

import (
	"context"
	"testing"
	"time"

	"finance-tracker/internal/database"
	"finance-tracker/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// TransactionRepositoryTestSuite is the test suite for the transaction repository
type TransactionRepositoryTestSuite struct {
	suite.Suite
	db     *database.DB
	repo   TransactionRepositoryInterface
	ctx    context.Context
	userID uuid.UUID
}

func (s *TransactionRepositoryTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)
	s.ctx = context.Background()
	s.userID = uuid.New()
}

func (s *TransactionRepositoryTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestTransactionRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositoryTestSuite))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *TransactionRepositoryTestSuite) newTransaction(userID uuid.UUID, txType, category string, date time.Time) *models.Transaction {
	return &models.Transaction{
		UserID:      userID,
		Type:        txType,
		Category:    category,
		Amount:      decimal.NewFromFloat(gofakeit.Float64Range(1, 500)).Round(2),
		Date:        date,
		Description: gofakeit.Sentence(4),
	}
}

func (s *TransactionRepositoryTestSuite) seed(userID uuid.UUID, txType, category string, date time.Time) *models.Transaction {
	tx := s.newTransaction(userID, txType, category, date)
	s.Require().NoError(s.repo.Create(s.ctx, tx))
	return tx
}

func ids(transactions []models.Transaction) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, t.ID)
	}
	return out
}

func (s *TransactionRepositoryTestSuite) TestCreate_PersistsAllFields() {
	tx := s.newTransaction(s.userID, models.TransactionTypeExpense, "Food", day(2024, 2, 29))

	err := s.repo.Create(s.ctx, tx)
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, tx.ID)

	found, err := s.repo.GetByID(s.ctx, tx.ID)
	s.Require().NoError(err)
	s.Equal(s.userID, found.UserID)
	s.Equal(models.TransactionTypeExpense, found.Type)
	s.Equal("Food", found.Category)
	s.True(tx.Amount.Equal(found.Amount), "amount %s != %s", tx.Amount, found.Amount)
	s.True(day(2024, 2, 29).Equal(found.Date))
	s.Equal(tx.Description, found.Description)
}

func (s *TransactionRepositoryTestSuite) TestCreate_RejectsInvalidType() {
	tx := s.newTransaction(s.userID, "transfer", "", day(2024, 1, 1))

	err := s.repo.Create(s.ctx, tx)

	s.Error(err)
	s.ErrorIs(err, models.ErrInvalidTransactionType)
}

func (s *TransactionRepositoryTestSuite) TestGetByID_NotFound() {
	found, err := s.repo.GetByID(s.ctx, uuid.New())

	s.Nil(found)
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositoryTestSuite) TestList_ScopedToOwner() {
	mine := s.seed(s.userID, models.TransactionTypeIncome, "Salary", day(2024, 1, 5))
	s.seed(uuid.New(), models.TransactionTypeIncome, "Salary", day(2024, 1, 5))

	result, err := s.repo.List(s.ctx, models.NewTransactionFilters(s.userID))

	s.Require().NoError(err)
	s.Equal([]uuid.UUID{mine.ID}, ids(result))
}

func (s *TransactionRepositoryTestSuite) TestList_SortedByDateDescending() {
	oldest := s.seed(s.userID, models.TransactionTypeExpense, "", day(2024, 1, 1))
	newest := s.seed(s.userID, models.TransactionTypeExpense, "", day(2024, 3, 1))
	middle := s.seed(s.userID, models.TransactionTypeExpense, "", day(2024, 2, 1))

	result, err := s.repo.List(s.ctx, models.NewTransactionFilters(s.userID))

	s.Require().NoError(err)
	s.Equal([]uuid.UUID{newest.ID, middle.ID, oldest.ID}, ids(result))
}

func (s *TransactionRepositoryTestSuite) TestList_DateBoundsAreInclusive() {
	s.seed(s.userID, models.TransactionTypeExpense, "", day(2024, 1, 31))
	first := s.seed(s.userID, models.TransactionTypeExpense, "", day(2024, 2, 1))
	last := s.seed(s.userID, models.TransactionTypeExpense, "", day(2024, 2, 10))
	s.seed(s.userID, models.TransactionTypeExpense, "", day(2024, 2, 11))

	start := day(2024, 2, 1)
	end := models.EndOfDay(day(2024, 2, 10))
	result, err := s.repo.List(s.ctx, models.NewTransactionFilters(s.userID).WithDateRange(&start, &end))

	s.Require().NoError(err)
	s.ElementsMatch([]uuid.UUID{first.ID, last.ID}, ids(result))
	for _, t := range result {
		s.False(t.Date.Before(start))
		s.False(t.Date.After(end))
	}
}

func (s *TransactionRepositoryTestSuite) TestList_ByType() {
	income := s.seed(s.userID, models.TransactionTypeIncome, "Salary", day(2024, 1, 1))
	s.seed(s.userID, models.TransactionTypeExpense, "Food", day(2024, 1, 2))

	result, err := s.repo.List(s.ctx, models.NewTransactionFilters(s.userID).WithType(models.TransactionTypeIncome))

	s.Require().NoError(err)
	s.Equal([]uuid.UUID{income.ID}, ids(result))
}

func (s *TransactionRepositoryTestSuite) TestList_CategoryCases() {
	food := s.seed(s.userID, models.TransactionTypeExpense, "Food", day(2024, 1, 3))
	tagged := s.seed(s.userID, models.TransactionTypeExpense, models.CategoryUncategorized, day(2024, 1, 2))
	untagged := s.seed(s.userID, models.TransactionTypeExpense, "", day(2024, 1, 1))

	all, err := s.repo.List(s.ctx, models.NewTransactionFilters(s.userID).WithCategory(models.CategoryAll))
	s.Require().NoError(err)
	unfiltered, err := s.repo.List(s.ctx, models.NewTransactionFilters(s.userID))
	s.Require().NoError(err)
	s.Equal(ids(unfiltered), ids(all))
	s.Equal([]uuid.UUID{food.ID, tagged.ID, untagged.ID}, ids(all))

	uncategorized, err := s.repo.List(s.ctx, models.NewTransactionFilters(s.userID).WithCategory(models.CategoryUncategorized))
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{tagged.ID}, ids(uncategorized))

	exact, err := s.repo.List(s.ctx, models.NewTransactionFilters(s.userID).WithCategory("Food"))
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{food.ID}, ids(exact))

	none, err := s.repo.List(s.ctx, models.NewTransactionFilters(s.userID).WithCategory("food"))
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *TransactionRepositoryTestSuite) TestGetByDateRange_Month() {
	feb1 := s.seed(s.userID, models.TransactionTypeExpense, "", day(2024, 2, 1))
	feb29 := s.seed(s.userID, models.TransactionTypeIncome, "", day(2024, 2, 29))
	s.seed(s.userID, models.TransactionTypeExpense, "", day(2024, 3, 1))
	s.seed(uuid.New(), models.TransactionTypeExpense, "", day(2024, 2, 15))

	result, err := s.repo.GetByDateRange(s.ctx, s.userID,
		day(2024, 2, 1),
		time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
	)

	s.Require().NoError(err)
	s.Equal([]uuid.UUID{feb29.ID, feb1.ID}, ids(result))
}

func (s *TransactionRepositoryTestSuite) TestUpdate_OverwritesFields() {
	tx := s.seed(s.userID, models.TransactionTypeExpense, "Food", day(2024, 1, 1))

	tx.Type = models.TransactionTypeIncome
	tx.Category = ""
	tx.Amount = decimal.RequireFromString("99.99")
	tx.Date = day(2024, 1, 20)
	tx.Description = ""
	s.Require().NoError(s.repo.Update(s.ctx, tx))

	found, err := s.repo.GetByID(s.ctx, tx.ID)
	s.Require().NoError(err)
	s.Equal(models.TransactionTypeIncome, found.Type)
	s.Equal("", found.Category)
	s.Equal("99.99", found.Amount.StringFixed(2))
	s.True(day(2024, 1, 20).Equal(found.Date))
	s.Equal("", found.Description)
	s.Equal(s.userID, found.UserID)
}

func (s *TransactionRepositoryTestSuite) TestUpdate_NotFound() {
	tx := s.newTransaction(s.userID, models.TransactionTypeExpense, "", day(2024, 1, 1))
	tx.ID = uuid.New()

	err := s.repo.Update(s.ctx, tx)

	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositoryTestSuite) TestDelete() {
	tx := s.seed(s.userID, models.TransactionTypeExpense, "", day(2024, 1, 1))

	s.Require().NoError(s.repo.Delete(s.ctx, tx.ID))

	_, err := s.repo.GetByID(s.ctx, tx.ID)
	s.ErrorIs(err, ErrTransactionNotFound)
	s.ErrorIs(s.repo.Delete(s.ctx, tx.ID), ErrTransactionNotFound)
}

func (s *TransactionRepositoryTestSuite) TestCategoryRepository_EnsureExistsIsIdempotent() {
	categories := NewCategoryRepository(s.db.DB)

	s.Require().NoError(categories.EnsureExists(s.ctx, s.userID, "Food", models.TransactionTypeExpense))
	s.Require().NoError(categories.EnsureExists(s.ctx, s.userID, "Food", models.TransactionTypeIncome))
	s.Require().NoError(categories.EnsureExists(s.ctx, uuid.New(), "Food", models.TransactionTypeExpense))

	var stored []models.Category
	s.Require().NoError(s.db.Where("user_id = ?", s.userID).Find(&stored).Error)
	s.Require().Len(stored, 1)
	s.Equal("Food", stored[0].Name)
	s.Equal(models.TransactionTypeExpense, stored[0].Type)
}
