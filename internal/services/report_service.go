package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidMonth = errors.New("invalid month format, expected YYYY-MM")

const monthLayout = "2006-01"

type reportService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	metrics         MetricsRecorderInterface
	logger          TransactionLoggerInterface
}

func NewReportService(
	transactionRepo repositories.TransactionRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger TransactionLoggerInterface,
) ReportServiceInterface {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	if logger == nil {
		logger = NewTransactionLogger(nil)
	}
	return &reportService{
		transactionRepo: transactionRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// MonthRange returns the first and last second of month (YYYY-MM) in UTC.
func MonthRange(month string) (time.Time, time.Time, error) {
	if !validation.ValidReportMonth(month) {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}

	parsed, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}

	y, m, _ := parsed.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	// day 0 of the next month is the last day of this one
	end := time.Date(y, m+1, 0, 23, 59, 59, 0, time.UTC)

	return start, end, nil
}

// GenerateMonthlyReport summarises userID's transactions dated within month.
// The month is validated before any query runs.
func (s *reportService) GenerateMonthlyReport(ctx context.Context, userID uuid.UUID, month string) (*models.MonthlyReport, error) {
	start, end, err := MonthRange(month)
	if err != nil {
		s.metrics.IncrementCounter(MetricReportGenerated, map[string]string{"status": "rejected"})
		return nil, err
	}

	began := time.Now()

	transactions, err := s.transactionRepo.GetByDateRange(ctx, userID, start, end)
	if err != nil {
		s.metrics.IncrementCounter(MetricReportGenerated, map[string]string{"status": "failed"})
		return nil, fmt.Errorf("failed to load transactions for report: %w", err)
	}

	report := buildMonthlyReport(month, start, end, transactions)

	duration := time.Since(began)
	s.metrics.IncrementCounter(MetricReportGenerated, map[string]string{"status": "success"})
	s.metrics.RecordProcessingTime(MetricReportDuration, duration)
	s.metrics.RecordGauge(MetricReportTransactions, float64(report.TransactionCount), nil)
	s.logger.LogReportGenerated(ctx, userID, month, report.TransactionCount, duration.Milliseconds())

	return report, nil
}

// buildMonthlyReport reshapes rows and sums them. TotalExpenses adds every
// amount regardless of type; Breakdown splits the same rows by type.
func buildMonthlyReport(month string, start, end time.Time, transactions []models.Transaction) *models.MonthlyReport {
	report := &models.MonthlyReport{
		Month:         month,
		StartDate:     start,
		EndDate:       end,
		TotalExpenses: decimal.Zero,
		Breakdown: models.ReportBreakdown{
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		},
		TransactionCount: len(transactions),
		Transactions:     make([]models.MonthlyReportTransaction, 0, len(transactions)),
	}

	for i := range transactions {
		t := &transactions[i]

		report.TotalExpenses = report.TotalExpenses.Add(t.Amount)
		if t.IsIncome() {
			report.Breakdown.Income = report.Breakdown.Income.Add(t.Amount)
		} else {
			report.Breakdown.Expense = report.Breakdown.Expense.Add(t.Amount)
		}

		report.Transactions = append(report.Transactions, models.MonthlyReportTransaction{
			ID:          t.ID,
			Date:        t.Date,
			Amount:      t.Amount,
			Category:    t.CategoryOrDefault(),
			Type:        t.Type,
			Description: t.Description,
		})
	}

	return report
}
