package services

import (
	"context"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"

	"github.com/google/uuid"
)

// TransactionServiceInterface defines the owner-scoped transaction operations
type TransactionServiceInterface interface {
	CreateTransaction(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error)
	ListTransactions(ctx context.Context, filters models.TransactionFilters) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, transactionID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID uuid.UUID) error
}

// ReportServiceInterface builds monthly exports
type ReportServiceInterface interface {
	GenerateMonthlyReport(ctx context.Context, userID uuid.UUID, month string) (*models.MonthlyReport, error)
}

type TokenServiceInterface interface {
	GenerateAccessToken(userID uuid.UUID) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type TransactionLoggerInterface interface {
	LogTransactionCreated(ctx context.Context, t *models.Transaction)
	LogTransactionUpdated(ctx context.Context, t *models.Transaction, updatedFields []string)
	LogTransactionDeleted(ctx context.Context, transactionID, userID uuid.UUID)
	LogOwnershipDenied(ctx context.Context, operation string, transactionID, userID uuid.UUID, status models.OwnershipStatus)
	LogReportGenerated(ctx context.Context, userID uuid.UUID, month string, transactionCount int, durationMs int64)
	LogEventPublishFailed(ctx context.Context, eventType string, transactionID uuid.UUID, errorMsg string)
}
