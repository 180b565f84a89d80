package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/events"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrMissingRequiredFields = errors.New("type, amount and date are required")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrTransactionForbidden  = errors.New("transaction belongs to another user")
	ErrInvalidDate           = errors.New("invalid date")
)

const (
	operationCreate = "create"
	operationUpdate = "update"
	operationDelete = "delete"
)

type transactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	publisher       events.Publisher
	metrics         MetricsRecorderInterface
	logger          TransactionLoggerInterface
}

func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	publisher events.Publisher,
	metrics MetricsRecorderInterface,
	logger TransactionLoggerInterface,
) TransactionServiceInterface {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	if logger == nil {
		logger = NewTransactionLogger(nil)
	}
	return &transactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		publisher:       publisher,
		metrics:         metrics,
		logger:          logger,
	}
}

// CreateTransaction records a new entry for userID. Nothing is persisted
// unless type, amount and date are all present and valid.
func (s *transactionService) CreateTransaction(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	if req == nil || req.Type == nil || *req.Type == "" || req.Amount == nil || req.Date == nil || *req.Date == "" {
		s.recordMutation(operationCreate, "rejected")
		return nil, ErrMissingRequiredFields
	}

	date, err := parseTransactionDate(*req.Date)
	if err != nil {
		s.recordMutation(operationCreate, "rejected")
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Type:        *req.Type,
		Category:    req.Category,
		Amount:      *req.Amount,
		Date:        date,
		Description: req.Description,
	}

	if err := transaction.Validate(); err != nil {
		s.recordMutation(operationCreate, "rejected")
		return nil, err
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		s.recordMutation(operationCreate, "failed")
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.rememberCategory(ctx, transaction)
	s.recordMutation(operationCreate, "success")
	s.logger.LogTransactionCreated(ctx, transaction)
	s.publish(ctx, events.TransactionCreated, transaction)

	return transaction, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, filters models.TransactionFilters) ([]models.Transaction, error) {
	transactions, err := s.transactionRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// UpdateTransaction applies the fields present in req to a transaction
// owned by userID. The owner never changes.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error) {
	transaction, err := s.guard(ctx, operationUpdate, userID, transactionID)
	if err != nil {
		return nil, err
	}

	updatedFields, err := applyUpdate(transaction, req)
	if err != nil {
		s.recordMutation(operationUpdate, "rejected")
		return nil, err
	}

	if err := transaction.Validate(); err != nil {
		s.recordMutation(operationUpdate, "rejected")
		return nil, err
	}

	if err := s.transactionRepo.Update(ctx, transaction); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			s.recordMutation(operationUpdate, "not_found")
			return nil, ErrTransactionNotFound
		}
		s.recordMutation(operationUpdate, "failed")
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.rememberCategory(ctx, transaction)
	s.recordMutation(operationUpdate, "success")
	s.logger.LogTransactionUpdated(ctx, transaction, updatedFields)
	s.publish(ctx, events.TransactionUpdated, transaction)

	return transaction, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID uuid.UUID) error {
	transaction, err := s.guard(ctx, operationDelete, userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.Delete(ctx, transactionID); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			s.recordMutation(operationDelete, "not_found")
			return ErrTransactionNotFound
		}
		s.recordMutation(operationDelete, "failed")
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.recordMutation(operationDelete, "success")
	s.logger.LogTransactionDeleted(ctx, transactionID, userID)
	s.publish(ctx, events.TransactionDeleted, transaction)

	return nil
}

// guard loads the transaction and checks that userID owns it. The record is
// only returned when access is granted.
func (s *transactionService) guard(ctx context.Context, operation string, userID, transactionID uuid.UUID) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil && !errors.Is(err, repositories.ErrTransactionNotFound) {
		s.recordMutation(operation, "failed")
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}

	status := models.CheckOwnership(transaction, userID)
	switch status {
	case models.OwnershipGranted:
		return transaction, nil
	case models.OwnershipNotFound:
		s.denied(ctx, operation, transactionID, userID, status)
		return nil, ErrTransactionNotFound
	default:
		s.denied(ctx, operation, transactionID, userID, status)
		return nil, ErrTransactionForbidden
	}
}

func (s *transactionService) denied(ctx context.Context, operation string, transactionID, userID uuid.UUID, status models.OwnershipStatus) {
	s.recordMutation(operation, status.String())
	s.metrics.IncrementCounter(MetricOwnershipDenied, map[string]string{
		"operation": operation,
		"reason":    status.String(),
	})
	s.logger.LogOwnershipDenied(ctx, operation, transactionID, userID, status)
}

// applyUpdate copies the present fields of req onto t and returns their names.
func applyUpdate(t *models.Transaction, req *dto.UpdateTransactionRequest) ([]string, error) {
	if req == nil {
		return nil, nil
	}

	var fields []string
	if req.Type != nil {
		t.Type = *req.Type
		fields = append(fields, "type")
	}
	if req.Category != nil {
		t.Category = *req.Category
		fields = append(fields, "category")
	}
	if req.Amount != nil {
		t.Amount = *req.Amount
		fields = append(fields, "amount")
	}
	if req.Date != nil {
		date, err := parseTransactionDate(*req.Date)
		if err != nil {
			return nil, err
		}
		t.Date = date
		fields = append(fields, "date")
	}
	if req.Description != nil {
		t.Description = *req.Description
		fields = append(fields, "description")
	}
	return fields, nil
}

func parseTransactionDate(value string) (time.Time, error) {
	date, _, err := models.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, value)
	}
	return models.NormalizeDate(date), nil
}

// rememberCategory records the category name for the owner. Failure never
// fails the mutation.
func (s *transactionService) rememberCategory(ctx context.Context, t *models.Transaction) {
	if s.categoryRepo == nil || t.Category == "" {
		return
	}
	if err := s.categoryRepo.EnsureExists(ctx, t.UserID, t.Category, t.Type); err != nil {
		slog.WarnContext(ctx, "failed to record category",
			"category", t.Category,
			"user_id", t.UserID.String(),
			"error", err,
		)
	}
}

func (s *transactionService) publish(ctx context.Context, eventType string, t *models.Transaction) {
	err := s.publisher.Publish(ctx, events.NewTransactionEvent(eventType, t))
	status := "success"
	if err != nil {
		status = "failed"
		s.logger.LogEventPublishFailed(ctx, eventType, t.ID, err.Error())
	}
	s.metrics.IncrementCounter(MetricEventPublished, map[string]string{
		"event":  eventType,
		"status": status,
	})
}

func (s *transactionService) recordMutation(operation, status string) {
	s.metrics.IncrementCounter(MetricTransactionMutation, map[string]string{
		"operation": operation,
		"status":    status,
	})
}
