package services

import (
	"context"
	"log/slog"
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
)

type traceIDKey struct{}

// ContextWithTraceID returns ctx carrying the request trace id for log correlation.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace id stored by ContextWithTraceID, or "".
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if traceID, ok := ctx.Value(traceIDKey{}).(string); ok {
		return traceID
	}
	return ""
}

// TransactionLogger provides structured logging for transaction operations.
// Amounts and descriptions are never logged.
type TransactionLogger struct {
	logger *slog.Logger
}

func NewTransactionLogger(logger *slog.Logger) TransactionLoggerInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransactionLogger{
		logger: logger,
	}
}

func (tl *TransactionLogger) LogTransactionCreated(ctx context.Context, t *models.Transaction) {
	tl.logger.InfoContext(ctx, "transaction created",
		slog.String("event_type", "transaction_created"),
		slog.String("transaction_id", t.ID.String()),
		slog.String("user_id", t.UserID.String()),
		slog.String("type", t.Type),
		slog.String("date", t.Date.Format(models.DateLayout)),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}

func (tl *TransactionLogger) LogTransactionUpdated(ctx context.Context, t *models.Transaction, updatedFields []string) {
	tl.logger.InfoContext(ctx, "transaction updated",
		slog.String("event_type", "transaction_updated"),
		slog.String("transaction_id", t.ID.String()),
		slog.String("user_id", t.UserID.String()),
		slog.Any("updated_fields", updatedFields),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}

func (tl *TransactionLogger) LogTransactionDeleted(ctx context.Context, transactionID, userID uuid.UUID) {
	tl.logger.InfoContext(ctx, "transaction deleted",
		slog.String("event_type", "transaction_deleted"),
		slog.String("transaction_id", transactionID.String()),
		slog.String("user_id", userID.String()),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}

// LogOwnershipDenied records a rejected update or delete
func (tl *TransactionLogger) LogOwnershipDenied(ctx context.Context, operation string, transactionID, userID uuid.UUID, status models.OwnershipStatus) {
	tl.logger.WarnContext(ctx, "transaction ownership denied",
		slog.String("event_type", "ownership_denied"),
		slog.String("operation", operation),
		slog.String("transaction_id", transactionID.String()),
		slog.String("user_id", userID.String()),
		slog.String("status", status.String()),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}

func (tl *TransactionLogger) LogReportGenerated(ctx context.Context, userID uuid.UUID, month string, transactionCount int, durationMs int64) {
	tl.logger.InfoContext(ctx, "monthly report generated",
		slog.String("event_type", "report_generated"),
		slog.String("user_id", userID.String()),
		slog.String("month", month),
		slog.Int("transaction_count", transactionCount),
		slog.Int64("duration_ms", durationMs),
		slog.Time("timestamp", time.Now()),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}

func (tl *TransactionLogger) LogEventPublishFailed(ctx context.Context, eventType string, transactionID uuid.UUID, errorMsg string) {
	tl.logger.ErrorContext(ctx, "event publish failed",
		slog.String("event_type", "event_publish_failed"),
		slog.String("event", eventType),
		slog.String("transaction_id", transactionID.String()),
		slog.String("error", errorMsg),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}
