package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	"finance-tracker/internal/dto"
	apierrors "finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/services"
	"finance-tracker/internal/validation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const transactionRemovedMessage = "Transaction removed"

// TransactionHandler handles transaction and report HTTP requests
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
	reportService      services.ReportServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactionService services.TransactionServiceInterface,
	reportService services.ReportServiceInterface,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		reportService:      reportService,
	}
}

// CreateTransaction records a transaction for the caller
// @Summary Create transaction
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_002 - Missing type, amount or date"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return sendValidationFailure(c, err)
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request().Context(), userID, &req)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.ToTransactionResponse(transaction))
}

// ListTransactions returns the caller's transactions, newest first
// @Summary List transactions
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param startDate query string false "Inclusive lower bound (YYYY-MM-DD or RFC 3339)"
// @Param endDate query string false "Inclusive upper bound; a bare date covers the whole day"
// @Param type query string false "Transaction type" Enums(income, expense)
// @Param category query string false "Category name, All, or Uncategorized"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_007 - Invalid date"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var query dto.ListTransactionsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("invalid query parameters"))
	}
	if err := c.Validate(&query); err != nil {
		return sendValidationFailure(c, err)
	}

	filters, err := buildTransactionFilters(userID, query)
	if err != nil {
		return SendError(c, apierrors.ValidationOutOfRange, apierrors.WithDetails(err.Error()))
	}

	transactions, err := h.transactionService.ListTransactions(c.Request().Context(), filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		Count:        len(transactions),
	})
}

// UpdateTransaction changes the fields present in the body
// @Summary Update transaction
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID (UUID)"
// @Param request body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid fields"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 403 {object} errors.ErrorResponse "AUTH_005 - Transaction belongs to another user"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	transactionID, err := getUUIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("invalid transaction id"))
	}

	var req dto.UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("invalid request body"))
	}
	if req.IsEmpty() {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("no fields to update"))
	}
	if err := c.Validate(&req); err != nil {
		return sendValidationFailure(c, err)
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Request().Context(), userID, transactionID, &req)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ToTransactionResponse(transaction))
}

// DeleteTransaction removes a transaction owned by the caller
// @Summary Delete transaction
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Transaction ID (UUID)"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 403 {object} errors.ErrorResponse "AUTH_005 - Transaction belongs to another user"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	transactionID, err := getUUIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("invalid transaction id"))
	}

	if err := h.transactionService.DeleteTransaction(c.Request().Context(), userID, transactionID); err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: transactionRemovedMessage})
}

// MonthlyReport exports one calendar month of the caller's transactions
// @Summary Monthly report
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} dto.MonthlyReportResponse
// @Failure 400 {object} errors.ErrorResponse "REPORT_001 - Invalid month"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions/report [get]
func (h *TransactionHandler) MonthlyReport(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var query dto.ReportQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return SendError(c, apierrors.ReportInvalidMonth)
	}

	report, err := h.reportService.GenerateMonthlyReport(c.Request().Context(), userID, query.Month)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ToMonthlyReportResponse(report))
}

// buildTransactionFilters turns validated query parameters into owner-scoped
// filters. A date-only endDate covers the whole day.
func buildTransactionFilters(userID uuid.UUID, query dto.ListTransactionsQuery) (models.TransactionFilters, error) {
	filters := models.NewTransactionFilters(userID).
		WithType(query.Type).
		WithCategory(query.Category)

	if query.StartDate != "" {
		start, _, err := models.ParseDate(query.StartDate)
		if err != nil {
			return filters, err
		}
		filters.StartDate = &start
	}

	if query.EndDate != "" {
		end, dateOnly, err := models.ParseDate(query.EndDate)
		if err != nil {
			return filters, err
		}
		if dateOnly {
			end = models.EndOfDay(end)
		}
		filters.EndDate = &end
	}

	if filters.StartDate != nil && filters.EndDate != nil && filters.StartDate.After(*filters.EndDate) {
		return filters, errors.New("startDate must not be after endDate")
	}

	return filters, nil
}

// sendValidationFailure maps validator errors onto the most specific code.
func sendValidationFailure(c echo.Context, err error) error {
	fieldErrors := validation.FieldErrors(err)
	if fieldErrors == nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails(err.Error()))
	}

	switch {
	case validation.HasTag(err, "required"):
		return SendError(c, apierrors.ValidationRequiredField, apierrors.WithDetails(fieldDetails(fieldErrors)...))
	case validation.HasTag(err, "calendar_date"):
		return SendError(c, apierrors.ValidationInvalidDate, apierrors.WithDetails(fieldDetails(fieldErrors)...))
	case validation.HasTag(err, "transaction_type"):
		return SendError(c, apierrors.TransactionInvalidType, apierrors.WithDetails(fieldDetails(fieldErrors)...))
	case validation.HasTag(err, "gte"):
		return SendError(c, apierrors.TransactionInvalidAmount, apierrors.WithDetails(fieldDetails(fieldErrors)...))
	default:
		return SendValidationError(c, fieldErrors)
	}
}

func fieldDetails(fieldErrors map[string]string) []string {
	details := make([]string, 0, len(fieldErrors))
	for field, message := range fieldErrors {
		details = append(details, fmt.Sprintf("%s: %s", field, message))
	}
	sort.Strings(details)
	return details
}

// sendServiceError maps service and model errors to API error codes.
// Anything unrecognised is a system error.
func sendServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrMissingRequiredFields):
		return SendError(c, apierrors.ValidationRequiredField, apierrors.WithDetails(err.Error()))
	case errors.Is(err, services.ErrInvalidDate):
		return SendError(c, apierrors.ValidationInvalidDate, apierrors.WithDetails(err.Error()))
	case errors.Is(err, models.ErrInvalidTransactionType):
		return SendError(c, apierrors.TransactionInvalidType)
	case errors.Is(err, models.ErrNegativeAmount):
		return SendError(c, apierrors.TransactionInvalidAmount)
	case errors.Is(err, models.ErrMissingDate), errors.Is(err, models.ErrCategoryTooLong):
		return SendError(c, apierrors.TransactionValidationFailed, apierrors.WithDetails(err.Error()))
	case errors.Is(err, services.ErrTransactionNotFound):
		return SendError(c, apierrors.TransactionNotFound)
	case errors.Is(err, services.ErrTransactionForbidden):
		return SendError(c, apierrors.AuthInsufficientPermission, apierrors.WithDetails("transaction belongs to another user"))
	case errors.Is(err, services.ErrInvalidMonth):
		return SendError(c, apierrors.ReportInvalidMonth)
	default:
		return SendSystemError(c, err)
	}
}
