package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "duitku/internal/errors"
	"duitku/internal/models"
	"duitku/internal/services"
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the transaction creation payload.
// Nominal is optional; a record without an amount is allowed and counts as
// zero in monthly summaries.
type CreateTransactionRequest struct {
	Nominal         *float64 `json:"nominal"`
	TransactionDate string   `json:"transactionDate"`
	Status          string   `json:"status" binding:"required,transaction_status"`
	Description     string   `json:"description"`
}

// MonthlyResponse represents the monthly aggregation response
type MonthlyResponse struct {
	Success bool                    `json:"success"`
	Data    []models.Transaction    `json:"data"`
	Summary services.MonthlySummary `json:"summary"`
}

// parseTransactionDate accepts RFC 3339 or a plain calendar date.
func parseTransactionDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// Create handles transaction creation
// @Summary     Record a transaction
// @Description Record an income or outcome transaction for the authenticated user
// @Tags        transaction
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction data"
// @Success     201 {object} models.Transaction "Transaction recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transaction [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date time.Time
	if req.TransactionDate != "" {
		date, err = parseTransactionDate(req.TransactionDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "transactionDate must be an RFC 3339 timestamp or YYYY-MM-DD date"))
			return
		}
	}

	transaction, err := h.transactionService.CreateTransaction(
		userID, req.Nominal, date, models.TransactionStatus(req.Status), req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    transaction,
	})
}

// GetMonthly handles the monthly aggregation query
// @Summary     Monthly transactions and summary
// @Description List the authenticated user's transactions for a calendar month, newest first, with income/outcome/balance totals
// @Tags        transaction
// @Produce     json
// @Param       year  query int true "Year (1900-2100)"
// @Param       month query int true "Month (1-12)"
// @Success     200 {object} MonthlyResponse "Transactions and summary"
// @Failure     400 {object} ErrorResponse "Invalid year or month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Aggregation failed"
// @Router      /transaction [get]
func (h *TransactionHandler) GetMonthly(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "year must be an integer"))
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "month must be an integer"))
		return
	}

	transactions, summary, err := h.transactionService.GetMonthlyTransactions(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    transactions,
		"summary": summary,
	})
}
