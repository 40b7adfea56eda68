package services

import (
	"time"

	"duitku/internal/models"
)

// MonthlySummary holds the aggregated totals for one calendar month.
// All three values are rounded to two decimal places.
type MonthlySummary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalOutcome float64 `json:"totalOutcome"`
	Balance      float64 `json:"balance"`
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID uint, nominal *float64, date time.Time, status models.TransactionStatus, description string) (*models.Transaction, error)
	GetMonthlyTransactions(userID uint, year, month int) ([]models.Transaction, *MonthlySummary, error)
}
