package services

import (
	"math"
	"time"

	"gorm.io/gorm"

	apperrors "duitku/internal/errors"
	"duitku/internal/models"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateTransaction records a new transaction owned by userID.
func (s *transactionService) CreateTransaction(
	userID uint,
	nominal *float64,
	date time.Time,
	status models.TransactionStatus,
	description string,
) (*models.Transaction, error) {
	switch status {
	case models.TransactionStatusIncome, models.TransactionStatusOutcome:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "status must be income or outcome")
	}

	if nominal != nil {
		if *nominal < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "nominal must not be negative")
		}
		rounded := round2(*nominal)
		nominal = &rounded
	}

	// Default date to now if not provided
	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		UserID:          userID,
		Nominal:         nominal,
		TransactionDate: date,
		Status:          status,
		Description:     description,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInsertFailed, err)
	}

	return transaction, nil
}

// GetMonthlyTransactions returns the user's transactions for the given
// calendar month, newest first, together with the income/outcome/balance
// summary. The month is the half-open range [first instant of the month,
// first instant of the next month); December rolls into January of the
// following year.
func (s *transactionService) GetMonthlyTransactions(userID uint, year, month int) ([]models.Transaction, *MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrValidation, "month must be between 1 and 12")
	}
	if year < 1900 || year > 2100 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrValidation, "year must be between 1900 and 2100")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	// id DESC is the deterministic tie-break for same-date records:
	// most recently inserted first.
	var transactions []models.Transaction
	if err := s.db.
		Where("user_id = ? AND transaction_date >= ? AND transaction_date < ?", userID, start, end).
		Order("transaction_date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrAggregationFailed, err)
	}

	var totalIncome, totalOutcome float64
	for _, t := range transactions {
		if t.Nominal == nil {
			continue
		}
		switch t.Status {
		case models.TransactionStatusIncome:
			totalIncome += *t.Nominal
		case models.TransactionStatusOutcome:
			totalOutcome += *t.Nominal
		}
	}

	totalIncome = round2(totalIncome)
	totalOutcome = round2(totalOutcome)
	summary := &MonthlySummary{
		TotalIncome:  totalIncome,
		TotalOutcome: totalOutcome,
		Balance:      round2(totalIncome - totalOutcome),
	}

	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return transactions, summary, nil
}
