package models

import "time"

// TransactionStatus represents the direction of a transaction
type TransactionStatus string

const (
	TransactionStatusIncome  TransactionStatus = "income"
	TransactionStatusOutcome TransactionStatus = "outcome"
)

// Transaction represents a financial transaction in the system.
// Nominal is nullable: a record without an amount still lists in monthly
// results but contributes zero to the summary totals.
type Transaction struct {
	Base
	UserID          uint              `gorm:"not null;index:idx_transactions_user_date" json:"user_id"`
	Nominal         *float64          `gorm:"type:decimal(15,2)" json:"nominal"`
	TransactionDate time.Time         `gorm:"not null;index:idx_transactions_user_date" json:"transactionDate"`
	Status          TransactionStatus `gorm:"type:varchar(16);not null" json:"status"`
	Description     string            `json:"description"`
}
