package services

import (
	"strings"
	"testing"
	"time"

	"duitku/internal/models"
	"duitku/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	t.Run("records_income", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		date := time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC)
		tx, err := svc.CreateTransaction(user.ID, testutil.Nominal(500000), date, models.TransactionStatusIncome, "salary")
		testutil.AssertNoError(t, err)

		if tx.ID == 0 {
			t.Fatal("expected non-zero transaction ID")
		}
		if tx.Nominal == nil || *tx.Nominal != 500000 {
			t.Errorf("expected nominal 500000, got %v", tx.Nominal)
		}
		if !tx.TransactionDate.Equal(date) {
			t.Errorf("expected date %v, got %v", date, tx.TransactionDate)
		}
	})

	t.Run("nil_nominal_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		tx, err := svc.CreateTransaction(user.ID, nil, time.Now(), models.TransactionStatusOutcome, "no amount yet")
		testutil.AssertNoError(t, err)
		if tx.Nominal != nil {
			t.Errorf("expected nil nominal, got %v", *tx.Nominal)
		}
	})

	t.Run("nominal_rounded_to_two_decimals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		tx, err := svc.CreateTransaction(user.ID, testutil.Nominal(3.14159), time.Now(), models.TransactionStatusIncome, "")
		testutil.AssertNoError(t, err)
		if *tx.Nominal != 3.14 {
			t.Errorf("expected nominal 3.14, got %v", *tx.Nominal)
		}
	})

	t.Run("zero_date_defaults_to_now", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		before := time.Now().Add(-time.Second)
		tx, err := svc.CreateTransaction(user.ID, testutil.Nominal(10), time.Time{}, models.TransactionStatusIncome, "")
		testutil.AssertNoError(t, err)
		if tx.TransactionDate.Before(before) {
			t.Errorf("expected date defaulted to now, got %v", tx.TransactionDate)
		}
	})

	t.Run("unknown_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTransaction(user.ID, testutil.Nominal(10), time.Now(), "transfer", "")
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("negative_nominal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTransaction(user.ID, testutil.Nominal(-1), time.Now(), models.TransactionStatusIncome, "")
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})
}

func TestGetMonthlyTransactions_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionService(db)

	t.Run("month_too_high", func(t *testing.T) {
		_, _, err := svc.GetMonthlyTransactions(1, 2025, 13)
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
		if !strings.Contains(err.Error(), "month") {
			t.Errorf("expected month-specific message, got %q", err.Error())
		}
	})

	t.Run("month_too_low", func(t *testing.T) {
		_, _, err := svc.GetMonthlyTransactions(1, 2025, 0)
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("year_too_low", func(t *testing.T) {
		_, _, err := svc.GetMonthlyTransactions(1, 1899, 5)
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
		if !strings.Contains(err.Error(), "year") {
			t.Errorf("expected year-specific message, got %q", err.Error())
		}
	})

	t.Run("year_too_high", func(t *testing.T) {
		_, _, err := svc.GetMonthlyTransactions(1, 2101, 5)
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})
}

func TestGetMonthlyTransactions_Range(t *testing.T) {
	t.Run("half_open_month_boundaries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		atStart := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
		atEnd := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionStatusIncome, testutil.Nominal(100), atStart)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionStatusIncome, testutil.Nominal(200), atEnd)

		records, summary, err := svc.GetMonthlyTransactions(user.ID, 2025, 10)
		testutil.AssertNoError(t, err)

		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		if !records[0].TransactionDate.Equal(atStart) {
			t.Errorf("expected the record dated at the range start, got %v", records[0].TransactionDate)
		}
		if summary.TotalIncome != 100 {
			t.Errorf("expected totalIncome 100, got %v", summary.TotalIncome)
		}
	})

	t.Run("december_rolls_into_next_year", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		lateDecember := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)
		newYear := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionStatusIncome, testutil.Nominal(10), lateDecember)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionStatusIncome, testutil.Nominal(20), newYear)

		records, summary, err := svc.GetMonthlyTransactions(user.ID, 2025, 12)
		testutil.AssertNoError(t, err)

		if len(records) != 1 {
			t.Fatalf("expected only the December record, got %d", len(records))
		}
		if summary.TotalIncome != 10 {
			t.Errorf("expected totalIncome 10, got %v", summary.TotalIncome)
		}
	})

	t.Run("scoped_to_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionStatusIncome, testutil.Nominal(100), date)
		testutil.CreateTestTransaction(t, db, other.ID, models.TransactionStatusIncome, testutil.Nominal(999), date)

		records, summary, err := svc.GetMonthlyTransactions(user.ID, 2025, 10)
		testutil.AssertNoError(t, err)

		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		if summary.TotalIncome != 100 {
			t.Errorf("expected totalIncome 100, got %v", summary.TotalIncome)
		}
	})

	t.Run("ordered_newest_first_with_id_tiebreak", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		early := time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)
		late := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
		first := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionStatusIncome, testutil.Nominal(1), late)
		second := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionStatusIncome, testutil.Nominal(2), late)
		third := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionStatusIncome, testutil.Nominal(3), early)

		records, _, err := svc.GetMonthlyTransactions(user.ID, 2025, 10)
		testutil.AssertNoError(t, err)

		if len(records) != 3 {
			t.Fatalf("expected 3 records, got %d", len(records))
		}
		// Same-date records come back most recently inserted first.
		want := []uint{second.ID, first.ID, third.ID}
		for i, id := range want {
			if records[i].ID != id {
				t.Errorf("position %d: expected transaction %d, got %d", i, id, records[i].ID)
			}
		}
	})
}

func TestGetMonthlyTransactions_Summary(t *testing.T) {
	t.Run("income_minus_outcome_equals_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		date := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionStatusIncome, testutil.Nominal(100.10), date)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionStatusIncome, testutil.Nominal(200.25), date)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionStatusOutcome, testutil.Nominal(50.15), date)

		_, summary, err := svc.GetMonthlyTransactions(user.ID, 2025, 10)
		testutil.AssertNoError(t, err)

		if summary.TotalIncome != 300.35 {
			t.Errorf("expected totalIncome 300.35, got %v", summary.TotalIncome)
		}
		if summary.TotalOutcome != 50.15 {
			t.Errorf("expected totalOutcome 50.15, got %v", summary.TotalOutcome)
		}
		if summary.Balance != 250.20 {
			t.Errorf("expected balance 250.20, got %v", summary.Balance)
		}
	})

	t.Run("null_nominal_lists_but_sums_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		date := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionStatusIncome, testutil.Nominal(75), date)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionStatusOutcome, nil, date)

		records, summary, err := svc.GetMonthlyTransactions(user.ID, 2025, 10)
		testutil.AssertNoError(t, err)

		if len(records) != 2 {
			t.Fatalf("expected the null-nominal record to list, got %d records", len(records))
		}
		if summary.TotalOutcome != 0 {
			t.Errorf("expected totalOutcome 0, got %v", summary.TotalOutcome)
		}
		if summary.Balance != 75 {
			t.Errorf("expected balance 75, got %v", summary.Balance)
		}
	})

	t.Run("empty_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		records, summary, err := svc.GetMonthlyTransactions(user.ID, 2025, 4)
		testutil.AssertNoError(t, err)

		if records == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if len(records) != 0 {
			t.Errorf("expected no records, got %d", len(records))
		}
		if summary.TotalIncome != 0 || summary.TotalOutcome != 0 || summary.Balance != 0 {
			t.Errorf("expected all-zero summary, got %+v", summary)
		}
	})

	t.Run("insert_then_query_scenario", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		date := time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC)
		created, err := svc.CreateTransaction(user.ID, testutil.Nominal(500000), date, models.TransactionStatusOutcome, "laptop")
		testutil.AssertNoError(t, err)

		records, summary, err := svc.GetMonthlyTransactions(user.ID, 2025, 10)
		testutil.AssertNoError(t, err)

		if summary.TotalOutcome < 500000.00 {
			t.Errorf("expected totalOutcome >= 500000.00, got %v", summary.TotalOutcome)
		}
		found := false
		for _, r := range records {
			if r.ID == created.ID {
				found = true
			}
		}
		if !found {
			t.Error("expected the inserted transaction in the returned list")
		}
	})
}
