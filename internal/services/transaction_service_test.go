package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func fixedClock(t *testing.T, date string) func() time.Time {
	t.Helper()
	now := testutil.Date(t, date).Add(10 * time.Hour)
	return func() time.Time { return now }
}

func TestCreateTransaction(t *testing.T) {
	t.Run("valid_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		date := time.Date(2024, 1, 5, 18, 30, 0, 0, time.UTC)
		tx, err := svc.CreateTransaction(user.ID, models.TransactionTypeExpense, "Groceries", decimal.RequireFromString("30.25"), "  Weekly shop ", date)
		testutil.AssertNoError(t, err)

		if tx.ID == "" {
			t.Fatal("expected transaction ID to be assigned")
		}
		testutil.AssertDecimal(t, tx.Amount, "30.25")
		if !tx.Date.Equal(testutil.Date(t, "2024-01-05")) {
			t.Errorf("expected date truncated to 2024-01-05, got %s", tx.Date)
		}
		if tx.Description != "Weekly shop" {
			t.Errorf("expected trimmed description, got %q", tx.Description)
		}
	})

	t.Run("zero_date_defaults_to_today", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := &transactionService{db: db, now: fixedClock(t, "2024-03-09")}
		user := testutil.CreateTestUser(t, db)

		tx, err := svc.CreateTransaction(user.ID, models.TransactionTypeIncome, "Salary", decimal.NewFromInt(1000), "", time.Time{})
		testutil.AssertNoError(t, err)
		if !tx.Date.Equal(testutil.Date(t, "2024-03-09")) {
			t.Errorf("expected today's date, got %s", tx.Date)
		}
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTransaction(user.ID, models.TransactionTypeExpense, "Dining", decimal.Zero, "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTransaction(user.ID, models.TransactionTypeExpense, "Dining", decimal.NewFromInt(-3), "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("unknown_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTransaction(user.ID, models.TransactionType("transfer"), "Other", decimal.NewFromInt(3), "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
	})

	t.Run("category_of_other_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTransaction(user.ID, models.TransactionTypeIncome, "Rent", decimal.NewFromInt(3), "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_CATEGORY")
	})
}

func TestGetUserTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "30", "2024-01-05", "Groceries")
	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "50", "2024-01-20", "Rent")
	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, "2000", "2024-01-25", "Salary")
	testutil.CreateTestTransaction(t, db, other.ID, models.TransactionTypeExpense, "99", "2024-01-06", "Dining")

	t.Run("scoped_to_user_newest_first", func(t *testing.T) {
		result, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 3 {
			t.Fatalf("expected 3 transactions, got %d", result.TotalItems)
		}
		if result.Data[0].Category != "Salary" {
			t.Errorf("expected newest first, got %s", result.Data[0].Category)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		result, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{Page: 2, PageSize: 2}, TransactionFilter{})
		testutil.AssertNoError(t, err)

		if len(result.Data) != 1 || result.TotalPages != 2 {
			t.Errorf("expected 1 item on page 2 of 2, got %d items, %d pages", len(result.Data), result.TotalPages)
		}
	})

	t.Run("sort_by_amount_ascending", func(t *testing.T) {
		result, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{SortBy: "amount", SortOrder: "asc"}, TransactionFilter{})
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, result.Data[0].Amount, "30")
	})

	t.Run("filters", func(t *testing.T) {
		expense := models.TransactionTypeExpense
		from := testutil.Date(t, "2024-01-05")
		to := testutil.Date(t, "2024-01-19")
		result, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{Type: &expense, FromDate: &from, ToDate: &to})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 expense in range, got %d", result.TotalItems)
		}

		minAmount := decimal.NewFromInt(40)
		maxAmount := decimal.NewFromInt(100)
		result, err = svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{MinAmount: &minAmount, MaxAmount: &maxAmount})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 || result.Data[0].Category != "Rent" {
			t.Errorf("expected only the rent expense, got %d items", result.TotalItems)
		}

		category := "Salary"
		result, err = svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{Category: &category})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 salary entry, got %d", result.TotalItems)
		}
	})
}

func TestGetTransactionByID_otherUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionService(db)
	owner := testutil.CreateTestUser(t, db)
	intruder := testutil.CreateTestUser(t, db)

	tx := testutil.CreateTestTransaction(t, db, owner.ID, models.TransactionTypeExpense, "10", "2024-01-01", "Dining")

	_, err := svc.GetTransactionByID(intruder.ID, tx.ID)
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("edits_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "10", "2024-01-01", "Dining")

		amount := decimal.RequireFromString("12.75")
		category := "Entertainment"
		date := testutil.Date(t, "2024-01-03")
		updated, err := svc.UpdateTransaction(user.ID, tx.ID, TransactionUpdate{Amount: &amount, Category: &category, Date: &date})
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, updated.Amount, "12.75")
		if updated.Type != models.TransactionTypeExpense {
			t.Errorf("type must not change, got %s", updated.Type)
		}

		reloaded, err := svc.GetTransactionByID(user.ID, tx.ID)
		testutil.AssertNoError(t, err)
		if reloaded.Category != "Entertainment" || !reloaded.Date.Equal(date) {
			t.Errorf("update not persisted: %+v", reloaded)
		}
	})

	t.Run("rejects_category_of_other_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "10", "2024-01-01", "Dining")

		category := "Salary"
		_, err := svc.UpdateTransaction(user.ID, tx.ID, TransactionUpdate{Category: &category})
		testutil.AssertAppError(t, err, "INVALID_CATEGORY")
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "10", "2024-01-01", "Dining")

		amount := decimal.Zero
		_, err := svc.UpdateTransaction(user.ID, tx.ID, TransactionUpdate{Amount: &amount})
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})
}

func TestDeleteTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionService(db)
	user := testutil.CreateTestUser(t, db)
	tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "10", "2024-01-01", "Dining")

	testutil.AssertNoError(t, svc.DeleteTransaction(user.ID, tx.ID))

	_, err := svc.GetTransactionByID(user.ID, tx.ID)
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")

	err = svc.DeleteTransaction(user.ID, tx.ID)
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
}

func TestListInRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "5", "2023-12-31", "Dining")
	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "7", "2024-01-14", "Dining")
	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "3", "2024-01-01", "Dining")
	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, "100", "2024-01-02", "Salary")

	from := testutil.Date(t, "2024-01-01")
	to := testutil.Date(t, "2024-01-14")
	txs, err := svc.ListInRange(user.ID, models.TransactionTypeExpense, &from, &to)
	testutil.AssertNoError(t, err)

	if len(txs) != 2 {
		t.Fatalf("expected 2 expenses within the inclusive range, got %d", len(txs))
	}
	if !txs[0].Date.Equal(from) {
		t.Errorf("expected oldest first, got %s", txs[0].Date)
	}

	all, err := svc.ListInRange(user.ID, models.TransactionTypeExpense, nil, nil)
	testutil.AssertNoError(t, err)
	if len(all) != 3 {
		t.Errorf("expected 3 expenses with open bounds, got %d", len(all))
	}
}
