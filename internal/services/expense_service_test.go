package services

import (
	"context"
	"testing"

	"spendtrack/internal/docstore"
	"spendtrack/internal/models"
	"spendtrack/internal/testutil"
)

func newExpenseFixture() (docstore.Store, ExpenseServicer) {
	store := docstore.NewMemoryStore()
	return store, NewExpenseService(store)
}

func sampleInput(date string) models.ExpenseInput {
	return models.ExpenseInput{
		Title:    "Lunch",
		Amount:   12.5,
		Category: "Food",
		Date:     date,
	}
}

func TestCreateExpense(t *testing.T) {
	t.Run("round trip through the store", func(t *testing.T) {
		_, svc := newExpenseFixture()
		ctx := context.Background()

		created, err := svc.CreateExpense(ctx, "u1", sampleInput("2024-03-01"))
		testutil.AssertNoError(t, err)
		if created.ID == "" {
			t.Fatal("expected generated id")
		}
		if created.UserID != "u1" {
			t.Errorf("expected owner u1, got %q", created.UserID)
		}

		expenses, err := svc.ListExpensesForDate(ctx, "u1", "2024-03-01")
		testutil.AssertNoError(t, err)
		if len(expenses) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(expenses))
		}
		got := expenses[0]
		if got.ID != created.ID || got.Title != "Lunch" || got.Amount != 12.5 ||
			got.Category != "Food" || got.Date != "2024-03-01" || got.UserID != "u1" {
			t.Errorf("round trip mismatch: %+v", got)
		}
	})

	t.Run("validation", func(t *testing.T) {
		_, svc := newExpenseFixture()
		ctx := context.Background()

		cases := []struct {
			name   string
			mutate func(*models.ExpenseInput)
		}{
			{"blank title", func(in *models.ExpenseInput) { in.Title = "  " }},
			{"zero amount", func(in *models.ExpenseInput) { in.Amount = 0 }},
			{"negative amount", func(in *models.ExpenseInput) { in.Amount = -5 }},
			{"blank category", func(in *models.ExpenseInput) { in.Category = "" }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				input := sampleInput("2024-03-01")
				tc.mutate(&input)
				_, err := svc.CreateExpense(ctx, "u1", input)
				testutil.AssertAppError(t, err, "VALIDATION_ERROR")
			})
		}
	})

	t.Run("requires authentication", func(t *testing.T) {
		_, svc := newExpenseFixture()
		_, err := svc.CreateExpense(context.Background(), "", sampleInput("2024-03-01"))
		testutil.AssertAppError(t, err, "NOT_AUTHENTICATED")
	})
}

func TestListExpensesForDate(t *testing.T) {
	store, svc := newExpenseFixture()
	ctx := context.Background()

	testutil.SeedExpense(t, store, "u1", sampleInput("2024-03-01"))
	testutil.SeedExpense(t, store, "u1", sampleInput("2024-03-02"))
	testutil.SeedExpense(t, store, "u2", sampleInput("2024-03-01"))

	t.Run("exact date match only", func(t *testing.T) {
		expenses, err := svc.ListExpensesForDate(ctx, "u1", "2024-03-01")
		testutil.AssertNoError(t, err)
		if len(expenses) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(expenses))
		}
	})

	t.Run("no matches", func(t *testing.T) {
		expenses, err := svc.ListExpensesForDate(ctx, "u1", "2024-04-01")
		testutil.AssertNoError(t, err)
		if len(expenses) != 0 {
			t.Fatalf("expected no expenses, got %d", len(expenses))
		}
	})

	t.Run("scoped to owner", func(t *testing.T) {
		expenses, err := svc.ListExpensesForUser(ctx, "u1")
		testutil.AssertNoError(t, err)
		if len(expenses) != 2 {
			t.Fatalf("expected 2 expenses for u1, got %d", len(expenses))
		}
	})

	t.Run("requires authentication", func(t *testing.T) {
		_, err := svc.ListExpensesForDate(ctx, "", "2024-03-01")
		testutil.AssertAppError(t, err, "NOT_AUTHENTICATED")
	})
}

func TestTotalForDate(t *testing.T) {
	store, svc := newExpenseFixture()
	ctx := context.Background()

	in := sampleInput("2024-03-01")
	in.Amount = 10
	testutil.SeedExpense(t, store, "u1", in)
	in.Amount = 2.25
	testutil.SeedExpense(t, store, "u1", in)
	in.Date = "2024-03-02"
	in.Amount = 99
	testutil.SeedExpense(t, store, "u1", in)

	t.Run("sums the day's amounts", func(t *testing.T) {
		total, err := svc.TotalForDate(ctx, "u1", "2024-03-01")
		testutil.AssertNoError(t, err)
		if total != 12.25 {
			t.Errorf("expected total 12.25, got %v", total)
		}
	})

	t.Run("zero for empty day", func(t *testing.T) {
		total, err := svc.TotalForDate(ctx, "u1", "2024-05-01")
		testutil.AssertNoError(t, err)
		if total != 0 {
			t.Errorf("expected total 0, got %v", total)
		}
	})
}

func TestUpdateExpense(t *testing.T) {
	t.Run("overwrites all fields except id", func(t *testing.T) {
		store, svc := newExpenseFixture()
		ctx := context.Background()

		created := testutil.SeedExpense(t, store, "u1", sampleInput("2024-03-01"))
		updated := models.Expense{
			ID:       created.ID,
			Title:    "Dinner",
			Amount:   30,
			Category: "Entertainment",
			Notes:    "team night",
			Date:     "2024-03-02",
			UserID:   "u1",
		}
		testutil.AssertNoError(t, svc.UpdateExpense(ctx, "u1", updated))

		expenses, err := svc.ListExpensesForDate(ctx, "u1", "2024-03-02")
		testutil.AssertNoError(t, err)
		if len(expenses) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(expenses))
		}
		got := expenses[0]
		if got.ID != created.ID {
			t.Errorf("expected id preserved, got %q", got.ID)
		}
		if got.Title != "Dinner" || got.Amount != 30 || got.Category != "Entertainment" ||
			got.Notes != "team night" {
			t.Errorf("update not applied: %+v", got)
		}
	})

	t.Run("rejects non-owner and leaves record untouched", func(t *testing.T) {
		store, svc := newExpenseFixture()
		ctx := context.Background()

		created := testutil.SeedExpense(t, store, "u1", sampleInput("2024-03-01"))
		hostile := created
		hostile.Title = "Hijacked"
		err := svc.UpdateExpense(ctx, "u2", hostile)
		testutil.AssertAppError(t, err, "NOT_AUTHORIZED")

		expenses, err := svc.ListExpensesForDate(ctx, "u1", "2024-03-01")
		testutil.AssertNoError(t, err)
		if expenses[0].Title != "Lunch" {
			t.Errorf("expected record untouched, got title %q", expenses[0].Title)
		}
	})

	t.Run("payload cannot re-own another user's record", func(t *testing.T) {
		store, svc := newExpenseFixture()
		ctx := context.Background()

		victim := testutil.SeedExpense(t, store, "u1", sampleInput("2024-03-01"))

		// The stored owner decides authorization, not the payload's claim
		hostile := victim
		hostile.UserID = "u2"
		hostile.Title = "Hijacked"
		err := svc.UpdateExpense(ctx, "u2", hostile)
		testutil.AssertAppError(t, err, "NOT_AUTHORIZED")

		expenses, err := svc.ListExpensesForUser(ctx, "u1")
		testutil.AssertNoError(t, err)
		if len(expenses) != 1 {
			t.Fatalf("expected u1 to still own 1 expense, got %d", len(expenses))
		}
		if expenses[0].Title != "Lunch" || expenses[0].UserID != "u1" {
			t.Errorf("expected record untouched, got title %q owner %q", expenses[0].Title, expenses[0].UserID)
		}
	})

	t.Run("payload owner claim is ignored on valid updates", func(t *testing.T) {
		store, svc := newExpenseFixture()
		ctx := context.Background()

		created := testutil.SeedExpense(t, store, "u1", sampleInput("2024-03-01"))
		updated := created
		updated.UserID = "someone-else"
		updated.Title = "Dinner"
		testutil.AssertNoError(t, svc.UpdateExpense(ctx, "u1", updated))

		expenses, err := svc.ListExpensesForUser(ctx, "u1")
		testutil.AssertNoError(t, err)
		if len(expenses) != 1 || expenses[0].UserID != "u1" {
			t.Fatalf("expected owner preserved as u1, got %+v", expenses)
		}
		if expenses[0].Title != "Dinner" {
			t.Errorf("expected update applied, got title %q", expenses[0].Title)
		}
	})

	t.Run("missing expense", func(t *testing.T) {
		_, svc := newExpenseFixture()
		err := svc.UpdateExpense(context.Background(), "u1", models.Expense{ID: "nope", UserID: "u1"})
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})

	t.Run("requires authentication", func(t *testing.T) {
		_, svc := newExpenseFixture()
		err := svc.UpdateExpense(context.Background(), "", models.Expense{ID: "x"})
		testutil.AssertAppError(t, err, "NOT_AUTHENTICATED")
	})
}

func TestDeleteExpense(t *testing.T) {
	t.Run("deletes owned expense", func(t *testing.T) {
		store, svc := newExpenseFixture()
		ctx := context.Background()

		created := testutil.SeedExpense(t, store, "u1", sampleInput("2024-03-01"))
		testutil.AssertNoError(t, svc.DeleteExpense(ctx, "u1", created.ID))

		expenses, err := svc.ListExpensesForUser(ctx, "u1")
		testutil.AssertNoError(t, err)
		if len(expenses) != 0 {
			t.Fatalf("expected no expenses after delete, got %d", len(expenses))
		}
	})

	t.Run("rejects non-owner", func(t *testing.T) {
		store, svc := newExpenseFixture()
		ctx := context.Background()

		created := testutil.SeedExpense(t, store, "u1", sampleInput("2024-03-01"))
		err := svc.DeleteExpense(ctx, "u2", created.ID)
		testutil.AssertAppError(t, err, "NOT_AUTHORIZED")
	})

	t.Run("missing expense", func(t *testing.T) {
		_, svc := newExpenseFixture()
		err := svc.DeleteExpense(context.Background(), "u1", "nope")
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}
