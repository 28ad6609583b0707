package services

import (
	"context"
	"errors"
	"strings"

	"spendtrack/internal/docstore"
	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/models"
)

// ExpensesCollection is the document collection holding expense records.
const ExpensesCollection = "expenses"

// expenseService handles expense-related business logic.
type expenseService struct {
	store docstore.Store
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(store docstore.Store) ExpenseServicer {
	return &expenseService{store: store}
}

// ListExpensesForUser returns all expenses owned by the user.
func (s *expenseService) ListExpensesForUser(ctx context.Context, userID string) ([]models.Expense, error) {
	if userID == "" {
		return nil, apperrors.ErrNotAuthenticated
	}
	return s.query(ctx, docstore.Filter{Field: "userId", Value: userID})
}

// ListExpensesForDate returns the user's expenses on one calendar day.
// Matching is exact string equality on the YYYY-MM-DD form; no range
// queries, no timezone normalization beyond what the caller supplied.
func (s *expenseService) ListExpensesForDate(ctx context.Context, userID, date string) ([]models.Expense, error) {
	if userID == "" {
		return nil, apperrors.ErrNotAuthenticated
	}
	return s.query(ctx,
		docstore.Filter{Field: "date", Value: date},
		docstore.Filter{Field: "userId", Value: userID},
	)
}

// TotalForDate sums the amounts of the user's expenses on one day.
// Computed over the freshly fetched list so it always agrees with
// ListExpensesForDate; never a maintained counter.
func (s *expenseService) TotalForDate(ctx context.Context, userID, date string) (float64, error) {
	expenses, err := s.ListExpensesForDate(ctx, userID, date)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, expense := range expenses {
		total += expense.Amount
	}
	return total, nil
}

// CreateExpense stores a new expense. The store assigns a fresh id and
// stamps the owner from the authenticated caller.
func (s *expenseService) CreateExpense(ctx context.Context, userID string, input models.ExpenseInput) (*models.Expense, error) {
	if userID == "" {
		return nil, apperrors.ErrNotAuthenticated
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	id, err := s.store.Create(ctx, ExpensesCollection, input.Fields(userID))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCollaborator, err)
	}

	return &models.Expense{
		ID:       id,
		Title:    input.Title,
		Amount:   input.Amount,
		Category: input.Category,
		Notes:    input.Notes,
		Date:     input.Date,
		UserID:   userID,
	}, nil
}

// UpdateExpense overwrites all fields of an existing expense except its id
// and owner. Ownership is checked against the stored record, never against
// anything the caller claims, so the payload cannot re-own a record.
func (s *expenseService) UpdateExpense(ctx context.Context, userID string, expense models.Expense) error {
	if userID == "" {
		return apperrors.ErrNotAuthenticated
	}

	doc, err := s.store.Get(ctx, ExpensesCollection, expense.ID)
	if errors.Is(err, docstore.ErrNotFound) {
		return apperrors.ErrExpenseNotFound
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCollaborator, err)
	}

	if models.ExpenseFromDocument(*doc).UserID != userID {
		return apperrors.ErrNotAuthorized
	}

	expense.UserID = userID
	if err := s.store.Update(ctx, ExpensesCollection, expense.ID, expense.Fields()); err != nil {
		return apperrors.Wrap(apperrors.ErrCollaborator, err)
	}
	return nil
}

// DeleteExpense removes an expense after verifying ownership.
func (s *expenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	if userID == "" {
		return apperrors.ErrNotAuthenticated
	}

	doc, err := s.store.Get(ctx, ExpensesCollection, expenseID)
	if errors.Is(err, docstore.ErrNotFound) {
		return apperrors.ErrExpenseNotFound
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCollaborator, err)
	}

	if models.ExpenseFromDocument(*doc).UserID != userID {
		return apperrors.ErrNotAuthorized
	}

	if err := s.store.Delete(ctx, ExpensesCollection, expenseID); err != nil {
		return apperrors.Wrap(apperrors.ErrCollaborator, err)
	}
	return nil
}

func (s *expenseService) query(ctx context.Context, filters ...docstore.Filter) ([]models.Expense, error) {
	docs, err := s.store.Query(ctx, ExpensesCollection, filters...)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCollaborator, err)
	}

	expenses := make([]models.Expense, 0, len(docs))
	for _, doc := range docs {
		expenses = append(expenses, models.ExpenseFromDocument(doc))
	}
	return expenses, nil
}

// validateInput guards the record-level invariants. The expense form is
// the authoritative validator; these checks keep direct API callers from
// persisting records the form could never produce.
func validateInput(input models.ExpenseInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return apperrors.WithMessage(apperrors.ErrValidation, "title required")
	}
	if input.Amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrValidation, "invalid amount")
	}
	if strings.TrimSpace(input.Category) == "" {
		return apperrors.WithMessage(apperrors.ErrValidation, "category required")
	}
	return nil
}
