package services

import (
	"context"

	"spendtrack/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, displayName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	EnsureDefaultsSeeded(ctx context.Context, userID string) error
	ListCategories(ctx context.Context, userID string) ([]models.Category, error)
	AddCategory(ctx context.Context, userID, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	ListExpensesForUser(ctx context.Context, userID string) ([]models.Expense, error)
	ListExpensesForDate(ctx context.Context, userID, date string) ([]models.Expense, error)
	TotalForDate(ctx context.Context, userID, date string) (float64, error)
	CreateExpense(ctx context.Context, userID string, input models.ExpenseInput) (*models.Expense, error)
	UpdateExpense(ctx context.Context, userID string, expense models.Expense) error
	DeleteExpense(ctx context.Context, userID, expenseID string) error
}
