package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"spendtrack/internal/docstore"
	"spendtrack/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:       email,
		Password:    string(hash),
		DisplayName: fmt.Sprintf("Test User %d", counter.Load()),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// SeedCategory writes a category document directly to the store.
func SeedCategory(t *testing.T, store docstore.Store, userID, name string) models.Category {
	t.Helper()

	category := models.Category{Name: name, UserID: userID}
	id, err := store.Create(context.Background(), "categories", category.Fields())
	if err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	category.ID = id
	return category
}

// SeedExpense writes an expense document directly to the store.
func SeedExpense(t *testing.T, store docstore.Store, userID string, input models.ExpenseInput) models.Expense {
	t.Helper()

	id, err := store.Create(context.Background(), "expenses", input.Fields(userID))
	if err != nil {
		t.Fatalf("failed to seed expense: %v", err)
	}
	return models.Expense{
		ID:       id,
		Title:    input.Title,
		Amount:   input.Amount,
		Category: input.Category,
		Notes:    input.Notes,
		Date:     input.Date,
		UserID:   userID,
	}
}
