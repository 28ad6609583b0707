package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"spendtrack/internal/docstore"
	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/logger"
	"spendtrack/internal/models"
)

// CategoriesCollection is the document collection holding category records
// and, per user, one seeding marker record.
const CategoriesCollection = "categories"

// DefaultCategoryNames is the fixed set created once per user at first access.
var DefaultCategoryNames = []string{
	"Food",
	"Transportation",
	"Entertainment",
	"Shopping",
	"Utilities",
	"Health",
	"Other",
}

// categoryService handles category-related business logic.
type categoryService struct {
	store docstore.Store
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(store docstore.Store) CategoryServicer {
	return &categoryService{store: store}
}

// seedMarkerID is the deterministic id of a user's seeding marker.
func seedMarkerID(userID string) string {
	return fmt.Sprintf("%s_initialized_flag", userID)
}

// EnsureDefaultsSeeded creates the default categories for a user exactly
// once, gated by a per-user marker record. Safe to call repeatedly; it is
// invoked on every category listing as a just-in-time guard and again on
// login. The marker check and the seeding loop are not atomic, so two
// truly concurrent first loads can both seed; accepted for a single-user
// personal tool, and the marker stops any further duplication.
func (s *categoryService) EnsureDefaultsSeeded(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.ErrNotAuthenticated
	}

	_, err := s.store.Get(ctx, CategoriesCollection, seedMarkerID(userID))
	if err == nil {
		return nil
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return apperrors.Wrap(apperrors.ErrCollaborator, err)
	}

	logger.Get().Infow("seeding default categories", "user_id", userID)
	for _, name := range DefaultCategoryNames {
		category := models.Category{Name: name, UserID: userID}
		if _, err := s.store.Create(ctx, CategoriesCollection, category.Fields()); err != nil {
			// A crash or failure here leaves partial state; the missing
			// marker means the next call re-runs the loop.
			return apperrors.Wrap(apperrors.ErrCollaborator, err)
		}
	}

	marker := map[string]any{
		"initialized": true,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.store.Set(ctx, CategoriesCollection, seedMarkerID(userID), marker); err != nil {
		return apperrors.Wrap(apperrors.ErrCollaborator, err)
	}
	return nil
}

// ListCategories returns all of a user's categories in store order,
// seeding defaults first if needed. The marker record carries no userId
// field, so the ownership filter excludes it.
func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	if err := s.EnsureDefaultsSeeded(ctx, userID); err != nil {
		return nil, err
	}

	docs, err := s.store.Query(ctx, CategoriesCollection, docstore.Filter{Field: "userId", Value: userID})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCollaborator, err)
	}

	categories := make([]models.Category, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, models.CategoryFromDocument(doc))
	}
	return categories, nil
}

// AddCategory creates a new category. Duplicate names are allowed; the
// expense form de-duplicates its candidate list by name.
func (s *categoryService) AddCategory(ctx context.Context, userID, name string) (*models.Category, error) {
	if userID == "" {
		return nil, apperrors.ErrNotAuthenticated
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "category name required")
	}

	category := models.Category{Name: name, UserID: userID}
	id, err := s.store.Create(ctx, CategoriesCollection, category.Fields())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCollaborator, err)
	}
	category.ID = id
	return &category, nil
}

// DeleteCategory removes a category after verifying ownership.
func (s *categoryService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	if userID == "" {
		return apperrors.ErrNotAuthenticated
	}

	doc, err := s.store.Get(ctx, CategoriesCollection, categoryID)
	if errors.Is(err, docstore.ErrNotFound) {
		return apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCollaborator, err)
	}

	if models.CategoryFromDocument(*doc).UserID != userID {
		return apperrors.ErrNotAuthorized
	}

	if err := s.store.Delete(ctx, CategoriesCollection, categoryID); err != nil {
		return apperrors.Wrap(apperrors.ErrCollaborator, err)
	}
	return nil
}
