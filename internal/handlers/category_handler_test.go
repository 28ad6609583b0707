package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/models"
)

func newCategoryRouter(svc *mockCategoryService) *gin.Engine {
	handler := NewCategoryHandler(svc)
	router := gin.New()
	authed := router.Group("/", injectUserID("u1"))
	authed.GET("/categories", handler.ListCategories)
	authed.POST("/categories", handler.AddCategory)
	authed.DELETE("/categories/:id", handler.DeleteCategory)
	router.GET("/categories-anon", handler.ListCategories)
	return router
}

func TestListCategoriesHandler(t *testing.T) {
	t.Run("returns the user's categories", func(t *testing.T) {
		svc := &mockCategoryService{
			listFn: func(ctx context.Context, userID string) ([]models.Category, error) {
				if userID != "u1" {
					t.Errorf("expected listing for u1, got %q", userID)
				}
				return []models.Category{
					{ID: "c1", Name: "Food", UserID: "u1"},
					{ID: "c2", Name: "Travel", UserID: "u1"},
				}, nil
			},
		}
		router := newCategoryRouter(svc)

		w := doRequest(router, http.MethodGet, "/categories", nil)
		assertStatus(t, w, http.StatusOK)
		body := parseJSON(t, w)
		categories, _ := body["categories"].([]any)
		if len(categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(categories))
		}
	})

	t.Run("store failure surfaces as collaborator error", func(t *testing.T) {
		svc := &mockCategoryService{
			listFn: func(ctx context.Context, userID string) ([]models.Category, error) {
				return nil, apperrors.ErrCollaborator
			},
		}
		router := newCategoryRouter(svc)

		w := doRequest(router, http.MethodGet, "/categories", nil)
		assertErrorCode(t, w, http.StatusBadGateway, "COLLABORATOR_ERROR")
	})

	t.Run("requires authentication", func(t *testing.T) {
		router := newCategoryRouter(&mockCategoryService{})

		w := doRequest(router, http.MethodGet, "/categories-anon", nil)
		assertErrorCode(t, w, http.StatusUnauthorized, "NOT_AUTHENTICATED")
	})
}

func TestAddCategoryHandler(t *testing.T) {
	t.Run("creates a category", func(t *testing.T) {
		svc := &mockCategoryService{
			addFn: func(ctx context.Context, userID, name string) (*models.Category, error) {
				if userID != "u1" || name != "Travel" {
					t.Errorf("unexpected arguments: %q %q", userID, name)
				}
				return &models.Category{ID: "c9", Name: name, UserID: userID}, nil
			},
		}
		router := newCategoryRouter(svc)

		w := doRequest(router, http.MethodPost, "/categories", gin.H{"name": "Travel"})
		assertStatus(t, w, http.StatusCreated)
		body := parseJSON(t, w)
		category, _ := body["category"].(map[string]any)
		if category["id"] != "c9" {
			t.Errorf("expected created category, got %v", body["category"])
		}
	})

	t.Run("missing name fails binding", func(t *testing.T) {
		router := newCategoryRouter(&mockCategoryService{})

		w := doRequest(router, http.MethodPost, "/categories", gin.H{})
		assertErrorCode(t, w, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	t.Run("whitespace name fails service validation", func(t *testing.T) {
		svc := &mockCategoryService{
			addFn: func(ctx context.Context, userID, name string) (*models.Category, error) {
				return nil, apperrors.WithMessage(apperrors.ErrValidation, "category name required")
			},
		}
		router := newCategoryRouter(svc)

		w := doRequest(router, http.MethodPost, "/categories", gin.H{"name": "   "})
		assertErrorCode(t, w, http.StatusBadRequest, "VALIDATION_ERROR")
	})
}

// testCategoryID is a well-formed UUID; malformed path ids short-circuit
// before the service layer.
const testCategoryID = "018f4e5a-1111-7000-8000-000000000001"

func TestDeleteCategoryHandler(t *testing.T) {
	t.Run("deletes a category", func(t *testing.T) {
		svc := &mockCategoryService{
			deleteFn: func(ctx context.Context, userID, categoryID string) error {
				if userID != "u1" || categoryID != testCategoryID {
					t.Errorf("unexpected arguments: %q %q", userID, categoryID)
				}
				return nil
			},
		}
		router := newCategoryRouter(svc)

		w := doRequest(router, http.MethodDelete, "/categories/"+testCategoryID, nil)
		assertStatus(t, w, http.StatusOK)
	})

	t.Run("not the owner", func(t *testing.T) {
		svc := &mockCategoryService{
			deleteFn: func(ctx context.Context, userID, categoryID string) error {
				return apperrors.ErrNotAuthorized
			},
		}
		router := newCategoryRouter(svc)

		w := doRequest(router, http.MethodDelete, "/categories/"+testCategoryID, nil)
		assertErrorCode(t, w, http.StatusForbidden, "NOT_AUTHORIZED")
	})

	t.Run("missing category", func(t *testing.T) {
		svc := &mockCategoryService{
			deleteFn: func(ctx context.Context, userID, categoryID string) error {
				return apperrors.ErrCategoryNotFound
			},
		}
		router := newCategoryRouter(svc)

		w := doRequest(router, http.MethodDelete, "/categories/"+absentRecordID, nil)
		assertErrorCode(t, w, http.StatusNotFound, "CATEGORY_NOT_FOUND")
	})

	t.Run("malformed id never reaches the service", func(t *testing.T) {
		// nil deleteFn panics if the handler calls through
		router := newCategoryRouter(&mockCategoryService{})

		w := doRequest(router, http.MethodDelete, "/categories/nope", nil)
		assertErrorCode(t, w, http.StatusNotFound, "CATEGORY_NOT_FOUND")
	})
}
