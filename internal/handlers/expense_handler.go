package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/forms"
	"spendtrack/internal/models"
	"spendtrack/internal/services"
)

// ExpenseHandler handles expense-related requests. Incoming payloads are
// the raw expense-form fields; they pass through the form validator
// before anything reaches the expense store.
type ExpenseHandler struct {
	expenseService  services.ExpenseServicer
	categoryService services.CategoryServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer, categoryService services.CategoryServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, categoryService: categoryService}
}

// ExpenseFormRequest carries the raw editor fields: the amount arrives as
// the entered string and the category as the picked candidate id.
type ExpenseFormRequest struct {
	Title      string `json:"title" binding:"required"`
	Amount     string `json:"amount" binding:"required,amount_input"`
	CategoryID string `json:"category_id" binding:"required"`
	Notes      string `json:"notes"`
	Date       string `json:"date" binding:"required,expense_date"`
}

// ExpenseResponse represents an expense in the response
type ExpenseResponse struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Notes    string  `json:"notes,omitempty"`
	Date     string  `json:"date"`
	UserID   string  `json:"user_id"`
}

// TotalResponse represents a per-day total in the response
type TotalResponse struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// ListExpenses returns the user's expenses, optionally narrowed to one day.
// @Summary     List expenses
// @Description List all expenses for the authenticated user, or those on one day
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       date query string false "Calendar day (YYYY-MM-DD)"
// @Success     200 {array} ExpenseResponse "List of expenses"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var expenses []models.Expense
	if date := c.Query("date"); date != "" {
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "date must be YYYY-MM-DD"))
			return
		}
		expenses, err = h.expenseService.ListExpensesForDate(c.Request.Context(), userID, date)
	} else {
		expenses, err = h.expenseService.ListExpensesForUser(c.Request.Context(), userID)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// TotalForDate returns the sum of the user's expenses on one day.
// @Summary     Daily total
// @Description Sum of the user's expense amounts on the given day
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       date query string true "Calendar day (YYYY-MM-DD)"
// @Success     200 {object} TotalResponse "Total for the day"
// @Failure     400 {object} ErrorResponse "Missing or invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses/total [get]
func (h *ExpenseHandler) TotalForDate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	date := c.Query("date")
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "date must be YYYY-MM-DD"))
		return
	}

	total, err := h.expenseService.TotalForDate(c.Request.Context(), userID, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "total": total})
}

// CreateExpense validates the form fields and stores a new expense.
// @Summary     Create an expense
// @Description Validate the expense form and store a new expense for the user
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExpenseFormRequest true "Expense form fields"
// @Success     201 {object} ExpenseResponse "Expense created"
// @Failure     400 {object} ErrorResponse "Validation failure"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	input, err := h.validateForm(c, userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// UpdateExpense validates the form fields and overwrites an existing expense.
// @Summary     Update an expense
// @Description Validate the expense form and overwrite an existing expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Param       request body ExpenseFormRequest true "Expense form fields"
// @Success     200 {object} ExpenseResponse "Expense updated"
// @Failure     400 {object} ErrorResponse "Validation failure"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := pathID(c, apperrors.ErrExpenseNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	input, err := h.validateForm(c, userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense := models.Expense{
		ID:       expenseID,
		Title:    input.Title,
		Amount:   input.Amount,
		Category: input.Category,
		Notes:    input.Notes,
		Date:     input.Date,
		UserID:   userID,
	}
	if err := h.expenseService.UpdateExpense(c.Request.Context(), userID, expense); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles deleting an expense
// @Summary     Delete expense
// @Description Delete one of the user's expenses by id
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := pathID(c, apperrors.ErrExpenseNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// validateForm runs the raw fields through the expense-form validator
// against the user's current categories.
func (h *ExpenseHandler) validateForm(c *gin.Context, userID string, req ExpenseFormRequest) (models.ExpenseInput, error) {
	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID)
	if err != nil {
		return models.ExpenseInput{}, err
	}

	day, err := time.Parse(models.DateLayout, req.Date)
	if err != nil {
		return models.ExpenseInput{}, apperrors.WithMessage(apperrors.ErrValidation, "date must be YYYY-MM-DD")
	}

	return forms.Validate(
		forms.Fields{
			Title:      req.Title,
			Amount:     req.Amount,
			CategoryID: req.CategoryID,
			Notes:      req.Notes,
		},
		forms.UniqueCandidates(categories),
		day,
	)
}
