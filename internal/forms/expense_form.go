// Package forms implements the expense editor: keystroke-level amount
// filtering, submit-time validation and normalization, the inline
// new-category flow, and the dialog state machine. Everything here is
// pure with respect to persistence; invalid input never reaches a store.
package forms

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/models"
)

// amountPattern admits digits with at most one decimal point. Anything
// else is rejected at entry time, not just at submit.
var amountPattern = regexp.MustCompile(`^\d*\.?\d*$`)

// AmountInputAllowed reports whether an amount field may hold this value.
func AmountInputAllowed(value string) bool {
	return value == "" || amountPattern.MatchString(value)
}

// Candidate is one selectable category in the form's picker.
type Candidate struct {
	ID   string
	Name string
}

// UniqueCandidates builds the picker's candidate set, keeping the first
// category seen for each name. Store-level duplicates are allowed, so the
// form de-duplicates by name.
func UniqueCandidates(categories []models.Category) []Candidate {
	seen := make(map[string]bool)
	var candidates []Candidate
	for _, c := range categories {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		candidates = append(candidates, Candidate{ID: c.ID, Name: c.Name})
	}
	return candidates
}

// Fields holds the raw user-entered values of the expense form.
type Fields struct {
	Title      string
	Amount     string
	CategoryID string
	Notes      string
}

// Validate checks the raw fields against the candidate set and returns
// the normalized record: trimmed title and notes, parsed amount, and the
// resolved category NAME (never the id), dated to the given day.
func Validate(fields Fields, candidates []Candidate, date time.Time) (models.ExpenseInput, error) {
	var input models.ExpenseInput

	title := strings.TrimSpace(fields.Title)
	if title == "" {
		return input, apperrors.WithMessage(apperrors.ErrValidation, "title required")
	}

	amount, err := strconv.ParseFloat(fields.Amount, 64)
	if err != nil || math.IsInf(amount, 0) || math.IsNaN(amount) || amount <= 0 {
		return input, apperrors.WithMessage(apperrors.ErrValidation, "invalid amount")
	}

	if fields.CategoryID == "" {
		return input, apperrors.WithMessage(apperrors.ErrValidation, "category required")
	}
	var category string
	for _, c := range candidates {
		if c.ID == fields.CategoryID {
			category = c.Name
			break
		}
	}
	if category == "" {
		return input, apperrors.WithMessage(apperrors.ErrValidation, "category not found")
	}

	return models.ExpenseInput{
		Title:    title,
		Amount:   amount,
		Category: category,
		Notes:    strings.TrimSpace(fields.Notes),
		Date:     models.FormatDate(date),
	}, nil
}

// ValidateCategoryName validates the inline new-category input and
// returns the trimmed name.
func ValidateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.WithMessage(apperrors.ErrValidation, "category name required")
	}
	return name, nil
}
