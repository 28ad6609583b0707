package forms

import (
	"context"
	"strconv"
	"time"

	"spendtrack/internal/models"
)

// EditorState is the top-level dialog state.
type EditorState int

const (
	// Closed means the dialog is not showing.
	Closed EditorState = iota
	// Creating means the dialog is open for a new expense.
	Creating
	// Editing means the dialog is open for an existing expense.
	Editing
)

// CategoryAdder is the slice of the category store the inline
// new-category flow delegates to.
type CategoryAdder interface {
	AddCategory(ctx context.Context, userID, name string) (*models.Category, error)
}

// Editor drives the expense dialog. Open either for creation or for an
// existing expense; within an open dialog the category control toggles
// between picking from candidates and entering a new category name. The
// dialog closes on cancel or on a successful save, never on a failed one.
type Editor struct {
	state  EditorState
	fields Fields
	date   time.Time

	enteringNewCategory bool
	newCategoryName     string

	// Set only while editing; merged into the submission result.
	expenseID string
	ownerID   string
}

// Result is a validated submission. ID and UserID are set only when the
// dialog was editing an existing expense.
type Result struct {
	Input  models.ExpenseInput
	ID     string
	UserID string
}

// NewEditor returns a closed editor.
func NewEditor() *Editor {
	return &Editor{}
}

// State returns the dialog state.
func (e *Editor) State() EditorState { return e.state }

// IsOpen reports whether the dialog is showing.
func (e *Editor) IsOpen() bool { return e.state != Closed }

// EnteringNewCategory reports whether the category control is in
// free-text entry rather than the picker.
func (e *Editor) EnteringNewCategory() bool { return e.enteringNewCategory }

// Fields returns the current raw field values.
func (e *Editor) Fields() Fields { return e.fields }

// OpenCreate opens an empty dialog for the given day.
func (e *Editor) OpenCreate(date time.Time) {
	e.reset()
	e.state = Creating
	e.date = date
}

// OpenEdit opens the dialog prefilled from an existing expense. The
// category selection is resolved by name against the candidate set; a
// name no longer present leaves the selection empty.
func (e *Editor) OpenEdit(expense models.Expense, candidates []Candidate, date time.Time) {
	e.reset()
	e.state = Editing
	e.date = date
	e.expenseID = expense.ID
	e.ownerID = expense.UserID

	e.fields = Fields{
		Title:  expense.Title,
		Amount: formatAmount(expense.Amount),
		Notes:  expense.Notes,
	}
	for _, c := range candidates {
		if c.Name == expense.Category {
			e.fields.CategoryID = c.ID
			break
		}
	}
}

// Cancel closes the dialog and discards all input.
func (e *Editor) Cancel() {
	e.reset()
}

// SetTitle updates the title field.
func (e *Editor) SetTitle(title string) { e.fields.Title = title }

// SetNotes updates the notes field.
func (e *Editor) SetNotes(notes string) { e.fields.Notes = notes }

// SetCategory selects a candidate by id.
func (e *Editor) SetCategory(id string) { e.fields.CategoryID = id }

// TypeAmount applies an amount field change, rejecting values that break
// the digits-and-one-dot rule. Returns whether the value was accepted;
// on rejection the field is unchanged.
func (e *Editor) TypeAmount(value string) bool {
	if !AmountInputAllowed(value) {
		return false
	}
	e.fields.Amount = value
	return true
}

// StartNewCategory switches the category control to free-text entry.
func (e *Editor) StartNewCategory() {
	e.enteringNewCategory = true
	e.newCategoryName = ""
}

// CancelNewCategory returns the category control to the picker.
func (e *Editor) CancelNewCategory() {
	e.enteringNewCategory = false
	e.newCategoryName = ""
}

// TypeNewCategoryName updates the pending new-category name.
func (e *Editor) TypeNewCategoryName(name string) { e.newCategoryName = name }

// SubmitNewCategory validates the pending name and delegates creation to
// the category store. On success the control returns to the picker with
// the new category selected.
func (e *Editor) SubmitNewCategory(ctx context.Context, adder CategoryAdder, userID string) (*models.Category, error) {
	name, err := ValidateCategoryName(e.newCategoryName)
	if err != nil {
		return nil, err
	}

	category, err := adder.AddCategory(ctx, userID, name)
	if err != nil {
		return nil, err
	}

	e.enteringNewCategory = false
	e.newCategoryName = ""
	e.fields.CategoryID = category.ID
	return category, nil
}

// Submit validates the form against the candidate set. On success the
// dialog closes and the normalized record is returned, carrying the
// original id and owner when editing. On failure the dialog stays open
// with its input intact.
func (e *Editor) Submit(candidates []Candidate) (Result, error) {
	input, err := Validate(e.fields, candidates, e.date)
	if err != nil {
		return Result{}, err
	}

	result := Result{Input: input}
	if e.state == Editing {
		result.ID = e.expenseID
		result.UserID = e.ownerID
	}

	e.reset()
	return result, nil
}

func (e *Editor) reset() {
	*e = Editor{}
}

// formatAmount renders a stored amount back into the text field using the
// shortest round-tripping representation.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
