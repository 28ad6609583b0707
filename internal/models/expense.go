package models

import (
	"time"

	"spendtrack/internal/docstore"
)

// DateLayout is the calendar-day serialization used on expense records.
// Expenses carry no time component; two expenses on the same day are
// indistinguishable by date.
const DateLayout = "2006-01-02"

// FormatDate renders a time as a YYYY-MM-DD calendar day.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Expense is one recorded spend, scoped to its owner and a calendar day.
// Category is the category's display name at save time, not a foreign key.
type Expense struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Notes    string  `json:"notes,omitempty"`
	Date     string  `json:"date"`
	UserID   string  `json:"user_id"`
}

// ExpenseInput is the creatable portion of an expense: everything except
// the store-assigned id and the owner stamped from the session.
type ExpenseInput struct {
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Notes    string  `json:"notes"`
	Date     string  `json:"date"`
}

// Fields returns the document payload for a new expense owned by userID.
func (in ExpenseInput) Fields(userID string) map[string]any {
	return map[string]any{
		"title":    in.Title,
		"amount":   in.Amount,
		"category": in.Category,
		"notes":    in.Notes,
		"date":     in.Date,
		"userId":   userID,
	}
}

// Fields returns the mutable document payload of an expense. The id is
// never part of the payload.
func (e Expense) Fields() map[string]any {
	return map[string]any{
		"title":    e.Title,
		"amount":   e.Amount,
		"category": e.Category,
		"notes":    e.Notes,
		"date":     e.Date,
		"userId":   e.UserID,
	}
}

// ExpenseFromDocument rebuilds an expense from its stored document.
func ExpenseFromDocument(doc docstore.Document) Expense {
	return Expense{
		ID:       doc.ID,
		Title:    stringField(doc.Fields, "title"),
		Amount:   floatField(doc.Fields, "amount"),
		Category: stringField(doc.Fields, "category"),
		Notes:    stringField(doc.Fields, "notes"),
		Date:     stringField(doc.Fields, "date"),
		UserID:   stringField(doc.Fields, "userId"),
	}
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

func floatField(fields map[string]any, key string) float64 {
	// JSON decoding hands numbers back as float64.
	f, _ := fields[key].(float64)
	return f
}
