package models

import "spendtrack/internal/docstore"

// Category is a user-defined expense bucket. Name uniqueness is not
// enforced at the store; the expense form de-duplicates by name.
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}

// Fields returns the document payload of a category.
func (c Category) Fields() map[string]any {
	return map[string]any{
		"name":   c.Name,
		"userId": c.UserID,
	}
}

// CategoryFromDocument rebuilds a category from its stored document.
func CategoryFromDocument(doc docstore.Document) Category {
	return Category{
		ID:     doc.ID,
		Name:   stringField(doc.Fields, "name"),
		UserID: stringField(doc.Fields, "userId"),
	}
}
