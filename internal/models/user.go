package models

// User represents an account with the identity provider. Users live in a
// relational table; their expenses and categories live in the document
// store, keyed by the user's id.
type User struct {
	Base
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `gorm:"not null" json:"-"`
	DisplayName string `json:"display_name"`
}
