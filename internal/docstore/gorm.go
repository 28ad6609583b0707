package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spendtrack/internal/uuid"
)

// document is the relational row backing one stored record. The field
// payload is kept as a JSON blob so collections stay schemaless.
type document struct {
	ID         string `gorm:"primaryKey"`
	Collection string `gorm:"index;not null"`
	Data       string `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides the table name used by GORM.
func (document) TableName() string { return "documents" }

// GormStore persists documents in a relational database through GORM.
// Equality filters are applied in memory after loading the collection,
// which keeps the store driver-agnostic; collections here are one user's
// personal records, so result sets stay small.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a document store backed by the given GORM database.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates the documents table. Used by the sqlite path and tests;
// the postgres path ships the equivalent SQL migration.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&document{})
}

// Create stores a new document under a fresh UUIDv7 id.
func (s *GormStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	row := document{
		ID:         uuid.New(),
		Collection: collection,
		Data:       string(data),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	return row.ID, nil
}

// Get returns the document with the given id, or ErrNotFound.
func (s *GormStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	var row document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeRow(row)
}

// Set upserts a document under a caller-chosen id.
func (s *GormStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	row := document{
		ID:         id,
		Collection: collection,
		Data:       string(data),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"collection", "data", "updated_at"}),
		}).
		Create(&row).Error
}

// Update merges fields into an existing document.
func (s *GormStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	existing, err := s.Get(ctx, collection, id)
	if err != nil {
		return err
	}

	for k, v := range fields {
		existing.Fields[k] = v
	}
	data, err := json.Marshal(existing.Fields)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	return s.db.WithContext(ctx).
		Model(&document{}).
		Where("collection = ? AND id = ?", collection, id).
		Update("data", string(data)).Error
}

// Delete removes a document; deleting a missing document is a no-op.
func (s *GormStore) Delete(ctx context.Context, collection, id string) error {
	return s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&document{}).Error
}

// Query returns matching documents in creation order.
func (s *GormStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	var rows []document
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	var docs []Document
	for _, row := range rows {
		doc, err := decodeRow(row)
		if err != nil {
			return nil, err
		}
		if matches(doc.Fields, filters) {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

func decodeRow(row document) (*Document, error) {
	fields := make(map[string]any)
	if err := json.Unmarshal([]byte(row.Data), &fields); err != nil {
		return nil, fmt.Errorf("decode document %s/%s: %w", row.Collection, row.ID, err)
	}
	return &Document{ID: row.ID, Fields: fields}, nil
}

var _ Store = (*GormStore)(nil)
