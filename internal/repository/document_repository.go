package repository

import (
	"fmt"

	"gorm.io/gorm"

	"docportal/internal/model"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(doc *model.Document) error {
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("create document failed: %w", err)
	}
	return nil
}

func (r *DocumentRepository) ListBySessionID(sessionID string) ([]model.Document, error) {
	var docs []model.Document
	if err := r.db.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list documents failed: %w", err)
	}
	return docs, nil
}

func (r *DocumentRepository) DeleteBySessionID(sessionID string) error {
	if err := r.db.Where("session_id = ?", sessionID).Delete(&model.Document{}).Error; err != nil {
		return fmt.Errorf("delete documents by session failed: %w", err)
	}
	return nil
}
