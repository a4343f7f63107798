package repository

import (
	"fmt"

	"gorm.io/gorm"

	"docportal/internal/model"
)

type ChunkRepository struct {
	db *gorm.DB
}

func NewChunkRepository(db *gorm.DB) *ChunkRepository {
	return &ChunkRepository{db: db}
}

func (r *ChunkRepository) CreateBatch(chunks []model.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	if err := r.db.Create(&chunks).Error; err != nil {
		return fmt.Errorf("create chunks batch failed: %w", err)
	}
	return nil
}

func (r *ChunkRepository) ListByDocumentIDs(documentIDs []uint) ([]model.Chunk, error) {
	if len(documentIDs) == 0 {
		return nil, nil
	}
	var chunks []model.Chunk
	if err := r.db.Where("document_id IN ?", documentIDs).Find(&chunks).Error; err != nil {
		return nil, fmt.Errorf("list chunks by document ids failed: %w", err)
	}
	return chunks, nil
}

func (r *ChunkRepository) DeleteByDocumentIDs(documentIDs []uint) error {
	if len(documentIDs) == 0 {
		return nil
	}
	if err := r.db.Where("document_id IN ?", documentIDs).Delete(&model.Chunk{}).Error; err != nil {
		return fmt.Errorf("delete chunks by documents failed: %w", err)
	}
	return nil
}
