package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"docportal/internal/model"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(session *model.Session) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("create session failed: %w", err)
	}
	return nil
}

// GetBySessionID returns the session row for the caller-chosen id, nil when absent.
func (r *SessionRepository) GetBySessionID(sessionID string) (*model.Session, error) {
	var session model.Session
	if err := r.db.Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session failed: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) List() ([]model.Session, error) {
	var sessions []model.Session
	if err := r.db.Order("updated_at DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list sessions failed: %w", err)
	}
	return sessions, nil
}

// Touch bumps the session's updated_at, used on re-ingest under an existing id.
func (r *SessionRepository) Touch(sessionID string) error {
	if err := r.db.Model(&model.Session{}).
		Where("session_id = ?", sessionID).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error; err != nil {
		return fmt.Errorf("touch session failed: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteBySessionID(sessionID string) error {
	if err := r.db.Where("session_id = ?", sessionID).Delete(&model.Session{}).Error; err != nil {
		return fmt.Errorf("delete session failed: %w", err)
	}
	return nil
}
