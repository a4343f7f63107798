package model

import "time"

// Session scopes uploaded documents and their retrieval index.
// SessionID is the caller-chosen identifier from /chat/index; the server
// generates one when the caller sends none.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	SessionID string    `gorm:"size:64;not null;uniqueIndex" json:"session_id"`
	Title     string    `gorm:"size:256;not null" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
