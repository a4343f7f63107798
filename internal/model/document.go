package model

import "time"

// Document records one ingested artifact (file or database table) in a session.
type Document struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"size:64;not null;index" json:"session_id"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	Source    string    `gorm:"size:512;not null" json:"source"`
	CreatedAt time.Time `json:"created_at"`
}
