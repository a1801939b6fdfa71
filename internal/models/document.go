package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is one uploaded résumé file. Scores are not stored.
type Document struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename         string    `gorm:"type:text" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	StoredFileName   string    `gorm:"type:text" json:"stored_filename"`
	FilePath         string    `gorm:"type:text" json:"file_path"`
	ContentType      string    `gorm:"type:text" json:"content_type"`
	SizeBytes        int64     `gorm:"not null;default:0" json:"size_bytes"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (d *Document) TableName() string {
	return "documents"
}
