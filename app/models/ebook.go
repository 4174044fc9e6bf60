package models

import (
	"time"

	"gorm.io/gorm"
)

// Ebook is a digital publication available to members in good standing.
// The file itself lives in object storage under FileKey.
type Ebook struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(200);not null" json:"title" validate:"required,max=200"`
	Author      string         `gorm:"type:varchar(150);default:''" json:"author" validate:"max=150"`
	Description string         `gorm:"type:text" json:"description"`
	CoverURL    string         `gorm:"type:varchar(255);default:''" json:"cover_url" validate:"max=255"`
	FileKey     string         `gorm:"type:varchar(255);not null" json:"-"`
	FileSize    int64          `gorm:"default:0" json:"file_size"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
