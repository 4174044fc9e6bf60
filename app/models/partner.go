package models

import (
	"time"

	"gorm.io/gorm"
)

// Partner is a company offering a benefit to members of the association.
type Partner struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,max=150"`
	Category  string         `gorm:"type:varchar(100);default:'';index" json:"category" validate:"max=100"`
	Benefit   string         `gorm:"type:text" json:"benefit"`
	URL       string         `gorm:"type:varchar(255);default:''" json:"url" validate:"max=255"`
	Active    bool           `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
