package models

import "time"

const (
	CredentialStatusActive    = "active"
	CredentialStatusSuspended = "suspended"
)

// Credential is the member's digital identity artifact: a unique number plus
// a validity window. At most one credential exists per user; it is created
// lazily on first access and its expiry is pushed forward on renewal.
type Credential struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Number     string    `gorm:"type:varchar(20);not null;uniqueIndex" json:"number"`
	IssueDate  time.Time `gorm:"type:timestamp;not null" json:"issue_date"`
	ExpiryDate time.Time `gorm:"type:timestamp;not null;index" json:"expiry_date"`
	Status     string    `gorm:"type:varchar(16);not null;default:'active'" json:"status" validate:"oneof=active suspended"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsExpired reports whether the credential's validity window has passed.
func (c *Credential) IsExpired(now time.Time) bool {
	return c.ExpiryDate.Before(now)
}
