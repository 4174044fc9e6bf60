package models

import "time"

const (
	CertificateKindAnnual = "annual"
	CertificateKindEvent  = "event"
)

// Certificate is an issued record tied to a user and optionally an event.
// Rows are append-only and never updated.
type Certificate struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;index:idx_certificates_user_kind,priority:1" json:"user_id"`
	EventID  *uint     `gorm:"default:null;index" json:"event_id,omitempty"`
	Kind     string    `gorm:"type:varchar(16);not null;index:idx_certificates_user_kind,priority:2" json:"kind" validate:"oneof=annual event"`
	Title    string    `gorm:"type:varchar(200);not null" json:"title"`
	Code     string    `gorm:"type:varchar(40);not null;uniqueIndex" json:"code"`
	FileKey  string    `gorm:"type:varchar(255);default:''" json:"-"`
	IssuedAt time.Time `gorm:"type:timestamp;not null" json:"issued_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
