package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RegistrationStatusRegistered = "registered"
	RegistrationStatusAttended   = "attended"
)

// Event is an association activity members can register for. Attendance is
// confirmed by an admin and feeds event certificate issuance.
type Event struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(200);not null" json:"title" validate:"required,max=200"`
	Description string         `gorm:"type:text" json:"description"`
	Location    string         `gorm:"type:varchar(200);default:''" json:"location" validate:"max=200"`
	StartsAt    time.Time      `gorm:"type:timestamp;not null;index" json:"starts_at"`
	EndsAt      *time.Time     `gorm:"type:timestamp;default:null" json:"ends_at,omitempty"`
	Capacity    int            `gorm:"default:0" json:"capacity"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// EventRegistration links a member to an event. One row per user per event.
type EventRegistration struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	EventID     uint       `gorm:"not null;index:ux_event_registrations_event_user,unique,priority:1" json:"event_id"`
	UserID      uint       `gorm:"not null;index:ux_event_registrations_event_user,unique,priority:2" json:"user_id"`
	Status      string     `gorm:"type:varchar(16);not null;default:'registered'" json:"status" validate:"oneof=registered attended"`
	CheckedInAt *time.Time `gorm:"type:timestamp;default:null" json:"checked_in_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
