package models

import "time"

const (
	PlanMonthly = "monthly"
	PlanAnnual  = "annual"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusOverdue   = "overdue"
	PaymentStatusCancelled = "cancelled"
)

// Payment is a single billing attempt. Rows are created by a plan purchase or
// by the webhook fallback and are mutated only to change their status.
type Payment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index:idx_payments_user_created,priority:1" json:"user_id"`
	Amount      float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Plan        string     `gorm:"type:varchar(16);not null" json:"plan" validate:"oneof=monthly annual"`
	Status      string     `gorm:"type:varchar(16);not null;default:'pending';index" json:"status" validate:"oneof=pending paid overdue cancelled"`
	PaymentDate *time.Time `gorm:"type:timestamp;default:null" json:"payment_date,omitempty"`
	DueDate     *time.Time `gorm:"type:timestamp;default:null" json:"due_date,omitempty"`
	ExternalID  string     `gorm:"type:varchar(100);default:null;index" json:"external_id,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index:idx_payments_user_created,priority:2" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsPaid reports whether this payment has been confirmed by the provider.
func (p *Payment) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}
