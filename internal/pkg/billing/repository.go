package billing

import (
	"time"

	"github.com/socioclube/portal/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides the store operations used by the billing service.
type Repository interface {
	UserByID(id uint) (*models.User, error)
	UserByProviderCustomerID(customerID string) (*models.User, error)
	UpdateUserSubscriptionStatus(userID uint, status string) error
	// MostRecentPaymentByCreation returns the user's newest payment by
	// creation time; ties are broken by the highest ID.
	MostRecentPaymentByCreation(userID uint) (*models.Payment, error)
	PaymentByExternalID(userID uint, externalID string) (*models.Payment, error)
	CreatePayment(payment *models.Payment) error
	UpdatePaymentStatus(paymentID uint, status string, paymentDate *time.Time) error
	CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error)
	MarkWebhookProcessed(id uint, processingError string) error
	// Transaction runs fn against a repository bound to a single store
	// transaction; all writes commit together or not at all.
	Transaction(fn func(Repository) error) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) UserByProviderCustomerID(customerID string) (*models.User, error) {
	var user models.User
	err := r.db.Where("provider_customer_id = ?", customerID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) UpdateUserSubscriptionStatus(userID uint, status string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("subscription_status", status).Error
}

func (r *gormRepository) MostRecentPaymentByCreation(userID uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *gormRepository) PaymentByExternalID(userID uint, externalID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("user_id = ? AND external_id = ?", userID, externalID).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *gormRepository) CreatePayment(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *gormRepository) UpdatePaymentStatus(paymentID uint, status string, paymentDate *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if paymentDate != nil {
		updates["payment_date"] = paymentDate
	}
	return r.db.Model(&models.Payment{}).Where("id = ?", paymentID).Updates(updates).Error
}

func (r *gormRepository) CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_event_id"},
		},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.WebhookEvent
	if err := r.db.Where("provider = ? AND provider_event_id = ?", event.Provider, event.ProviderEventID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *gormRepository) MarkWebhookProcessed(id uint, processingError string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"processed_at":     &now,
		"processing_error": processingError,
	}
	return r.db.Model(&models.WebhookEvent{}).Where("id = ?", id).Updates(updates).Error
}

func (r *gormRepository) Transaction(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}
