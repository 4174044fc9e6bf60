package billing

import (
	"context"
	"sync"
	"time"

	"github.com/socioclube/portal/app/models"
	"gorm.io/gorm"
)

// memoryRepository is the in-memory store fake used by the service tests.
// Webhook-event creation is guarded by a mutex so redelivery races can be
// exercised; the remaining operations mirror the store contract without
// transactional isolation.
type memoryRepository struct {
	mu       sync.Mutex
	users    map[uint]*models.User
	payments []*models.Payment
	events   map[string]*models.WebhookEvent
	nextID   uint
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		users:  make(map[uint]*models.User),
		events: make(map[string]*models.WebhookEvent),
		nextID: 1,
	}
}

func (m *memoryRepository) addUser(user *models.User) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	m.users[user.ID] = user
	return user
}

func (m *memoryRepository) addPayment(payment *models.Payment) *models.Payment {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment.ID = m.nextID
	m.nextID++
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}
	m.payments = append(m.payments, payment)
	return payment
}

func (m *memoryRepository) UserByID(id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryRepository) UserByProviderCustomerID(customerID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ProviderCustomerID == customerID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryRepository) UpdateUserSubscriptionStatus(userID uint, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.SubscriptionStatus = status
	return nil
}

func (m *memoryRepository) MostRecentPaymentByCreation(userID uint) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var newest *models.Payment
	for _, payment := range m.payments {
		if payment.UserID != userID {
			continue
		}
		if newest == nil ||
			payment.CreatedAt.After(newest.CreatedAt) ||
			(payment.CreatedAt.Equal(newest.CreatedAt) && payment.ID > newest.ID) {
			newest = payment
		}
	}
	if newest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *newest
	return &copied, nil
}

func (m *memoryRepository) PaymentByExternalID(userID uint, externalID string) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, payment := range m.payments {
		if payment.UserID == userID && payment.ExternalID == externalID {
			copied := *payment
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryRepository) CreatePayment(payment *models.Payment) error {
	m.addPayment(payment)
	return nil
}

func (m *memoryRepository) UpdatePaymentStatus(paymentID uint, status string, paymentDate *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, payment := range m.payments {
		if payment.ID == paymentID {
			payment.Status = status
			if paymentDate != nil {
				payment.PaymentDate = paymentDate
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memoryRepository) CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := event.Provider + "/" + event.ProviderEventID
	if stored, ok := m.events[key]; ok {
		copied := *stored
		return false, &copied, nil
	}
	event.ID = m.nextID
	m.nextID++
	event.CreatedAt = time.Now()
	m.events[key] = event
	copied := *event
	return true, &copied, nil
}

func (m *memoryRepository) MarkWebhookProcessed(id uint, processingError string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, event := range m.events {
		if event.ID == id {
			now := time.Now()
			event.ProcessedAt = &now
			event.ProcessingError = processingError
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memoryRepository) Transaction(fn func(Repository) error) error {
	return fn(m)
}

func (m *memoryRepository) paymentCount(userID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, payment := range m.payments {
		if payment.UserID == userID {
			count++
		}
	}
	return count
}

// renewRecorder stands in for the credential service in reconciler tests.
type renewRecorder struct {
	mu      sync.Mutex
	userIDs []uint
}

func (r *renewRecorder) RenewOnPayment(_ context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userIDs = append(r.userIDs, userID)
	return nil
}
