package repository

import (
	"github.com/socioclube/portal/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for member account database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByCPF(cpf string) (*models.User, error)
	GetByActivationToken(token string) (*models.User, error)
	GetByProviderCustomerID(customerID string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	Search(query string) ([]models.User, error)
}

// PaymentRepository defines the interface for payment database operations
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Payment, error)
	Update(payment *models.Payment) error
	List(offset, limit int) ([]models.Payment, error)
	Count() (int64, error)
}

// CredentialRepository defines the interface for digital credential operations
type CredentialRepository interface {
	Create(credential *models.Credential) error
	GetByUserID(userID uint) (*models.Credential, error)
	GetByNumber(number string) (*models.Credential, error)
	Update(credential *models.Credential) error
}

// CertificateRepository defines the interface for issued certificate lookups
type CertificateRepository interface {
	Create(certificate *models.Certificate) error
	GetByID(id uint) (*models.Certificate, error)
	GetByCode(code string) (*models.Certificate, error)
	ListByUserID(userID uint) ([]models.Certificate, error)
}

// EbookRepository defines the interface for e-book catalog operations
type EbookRepository interface {
	Create(ebook *models.Ebook) error
	GetByID(id uint) (*models.Ebook, error)
	Update(ebook *models.Ebook) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Ebook, error)
	Count() (int64, error)
}

// EventRepository defines the interface for events and registrations
type EventRepository interface {
	Create(event *models.Event) error
	GetByID(id uint) (*models.Event, error)
	Update(event *models.Event) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Event, error)
	ListUpcoming(limit int) ([]models.Event, error)
	Count() (int64, error)

	CreateRegistration(registration *models.EventRegistration) error
	GetRegistration(eventID, userID uint) (*models.EventRegistration, error)
	UpdateRegistration(registration *models.EventRegistration) error
	ListRegistrationsByEvent(eventID uint) ([]models.EventRegistration, error)
	ListRegistrationsByUser(userID uint) ([]models.EventRegistration, error)
	CountRegistrations(eventID uint) (int64, error)
}

// PartnerRepository defines the interface for partner benefit operations
type PartnerRepository interface {
	Create(partner *models.Partner) error
	GetByID(id uint) (*models.Partner, error)
	Update(partner *models.Partner) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Partner, error)
	ListActive() ([]models.Partner, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User        UserRepository
	Payment     PaymentRepository
	Credential  CredentialRepository
	Certificate CertificateRepository
	Ebook       EbookRepository
	Event       EventRepository
	Partner     PartnerRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Payment:     NewPaymentRepository(db),
		Credential:  NewCredentialRepository(db),
		Certificate: NewCertificateRepository(db),
		Ebook:       NewEbookRepository(db),
		Event:       NewEventRepository(db),
		Partner:     NewPartnerRepository(db),
	}
}
