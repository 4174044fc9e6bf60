package repository

import (
	"github.com/socioclube/portal/app/models"
	"gorm.io/gorm"
)

// certificateRepository implements the CertificateRepository interface
type certificateRepository struct {
	db *gorm.DB
}

// NewCertificateRepository creates a new certificate repository instance
func NewCertificateRepository(db *gorm.DB) CertificateRepository {
	return &certificateRepository{db: db}
}

// Create records a newly issued certificate
func (r *certificateRepository) Create(certificate *models.Certificate) error {
	return r.db.Create(certificate).Error
}

// GetByID retrieves a certificate by its ID
func (r *certificateRepository) GetByID(id uint) (*models.Certificate, error) {
	var certificate models.Certificate
	err := r.db.First(&certificate, id).Error
	if err != nil {
		return nil, err
	}
	return &certificate, nil
}

// GetByCode retrieves a certificate by its public verification code
func (r *certificateRepository) GetByCode(code string) (*models.Certificate, error) {
	if code == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var certificate models.Certificate
	err := r.db.Where("code = ?", code).First(&certificate).Error
	if err != nil {
		return nil, err
	}
	return &certificate, nil
}

// ListByUserID retrieves all certificates issued to one user, newest first
func (r *certificateRepository) ListByUserID(userID uint) ([]models.Certificate, error) {
	var certificates []models.Certificate
	err := r.db.Where("user_id = ?", userID).Order("issued_at DESC").Find(&certificates).Error
	return certificates, err
}
