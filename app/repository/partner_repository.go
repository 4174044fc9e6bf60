package repository

import (
	"github.com/socioclube/portal/app/models"
	"gorm.io/gorm"
)

// partnerRepository implements the PartnerRepository interface
type partnerRepository struct {
	db *gorm.DB
}

// NewPartnerRepository creates a new partner repository instance
func NewPartnerRepository(db *gorm.DB) PartnerRepository {
	return &partnerRepository{db: db}
}

// Create creates a new partner in the database
func (r *partnerRepository) Create(partner *models.Partner) error {
	return r.db.Create(partner).Error
}

// GetByID retrieves a partner by its ID
func (r *partnerRepository) GetByID(id uint) (*models.Partner, error) {
	var partner models.Partner
	err := r.db.First(&partner, id).Error
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

// Update updates an existing partner in the database
func (r *partnerRepository) Update(partner *models.Partner) error {
	return r.db.Save(partner).Error
}

// Delete soft deletes a partner by its ID
func (r *partnerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Partner{}, id).Error
}

// List retrieves a paginated list of partners
func (r *partnerRepository) List(offset, limit int) ([]models.Partner, error) {
	var partners []models.Partner
	err := r.db.Offset(offset).Limit(limit).Order("name ASC").Find(&partners).Error
	return partners, err
}

// ListActive retrieves the partners currently offering benefits
func (r *partnerRepository) ListActive() ([]models.Partner, error) {
	var partners []models.Partner
	err := r.db.Where("active = ?", true).Order("category ASC, name ASC").Find(&partners).Error
	return partners, err
}
