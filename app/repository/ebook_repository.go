package repository

import (
	"github.com/socioclube/portal/app/models"
	"gorm.io/gorm"
)

// ebookRepository implements the EbookRepository interface
type ebookRepository struct {
	db *gorm.DB
}

// NewEbookRepository creates a new e-book repository instance
func NewEbookRepository(db *gorm.DB) EbookRepository {
	return &ebookRepository{db: db}
}

// Create creates a new e-book in the catalog
func (r *ebookRepository) Create(ebook *models.Ebook) error {
	return r.db.Create(ebook).Error
}

// GetByID retrieves an e-book by its ID
func (r *ebookRepository) GetByID(id uint) (*models.Ebook, error) {
	var ebook models.Ebook
	err := r.db.First(&ebook, id).Error
	if err != nil {
		return nil, err
	}
	return &ebook, nil
}

// Update updates an existing e-book in the database
func (r *ebookRepository) Update(ebook *models.Ebook) error {
	return r.db.Save(ebook).Error
}

// Delete soft deletes an e-book by its ID
func (r *ebookRepository) Delete(id uint) error {
	return r.db.Delete(&models.Ebook{}, id).Error
}

// List retrieves a paginated e-book catalog, newest first
func (r *ebookRepository) List(offset, limit int) ([]models.Ebook, error) {
	var ebooks []models.Ebook
	err := r.db.Offset(offset).Limit(limit).Order("created_at DESC").Find(&ebooks).Error
	return ebooks, err
}

// Count returns the total number of e-books
func (r *ebookRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Ebook{}).Count(&count).Error
	return count, err
}
