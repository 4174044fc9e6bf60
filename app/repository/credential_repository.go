package repository

import (
	"github.com/socioclube/portal/app/models"
	"gorm.io/gorm"
)

// credentialRepository implements the CredentialRepository interface
type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository creates a new credential repository instance
func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

// Create creates a new credential in the database
func (r *credentialRepository) Create(credential *models.Credential) error {
	return r.db.Create(credential).Error
}

// GetByUserID retrieves the credential belonging to one user
func (r *credentialRepository) GetByUserID(userID uint) (*models.Credential, error) {
	var credential models.Credential
	err := r.db.Where("user_id = ?", userID).First(&credential).Error
	if err != nil {
		return nil, err
	}
	return &credential, nil
}

// GetByNumber retrieves a credential by its public number
func (r *credentialRepository) GetByNumber(number string) (*models.Credential, error) {
	if number == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var credential models.Credential
	err := r.db.Where("number = ?", number).First(&credential).Error
	if err != nil {
		return nil, err
	}
	return &credential, nil
}

// Update updates an existing credential in the database
func (r *credentialRepository) Update(credential *models.Credential) error {
	return r.db.Save(credential).Error
}
