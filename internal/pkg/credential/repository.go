package credential

import (
	"github.com/socioclube/portal/app/models"
	"gorm.io/gorm"
)

// Repository provides the store operations used by the credential service.
type Repository interface {
	UserByID(id uint) (*models.User, error)
	CredentialByUserID(userID uint) (*models.Credential, error)
	CredentialByNumber(number string) (*models.Credential, error)
	CreateCredential(credential *models.Credential) error
	UpdateCredential(credential *models.Credential) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a credential repository backed by GORM.
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

func (r *gormRepository) CredentialByUserID(userID uint) (*models.Credential, error) {
	var credential models.Credential
	err := r.db.Where("user_id = ?", userID).First(&credential).Error
	if err != nil {
		return nil, err
	}
	return &credential, nil
}

func (r *gormRepository) CredentialByNumber(number string) (*models.Credential, error) {
	var credential models.Credential
	err := r.db.Where("number = ?", number).First(&credential).Error
	if err != nil {
		return nil, err
	}
	return &credential, nil
}

func (r *gormRepository) CreateCredential(credential *models.Credential) error {
	return r.db.Create(credential).Error
}

func (r *gormRepository) UpdateCredential(credential *models.Credential) error {
	return r.db.Save(credential).Error
}
