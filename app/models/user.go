package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ROLE_MEMBER = "member"
	ROLE_ADMIN  = "admin"

	SUBSCRIPTION_ACTIVE    = "active"
	SUBSCRIPTION_INACTIVE  = "inactive"
	SUBSCRIPTION_CANCELLED = "cancelled"
)

type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Name               string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=3,max=150"`
	Email              string         `gorm:"uniqueIndex;type:varchar(200) CHARACTER SET utf8 COLLATE utf8_bin" json:"email" validate:"required,email,min=5,max=200"`
	Password           string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	CPF                string         `gorm:"type:varchar(14);default:null;index" json:"cpf" validate:"max=14"`
	Phone              string         `gorm:"type:varchar(20);default:null" json:"phone" validate:"max=20"`
	Role               string         `gorm:"type:varchar(50);default:'member'" json:"role" validate:"oneof=member admin"`
	SubscriptionStatus string         `gorm:"type:varchar(50);default:'inactive';index" json:"subscription_status" validate:"oneof=active inactive cancelled"`
	ProviderCustomerID string         `gorm:"type:varchar(100);default:null;index" json:"-"`
	ActivationToken    string         `gorm:"type:varchar(100);index" json:"-"`
	ActivationSentAt   *time.Time     `gorm:"type:timestamp;default:null" json:"-"`
	LastLoginAt        *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

func CreateUser(name string, email string, password string) (*User, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:               name,
		Email:              email,
		Password:           pw,
		Role:               ROLE_MEMBER,
		SubscriptionStatus: SUBSCRIPTION_INACTIVE,
	}

	err = u.Validate()
	if err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// GenerateActivationToken creates a random token and sets ActivationSentAt
func (u *User) GenerateActivationToken() error {
	token, err := uuid.NewRandom()
	if err != nil {
		return err
	}
	u.ActivationToken = token.String()
	now := time.Now()
	u.ActivationSentAt = &now
	return nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == ROLE_ADMIN
}

// IsSubscriptionActive reports whether the subscription status is active
func (u *User) IsSubscriptionActive() bool {
	return u.SubscriptionStatus == SUBSCRIPTION_ACTIVE
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}
