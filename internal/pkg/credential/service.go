package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/socioclube/portal/app/models"
	"gorm.io/gorm"
)

// Masked member statuses rendered on the public validation endpoint.
const (
	StatusLabelActive    = "Ativa"
	StatusLabelExpired   = "Expirada"
	StatusLabelSuspended = "Inativa"
)

const validityPeriodYears = 1

// MemberSummary is the subset of member data exposed on validation.
type MemberSummary struct {
	Name       string    `json:"name"`
	Number     string    `json:"number"`
	ExpiryDate time.Time `json:"expiry_date"`
}

// ValidationResult is the public verdict for a credential number.
type ValidationResult struct {
	IsValid bool           `json:"is_valid"`
	Status  string         `json:"status,omitempty"`
	Member  *MemberSummary `json:"member,omitempty"`
	Message string         `json:"message,omitempty"`
}

// Service manages the member credential lifecycle: lazy creation, renewal on
// payment confirmation, and public validation by number.
type Service struct {
	repo    Repository
	baseURL string
}

// NewService creates a credential service from an injected repository.
// baseURL is the public origin used to build validation URLs (QR targets).
func NewService(repo Repository, baseURL string) *Service {
	return &Service{repo: repo, baseURL: strings.TrimRight(baseURL, "/")}
}

// NewServiceFromDB creates a credential service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, baseURL string) *Service {
	return NewService(NewRepository(db), baseURL)
}

// Resolve returns the user's credential, creating or renewing it as a side
// effect of the read. An expired credential of a non-active member is
// returned as-is; blocking is the caller's concern, not the resolver's.
func (s *Service) Resolve(ctx context.Context, userID uint) (*models.Credential, error) {
	_ = ctx
	cred, err := s.repo.CredentialByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.mint(userID)
		}
		return nil, err
	}

	now := time.Now()
	if cred.IsExpired(now) {
		user, err := s.repo.UserByID(userID)
		if err != nil {
			return nil, err
		}
		if user.IsSubscriptionActive() {
			cred.IssueDate = now
			cred.ExpiryDate = now.AddDate(validityPeriodYears, 0, 0)
			cred.Status = models.CredentialStatusActive
			if err := s.repo.UpdateCredential(cred); err != nil {
				return nil, err
			}
			fiberlog.Infof("[Credential] renewed on access: user=%d number=%s", userID, cred.Number)
		}
	}
	return cred, nil
}

// RenewOnPayment pushes the credential expiry one validity period past now,
// unconditionally, when a payment is confirmed. Missing credentials are left
// for the next Resolve call to mint.
func (s *Service) RenewOnPayment(ctx context.Context, userID uint) error {
	_ = ctx
	cred, err := s.repo.CredentialByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	now := time.Now()
	cred.IssueDate = now
	cred.ExpiryDate = now.AddDate(validityPeriodYears, 0, 0)
	cred.Status = models.CredentialStatusActive
	if err := s.repo.UpdateCredential(cred); err != nil {
		return err
	}
	fiberlog.Infof("[Credential] renewed on payment: user=%d number=%s", userID, cred.Number)
	return nil
}

// Validate classifies a credential number for third-party verification.
// Never mutates state. An expired window wins over subscription standing;
// a live non-active subscription masks the member as suspended even while
// the stored window is still open.
func (s *Service) Validate(ctx context.Context, number string) (*ValidationResult, error) {
	_ = ctx
	cred, err := s.repo.CredentialByNumber(strings.TrimSpace(number))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ValidationResult{IsValid: false, Message: "Credencial não encontrada"}, nil
		}
		return nil, err
	}

	user, err := s.repo.UserByID(cred.UserID)
	if err != nil {
		return nil, err
	}

	member := &MemberSummary{
		Name:       user.Name,
		Number:     cred.Number,
		ExpiryDate: cred.ExpiryDate,
	}

	if cred.IsExpired(time.Now()) {
		return &ValidationResult{IsValid: false, Status: StatusLabelExpired, Member: member}, nil
	}
	if !user.IsSubscriptionActive() || cred.Status != models.CredentialStatusActive {
		return &ValidationResult{IsValid: false, Status: StatusLabelSuspended, Member: member}, nil
	}
	return &ValidationResult{IsValid: true, Status: StatusLabelActive, Member: member}, nil
}

// ValidationURL builds the public verification URL encoded into the
// credential's QR code.
func (s *Service) ValidationURL(number string) string {
	return fmt.Sprintf("%s/credenciais/validar/%s", s.baseURL, number)
}

func (s *Service) mint(userID uint) (*models.Credential, error) {
	number, err := GenerateNumber()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	cred := &models.Credential{
		UserID:     userID,
		Number:     number,
		IssueDate:  now,
		ExpiryDate: now.AddDate(validityPeriodYears, 0, 0),
		Status:     models.CredentialStatusActive,
	}
	if err := s.repo.CreateCredential(cred); err != nil {
		return nil, err
	}
	fiberlog.Infof("[Credential] minted: user=%d number=%s", userID, number)
	return cred, nil
}
