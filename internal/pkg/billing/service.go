package billing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/socioclube/portal/app/models"
	"github.com/socioclube/portal/internal/pkg/entitlements"
	"gorm.io/gorm"
)

// CredentialRenewer is the slice of the credential service the reconciler
// needs after a confirmed payment.
type CredentialRenewer interface {
	RenewOnPayment(ctx context.Context, userID uint) error
}

// Service derives entitlement state from stored payments and reconciles
// asynchronous provider notifications into payments, user subscription
// status and credential lifecycle.
type Service struct {
	repo  Repository
	creds CredentialRenewer
}

// NewService creates a billing service from an injected repository.
func NewService(repo Repository, creds CredentialRenewer) *Service {
	return &Service{repo: repo, creds: creds}
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, creds CredentialRenewer) *Service {
	return NewService(NewRepository(db), creds)
}

// ResolvePaymentStatus derives the member's current entitlement from the
// newest-by-creation payment. Read-only; older paid payments are never
// consulted, so a more recent pending payment masks a still-valid prior
// paid period.
func (s *Service) ResolvePaymentStatus(ctx context.Context, userID uint) (entitlements.Summary, error) {
	_ = ctx
	payment, err := s.repo.MostRecentPaymentByCreation(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entitlements.Inadimplente(), nil
		}
		return entitlements.Inadimplente(), err
	}

	if !payment.IsPaid() {
		return entitlements.Inadimplente(), nil
	}

	paidAt := payment.CreatedAt
	if payment.PaymentDate != nil {
		paidAt = *payment.PaymentDate
	}
	expiry := ExpiryFor(payment.Plan, paidAt)
	if expiry.After(time.Now()) {
		return entitlements.Adimplente(expiry), nil
	}
	return entitlements.Inadimplente(), nil
}

// Reconcile processes exactly one provider notification. The event is first
// persisted into the idempotency ledger; redeliveries of a successfully
// processed event are acknowledged without mutation, while redeliveries of
// an event whose previous attempt recorded a processing error run the
// reconciliation again. All store writes of one event run inside a single
// transaction, then the credential renewal step executes for success events.
func (s *Service) Reconcile(ctx context.Context, in ReconcileInput) (*Outcome, error) {
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		provider = models.PaymentProviderAsaas
	}
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256(in.Payload)
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	var eventType string
	if payload, err := ParseWebhookPayload(in.Payload); err == nil {
		eventType = payload.Event
	}

	created, stored, err := s.repo.CreateWebhookEventIfNotExists(&models.WebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       eventType,
		PayloadJSON:     string(in.Payload),
		SignatureValid:  in.SignatureValid,
	})
	if err != nil {
		return nil, err
	}
	if !created {
		if stored.ProcessingError == "" {
			fiberlog.Infof("[Billing] duplicate webhook delivery ignored: provider=%s event_id=%s", provider, eventID)
			return &Outcome{Duplicate: true}, nil
		}
		fiberlog.Warnf("[Billing] retrying failed event on redelivery: provider=%s event_id=%s", provider, eventID)
	}

	outcome, err := s.apply(ctx, in.Payload)
	if err != nil {
		_ = s.repo.MarkWebhookProcessed(stored.ID, err.Error())
		return nil, err
	}
	if err := s.repo.MarkWebhookProcessed(stored.ID, ""); err != nil {
		return nil, err
	}
	return outcome, nil
}

func (s *Service) apply(ctx context.Context, raw []byte) (*Outcome, error) {
	payload, err := ParseWebhookPayload(raw)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.UserByProviderCustomerID(payload.Payment.Customer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer=%s", ErrUserNotFound, payload.Payment.Customer)
		}
		return nil, err
	}

	category := CategoryOf(payload.Event)
	outcome := &Outcome{Category: category, UserID: user.ID}

	switch category {
	case CategorySuccess:
		if err := s.repo.Transaction(func(tx Repository) error {
			if err := applyPaymentStatus(tx, user.ID, payload.Payment, models.PaymentStatusPaid, true); err != nil {
				return err
			}
			return tx.UpdateUserSubscriptionStatus(user.ID, models.SUBSCRIPTION_ACTIVE)
		}); err != nil {
			return nil, err
		}
		if s.creds != nil {
			if err := s.creds.RenewOnPayment(ctx, user.ID); err != nil {
				return nil, fmt.Errorf("credential renewal after payment: %w", err)
			}
		}
		outcome.Amount = payload.Payment.Value

	case CategoryFailure:
		if err := s.repo.Transaction(func(tx Repository) error {
			if err := applyPaymentStatus(tx, user.ID, payload.Payment, models.PaymentStatusOverdue, false); err != nil {
				return err
			}
			return tx.UpdateUserSubscriptionStatus(user.ID, models.SUBSCRIPTION_INACTIVE)
		}); err != nil {
			return nil, err
		}

	case CategoryCancellation:
		if err := s.repo.Transaction(func(tx Repository) error {
			if err := applyPaymentStatus(tx, user.ID, payload.Payment, models.PaymentStatusCancelled, false); err != nil {
				return err
			}
			return tx.UpdateUserSubscriptionStatus(user.ID, models.SUBSCRIPTION_CANCELLED)
		}); err != nil {
			return nil, err
		}

	case CategoryInformational:
		fiberlog.Infof("[Billing] informational event acknowledged: %s user=%d", payload.Event, user.ID)
		outcome.Ignored = true

	default:
		// Unknown categories are acknowledged, never failed.
		fiberlog.Infof("[Billing] unknown event acknowledged: %s user=%d", payload.Event, user.ID)
		outcome.Ignored = true
	}

	return outcome, nil
}

// applyPaymentStatus moves the payment referenced by the provider id to the
// given status. For success events a missing local payment is synthesized
// from the notified value; other categories skip missing payments.
func applyPaymentStatus(tx Repository, userID uint, info *WebhookPayment, status string, synthesize bool) error {
	externalID := strings.TrimSpace(info.ID)
	if externalID != "" {
		payment, err := tx.PaymentByExternalID(userID, externalID)
		if err == nil {
			var paymentDate *time.Time
			if status == models.PaymentStatusPaid && payment.PaymentDate == nil {
				now := time.Now()
				paymentDate = &now
			}
			return tx.UpdatePaymentStatus(payment.ID, status, paymentDate)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	if !synthesize {
		return nil
	}

	now := time.Now()
	return tx.CreatePayment(&models.Payment{
		UserID:      userID,
		Amount:      info.Value,
		Plan:        InferPlanFromAmount(info.Value),
		Status:      status,
		PaymentDate: &now,
		ExternalID:  externalID,
	})
}
