package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingField marks a webhook payload that lacks the event tag or a
// customer reference. Surfaced to the HTTP layer as a client error.
var ErrMissingField = errors.New("webhook payload missing required field")

// ErrUserNotFound marks a customer reference that resolves to no local user.
var ErrUserNotFound = errors.New("no local user for provider customer")

// WebhookPayment is the provider's payment object inside a webhook payload.
type WebhookPayment struct {
	ID          string  `json:"id"`
	Customer    string  `json:"customer"`
	Value       float64 `json:"value"`
	BillingType string  `json:"billingType"`
	DueDate     string  `json:"dueDate"`
}

// WebhookPayload is the provider-defined notification shape.
type WebhookPayload struct {
	Event   string          `json:"event"`
	Payment *WebhookPayment `json:"payment"`
}

// ParseWebhookPayload decodes a raw provider notification and enforces the
// presence of the event tag and the customer reference.
func ParseWebhookPayload(raw []byte) (*WebhookPayload, error) {
	var payload WebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}
	if strings.TrimSpace(payload.Event) == "" {
		return nil, fmt.Errorf("%w: event", ErrMissingField)
	}
	if payload.Payment == nil || strings.TrimSpace(payload.Payment.Customer) == "" {
		return nil, fmt.Errorf("%w: payment.customer", ErrMissingField)
	}
	return &payload, nil
}

// ReconcileInput is the normalized input for webhook reconciliation.
type ReconcileInput struct {
	Provider        string
	ProviderEventID string
	Payload         []byte
	SignatureValid  bool
}

// Outcome reports what a reconciliation run did with the event.
type Outcome struct {
	Duplicate bool
	Ignored   bool
	Category  Category
	UserID    uint
	// Amount is the provider-notified payment value; set for success events.
	Amount float64
}
