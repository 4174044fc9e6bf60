package billing

import "strings"

// Category classifies a provider webhook event tag.
type Category string

const (
	CategorySuccess       Category = "success"
	CategoryFailure       Category = "failure"
	CategoryCancellation  Category = "cancellation"
	CategoryInformational Category = "informational"
	CategoryUnknown       Category = "unknown"
)

// CategoryOf maps an event tag to its category. Matching is case-insensitive
// exact match against the fixed provider vocabulary; anything else is unknown
// and must be acknowledged without mutation.
func CategoryOf(event string) Category {
	switch strings.ToUpper(strings.TrimSpace(event)) {
	case "PAYMENT_CONFIRMED", "PAYMENT_RECEIVED", "PAYMENT_APPROVED":
		return CategorySuccess
	case "PAYMENT_OVERDUE", "PAYMENT_REJECTED", "PAYMENT_FAILED":
		return CategoryFailure
	case "PAYMENT_DELETED", "PAYMENT_REFUNDED", "PAYMENT_CHARGEBACK_REQUESTED", "PAYMENT_CHARGEBACK_DISPUTE":
		return CategoryCancellation
	case "SUBSCRIPTION_CREATED", "SUBSCRIPTION_UPDATED":
		return CategoryInformational
	default:
		return CategoryUnknown
	}
}
