package billing

import (
	"testing"
	"time"

	"github.com/socioclube/portal/app/models"
)

func TestInferPlanFromAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{amount: 49.90, want: models.PlanMonthly},
		{amount: 499.99, want: models.PlanMonthly},
		{amount: 500, want: models.PlanAnnual},
		{amount: 700, want: models.PlanAnnual},
	}

	for _, tt := range tests {
		if got := InferPlanFromAmount(tt.amount); got != tt.want {
			t.Fatalf("InferPlanFromAmount(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestExpiryFor(t *testing.T) {
	paidAt := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	if got := ExpiryFor(models.PlanMonthly, paidAt); !got.Equal(paidAt.AddDate(0, 1, 0)) {
		t.Fatalf("monthly expiry = %v, want %v", got, paidAt.AddDate(0, 1, 0))
	}
	if got := ExpiryFor(models.PlanAnnual, paidAt); !got.Equal(paidAt.AddDate(1, 0, 0)) {
		t.Fatalf("annual expiry = %v, want %v", got, paidAt.AddDate(1, 0, 0))
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		event string
		want  Category
	}{
		{event: "PAYMENT_CONFIRMED", want: CategorySuccess},
		{event: "payment_received", want: CategorySuccess},
		{event: "PAYMENT_APPROVED", want: CategorySuccess},
		{event: "PAYMENT_OVERDUE", want: CategoryFailure},
		{event: "PAYMENT_REJECTED", want: CategoryFailure},
		{event: "PAYMENT_FAILED", want: CategoryFailure},
		{event: "PAYMENT_DELETED", want: CategoryCancellation},
		{event: "PAYMENT_REFUNDED", want: CategoryCancellation},
		{event: "PAYMENT_CHARGEBACK_REQUESTED", want: CategoryCancellation},
		{event: "PAYMENT_CHARGEBACK_DISPUTE", want: CategoryCancellation},
		{event: "SUBSCRIPTION_CREATED", want: CategoryInformational},
		{event: "SUBSCRIPTION_UPDATED", want: CategoryInformational},
		{event: "PAYMENT_CONFIRMED_EXTRA", want: CategoryUnknown},
		{event: "", want: CategoryUnknown},
	}

	for _, tt := range tests {
		if got := CategoryOf(tt.event); got != tt.want {
			t.Fatalf("CategoryOf(%q) = %q, want %q", tt.event, got, tt.want)
		}
	}
}
