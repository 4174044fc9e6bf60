package billing

import (
	"time"

	"github.com/socioclube/portal/app/models"
)

// annualAmountThreshold drives plan inference for payments synthesized from
// webhook notifications that carry no local payment record.
// TODO: derive the plan from a price table instead of this fixed threshold.
const annualAmountThreshold = 500.0

// InferPlanFromAmount guesses the plan of a provider-notified payment from
// its value.
func InferPlanFromAmount(amount float64) string {
	if amount >= annualAmountThreshold {
		return models.PlanAnnual
	}
	return models.PlanMonthly
}

// ExpiryFor computes the end of the paid period opened by a payment.
func ExpiryFor(plan string, paymentDate time.Time) time.Time {
	if plan == models.PlanAnnual {
		return paymentDate.AddDate(1, 0, 0)
	}
	return paymentDate.AddDate(0, 1, 0)
}
