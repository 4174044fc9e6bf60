package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/socioclube/portal/app/models"
)

func TestPlanPriceDefaults(t *testing.T) {
	assert.InDelta(t, 49.90, planPrice(models.PlanMonthly), 0.001)
	assert.InDelta(t, 499.00, planPrice(models.PlanAnnual), 0.001)
}

func TestPlanPriceFromEnvironment(t *testing.T) {
	t.Setenv("PLAN_MONTHLY_PRICE", "59.90")
	t.Setenv("PLAN_ANNUAL_PRICE", "599.00")

	assert.InDelta(t, 59.90, planPrice(models.PlanMonthly), 0.001)
	assert.InDelta(t, 599.00, planPrice(models.PlanAnnual), 0.001)
}

func TestPlanPriceRejectsUnknownPlan(t *testing.T) {
	assert.Zero(t, planPrice("weekly"))
}

func TestPlanPriceMalformedValue(t *testing.T) {
	t.Setenv("PLAN_MONTHLY_PRICE", "not-a-number")

	assert.Zero(t, planPrice(models.PlanMonthly))
}
