package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/socioclube/portal/app/models"
	"github.com/socioclube/portal/app/repository"
	"github.com/socioclube/portal/internal/pkg/env"
	"github.com/socioclube/portal/internal/pkg/middleware"
)

type createPaymentRequest struct {
	Plan string `json:"plan"`
}

func planPrice(plan string) float64 {
	var raw string
	switch plan {
	case models.PlanMonthly:
		raw = env.GetEnv("PLAN_MONTHLY_PRICE", "49.90")
	case models.PlanAnnual:
		raw = env.GetEnv("PLAN_ANNUAL_PRICE", "499.00")
	default:
		return 0
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return price
}

// HandleCreatePayment opens a pending charge for the chosen plan. The charge
// is settled later by the provider webhook, never by this endpoint.
func HandleCreatePayment(c *fiber.Ctx) error {
	var req createPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Corpo da requisição inválido")
	}

	if req.Plan != models.PlanMonthly && req.Plan != models.PlanAnnual {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid_plan", "Plano inválido: use monthly ou annual")
	}

	amount := planPrice(req.Plan)
	if amount <= 0 {
		log.Errorf("[Payment] Plan %s has no configured price", req.Plan)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível criar a cobrança")
	}

	dueDate := time.Now().AddDate(0, 0, 7)
	payment := models.Payment{
		UserID:  middleware.UserID(c),
		Amount:  amount,
		Plan:    req.Plan,
		Status:  models.PaymentStatusPending,
		DueDate: &dueDate,
	}

	if err := repository.GetGlobalFactory().GetPaymentRepository().Create(&payment); err != nil {
		log.Errorf("[Payment] Failed to create pending payment for user %d: %v", payment.UserID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível criar a cobrança")
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}

// HandleListMyPayments returns the authenticated member's payment history.
func HandleListMyPayments(c *fiber.Ctx) error {
	offset, limit := pagination(c)
	payments, err := repository.GetGlobalFactory().GetPaymentRepository().GetByUserID(middleware.UserID(c), offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar os pagamentos")
	}
	return c.JSON(fiber.Map{"payments": payments})
}
