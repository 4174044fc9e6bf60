package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/socioclube/portal/app/repository"
	"github.com/socioclube/portal/internal/pkg/billing"
	"github.com/socioclube/portal/internal/pkg/cache"
	"github.com/socioclube/portal/internal/pkg/env"
	"github.com/socioclube/portal/internal/pkg/jobqueue"
	"github.com/socioclube/portal/internal/pkg/mail"
)

// HandlePaymentWebhook ingests provider payment events. Deliveries are
// deduplicated by the reconciler's event ledger, so the provider may retry
// freely.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	if len(payload) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "empty_body", "Corpo da requisição vazio")
	}

	signature := c.Get("Asaas-Access-Token")
	if signature == "" {
		signature = c.Get("X-Webhook-Signature")
	}

	secret := env.GetEnv("PAYMENT_WEBHOOK_SECRET", "")
	signatureValid := secret == "" || billing.VerifyWebhookSignature(payload, signature, secret)
	if secret != "" && !signatureValid {
		return jsonError(c, fiber.StatusUnauthorized, "invalid_signature", "Assinatura do webhook inválida")
	}

	outcome, err := billingService().Reconcile(c.Context(), billing.ReconcileInput{
		Provider:        c.Get("X-Payment-Provider"),
		ProviderEventID: c.Get("X-Event-Id"),
		Payload:         payload,
		SignatureValid:  signatureValid,
	})
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrMissingField):
			return jsonError(c, fiber.StatusBadRequest, "invalid_payload", "Evento sem campos obrigatórios")
		case errors.Is(err, billing.ErrUserNotFound):
			return jsonError(c, fiber.StatusNotFound, "unknown_customer", "Cliente do provedor não corresponde a nenhum associado")
		default:
			log.Errorf("[Webhook] Reconcile failed: %v", err)
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Falha ao processar o evento")
		}
	}

	if outcome.UserID != 0 && !outcome.Duplicate && !outcome.Ignored {
		if err := cache.Delete(cache.EntitlementKey(outcome.UserID)); err != nil {
			log.Warnf("[Webhook] Failed to invalidate entitlement cache for user %d: %v", outcome.UserID, err)
		}
		if outcome.Category == billing.CategorySuccess {
			notifyPaymentConfirmed(outcome.UserID, outcome.Amount)
		}
	}

	return c.JSON(fiber.Map{
		"received":  true,
		"duplicate": outcome.Duplicate,
		"ignored":   outcome.Ignored,
	})
}

// notifyPaymentConfirmed mails the member after a confirmed payment. Mail
// delivery is best effort and never fails the webhook response.
func notifyPaymentConfirmed(userID uint, amount float64) {
	queue := jobQueueClient()
	if queue == nil {
		return
	}
	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(userID)
	if err != nil {
		log.Warnf("[Webhook] Failed to load user %d for the confirmation mail: %v", userID, err)
		return
	}
	subject, body := mail.PaymentConfirmedBody(user.Name, amount)
	if err := queue.EnqueueMail(jobqueue.MailSendPayload{To: user.Email, Subject: subject, Body: body}); err != nil {
		log.Warnf("[Webhook] Failed to enqueue confirmation mail for user %d: %v", userID, err)
	}
}
