package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/socioclube/portal/internal/pkg/middleware"
)

// HandleGetMyCredential returns the member's digital credential, minting or
// renewing it on the way out.
func HandleGetMyCredential(c *fiber.Ctx) error {
	svc := credentialService()
	cred, err := svc.Resolve(c.Context(), middleware.UserID(c))
	if err != nil {
		log.Errorf("[Credential] Failed to resolve credential for user %d: %v", middleware.UserID(c), err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar a credencial")
	}

	return c.JSON(fiber.Map{
		"credential":     cred,
		"validation_url": svc.ValidationURL(cred.Number),
	})
}

// HandleValidateCredential is the public endpoint behind the credential QR code.
func HandleValidateCredential(c *fiber.Ctx) error {
	number := strings.TrimSpace(c.Params("number"))
	if number == "" {
		return jsonError(c, fiber.StatusBadRequest, "invalid_number", "Número de credencial inválido")
	}

	result, err := credentialService().Validate(c.Context(), number)
	if err != nil {
		log.Errorf("[Credential] Validation failed for %s: %v", number, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível validar a credencial")
	}

	return c.JSON(result)
}
