package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/socioclube/portal/app/repository"
)

// HandleListPartners returns the partners currently offering member benefits.
func HandleListPartners(c *fiber.Ctx) error {
	partners, err := repository.GetGlobalFactory().GetPartnerRepository().ListActive()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar os parceiros")
	}
	return c.JSON(fiber.Map{"partners": partners})
}
