package controllers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/socioclube/portal/app/repository"
	"github.com/socioclube/portal/internal/pkg/cache"
	"github.com/socioclube/portal/internal/pkg/entitlements"
	"github.com/socioclube/portal/internal/pkg/middleware"
	"github.com/socioclube/portal/internal/pkg/utils"
)

const entitlementCacheTTL = 60 * time.Second

type updateMeRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// HandleGetMe returns the authenticated member's account.
func HandleGetMe(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Associado não encontrado")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar a conta")
	}
	return c.JSON(fiber.Map{
		"user":       user,
		"avatar_url": utils.GetGravatarURL(user.Email, 200),
	})
}

// HandleUpdateMe updates the mutable profile fields of the authenticated member.
func HandleUpdateMe(c *fiber.Ctx) error {
	var req updateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Corpo da requisição inválido")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(middleware.UserID(c))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Associado não encontrado")
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}

	if err := user.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "Dados inválidos: "+err.Error())
	}
	if err := repo.Update(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível atualizar a conta")
	}

	return c.JSON(user)
}

// HandleGetEntitlement returns the member's payment standing. The derivation
// is cached for a minute and invalidated by the webhook reconciler.
func HandleGetEntitlement(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	key := cache.EntitlementKey(userID)
	if raw, err := cache.Get(key); err == nil {
		var summary entitlements.Summary
		if json.Unmarshal([]byte(raw), &summary) == nil {
			return c.JSON(summary)
		}
	}

	summary, err := billingService().ResolvePaymentStatus(c.Context(), userID)
	if err != nil {
		log.Errorf("[Entitlement] Failed to resolve status for user %d: %v", userID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível consultar a situação do associado")
	}

	if raw, err := json.Marshal(summary); err == nil {
		if err := cache.Set(key, string(raw), entitlementCacheTTL); err != nil {
			log.Warnf("[Entitlement] Failed to cache status for user %d: %v", userID, err)
		}
	}

	return c.JSON(summary)
}
