package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/socioclube/portal/app/models"
	"github.com/socioclube/portal/app/repository"
	"github.com/socioclube/portal/internal/pkg/statistics"
)

type setSubscriptionRequest struct {
	Status string `json:"status"`
}

// HandleAdminDashboard returns the aggregate numbers for the admin overview.
func HandleAdminDashboard(c *fiber.Ctx) error {
	return c.JSON(statistics.GetStatisticsData())
}

// HandleAdminListUsers returns a paginated or searched member list.
func HandleAdminListUsers(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetUserRepository()

	if query := strings.TrimSpace(c.Query("q")); query != "" {
		users, err := repo.Search(query)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível buscar associados")
		}
		return c.JSON(fiber.Map{"users": users})
	}

	offset, limit := pagination(c)
	users, err := repo.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível listar associados")
	}
	total, err := repo.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível listar associados")
	}

	return c.JSON(fiber.Map{"users": users, "total": total})
}

// HandleAdminGetUser returns one member account.
func HandleAdminGetUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Identificador inválido")
	}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Associado não encontrado")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar o associado")
	}
	return c.JSON(user)
}

// HandleAdminUpdateUser updates a member account, including role changes.
func HandleAdminUpdateUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Identificador inválido")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Associado não encontrado")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar o associado")
	}

	var req struct {
		Name  *string `json:"name"`
		Phone *string `json:"phone"`
		CPF   *string `json:"cpf"`
		Role  *string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Corpo da requisição inválido")
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.CPF != nil {
		user.CPF = strings.TrimSpace(*req.CPF)
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := user.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "Dados inválidos: "+err.Error())
	}
	if err := repo.Update(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível atualizar o associado")
	}

	return c.JSON(user)
}

// HandleAdminDeleteUser soft deletes a member account.
func HandleAdminDeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Identificador inválido")
	}

	if err := repository.GetGlobalFactory().GetUserRepository().Delete(id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível remover o associado")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAdminSetSubscription manually overrides a member's subscription
// status, for cases the provider webhook cannot cover.
func HandleAdminSetSubscription(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Identificador inválido")
	}

	var req setSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Corpo da requisição inválido")
	}

	switch req.Status {
	case models.SUBSCRIPTION_ACTIVE, models.SUBSCRIPTION_INACTIVE, models.SUBSCRIPTION_CANCELLED:
	default:
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid_status", "Situação inválida: use active, inactive ou cancelled")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Associado não encontrado")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar o associado")
	}

	user.SubscriptionStatus = req.Status
	if err := repo.Update(user); err != nil {
		log.Errorf("[Admin] Failed to override subscription of user %d: %v", id, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível atualizar a assinatura")
	}

	return c.JSON(user)
}

// HandleAdminListPayments returns a paginated list of every payment.
func HandleAdminListPayments(c *fiber.Ctx) error {
	offset, limit := pagination(c)
	repo := repository.GetGlobalFactory().GetPaymentRepository()

	payments, err := repo.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível listar os pagamentos")
	}
	total, err := repo.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível listar os pagamentos")
	}

	return c.JSON(fiber.Map{"payments": payments, "total": total})
}
