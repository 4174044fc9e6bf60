package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/socioclube/portal/app/models"
	"github.com/socioclube/portal/app/repository"
	"github.com/socioclube/portal/internal/pkg/middleware"
)

// HandleListEvents returns upcoming events plus the member's registrations.
func HandleListEvents(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetEventRepository()

	events, err := repo.ListUpcoming(50)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar os eventos")
	}

	registrations, err := repo.ListRegistrationsByUser(middleware.UserID(c))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar as inscrições")
	}

	return c.JSON(fiber.Map{"events": events, "registrations": registrations})
}

// HandleRegisterForEvent enrolls the member in an event. Registration closes
// when the event starts or its capacity is reached.
func HandleRegisterForEvent(c *fiber.Ctx) error {
	eventID, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Identificador inválido")
	}

	userID := middleware.UserID(c)
	repo := repository.GetGlobalFactory().GetEventRepository()

	event, err := repo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Evento não encontrado")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar o evento")
	}

	if !event.StartsAt.After(time.Now()) {
		return jsonError(c, fiber.StatusUnprocessableEntity, "registration_closed", "As inscrições para este evento já foram encerradas")
	}

	if _, err := repo.GetRegistration(eventID, userID); err == nil {
		return jsonError(c, fiber.StatusConflict, "already_registered", "Você já está inscrito neste evento")
	}

	if event.Capacity > 0 {
		count, err := repo.CountRegistrations(eventID)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível verificar as vagas")
		}
		if count >= int64(event.Capacity) {
			return jsonError(c, fiber.StatusConflict, "event_full", "Evento lotado")
		}
	}

	registration := models.EventRegistration{
		EventID: eventID,
		UserID:  userID,
		Status:  models.RegistrationStatusRegistered,
	}
	if err := repo.CreateRegistration(&registration); err != nil {
		log.Errorf("[Event] Failed to register user %d for event %d: %v", userID, eventID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível concluir a inscrição")
	}

	return c.Status(fiber.StatusCreated).JSON(registration)
}
