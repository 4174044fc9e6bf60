package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/socioclube/portal/app/models"
	"github.com/socioclube/portal/app/repository"
	"github.com/socioclube/portal/internal/pkg/jobqueue"
)

// HandleAdminCreateEbook adds an e-book to the catalog.
func HandleAdminCreateEbook(c *fiber.Ctx) error {
	var ebook models.Ebook
	if err := c.BodyParser(&ebook); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Corpo da requisição inválido")
	}
	ebook.ID = 0

	if ebook.Title == "" || ebook.FileKey == "" {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "Título e arquivo são obrigatórios")
	}

	if err := repository.GetGlobalFactory().GetEbookRepository().Create(&ebook); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível criar o e-book")
	}
	return c.Status(fiber.StatusCreated).JSON(ebook)
}

// HandleAdminUpdateEbook updates an e-book in the catalog.
func HandleAdminUpdateEbook(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Identificador inválido")
	}

	repo := repository.GetGlobalFactory().GetEbookRepository()
	ebook, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "E-book não encontrado")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar o e-book")
	}

	if err := c.BodyParser(ebook); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Corpo da requisição inválido")
	}
	ebook.ID = id

	if err := repo.Update(ebook); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível atualizar o e-book")
	}
	return c.JSON(ebook)
}

// HandleAdminDeleteEbook removes an e-book from the catalog.
func HandleAdminDeleteEbook(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Identificador inválido")
	}
	if err := repository.GetGlobalFactory().GetEbookRepository().Delete(id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível remover o e-book")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAdminCreateEvent schedules a new event.
func HandleAdminCreateEvent(c *fiber.Ctx) error {
	var event models.Event
	if err := c.BodyParser(&event); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Corpo da requisição inválido")
	}
	event.ID = 0

	if event.Title == "" || event.StartsAt.IsZero() {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "Título e data de início são obrigatórios")
	}

	if err := repository.GetGlobalFactory().GetEventRepository().Create(&event); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível criar o evento")
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// HandleAdminUpdateEvent updates an event.
func HandleAdminUpdateEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Identificador inválido")
	}

	repo := repository.GetGlobalFactory().GetEventRepository()
	event, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Evento não encontrado")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar o evento")
	}

	if err := c.BodyParser(event); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Corpo da requisição inválido")
	}
	event.ID = id

	if err := repo.Update(event); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível atualizar o evento")
	}
	return c.JSON(event)
}

// HandleAdminDeleteEvent cancels an event.
func HandleAdminDeleteEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Identificador inválido")
	}
	if err := repository.GetGlobalFactory().GetEventRepository().Delete(id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível remover o evento")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAdminListEventRegistrations returns every registration of one event
// in sign-up order.
func HandleAdminListEventRegistrations(c *fiber.Ctx) error {
	eventID, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Identificador inválido")
	}

	repo := repository.GetGlobalFactory().GetEventRepository()
	event, err := repo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Evento não encontrado")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar o evento")
	}

	registrations, err := repo.ListRegistrationsByEvent(eventID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar as inscrições")
	}

	return c.JSON(fiber.Map{
		"event":         event,
		"registrations": registrations,
	})
}

// HandleAdminMarkAttendance confirms a member attended an event and queues
// the attendance certificate.
func HandleAdminMarkAttendance(c *fiber.Ctx) error {
	eventID, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Identificador inválido")
	}
	userID, err := paramID(c, "userId")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Identificador inválido")
	}

	repo := repository.GetGlobalFactory().GetEventRepository()
	registration, err := repo.GetRegistration(eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Inscrição não encontrada")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar a inscrição")
	}

	if registration.Status != models.RegistrationStatusAttended {
		now := time.Now()
		registration.Status = models.RegistrationStatusAttended
		registration.CheckedInAt = &now
		if err := repo.UpdateRegistration(registration); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível registrar a presença")
		}
	}

	if queue := jobQueueClient(); queue != nil {
		payload := jobqueue.CertificateGeneratePayload{
			UserID:  userID,
			Kind:    models.CertificateKindEvent,
			EventID: &eventID,
		}
		if err := queue.EnqueueCertificate(payload); err != nil {
			log.Errorf("[Admin] Failed to enqueue event certificate for user %d: %v", userID, err)
		}
	}

	return c.JSON(registration)
}

// HandleAdminAnnualCertificateRun manually triggers the yearly certificate
// sweep that normally runs on the cron schedule.
func HandleAdminAnnualCertificateRun(c *fiber.Ctx) error {
	queue := jobQueueClient()
	if queue == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "queue_unavailable", "Fila de tarefas indisponível")
	}

	go jobqueue.NewAnnualCertificateJob(queue).Run()
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "Emissão anual de certificados iniciada"})
}

// HandleAdminCreatePartner adds a benefit partner.
func HandleAdminCreatePartner(c *fiber.Ctx) error {
	var partner models.Partner
	if err := c.BodyParser(&partner); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Corpo da requisição inválido")
	}
	partner.ID = 0

	if partner.Name == "" {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "Nome do parceiro é obrigatório")
	}

	if err := repository.GetGlobalFactory().GetPartnerRepository().Create(&partner); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível criar o parceiro")
	}
	return c.Status(fiber.StatusCreated).JSON(partner)
}

// HandleAdminUpdatePartner updates a benefit partner.
func HandleAdminUpdatePartner(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Identificador inválido")
	}

	repo := repository.GetGlobalFactory().GetPartnerRepository()
	partner, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Parceiro não encontrado")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar o parceiro")
	}

	if err := c.BodyParser(partner); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Corpo da requisição inválido")
	}
	partner.ID = id

	if err := repo.Update(partner); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível atualizar o parceiro")
	}
	return c.JSON(partner)
}

// HandleAdminDeletePartner removes a benefit partner.
func HandleAdminDeletePartner(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Identificador inválido")
	}
	if err := repository.GetGlobalFactory().GetPartnerRepository().Delete(id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível remover o parceiro")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAdminListPartners returns every partner, active or not.
func HandleAdminListPartners(c *fiber.Ctx) error {
	offset, limit := pagination(c)
	partners, err := repository.GetGlobalFactory().GetPartnerRepository().List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível listar os parceiros")
	}
	return c.JSON(fiber.Map{"partners": partners})
}
