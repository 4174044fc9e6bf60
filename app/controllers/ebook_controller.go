package controllers

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/socioclube/portal/app/repository"
	"github.com/socioclube/portal/internal/pkg/env"
	"github.com/socioclube/portal/internal/pkg/middleware"
)

const downloadURLTTL = 15 * time.Minute

// HandleListEbooks returns the e-book catalog for members.
func HandleListEbooks(c *fiber.Ctx) error {
	offset, limit := pagination(c)
	repo := repository.GetGlobalFactory().GetEbookRepository()

	ebooks, err := repo.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar o catálogo")
	}
	total, err := repo.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar o catálogo")
	}

	return c.JSON(fiber.Map{"ebooks": ebooks, "total": total})
}

// HandleDownloadEbook redirects a member in good standing to a short-lived
// download URL. Members in arrears are refused.
func HandleDownloadEbook(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Identificador inválido")
	}

	userID := middleware.UserID(c)
	summary, err := billingService().ResolvePaymentStatus(c.Context(), userID)
	if err != nil {
		log.Errorf("[Ebook] Failed to resolve standing for user %d: %v", userID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível verificar a situação do associado")
	}
	if !summary.IsAdimplente() {
		return jsonError(c, fiber.StatusForbidden, "inadimplente", "Conteúdo disponível apenas para associados adimplentes")
	}

	ebook, err := repository.GetGlobalFactory().GetEbookRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "E-book não encontrado")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar o e-book")
	}

	if store := objectStorage(); store != nil {
		url, err := store.PresignDownload(c.Context(), ebook.FileKey, filepath.Base(ebook.FileKey), downloadURLTTL)
		if err != nil {
			log.Errorf("[Ebook] Failed to presign %s: %v", ebook.FileKey, err)
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível gerar o link de download")
		}
		return c.Redirect(url, fiber.StatusFound)
	}

	path := filepath.Join(env.GetEnv("EBOOKS_DIR", "./storage/ebooks"), ebook.FileKey)
	return c.SendFile(path, true)
}
