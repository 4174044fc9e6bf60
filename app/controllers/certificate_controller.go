package controllers

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/socioclube/portal/app/repository"
	"github.com/socioclube/portal/internal/pkg/env"
	"github.com/socioclube/portal/internal/pkg/middleware"
)

// HandleListMyCertificates returns every certificate issued to the member.
func HandleListMyCertificates(c *fiber.Ctx) error {
	certificates, err := repository.GetGlobalFactory().GetCertificateRepository().ListByUserID(middleware.UserID(c))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar os certificados")
	}
	return c.JSON(fiber.Map{"certificates": certificates})
}

// HandleDownloadCertificate serves one of the member's own certificates.
func HandleDownloadCertificate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Identificador inválido")
	}

	cert, err := repository.GetGlobalFactory().GetCertificateRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Certificado não encontrado")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível carregar o certificado")
	}

	if cert.UserID != middleware.UserID(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Este certificado pertence a outro associado")
	}

	if store := objectStorage(); store != nil {
		url, err := store.PresignDownload(c.Context(), cert.FileKey, cert.Code+".pdf", downloadURLTTL)
		if err != nil {
			log.Errorf("[Certificate] Failed to presign %s: %v", cert.FileKey, err)
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível gerar o link de download")
		}
		return c.Redirect(url, fiber.StatusFound)
	}

	path := filepath.Join(env.GetEnv("CERTIFICATES_DIR", "./storage/certificates"), cert.FileKey)
	return c.Download(path, cert.Code+".pdf")
}

// HandleVerifyCertificate is the public endpoint behind the verification
// code printed on every issued PDF.
func HandleVerifyCertificate(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))
	if code == "" {
		return jsonError(c, fiber.StatusBadRequest, "invalid_code", "Código de certificado inválido")
	}

	repos := repository.GetGlobalFactory()
	cert, err := repos.GetCertificateRepository().GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"valid": false})
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível validar o certificado")
	}

	user, err := repos.GetUserRepository().GetByID(cert.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível validar o certificado")
	}

	return c.JSON(fiber.Map{
		"valid":       true,
		"code":        cert.Code,
		"title":       cert.Title,
		"kind":        cert.Kind,
		"issued_at":   cert.IssuedAt,
		"member_name": user.Name,
	})
}
