package controllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/socioclube/portal/app/models"
	"github.com/socioclube/portal/app/repository"
	"github.com/socioclube/portal/internal/pkg/env"
	"github.com/socioclube/portal/internal/pkg/hcaptcha"
	"github.com/socioclube/portal/internal/pkg/jobqueue"
	"github.com/socioclube/portal/internal/pkg/mail"
	"github.com/socioclube/portal/internal/pkg/token"
)

type registerRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	CPF          string `json:"cpf"`
	Phone        string `json:"phone"`
	CaptchaToken string `json:"captcha_token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a new member account and sends the activation e-mail.
func HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Corpo da requisição inválido")
	}

	if env.GetEnv("HCAPTCHA_SECRET", "") != "" {
		ok, err := hcaptcha.Verify(req.CaptchaToken)
		if err != nil || !ok {
			return jsonError(c, fiber.StatusBadRequest, "captcha_failed", "Falha na verificação do captcha")
		}
	}

	user, err := models.CreateUser(strings.TrimSpace(req.Name), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "Dados de cadastro inválidos: "+err.Error())
	}
	user.CPF = strings.TrimSpace(req.CPF)
	user.Phone = strings.TrimSpace(req.Phone)

	repo := repository.GetGlobalFactory().GetUserRepository()
	if _, err := repo.GetByEmail(user.Email); err == nil {
		return jsonError(c, fiber.StatusConflict, "email_taken", "E-mail já cadastrado")
	}
	if user.CPF != "" {
		if _, err := repo.GetByCPF(user.CPF); err == nil {
			return jsonError(c, fiber.StatusConflict, "cpf_taken", "CPF já cadastrado")
		}
	}

	if err := user.GenerateActivationToken(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível criar a conta")
	}

	if err := repo.Create(user); err != nil {
		log.Errorf("[Auth] Failed to create user %s: %v", user.Email, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível criar a conta")
	}

	activationURL := fmt.Sprintf("%s/api/v1/auth/activate/%s", env.GetEnv("PUBLIC_DOMAIN", "http://localhost:3000"), user.ActivationToken)
	subject, body := mail.WelcomeBody(user.Name, activationURL)
	if queue := jobQueueClient(); queue != nil {
		if err := queue.EnqueueMail(jobqueue.MailSendPayload{To: user.Email, Subject: subject, Body: body}); err != nil {
			log.Errorf("[Auth] Failed to enqueue welcome mail for %s: %v", user.Email, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      user.ID,
		"message": "Conta criada. Verifique seu e-mail para ativá-la.",
	})
}

// HandleActivate confirms account ownership via the e-mailed token.
func HandleActivate(c *fiber.Ctx) error {
	tok := strings.TrimSpace(c.Params("token"))
	if tok == "" {
		return jsonError(c, fiber.StatusBadRequest, "invalid_token", "Token de ativação inválido")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByActivationToken(tok)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Token de ativação inválido ou já utilizado")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível ativar a conta")
	}

	user.ActivationToken = ""
	if err := repo.Update(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível ativar a conta")
	}

	return c.JSON(fiber.Map{"message": "Conta ativada com sucesso"})
}

// HandleLogin authenticates a member and issues a JWT.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Corpo da requisição inválido")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || !user.CheckPassword(req.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "invalid_credentials", "E-mail ou senha incorretos")
	}

	if user.ActivationToken != "" {
		return jsonError(c, fiber.StatusForbidden, "account_not_activated", "Conta ainda não ativada. Verifique seu e-mail.")
	}

	jwt, err := token.Generate(user.ID, user.Role)
	if err != nil {
		log.Errorf("[Auth] Failed to sign token for user %d: %v", user.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Não foi possível autenticar")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := repo.Update(user); err != nil {
		log.Warnf("[Auth] Failed to record login time for user %d: %v", user.ID, err)
	}

	return c.JSON(fiber.Map{
		"token":      jwt,
		"expires_in": int(token.TTL().Seconds()),
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
