package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/socioclube/portal/app/models"
	"github.com/socioclube/portal/internal/pkg/token"
)

const (
	// Locals keys populated by RequireAuth.
	KeyUserID  = "user_id"
	KeyRole    = "role"
	KeyIsAdmin = "is_admin"
)

// RequireAuth validates the bearer token (or auth cookie) and loads the
// member's identity into the request locals. Returns JSON 401 on failure.
func RequireAuth(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		tokenString = c.Cookies("socioclube_token")
	}
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "Autenticação necessária",
		})
	}

	claims, err := token.Validate(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "Token inválido ou expirado",
		})
	}

	c.Locals(KeyUserID, claims.UserID)
	c.Locals(KeyRole, claims.Role)
	c.Locals(KeyIsAdmin, claims.Role == models.ROLE_ADMIN)
	return c.Next()
}

// RequireAdmin ensures the authenticated member holds the admin role.
// Must run after RequireAuth.
func RequireAdmin(c *fiber.Ctx) error {
	if isAdmin, ok := c.Locals(KeyIsAdmin).(bool); !ok || !isAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "Acesso restrito a administradores",
		})
	}
	return c.Next()
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(KeyUserID).(uint); ok {
		return id
	}
	return 0
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
