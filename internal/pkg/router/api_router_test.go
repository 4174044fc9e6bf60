package router

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func registeredRoutes(app *fiber.App) map[string]bool {
	routes := make(map[string]bool)
	for _, group := range app.Stack() {
		for _, route := range group {
			routes[route.Method+" "+route.Path] = true
		}
	}
	return routes
}

func TestInstallRouterRegistersApiRoutes(t *testing.T) {
	app := fiber.New()
	InstallRouter(app)

	routes := registeredRoutes(app)
	for _, want := range []string{
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/login",
		"GET /api/v1/auth/activate/:token",
		"GET /api/v1/credenciais/validar/:number",
		"GET /api/v1/certificados/validar/:code",
		"POST /api/v1/webhooks/payment",
		"GET /api/v1/me/certificates",
		"GET /api/v1/events",
		"GET /api/v1/admin/events/:id/registrations",
	} {
		assert.Truef(t, routes[want], "route %s not registered", want)
	}
}

// The certificate mail links members straight to the download route; the
// path built by the job worker must stay registered here.
func TestCertificateDownloadRouteRegistered(t *testing.T) {
	app := fiber.New()
	InstallRouter(app)

	routes := registeredRoutes(app)
	assert.True(t, routes["GET /api/v1/certificates/:id/download"])
}
