package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/socioclube/portal/app/controllers"
	"github.com/socioclube/portal/internal/pkg/middleware"
)

type ApiRouter struct {
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{Max: 120}))
	v1 := api.Group("/v1")

	// Public surface
	auth := v1.Group("/auth")
	auth.Post("/register", controllers.HandleRegister)
	auth.Post("/login", controllers.HandleLogin)
	auth.Get("/activate/:token", controllers.HandleActivate)

	v1.Get("/credenciais/validar/:number", controllers.HandleValidateCredential)
	v1.Get("/certificados/validar/:code", controllers.HandleVerifyCertificate)
	v1.Post("/webhooks/payment", controllers.HandlePaymentWebhook)

	// Member surface
	member := v1.Group("", middleware.RequireAuth)
	member.Get("/me", controllers.HandleGetMe)
	member.Put("/me", controllers.HandleUpdateMe)
	member.Get("/me/entitlement", controllers.HandleGetEntitlement)
	member.Get("/me/payments", controllers.HandleListMyPayments)
	member.Post("/payments", controllers.HandleCreatePayment)
	member.Get("/me/credential", controllers.HandleGetMyCredential)
	member.Get("/ebooks", controllers.HandleListEbooks)
	member.Get("/ebooks/:id/download", controllers.HandleDownloadEbook)
	member.Get("/events", controllers.HandleListEvents)
	member.Post("/events/:id/register", controllers.HandleRegisterForEvent)
	member.Get("/me/certificates", controllers.HandleListMyCertificates)
	member.Get("/certificates/:id/download", controllers.HandleDownloadCertificate)
	member.Get("/partners", controllers.HandleListPartners)

	// Admin surface
	admin := v1.Group("/admin", middleware.RequireAuth, middleware.RequireAdmin)
	admin.Get("/dashboard", controllers.HandleAdminDashboard)

	admin.Get("/users", controllers.HandleAdminListUsers)
	admin.Get("/users/:id", controllers.HandleAdminGetUser)
	admin.Put("/users/:id", controllers.HandleAdminUpdateUser)
	admin.Delete("/users/:id", controllers.HandleAdminDeleteUser)
	admin.Put("/users/:id/subscription", controllers.HandleAdminSetSubscription)

	admin.Get("/payments", controllers.HandleAdminListPayments)

	admin.Post("/ebooks", controllers.HandleAdminCreateEbook)
	admin.Put("/ebooks/:id", controllers.HandleAdminUpdateEbook)
	admin.Delete("/ebooks/:id", controllers.HandleAdminDeleteEbook)

	admin.Post("/events", controllers.HandleAdminCreateEvent)
	admin.Put("/events/:id", controllers.HandleAdminUpdateEvent)
	admin.Delete("/events/:id", controllers.HandleAdminDeleteEvent)
	admin.Get("/events/:id/registrations", controllers.HandleAdminListEventRegistrations)
	admin.Post("/events/:id/attendance/:userId", controllers.HandleAdminMarkAttendance)

	admin.Post("/certificates/annual-run", controllers.HandleAdminAnnualCertificateRun)

	admin.Get("/partners", controllers.HandleAdminListPartners)
	admin.Post("/partners", controllers.HandleAdminCreatePartner)
	admin.Put("/partners/:id", controllers.HandleAdminUpdatePartner)
	admin.Delete("/partners/:id", controllers.HandleAdminDeletePartner)
}
