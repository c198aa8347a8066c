package router

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/civitax/CiviTax/app/controllers"
	"github.com/civitax/CiviTax/app/repository"
	"github.com/civitax/CiviTax/internal/pkg/middleware"
	"github.com/civitax/CiviTax/internal/pkg/payments"
	"github.com/civitax/CiviTax/internal/pkg/s3export"
)

type ApiRouter struct {
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	repos := repository.GetGlobalRepositories()

	authController := controllers.NewAuthAPIController(repos.User)
	profileController := controllers.NewTaxProfileController(repos.TaxProfile)
	contactController := controllers.NewContactController(repos.ContactMessage)
	analyticsController := controllers.NewAnalyticsController(repos.TaxProfile, repos.Payment)

	paymentService := payments.NewService(repos.Payment, payments.NewStripeClientFromEnv())
	paymentController := controllers.NewPaymentController(repos.TaxProfile, repos.Payment, paymentService)

	adminController := controllers.NewAdminController(repos.TaxProfile, repos.Payment, newPaymentsExporter())

	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "CiviTax API",
		})
	})

	user := api.Group("", middleware.RequireAPISessionAuth)
	user.Get("/auth/user", authController.HandleGetCurrentUser)

	user.Get("/tax-profile", profileController.HandleGet)
	user.Post("/tax-profile", profileController.HandleCreate)
	user.Put("/tax-profile", profileController.HandleUpdate)

	user.Post("/contact", contactController.HandleCreate)
	user.Get("/contact-messages", contactController.HandleList)

	user.Post("/create-payment-intent", paymentController.HandleCreateIntent)
	user.Get("/payments", paymentController.HandleList)
	user.Post("/payments", paymentController.HandleRecord)

	user.Get("/analytics", analyticsController.HandleGet)

	admin := api.Group("/admin", middleware.RequireAPIAdmin)
	admin.Get("/tax-profiles", adminController.HandleListTaxProfiles)
	admin.Get("/payments", adminController.HandleListPayments)
	admin.Put("/payments/:id/status", adminController.HandleUpdatePaymentStatus)
	admin.Post("/exports/payments", adminController.HandleExportPayments)
}

// newPaymentsExporter builds the S3 exporter, or returns nil when export is
// disabled or misconfigured so the endpoint answers 503 instead of panicking
// at boot.
func newPaymentsExporter() controllers.PaymentsExporter {
	cfg, err := s3export.LoadConfig()
	if err != nil {
		fiberlog.Warn(fmt.Sprintf("s3 export disabled: %v", err))
		return nil
	}
	if !cfg.IsEnabled() {
		return nil
	}

	exporter, err := s3export.NewExporter(cfg)
	if err != nil {
		fiberlog.Warn(fmt.Sprintf("s3 export disabled: %v", err))
		return nil
	}
	return exporter
}
