package controllers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/civitax/CiviTax/app/models"
	"github.com/civitax/CiviTax/app/repository"
)

// PaymentsExporter uploads payment rows somewhere durable and returns the
// object key. Satisfied by s3export.Exporter.
type PaymentsExporter interface {
	ExportPayments(ctx context.Context, payments []models.Payment) (string, error)
}

// AdminController serves the cross-user listing and export endpoints. All
// routes are behind the admin role middleware.
type AdminController struct {
	profiles repository.TaxProfileRepository
	pay      repository.PaymentRepository
	exporter PaymentsExporter
}

// NewAdminController creates the controller. exporter may be nil when S3
// export is not configured.
func NewAdminController(profiles repository.TaxProfileRepository, pay repository.PaymentRepository, exporter PaymentsExporter) *AdminController {
	return &AdminController{profiles: profiles, pay: pay, exporter: exporter}
}

// HandleListTaxProfiles returns every profile with its owning user.
func (ac *AdminController) HandleListTaxProfiles(c *fiber.Ctx) error {
	profiles, err := ac.profiles.GetAllWithUsers()
	if err != nil {
		fiberlog.Error(fmt.Sprintf("admin list tax profiles failed: %v", err))
		return respondInternalError(c, "Failed to fetch tax profiles")
	}
	if profiles == nil {
		profiles = []models.TaxProfile{}
	}

	return c.JSON(profiles)
}

// HandleListPayments returns every payment with its user and profile.
func (ac *AdminController) HandleListPayments(c *fiber.Ctx) error {
	payments, err := ac.pay.GetAllWithRelations()
	if err != nil {
		fiberlog.Error(fmt.Sprintf("admin list payments failed: %v", err))
		return respondInternalError(c, "Failed to fetch payments")
	}
	if payments == nil {
		payments = []models.Payment{}
	}

	return c.JSON(payments)
}

type updatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed failed"`
}

// HandleUpdatePaymentStatus overrides a payment's status. Reconciliation
// only; the normal flow never moves a payment out of completed.
func (ac *AdminController) HandleUpdatePaymentStatus(c *fiber.Ctx) error {
	var req updatePaymentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return respondValidationError(c, err)
	}

	payment, err := ac.pay.UpdateStatus(c.Params("id"), req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondNotFound(c, "Payment not found")
		}
		fiberlog.Error(fmt.Sprintf("admin update payment status failed: %v", err))
		return respondInternalError(c, "Failed to update payment")
	}

	return c.JSON(payment)
}

// HandleExportPayments streams every payment row as CSV to the configured
// S3 bucket and returns the object key.
func (ac *AdminController) HandleExportPayments(c *fiber.Ctx) error {
	if ac.exporter == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "unavailable",
			"message": "S3 export is not configured",
		})
	}

	payments, err := ac.pay.GetAllWithRelations()
	if err != nil {
		fiberlog.Error(fmt.Sprintf("admin export payments failed: %v", err))
		return respondInternalError(c, "Failed to export payments")
	}

	key, err := ac.exporter.ExportPayments(c.Context(), payments)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("admin export upload failed: %v", err))
		return respondInternalError(c, "Failed to export payments")
	}

	return c.JSON(fiber.Map{"objectKey": key, "rows": len(payments)})
}
