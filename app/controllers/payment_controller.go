package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/civitax/CiviTax/app/models"
	"github.com/civitax/CiviTax/app/repository"
	"github.com/civitax/CiviTax/internal/pkg/payments"
	"github.com/civitax/CiviTax/internal/pkg/usercontext"
)

// PaymentController drives the two-phase payment flow: staging an intent at
// the gateway and recording the client-confirmed charge.
type PaymentController struct {
	profiles repository.TaxProfileRepository
	pay      repository.PaymentRepository
	service  *payments.Service
}

// NewPaymentController creates the controller with its dependencies.
func NewPaymentController(profiles repository.TaxProfileRepository, pay repository.PaymentRepository, service *payments.Service) *PaymentController {
	return &PaymentController{profiles: profiles, pay: pay, service: service}
}

type createPaymentIntentRequest struct {
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	PaymentType string `json:"paymentType" validate:"required,oneof=income_tax property_tax utility_bill"`
}

type recordPaymentRequest struct {
	Amount          int64  `json:"amount" validate:"required,gt=0"`
	PaymentType     string `json:"paymentType" validate:"required,oneof=income_tax property_tax utility_bill"`
	GatewayIntentID string `json:"gatewayIntentId" validate:"required,max=191"`
}

// HandleCreateIntent stages a charge at the gateway and returns the client
// secret the caller confirms with.
func (pc *PaymentController) HandleCreateIntent(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req createPaymentIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return respondValidationError(c, err)
	}

	_, clientSecret, err := pc.service.CreateIntent(c.Context(), userCtx.UserID, req.Amount, req.PaymentType)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("create payment intent for %s failed: %v", userCtx.UserID, err))
		return respondInternalError(c, "Failed to create payment intent")
	}

	return c.JSON(fiber.Map{"clientSecret": clientSecret})
}

// HandleRecord inserts the completed payment row after the client confirmed
// the charge with the gateway. Replays of the same intent are idempotent.
func (pc *PaymentController) HandleRecord(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req recordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return respondValidationError(c, err)
	}

	profile, err := pc.profiles.GetByUserID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondNotFound(c, "Tax profile not found")
		}
		fiberlog.Error(fmt.Sprintf("fetch tax profile for %s failed: %v", userCtx.UserID, err))
		return respondInternalError(c, "Failed to record payment")
	}

	payment, err := pc.service.RecordCompleted(c.Context(), userCtx.UserID, profile.ID, req.Amount, req.PaymentType, req.GatewayIntentID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrUnknownIntent):
			return respondBadRequest(c, "unknown payment intent")
		case errors.Is(err, payments.ErrIntentMismatch):
			return respondBadRequest(c, "payment does not match its intent")
		case errors.Is(err, payments.ErrIntentOwnership):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "forbidden",
				"message": "payment intent belongs to another user",
			})
		}
		fiberlog.Error(fmt.Sprintf("record payment for %s failed: %v", userCtx.UserID, err))
		return respondInternalError(c, "Failed to record payment")
	}

	return c.JSON(payment)
}

// HandleList returns the caller's payment history, oldest first.
func (pc *PaymentController) HandleList(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	list, err := pc.pay.ListByUserID(userID)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("list payments for %s failed: %v", userID, err))
		return respondInternalError(c, "Failed to fetch payments")
	}
	if list == nil {
		list = []models.Payment{}
	}

	return c.JSON(list)
}
