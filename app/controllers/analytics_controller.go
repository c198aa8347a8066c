package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/civitax/CiviTax/app/models"
	"github.com/civitax/CiviTax/app/repository"
	"github.com/civitax/CiviTax/internal/pkg/usercontext"
)

// AnalyticsController aggregates the caller's obligations and payments for
// the dashboard charts.
type AnalyticsController struct {
	profiles repository.TaxProfileRepository
	pay      repository.PaymentRepository
}

// NewAnalyticsController creates the controller with its repository dependencies.
func NewAnalyticsController(profiles repository.TaxProfileRepository, pay repository.PaymentRepository) *AnalyticsController {
	return &AnalyticsController{profiles: profiles, pay: pay}
}

// HandleGet returns the caller's totals, breakdown and payment history.
// Only completed payments count toward totalPaid.
func (ac *AnalyticsController) HandleGet(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	profile, err := ac.profiles.GetByUserID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondNotFound(c, "Tax profile not found")
		}
		fiberlog.Error(fmt.Sprintf("fetch tax profile for %s failed: %v", userCtx.UserID, err))
		return respondInternalError(c, "Failed to fetch analytics")
	}

	history, err := ac.pay.ListByUserID(userCtx.UserID)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("list payments for %s failed: %v", userCtx.UserID, err))
		return respondInternalError(c, "Failed to fetch analytics")
	}
	if history == nil {
		history = []models.Payment{}
	}

	var totalPaid int64
	for _, p := range history {
		if p.Status == models.PaymentStatusCompleted {
			totalPaid += p.Amount
		}
	}

	return c.JSON(fiber.Map{
		"totalTaxOwed":     profile.TotalTaxOwed(),
		"totalPaid":        totalPaid,
		"monthlyUtilities": profile.MonthlyUtilities(),
		"taxBreakdown": fiber.Map{
			"incomeTax":   profile.IncomeTaxDue,
			"propertyTax": profile.PropertyTax,
			"utilities":   profile.MonthlyUtilities() * 12,
		},
		"paymentHistory": history,
	})
}
