package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/civitax/CiviTax/app/models"
	"github.com/civitax/CiviTax/app/repository"
	"github.com/civitax/CiviTax/internal/pkg/statistics"
	"github.com/civitax/CiviTax/internal/pkg/taxcalc"
	"github.com/civitax/CiviTax/internal/pkg/usercontext"
)

// TaxProfileController serves the tax profile CRUD endpoints. Derived fields
// are always computed server-side; client-supplied values for them are
// ignored.
type TaxProfileController struct {
	profiles repository.TaxProfileRepository
}

// NewTaxProfileController creates the controller with its repository dependency.
func NewTaxProfileController(profiles repository.TaxProfileRepository) *TaxProfileController {
	return &TaxProfileController{profiles: profiles}
}

type createTaxProfileRequest struct {
	FullName        string `json:"fullName" validate:"required,min=2,max=150"`
	NIN             string `json:"nin" validate:"required,min=4,max=30"`
	PropertyID      string `json:"propertyId" validate:"required,max=50"`
	PropertyAddress string `json:"propertyAddress" validate:"required,max=255"`
	PropertyValue   *int64 `json:"propertyValue" validate:"required,gte=0"`
	Income          *int64 `json:"income" validate:"required,gte=0"`
	ElectricBill    *int64 `json:"electricBill" validate:"required,gte=0"`
	GasBill         *int64 `json:"gasBill" validate:"required,gte=0"`
}

// updateTaxProfileRequest is the partial-update body. Pointer fields
// distinguish "absent" from zero values, so setting income to 0 still
// triggers recomputation.
type updateTaxProfileRequest struct {
	FullName        *string `json:"fullName" validate:"omitempty,min=2,max=150"`
	NIN             *string `json:"nin" validate:"omitempty,min=4,max=30"`
	PropertyID      *string `json:"propertyId" validate:"omitempty,max=50"`
	PropertyAddress *string `json:"propertyAddress" validate:"omitempty,max=255"`
	PropertyValue   *int64  `json:"propertyValue" validate:"omitempty,gte=0"`
	Income          *int64  `json:"income" validate:"omitempty,gte=0"`
	ElectricBill    *int64  `json:"electricBill" validate:"omitempty,gte=0"`
	GasBill         *int64  `json:"gasBill" validate:"omitempty,gte=0"`
}

// HandleGet returns the caller's profile, 404 if none exists.
func (tc *TaxProfileController) HandleGet(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	profile, err := tc.profiles.GetByUserID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondNotFound(c, "Tax profile not found")
		}
		fiberlog.Error(fmt.Sprintf("fetch tax profile for %s failed: %v", userCtx.UserID, err))
		return respondInternalError(c, "Failed to fetch tax profile")
	}

	return c.JSON(profile)
}

// HandleCreate registers the caller's profile and computes the derived
// fields and the fixed due date.
func (tc *TaxProfileController) HandleCreate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req createTaxProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return respondValidationError(c, err)
	}

	profile := &models.TaxProfile{
		UserID:          userCtx.UserID,
		FullName:        req.FullName,
		NIN:             req.NIN,
		PropertyID:      req.PropertyID,
		PropertyAddress: req.PropertyAddress,
		PropertyValue:   *req.PropertyValue,
		PropertyTax:     taxcalc.PropertyTax(*req.PropertyValue),
		Income:          *req.Income,
		IncomeTaxDue:    taxcalc.IncomeTaxDue(*req.Income),
		ElectricBill:    *req.ElectricBill,
		GasBill:         *req.GasBill,
		DueDate:         taxcalc.DueDate(),
	}

	if err := tc.profiles.Create(profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":   "conflict",
				"message": "Tax profile already exists",
			})
		}
		fiberlog.Error(fmt.Sprintf("create tax profile for %s failed: %v", userCtx.UserID, err))
		return respondInternalError(c, "Failed to create tax profile")
	}

	statistics.InvalidateProfileCount()

	return c.JSON(profile)
}

// HandleUpdate applies a partial update and recomputes only the derived
// fields whose inputs changed.
func (tc *TaxProfileController) HandleUpdate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req updateTaxProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return respondValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.NIN != nil {
		updates["nin"] = *req.NIN
	}
	if req.PropertyID != nil {
		updates["property_id"] = *req.PropertyID
	}
	if req.PropertyAddress != nil {
		updates["property_address"] = *req.PropertyAddress
	}
	if req.PropertyValue != nil {
		updates["property_value"] = *req.PropertyValue
		updates["property_tax"] = taxcalc.PropertyTax(*req.PropertyValue)
	}
	if req.Income != nil {
		updates["income"] = *req.Income
		updates["income_tax_due"] = taxcalc.IncomeTaxDue(*req.Income)
	}
	if req.ElectricBill != nil {
		updates["electric_bill"] = *req.ElectricBill
	}
	if req.GasBill != nil {
		updates["gas_bill"] = *req.GasBill
	}
	if len(updates) == 0 {
		return respondBadRequest(c, "no fields to update")
	}

	profile, err := tc.profiles.Update(userCtx.UserID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondNotFound(c, "Tax profile not found")
		}
		fiberlog.Error(fmt.Sprintf("update tax profile for %s failed: %v", userCtx.UserID, err))
		return respondInternalError(c, "Failed to update tax profile")
	}

	return c.JSON(profile)
}
