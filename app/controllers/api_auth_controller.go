package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/civitax/CiviTax/app/repository"
	"github.com/civitax/CiviTax/internal/pkg/usercontext"
)

// AuthAPIController serves the current-user endpoint.
type AuthAPIController struct {
	users repository.UserRepository
}

// NewAuthAPIController creates the controller with its repository dependency.
func NewAuthAPIController(users repository.UserRepository) *AuthAPIController {
	return &AuthAPIController{users: users}
}

// HandleGetCurrentUser returns the authenticated user's row.
func (ac *AuthAPIController) HandleGetCurrentUser(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	user, err := ac.users.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondNotFound(c, "User not found")
		}
		fiberlog.Error(fmt.Sprintf("fetch user %s failed: %v", userCtx.UserID, err))
		return respondInternalError(c, "Failed to fetch user")
	}

	return c.JSON(user)
}
