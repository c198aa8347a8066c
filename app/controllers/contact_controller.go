package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/civitax/CiviTax/app/models"
	"github.com/civitax/CiviTax/app/repository"
	"github.com/civitax/CiviTax/internal/pkg/usercontext"
)

// ContactController serves the support message endpoints.
type ContactController struct {
	messages repository.ContactMessageRepository
}

// NewContactController creates the controller with its repository dependency.
func NewContactController(messages repository.ContactMessageRepository) *ContactController {
	return &ContactController{messages: messages}
}

type createContactMessageRequest struct {
	Subject string `json:"subject" validate:"required,min=2,max=200"`
	Message string `json:"message" validate:"required,min=2,max=5000"`
}

// HandleCreate stores a support message for the caller.
func (cc *ContactController) HandleCreate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req createContactMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return respondValidationError(c, err)
	}

	message := &models.ContactMessage{
		UserID:  userCtx.UserID,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := cc.messages.Create(message); err != nil {
		fiberlog.Error(fmt.Sprintf("create contact message for %s failed: %v", userCtx.UserID, err))
		return respondInternalError(c, "Failed to send message")
	}

	return c.JSON(message)
}

// HandleList returns the caller's messages, oldest first.
func (cc *ContactController) HandleList(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	messages, err := cc.messages.ListByUserID(userID)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("list contact messages for %s failed: %v", userID, err))
		return respondInternalError(c, "Failed to fetch messages")
	}
	if messages == nil {
		messages = []models.ContactMessage{}
	}

	return c.JSON(messages)
}
