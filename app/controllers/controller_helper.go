package controllers

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

// newValidator builds the shared validator with json tag names so field
// errors reference the wire names clients actually sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldError is a single field-level validation failure.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func validationErrorList(err error) []fieldError {
	var list []fieldError
	var verrs validator.ValidationErrors
	if ok := castValidationErrors(err, &verrs); !ok {
		return []fieldError{{Field: "", Message: err.Error()}}
	}
	for _, fe := range verrs {
		list = append(list, fieldError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
	}
	return list
}

func castValidationErrors(err error, out *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*out = verrs
	}
	return ok
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}

// respondValidationError returns the standard 400 envelope with a
// field-level error list.
func respondValidationError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "invalid_input",
		"message": "Invalid input data",
		"errors":  validationErrorList(err),
	})
}

func respondBadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "bad_request",
		"message": message,
	})
}

func respondNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":   "not_found",
		"message": message,
	})
}

func respondInternalError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "internal_server_error",
		"message": message,
	})
}
