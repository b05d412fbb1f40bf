package presenter

import "github.com/gofiber/fiber/v2"

type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// ValidationError carries the offending fields alongside the message so the
// admin panel and the meeting form can highlight them inline.
type ValidationErrorResponse struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func Validation(c *fiber.Ctx, message string, fields []string) error {
	return JSON(c, fiber.StatusUnprocessableEntity, ValidationErrorResponse{Message: message, Fields: fields})
}
