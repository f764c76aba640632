package middleware

import (
	"errors"

	"readquest/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler writes errors that escape the handlers (unknown routes,
// recovered panics, body limits) in the usual error envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		code = ferr.Code
	}
	if code == fiber.StatusInternalServerError {
		return utils.InternalServerError(c, "Internal server error")
	}
	return utils.Error(c, code, err)
}
