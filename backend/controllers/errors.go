package controllers

import (
	"errors"
	"strconv"

	"readquest/backend/models"
	"readquest/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{models.ErrUserNotFound, fiber.StatusNotFound},
	{models.ErrChapterNotFound, fiber.StatusNotFound},
	{models.ErrQuizNotFound, fiber.StatusNotFound},
	{models.ErrQuestionNotFound, fiber.StatusNotFound},
	{models.ErrBadgeNotFound, fiber.StatusNotFound},
	{models.ErrTermNotFound, fiber.StatusNotFound},
	{models.ErrChallengeNotFound, fiber.StatusNotFound},
	{models.ErrFriendNotFound, fiber.StatusNotFound},
	{models.ErrDuplicateChapterNumber, fiber.StatusConflict},
	{models.ErrDuplicateAdmin, fiber.StatusConflict},
	{models.ErrInvalidXPAmount, fiber.StatusUnprocessableEntity},
	{models.ErrInvalidProgress, fiber.StatusUnprocessableEntity},
	{models.ErrQuizHasNoQuestions, fiber.StatusUnprocessableEntity},
	{models.ErrInvalidAttempt, fiber.StatusUnprocessableEntity},
	{models.ErrSelfFriendship, fiber.StatusUnprocessableEntity},
	{models.ErrInvalidStatus, fiber.StatusUnprocessableEntity},
	{models.ErrInvalidCredentials, fiber.StatusUnauthorized},
}

// respondError maps domain errors to their HTTP status. Anything unknown is
// logged and answered with a generic 500.
func respondError(c *fiber.Ctx, log *utils.Logger, err error) error {
	for _, m := range errorStatus {
		if !errors.Is(err, m.err) {
			continue
		}
		if m.status == fiber.StatusNotFound || m.status == fiber.StatusConflict {
			return utils.Error(c, m.status, m.err)
		}
		return utils.Error(c, m.status, err)
	}
	log.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.Locals(requestid.ConfigDefault.ContextKey),
		"error", err,
	)
	return utils.InternalServerError(c, "Internal server error")
}

// paramID reads a positive numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
