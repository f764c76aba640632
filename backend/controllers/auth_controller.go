package controllers

import (
	"readquest/backend/middleware"
	"readquest/backend/services"
	"readquest/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Users *services.UserService
	Log   *utils.Logger
}

func NewAuthController(users *services.UserService, log *utils.Logger) *AuthController {
	return &AuthController{Users: users, Log: log.With("controller", "AuthController")}
}

// GetUser godoc
// @Summary Current reader
// @Description Syncs the profile from the token, advances the login streak and returns the reader
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/user [get]
func (ac *AuthController) GetUser(c *fiber.Ctx) error {
	id := middleware.CurrentIdentity(c)
	user, err := ac.Users.Login(c.UserContext(), *id)
	if err != nil {
		return respondError(c, ac.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, user)
}
