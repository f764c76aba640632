package controllers

import (
	"strings"

	"readquest/backend/middleware"
	"readquest/backend/services"
	"readquest/backend/utils"
	"readquest/backend/validators"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

type AdminAuthController struct {
	Admins *services.AdminService
	Store  *session.Store
	Log    *utils.Logger
}

func NewAdminAuthController(admins *services.AdminService, store *session.Store, log *utils.Logger) *AdminAuthController {
	return &AdminAuthController{Admins: admins, Store: store, Log: log.With("controller", "AdminAuthController")}
}

// Login godoc
// @Summary Admin login
// @Description Checks the credentials and starts an admin session cookie
// @Tags admin
// @Accept json
// @Produce json
// @Param input body validators.AdminLoginRequest true "Credentials"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /admin/login [post]
func (ac *AdminAuthController) Login(c *fiber.Ctx) error {
	var input validators.AdminLoginRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(input.Username) == "" || input.Password == "" {
		return utils.BadRequest(c, "Username and password are required")
	}

	admin, err := ac.Admins.Authenticate(c.UserContext(), input.Username, input.Password)
	if err != nil {
		ac.Log.Warn("admin login rejected", "username", input.Username, "ip", c.IP())
		return respondError(c, ac.Log, err)
	}

	if err := middleware.StartAdminSession(c, ac.Store, middleware.AdminSession{ID: admin.ID, Username: admin.Username}); err != nil {
		return respondError(c, ac.Log, err)
	}
	ac.Log.Info("admin logged in", "username", admin.Username)
	return utils.Message(c, "Login successful", fiber.Map{
		"admin": fiber.Map{"username": admin.Username},
	})
}

func (ac *AdminAuthController) Logout(c *fiber.Ctx) error {
	if err := middleware.EndAdminSession(c, ac.Store); err != nil {
		return respondError(c, ac.Log, err)
	}
	return utils.Message(c, "Logout successful", nil)
}

// Status godoc
// @Summary Admin session status
// @Tags admin
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /admin/auth [get]
func (ac *AdminAuthController) Status(c *fiber.Ctx) error {
	admin, err := middleware.LoadAdminSession(c, ac.Store)
	if err != nil {
		return respondError(c, ac.Log, err)
	}
	if admin == nil {
		return utils.Success(c, fiber.StatusOK, fiber.Map{"isAuthenticated": false})
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"isAuthenticated": true,
		"admin":           fiber.Map{"username": admin.Username},
	})
}
