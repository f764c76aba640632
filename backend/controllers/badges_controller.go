package controllers

import (
	"readquest/backend/middleware"
	"readquest/backend/services"
	"readquest/backend/utils"
	"readquest/backend/validators"

	"github.com/gofiber/fiber/v2"
)

type BadgesController struct {
	Badges *services.BadgeService
	Log    *utils.Logger
}

func NewBadgesController(badges *services.BadgeService, log *utils.Logger) *BadgesController {
	return &BadgesController{Badges: badges, Log: log.With("controller", "BadgesController")}
}

func (bc *BadgesController) GetBadges(c *fiber.Ctx) error {
	badges, err := bc.Badges.List(c.UserContext())
	if err != nil {
		return respondError(c, bc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, badges)
}

func (bc *BadgesController) GetUserBadges(c *fiber.Ctx) error {
	badges, err := bc.Badges.ForUser(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, bc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, badges)
}

// CreateBadge godoc
// @Summary Create badge
// @Tags admin
// @Accept json
// @Produce json
// @Param input body validators.BadgeRequest true "Badge"
// @Success 201 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /admin/badges [post]
func (bc *BadgesController) CreateBadge(c *fiber.Ctx) error {
	badge := validators.From[validators.BadgeRequest](c).Model()
	if err := bc.Badges.Create(c.UserContext(), badge); err != nil {
		return respondError(c, bc.Log, err)
	}
	return utils.Created(c, badge)
}

// AwardBadge godoc
// @Summary Award badge to a reader
// @Description Grants the badge once; a repeated award reports awarded=false
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Badge ID"
// @Param input body validators.AwardBadgeRequest true "Reader"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /admin/badges/{id}/award [post]
func (bc *BadgesController) AwardBadge(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid badge ID")
	}
	req := validators.From[validators.AwardBadgeRequest](c)
	awarded, err := bc.Badges.AwardBadge(c.UserContext(), req.UserID, id)
	if err != nil {
		return respondError(c, bc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"awarded": awarded})
}
