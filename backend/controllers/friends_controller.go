package controllers

import (
	"readquest/backend/middleware"
	"readquest/backend/services"
	"readquest/backend/utils"
	"readquest/backend/validators"

	"github.com/gofiber/fiber/v2"
)

type FriendsController struct {
	Social *services.SocialService
	Log    *utils.Logger
}

func NewFriendsController(social *services.SocialService, log *utils.Logger) *FriendsController {
	return &FriendsController{Social: social, Log: log.With("controller", "FriendsController")}
}

func (fc *FriendsController) GetFriends(c *fiber.Ctx) error {
	friends, err := fc.Social.Friends(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, fc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, friends)
}

// AddFriend godoc
// @Summary Add friend
// @Tags friends
// @Accept json
// @Produce json
// @Param input body validators.AddFriendRequest true "Friend"
// @Success 201 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /user/friends [post]
func (fc *FriendsController) AddFriend(c *fiber.Ctx) error {
	req := validators.From[validators.AddFriendRequest](c)
	edge, err := fc.Social.AddFriend(c.UserContext(), middleware.CurrentUserID(c), req.FriendID)
	if err != nil {
		return respondError(c, fc.Log, err)
	}
	return utils.Created(c, edge)
}

func (fc *FriendsController) SetStatus(c *fiber.Ctx) error {
	req := validators.From[validators.FriendStatusRequest](c)
	if err := fc.Social.SetStatus(c.UserContext(), middleware.CurrentUserID(c), c.Params("friendId"), req.Status); err != nil {
		return respondError(c, fc.Log, err)
	}
	return utils.Message(c, "Friendship updated", fiber.Map{"friendId": c.Params("friendId"), "status": req.Status})
}
