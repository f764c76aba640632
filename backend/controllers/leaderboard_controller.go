package controllers

import (
	"readquest/backend/middleware"
	"readquest/backend/services"
	"readquest/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type LeaderboardController struct {
	Leaderboard *services.LeaderboardService
	Log         *utils.Logger
}

func NewLeaderboardController(leaderboard *services.LeaderboardService, log *utils.Logger) *LeaderboardController {
	return &LeaderboardController{Leaderboard: leaderboard, Log: log.With("controller", "LeaderboardController")}
}

// GetGlobal godoc
// @Summary Global leaderboard
// @Description Readers ranked by XP. Ties are broken by user id.
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Entries to return (default 10, max 100)"
// @Success 200 {object} utils.SuccessResponse
// @Router /leaderboard [get]
func (lc *LeaderboardController) GetGlobal(c *fiber.Ctx) error {
	entries, err := lc.Leaderboard.Global(c.UserContext(), services.ParseLimit(c.Query("limit")))
	if err != nil {
		return respondError(c, lc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, entries)
}

// GetFriends godoc
// @Summary Friends leaderboard
// @Description The reader and their accepted friends ranked by XP
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Entries to return (default 10, max 100)"
// @Success 200 {object} utils.SuccessResponse
// @Router /leaderboard/friends [get]
func (lc *LeaderboardController) GetFriends(c *fiber.Ctx) error {
	entries, err := lc.Leaderboard.Friends(c.UserContext(), middleware.CurrentUserID(c), services.ParseLimit(c.Query("limit")))
	if err != nil {
		return respondError(c, lc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, entries)
}
