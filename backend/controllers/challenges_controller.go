package controllers

import (
	"context"

	"readquest/backend/middleware"
	"readquest/backend/models"
	"readquest/backend/services"
	"readquest/backend/utils"
	"readquest/backend/validators"

	"github.com/gofiber/fiber/v2"
)

type ChallengesController struct {
	Challenges *services.ChallengeService
	Log        *utils.Logger
}

func NewChallengesController(challenges *services.ChallengeService, log *utils.Logger) *ChallengesController {
	return &ChallengesController{Challenges: challenges, Log: log.With("controller", "ChallengesController")}
}

// GetDaily godoc
// @Summary Today's daily challenge
// @Description Returns the active challenge for the current calendar day, or null
// @Tags challenges
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /challenges/daily [get]
func (cc *ChallengesController) GetDaily(c *fiber.Ctx) error {
	ch, err := cc.Challenges.TodaysDaily(c.UserContext())
	if err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, ch)
}

// GetWeekly godoc
// @Summary Current weekly challenge
// @Tags challenges
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /challenges/weekly [get]
func (cc *ChallengesController) GetWeekly(c *fiber.Ctx) error {
	ch, err := cc.Challenges.CurrentWeekly(c.UserContext())
	if err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, ch)
}

func (cc *ChallengesController) GetUserDaily(c *fiber.Ctx) error {
	return cc.userProgress(c, cc.Challenges.DailyProgress)
}

func (cc *ChallengesController) GetUserWeekly(c *fiber.Ctx) error {
	return cc.userProgress(c, cc.Challenges.WeeklyProgress)
}

// UpdateDailyProgress godoc
// @Summary Report daily challenge progress
// @Description Stores the reported progress; reaching 100 completes the challenge and pays its reward once
// @Tags challenges
// @Accept json
// @Produce json
// @Param id path int true "Challenge ID"
// @Param input body validators.ChallengeProgressRequest true "Progress"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /challenges/daily/{id}/progress [post]
func (cc *ChallengesController) UpdateDailyProgress(c *fiber.Ctx) error {
	return cc.updateProgress(c, cc.Challenges.UpdateDailyProgress)
}

// UpdateWeeklyProgress godoc
// @Summary Report weekly challenge progress
// @Tags challenges
// @Accept json
// @Produce json
// @Param id path int true "Challenge ID"
// @Param input body validators.ChallengeProgressRequest true "Progress"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /challenges/weekly/{id}/progress [post]
func (cc *ChallengesController) UpdateWeeklyProgress(c *fiber.Ctx) error {
	return cc.updateProgress(c, cc.Challenges.UpdateWeeklyProgress)
}

type progressReader func(ctx context.Context, userID string, challengeID uint) (*models.ChallengeProgress, error)

type progressWriter func(ctx context.Context, userID string, challengeID uint, progress int) (*models.ChallengeProgress, error)

func (cc *ChallengesController) userProgress(c *fiber.Ctx, read progressReader) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid challenge ID")
	}
	row, err := read(c.UserContext(), middleware.CurrentUserID(c), id)
	if err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, row)
}

func (cc *ChallengesController) updateProgress(c *fiber.Ctx, write progressWriter) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid challenge ID")
	}
	req := validators.From[validators.ChallengeProgressRequest](c)
	row, err := write(c.UserContext(), middleware.CurrentUserID(c), id, *req.Progress)
	if err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, row)
}

// GetAllChallenges godoc
// @Summary List challenges
// @Tags admin
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /admin/challenges [get]
func (cc *ChallengesController) GetAllChallenges(c *fiber.Ctx) error {
	daily, weekly, err := cc.Challenges.List(c.UserContext())
	if err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"daily": daily, "weekly": weekly})
}

func (cc *ChallengesController) CreateDaily(c *fiber.Ctx) error {
	ch := validators.From[validators.DailyChallengeRequest](c).Model()
	if err := cc.Challenges.CreateDaily(c.UserContext(), ch); err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.Created(c, ch)
}

func (cc *ChallengesController) CreateWeekly(c *fiber.Ctx) error {
	ch := validators.From[validators.WeeklyChallengeRequest](c).Model()
	if err := cc.Challenges.CreateWeekly(c.UserContext(), ch); err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.Created(c, ch)
}

func (cc *ChallengesController) DeleteDaily(c *fiber.Ctx) error {
	return cc.deleteChallenge(c, cc.Challenges.DeleteDaily)
}

func (cc *ChallengesController) DeleteWeekly(c *fiber.Ctx) error {
	return cc.deleteChallenge(c, cc.Challenges.DeleteWeekly)
}

func (cc *ChallengesController) deleteChallenge(c *fiber.Ctx, del func(context.Context, uint) error) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid challenge ID")
	}
	if err := del(c.UserContext(), id); err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.NoContent(c)
}
