package controllers

import (
	"readquest/backend/middleware"
	"readquest/backend/services"
	"readquest/backend/utils"
	"readquest/backend/validators"

	"github.com/gofiber/fiber/v2"
)

type ChaptersController struct {
	Content *services.ContentService
	Log     *utils.Logger
}

func NewChaptersController(content *services.ContentService, log *utils.Logger) *ChaptersController {
	return &ChaptersController{Content: content, Log: log.With("controller", "ChaptersController")}
}

// GetChapters godoc
// @Summary List chapters
// @Description Returns every chapter ordered by number
// @Tags chapters
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /chapters [get]
func (cc *ChaptersController) GetChapters(c *fiber.Ctx) error {
	chapters, err := cc.Content.ListChapters(c.UserContext())
	if err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, chapters)
}

// GetChapter godoc
// @Summary Get chapter
// @Tags chapters
// @Produce json
// @Param id path int true "Chapter ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /chapters/{id} [get]
func (cc *ChaptersController) GetChapter(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid chapter ID")
	}
	chapter, err := cc.Content.GetChapter(c.UserContext(), id)
	if err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, chapter)
}

func (cc *ChaptersController) GetUserProgress(c *fiber.Ctx) error {
	rows, err := cc.Content.UserProgress(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, rows)
}

// UpdateProgress godoc
// @Summary Update reading progress
// @Tags chapters
// @Accept json
// @Produce json
// @Param id path int true "Chapter ID"
// @Param input body validators.ChapterProgressRequest true "Progress"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /chapters/{id}/progress [post]
func (cc *ChaptersController) UpdateProgress(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid chapter ID")
	}
	req := validators.From[validators.ChapterProgressRequest](c)
	row, err := cc.Content.UpdateChapterProgress(c.UserContext(), middleware.CurrentUserID(c), id, req.Update())
	if err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, row)
}

// CreateChapter godoc
// @Summary Create chapter
// @Tags admin
// @Accept json
// @Produce json
// @Param input body validators.ChapterRequest true "Chapter"
// @Success 201 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /admin/chapters [post]
func (cc *ChaptersController) CreateChapter(c *fiber.Ctx) error {
	chapter := validators.From[validators.ChapterRequest](c).Model()
	if err := cc.Content.CreateChapter(c.UserContext(), chapter); err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.Created(c, chapter)
}

func (cc *ChaptersController) UpdateChapter(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid chapter ID")
	}
	patch := validators.From[validators.ChapterPatch](c)
	chapter, err := cc.Content.UpdateChapter(c.UserContext(), id, patch.Fields())
	if err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, chapter)
}

// DeleteChapter godoc
// @Summary Delete chapter
// @Description Removes the chapter with its quizzes, questions and reading progress
// @Tags admin
// @Param id path int true "Chapter ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /admin/chapters/{id} [delete]
func (cc *ChaptersController) DeleteChapter(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid chapter ID")
	}
	if err := cc.Content.DeleteChapter(c.UserContext(), id); err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.NoContent(c)
}
