package controllers

import (
	"errors"

	"readquest/backend/importer"
	"readquest/backend/services"
	"readquest/backend/utils"
	"readquest/backend/validators"

	"github.com/gofiber/fiber/v2"
)

type GlossaryController struct {
	Content  *services.ContentService
	Importer *importer.Importer
	Log      *utils.Logger
}

func NewGlossaryController(content *services.ContentService, log *utils.Logger) *GlossaryController {
	return &GlossaryController{
		Content:  content,
		Importer: importer.New(content, importer.DefaultImportConfig(), log),
		Log:      log.With("controller", "GlossaryController"),
	}
}

// GetTerms godoc
// @Summary List glossary terms
// @Tags glossary
// @Produce json
// @Param category query string false "Only terms of this category"
// @Success 200 {object} utils.SuccessResponse
// @Router /glossary [get]
func (gc *GlossaryController) GetTerms(c *fiber.Ctx) error {
	terms, err := gc.Content.ListTerms(c.UserContext(), c.Query("category"))
	if err != nil {
		return respondError(c, gc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, terms)
}

func (gc *GlossaryController) GetTerm(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid term ID")
	}
	term, err := gc.Content.GetTerm(c.UserContext(), id)
	if err != nil {
		return respondError(c, gc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, term)
}

func (gc *GlossaryController) CreateTerm(c *fiber.Ctx) error {
	term := validators.From[validators.GlossaryTermRequest](c).Model()
	if err := gc.Content.CreateTerm(c.UserContext(), term); err != nil {
		return respondError(c, gc.Log, err)
	}
	return utils.Created(c, term)
}

func (gc *GlossaryController) UpdateTerm(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid term ID")
	}
	term, err := gc.Content.UpdateTerm(c.UserContext(), id, validators.From[validators.GlossaryTermPatch](c).Fields())
	if err != nil {
		return respondError(c, gc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, term)
}

func (gc *GlossaryController) DeleteTerm(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid term ID")
	}
	if err := gc.Content.DeleteTerm(c.UserContext(), id); err != nil {
		return respondError(c, gc.Log, err)
	}
	return utils.NoContent(c)
}

// ImportTerms godoc
// @Summary Import glossary
// @Description Upserts terms from an .xlsx or .csv upload (columns: term, definition, category, example, chapter)
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /admin/glossary/import [post]
func (gc *GlossaryController) ImportTerms(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return utils.BadRequest(c, "Unable to read uploaded file")
	}
	defer f.Close()

	result, err := gc.Importer.Import(c.UserContext(), fh.Filename, f)
	if errors.Is(err, importer.ErrUnsupportedFormat) || errors.Is(err, importer.ErrUnreadableFile) {
		return utils.BadRequest(c, err.Error())
	}
	if err != nil {
		return respondError(c, gc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, result)
}
