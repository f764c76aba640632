package controllers

import (
	"readquest/backend/middleware"
	"readquest/backend/services"
	"readquest/backend/utils"
	"readquest/backend/validators"

	"github.com/gofiber/fiber/v2"
)

type QuizzesController struct {
	Quizzes *services.QuizService
	Log     *utils.Logger
}

func NewQuizzesController(quizzes *services.QuizService, log *utils.Logger) *QuizzesController {
	return &QuizzesController{Quizzes: quizzes, Log: log.With("controller", "QuizzesController")}
}

func (qc *QuizzesController) GetChapterQuizzes(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid chapter ID")
	}
	quizzes, err := qc.Quizzes.ListByChapter(c.UserContext(), id)
	if err != nil {
		return respondError(c, qc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, quizzes)
}

func (qc *QuizzesController) GetQuestions(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid quiz ID")
	}
	questions, err := qc.Quizzes.Questions(c.UserContext(), id)
	if err != nil {
		return respondError(c, qc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, questions)
}

// SubmitAttempt godoc
// @Summary Submit a quiz attempt
// @Description Grades the answers (or records a client-computed score) and credits the earned XP
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path int true "Quiz ID"
// @Param input body validators.QuizAttemptRequest true "Attempt"
// @Success 201 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /quizzes/{id}/attempt [post]
func (qc *QuizzesController) SubmitAttempt(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid quiz ID")
	}
	req := validators.From[validators.QuizAttemptRequest](c)
	res, err := qc.Quizzes.SubmitAttempt(c.UserContext(), middleware.CurrentUserID(c), id, req.Submission())
	if err != nil {
		return respondError(c, qc.Log, err)
	}
	return utils.Created(c, res)
}

func (qc *QuizzesController) GetUserAttempts(c *fiber.Ctx) error {
	attempts, err := qc.Quizzes.Attempts(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, qc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, attempts)
}

func (qc *QuizzesController) GetAllQuizzes(c *fiber.Ctx) error {
	quizzes, err := qc.Quizzes.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, qc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, quizzes)
}

// CreateQuiz godoc
// @Summary Create quiz
// @Tags admin
// @Accept json
// @Produce json
// @Param input body validators.QuizRequest true "Quiz"
// @Success 201 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /admin/quizzes [post]
func (qc *QuizzesController) CreateQuiz(c *fiber.Ctx) error {
	quiz := validators.From[validators.QuizRequest](c).Model()
	if err := qc.Quizzes.Create(c.UserContext(), quiz); err != nil {
		return respondError(c, qc.Log, err)
	}
	return utils.Created(c, quiz)
}

func (qc *QuizzesController) UpdateQuiz(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid quiz ID")
	}
	quiz, err := qc.Quizzes.Update(c.UserContext(), id, validators.From[validators.QuizPatch](c).Fields())
	if err != nil {
		return respondError(c, qc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, quiz)
}

func (qc *QuizzesController) DeleteQuiz(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid quiz ID")
	}
	if err := qc.Quizzes.Delete(c.UserContext(), id); err != nil {
		return respondError(c, qc.Log, err)
	}
	return utils.NoContent(c)
}

// CreateQuestion godoc
// @Summary Add question to quiz
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Quiz ID"
// @Param input body validators.QuestionRequest true "Question"
// @Success 201 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /admin/quizzes/{id}/questions [post]
func (qc *QuizzesController) CreateQuestion(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid quiz ID")
	}
	question := validators.From[validators.QuestionRequest](c).Model(id)
	if err := qc.Quizzes.CreateQuestion(c.UserContext(), question); err != nil {
		return respondError(c, qc.Log, err)
	}
	return utils.Created(c, question)
}

func (qc *QuizzesController) UpdateQuestion(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid question ID")
	}
	question, err := qc.Quizzes.UpdateQuestion(c.UserContext(), id, validators.From[validators.QuestionPatch](c).Fields())
	if err != nil {
		return respondError(c, qc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, question)
}

func (qc *QuizzesController) DeleteQuestion(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid question ID")
	}
	if err := qc.Quizzes.DeleteQuestion(c.UserContext(), id); err != nil {
		return respondError(c, qc.Log, err)
	}
	return utils.NoContent(c)
}
