package routes

import (
	"readquest/backend/config"
	"readquest/backend/controllers"
	"readquest/backend/middleware"
	"readquest/backend/services"
	"readquest/backend/utils"
	"readquest/backend/validators"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

func SetupRoutes(app *fiber.App, svc *services.Services, cfg *config.Config, store *session.Store, log *utils.Logger) {
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return utils.Success(c, fiber.StatusOK, fiber.Map{"status": "ok"})
	})

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg, svc.Users, log)
	adminMiddleware := middleware.AdminMiddleware(cfg, store)

	// Auth routes
	authController := controllers.NewAuthController(svc.Users, log)
	app.Get("/api/auth/user", authMiddleware, authController.GetUser)

	// Chapter routes
	chaptersController := controllers.NewChaptersController(svc.Content, log)
	quizzesController := controllers.NewQuizzesController(svc.Quizzes, log)
	chapters := app.Group("/api/chapters", authMiddleware)
	chapters.Get("/", chaptersController.GetChapters)
	chapters.Get("/:id", chaptersController.GetChapter)
	chapters.Post("/:id/progress", validators.Body[validators.ChapterProgressRequest](), chaptersController.UpdateProgress)
	chapters.Get("/:id/quizzes", quizzesController.GetChapterQuizzes)

	// Quiz routes
	quizzes := app.Group("/api/quizzes", authMiddleware)
	quizzes.Get("/:id/questions", quizzesController.GetQuestions)
	quizzes.Post("/:id/attempt", validators.Body[validators.QuizAttemptRequest](), quizzesController.SubmitAttempt)

	// Challenge routes
	challengesController := controllers.NewChallengesController(svc.Challenges, log)
	challenges := app.Group("/api/challenges", authMiddleware)
	challenges.Get("/daily", challengesController.GetDaily)
	challenges.Get("/weekly", challengesController.GetWeekly)
	challenges.Post("/daily/:id/progress", validators.Body[validators.ChallengeProgressRequest](), challengesController.UpdateDailyProgress)
	challenges.Post("/weekly/:id/progress", validators.Body[validators.ChallengeProgressRequest](), challengesController.UpdateWeeklyProgress)

	// Leaderboard routes
	leaderboardController := controllers.NewLeaderboardController(svc.Leaderboard, log)
	app.Get("/api/leaderboard", authMiddleware, leaderboardController.GetGlobal)
	app.Get("/api/leaderboard/friends", authMiddleware, leaderboardController.GetFriends)

	// Badge routes
	badgesController := controllers.NewBadgesController(svc.Badges, log)
	app.Get("/api/badges", authMiddleware, badgesController.GetBadges)

	// User routes
	friendsController := controllers.NewFriendsController(svc.Social, log)
	user := app.Group("/api/user", authMiddleware)
	user.Get("/progress", chaptersController.GetUserProgress)
	user.Get("/quiz-attempts", quizzesController.GetUserAttempts)
	user.Get("/badges", badgesController.GetUserBadges)
	user.Get("/challenges/daily/:id", challengesController.GetUserDaily)
	user.Get("/challenges/weekly/:id", challengesController.GetUserWeekly)
	user.Get("/friends", friendsController.GetFriends)
	user.Post("/friends", validators.Body[validators.AddFriendRequest](), friendsController.AddFriend)
	user.Patch("/friends/:friendId", validators.Body[validators.FriendStatusRequest](), friendsController.SetStatus)

	// Glossary routes (public)
	glossaryController := controllers.NewGlossaryController(svc.Content, log)
	app.Get("/api/glossary", glossaryController.GetTerms)
	app.Get("/api/glossary/:id", glossaryController.GetTerm)

	// Admin auth routes
	adminAuthController := controllers.NewAdminAuthController(svc.Admins, store, log)
	app.Post("/api/admin/login", adminAuthController.Login)
	app.Post("/api/admin/logout", adminAuthController.Logout)
	app.Get("/api/admin/auth", adminAuthController.Status)

	admin := app.Group("/api/admin")

	// Admin routes for chapters
	admin.Post("/chapters", adminMiddleware, validators.Body[validators.ChapterRequest](), chaptersController.CreateChapter)
	admin.Patch("/chapters/:id", adminMiddleware, validators.Body[validators.ChapterPatch](), chaptersController.UpdateChapter)
	admin.Delete("/chapters/:id", adminMiddleware, chaptersController.DeleteChapter)

	// Admin routes for glossary
	admin.Post("/glossary/import", adminMiddleware, glossaryController.ImportTerms)
	admin.Post("/glossary", adminMiddleware, validators.Body[validators.GlossaryTermRequest](), glossaryController.CreateTerm)
	admin.Patch("/glossary/:id", adminMiddleware, validators.Body[validators.GlossaryTermPatch](), glossaryController.UpdateTerm)
	admin.Delete("/glossary/:id", adminMiddleware, glossaryController.DeleteTerm)

	// Admin routes for quizzes
	admin.Get("/quizzes", adminMiddleware, quizzesController.GetAllQuizzes)
	admin.Post("/quizzes", adminMiddleware, validators.Body[validators.QuizRequest](), quizzesController.CreateQuiz)
	admin.Patch("/quizzes/:id", adminMiddleware, validators.Body[validators.QuizPatch](), quizzesController.UpdateQuiz)
	admin.Delete("/quizzes/:id", adminMiddleware, quizzesController.DeleteQuiz)
	admin.Post("/quizzes/:id/questions", adminMiddleware, validators.Body[validators.QuestionRequest](), quizzesController.CreateQuestion)
	admin.Patch("/questions/:id", adminMiddleware, validators.Body[validators.QuestionPatch](), quizzesController.UpdateQuestion)
	admin.Delete("/questions/:id", adminMiddleware, quizzesController.DeleteQuestion)

	// Admin routes for challenges
	admin.Get("/challenges", adminMiddleware, challengesController.GetAllChallenges)
	admin.Post("/challenges/daily", adminMiddleware, validators.Body[validators.DailyChallengeRequest](), challengesController.CreateDaily)
	admin.Post("/challenges/weekly", adminMiddleware, validators.Body[validators.WeeklyChallengeRequest](), challengesController.CreateWeekly)
	admin.Delete("/challenges/daily/:id", adminMiddleware, challengesController.DeleteDaily)
	admin.Delete("/challenges/weekly/:id", adminMiddleware, challengesController.DeleteWeekly)

	// Admin routes for badges
	admin.Post("/badges", adminMiddleware, validators.Body[validators.BadgeRequest](), badgesController.CreateBadge)
	admin.Post("/badges/:id/award", adminMiddleware, validators.Body[validators.AwardBadgeRequest](), badgesController.AwardBadge)
}
