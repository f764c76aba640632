package routes

import (
	"strings"

	"readquest/backend/config"
	"readquest/backend/middleware"
	"readquest/backend/services"
	"readquest/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// NewApp builds the HTTP application with its middleware chain and routes.
func NewApp(svc *services.Services, cfg *config.Config, store *session.Store, log *utils.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "readquest",
		ErrorHandler: middleware.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	app.Use(middleware.LoggingMiddleware(log))

	SetupRoutes(app, svc, cfg, store, log)
	return app
}

func corsConfig(origins string) cors.Config {
	c := cors.Config{
		AllowOrigins: strings.TrimSpace(origins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PATCH,PUT,DELETE,OPTIONS",
	}
	if c.AllowOrigins == "" {
		c.AllowOrigins = "*"
	}
	// the admin session cookie needs credentialed requests, which cors forbids with "*"
	c.AllowCredentials = c.AllowOrigins != "*"
	return c
}
