package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/medregistry/clinic-backend/internal/config"
	"github.com/medregistry/clinic-backend/internal/handlers"
	"github.com/medregistry/clinic-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	clientHandler *handlers.ClientHandler,
	programHandler *handlers.ProgramHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit to slow credential stuffing
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)

	// Everything below requires an established session
	api.Post("/auth/logout", middleware.SessionProtected(cfg), authHandler.Logout)
	api.Get("/me", middleware.SessionProtected(cfg), authHandler.Me)

	protected := api.Group("", middleware.SessionProtected(cfg))

	clients := protected.Group("/clients")
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Register)
	clients.Get("/:id", clientHandler.Get)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)
	clients.Put("/:id/programs", clientHandler.SetPrograms)

	programs := protected.Group("/programs")
	programs.Get("/", programHandler.List)
	programs.Post("/", programHandler.Create)
	programs.Get("/:id", programHandler.Get)
	programs.Put("/:id", programHandler.Update)
	programs.Delete("/:id", programHandler.Delete)

	protected.Get("/summary", programHandler.Summary)

	reports := protected.Group("/reports")
	reports.Get("/clients.csv", reportHandler.ClientsCSV)
	reports.Get("/clients.pdf", reportHandler.ClientsPDF)
	reports.Get("/programs.csv", reportHandler.ProgramsCSV)
	reports.Get("/programs.pdf", reportHandler.ProgramsPDF)
	reports.Post("/email", reportHandler.Email)
}
