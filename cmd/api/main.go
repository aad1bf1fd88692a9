package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"notice-board/internal/config"
	"notice-board/internal/handler"
	"notice-board/internal/middleware"
	"notice-board/internal/queue"
	"notice-board/internal/repository"
	"notice-board/internal/service"
	"notice-board/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	producer, err := queue.NewProducer(cfg)
	if err != nil {
		log.Fatalf("Failed to create fan-out producer: %v", err)
	}
	defer producer.Close()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, producer, cfg)
	handlers := handler.NewHandlers(services)

	worker, err := queue.NewWorker(cfg, services.Notification)
	if err != nil {
		log.Fatalf("Failed to create fan-out worker: %v", err)
	}
	if err := worker.Start(); err != nil {
		log.Fatalf("Failed to start fan-out worker: %v", err)
	}
	defer worker.Shutdown()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)

	protected := api.Group("", middleware.AuthRequired(authService))

	notices := protected.Group("/notices")
	notices.Get("/", h.Notice.List)
	notices.Post("/", middleware.RequireRole("moderator"), h.Notice.Create)
	notices.Get("/:id", h.Notice.Get)
	notices.Put("/:id", h.Notice.Update)
	notices.Patch("/:id/status", middleware.RequireRole("admin"), h.Notice.UpdateStatus)
	notices.Delete("/:id", h.Notice.Delete)
	notices.Post("/:id/interest", h.Notice.ToggleInterest)
	notices.Post("/:id/remind", h.Notice.ToggleReminder)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Patch("/read-all", h.Notification.MarkAllAsRead)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
}
