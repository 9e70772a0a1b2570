package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"studybuddy/backend/config"
	"studybuddy/backend/gamification"
	"studybuddy/backend/middleware"
	"studybuddy/backend/routes"
	"studybuddy/backend/scheduler"
	"studybuddy/backend/storage"
	"studybuddy/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Progression engine over the GORM store
	store := storage.NewGormStore(db)
	service := gamification.NewService(store, logger)

	// Daily maintenance (streak expiry sweep)
	sched := scheduler.New(service, logger)
	sched.Start()
	defer sched.Stop()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, store, service, cfg, logger)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
