package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"studybuddy/backend/config"
	"studybuddy/backend/controllers"
	"studybuddy/backend/gamification"
	"studybuddy/backend/middleware"
)

func SetupRoutes(app *fiber.App, store gamification.Store, service *gamification.Service, cfg *config.Config, logger *log.Logger) {
	authMiddleware := middleware.AuthMiddleware(cfg)

	// Activity trigger routes
	activityController := controllers.NewActivityController(service, cfg, logger)
	activity := app.Group("/api/activity", authMiddleware)
	activity.Post("/document", activityController.DocumentUploaded)
	activity.Post("/flashcards", activityController.FlashcardsGenerated)
	activity.Post("/quiz", activityController.QuizGenerated)
	activity.Post("/quiz/submit", activityController.QuizSubmitted)

	// Achievement routes
	achievementsController := controllers.NewAchievementsController(service, cfg)
	achievements := app.Group("/api/achievements", authMiddleware)
	achievements.Get("/", achievementsController.List)
	achievements.Get("/unlocked", achievementsController.Unlocked)
	achievements.Get("/levels", achievementsController.Levels)
	achievements.Post("/check", achievementsController.Check)

	// User routes
	userController := controllers.NewUserController(store, cfg)
	user := app.Group("/api/user", authMiddleware)
	user.Get("/stats", userController.GetStats)
	user.Get("/activity", userController.GetActivity)
}
