package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"studybuddy/backend/config"
	"studybuddy/backend/gamification"
	"studybuddy/backend/utils"
)

type UserController struct {
	Store gamification.Store
	Cfg   *config.Config
}

func NewUserController(store gamification.Store, cfg *config.Config) *UserController {
	return &UserController{Store: store, Cfg: cfg}
}

// GetStats godoc
// @Summary Get user study stats
// @Description Returns counters, streak and the XP ledger
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/stats [get]
func (uc *UserController) GetStats(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	user, err := uc.Store.GetUser(userID)
	if err != nil {
		if errors.Is(err, gamification.ErrUserNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":               user.ID,
		"username":         user.Username,
		"total_documents":  user.TotalDocuments,
		"total_flashcards": user.TotalFlashcards,
		"total_quizzes":    user.TotalQuizzes,
		"study_streak":     user.StudyStreak,
		"last_study_date":  user.LastStudyDate,
		"level":            gamification.LevelStateOf(user),
	})
}

// GetActivity returns the user's recent activity feed entries.
func (uc *UserController) GetActivity(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			return utils.BadRequest(c, "Invalid limit")
		}
		limit = parsed
	}

	entries, err := uc.Store.RecentActivities(userID, limit)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"activities": entries,
	})
}
