package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"studybuddy/backend/config"
	"studybuddy/backend/gamification"
	"studybuddy/backend/utils"
)

type AchievementsController struct {
	Service *gamification.Service
	Cfg     *config.Config
}

func NewAchievementsController(service *gamification.Service, cfg *config.Config) *AchievementsController {
	return &AchievementsController{Service: service, Cfg: cfg}
}

// List godoc
// @Summary List achievements
// @Description Returns every materialized achievement with current progress
// @Tags achievements
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /achievements [get]
func (ac *AchievementsController) List(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	views, err := ac.Service.ListAchievements(userID)
	if err != nil {
		return ac.fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"achievements": views,
	})
}

// Unlocked returns only the unlocked achievements.
func (ac *AchievementsController) Unlocked(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	views, err := ac.Service.UnlockedAchievements(userID)
	if err != nil {
		return ac.fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"achievements": views,
	})
}

// Levels returns per-level completion status.
func (ac *AchievementsController) Levels(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	statuses, err := ac.Service.LevelStatuses(userID)
	if err != nil {
		return ac.fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"levels": statuses,
	})
}

// Check re-evaluates all achievements on request, returning anything that
// just unlocked.
func (ac *AchievementsController) Check(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	result, err := ac.Service.Check(userID)
	if err != nil {
		return ac.fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, result)
}

func (ac *AchievementsController) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, gamification.ErrUserNotFound) {
		return utils.NotFound(c, "User not found")
	}
	return utils.InternalServerError(c, err.Error())
}
