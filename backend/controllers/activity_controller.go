package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"studybuddy/backend/config"
	"studybuddy/backend/gamification"
	"studybuddy/backend/utils"
)

// ActivityController exposes the trigger points that feed the progression
// engine. The actions themselves (upload, AI generation) happen in the
// content service; these endpoints only record that they happened.
type ActivityController struct {
	Service *gamification.Service
	Cfg     *config.Config
	Logger  *log.Logger
}

func NewActivityController(service *gamification.Service, cfg *config.Config, logger *log.Logger) *ActivityController {
	return &ActivityController{Service: service, Cfg: cfg, Logger: logger}
}

// DocumentUploaded godoc
// @Summary Record a completed document upload
// @Description Applies the upload to counters, streak and achievements
// @Tags activity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /activity/document [post]
func (ac *ActivityController) DocumentUploaded(c *fiber.Ctx) error {
	return ac.trigger(c, gamification.EventDocumentUpload)
}

// FlashcardsGenerated records a generated flashcard batch. Body carries the
// batch size: {"count": N}.
func (ac *ActivityController) FlashcardsGenerated(c *fiber.Ctx) error {
	return ac.trigger(c, gamification.EventFlashcardBatch)
}

// QuizGenerated records a newly generated quiz.
func (ac *ActivityController) QuizGenerated(c *fiber.Ctx) error {
	return ac.trigger(c, gamification.EventQuizGenerated)
}

// QuizSubmitted records a quiz submission. Counts toward the streak but not
// toward the quiz counter, which was incremented at generation time.
func (ac *ActivityController) QuizSubmitted(c *fiber.Ctx) error {
	return ac.trigger(c, gamification.EventQuizSubmitted)
}

func (ac *ActivityController) trigger(c *fiber.Ctx, eventType gamification.EventType) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Count int `json:"count"`
	}
	// Body is optional; an empty body means a single activity.
	_ = c.BodyParser(&input)

	result, err := ac.Service.OnActivity(userID, gamification.Event{Type: eventType, Count: input.Count})
	if err != nil {
		if errors.Is(err, gamification.ErrUserNotFound) {
			return utils.NotFound(c, "User not found")
		}
		if errors.Is(err, gamification.ErrInvalidCounterState) {
			return utils.BadRequest(c, err.Error())
		}
		// The triggering action already succeeded upstream; a progression
		// failure is reported as a warning, not as a failure of that action.
		ac.Logger.Printf("progression update failed for user %d: %v", userID, err)
		return utils.Success(c, fiber.StatusOK, fiber.Map{
			"progression": nil,
			"warning":     "progression update failed",
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}
