package api

import (
	"log"
	"strings"
	"time"

	"github.com/bedmade-app/bedmade/internal/services"
	"github.com/bedmade-app/bedmade/internal/vision"
	"github.com/gofiber/fiber/v2"
)

type photoVerificationInput struct {
	Image string `json:"image"`
}

type manualVerificationInput struct {
	Made bool `json:"made"`
}

// SubmitVerification runs the photo flow: classify the image, record the
// outcome, derive streak and goal state. Photo archiving is best effort and
// never blocks the response.
func (handler *Handler) SubmitVerification(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := photoVerificationInput{}
	if err := c.BodyParser(&input); err != nil || strings.TrimSpace(input.Image) == "" {
		return apiError(c, fiber.StatusBadRequest, "image is required")
	}

	verdict, err := handler.classifier.ClassifyBed(c.Context(), input.Image)
	if err != nil {
		return apiError(c, fiber.StatusBadGateway, "failed to analyze the image, please try again")
	}

	observedAt := time.Now().In(handler.location)
	result := handler.verificationService.RecordVerification(user.ID, services.VerificationInput{
		Made:            verdict.IsMade,
		ObservedAt:      observedAt,
		VerifiedByPhoto: true,
		Confidence:      verdict.Confidence,
	})

	handler.archivePhoto(c, user.ID, input.Image)

	return c.JSON(fiber.Map{
		"verdict": fiber.Map{
			"is_made":    verdict.IsMade,
			"confidence": verdict.Confidence,
			"feedback":   verdict.Feedback,
		},
		"result": result,
	})
}

// SubmitManualVerification records an outcome claimed without a photo.
func (handler *Handler) SubmitManualVerification(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := manualVerificationInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	observedAt := time.Now().In(handler.location)
	result := handler.verificationService.RecordVerification(user.ID, services.VerificationInput{
		Made:       input.Made,
		ObservedAt: observedAt,
	})

	return c.JSON(fiber.Map{"result": result})
}

func (handler *Handler) GetTodayVerification(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	now := time.Now().In(handler.location)
	record, found, status, err := handler.verificationService.TodayRecord(user.ID, now)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load today's record")
	}
	if !found {
		return c.JSON(fiber.Map{"verified": false})
	}

	view := fiber.Map{
		"verified":       true,
		"made":           record.Made,
		"is_within_goal": status.IsWithinGoal,
		"is_early":       status.IsEarly,
	}
	if record.MadeAt != nil {
		view["made_at"] = record.MadeAt.In(handler.location)
		view["is_early_bird"] = services.IsEarlyBird(*record.MadeAt, handler.location)
	}
	return c.JSON(view)
}

func (handler *Handler) archivePhoto(c *fiber.Ctx, userID uint, imageData string) {
	if handler.photos == nil {
		return
	}

	imageBytes, err := vision.DecodeImage(imageData)
	if err != nil {
		log.Printf("verification: decode photo for archive failed for user %d: %v", userID, err)
		return
	}
	if _, err := handler.photos.Upload(c.Context(), userID, imageBytes); err != nil {
		log.Printf("verification: archive photo failed for user %d: %v", userID, err)
	}
}
