package handlers

import (
	"log"
	"time"

	"deliveryhub/database"
	"deliveryhub/engine"
	"deliveryhub/models"
	"deliveryhub/storage"

	"github.com/gofiber/fiber/v2"
)

// deliveryEngine is shared by the recommendation handlers; set from main once
// the database pool exists.
var deliveryEngine *engine.Engine

// InitRecommendationEngine wires the engine used by the handlers below.
func InitRecommendationEngine(e *engine.Engine) {
	deliveryEngine = e
}

// HandleGetRecommendations generates recommendations for the authenticated
// customer, with the current request context taken from query parameters.
// GET /api/v1/recommendations?pickupAddress&deliveryAddress&packageType&urgency
func HandleGetRecommendations(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Not authenticated"})
	}

	reqCtx := &models.RecommendationContext{
		PickupAddress:   c.Query("pickupAddress"),
		DeliveryAddress: c.Query("deliveryAddress"),
		PackageType:     c.Query("packageType"),
		Urgency:         c.Query("urgency"),
	}

	return generateAndRespond(c, userID, reqCtx)
}

// HandleGenerateRecommendations is the POST variant: same generation, context
// from the JSON body.
// POST /api/v1/recommendations/generate
func HandleGenerateRecommendations(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Not authenticated"})
	}

	reqCtx := &models.RecommendationContext{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(reqCtx); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
		}
	}

	return generateAndRespond(c, userID, reqCtx)
}

func generateAndRespond(c *fiber.Ctx, userID string, reqCtx *models.RecommendationContext) error {
	recs, err := deliveryEngine.GenerateRecommendations(c.Context(), userID, reqCtx, time.Now())
	if err != nil {
		log.Printf("Error generating recommendations for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not generate recommendations"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"recommendations": recs}})
}

// HandleAcceptRecommendation records that the user accepted a recommendation.
// POST /api/v1/recommendations/:recommendationId/accept
func HandleAcceptRecommendation(c *fiber.Ctx) error {
	return trackRecommendationDecision(c, true)
}

// HandleDismissRecommendation records that the user dismissed a recommendation.
// POST /api/v1/recommendations/:recommendationId/dismiss
func HandleDismissRecommendation(c *fiber.Ctx) error {
	return trackRecommendationDecision(c, false)
}

func trackRecommendationDecision(c *fiber.Ctx, accepted bool) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Not authenticated"})
	}

	recommendationID := c.Params("recommendationId")
	if recommendationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing recommendation id"})
	}

	deliveryEngine.TrackRecommendationAcceptance(userID, recommendationID, accepted)

	// The event row is best effort; the acknowledgment above is the contract.
	feedback := storage.NewFeedbackStore(database.GetDB())
	if err := feedback.RecordDecision(c.Context(), userID, recommendationID, accepted); err != nil {
		log.Printf("Error recording recommendation decision for user %s: %v", userID, err)
	}

	return c.JSON(fiber.Map{"status": "success"})
}
