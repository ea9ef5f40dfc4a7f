package recommendation

import (
	"github.com/b-shhhh/university-finder-ai/services"
	"github.com/b-shhhh/university-finder-ai/utils/response"
	"github.com/gofiber/fiber/v2"
)

// RecommendationHandler serves personalized university recommendations.
type RecommendationHandler struct {
	recommendations *services.RecommendationService
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(recommendations *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

// GetRecommendations handles GET /api/v1/recommendations
func (h *RecommendationHandler) GetRecommendations(c *fiber.Ctx) error {
	result, err := h.recommendations.Get()
	if err != nil {
		return response.InternalServerError(c, "Failed to build recommendations")
	}
	return response.Success(c, result)
}
