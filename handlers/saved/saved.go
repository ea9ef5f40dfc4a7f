package saved

import (
	"errors"

	"github.com/b-shhhh/university-finder-ai/services"
	"github.com/b-shhhh/university-finder-ai/utils/middleware"
	"github.com/b-shhhh/university-finder-ai/utils/response"
	"github.com/b-shhhh/university-finder-ai/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// SavedHandler manages the authenticated user's saved universities.
type SavedHandler struct {
	saved     *services.SavedService
	validator *validation.Validator
}

// NewSavedHandler creates a new saved-universities handler
func NewSavedHandler(saved *services.SavedService) *SavedHandler {
	return &SavedHandler{
		saved:     saved,
		validator: validation.NewValidator(),
	}
}

// SaveRequest is the body for saving a university.
type SaveRequest struct {
	UniversityID string `json:"university_id" validate:"required"`
}

// SaveUniversity handles POST /api/v1/saved
func (h *SavedHandler) SaveUniversity(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req SaveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, err)
	}

	list, err := h.saved.Save(userID, req.UniversityID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyReference):
			return response.BadRequest(c, "University id is required")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to save university")
		}
	}

	return response.SuccessWithMessage(c, "University saved", fiber.Map{
		"saved_universities": list,
	})
}

// RemoveUniversity handles DELETE /api/v1/saved/:universityId
func (h *SavedHandler) RemoveUniversity(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	token := c.Params("universityId")
	list, err := h.saved.Remove(userID, token)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyReference):
			return response.BadRequest(c, "University id is required")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to remove university")
		}
	}

	return response.SuccessWithMessage(c, "University removed", fiber.Map{
		"saved_universities": list,
	})
}

// ListSaved handles GET /api/v1/saved
func (h *SavedHandler) ListSaved(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	list, err := h.saved.List(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch saved universities")
	}

	return response.Success(c, fiber.Map{
		"saved_universities": list,
	})
}
