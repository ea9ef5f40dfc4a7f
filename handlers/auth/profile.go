package auth

import (
	"github.com/b-shhhh/university-finder-ai/utils/middleware"
	"github.com/b-shhhh/university-finder-ai/utils/response"
	"github.com/b-shhhh/university-finder-ai/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// UpdateProfileRequest represents a profile update
type UpdateProfileRequest struct {
	FullName   string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Phone      string `json:"phone" validate:"omitempty,min=5,max=20"`
	Country    string `json:"country" validate:"omitempty,max=100"`
	Bio        string `json:"bio" validate:"omitempty,max=1000"`
	ProfilePic string `json:"profile_pic" validate:"omitempty,url,max=255"`
}

// WhoAmI returns the authenticated user's profile.
func (h *AuthHandler) WhoAmI(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	return response.Success(c, toUserResponse(user))
}

// UpdateProfile updates the authenticated user's profile fields.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.FullName != "" {
		updates["full_name"] = validation.SanitizeString(req.FullName)
	}
	if req.Phone != "" {
		updates["phone"] = validation.SanitizeString(req.Phone)
	}
	if req.Country != "" {
		updates["country"] = validation.SanitizeString(req.Country)
	}
	if req.Bio != "" {
		updates["bio"] = validation.SanitizeString(req.Bio)
	}
	if req.ProfilePic != "" {
		updates["profile_pic"] = validation.SanitizeString(req.ProfilePic)
	}
	if len(updates) == 0 {
		return response.Success(c, toUserResponse(user))
	}

	if err := h.db.Model(user).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.SuccessWithMessage(c, "Profile updated successfully", toUserResponse(user))
}
