package auth

import (
	"strings"

	"github.com/b-shhhh/university-finder-ai/model"
	authutil "github.com/b-shhhh/university-finder-ai/utils/auth"
	"github.com/b-shhhh/university-finder-ai/utils/response"
	"github.com/b-shhhh/university-finder-ai/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	FullName    string `json:"full_name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Phone       string `json:"phone" validate:"required,min=5,max=20"`
	CountryCode string `json:"country_code" validate:"omitempty,max=5"`
}

// RegisterResponse represents a successful registration response
type RegisterResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresIn   int          `json:"expires_in"` // in seconds
}

// Register handles user registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	email := validation.NormalizeEmail(req.Email)
	fullName := validation.SanitizeString(req.FullName)

	// Phone is stored with its country code prefix when one is given.
	phone := strings.TrimSpace(req.Phone)
	if cc := strings.TrimSpace(req.CountryCode); cc != "" && !strings.HasPrefix(phone, cc) {
		phone = cc + phone
	}

	var existing model.User
	if err := h.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return response.Conflict(c, "Email already registered")
	}

	passwordHash, err := authutil.HashPassword(req.Password)
	if err != nil {
		return response.InternalServerError(c, "Failed to process password")
	}

	user := model.User{
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Phone:        phone,
		Role:         model.RoleUser,
	}
	if err := h.db.Create(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to create user")
	}

	accessToken, err := h.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token")
	}

	return response.Created(c, RegisterResponse{
		User:        toUserResponse(&user),
		AccessToken: accessToken,
		ExpiresIn:   24 * 60 * 60,
	})
}
