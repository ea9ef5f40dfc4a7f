package admin

import (
	"errors"
	"strings"

	"github.com/b-shhhh/university-finder-ai/model"
	"github.com/b-shhhh/university-finder-ai/utils/middleware"
	"github.com/b-shhhh/university-finder-ai/utils/response"
	"github.com/b-shhhh/university-finder-ai/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserAdminHandler manages user accounts for admins.
type UserAdminHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewUserAdminHandler creates a new admin user handler
func NewUserAdminHandler(db *gorm.DB) *UserAdminHandler {
	return &UserAdminHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// AdminUserResponse hides credential fields from admin listings.
type AdminUserResponse struct {
	ID                uint     `json:"id"`
	Email             string   `json:"email"`
	FullName          string   `json:"full_name"`
	Phone             string   `json:"phone,omitempty"`
	Country           string   `json:"country,omitempty"`
	Role              string   `json:"role"`
	SavedUniversities []string `json:"saved_universities"`
	CreatedAt         string   `json:"created_at"`
}

func toAdminUserResponse(u *model.User) AdminUserResponse {
	return AdminUserResponse{
		ID:                u.ID,
		Email:             u.Email,
		FullName:          u.FullName,
		Phone:             u.Phone,
		Country:           u.Country,
		Role:              u.Role,
		SavedUniversities: append([]string{}, u.SavedUniversities...),
		CreatedAt:         u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ListUsers handles GET /api/v1/admin/users with pagination and search.
func (h *UserAdminHandler) ListUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	search := strings.TrimSpace(c.Query("search"))

	query := h.db.Model(&model.User{})
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count users")
	}

	pagination := response.CalculatePagination(page, limit, total)
	offset := (pagination.CurrentPage - 1) * pagination.PerPage

	var users []model.User
	if err := query.Order("created_at DESC").Limit(pagination.PerPage).Offset(offset).Find(&users).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch users")
	}

	items := make([]AdminUserResponse, 0, len(users))
	for i := range users {
		items = append(items, toAdminUserResponse(&users[i]))
	}

	return response.Paginated(c, items, pagination)
}

// GetUser handles GET /api/v1/admin/users/:id
func (h *UserAdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	var user model.User
	if err := h.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	return response.Success(c, toAdminUserResponse(&user))
}

// UpdateUserRequest is the admin user update payload.
type UpdateUserRequest struct {
	FullName string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Country  string `json:"country" validate:"omitempty,max=100"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// UpdateUser handles PUT /api/v1/admin/users/:id
func (h *UserAdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, err)
	}

	var user model.User
	if err := h.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
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
	if req.Role != "" {
		updates["role"] = req.Role
	}

	if len(updates) > 0 {
		if err := h.db.Model(&user).Updates(updates).Error; err != nil {
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	return response.SuccessWithMessage(c, "User updated", toAdminUserResponse(&user))
}

// DeleteUser handles DELETE /api/v1/admin/users/:id. Admins cannot
// delete their own account.
func (h *UserAdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	if actorID, ok := middleware.GetUserID(c); ok && actorID == uint(id) {
		return response.BadRequest(c, "You cannot delete your own account")
	}

	var user model.User
	if err := h.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	if err := h.db.Delete(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete user")
	}

	return response.SuccessWithMessage(c, "User deleted", fiber.Map{"id": user.ID})
}

// GetStats handles GET /api/v1/admin/stats
func (h *UserAdminHandler) GetStats(c *fiber.Ctx) error {
	var totalUsers, totalAdmins, totalUniversities int64

	if err := h.db.Model(&model.User{}).Count(&totalUsers).Error; err != nil {
		return response.InternalServerError(c, "Failed to compute stats")
	}
	if err := h.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&totalAdmins).Error; err != nil {
		return response.InternalServerError(c, "Failed to compute stats")
	}
	if err := h.db.Model(&model.University{}).Count(&totalUniversities).Error; err != nil {
		return response.InternalServerError(c, "Failed to compute stats")
	}

	return response.Success(c, fiber.Map{
		"total_users":        totalUsers,
		"total_admins":       totalAdmins,
		"total_universities": totalUniversities,
	})
}
