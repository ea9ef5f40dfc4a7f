package admin

import (
	"errors"
	"strings"

	"github.com/b-shhhh/university-finder-ai/model"
	"github.com/b-shhhh/university-finder-ai/services"
	"github.com/b-shhhh/university-finder-ai/utils/response"
	"github.com/b-shhhh/university-finder-ai/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UniversityAdminHandler manages the university catalog for admins.
type UniversityAdminHandler struct {
	db        *gorm.DB
	identity  *services.IdentityService
	validator *validation.Validator
}

// NewUniversityAdminHandler creates a new admin university handler
func NewUniversityAdminHandler(db *gorm.DB, identity *services.IdentityService) *UniversityAdminHandler {
	return &UniversityAdminHandler{
		db:        db,
		identity:  identity,
		validator: validation.NewValidator(),
	}
}

// UniversityRequest is the create/update payload.
type UniversityRequest struct {
	SourceID    string   `json:"source_id"`
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Country     string   `json:"country" validate:"required,min=2,max=100"`
	Alpha2      string   `json:"alpha_two_code" validate:"omitempty,len=2"`
	State       string   `json:"state"`
	City        string   `json:"city"`
	Website     string   `json:"website" validate:"omitempty,url"`
	FlagURL     string   `json:"flag_url" validate:"omitempty,url"`
	LogoURL     string   `json:"logo_url" validate:"omitempty,url"`
	Courses     []string `json:"courses"`
	Description string   `json:"description"`
}

// ListUniversities handles GET /api/v1/admin/universities with
// pagination and search.
func (h *UniversityAdminHandler) ListUniversities(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	search := strings.TrimSpace(c.Query("search"))

	query := h.db.Model(&model.University{})
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(country) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count universities")
	}

	pagination := response.CalculatePagination(page, limit, total)
	offset := (pagination.CurrentPage - 1) * pagination.PerPage

	var universities []model.University
	if err := query.Order("name ASC").Limit(pagination.PerPage).Offset(offset).Find(&universities).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch universities")
	}

	return response.Paginated(c, universities, pagination)
}

// GetUniversity handles GET /api/v1/admin/universities/:id
func (h *UniversityAdminHandler) GetUniversity(c *fiber.Ctx) error {
	university, err := h.identity.Resolve(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrUniversityNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}
	return response.Success(c, university)
}

// CreateUniversity handles POST /api/v1/admin/universities
func (h *UniversityAdminHandler) CreateUniversity(c *fiber.Ctx) error {
	var req UniversityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.SourceID != "" {
		var existing model.University
		err := h.db.Where("source_id = ?", req.SourceID).First(&existing).Error
		if err == nil {
			return response.Conflict(c, "A university with this source id already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return response.InternalServerError(c, "Failed to check university")
		}
	}

	university := model.University{
		SourceID:    req.SourceID,
		Name:        validation.SanitizeString(req.Name),
		Country:     validation.SanitizeString(req.Country),
		Alpha2:      strings.ToUpper(req.Alpha2),
		State:       validation.SanitizeString(req.State),
		City:        validation.SanitizeString(req.City),
		Website:     req.Website,
		FlagURL:     req.FlagURL,
		LogoURL:     req.LogoURL,
		Courses:     datatypes.NewJSONSlice(req.Courses),
		Description: validation.SanitizeString(req.Description),
	}
	if err := h.db.Create(&university).Error; err != nil {
		return response.InternalServerError(c, "Failed to create university")
	}

	return response.Created(c, university)
}

// UpdateUniversity handles PUT /api/v1/admin/universities/:id
func (h *UniversityAdminHandler) UpdateUniversity(c *fiber.Ctx) error {
	university, err := h.identity.Resolve(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrUniversityNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}

	var req UniversityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.SourceID != "" && req.SourceID != university.SourceID {
		var existing model.University
		err := h.db.Where("source_id = ? AND id <> ?", req.SourceID, university.ID).First(&existing).Error
		if err == nil {
			return response.Conflict(c, "A university with this source id already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return response.InternalServerError(c, "Failed to check university")
		}
		university.SourceID = req.SourceID
	}

	university.Name = validation.SanitizeString(req.Name)
	university.Country = validation.SanitizeString(req.Country)
	university.Alpha2 = strings.ToUpper(req.Alpha2)
	university.State = validation.SanitizeString(req.State)
	university.City = validation.SanitizeString(req.City)
	university.Website = req.Website
	university.FlagURL = req.FlagURL
	university.LogoURL = req.LogoURL
	university.Courses = datatypes.NewJSONSlice(req.Courses)
	university.Description = validation.SanitizeString(req.Description)

	if err := h.db.Save(university).Error; err != nil {
		return response.InternalServerError(c, "Failed to update university")
	}

	return response.SuccessWithMessage(c, "University updated", university)
}

// DeleteUniversity handles DELETE /api/v1/admin/universities/:id
func (h *UniversityAdminHandler) DeleteUniversity(c *fiber.Ctx) error {
	university, err := h.identity.Resolve(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrUniversityNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}

	if err := h.db.Delete(university).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete university")
	}

	return response.SuccessWithMessage(c, "University deleted", fiber.Map{
		"id": services.CanonicalAlias(university),
	})
}
