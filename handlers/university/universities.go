package university

import (
	"errors"

	"github.com/b-shhhh/university-finder-ai/services"
	"github.com/b-shhhh/university-finder-ai/utils/response"
	"github.com/gofiber/fiber/v2"
)

// UniversityHandler serves the public university catalog.
type UniversityHandler struct {
	universities *services.UniversityService
}

// NewUniversityHandler creates a new university handler
func NewUniversityHandler(universities *services.UniversityService) *UniversityHandler {
	return &UniversityHandler{universities: universities}
}

// ListUniversities handles GET /api/v1/universities
func (h *UniversityHandler) ListUniversities(c *fiber.Ctx) error {
	items, err := h.universities.ListAll()
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch universities")
	}
	return response.Success(c, items)
}

// GetCountries handles GET /api/v1/universities/countries
func (h *UniversityHandler) GetCountries(c *fiber.Ctx) error {
	countries, err := h.universities.Countries()
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch countries")
	}
	return response.Success(c, countries)
}

// GetByCountry handles GET /api/v1/universities/country/:country
func (h *UniversityHandler) GetByCountry(c *fiber.Ctx) error {
	country := c.Params("country")
	if country == "" {
		return response.BadRequest(c, "Country is required")
	}
	items, err := h.universities.ByCountry(country)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch universities")
	}
	return response.Success(c, items)
}

// GetUniversityDetail handles GET /api/v1/universities/:id. The id may
// be a source id or a database id.
func (h *UniversityHandler) GetUniversityDetail(c *fiber.Ctx) error {
	token := c.Params("id")
	item, err := h.universities.Detail(token)
	if err != nil {
		if errors.Is(err, services.ErrUniversityNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}
	return response.Success(c, item)
}
