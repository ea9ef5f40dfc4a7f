package course

import (
	"errors"

	"github.com/b-shhhh/university-finder-ai/services"
	"github.com/b-shhhh/university-finder-ai/utils/response"
	"github.com/gofiber/fiber/v2"
)

// CourseHandler serves course discovery endpoints.
type CourseHandler struct {
	universities *services.UniversityService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(universities *services.UniversityService) *CourseHandler {
	return &CourseHandler{universities: universities}
}

// ListCourses handles GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	courses, err := h.universities.Courses()
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}
	return response.Success(c, courses)
}

// GetCourse handles GET /api/v1/courses/:name
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return response.BadRequest(c, "Course name is required")
	}
	course, err := h.universities.CourseByName(name)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}
	return response.Success(c, fiber.Map{"name": course})
}
