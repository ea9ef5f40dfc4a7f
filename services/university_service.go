package services

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/b-shhhh/university-finder-ai/model"
	"gorm.io/gorm"
)

// ErrCourseNotFound is returned when no university offers the course.
var ErrCourseNotFound = errors.New("course not found")

// UniversityItem is the public API shape of a university. ID is the
// canonical alias (source id when present), DBID always the database id,
// so clients can reference the record either way.
type UniversityItem struct {
	ID          string   `json:"id"`
	DBID        string   `json:"db_id"`
	Alpha2      string   `json:"alpha2"`
	Country     string   `json:"country"`
	Name        string   `json:"name"`
	Website     string   `json:"web_pages,omitempty"`
	FlagURL     string   `json:"flag_url,omitempty"`
	LogoURL     string   `json:"logo_url,omitempty"`
	Courses     []string `json:"courses"`
	Description string   `json:"description,omitempty"`
}

// UniversityService serves the public catalog: browsing universities,
// countries and course names.
type UniversityService struct {
	db       *gorm.DB
	identity *IdentityService
}

// NewUniversityService creates a new university catalog service
func NewUniversityService(db *gorm.DB, identity *IdentityService) *UniversityService {
	return &UniversityService{db: db, identity: identity}
}

// mapUniversity converts a record to its public shape.
func mapUniversity(u *model.University) UniversityItem {
	courses := make([]string, 0, len(u.Courses))
	for _, c := range u.Courses {
		if c = strings.TrimSpace(c); c != "" {
			courses = append(courses, c)
		}
	}
	return UniversityItem{
		ID:          CanonicalAlias(u),
		DBID:        strconv.FormatUint(uint64(u.ID), 10),
		Alpha2:      strings.ToUpper(u.Alpha2),
		Country:     u.Country,
		Name:        u.Name,
		Website:     u.Website,
		FlagURL:     u.FlagURL,
		LogoURL:     u.LogoURL,
		Courses:     courses,
		Description: u.Description,
	}
}

// ListAll returns every university ordered by name.
func (s *UniversityService) ListAll() ([]UniversityItem, error) {
	var universities []model.University
	if err := s.db.Order("name ASC").Find(&universities).Error; err != nil {
		return nil, err
	}
	items := make([]UniversityItem, 0, len(universities))
	for i := range universities {
		items = append(items, mapUniversity(&universities[i]))
	}
	return items, nil
}

// Countries returns the distinct country names, sorted.
func (s *UniversityService) Countries() ([]string, error) {
	var countries []string
	err := s.db.Model(&model.University{}).
		Distinct().
		Order("country ASC").
		Pluck("country", &countries).Error
	if err != nil {
		return nil, err
	}
	out := countries[:0]
	for _, c := range countries {
		if c != "" {
			out = append(out, c)
		}
	}
	return out, nil
}

// ByCountry returns universities matching a country name or alpha2
// code, case-insensitively.
func (s *UniversityService) ByCountry(country string) ([]UniversityItem, error) {
	query := strings.TrimSpace(country)
	var universities []model.University
	err := s.db.
		Where("LOWER(country) = ? OR UPPER(alpha2) = ?", strings.ToLower(query), strings.ToUpper(query)).
		Order("name ASC").
		Find(&universities).Error
	if err != nil {
		return nil, err
	}
	items := make([]UniversityItem, 0, len(universities))
	for i := range universities {
		items = append(items, mapUniversity(&universities[i]))
	}
	return items, nil
}

// Detail resolves a university by any reference token.
func (s *UniversityService) Detail(token string) (*UniversityItem, error) {
	u, err := s.identity.Resolve(token)
	if err != nil {
		return nil, err
	}
	item := mapUniversity(u)
	return &item, nil
}

// Courses returns the distinct course names offered across the whole
// catalog, sorted. The course lists live as JSON arrays on each record,
// so flattening happens here rather than in SQL.
func (s *UniversityService) Courses() ([]string, error) {
	var universities []model.University
	if err := s.db.Select("courses").Find(&universities).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var courses []string
	for i := range universities {
		for _, c := range universities[i].Courses {
			c = strings.TrimSpace(c)
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			courses = append(courses, c)
		}
	}
	sort.Strings(courses)
	return courses, nil
}

// CourseByName finds a course by its normalized (trimmed, lowercased)
// name.
func (s *UniversityService) CourseByName(name string) (string, error) {
	courses, err := s.Courses()
	if err != nil {
		return "", err
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for _, c := range courses {
		if strings.ToLower(strings.TrimSpace(c)) == want {
			return c, nil
		}
	}
	return "", ErrCourseNotFound
}
