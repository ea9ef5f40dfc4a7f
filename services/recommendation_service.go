package services

import (
	"fmt"
	"time"
)

// RecommendationStat is one headline number on the recommendations view.
type RecommendationStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// RecommendationItem is one recommended university.
type RecommendationItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Program      string `json:"program"`
	Country      string `json:"country"`
	CountryImage string `json:"country_image"`
	LogoURL      string `json:"logo_url"`
	Score        string `json:"score"`
	City         string `json:"city"`
	Duration     string `json:"duration"`
	Tuition      string `json:"tuition"`
	Ranking      string `json:"ranking"`
	Intake       string `json:"intake"`
	Website      string `json:"website"`
	Description  string `json:"description"`
}

// RecommendationDeadline is an upcoming application milestone.
type RecommendationDeadline struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

// RecommendationResult is the full recommendations payload.
type RecommendationResult struct {
	Stats           []RecommendationStat     `json:"stats"`
	Recommendations []RecommendationItem     `json:"recommendations"`
	Deadlines       []RecommendationDeadline `json:"deadlines"`
}

// RecommendationService derives simple recommendations from the
// catalog. Scores are a deterministic hash of the canonical alias, so
// the same university always gets the same fit percentage.
type RecommendationService struct {
	universities *UniversityService
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(universities *UniversityService) *RecommendationService {
	return &RecommendationService{universities: universities}
}

// scoreForAlias maps an alias to a stable 75-99% fit score.
func scoreForAlias(alias string) string {
	hash := 0
	for _, ch := range alias {
		hash = (hash*31 + int(ch)) % 1000
	}
	return fmt.Sprintf("%d%%", 75+hash%25)
}

func deadlineDate(offsetDays int) string {
	return time.Now().AddDate(0, 0, offsetDays).Format("January 2, 2006")
}

// Get builds the recommendations payload from the top of the catalog.
func (s *RecommendationService) Get() (*RecommendationResult, error) {
	universities, err := s.universities.ListAll()
	if err != nil {
		return nil, err
	}
	if len(universities) > 30 {
		universities = universities[:30]
	}

	recommendations := make([]RecommendationItem, 0, len(universities))
	for i, uni := range universities {
		program := "General Studies"
		if len(uni.Courses) > 0 {
			program = uni.Courses[0]
		}

		duration := "1.5 years"
		intake := "January"
		if i%2 == 0 {
			duration = "2 years"
			intake = "September"
		}
		tuition := "$18,000/year"
		if i%3 == 0 {
			tuition = "$25,000/year"
		}

		recommendations = append(recommendations, RecommendationItem{
			ID:           uni.ID,
			Name:         uni.Name,
			Program:      program,
			Country:      uni.Country,
			CountryImage: uni.FlagURL,
			LogoURL:      uni.LogoURL,
			Score:        scoreForAlias(uni.ID),
			City:         "N/A",
			Duration:     duration,
			Tuition:      tuition,
			Ranking:      fmt.Sprintf("#%d", 20+i%120),
			Intake:       intake,
			Website:      uni.Website,
			Description:  fmt.Sprintf("%s offers %s in %s.", uni.Name, program, uni.Country),
		})
	}

	countries := make(map[string]bool)
	programs := make(map[string]bool)
	for _, item := range recommendations {
		countries[item.Country] = true
		programs[item.Program] = true
	}
	topFit := "0%"
	if len(recommendations) > 0 {
		topFit = recommendations[0].Score
	}

	return &RecommendationResult{
		Stats: []RecommendationStat{
			{Label: "Matches", Value: fmt.Sprintf("%d", len(recommendations))},
			{Label: "Countries", Value: fmt.Sprintf("%d", len(countries))},
			{Label: "Courses", Value: fmt.Sprintf("%d", len(programs))},
			{Label: "Top Fit", Value: topFit},
		},
		Recommendations: recommendations,
		Deadlines: []RecommendationDeadline{
			{Title: "Application Document Review", Date: deadlineDate(7)},
			{Title: "Scholarship Submission", Date: deadlineDate(14)},
			{Title: "University Shortlist Finalization", Date: deadlineDate(21)},
		},
	}, nil
}
