package database

import (
	"fmt"
	"log"
	"os"

	"github.com/b-shhhh/university-finder-ai/model"
	"github.com/b-shhhh/university-finder-ai/services"
	authutil "github.com/b-shhhh/university-finder-ai/utils/auth"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("starting database seeding...")

	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	if err := s.SeedUniversities(); err != nil {
		return fmt.Errorf("failed to seed universities: %w", err)
	}

	log.Println("database seeding completed")
	return nil
}

// SeedAdminUser creates the default admin user unless one exists.
func (s *Seeder) SeedAdminUser() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("admin user already exists, skipping")
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@university-finder.app"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme-admin"
	}

	hash, err := authutil.HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     "Administrator",
		Role:         model.RoleAdmin,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("seeded admin user %s", email)
	return nil
}

// SeedUniversities loads a small starter catalog through the import
// path, so seeding and CSV import key records identically and re-runs
// stay idempotent.
func (s *Seeder) SeedUniversities() error {
	identity := services.NewIdentityService(s.db)

	rows := []services.ImportRow{
		{
			SourceID: "1", Name: "University of Oxford", Country: "United Kingdom", Alpha2: "GB",
			Website: "https://www.ox.ac.uk", Courses: []string{"Computer Science", "Law", "Medicine"},
			RowNumber: 1,
		},
		{
			SourceID: "2", Name: "ETH Zurich", Country: "Switzerland", Alpha2: "CH",
			Website: "https://ethz.ch", Courses: []string{"Computer Science", "Mechanical Engineering"},
			RowNumber: 2,
		},
		{
			SourceID: "3", Name: "University of Toronto", Country: "Canada", Alpha2: "CA",
			Website: "https://www.utoronto.ca", Courses: []string{"Data Science", "Economics"},
			RowNumber: 3,
		},
	}

	created, updated := 0, 0
	for _, row := range rows {
		res, err := identity.ImportUpsert(row)
		if err != nil {
			return err
		}
		if res == services.ImportCreated {
			created++
		} else {
			updated++
		}
	}
	log.Printf("seeded universities: %d created, %d updated", created, updated)
	return nil
}
