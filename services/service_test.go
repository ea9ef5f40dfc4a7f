package services

import (
	"testing"

	"github.com/b-shhhh/university-finder-ai/model"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.University{}))
	return db
}

func createUniversity(t *testing.T, db *gorm.DB, sourceID, name, country, alpha2 string, courses ...string) *model.University {
	t.Helper()
	u := &model.University{
		SourceID: sourceID,
		Name:     name,
		Country:  country,
		Alpha2:   alpha2,
		Courses:  datatypes.NewJSONSlice(courses),
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createUser(t *testing.T, db *gorm.DB, email string, saved ...string) *model.User {
	t.Helper()
	u := &model.User{
		Email:             email,
		PasswordHash:      "not-a-real-hash",
		FullName:          "Test User",
		Role:              model.RoleUser,
		SavedUniversities: datatypes.NewJSONSlice(saved),
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
