package services

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAllOrdersByName(t *testing.T) {
	db := newTestDB(t)
	svc := NewUniversityService(db, NewIdentityService(db))

	createUniversity(t, db, "csv-2", "Zurich Tech", "Switzerland", "ch")
	createUniversity(t, db, "csv-1", "Aalto University", "Finland", "fi")

	items, err := svc.ListAll()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Aalto University", items[0].Name)
	assert.Equal(t, "Zurich Tech", items[1].Name)
	assert.Equal(t, "FI", items[0].Alpha2)
	assert.Equal(t, "csv-1", items[0].ID)
}

func TestItemCarriesBothIdentifierForms(t *testing.T) {
	db := newTestDB(t)
	svc := NewUniversityService(db, NewIdentityService(db))

	withSource := createUniversity(t, db, "csv-42", "MIT", "United States", "US")
	withoutSource := createUniversity(t, db, "", "Oxford", "United Kingdom", "GB")

	item, err := svc.Detail("csv-42")
	require.NoError(t, err)
	assert.Equal(t, "csv-42", item.ID)
	assert.Equal(t, strconv.FormatUint(uint64(withSource.ID), 10), item.DBID)

	plainID := strconv.FormatUint(uint64(withoutSource.ID), 10)
	item, err = svc.Detail(plainID)
	require.NoError(t, err)
	assert.Equal(t, plainID, item.ID)
	assert.Equal(t, plainID, item.DBID)
}

func TestDetailNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewUniversityService(db, NewIdentityService(db))

	_, err := svc.Detail("missing")
	assert.ErrorIs(t, err, ErrUniversityNotFound)
}

func TestCountries(t *testing.T) {
	db := newTestDB(t)
	svc := NewUniversityService(db, NewIdentityService(db))

	createUniversity(t, db, "a", "One", "Germany", "DE")
	createUniversity(t, db, "b", "Two", "Germany", "DE")
	createUniversity(t, db, "c", "Three", "Canada", "CA")

	countries, err := svc.Countries()
	require.NoError(t, err)
	assert.Equal(t, []string{"Canada", "Germany"}, countries)
}

func TestByCountryMatchesNameOrAlpha2(t *testing.T) {
	db := newTestDB(t)
	svc := NewUniversityService(db, NewIdentityService(db))

	createUniversity(t, db, "a", "TUM", "Germany", "DE")
	createUniversity(t, db, "b", "Toronto", "Canada", "CA")

	byName, err := svc.ByCountry("germany")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "TUM", byName[0].Name)

	byCode, err := svc.ByCountry("ca")
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	assert.Equal(t, "Toronto", byCode[0].Name)

	none, err := svc.ByCountry("Atlantis")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCoursesFlattenedAndSorted(t *testing.T) {
	db := newTestDB(t)
	svc := NewUniversityService(db, NewIdentityService(db))

	createUniversity(t, db, "a", "One", "Germany", "DE", "Physics", "Law")
	createUniversity(t, db, "b", "Two", "Canada", "CA", "Law", "  ", "Medicine")

	courses, err := svc.Courses()
	require.NoError(t, err)
	assert.Equal(t, []string{"Law", "Medicine", "Physics"}, courses)
}

func TestCourseByName(t *testing.T) {
	db := newTestDB(t)
	svc := NewUniversityService(db, NewIdentityService(db))

	createUniversity(t, db, "a", "One", "Germany", "DE", "Computer Science")

	got, err := svc.CourseByName("  computer SCIENCE ")
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", got)

	_, err = svc.CourseByName("Alchemy")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}
