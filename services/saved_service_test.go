package services

import (
	"strconv"
	"testing"

	"github.com/b-shhhh/university-finder-ai/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSavedService(db *gorm.DB) *SavedService {
	return NewSavedService(db, NewIdentityService(db))
}

func reloadSaved(t *testing.T, db *gorm.DB, userID uint) []string {
	t.Helper()
	var user model.User
	require.NoError(t, db.First(&user, userID).Error)
	return []string(user.SavedUniversities)
}

func TestSaveDoesNotDuplicateAliasForms(t *testing.T) {
	db := newTestDB(t)
	svc := newSavedService(db)

	uni := createUniversity(t, db, "csv-42", "MIT", "United States", "US")
	user := createUser(t, db, "alice@example.com", "csv-42")

	// Saving again through the database id form must not add a second
	// entry for the same university.
	list, err := svc.Save(user.ID, strconv.FormatUint(uint64(uni.ID), 10))
	require.NoError(t, err)
	assert.Equal(t, []string{"csv-42"}, list)
	assert.Equal(t, []string{"csv-42"}, reloadSaved(t, db, user.ID))
}

func TestSaveAppendsCanonicalAlias(t *testing.T) {
	db := newTestDB(t)
	svc := newSavedService(db)

	uni := createUniversity(t, db, "csv-42", "MIT", "United States", "US")
	createUniversity(t, db, "csv-7", "Oxford", "United Kingdom", "GB")
	user := createUser(t, db, "alice@example.com", "csv-7")

	list, err := svc.Save(user.ID, strconv.FormatUint(uint64(uni.ID), 10))
	require.NoError(t, err)
	assert.Equal(t, []string{"csv-7", "csv-42"}, list)

	// A record without a source id is saved under its database id.
	plain := createUniversity(t, db, "", "ETH Zurich", "Switzerland", "CH")
	plainID := strconv.FormatUint(uint64(plain.ID), 10)
	list, err = svc.Save(user.ID, plainID)
	require.NoError(t, err)
	assert.Equal(t, []string{"csv-7", "csv-42", plainID}, list)
}

func TestSaveUnresolvedTokenIsKeptVerbatim(t *testing.T) {
	db := newTestDB(t)
	svc := newSavedService(db)

	user := createUser(t, db, "alice@example.com")

	list, err := svc.Save(user.ID, "ghost-university")
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost-university"}, list)

	// Re-saving the same unresolved token stays a single entry.
	list, err = svc.Save(user.ID, "ghost-university")
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost-university"}, list)
}

func TestSaveValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newSavedService(db)

	user := createUser(t, db, "alice@example.com")

	_, err := svc.Save(user.ID, "")
	assert.ErrorIs(t, err, ErrEmptyReference)

	_, err = svc.Save(user.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyReference)

	_, err = svc.Save(user.ID+1000, "csv-42")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRemoveDropsEveryAliasForm(t *testing.T) {
	db := newTestDB(t)
	svc := newSavedService(db)

	uni := createUniversity(t, db, "csv-42", "MIT", "United States", "US")
	uniID := strconv.FormatUint(uint64(uni.ID), 10)

	// The stored list holds both alias forms of the same record.
	user := createUser(t, db, "alice@example.com", "csv-42", uniID, "csv-7")

	list, err := svc.Remove(user.ID, uniID)
	require.NoError(t, err)
	assert.Equal(t, []string{"csv-7"}, list)
	assert.Equal(t, []string{"csv-7"}, reloadSaved(t, db, user.ID))
}

func TestRemoveValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newSavedService(db)

	user := createUser(t, db, "alice@example.com", "csv-42")

	_, err := svc.Remove(user.ID, "")
	assert.ErrorIs(t, err, ErrEmptyReference)

	_, err = svc.Remove(user.ID+1000, "csv-42")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListCanonicalizesAndDeduplicates(t *testing.T) {
	db := newTestDB(t)
	svc := newSavedService(db)

	uni := createUniversity(t, db, "csv-42", "MIT", "United States", "US")
	uniID := strconv.FormatUint(uint64(uni.ID), 10)

	// Both forms of the same record plus an unresolvable stray entry.
	user := createUser(t, db, "alice@example.com", uniID, "csv-42", "ghost")

	list, err := svc.List(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"csv-42", "ghost"}, list)
}

func TestListEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newSavedService(db)

	user := createUser(t, db, "alice@example.com")

	list, err := svc.List(user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.List(user.ID + 1000)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
