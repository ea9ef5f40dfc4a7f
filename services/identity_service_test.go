package services

import (
	"strconv"
	"testing"

	"github.com/b-shhhh/university-finder-ai/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		token string
		kind  RefKind
		dbID  uint
	}{
		{"42", RefDatabaseID, 42},
		{" 42 ", RefDatabaseID, 42},
		{"0", RefDatabaseID, 0},
		{"csv-42", RefSourceID, 0},
		{"42a", RefSourceID, 0},
		{"-1", RefSourceID, 0},
		{"", RefSourceID, 0},
	}
	for _, tt := range tests {
		ref := ParseReference(tt.token)
		assert.Equal(t, tt.kind, ref.Kind, "token %q", tt.token)
		if tt.kind == RefDatabaseID {
			assert.Equal(t, tt.dbID, ref.DatabaseID, "token %q", tt.token)
		}
	}
}

func TestCanonicalAlias(t *testing.T) {
	assert.Equal(t, "csv-42", CanonicalAlias(&model.University{SourceID: "csv-42", ID: 7}))
	assert.Equal(t, "7", CanonicalAlias(&model.University{ID: 7}))
}

func TestResolve(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db)

	u := createUniversity(t, db, "csv-42", "MIT", "United States", "US")

	bySource, err := svc.Resolve("csv-42")
	require.NoError(t, err)
	assert.Equal(t, u.ID, bySource.ID)

	byID, err := svc.Resolve(strconv.FormatUint(uint64(u.ID), 10))
	require.NoError(t, err)
	assert.Equal(t, u.ID, byID.ID)

	_, err = svc.Resolve("nope")
	assert.ErrorIs(t, err, ErrUniversityNotFound)

	_, err = svc.Resolve("")
	assert.ErrorIs(t, err, ErrUniversityNotFound)

	_, err = svc.Resolve("  ")
	assert.ErrorIs(t, err, ErrUniversityNotFound)
}

func TestResolveNumericSourceID(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db)

	// A source id that happens to look like a database id still resolves.
	u := createUniversity(t, db, "90001", "Oxford", "United Kingdom", "GB")

	got, err := svc.Resolve("90001")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestResolveDuplicateSourceIDIsDeterministic(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db)

	first := createUniversity(t, db, "dup-1", "First", "Germany", "DE")
	createUniversity(t, db, "dup-1", "Second", "Germany", "DE")

	got, err := svc.Resolve("dup-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestResolveMany(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db)

	mit := createUniversity(t, db, "csv-42", "MIT", "United States", "US")
	eth := createUniversity(t, db, "", "ETH Zurich", "Switzerland", "CH")

	ethID := strconv.FormatUint(uint64(eth.ID), 10)
	tokens := []string{"csv-42", ethID, "unknown-token", "", "csv-42"}

	resolved, err := svc.ResolveMany(tokens)
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Equal(t, mit.ID, resolved["csv-42"].ID)
	assert.Equal(t, eth.ID, resolved[ethID].ID)
	assert.NotContains(t, resolved, "unknown-token")
}

func TestResolveManyEmptyInput(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db)

	resolved, err := svc.ResolveMany(nil)
	require.NoError(t, err)
	assert.Empty(t, resolved)

	resolved, err = svc.ResolveMany([]string{"", "  "})
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func TestResolveManySourceIDWins(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db)

	first := createUniversity(t, db, "plain", "First", "France", "FR")
	// Second record's source id equals the first record's database id.
	firstID := strconv.FormatUint(uint64(first.ID), 10)
	second := createUniversity(t, db, firstID, "Second", "France", "FR")

	resolved, err := svc.ResolveMany([]string{firstID})
	require.NoError(t, err)
	require.Contains(t, resolved, firstID)
	assert.Equal(t, second.ID, resolved[firstID].ID)
}

func TestImportUpsertIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db)

	row := ImportRow{
		Name:      "University of Toronto",
		Country:   "Canada",
		Alpha2:    "ca",
		Courses:   []string{"Law", "Medicine", "Law"},
		RowNumber: 3,
	}

	result, err := svc.ImportUpsert(row)
	require.NoError(t, err)
	assert.Equal(t, ImportCreated, result)

	result, err = svc.ImportUpsert(row)
	require.NoError(t, err)
	assert.Equal(t, ImportUpdated, result)

	var count int64
	require.NoError(t, db.Model(&model.University{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var u model.University
	require.NoError(t, db.First(&u).Error)
	assert.Equal(t, "ca-university-of-toronto-3", u.SourceID)
	assert.Equal(t, "CA", u.Alpha2)
	assert.Equal(t, []string{"Law", "Medicine"}, []string(u.Courses))
}

func TestImportUpsertExplicitSourceID(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db)

	row := ImportRow{
		SourceID:  "csv-42",
		Name:      "MIT",
		Country:   "United States",
		Alpha2:    "US",
		RowNumber: 1,
	}

	result, err := svc.ImportUpsert(row)
	require.NoError(t, err)
	assert.Equal(t, ImportCreated, result)

	var u model.University
	require.NoError(t, db.First(&u).Error)
	assert.Equal(t, "csv-42", u.SourceID)
}

func TestImportUpsertMigratesLegacySourceID(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db)

	// A record imported before row discriminators were added.
	legacy := createUniversity(t, db, "us-mit", "MIT", "United States", "US")

	result, err := svc.ImportUpsert(ImportRow{
		Name:      "MIT",
		Country:   "United States",
		Alpha2:    "US",
		RowNumber: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, ImportUpdated, result)

	var u model.University
	require.NoError(t, db.First(&u, legacy.ID).Error)
	assert.Equal(t, "us-mit-5", u.SourceID)

	var count int64
	require.NoError(t, db.Model(&model.University{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
