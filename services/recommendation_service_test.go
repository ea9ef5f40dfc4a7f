package services

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreForAliasIsStableAndBounded(t *testing.T) {
	first := scoreForAlias("csv-42")
	assert.Equal(t, first, scoreForAlias("csv-42"))

	for _, alias := range []string{"csv-42", "1", "us-mit-5", ""} {
		score := scoreForAlias(alias)
		require.NotEmpty(t, score)
		require.Equal(t, "%", score[len(score)-1:])
		n, err := strconv.Atoi(score[:len(score)-1])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 75)
		assert.LessOrEqual(t, n, 99)
	}
}

func TestRecommendationsFromCatalog(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecommendationService(NewUniversityService(db, NewIdentityService(db)))

	createUniversity(t, db, "csv-1", "Aalto University", "Finland", "FI", "Design")
	createUniversity(t, db, "csv-2", "MIT", "United States", "US")

	result, err := svc.Get()
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 2)

	// Catalog order is by name, so Aalto comes first.
	assert.Equal(t, "csv-1", result.Recommendations[0].ID)
	assert.Equal(t, "Design", result.Recommendations[0].Program)
	// A university without courses falls back to a generic program.
	assert.Equal(t, "General Studies", result.Recommendations[1].Program)

	require.Len(t, result.Stats, 4)
	assert.Equal(t, "Matches", result.Stats[0].Label)
	assert.Equal(t, "2", result.Stats[0].Value)
	assert.Equal(t, "2", result.Stats[1].Value) // countries
	assert.Equal(t, result.Recommendations[0].Score, result.Stats[3].Value)

	assert.Len(t, result.Deadlines, 3)
}

func TestRecommendationsEmptyCatalog(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecommendationService(NewUniversityService(db, NewIdentityService(db)))

	result, err := svc.Get()
	require.NoError(t, err)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, "0%", result.Stats[3].Value)
}

func TestRecommendationsCappedAtThirty(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecommendationService(NewUniversityService(db, NewIdentityService(db)))

	for i := 0; i < 35; i++ {
		createUniversity(t, db, "", "University "+strconv.Itoa(i), "Germany", "DE")
	}

	result, err := svc.Get()
	require.NoError(t, err)
	assert.Len(t, result.Recommendations, 30)
}
