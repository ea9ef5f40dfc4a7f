package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePagination(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		total     int64
		wantPage  int
		wantLimit int
		wantPages int
	}{
		{"defaults applied", 0, 0, 25, 1, 10, 3},
		{"exact division", 2, 10, 30, 2, 10, 3},
		{"remainder adds a page", 1, 10, 31, 1, 10, 4},
		{"limit clamped to max", 1, 500, 1000, 1, 100, 10},
		{"empty result", 1, 10, 0, 1, 10, 0},
		{"negative page", -3, 10, 5, 1, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := CalculatePagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.wantPage, meta.CurrentPage)
			assert.Equal(t, tt.wantLimit, meta.PerPage)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.wantPages, meta.TotalPages)
		})
	}
}
