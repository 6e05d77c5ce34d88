package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationInfo(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		pageSize    int
		totalCount  int64
		totalPages  int
		hasNext     bool
		hasPrevious bool
		startItem   int64
		endItem     int64
	}{
		{"first of many", 1, 20, 45, 3, true, false, 1, 20},
		{"middle page", 2, 20, 45, 3, true, true, 21, 40},
		{"last partial page", 3, 20, 45, 3, false, true, 41, 45},
		{"exact fit", 2, 20, 40, 2, false, true, 21, 40},
		{"empty result", 1, 20, 0, 0, false, false, 0, 0},
		{"single item", 1, 20, 1, 1, false, false, 1, 1},
		{"page beyond end", 4, 20, 45, 3, false, true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPaginationInfo(tt.page, tt.pageSize, tt.totalCount)
			assert.Equal(t, tt.page, info.Page)
			assert.Equal(t, tt.pageSize, info.PageSize)
			assert.Equal(t, tt.totalCount, info.TotalCount)
			assert.Equal(t, tt.totalPages, info.TotalPages)
			assert.Equal(t, tt.hasNext, info.HasNextPage)
			assert.Equal(t, tt.hasPrevious, info.HasPreviousPage)
			assert.Equal(t, tt.startItem, info.StartItem)
			assert.Equal(t, tt.endItem, info.EndItem)
		})
	}
}
