// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

// PaginationInfo describes one page of a listing result. StartItem and
// EndItem are 1-based positions within the full result set; both are zero for
// an empty page.
type PaginationInfo struct {
	Page            int   `json:"page"`
	PageSize        int   `json:"pageSize"`
	TotalCount      int64 `json:"totalCount"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	StartItem       int64 `json:"startItem"`
	EndItem         int64 `json:"endItem"`
}

// NewPaginationInfo computes the page descriptor for a listing result.
func NewPaginationInfo(page, pageSize int, totalCount int64) PaginationInfo {
	info := PaginationInfo{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}

	if pageSize > 0 {
		info.TotalPages = int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	}
	info.HasNextPage = int64(page)*int64(pageSize) < totalCount
	info.HasPreviousPage = page > 1 && totalCount > 0

	start := int64(page-1)*int64(pageSize) + 1
	if totalCount > 0 && start <= totalCount {
		info.StartItem = start
		end := int64(page) * int64(pageSize)
		if end > totalCount {
			end = totalCount
		}
		info.EndItem = end
	}

	return info
}
