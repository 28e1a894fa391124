package pagination

// Defaults and caps for list endpoints.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageInfo is embedded into list responses.
type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Normalize clamps raw pagination inputs into the allowed window.
func Normalize(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Build computes the page info for a normalized page over total rows.
func Build(page, pageSize int, total int64) PageInfo {
	page, pageSize = Normalize(page, pageSize)
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return PageInfo{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset returns the row offset for the page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PageSize
}
