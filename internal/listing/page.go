package listing

// Page-size bounds shared by every listing endpoint.
const (
	MaxPageSize     = 10
	DefaultPageSize = 10
)

// PageRequest is a normalized page/pageSize pair. After normalization
// Page >= 1 and 1 <= PageSize <= MaxPageSize always hold.
type PageRequest struct {
	Page     int
	PageSize int
}

// Offset is the number of rows to skip for this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResult is the paginated response envelope body.
type PageResult[T any] struct {
	Items       []T
	Total       int
	TotalPages  int
	CurrentPage int
	PageSize    int
}

// NewPageResult computes totalPages = ceil(total/pageSize). CurrentPage
// echoes the normalized page and is deliberately not reclamped: a page
// beyond the last yields empty Items with a populated pagination block.
func NewPageResult[T any](items []T, total int, page PageRequest) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{
		Items:       items,
		Total:       total,
		TotalPages:  totalPages(total, page.PageSize),
		CurrentPage: page.Page,
		PageSize:    page.PageSize,
	}
}

func totalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
