package gopaginate

// Page is a single page of a paginated result set.
type Page[T any] struct {
	// Entries result elements, at most PageSize of them.
	Entries []T `json:"entries"`
	// PageNumber one-based number of this page.
	PageNumber int `json:"pageNumber"`
	// PageSize effective page size used for the query.
	PageSize int `json:"pageSize"`
	// TotalEntries number of distinct entities matched by the query.
	TotalEntries int64 `json:"totalEntries"`
	// TotalPages number of pages for TotalEntries and PageSize.
	TotalPages int `json:"totalPages"`
}

func newPage[T any](entries []T, totalEntries int64, cfg Config) *Page[T] {
	if entries == nil {
		entries = make([]T, 0)
	}

	return &Page[T]{
		Entries:      entries,
		PageNumber:   cfg.PageNumber,
		PageSize:     cfg.PageSize,
		TotalEntries: totalEntries,
		TotalPages:   TotalPages(totalEntries, cfg.PageSize),
	}
}

// TotalPages returns ceil(totalEntries / pageSize). The ceiling is sign aware,
// so negative totals round toward positive infinity as well. A non-positive
// pageSize yields 0.
func TotalPages(totalEntries int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}

	size := int64(pageSize)
	pages := totalEntries / size
	if totalEntries%size != 0 && totalEntries > 0 {
		pages++
	}

	return int(pages)
}

// HasNext returns true if a page follows this one.
func (p *Page[T]) HasNext() bool {
	return p != nil && p.PageNumber < p.TotalPages
}

// HasPrevious returns true if a non-empty page precedes this one.
func (p *Page[T]) HasPrevious() bool {
	return p != nil && p.PageNumber > 1 && p.TotalPages > 0
}

// IsLast returns true if no page follows this one.
func (p *Page[T]) IsLast() bool {
	return !p.HasNext()
}
