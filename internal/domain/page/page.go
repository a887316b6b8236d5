package page

// Request describes the slice of a collection a caller wants.
// Page is 0-based; Size is the requested page length.
type Request struct {
	Page int
	Size int
}

// Offset returns the row offset for this request.
func (r Request) Offset() int {
	return r.Page * r.Size
}

// Page is a single page of results plus the totals needed to walk the
// whole collection. Content holds at most Size elements in the store's
// natural order.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

// New builds a Page from a content slice and the total element count.
// TotalPages is ceil(totalElements/size), and 0 when the collection is empty.
func New[T any](content []T, req Request, totalElements int64) *Page[T] {
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((totalElements + int64(req.Size) - 1) / int64(req.Size))
	}

	if content == nil {
		content = []T{}
	}

	return &Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalPages:    totalPages,
		TotalElements: totalElements,
	}
}

// Map converts a Page[T] into a Page[U] by applying fn to every element.
func Map[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	content := make([]U, len(p.Content))
	for i, item := range p.Content {
		content[i] = fn(item)
	}

	return &Page[U]{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
	}
}
