package shared

// PageRequest describes the slice of a result set a caller wants.
// Number is 0-based. SortBy names a repository-recognized column; when
// empty or unrecognized the repository sorts by creation time. Descending
// is honored in every case.
type PageRequest struct {
	Number     int
	Size       int
	SortBy     string
	Descending bool
}

// Offset returns the row offset for this page.
func (p PageRequest) Offset() int {
	return p.Number * p.Size
}

// Page is a bounded slice of an ordered result set plus position metadata.
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int64
	TotalPages    int
}

// NewPage assembles a page, deriving TotalPages from the total count.
func NewPage[T any](content []T, req PageRequest, totalElements int64) Page[T] {
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((totalElements + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:       content,
		Number:        req.Number,
		Size:          req.Size,
		TotalElements: totalElements,
		TotalPages:    totalPages,
	}
}
