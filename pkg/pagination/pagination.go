package pagination

const (
	// DefaultPerPage is the standard page size when one is not provided.
	DefaultPerPage = 10
	// MaxPerPage caps how many rows any search query can request.
	MaxPerPage = 100
)

// Params holds page pagination inputs from controllers or services.
type Params struct {
	Page    int
	PerPage int
}

// Normalize enforces the configured defaults and maximum page size.
func Normalize(p Params) Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset for the normalized params.
func (p Params) Offset() int {
	n := Normalize(p)
	return (n.Page - 1) * n.PerPage
}

// LimitWithBuffer returns the page size plus one to detect the next page.
func (p Params) LimitWithBuffer() int {
	return Normalize(p).PerPage + 1
}

// Page describes one page of results alongside its paging metadata.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Page    int  `json:"page"`
	PerPage int  `json:"perPage"`
	HasMore bool `json:"hasMore"`
}

// NewPage trims a buffered result set down to the page size and flags overflow.
func NewPage[T any](items []T, params Params) Page[T] {
	n := Normalize(params)
	hasMore := len(items) > n.PerPage
	if hasMore {
		items = items[:n.PerPage]
	}
	return Page[T]{
		Items:   items,
		Page:    n.Page,
		PerPage: n.PerPage,
		HasMore: hasMore,
	}
}
