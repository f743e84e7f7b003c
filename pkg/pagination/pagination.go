package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many rows any listing can request.
	MaxLimit = 500
)

// Params holds offset pagination inputs from controllers. The stores are
// immutable in-memory snapshots, so plain offsets are stable.
type Params struct {
	Limit  int
	Offset int
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Page describes the slice of a listing that was returned.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// Slice returns the window [offset, offset+limit) over a total of n items.
func Slice(n int, p Params) (start, end int, page Page) {
	limit := NormalizeLimit(p.Limit)
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end = offset + limit
	if end > n {
		end = n
	}
	return offset, end, Page{Limit: limit, Offset: offset, Total: n}
}
