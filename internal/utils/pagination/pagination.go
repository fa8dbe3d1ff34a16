// Package pagination normalizes limit/offset paging parameters so that all
// repositories apply the same bounds.
package pagination

const (
	// DefaultLimit matches the original history page size.
	DefaultLimit = 10
	// MaxLimit bounds a single history page.
	MaxLimit = 100
)

// Normalize clamps limit and offset to their allowed ranges.
func Normalize(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
