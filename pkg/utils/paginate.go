package utils

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ClampLimitOffset normalizes raw pagination params into safe values.
func ClampLimitOffset(limit, offset int) (int, int) {
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
