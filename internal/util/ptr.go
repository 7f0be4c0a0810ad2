package util

// Ptr returns a pointer to v, for optional fields and test literals.
func Ptr[T any](v T) *T {
	return &v
}

// Value dereferences p, or returns fallback when p is nil.
func Value[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
