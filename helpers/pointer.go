package helpers

// Ptr returns a pointer whose value is v.
func Ptr[T any](v T) *T {
	return &v
}
