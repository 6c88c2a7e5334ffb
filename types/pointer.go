package types

// ToPointer is a helper function that returns a pointer to a value of any type.
func ToPointer[T any](v T) *T {
	return &v
}

// ToValue returns the value pointed to by v, or the zero value for nil.
func ToValue[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}
