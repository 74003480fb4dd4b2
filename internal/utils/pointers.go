package utils

// Ptr returns a pointer to v. Used to build PATCH requests whose optional
// fields are pointer-typed.
func Ptr[T any](v T) *T {
	return &v
}

// Value dereferences v, returning the zero value for a nil pointer.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}
