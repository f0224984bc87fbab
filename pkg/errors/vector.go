package errors

// IllegalType reports a value of type actual offered to a column of type expected.
func IllegalType(expected, actual string) *Error {
	return Newf(ErrorTypeIllegalType, "cannot store %s in %s column", actual, expected).
		WithDetail("expected", expected).
		WithDetail("actual", actual)
}

// SizeMismatch reports two lengths that must be equal.
func SizeMismatch(want, got int) *Error {
	return Newf(ErrorTypeSizeMismatch, "size mismatch: expected %d, got %d", want, got).
		WithDetail("expected", want).
		WithDetail("actual", got)
}

// OutOfRange reports location i outside [0, size).
func OutOfRange(i, size int) *Error {
	return Newf(ErrorTypeOutOfRange, "location %d out of range [0, %d)", i, size).
		WithDetail("location", i).
		WithDetail("size", size)
}

// NoSuchElement reports a key absent from an index.
func NoSuchElement(key interface{}) *Error {
	return Newf(ErrorTypeNotFound, "no such key: %v", key).WithDetail("key", key)
}

// DuplicateKey reports a key that already exists in an index.
func DuplicateKey(key interface{}) *Error {
	return Newf(ErrorTypeConflict, "duplicate key: %v", key).WithDetail("key", key)
}

// BuilderClosed reports use of a builder after Build.
func BuilderClosed() *Error {
	return New(ErrorTypeState, "builder already built")
}
