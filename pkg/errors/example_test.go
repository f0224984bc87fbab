// Package errors provides examples of structured error handling in serieskit.
package errors_test

import (
	"fmt"
	"io"

	"github.com/ajitpratap0/serieskit/pkg/errors"
)

// Example demonstrates basic error creation and details.
func Example() {
	err := errors.New(errors.ErrorTypeValidation, "missing token must not be empty").
		WithDetail("field", "missing_token")

	fmt.Println(err.Error())

	// Output:
	// validation: missing token must not be empty
}

// ExampleWrap shows how to wrap existing errors with context.
func ExampleWrap() {
	err := errors.Wrap(io.ErrUnexpectedEOF, errors.ErrorTypeIO, "failed to read entry").
		WithDetail("line", 42)

	if errors.IsType(err, errors.ErrorTypeIO) {
		fmt.Println("This is an io error")
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		fmt.Println("Cause is preserved")
	}

	// Output:
	// This is an io error
	// Cause is preserved
}

// ExampleIllegalType demonstrates the column type error and its details.
func ExampleIllegalType() {
	err := errors.IllegalType("double", "string")
	fmt.Println(err)
	expected, _ := err.Detail("expected")
	fmt.Println(expected)

	// Output:
	// illegal_type: cannot store string in double column
	// double
}
