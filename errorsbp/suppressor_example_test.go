package errorsbp_test

import (
	"errors"

	"github.com/reddit/thtp.go/errorsbp"
	"github.com/reddit/thtp.go/internal/calculatorservice"
)

type myApplicationError struct{}

func (*myApplicationError) Error() string {
	return "my application error"
}

func MyApplicationErrorSuppressor(err error) bool {
	return errors.As(err, new(*myApplicationError))
}

// DivideByZeroSuppressor suppresses calculatorservice's declared
// DivideByZero exception: it's an expected, schema-declared outcome, not a
// failure worth logging at error level.
func DivideByZeroSuppressor(err error) bool {
	return errors.As(err, new(*calculatorservice.DivideByZero))
}

// This example demonstrates how to implement a Suppressor.
func ExampleSuppressor() {
	// This constructs the Suppressor you could fill into
	// ServerConfig.ErrorSuppressor.
	errorsbp.OrSuppressors(DivideByZeroSuppressor, MyApplicationErrorSuppressor)
}
