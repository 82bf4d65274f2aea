package clientpool

import (
	"fmt"
)

// ErrExhausted is the error returned by Get when the pool is exhausted.
var ErrExhausted = exhaustedError{}

type exhaustedError struct{}

func (exhaustedError) Error() string {
	return "client pool exhausted"
}

// Retryable implements retrybp.RetryableError. It always returns 1
// (retryable).
func (exhaustedError) Retryable() int {
	return 1
}

// ConfigError is the error type returned when trying to open a new thrift
// client pool, but the configuration values passed in won't work.
type ConfigError struct {
	BestEffortInitialClients int
	RequiredInitialClients   int
	MaxClients               int
}

var _ error = (*ConfigError)(nil)

func (e *ConfigError) Error() string {
	return fmt.Sprintf(
		"clientpool: need requiredInitialClients (%d) <= bestEffortInitialClients (%d) <= maxClients (%d)",
		e.RequiredInitialClients,
		e.BestEffortInitialClients,
		e.MaxClients,
	)
}
