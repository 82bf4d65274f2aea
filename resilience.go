package thtp

import (
	"context"

	retry "github.com/avast/retry-go"

	"github.com/reddit/thtp.go/breakerbp"
	"github.com/reddit/thtp.go/retrybp"
)

// BreakerMiddleware wraps next in a circuit breaker (a failure-ratio
// breaker). Only ServerUnreachableError and RpcTimeoutError results count as
// breaker failures; any other error from next is returned unchanged. Once the
// configured failure ratio is exceeded, calls fail fast with a
// ServerUnreachableError wrapping the breaker's own error instead of reaching
// the wire at all. Placed innermost, closest to the wire call, it makes each
// attempt of an outer RetryMiddleware fail fast while the breaker is open;
// RetryMiddleware still retries those ServerUnreachableErrors.
func BreakerMiddleware(config breakerbp.Config) Middleware {
	breaker := breakerbp.NewFailureRatioBreaker(config)
	return func(next Caller) Caller {
		return func(ctx context.Context, rpcName string, args []interface{}, opts Options) (interface{}, error) {
			var passthrough error
			reply, err := breaker.Execute(func() (interface{}, error) {
				reply, callErr := next(ctx, rpcName, args, opts)
				if callErr != nil && !isRetriable(callErr) {
					// Not a transport failure: the breaker sees a success
					// and the caller gets the error unchanged.
					passthrough = callErr
					return reply, nil
				}
				return reply, callErr
			})
			if passthrough != nil {
				return reply, passthrough
			}
			if err != nil {
				var thtpErr *Error
				if !asError(err, &thtpErr) {
					return reply, Wrap(ServerUnreachableError, err)
				}
			}
			return reply, err
		}
	}
}

// RetryMiddleware wraps next with retrybp.Do, retrying only on
// ServerUnreachableError and RpcTimeoutError: the two client-side transport
// kinds that plausibly succeed on a second attempt. A declared schema
// exception, or any other *Error kind, is never retried since retrying a
// well-formed application-level failure just repeats it.
func RetryMiddleware(retryOptions ...retry.Option) Middleware {
	return func(next Caller) Caller {
		return func(ctx context.Context, rpcName string, args []interface{}, opts Options) (interface{}, error) {
			var reply interface{}
			err := retrybp.Do(ctx, func() error {
				var callErr error
				reply, callErr = next(ctx, rpcName, args, opts)
				return callErr
			}, append(retryOptions, retry.RetryIf(isRetriable))...)
			return reply, err
		}
	}
}

// isRetriable reports whether err is one of the two transient client-side
// transport kinds worth retrying.
func isRetriable(err error) bool {
	var thtpErr *Error
	if !asError(err, &thtpErr) {
		return false
	}
	return thtpErr.Kind == ServerUnreachableError || thtpErr.Kind == RpcTimeoutError
}
