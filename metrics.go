package thtp

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/reddit/thtp.go/prometheusbp"
)

const (
	methodLabel    = "thtp_rpc"
	successLabel   = "thtp_success"
	exceptionLabel = "thtp_error_kind"
	protocolLabel  = "thtp_protocol"
	sideLabel      = "thtp_side" // "client" or "server"
)

var (
	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "thtp_request_latency_seconds",
		Help:    "RPC round-trip latency as observed by the client or server middleware",
		Buckets: prometheusbp.DefaultBuckets,
	}, []string{sideLabel, methodLabel, successLabel})

	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thtp_requests_total",
		Help: "Total RPC request count, broken down by outcome",
	}, []string{sideLabel, methodLabel, successLabel, exceptionLabel})

	payloadSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "thtp_payload_size_bytes",
		Help:    "Size in bytes of serialized args/result bodies",
		Buckets: prometheus.ExponentialBuckets(64, 4, 8), // 64B .. 1MiB
	}, []string{sideLabel, methodLabel, protocolLabel})

	poolActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "thtp_pool_active_connections",
		Help: "Number of connections currently checked out of the client pool",
	})

	poolAllocatedConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "thtp_pool_allocated_connections",
		Help: "Number of idle connections currently held by the client pool",
	})

	breakerClosed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "thtp_circuit_breaker_closed",
		Help: "1 if the client's circuit breaker is closed (requests flowing), 0 otherwise",
	})
)

// errorKindLabel returns the error-kind label value for a request outcome: a
// declared schema exception reports "schema_exception"; a *thtp.Error reports
// its Kind; success (nil err) reports "".
func errorKindLabel(err error) string {
	if err == nil {
		return ""
	}
	var thtpErr *Error
	if ok := asError(err, &thtpErr); ok {
		return thtpErr.Kind.String()
	}
	return "schema_exception"
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func successLabelValue(err error) string {
	if err == nil {
		return "true"
	}
	return "false"
}

// PrometheusMiddleware returns a Middleware recording request counts and a
// latency histogram, labeled by whether it runs on the "client" or "server"
// side. NewServer and NewClient do not install it; it runs only where it is
// added to a middleware stack.
func PrometheusMiddleware(side string) Middleware {
	return func(next Caller) Caller {
		return func(ctx context.Context, rpcName string, args []interface{}, opts Options) (interface{}, error) {
			start := time.Now()
			reply, err := next(ctx, rpcName, args, opts)
			elapsed := time.Since(start).Seconds()

			success := successLabelValue(err)
			requestLatency.WithLabelValues(side, rpcName, success).Observe(elapsed)
			requestsTotal.WithLabelValues(side, rpcName, success, errorKindLabel(err)).Inc()
			return reply, err
		}
	}
}

// ReportPayloadSize records the serialized size of an args or result body.
// HTTP request/response bodies are already fully buffered before the codec
// runs, so the byte count is just len(body); there's no streaming
// transport to instrument separately.
func ReportPayloadSize(side, rpcName, contentType string, size int) {
	payloadSize.WithLabelValues(side, rpcName, contentType).Observe(float64(size))
}

// SetPoolGauges updates the pool size gauges with counts such as those
// Pool.Stats reports. Nothing in this package calls it.
func SetPoolGauges(active, allocated int32) {
	poolActiveConnections.Set(float64(active))
	poolAllocatedConnections.Set(float64(allocated))
}

// SetBreakerClosed updates the circuit breaker gauge. Its signature fits
// breakerbp.Config.OnStateChange.
func SetBreakerClosed(closed bool) {
	if closed {
		breakerClosed.Set(1)
	} else {
		breakerClosed.Set(0)
	}
}
