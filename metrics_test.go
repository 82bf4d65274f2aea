package thtp

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/reddit/thtp.go/prometheusbp/promtest"
)

func TestPrometheusMiddlewareRecordsSuccess(t *testing.T) {
	labels := prometheus.Labels{
		sideLabel:      "server",
		methodLabel:    "do_operation",
		successLabel:   "true",
		exceptionLabel: "",
	}
	requestsMetric := promtest.NewPrometheusMetricTest(t, "thtp_requests_total", requestsTotal, labels)
	latencyMetric := promtest.NewPrometheusMetricTest(t, "thtp_request_latency_seconds", requestLatency, prometheus.Labels{
		sideLabel:    "server",
		methodLabel:  "do_operation",
		successLabel: "true",
	})

	mw := PrometheusMiddleware("server")
	caller := mw(func(ctx context.Context, rpcName string, args []interface{}, opts Options) (interface{}, error) {
		return int32(4), nil
	})

	reply, err := caller(context.Background(), "do_operation", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.(int32) != 4 {
		t.Fatalf("unexpected reply: %v", reply)
	}

	requestsMetric.CheckDelta(1)
	latencyMetric.CheckSampleCountDelta(1)
}

func TestPrometheusMiddlewareRecordsSchemaException(t *testing.T) {
	labels := prometheus.Labels{
		sideLabel:      "server",
		methodLabel:    "do_operation",
		successLabel:   "false",
		exceptionLabel: "schema_exception",
	}
	requestsMetric := promtest.NewPrometheusMetricTest(t, "thtp_requests_total", requestsTotal, labels)

	mw := PrometheusMiddleware("server")
	caller := mw(func(ctx context.Context, rpcName string, args []interface{}, opts Options) (interface{}, error) {
		return nil, errors.New("divide by zero")
	})

	if _, err := caller(context.Background(), "do_operation", nil, nil); err == nil {
		t.Fatal("expected error")
	}

	requestsMetric.CheckDelta(1)
}

func TestPrometheusMiddlewareRecordsDeclaredErrorKind(t *testing.T) {
	labels := prometheus.Labels{
		sideLabel:      "client",
		methodLabel:    "do_operation",
		successLabel:   "false",
		exceptionLabel: ServerUnreachableError.String(),
	}
	requestsMetric := promtest.NewPrometheusMetricTest(t, "thtp_requests_total", requestsTotal, labels)

	mw := PrometheusMiddleware("client")
	caller := mw(func(ctx context.Context, rpcName string, args []interface{}, opts Options) (interface{}, error) {
		return nil, NewError(ServerUnreachableError, "connection refused")
	})

	if _, err := caller(context.Background(), "do_operation", nil, nil); err == nil {
		t.Fatal("expected error")
	}

	requestsMetric.CheckDelta(1)
}

func TestReportPayloadSizeRecordsHistogram(t *testing.T) {
	metric := promtest.NewPrometheusMetricTest(t, "thtp_payload_size_bytes", payloadSize, prometheus.Labels{
		sideLabel:     "client",
		methodLabel:   "do_operation",
		protocolLabel: CompactContentType,
	})

	ReportPayloadSize("client", "do_operation", CompactContentType, 128)

	metric.CheckSampleCountDelta(1)
}

func TestSetBreakerClosedGauge(t *testing.T) {
	SetBreakerClosed(false)
	if got := testutil.ToFloat64(breakerClosed); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	SetBreakerClosed(true)
	if got := testutil.ToFloat64(breakerClosed); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
}
