// Package thtp implements a Thrift-RPC-over-HTTP gateway: a symmetric
// client/server pair that carries Apache Thrift request/response structs as
// HTTP/1.1 POST bodies.
//
// It exists to give Thrift-RPC the ergonomics of HTTP (routing, headers,
// status codes, L7 proxies, curl) while preserving the exact semantics of
// Thrift-RPC: the schema-defined args/result envelope, schema-defined
// exceptions as first-class replies, and an out-of-band application-exception
// channel for unexpected failures.
//
// The package assumes the Thrift schema compiler and the generated
// struct/service code are available; ServiceDescriptor is how that generated
// code is plugged in (see descriptor.go). It does not provide an HTTP server
// runtime, metric sinks, loggers, or exception trackers directly: those are
// invoked through the Middleware chain and the pub/sub Bus.
package thtp
