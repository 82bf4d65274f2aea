package thtp

import (
	"errors"
	"net/http"
	"time"

	"github.com/reddit/thtp.go/errorsbp"
)

// Config validation errors.
var (
	ErrConfigMissingHost        = errors.New("thtp: Host cannot be empty")
	ErrConfigMissingServicePath = errors.New("thtp: ServicePath cannot be empty")
	ErrConfigInvalidPoolSize    = errors.New("thtp: PoolSize must be positive")
)

// ClientConfig is the configuration surface for a Client. It's a plain
// struct with yaml tags so it can be embedded directly in a service's
// baseplate-style YAML config; NewClient takes it as a plain value.
type ClientConfig struct {
	// Protocol names the default Thrift protocol: "binary", "compact", or
	// "json". Defaults to "compact" when empty.
	Protocol string `yaml:"protocol"`

	// Host and Port identify the target endpoint.
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// SSL selects https:// over http:// for the base URL.
	SSL bool `yaml:"ssl"`

	// ServicePath is the dotted-lowercase canonical service path, e.g.
	// "thtp.test.calculator_service". Validate requires it to be non-empty;
	// request URLs take the service path from the ServiceDescriptor's Name,
	// not from this field.
	ServicePath string `yaml:"servicePath"`

	// OpenTimeout is the connect timeout.
	OpenTimeout time.Duration `yaml:"openTimeout"`
	// RPCTimeout is the per-call receive timeout.
	RPCTimeout time.Duration `yaml:"rpcTimeout"`
	// KeepAlive is the idle connection lifetime before transparent reconnect.
	KeepAlive time.Duration `yaml:"keepAlive"`

	// PoolSize is the maximum number of concurrent connections.
	PoolSize int `yaml:"poolSize"`
	// PoolTimeout is the pool-checkout timeout.
	PoolTimeout time.Duration `yaml:"poolTimeout"`
}

// Validate checks the configuration for the errors that would otherwise
// surface confusingly later (an empty host silently resolving to localhost,
// a zero pool size wedging every call).
func (c ClientConfig) Validate() error {
	if c.Host == "" {
		return ErrConfigMissingHost
	}
	if c.ServicePath == "" {
		return ErrConfigMissingServicePath
	}
	if c.PoolSize <= 0 {
		return ErrConfigInvalidPoolSize
	}
	return nil
}

// contentType resolves Protocol to its canonical Content-Type string,
// defaulting to Compact when unset or unrecognized.
func (c ClientConfig) contentType() string {
	if ct := ContentTypeForName(c.Protocol); ct != "" {
		return ct
	}
	return CompactContentType
}

// ServerConfig is the configuration surface for a Server: a service
// descriptor, one or more handler objects, and optional middleware and
// subscriber lists.
type ServerConfig struct {
	// Descriptor is the service's RPC table.
	Descriptor *ServiceDescriptor

	// Handlers are searched in order for the first one willing to handle a
	// given RPC name. A handler object's willingness is
	// determined by the generated RPCDescriptor.Invoke closures, which type-
	// assert the handler to the real handler interface and fail if it
	// doesn't implement it; Handlers here is the ordered list of candidate
	// objects passed to those closures.
	Handlers []interface{}

	// Middleware is the server-side middleware chain, outermost first.
	Middleware []Middleware

	// Subscribers receive lifecycle events in registration order.
	Subscribers []Subscriber

	// Fallback, if set, receives requests whose path doesn't match this
	// service's route prefix, instead of a BadRequestError response
	// (middleware mode).
	Fallback http.Handler

	// ErrorSuppressor decides which internal (non-schema) errors are
	// "expected" and shouldn't be logged at error level. A nil Suppressor
	// suppresses nothing: every internal error gets logged.
	ErrorSuppressor errorsbp.Suppressor
}
