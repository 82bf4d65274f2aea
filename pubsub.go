package thtp

import (
	"net/http"
	"time"

	"github.com/reddit/thtp.go/timebp"
)

// EventName identifies one of the four lifecycle events the server bus
// delivers, exactly one per handled request.
type EventName string

// The full set of lifecycle events a server publishes, one per handled request.
const (
	// EventRPCSuccess is published when a handler returned a value (or void)
	// without raising.
	EventRPCSuccess EventName = "rpc_success"
	// EventRPCException is published when a handler raised a schema-declared
	// exception, routed into the result envelope.
	EventRPCException EventName = "rpc_exception"
	// EventRPCError is published for any non-schema server error: unknown
	// RPC, bad request, serialization failures, or validation failures.
	EventRPCError EventName = "rpc_error"
	// EventInternalError is published when a handler raised an
	// otherwise-unhandled, non-Thrift exception.
	EventInternalError EventName = "internal_error"
)

// Event is the payload delivered to subscribers for one handled request.
type Event struct {
	Name EventName

	// Timestamp is when the request started, encoded the way a subscriber
	// shipping events to a JSON log or metrics sink would want to serialize
	// it: milliseconds since epoch.
	Timestamp timebp.TimestampMillisecond

	// Request is the original *http.Request.
	Request *http.Request

	// RPCName is the matched RPC name, if routing got that far.
	RPCName string

	// Args is the decoded positional argument list, if the codec got that
	// far.
	Args []interface{}

	// Result is the handler's return value, for EventRPCSuccess. Nil
	// otherwise (and nil for void success too).
	Result interface{}

	// Err is the schema-declared exception (EventRPCException), the server
	// Error (EventRPCError), or, for EventInternalError, the error the handler
	// returned; a recovered panic arrives here as the InternalError built from
	// it.
	Err error

	// Elapsed is the wall-clock duration of the request, measured with a
	// monotonic clock (time.Since off of a time.Now() taken at the start of
	// the request).
	Elapsed time.Duration
}

// Subscriber receives lifecycle event callbacks. A subscriber that doesn't
// care about a given event name should simply return without doing anything;
// there is no separate "does this subscriber care" query, since a subscriber
// not interested in an event is indistinguishable from a fast no-op.
type Subscriber interface {
	Handle(event Event)
}

// SubscriberFunc adapts a plain function to a Subscriber.
type SubscriberFunc func(event Event)

// Handle implements Subscriber.
func (f SubscriberFunc) Handle(event Event) { f(event) }

// Bus is a synchronous, ordered, best-effort pub/sub bus of lifecycle events.
// Subscribers are added before first publish; the list seals at first
// Publish call, mirroring the middleware Stack's freeze-after-first-use
// contract shared with the middleware Stack.
//
// A subscriber that panics is recovered and swallowed: this is documented
// behavior, not a bug, but it does stop delivery to subscribers later in the
// list for that one Publish call. onPanic, if set, is given a chance to
// observe the panic (thtp's server uses this to log it, since there's no
// caller to return the failure to).
type Bus struct {
	subscribers []Subscriber
	used        bool
	onPanic     func(recovered interface{})
}

// NewBus builds an empty Bus. onPanic may be nil.
func NewBus(onPanic func(recovered interface{})) *Bus {
	return &Bus{onPanic: onPanic}
}

// Subscribe registers a subscriber. It panics if the bus has already
// published at least one event.
func (b *Bus) Subscribe(subscriber Subscriber) {
	if b.used {
		panic("thtp: Bus.Subscribe called after the bus has already published; subscribers must be registered before first publish")
	}
	b.subscribers = append(b.subscribers, subscriber)
}

// Publish delivers event to every subscriber in subscription order,
// synchronously. A subscriber whose Handle panics has that panic recovered
// and reported via onPanic; delivery stops there for this Publish call — it
// does not continue on to subscribers registered after the one that panicked.
func (b *Bus) Publish(event Event) {
	b.used = true
	for _, subscriber := range b.subscribers {
		if b.deliver(subscriber, event) {
			return
		}
	}
}

// deliver invokes one subscriber, recovering a panic and reporting true
// (stop delivery) if one occurred.
func (b *Bus) deliver(subscriber Subscriber, event Event) (stopped bool) {
	defer func() {
		if r := recover(); r != nil {
			stopped = true
			if b.onPanic != nil {
				b.onPanic(r)
			}
		}
	}()
	subscriber.Handle(event)
	return false
}
