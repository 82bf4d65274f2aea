package thtp

import (
	"context"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/reddit/thtp.go/set"
)

// Args is implemented by compiler-generated `<RPC>_args` wrapper structs.
//
// There is no reflection involved in using it: generated code (or, in this
// repo's tests, hand-written stand-ins for generated code) implements
// FromPositional/ToPositional directly against the struct's known fields.
type Args interface {
	thrift.TStruct

	// FromPositional assigns values to the struct's fields in declared
	// field-id order. It returns a ClientValidationError if a value's type
	// doesn't satisfy the corresponding field.
	FromPositional(values []interface{}) error

	// ToPositional projects the struct's current field values out as a
	// positional list in declared field-id order.
	ToPositional() []interface{}
}

// Result is implemented by compiler-generated `<RPC>_result` wrapper structs.
//
// At most one field of a Result is ever set: the distinguished success field
// (absent entirely for void RPCs) or one declared exception field. This
// mirrors the tagged-variant view described for result structs: {success(T) |
// exception_1(E1) | ... | exception_n(En) | void}.
type Result interface {
	thrift.TStruct

	// HasSuccessField reports whether this result declares a success field.
	// False for results of void RPCs.
	HasSuccessField() bool

	// SetField sets whichever declared field (success or a schema exception)
	// has a type matching v's runtime type, and reports whether one matched.
	// The success field participates in this search on equal footing with
	// the exception fields.
	SetField(v interface{}) bool

	// Decoded reports the single field read off the wire, if any: (value,
	// nil, true) for success, (nil, exception, true) for a declared
	// exception, (nil, nil, false) when no field was set (void return).
	Decoded() (value interface{}, exception error, isSet bool)
}

// Handler is the interface a per-RPC dispatch table entry uses to invoke an
// application handler object with its decoded positional arguments.
//
// Generated descriptor code supplies one of these per RPC; it type-asserts
// the opaque handler parameter to the service's real handler interface, so
// thtp itself never needs to know the handler interface's shape.
type Handler func(ctx context.Context, handler interface{}, args []interface{}) (interface{}, error)

// RPCDescriptor is one entry of a ServiceDescriptor's dispatch table: the
// schema information needed to decode a call's arguments, invoke it, and
// encode its reply, without any runtime reflection.
type RPCDescriptor struct {
	// Name is the RPC's name as it appears in the schema and the URL path.
	Name string

	// NewArgs constructs a new, zero-valued args struct for this RPC.
	NewArgs func() Args

	// NewResult constructs a new, zero-valued result struct for this RPC.
	NewResult func() Result

	// Invoke calls the handler object with the decoded positional args.
	Invoke Handler
}

// ServiceDescriptor describes a logical RPC service: its canonical dotted
// lowercase name (used as the URL path prefix) and its ordered set of RPCs.
//
// Descriptors are process-wide, immutable, and built once at startup from
// generated schema code; ServiceDescriptor itself never mutates after
// construction.
type ServiceDescriptor struct {
	name  string
	order []string
	names set.String
	rpcs  map[string]RPCDescriptor
}

// NewServiceDescriptor builds a ServiceDescriptor for the named service
// (e.g. "thtp.test.calculator_service") from its ordered list of RPCs.
//
// It panics on a duplicate RPC name; this is a startup-time wiring bug, not a
// runtime condition callers need to recover from.
func NewServiceDescriptor(name string, rpcs ...RPCDescriptor) *ServiceDescriptor {
	d := &ServiceDescriptor{
		name:  name,
		order: make([]string, 0, len(rpcs)),
		names: make(set.String, len(rpcs)),
		rpcs:  make(map[string]RPCDescriptor, len(rpcs)),
	}
	for _, rpc := range rpcs {
		if d.names.Contains(rpc.Name) {
			panic(fmt.Sprintf("thtp: duplicate RPC name %q registered on service %q", rpc.Name, name))
		}
		d.names.Add(rpc.Name)
		d.order = append(d.order, rpc.Name)
		d.rpcs[rpc.Name] = rpc
	}
	return d
}

// Name returns the service's canonical dotted-lowercase path.
func (d *ServiceDescriptor) Name() string {
	return d.name
}

// RPCNames returns the RPC names in declaration order.
func (d *ServiceDescriptor) RPCNames() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Lookup returns the descriptor for the named RPC, or false if this service
// does not declare it.
func (d *ServiceDescriptor) Lookup(name string) (RPCDescriptor, bool) {
	rpc, ok := d.rpcs[name]
	return rpc, ok
}
