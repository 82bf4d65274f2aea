package thtp

import (
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// Kind identifies one of the sealed error kinds a request can fail with. See
// the package-level Error type.
type Kind int

// The full set of error kinds. Kinds tagged "server" always produce a status
// 500 ApplicationException body with the given TypeCode; kinds tagged
// "client" never reach the wire, and all of them except UnknownMessageType
// carry no TypeCode.
const (
	// BadRequestError: method is not POST, or path does not match the
	// service route. Server side; TypeCode UNKNOWN_METHOD.
	BadRequestError Kind = iota
	// UnknownRpcError: path matches the service prefix but the RPC name is
	// not declared on the service. Server side; TypeCode WRONG_METHOD_NAME.
	UnknownRpcError
	// BadResponseError: the result struct has no field matching the reply
	// value (encode) or no field was set on decode. Both sides; TypeCode
	// MISSING_RESULT.
	BadResponseError
	// SerializationError: an encode failure. Server side; TypeCode
	// PROTOCOL_ERROR.
	SerializationError
	// DeserializationError: a decode failure (protocol exception or
	// premature EOF). Server side; TypeCode PROTOCOL_ERROR.
	DeserializationError
	// ServerValidationError: the schema's validate() failed on inbound args
	// or outbound result. Server side; TypeCode UNKNOWN.
	ServerValidationError
	// InternalError: any otherwise-unhandled exception raised by a handler.
	// Server side; TypeCode INTERNAL_ERROR.
	InternalError
	// UnknownMessageType: the response status was neither 200 nor 500.
	// Client side; TypeCode INVALID_MESSAGE_TYPE.
	UnknownMessageType
	// ServerUnreachableError: connection refused or connect timeout. Client
	// side; no TypeCode.
	ServerUnreachableError
	// RpcTimeoutError: the per-call receive timeout elapsed. Client side; no
	// TypeCode.
	RpcTimeoutError
	// ClientValidationError: the schema's validate() failed before send, or
	// an argument's type didn't satisfy the args struct. Client side; no
	// TypeCode.
	ClientValidationError
)

func (k Kind) String() string {
	switch k {
	case BadRequestError:
		return "BadRequestError"
	case UnknownRpcError:
		return "UnknownRpcError"
	case BadResponseError:
		return "BadResponseError"
	case SerializationError:
		return "SerializationError"
	case DeserializationError:
		return "DeserializationError"
	case ServerValidationError:
		return "ServerValidationError"
	case InternalError:
		return "InternalError"
	case UnknownMessageType:
		return "UnknownMessageType"
	case ServerUnreachableError:
		return "ServerUnreachableError"
	case RpcTimeoutError:
		return "RpcTimeoutError"
	case ClientValidationError:
		return "ClientValidationError"
	default:
		return "UnknownKind"
	}
}

// typeCode returns the Thrift ApplicationException type code for server-side
// kinds and for UnknownMessageType, and ok=false for the other client-only
// kinds.
func (k Kind) typeCode() (code int32, ok bool) {
	switch k {
	case BadRequestError:
		return thrift.UNKNOWN_METHOD, true
	case UnknownRpcError:
		return thrift.WRONG_METHOD_NAME, true
	case BadResponseError:
		return thrift.MISSING_RESULT, true
	case SerializationError, DeserializationError:
		return thrift.PROTOCOL_ERROR, true
	case ServerValidationError:
		return thrift.UNKNOWN_APPLICATION_EXCEPTION, true
	case InternalError:
		return thrift.INTERNAL_ERROR, true
	case UnknownMessageType:
		return thrift.INVALID_MESSAGE_TYPE_EXCEPTION, true
	default:
		return 0, false
	}
}

// Error is the tagged variant every THTP-originated failure is reported as:
// a Kind plus a human-readable message and, for server-side kinds, a wrapped
// cause suitable for logging.
type Error struct {
	Kind    Kind
	Message string
	// Cause is the underlying error, if any, that produced this Error. It is
	// not part of the wire representation.
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("thtp: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError builds an Error of the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error of the given kind around a causing error, using the
// cause's message as the Error's message.
func Wrap(kind Kind, cause error) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Message: cause.Error(), Cause: cause}
}

// ToApplicationException converts a server-side Error into the wire
// ApplicationException the client will decode. Client-only kinds (those with
// no TypeCode) are reported as UNKNOWN_APPLICATION_EXCEPTION; this should
// never be reachable in practice since those kinds are never returned by the
// server handler.
func (e *Error) ToApplicationException() *thrift.TApplicationException {
	code, ok := e.typeCode()
	if !ok {
		code = thrift.UNKNOWN_APPLICATION_EXCEPTION
	}
	return thrift.NewTApplicationException(code, e.Message)
}

// errorFromApplicationException maps a decoded ApplicationException back
// onto a Kind for the client side, using its TypeCode as a best-effort guide;
// unrecognized codes map to InternalError so the cause isn't lost.
func errorFromApplicationException(ex *thrift.TApplicationException) *Error {
	kind := InternalError
	switch ex.TypeId() {
	case thrift.UNKNOWN_METHOD:
		kind = BadRequestError
	case thrift.WRONG_METHOD_NAME:
		kind = UnknownRpcError
	case thrift.MISSING_RESULT:
		kind = BadResponseError
	case thrift.PROTOCOL_ERROR:
		kind = DeserializationError
	case thrift.INVALID_MESSAGE_TYPE_EXCEPTION:
		kind = UnknownMessageType
	case thrift.INTERNAL_ERROR:
		kind = InternalError
	}
	return &Error{Kind: kind, Message: ex.String(), Cause: ex}
}
