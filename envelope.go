package thtp

import (
	"bytes"
	"context"
	"io"

	"github.com/apache/thrift/lib/go/thrift"
)

// SerializeArgs instantiates rpc's args struct, assigns positional values to
// its fields in declared field order, and serializes it with factory. This is
// the client-side half of the envelope codec.
func SerializeArgs(ctx context.Context, factory thrift.TProtocolFactory, rpc RPCDescriptor, values []interface{}) ([]byte, error) {
	args := rpc.NewArgs()
	if err := args.FromPositional(values); err != nil {
		return nil, Wrap(ClientValidationError, err)
	}

	var buf bytes.Buffer
	transport := thrift.NewStreamTransportW(&buf)
	protocol := factory.GetProtocol(transport)
	if err := args.Write(ctx, protocol); err != nil {
		return nil, Wrap(ClientValidationError, err)
	}
	return buf.Bytes(), nil
}

// DeserializeArgs decodes body into a new instance of rpc's args struct and
// projects its fields out as a positional list in declared field-id order.
// This is the server-side half of the envelope codec.
func DeserializeArgs(ctx context.Context, factory thrift.TProtocolFactory, rpc RPCDescriptor, body io.Reader) ([]interface{}, error) {
	args := rpc.NewArgs()
	transport := thrift.NewStreamTransportR(body)
	protocol := factory.GetProtocol(transport)
	if err := args.Read(ctx, protocol); err != nil {
		return nil, Wrap(DeserializationError, err)
	}
	return args.ToPositional(), nil
}

// SerializeReply wraps reply into rpc's result struct and serializes it.
//
// A nil reply produces an empty (void) result struct. A non-nil reply is
// matched against the result struct's declared fields (success and
// exceptions alike) by runtime type; no match is a BadResponseError.
func SerializeReply(ctx context.Context, factory thrift.TProtocolFactory, rpc RPCDescriptor, reply interface{}) ([]byte, error) {
	result := rpc.NewResult()
	if reply != nil {
		if !result.SetField(reply) {
			return nil, NewError(BadResponseError, "reply value does not match any declared result field")
		}
	}

	var buf bytes.Buffer
	transport := thrift.NewStreamTransportW(&buf)
	protocol := factory.GetProtocol(transport)
	if err := result.Write(ctx, protocol); err != nil {
		return nil, Wrap(SerializationError, err)
	}
	return buf.Bytes(), nil
}

// DeserializeReply decodes body into a new instance of rpc's result struct
// and returns the single outcome it carries: a success value, a declared
// exception (returned as err), or (nil, nil) for a void return.
func DeserializeReply(ctx context.Context, factory thrift.TProtocolFactory, rpc RPCDescriptor, body io.Reader) (interface{}, error) {
	result := rpc.NewResult()
	transport := thrift.NewStreamTransportR(body)
	protocol := factory.GetProtocol(transport)
	if err := result.Read(ctx, protocol); err != nil {
		return nil, Wrap(DeserializationError, err)
	}

	value, exception, isSet := result.Decoded()
	if !isSet {
		if result.HasSuccessField() {
			return nil, NewError(BadResponseError, "result struct declares a success field but none was set")
		}
		return nil, nil
	}
	if exception != nil {
		return nil, exception
	}
	return value, nil
}

// serializeApplicationException serializes a schemaless ApplicationException
// body, used for every
// status-500 EXCEPTION response.
func serializeApplicationException(factory thrift.TProtocolFactory, ex *thrift.TApplicationException) ([]byte, error) {
	var buf bytes.Buffer
	transport := thrift.NewStreamTransportW(&buf)
	protocol := factory.GetProtocol(transport)
	if err := ex.Write(context.Background(), protocol); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// deserializeApplicationException decodes a status-500 EXCEPTION body into
// its ApplicationException, used by the client on the status-500 decode path.
func deserializeApplicationException(body io.Reader, factory thrift.TProtocolFactory) (*thrift.TApplicationException, error) {
	transport := thrift.NewStreamTransportR(body)
	protocol := factory.GetProtocol(transport)
	ex := thrift.NewTApplicationException(0, "")
	if err := ex.Read(context.Background(), protocol); err != nil {
		return nil, err
	}
	return ex, nil
}
