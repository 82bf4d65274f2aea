package thtp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/apache/thrift/lib/go/thrift"
)

// Client is the client half of the gateway: a per-service dispatcher
// that turns a declared RPC call into an HTTP round trip through a Pool of
// keep-alive connections, running a middleware Stack around the wire call.
type Client struct {
	descriptor  *ServiceDescriptor
	pool        *Pool
	factory     thrift.TProtocolFactory
	contentType string
	stack       *Stack
}

// NewClient builds a Client from a descriptor, a validated ClientConfig, and
// an optional middleware chain (outermost first). The returned Client owns
// pool and closes it when Close is called.
func NewClient(ctx context.Context, descriptor *ServiceDescriptor, config ClientConfig, middleware ...Middleware) (*Client, error) {
	if descriptor == nil {
		panic("thtp: NewClient descriptor must not be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	pool, err := NewPool(ctx, config)
	if err != nil {
		return nil, err
	}

	contentType := config.contentType()
	factory, _ := ProtocolForContentType(contentType)

	c := &Client{
		descriptor:  descriptor,
		pool:        pool,
		factory:     factory,
		contentType: contentType,
	}
	c.stack = NewStack(c.call)
	c.stack.Use(middleware...)
	return c, nil
}

// Close shuts down the client's connection pool.
func (c *Client) Close() error {
	return c.pool.Close()
}

// Invoke dispatches rpcName with the given positional argument values
// through the middleware stack and returns the decoded reply value (nil for
// void), or an error: either a declared schema exception or a *thtp.Error.
// It's the method callers use directly; the generated per-service client
// wrappers that expose typed methods per RPC are just thin adapters over it.
func (c *Client) Invoke(ctx context.Context, rpcName string, values ...interface{}) (interface{}, error) {
	rpc, ok := c.descriptor.Lookup(rpcName)
	if !ok {
		return nil, NewError(UnknownRpcError, fmt.Sprintf("Unknown RPC %q", rpcName))
	}
	return c.stack.Call(ctx, rpc.Name, values, nil)
}

// call is the terminal Caller at the bottom of the client's middleware
// stack: it performs the actual HTTP round trip.
func (c *Client) call(ctx context.Context, rpcName string, args []interface{}, opts Options) (interface{}, error) {
	rpc, ok := c.descriptor.Lookup(rpcName)
	if !ok {
		return nil, NewError(UnknownRpcError, fmt.Sprintf("Unknown RPC %q", rpcName))
	}

	body, err := SerializeArgs(ctx, c.factory, rpc, args)
	if err != nil {
		return nil, err
	}
	ReportPayloadSize("client", rpcName, c.contentType, len(body))

	conn, err := c.pool.Get(ctx)
	if err != nil {
		return nil, err
	}

	url := c.pool.BaseURL() + "/" + c.descriptor.Name() + "/" + rpcName
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.pool.Release(conn)
		return nil, Wrap(ClientValidationError, err)
	}
	req.Header.Set("Content-Type", c.contentType)

	resp, err := conn.http.Do(req)
	if err != nil {
		// A receive timeout leaves the in-flight round trip in an unknown
		// state on the wire; the conn is dropped rather than released back
		// to the pool so a slow server can't keep handing out a connection
		// every caller immediately times out on again.
		rpcErr := classifyTransportError(rpcName, err)
		if rpcErr.Kind != RpcTimeoutError {
			c.pool.Release(conn)
		}
		return nil, rpcErr
	}
	defer c.pool.Release(conn)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Wrap(DeserializationError, err)
	}

	respFactory, _ := protocolForContentTypeOrDefault(resp.Header.Get("Content-Type"))

	switch resp.StatusCode {
	case http.StatusOK:
		return DeserializeReply(ctx, respFactory, rpc, bytes.NewReader(respBody))
	case http.StatusInternalServerError:
		ex, err := deserializeApplicationException(bytes.NewReader(respBody), respFactory)
		if err != nil {
			return nil, Wrap(DeserializationError, err)
		}
		return nil, errorFromApplicationException(ex)
	default:
		return nil, NewError(UnknownMessageType, fmt.Sprintf("unexpected HTTP status %d", resp.StatusCode))
	}
}

// classifyTransportError maps a transport-level failure from http.Client.Do
// onto the two client-side transport kinds: connection refused
// or connect timeout become ServerUnreachableError, and a receive timeout
// becomes RpcTimeoutError. Anything else is reported as
// ServerUnreachableError too, since from the caller's perspective the
// backend simply could not be reached.
func classifyTransportError(rpcName string, err error) *Error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		if isConnectTimeout(err) {
			return Wrap(ServerUnreachableError, err)
		}
		rpcErr := Wrap(RpcTimeoutError, err)
		rpcErr.Message = fmt.Sprintf("%s(%q)", RpcTimeoutError, rpcName)
		return rpcErr
	}
	return Wrap(ServerUnreachableError, err)
}

// isConnectTimeout reports whether err originated from dialing rather than
// from waiting on a response, by looking for a net.OpError with Op "dial".
func isConnectTimeout(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial"
	}
	return false
}
