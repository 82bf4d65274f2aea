package thtp

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/reddit/thtp.go/errorsbp"
	"github.com/reddit/thtp.go/log"
	"github.com/reddit/thtp.go/timebp"
)

var rpcNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// isHealthCheck reports whether r is a GET against the auxiliary health
// route (/health or /health/), which every Server answers directly rather
// than routing through the service's RPC table.
func isHealthCheck(r *http.Request) bool {
	return r.Method == http.MethodGet && (r.URL.Path == "/health" || r.URL.Path == "/health/")
}

// Server implements the server half of the gateway: an http.Handler
// that routes POST /<service_path>/<rpc_name>[/] requests to a handler
// object, running the configured middleware chain and publishing exactly
// one lifecycle event per request.
//
// Server deliberately does not own an HTTP listener: per the core's scope,
// the HTTP server runtime is an external collaborator. Server is just
// plugged into whatever *http.Server (or mux) the caller already runs.
type Server struct {
	descriptor      *ServiceDescriptor
	handlers        []interface{}
	stack           *Stack
	bus             *Bus
	fallback        http.Handler
	routePath       string
	errorSuppressor errorsbp.Suppressor
}

// NewServer builds a Server from config. It panics if config.Descriptor is
// nil, since a server with no RPC table can never serve anything: that's a
// wiring bug, not a runtime condition.
func NewServer(config ServerConfig) *Server {
	if config.Descriptor == nil {
		panic("thtp: ServerConfig.Descriptor must not be nil")
	}

	s := &Server{
		descriptor:      config.Descriptor,
		handlers:        config.Handlers,
		fallback:        config.Fallback,
		routePath:       "/" + config.Descriptor.Name() + "/",
		errorSuppressor: config.ErrorSuppressor,
	}
	s.stack = NewStack(s.dispatch)
	s.stack.Use(config.Middleware...)

	s.bus = NewBus(func(recovered interface{}) {
		log.Errorw("thtp: lifecycle subscriber panicked", "panic", recovered)
	})
	for _, sub := range config.Subscribers {
		s.bus.Subscribe(sub)
	}

	return s
}

// ServeHTTP implements http.Handler. It runs routing, decode, dispatch, and encode exactly once
// per request and is safe to call concurrently, as required of the server
// side by the concurrency model.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if isHealthCheck(r) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Everything is OK"))
		return
	}

	if !strings.HasPrefix(r.URL.Path, s.routePath) {
		if s.fallback != nil {
			s.fallback.ServeHTTP(w, r)
			return
		}
	}

	start := time.Now()
	event := Event{Request: r, Timestamp: timebp.TimestampMillisecond(start)}
	contentType, status, body := s.handle(r, &event)
	event.Elapsed = time.Since(start)

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	w.Write(body)

	s.bus.Publish(event)
}

// handle runs the request through routing, decoding, dispatch, and encoding, filling event in along the way, and returns the
// response content-type, status, and body to write. It always returns
// exactly one outcome, even on failure between steps.
func (s *Server) handle(r *http.Request, event *Event) (contentType string, status int, body []byte) {
	factory, contentType := protocolForContentTypeOrDefault(r.Header.Get("Content-Type"))

	rpcName, matched := s.matchRoute(r)
	if !matched {
		appErr := NewError(BadRequestError, fmt.Sprintf("%s %s is not a valid THTP route", r.Method, r.URL.Path))
		event.Name, event.Err = EventRPCError, appErr
		return s.errorResponse(factory, contentType, appErr)
	}
	event.RPCName = rpcName

	if r.Method != http.MethodPost {
		appErr := NewError(BadRequestError, fmt.Sprintf("method %s not allowed, expected POST", r.Method))
		event.Name, event.Err = EventRPCError, appErr
		return s.errorResponse(factory, contentType, appErr)
	}

	rpc, ok := s.descriptor.Lookup(rpcName)
	if !ok {
		appErr := NewError(UnknownRpcError, fmt.Sprintf("Unknown RPC %q", rpcName))
		event.Name, event.Err = EventRPCError, appErr
		return s.errorResponse(factory, contentType, appErr)
	}

	args, err := DeserializeArgs(r.Context(), factory, rpc, r.Body)
	if err != nil {
		event.Name, event.Err = EventRPCError, err
		return s.errorResponse(factory, contentType, err)
	}
	event.Args = args

	reply, callErr := s.stack.Call(r.Context(), rpcName, args, nil)
	return s.encodeOutcome(r.Context(), factory, contentType, rpc, event, reply, callErr)
}

// dispatch is the terminal Caller at the bottom of the server's middleware
// stack: it looks up the first handler object willing to handle rpcName and
// invokes it.
func (s *Server) dispatch(ctx context.Context, rpcName string, args []interface{}, opts Options) (interface{}, error) {
	rpc, ok := s.descriptor.Lookup(rpcName)
	if !ok {
		return nil, NewError(UnknownRpcError, fmt.Sprintf("Unknown RPC %q", rpcName))
	}

	for _, handler := range s.handlers {
		reply, err := s.invokeSafely(ctx, rpc, handler, args)
		if err == ErrHandlerNotApplicable {
			continue
		}
		return reply, err
	}
	return nil, NewError(InternalError, fmt.Sprintf("no registered handler implements RPC %q", rpcName))
}

// ErrHandlerNotApplicable is the sentinel a generated RPCDescriptor.Invoke
// closure returns (unwrapped) when the handler object passed in doesn't
// implement the interface this RPC needs, so dispatch falls through to the
// next registered handler object. Generated descriptor code lives outside
// this package, so the sentinel has to be exported for it to return.
var ErrHandlerNotApplicable = fmt.Errorf("thtp: handler does not implement this RPC")

// invokeSafely calls rpc.Invoke, recovering a handler panic and converting it
// to an InternalError instead of taking down the request
// goroutine.
func (s *Server) invokeSafely(ctx context.Context, rpc RPCDescriptor, handler interface{}, args []interface{}) (reply interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewError(InternalError, fmt.Sprintf("Internal error (%T): %v", r, r))
		}
	}()
	return rpc.Invoke(ctx, handler, args)
}

// matchRoute requires a POST-shaped path
// ^/<service_path>/<rpc_name>/?$ and a well-formed RPC name token. The method
// check itself happens in handle so a wrong-verb request on an otherwise
// valid path still resolves an rpcName for the lifecycle event where
// possible; here we only care whether the path matches.
func (s *Server) matchRoute(r *http.Request) (rpcName string, ok bool) {
	path := r.URL.Path
	if !strings.HasPrefix(path, s.routePath) {
		return "", false
	}
	rest := strings.TrimPrefix(path, s.routePath)
	rest = strings.TrimSuffix(rest, "/")
	if rest == "" || !rpcNamePattern.MatchString(rest) {
		return "", false
	}
	return rest, true
}

// errorResponse serializes a server Error as a
// schemaless ApplicationException body with status 500.
func (s *Server) errorResponse(factory thrift.TProtocolFactory, contentType string, err error) (string, int, []byte) {
	thtpErr, ok := err.(*Error)
	if !ok {
		thtpErr = Wrap(InternalError, err)
	}

	body, encodeErr := serializeApplicationException(factory, thtpErr.ToApplicationException())
	if encodeErr != nil {
		// Serializing an ApplicationException itself failed; there is
		// nothing left to negotiate, fall back to a bare 500 with no body
		// rather than risk an infinite encode loop.
		return contentType, http.StatusInternalServerError, nil
	}
	return contentType, http.StatusInternalServerError, body
}

// encodeOutcome encodes a reply that made it through
// the middleware stack: a non-error reply (possibly nil for void) is
// serialized as a REPLY; a schema-declared exception is also serialized as a
// REPLY with its field set; any other error becomes an EXCEPTION body.
func (s *Server) encodeOutcome(ctx context.Context, factory thrift.TProtocolFactory, contentType string, rpc RPCDescriptor, event *Event, reply interface{}, callErr error) (string, int, []byte) {
	if callErr == nil {
		body, err := SerializeReply(ctx, factory, rpc, reply)
		if err != nil {
			event.Name, event.Err = EventRPCError, err
			return s.errorResponse(factory, contentType, err)
		}
		event.Name, event.Result = EventRPCSuccess, reply
		return contentType, http.StatusOK, body
	}

	if exc, ok := asDeclaredException(rpc, callErr); ok {
		body, err := SerializeReply(ctx, factory, rpc, exc)
		if err != nil {
			event.Name, event.Err = EventRPCError, err
			return s.errorResponse(factory, contentType, err)
		}
		event.Name, event.Err = EventRPCException, callErr
		return contentType, http.StatusOK, body
	}

	thtpErr, ok := callErr.(*Error)
	if !ok {
		thtpErr = Wrap(InternalError, fmt.Errorf("Internal error (%T): %w", callErr, callErr))
	}

	// Classify by Kind, not by whether callErr already arrived as a *Error:
	// a recovered handler panic and an explicit NewError(InternalError, ...)
	// both surface as *Error, and both are still the canonical internal-error
	// case, not an ordinary RPC error.
	if thtpErr.Kind == InternalError {
		event.Name, event.Err = EventInternalError, callErr
		if !s.errorSuppressor.Suppress(callErr) {
			log.Errorw("thtp: unhandled internal error", "rpc", rpc.Name, "err", callErr)
		}
		return s.errorResponse(factory, contentType, thtpErr)
	}
	event.Name, event.Err = EventRPCError, thtpErr
	return s.errorResponse(factory, contentType, thtpErr)
}

// asDeclaredException reports whether err is one of rpc's declared schema
// exceptions, by attempting to set it on a scratch result struct via the
// same polymorphic field resolution the codec itself uses.
func asDeclaredException(rpc RPCDescriptor, err error) (interface{}, bool) {
	scratch := rpc.NewResult()
	if scratch.SetField(err) {
		return err, true
	}
	return nil, false
}
