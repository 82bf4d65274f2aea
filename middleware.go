package thtp

import (
	"context"
	"sync"
)

// Options is the free-form side channel middleware use to coordinate with
// each other — e.g. a validation middleware attaching metadata another
// middleware later in the chain reads back out. The terminal dispatcher
// ignores it entirely.
type Options map[string]interface{}

// Caller is the single operation every middleware wraps: invoke the named
// RPC with its positional arguments and return its reply, or an error.
type Caller func(ctx context.Context, rpcName string, args []interface{}, opts Options) (interface{}, error)

// Middleware is an "around" interceptor: given the next Caller in the chain,
// it returns a Caller that wraps it, typically adding timing, recording, or
// validation, or short-circuiting by returning/raising directly without
// calling next.
type Middleware func(next Caller) Caller

// chain composes middleware around a terminal Caller. The first registered
// middleware is outermost: it sees the request first and the response last.
// Composition order is m1(m2(...mN(terminal)...)), the same back-to-front
// wrapping used to compose a generic Filter/Service pair.
func chain(terminal Caller, middlewares []Middleware) Caller {
	caller := terminal
	for i := len(middlewares) - 1; i >= 0; i-- {
		caller = middlewares[i](caller)
	}
	return caller
}

// Stack is an ordered, mutable-until-first-use sequence of Middleware wrapping
// a terminal Caller. It is the shared shape used by both the server's
// dispatch pipeline and the client's dispatcher: mutable only before first
// use, sealed (frozen) at first invocation.
type Stack struct {
	terminal    Caller
	mu          sync.Mutex
	middlewares []Middleware
	freeze      sync.Once
	effective   Caller
	used        bool
}

// NewStack builds a Stack around the given terminal Caller.
func NewStack(terminal Caller) *Stack {
	return &Stack{terminal: terminal}
}

// Use appends middleware to the stack. It panics if the stack has already
// been invoked: reordering bugs caught by a fatal failure are more valuable
// than a stack that silently accepts late registrations that never actually
// run where the caller thinks they do. Use and Call share s.mu so a Use
// racing a first Call always observes an up-to-date s.used.
func (s *Stack) Use(middlewares ...Middleware) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.used {
		panic("thtp: Stack.Use called after the stack has already been dispatched through; middleware must be registered before first use")
	}
	s.middlewares = append(s.middlewares, middlewares...)
}

// Call dispatches through the composed middleware chain. The first Call
// freezes the stack: any subsequent Use panics. The chain is built exactly
// once, via sync.Once, so concurrent first Calls from multiple worker
// goroutines never race on s.effective; s.used is flipped under s.mu so it
// stays consistent with the check in Use.
func (s *Stack) Call(ctx context.Context, rpcName string, args []interface{}, opts Options) (interface{}, error) {
	s.freeze.Do(func() {
		s.mu.Lock()
		s.effective = chain(s.terminal, s.middlewares)
		s.used = true
		s.mu.Unlock()
	})
	if opts == nil {
		opts = Options{}
	}
	return s.effective(ctx, rpcName, args, opts)
}

// Frozen reports whether the stack has dispatched at least once and is
// therefore sealed against further Use calls.
func (s *Stack) Frozen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.used
}
