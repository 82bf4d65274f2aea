package thtp

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/reddit/thtp.go/clientpool"
	"github.com/reddit/thtp.go/randbp"
)

// poolPollInterval bounds how often Pool.Get retries clientpool.Pool.Get
// while waiting for a slot to free up. clientpool.Pool.Get is non-blocking
// (it returns ErrExhausted immediately rather than waiting), so Pool wraps it
// with a short poll loop to provide the blocking-with-timeout checkout
// semantics of the connection pool. The interval is jittered so that many
// goroutines woken up by the same release don't all retry in lockstep.
const (
	poolPollInterval       = 5 * time.Millisecond
	poolPollIntervalJitter = 0.5
)

// pooledClient is the clientpool.Client a Pool hands out: a keep-alive HTTP
// client sharing the pool's single *http.Transport, so the OS-level
// connections themselves are still reused and capped by the transport's own
// MaxIdleConnsPerHost, not reopened per checkout.
type pooledClient struct {
	http   *http.Client
	closed bool
}

func (c *pooledClient) Close() error {
	c.closed = true
	return nil
}

func (c *pooledClient) IsOpen() bool {
	return !c.closed
}

var _ clientpool.Client = (*pooledClient)(nil)

// Pool is a fixed-capacity pool of keep-alive HTTP clients bound to one base
// URL. Checkout blocks up to the configured pool-timeout; connections
// are recycled transparently by the shared transport's idle-timeout, so
// release never closes anything outright.
type Pool struct {
	inner   clientpool.Pool
	timeout time.Duration
	baseURL string
}

// NewPool builds a Pool from a validated ClientConfig. ctx bounds how long
// NewPool itself waits to open the pool's single required initial
// connection; it does not bound any later checkout.
func NewPool(ctx context.Context, config ClientConfig) (*Pool, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	transport := &http.Transport{
		MaxIdleConnsPerHost:   config.PoolSize,
		IdleConnTimeout:       config.KeepAlive,
		ResponseHeaderTimeout: config.RPCTimeout,
		DialContext: (&net.Dialer{
			Timeout: config.OpenTimeout,
		}).DialContext,
		// Transparent gzip on responses: net/http's default Transport
		// already negotiates and decodes gzip automatically as long as the
		// caller never sets an explicit Accept-Encoding header, which we
		// don't.
	}

	opener := func() (clientpool.Client, error) {
		return &pooledClient{http: &http.Client{Transport: transport}}, nil
	}

	inner, err := clientpool.NewChannelPool(ctx, 1, config.PoolSize, config.PoolSize, opener)
	if err != nil {
		return nil, Wrap(InternalError, err)
	}

	scheme := "http"
	if config.SSL {
		scheme = "https"
	}
	base := url.URL{
		Scheme: scheme,
		Host:   fmt.Sprintf("%s:%d", config.Host, config.Port),
	}

	return &Pool{
		inner:   inner,
		timeout: config.PoolTimeout,
		baseURL: base.String(),
	}, nil
}

// Get checks out a pooledClient, blocking (by polling) until one is
// available, ctx is done, or the pool-timeout elapses, whichever comes
// first. A timed-out checkout is reported as ServerUnreachableError: from
// the caller's point of view the backend is effectively unreachable, since
// no connection could be established to talk to it.
func (p *Pool) Get(ctx context.Context) (*pooledClient, error) {
	deadline := time.Now().Add(p.timeout)
	for {
		c, err := p.inner.Get()
		if err == nil {
			return c.(*pooledClient), nil
		}
		if err != clientpool.ErrExhausted {
			return nil, Wrap(InternalError, err)
		}
		if !time.Now().Before(deadline) {
			return nil, Wrap(ServerUnreachableError, err)
		}
		select {
		case <-ctx.Done():
			return nil, Wrap(ServerUnreachableError, ctx.Err())
		case <-time.After(randbp.JitterDuration(poolPollInterval, poolPollIntervalJitter)):
		}
	}
}

// Release returns c to the pool unconditionally, including when the call
// that checked it out failed.
func (p *Pool) Release(c *pooledClient) {
	p.inner.Release(c)
}

// Close shuts the pool down, closing every idle client.
func (p *Pool) Close() error {
	return p.inner.Close()
}

// Stats reports the current checked-out and idle counts for SetPoolGauges.
func (p *Pool) Stats() (active, allocated int32) {
	return p.inner.NumActiveClients(), p.inner.NumAllocated()
}

// BaseURL returns the pool's target base URL, e.g. "https://host:port".
func (p *Pool) BaseURL() string {
	return p.baseURL
}
