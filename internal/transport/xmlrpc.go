package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/rpc"

	"github.com/ganot/tlink/internal/repository"
	"github.com/kolo/xmlrpc"
)

// MethodPrefix is prepended to every remote procedure name.
const MethodPrefix = "tl."

// Caller issues one named remote procedure call with a record of arguments
// and returns the service's native response value.
type Caller interface {
	Call(ctx context.Context, method string, args map[string]any) (any, error)
}

// Client is a Caller speaking XML-RPC to a TestLink endpoint.
//
// A Client holds no mutable state besides the underlying connection pool, but
// sharing one instance across goroutines is the caller's responsibility.
type Client struct {
	rpc *xmlrpc.Client
}

// NewClient creates an XML-RPC client for the endpoint URL. A nil round
// tripper selects http.DefaultTransport.
func NewClient(endpoint string, rt http.RoundTripper) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("%w: endpoint url is required", repository.ErrInvalidArgument)
	}
	c, err := xmlrpc.NewClient(endpoint, rt)
	if err != nil {
		return nil, fmt.Errorf("creating xmlrpc client: %w", err)
	}
	return &Client{rpc: c}, nil
}

// Call invokes tl.<method>. The call blocks until the response arrives or ctx
// is done; cancellation abandons the in-flight request.
func (c *Client) Call(ctx context.Context, method string, args map[string]any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("calling %s: %w", method, err)
	}

	var params any
	if len(args) > 0 {
		params = args
	}

	var reply any
	done := make(chan error, 1)
	go func() {
		done <- c.rpc.Call(MethodPrefix+method, params, &reply)
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("calling %s: %w", method, ctx.Err())
	case err := <-done:
		if err != nil {
			return nil, classifyCallError(method, err)
		}
		return reply, nil
	}
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.rpc.Close()
}

func classifyCallError(method string, err error) error {
	var fault xmlrpc.FaultError
	if errors.As(err, &fault) {
		return &repository.RemoteError{Message: fault.String}
	}
	var serverErr rpc.ServerError
	if errors.As(err, &serverErr) {
		return &repository.RemoteError{Message: string(serverErr)}
	}
	return fmt.Errorf("calling %s: %w", method, err)
}
