package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"

	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/hashicorp/go-retryablehttp"
)

// Request represents an HTTP request
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Response represents an HTTP response
type Response struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// Client interface for making HTTP requests
type Client interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// ClientConfig holds configuration for the HTTP client
type ClientConfig struct {
	Timeout  time.Duration
	RetryMax int
}

// DefaultClient implements the Client interface on top of a retrying
// transport. Transient network failures and 5xx responses are retried
// with backoff before an error surfaces to the caller.
type DefaultClient struct {
	client *retryablehttp.Client
}

// NewClient creates a Client with the given configuration
func NewClient(cfg ClientConfig) Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.Logger = nil
	return &DefaultClient{client: rc}
}

// NewDefaultClient creates a Client with sensible defaults for
// outbound webhook delivery
func NewDefaultClient() Client {
	return NewClient(ClientConfig{
		Timeout:  30 * time.Second,
		RetryMax: 3,
	})
}

// Send makes an HTTP request and returns the response
func (c *DefaultClient) Send(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, req.Body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrHTTPClient)
	}

	if req.Body != nil {
		httpReq.ContentLength = int64(len(req.Body))
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrHTTPClient)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrHTTPClient)
	}

	headers := make(map[string]string)
	for k, v := range resp.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	// Retries exhausted, non-2xx is the caller's problem now
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, NewError(resp.StatusCode, respBody)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Headers:    headers,
	}, nil
}
