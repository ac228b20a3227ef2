package backends

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"function-server/llm/shared"
)

// ClientOptions configures the shared backend HTTP client. RetryMax defaults
// to zero: no retries happen unless the deployment asks for them.
type ClientOptions struct {
	APIKey       string
	Headers      map[string]string
	Timeout      time.Duration
	RetryMax     int
	RetryBackoff time.Duration
	MaxIdleConns int
	IdleConnTTL  time.Duration
}

// HTTPClient is a tuned HTTP client for backend requests. It classifies
// transport failures into the normalized error taxonomy.
type HTTPClient struct {
	client *http.Client
	opts   ClientOptions
}

// NewHTTPClient creates an HTTP client with the specified options.
func NewHTTPClient(opts ClientOptions) *HTTPClient {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RetryBackoff == 0 {
		opts.RetryBackoff = time.Second
	}
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 10
	}
	if opts.IdleConnTTL == 0 {
		opts.IdleConnTTL = 90 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        opts.MaxIdleConns,
		MaxIdleConnsPerHost: opts.MaxIdleConns,
		IdleConnTimeout:     opts.IdleConnTTL,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	return &HTTPClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		opts: opts,
	}
}

// PostJSON sends body as JSON to url and returns the raw response body on a
// 2xx status. Non-2xx statuses and undecodable bodies surface as
// backend_protocol_error; connection and deadline failures as
// backend_unreachable and backend_timeout respectively.
func (c *HTTPClient) PostJSON(ctx context.Context, url string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, shared.Errorf(shared.ErrBackendProtocol, "failed to encode request: %v", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.opts.RetryMax; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, Classify(ctx.Err())
			case <-time.After(c.opts.RetryBackoff * time.Duration(attempt)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, shared.Errorf(shared.ErrBackendUnreachable, "failed to build request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.opts.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
		}
		for key, value := range c.opts.Headers {
			req.Header.Set(key, value)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = Classify(err)
			continue
		}

		respBody, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = Classify(readErr)
			continue
		}

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			lastErr = &shared.Error{
				Code:       shared.ErrBackendProtocol,
				Message:    "backend returned status " + resp.Status,
				HTTPStatus: resp.StatusCode,
			}
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &shared.Error{
				Code:       shared.ErrBackendProtocol,
				Message:    "backend returned status " + resp.Status + ": " + string(respBody),
				HTTPStatus: resp.StatusCode,
			}
		}
		return respBody, nil
	}
	return nil, lastErr
}

// Classify maps a transport-level error onto the normalized taxonomy:
// deadline and timeout failures become backend_timeout, everything else at
// the connection level becomes backend_unreachable.
func Classify(err error) error {
	var se *shared.Error
	if errors.As(err, &se) {
		return se
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return shared.Errorf(shared.ErrBackendTimeout, "backend call timed out: %v", err)
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return shared.Errorf(shared.ErrBackendTimeout, "backend call timed out: %v", err)
	}
	if errors.Is(err, context.Canceled) {
		return shared.Errorf(shared.ErrBackendUnreachable, "backend call canceled: %v", err)
	}
	return shared.Errorf(shared.ErrBackendUnreachable, "backend unreachable: %v", err)
}
