package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/remixrite/remix-ledger/internal/logger"
)

// StatusError is returned when the remote side answered with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}

// IsStatus reports whether err carries the given HTTP status code
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// HTTPClient defines the outbound HTTP calls made to the ledger, tagging and storage services
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// GetJSON performs a GET request and decodes the JSON response into result
	GetJSON(ctx context.Context, url string, headers map[string]string, result any) error

	// PostJSON encodes body as JSON, performs a POST request and decodes the response into result.
	// A nil result discards the response body.
	PostJSON(ctx context.Context, url string, headers map[string]string, body any, result any) error

	// Post performs a POST request with a raw body and returns the response body
	Post(ctx context.Context, url string, headers map[string]string, contentType string, body []byte) ([]byte, error)
}

// RetryPolicy controls the backoff applied to rate limited requests.
// The zero policy makes a single attempt.
type RetryPolicy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// NoRetry makes a single attempt and leaves retrying to the caller
var NoRetry = RetryPolicy{}

// DefaultRetryPolicy is used by NewHTTPClient
var DefaultRetryPolicy = RetryPolicy{
	InitialInterval: 2 * time.Second,
	MaxInterval:     30 * time.Second,
	MaxElapsedTime:  time.Minute,
}

// RealHTTPClient implements HTTPClient using the standard http package
type RealHTTPClient struct {
	client *http.Client
	retry  RetryPolicy
}

// NewHTTPClient creates a new real HTTP client
func NewHTTPClient(timeout time.Duration) HTTPClient {
	return NewHTTPClientWithRetry(timeout, DefaultRetryPolicy)
}

// NewHTTPClientWithRetry creates a new real HTTP client with a custom retry policy
func NewHTTPClientWithRetry(timeout time.Duration, retry RetryPolicy) HTTPClient {
	return &RealHTTPClient{
		client: &http.Client{Timeout: timeout},
		retry:  retry,
	}
}

// do executes a request with exponential backoff while the server answers 429
// or the transport fails. The body is rebuilt for each attempt.
func (c *RealHTTPClient) do(ctx context.Context, method, url string, headers map[string]string, body []byte) ([]byte, error) {
	var respBody []byte

	operation := func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return fmt.Errorf("failed to perform request: %w", err)
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.Warn("failed to close response body", zap.Error(err), zap.String("url", url))
			}
		}()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to read response body: %w", err))
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			logger.Warn("rate limited", zap.String("url", url))
			return &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return backoff.Permanent(&StatusError{StatusCode: resp.StatusCode, Body: string(data)})
		}

		respBody = data
		return nil
	}

	var b backoff.BackOff = &backoff.StopBackOff{}
	if c.retry != NoRetry {
		exp := backoff.NewExponentialBackOff()
		exp.InitialInterval = c.retry.InitialInterval
		exp.MaxInterval = c.retry.MaxInterval
		exp.MaxElapsedTime = c.retry.MaxElapsedTime
		exp.Multiplier = 2.0
		exp.RandomizationFactor = 0.5
		b = exp
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}

	return respBody, nil
}

func (c *RealHTTPClient) GetJSON(ctx context.Context, url string, headers map[string]string, result any) error {
	respBody, err := c.do(ctx, http.MethodGet, url, headers, nil)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *RealHTTPClient) PostJSON(ctx context.Context, url string, headers map[string]string, body any, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	h := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		h[k] = v
	}
	h["Content-Type"] = "application/json"

	respBody, err := c.do(ctx, http.MethodPost, url, h, payload)
	if err != nil {
		return err
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *RealHTTPClient) Post(ctx context.Context, url string, headers map[string]string, contentType string, body []byte) ([]byte, error) {
	h := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		h[k] = v
	}
	if contentType != "" {
		h["Content-Type"] = contentType
	}
	return c.do(ctx, http.MethodPost, url, h, body)
}
