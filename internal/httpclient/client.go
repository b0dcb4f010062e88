// Package httpclient provides the HTTP helpers used by the version probes.
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Default configuration values.
const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 2
	DefaultBackoff    = 500 * time.Millisecond
	MaxBackoff        = 5 * time.Second
	BackoffMultiplier = 2

	// maxBodySize bounds how much of a response is decoded.
	maxBodySize = 1 << 20
)

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	Message string
	Code    int
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.Code)
}

// HTTPStatusCode returns the HTTP status code.
func (e *HTTPError) HTTPStatusCode() int {
	return e.Code
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

// RetryConfig controls retry behavior.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     DefaultMaxRetries,
		InitialBackoff: DefaultBackoff,
		MaxBackoff:     MaxBackoff,
		Multiplier:     BackoffMultiplier,
	}
}

// NoRetry returns a configuration that makes a single attempt.
func NoRetry() RetryConfig {
	return RetryConfig{}
}

// ShouldRetry determines if an error is retryable.
// Returns true for rate limiting (429), gateway/unavailable (502-504), and network errors.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr interface{ HTTPStatusCode() int }
	if errors.As(err, &httpErr) {
		code := httpErr.HTTPStatusCode()
		return code == http.StatusTooManyRequests ||
			code == http.StatusServiceUnavailable ||
			code == http.StatusGatewayTimeout ||
			code == http.StatusBadGateway
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// RetryFunc is a function that performs an operation that may need retrying.
type RetryFunc func() error

// WithRetry executes the given function with exponential backoff retry.
// It respects context cancellation and stops when the context is done.
func WithRetry(ctx context.Context, config RetryConfig, fn RetryFunc) error {
	var lastErr error
	backoff := config.InitialBackoff

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		if !ShouldRetry(err) {
			return err
		}

		// Don't wait after last attempt
		if attempt == config.MaxRetries {
			break
		}

		select {
		case <-time.After(backoff):
			backoff = time.Duration(float64(backoff) * config.Multiplier)
			if backoff > config.MaxBackoff {
				backoff = config.MaxBackoff
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}

// GetJSON fetches url and decodes a JSON body into v, retrying transient failures.
// Any non-200 status is returned as an *HTTPError.
func GetJSON(ctx context.Context, client *http.Client, url string, config RetryConfig, v any) error {
	if client == nil {
		client = NewHTTPClient()
	}

	return WithRetry(ctx, config, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return NewHTTPError(resp.StatusCode, http.StatusText(resp.StatusCode))
		}

		if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(v); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}

		return nil
	})
}

// NewHTTPClient creates a new http.Client with the default timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// NewHTTPClientWithTimeout creates a new http.Client with a custom timeout.
func NewHTTPClientWithTimeout(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
