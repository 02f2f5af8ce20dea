// Package common holds the HTTP plumbing shared by the provider
// clients: timeouts, headers, retry with exponential backoff, and the
// transport-level error taxonomy.
package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = 1 * time.Second
)

// AuthError reports a rejected or missing credential. Fatal, never
// retried.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: status=%d, body=%s", e.Status, e.Body)
}

// RateLimitError reports a 429 response. Retried with backoff.
type RateLimitError struct {
	Status int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: status=%d", e.Status)
}

// TransportError reports a network-level failure (DNS, connect,
// timeout, truncated body). Retried with backoff.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServiceError reports any other non-2xx response. Surfaced as-is, not
// retried.
type ServiceError struct {
	Status int
	Body   string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error: status=%d, body=%s", e.Status, e.Body)
}

// GenerationError wraps the last retryable error once the retry budget
// is exhausted.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed after retries: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

type ClientConfig struct {
	Timeout    time.Duration
	MaxRetries uint64
	RetryDelay time.Duration
	Headers    map[string]string
}

func DefaultConfig() ClientConfig {
	return ClientConfig{
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
		Headers:    make(map[string]string),
	}
}

func NewHTTPClient(config ClientConfig) *http.Client {
	return &http.Client{
		Timeout: config.Timeout,
	}
}

// PostJSON sends body to url and returns the response payload, retrying
// rate-limit and transport failures with bounded exponential backoff.
// Authentication and service errors are returned immediately. The
// context deadline bounds the whole loop, so a single call cannot hang
// past it.
func PostJSON(ctx context.Context, client *http.Client, url string, body []byte, config ClientConfig) ([]byte, error) {
	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		for key, value := range config.Headers {
			req.Header.Set(key, value)
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, &TransportError{Err: err}
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &TransportError{Err: err}
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return data, nil
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return nil, backoff.Permanent(&AuthError{Status: resp.StatusCode, Body: string(data)})
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, &RateLimitError{Status: resp.StatusCode}
		default:
			return nil, backoff.Permanent(&ServiceError{Status: resp.StatusCode, Body: string(data)})
		}
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = config.RetryDelay
	policy := backoff.WithContext(backoff.WithMaxRetries(expo, config.MaxRetries), ctx)

	data, err := backoff.RetryWithData(operation, policy)
	if err != nil {
		if isRetryable(err) {
			return nil, &GenerationError{Err: err}
		}
		return nil, err
	}
	return data, nil
}

func isRetryable(err error) bool {
	var transportErr *TransportError
	var rateErr *RateLimitError
	return errors.As(err, &transportErr) || errors.As(err, &rateErr)
}
