package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// ErrMissingAPIKey is returned before any network call when a client was
// built without credentials.
var ErrMissingAPIKey = errors.New("api key is not configured")

// ErrEmptyCompletion is returned when the chat API answers without choices.
var ErrEmptyCompletion = errors.New("empty response from chat completion")

// APIError describes a non-2xx answer from an upstream API
type APIError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 300 {
		body = body[:300] + "..."
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, body)
}

// Retryable reports whether the request may succeed if sent again.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

type response struct {
	body        []byte
	contentType string
}

// retrier sends requests with bounded exponential backoff. Network errors,
// 429 and 5xx are retried; everything else fails immediately.
type retrier struct {
	service    string
	client     *http.Client
	maxRetries int
	interval   time.Duration
	logger     *zap.Logger
}

func (r *retrier) do(ctx context.Context, build func() (*http.Request, error)) (*response, error) {
	var out *response
	attempt := 0

	operation := func() error {
		attempt++
		req, err := build()
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := r.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode >= 400 {
			apiErr := &APIError{Service: r.service, StatusCode: resp.StatusCode, Body: string(data)}
			if apiErr.Retryable() {
				return apiErr
			}
			return backoff.Permanent(apiErr)
		}

		out = &response{body: data, contentType: resp.Header.Get("Content-Type")}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.interval
	bo.MaxInterval = 10 * time.Second

	notify := func(err error, wait time.Duration) {
		if r.logger != nil {
			r.logger.Warn("🔁 Retrying upstream request",
				zap.String("service", r.service),
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
				zap.Error(err))
		}
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(r.maxRetries)), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return nil, err
	}
	return out, nil
}
