// Package upstream maps failures of the AI clients onto application errors.
package upstream

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/pkg/ai"
)

// Classify converts a client error into an AppError. Missing credentials
// become a configuration error, everything else an upstream failure.
func Classify(service string, err error) error {
	if err == nil {
		return nil
	}

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	if stdErrors.Is(err, ai.ErrMissingAPIKey) {
		return MissingCredentials(service)
	}

	var apiErr *ai.APIError
	if stdErrors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return errors.ErrUpstreamRateLimited(service).
			WithHint("wait a moment and try again, or check the account quota")
	}

	return errors.ErrUpstreamFailure(service, err)
}

// MissingCredentials is the configuration error for an unset API key.
func MissingCredentials(service string) errors.AppError {
	envVar := strings.ToUpper(service) + "_API_KEY"
	return errors.ErrConfiguration(fmt.Sprintf("%s API key is not configured", service)).
		WithHint(fmt.Sprintf("set %s in the environment or in a .env file", envVar))
}
