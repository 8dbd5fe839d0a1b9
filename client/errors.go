package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// ErrConnection marks transport-level failures (connection refused,
// timeouts, DNS). Everything the backend answered, even with an error
// status, is an *APIError instead.
var ErrConnection = errors.New("connection error")

type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
}

// IsConnectionError reports whether err was a transport failure with no
// backend response.
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsAuthError reports whether the backend rejected the bearer token.
// The session is stale when this fires on a previously working token.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Detail returns the backend's human-readable message if err carries
// one, otherwise the given fallback.
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// errorBody matches the backend's {"detail": ...} error shape. The
// gateway sometimes double-wraps, so detail may itself be an object
// with a nested detail string.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

func decodeAPIError(status int, body []byte, fallback string) *APIError {
	detail := fallback
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil && s != "" {
			detail = s
		} else {
			var nested errorBody
			if err := json.Unmarshal(eb.Detail, &nested); err == nil && len(nested.Detail) > 0 {
				var ns string
				if err := json.Unmarshal(nested.Detail, &ns); err == nil && ns != "" {
					detail = ns
				}
			}
		}
	}
	return &APIError{StatusCode: status, Detail: detail}
}
