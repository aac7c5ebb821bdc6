package nasa

import (
	"errors"
	"net/http"
)

// APIError is a failure surfaced by the NASA gateway, carrying the HTTP
// status the route layer should respond with. UpstreamStatus holds the raw
// status NASA answered with (0 for network failures) so callers can
// distinguish a lookup miss from other upstream errors.
type APIError struct {
	StatusCode     int    `json:"status_code"`
	Message        string `json:"message"`
	UpstreamStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrNotFound is returned by LookupAsteroid when NASA answers 404.
var ErrNotFound = &APIError{
	StatusCode:     http.StatusNotFound,
	Message:        "Asteroid not found",
	UpstreamStatus: http.StatusNotFound,
}

// rateLimitError maps an upstream 429. The message tells the operator how
// to move off the shared DEMO_KEY quota.
func rateLimitError() *APIError {
	return &APIError{
		StatusCode:     http.StatusTooManyRequests,
		Message:        "NASA API rate limit exceeded. Get a free key at https://api.nasa.gov and set NASA_API_KEY in the backend environment",
		UpstreamStatus: http.StatusTooManyRequests,
	}
}

// badGatewayError maps any other upstream failure (non-200 status, error
// body, network failure or timeout).
func badGatewayError(message string, upstreamStatus int) *APIError {
	if message == "" {
		message = "NASA API unavailable"
	}
	return &APIError{
		StatusCode:     http.StatusBadGateway,
		Message:        message,
		UpstreamStatus: upstreamStatus,
	}
}

// ErrorStatus returns the HTTP status a handler should respond with for err.
func ErrorStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}
