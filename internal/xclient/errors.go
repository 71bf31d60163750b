package xclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrXAPI matches every error produced by this package via errors.Is.
var ErrXAPI = errors.New("x api")

// AuthError reports credentials missing at client construction.
type AuthError struct {
	// Missing holds the environment variable names of the absent credentials.
	Missing []string
}

func (e *AuthError) Error() string {
	return "missing OAuth 1.0a credentials: " + strings.Join(e.Missing, ", ")
}

func (e *AuthError) Is(target error) bool { return target == ErrXAPI }

// RateLimitError is returned for HTTP 429. The request is never retried.
type RateLimitError struct {
	Endpoint string
	// Reset is the server's x-rate-limit-reset time, zero when absent.
	Reset time.Time
}

func (e *RateLimitError) Error() string {
	if e.Reset.IsZero() {
		return "rate limit exceeded"
	}
	return fmt.Sprintf("rate limit exceeded (resets at %s)", e.Reset.UTC().Format(time.RFC3339))
}

func (e *RateLimitError) Is(target error) bool { return target == ErrXAPI }

// APIError is any other non-2xx response, or a 2xx response that could not be used.
type APIError struct {
	StatusCode int
	Title      string
	Detail     string
	// Body is the raw response text, used when the body carries no title.
	Body string
}

func (e *APIError) Error() string {
	msg := e.Title
	if msg == "" {
		msg = e.Body
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("API Error %d: %s", e.StatusCode, msg)
}

func (e *APIError) Is(target error) bool { return target == ErrXAPI }

// TransportError wraps network-level failures.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrXAPI }

// MediaError reports a local media file that cannot be uploaded.
type MediaError struct {
	Path   string
	Reason string
}

func (e *MediaError) Error() string { return e.Reason + ": " + e.Path }

func (e *MediaError) Is(target error) bool { return target == ErrXAPI }

// newAPIError extracts title/detail from a v2 problem body. Legacy bodies with
// an errors array contribute their first message as the title.
func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status, Body: strings.TrimSpace(string(body))}
	var problem struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if len(body) == 0 || json.Unmarshal(body, &problem) != nil {
		return e
	}
	e.Title = problem.Title
	e.Detail = problem.Detail
	if e.Title == "" && len(problem.Errors) > 0 {
		e.Title = problem.Errors[0].Message
	}
	return e
}

// parseRateLimitReset parses the x-rate-limit-reset unix timestamp header.
func parseRateLimitReset(v string) time.Time {
	ts, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || ts <= 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0)
}
