package xclient

import (
	"os"
	"strconv"

	"golang.org/x/time/rate"
)

const (
	DefaultRequestsPerSecond = 2.0
	DefaultBurst             = 10
)

// NewLimiter paces outgoing requests on the client side. X_API_RPS and
// X_API_BURST override the given values. It never causes a retry.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	if v := os.Getenv("X_API_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			rps = f
		}
	}
	if v := os.Getenv("X_API_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			burst = n
		}
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
