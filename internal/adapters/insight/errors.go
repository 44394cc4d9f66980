package insight

import "errors"

// Sentinel failure classes for insight generation. Each maps to a distinct
// user-facing message; none of them affects the computed metrics.
var (
	ErrRateLimited      = errors.New("insight generator rate limited")
	ErrBadConfig        = errors.New("insight generator misconfigured")
	ErrModelUnavailable = errors.New("insight model unavailable")
	ErrGenerate         = errors.New("insight generation failed")
)

// FailureClass returns the short label for an error's failure class, used
// for metrics and API error codes.
func FailureClass(err error) string {
	return failureClass(err)
}

func failureClass(err error) string {
	switch {
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrBadConfig):
		return "bad_config"
	case errors.Is(err, ErrModelUnavailable):
		return "model_unavailable"
	default:
		return "generic"
	}
}
