package router

import (
	goerrors "errors"
	"net"
	"net/http"

	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/httpclient"
	"github.com/finbooks/finbooks/internal/logger"
)

// shouldRetry classifies a delivery failure. Throttling and transient
// upstream failures are retried; failures a retry can never fix are
// dropped so the queue does not wedge on one bad endpoint.
func shouldRetry(logger *logger.Logger, err error) bool {
	if httpErr, ok := httpclient.IsHTTPError(err); ok {
		switch httpErr.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			logger.Debugw("retrying delivery after upstream error",
				"status_code", httpErr.StatusCode,
				"error", httpErr,
			)
			return true
		}
		logger.Debugw("dropping delivery after non-retryable HTTP error",
			"status_code", httpErr.StatusCode,
			"error", httpErr,
		)
		return false
	}

	var netErr net.Error
	if goerrors.As(err, &netErr) && netErr.Timeout() {
		logger.Debugw("retrying delivery after network timeout", "error", netErr)
		return true
	}

	if ierr.IsValidation(err) ||
		ierr.IsNotFound(err) ||
		ierr.IsPermissionDenied(err) {
		return false
	}

	// Unknown errors are assumed transient
	return true
}
