package site

import (
	"errors"
	"net/http"

	"github.com/okian/suwen/internal/adapters/apiclient"
)

// ErrBadRequest marks request input the handlers reject before loading.
var ErrBadRequest = errors.New("bad request")

// Page outcomes recorded in metrics.
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// statusFor maps a loader failure to the status of the error page.
// A 404 envelope is a missing page; other envelope failures are the
// backend's fault; anything else means the backend was unreachable or
// answered with something that is not an envelope.
func statusFor(err error) int {
	if errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest
	}
	if status, ok := apiclient.StatusOf(err); ok {
		if status == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusInternalServerError
	}
	return http.StatusBadGateway
}

// detailFor is the visitor-facing explanation. Transport errors are not
// shown since they carry internal addresses.
func detailFor(err error, status int) string {
	switch {
	case status == http.StatusBadGateway:
		return "The content service is unavailable. Please try again shortly."
	case errors.Is(err, apiclient.ErrEnvelope), errors.Is(err, ErrBadRequest):
		return err.Error()
	default:
		return ""
	}
}

func outcomeFor(status int) string {
	switch {
	case status < http.StatusBadRequest:
		return outcomeOK
	case status == http.StatusNotFound:
		return outcomeNotFound
	default:
		return outcomeError
	}
}
