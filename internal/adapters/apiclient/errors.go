package apiclient

import (
	"errors"
	"strconv"
)

// ErrEnvelope is the sentinel kind matched by every *EnvelopeError.
var ErrEnvelope = errors.New("api envelope error")

// EnvelopeError reports a backend envelope that carried statusCode >= 400
// or no data. Transport and decode failures are never converted into it.
type EnvelopeError struct {
	StatusCode int
	Message    string
}

func (e *EnvelopeError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "API Error: " + strconv.Itoa(e.StatusCode)
}

// Is makes errors.Is(err, ErrEnvelope) hold for any *EnvelopeError.
func (e *EnvelopeError) Is(target error) bool {
	return target == ErrEnvelope
}

// StatusOf returns the envelope status code carried by err, if any.
func StatusOf(err error) (int, bool) {
	var envErr *EnvelopeError
	if errors.As(err, &envErr) {
		return envErr.StatusCode, true
	}
	return 0, false
}
