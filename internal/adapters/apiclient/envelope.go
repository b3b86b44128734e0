package apiclient

import (
	"encoding/json"
	"io"
	"net/http"
)

// envelope is the backend's uniform response wrapper. Data stays raw so an
// absent key can be told apart from a present null or falsy value.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
}

// Unwrap reads and closes resp.Body and returns the envelope's data as T.
// A statusCode >= 400 or an absent data key yields *EnvelopeError.
func Unwrap[T any](resp *http.Response) (T, error) {
	var zero T
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, err
	}
	if env.StatusCode >= 400 || len(env.Data) == 0 {
		return zero, &EnvelopeError{StatusCode: env.StatusCode, Message: env.Message}
	}

	var data T
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return zero, err
	}
	return data, nil
}
