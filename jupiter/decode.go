package jupiter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StatusError reports a response whose HTTP status was outside the 2xx
// range. Body carries whatever response text could be read; it is empty
// when the body was empty or could not be read.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	b := strings.TrimSpace(e.Body)
	if b == "" {
		return fmt.Sprintf("swap api status %d", e.StatusCode)
	}
	return fmt.Sprintf("swap api status %d: %s", e.StatusCode, b)
}

// DecodeError reports a success response whose body did not match the
// expected JSON shape. It usually means version skew between client and
// API.
type DecodeError struct {
	err error
}

func (e *DecodeError) Error() string {
	return "failed to decode swap api response: " + e.err.Error()
}

func (e *DecodeError) Unwrap() error { return e.err }

// decodeResponse validates the HTTP status and then parses the body as
// T, in that order. A non-2xx status always yields a *StatusError, even
// when the body is unreadable or unparseable; a 2xx status with a body
// that does not unmarshal into T yields a *DecodeError. The response
// body is always closed.
func decodeResponse[T any](res *http.Response) (*T, error) {
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		// Best effort: an error reading the error body is swallowed
		// and reported as an absent body.
		body, _ := io.ReadAll(res.Body)
		return nil, &StatusError{StatusCode: res.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &DecodeError{err: err}
	}
	return &out, nil
}
