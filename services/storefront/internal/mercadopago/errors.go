package mercadopago

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the gateway.
type APIError struct {
	Operation  string
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mercadopago %s: status %d: %s", e.Operation, e.StatusCode, e.Message())
}

// Message returns the response body, compacted when it is JSON.
func (e *APIError) Message() string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, e.Body); err == nil {
		return buf.String()
	}
	return string(e.Body)
}

// isRejection reports a well-formed client error answered by the gateway.
// Such answers do not count against the circuit breaker.
func isRejection(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	return apiErr.StatusCode >= 400 &&
		apiErr.StatusCode < 500 &&
		apiErr.StatusCode != http.StatusTooManyRequests
}
