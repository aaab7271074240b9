package rentalapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rentwheels/rental-web/internal/core/domain"
)

// errTransport marks failures where no response was received.
var errTransport = fmt.Errorf("%w: no response", domain.ErrUpstream)

// APIError is a non-2xx answer from the rental API.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("rental api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("rental api: status %d: %s", e.StatusCode, e.Message)
}

// Unwrap exposes the domain sentinel matching the status code.
func (e *APIError) Unwrap() error {
	return e.kind
}

func parseError(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = payload.Message
		if msg == "" {
			msg = payload.Error
		}
	}
	return &APIError{StatusCode: status, Message: strings.TrimSpace(msg), kind: kindFor(status)}
}

func kindFor(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrRejected
	}
	return domain.ErrUpstream
}

// PublicMessage exposes the API-provided message for display.
func (e *APIError) PublicMessage() string {
	return e.Message
}
