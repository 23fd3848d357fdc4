package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInitDataMissing = errors.New("telegram init data not available, open the app in Telegram")
	ErrUnauthorized    = errors.New("backend rejected init data")
	ErrInvalidResponse = errors.New("invalid backend response")
	ErrInvalidRequest  = errors.New("invalid backend request")
)

// APIError is a non-2xx answer of the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.StatusCode)
}

// Is makes 401 and 403 answers match ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	if target != ErrUnauthorized {
		return false
	}
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
