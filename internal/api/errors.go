package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized marks 401 responses after the global logout hook has run.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is any non-2xx response from the remote API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Status == 401 {
		return ErrUnauthorized
	}
	return nil
}
