package domain

import "fmt"

// AuthError is returned when the backend rejects login credentials.
// Detail carries the backend-provided message when one was given.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail == "" {
		return "login failed"
	}
	return e.Detail
}

// RequestError is reported by the API client for any non-2xx response.
// Status is the HTTP status code; Detail is the backend's "detail"
// field when the body carried one.
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Detail)
}
