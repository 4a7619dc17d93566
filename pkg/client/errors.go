package client

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionExpired means no valid session existed when the call was
	// made. No request was sent and the session has been logged out.
	ErrSessionExpired = errors.New("session expired, please login again")

	// ErrAuthenticationFailed means the backend answered 401. The session
	// has been logged out.
	ErrAuthenticationFailed = errors.New("authentication failed, please login again")

	// ErrRequestFailed matches every *RequestError via errors.Is.
	ErrRequestFailed = errors.New("request failed")
)

// RequestError represents a non-2xx, non-401 response from the API.
// Message is the backend's detail string when it sent one.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

// Is reports ErrRequestFailed as a match so callers can branch on the
// category without errors.As.
func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}

// IsStatus returns true if err (or any wrapped error) is a RequestError with the given status code.
func IsStatus(err error, code int) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode == code
	}
	return false
}

// IsSessionEnded returns true if err ended the session, either because it
// had already expired or because the backend rejected the token.
func IsSessionEnded(err error) bool {
	return errors.Is(err, ErrSessionExpired) || errors.Is(err, ErrAuthenticationFailed)
}

func genericFailure(verb string, status int) string {
	return fmt.Sprintf("%s failed with status %d", verb, status)
}
