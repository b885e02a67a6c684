package choco

import (
	"errors"
	"fmt"
)

var (
	ErrMissingToken = errors.New("bearer token is required")
	ErrTokenExpired = errors.New("bearer token expired")
)

// FetchError is returned for every failed upstream call: a transport
// failure, an unexpected status or an undecodable body.
type FetchError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
