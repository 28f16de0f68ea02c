package catalog

import (
	"errors"
	"fmt"
)

// NetworkError covers everything short of a decoded envelope: transport
// failures, timeouts, non-2xx statuses and bodies that do not decode.
type NetworkError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Endpoint, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ApplicationError is a decoded envelope with success set to false.
type ApplicationError struct {
	Endpoint string
	Message  string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return e.Endpoint + ": request unsuccessful"
	}
	return e.Endpoint + ": " + e.Message
}

var errUnexpectedStatus = errors.New("unexpected status")

func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

func IsApplicationError(err error) bool {
	var ae *ApplicationError
	return errors.As(err, &ae)
}
