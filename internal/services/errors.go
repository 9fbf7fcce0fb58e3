package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for business-rule failures. The HTTP layer flattens all
// of them to a uniform {message} body, but callers inside the process can
// still tell the kinds apart with errors.Is.
var (
	ErrDuplicateEmail     = errors.New("please choose a different email")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("bad credentials")
	ErrForbidden          = errors.New("invalid request")
	ErrPhotoNotFound      = errors.New("photo not found")
)

// UpstreamError marks a failure in an external collaborator: database,
// object store, or cache.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func upstream(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}
