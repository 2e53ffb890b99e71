package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError keeps backward compatibility for generic codes.
type DomainError struct {
	Code string
	Err  error
}

func (e DomainError) Error() string {
	if e.Err == nil {
		return e.Code
	}
	if e.Code == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e DomainError) Unwrap() error {
	return e.Err
}

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// InvalidTransitionError reports a lifecycle change attempted from a
// state that does not allow it. From carries the observed state, which
// is "expired" when the offer is stored as pending but past valid_until.
type InvalidTransitionError struct {
	Resource string
	From     string
	To       string
}

func (e InvalidTransitionError) Error() string {
	res := e.Resource
	if res == "" {
		res = "resource"
	}
	return fmt.Sprintf("%s cannot move from %s to %s", res, e.From, e.To)
}

// PartialFailureError reports that the primary mutation succeeded but
// one or more best-effort secondary mutations failed. Callers may retry
// only the failed steps.
type PartialFailureError struct {
	Primary string
	Failed  []string
	Err     error
}

func (e PartialFailureError) Error() string {
	return fmt.Sprintf("%s succeeded but secondary steps failed: %s",
		e.Primary, strings.Join(e.Failed, ", "))
}

func (e PartialFailureError) Unwrap() error { return e.Err }

// AdapterError wraps an underlying persistence failure. Whether the
// wrapped error is retryable is unknown to the caller.
type AdapterError struct {
	Op  string
	Err error
}

func (e AdapterError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("adapter error: %v", e.Err)
	}
	return fmt.Sprintf("adapter error during %s: %v", e.Op, e.Err)
}

func (e AdapterError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInvalidTransition(err error) bool {
	var target InvalidTransitionError
	return errors.As(err, &target)
}

func IsPartialFailure(err error) bool {
	var target PartialFailureError
	return errors.As(err, &target)
}

func IsAdapter(err error) bool {
	var target AdapterError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
