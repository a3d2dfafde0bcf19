package domain

import (
	"errors"
	"fmt"
)

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

// InvalidParameterError rejects a query parameter whose shape is wrong
// (supplied more than once, or a malformed date). Distinct from the value
// fallback applied to a single non-numeric page/limit string.
type InvalidParameterError struct {
	Name string
}

func (e InvalidParameterError) Error() string {
	return fmt.Sprintf("Invalid %s", e.Name)
}

type InvalidSortFieldError struct {
	Field string
}

func (e InvalidSortFieldError) Error() string { return "Invalid sortField" }

type InvalidSortOrderError struct {
	Order string
}

func (e InvalidSortOrderError) Error() string { return "Invalid sortOrder" }

type InvalidStatusError struct {
	Status string
}

func (e InvalidStatusError) Error() string { return "Invalid status" }

// SearchTooLongError fires in the normalizer, before any pattern is built.
type SearchTooLongError struct {
	Length int
}

func (e SearchTooLongError) Error() string { return "Search query is too long" }

// Pattern errors come out of the safe-pattern compiler.
type PatternTooLongError struct {
	Length int
	Max    int
}

func (e PatternTooLongError) Error() string { return "Search query is too long" }

type PatternInvalidError struct {
	Err error
}

func (e PatternInvalidError) Error() string { return "Invalid search query" }

func (e PatternInvalidError) Unwrap() error { return e.Err }

// PatternTimeoutError means a match was abandoned at its deadline, not that
// it failed to match.
type PatternTimeoutError struct {
	Op string
}

func (e PatternTimeoutError) Error() string { return "Search evaluation timed out" }

// QueryTimeoutError means the data layer exceeded its execution-time
// ceiling. Never retried within the request.
type QueryTimeoutError struct {
	Op  string
	Err error
}

func (e QueryTimeoutError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("query timed out: %s", e.Op)
	}
	return "query timed out"
}

func (e QueryTimeoutError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

// IsValidation covers every 400-class rejection: the generic validation
// error plus each parameter-specific kind.
func IsValidation(err error) bool {
	var (
		v  ValidationError
		ip InvalidParameterError
		sf InvalidSortFieldError
		so InvalidSortOrderError
		st InvalidStatusError
		sl SearchTooLongError
		pl PatternTooLongError
		pi PatternInvalidError
	)
	return errors.As(err, &v) ||
		errors.As(err, &ip) ||
		errors.As(err, &sf) ||
		errors.As(err, &so) ||
		errors.As(err, &st) ||
		errors.As(err, &sl) ||
		errors.As(err, &pl) ||
		errors.As(err, &pi)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsTimeout(err error) bool {
	var (
		qt QueryTimeoutError
		pt PatternTimeoutError
	)
	return errors.As(err, &qt) || errors.As(err, &pt)
}
