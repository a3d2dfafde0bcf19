package repositories

import (
	"context"
	"errors"
	"time"

	"shop-backend/internal/domain"
)

// QueryTimeout is the execution-time ceiling for any single store query.
// A timeout surfaces as QueryTimeoutError and is never retried within the
// request.
const QueryTimeout = 2 * time.Second

type countResult struct {
	total int
	err   error
}

// wrapQueryErr converts a deadline hit into the domain timeout error so
// handlers can map it without inspecting context internals.
func wrapQueryErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.QueryTimeoutError{Op: op, Err: err}
	}
	return err
}
