package store

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is matched by every error caused by the store being closed,
	// whether the request could not be submitted or its reply could not be
	// delivered.
	ErrClosed = errors.New("store: handle closed")

	ErrSubmissionFailed = errors.New("store: request submission failed")
	ErrDeliveryFailed   = errors.New("store: reply delivery failed")

	ErrInvalidQueueCapacity = errors.New("store: queue capacity must be positive")
	ErrInvalidBTreeDegree   = errors.New("store: btree degree must be at least 2")
	ErrMissingLogger        = errors.New("store: missing logger")
)

var (
	errSubmissionClosed = fmt.Errorf("%w: %w", ErrSubmissionFailed, ErrClosed)
	errDeliveryClosed   = fmt.Errorf("%w: %w", ErrDeliveryFailed, ErrClosed)
)
