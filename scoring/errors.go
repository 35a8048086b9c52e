// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/propbowl/store"
)

// Business-rule rejections. Callers surface these without retrying.
var (
	ErrContestLocked       = errors.New("contest is locked")
	ErrAlreadyGraded       = errors.New("prop bet has already been graded")
	ErrInvalidAnswerFormat = errors.New("answer does not match the prop bet's format")
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("administrator access required")
	ErrNoActiveContest     = errors.New("no active contest")
	ErrContestActive       = errors.New("another contest is already active")
	ErrConflict            = errors.New("conflicts with existing data")
	ErrInvalidInput        = errors.New("invalid input")
)

// ErrStoreUnavailable is the only error worth retrying, with backoff, by
// the caller. Nothing in this package retries.
var ErrStoreUnavailable = errors.New("entity store unavailable")

// fromStore maps a store error onto the scoring taxonomy. what names the
// entity for not-found messages.
func fromStore(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, store.ErrConflict):
		return fmt.Errorf("%w: %s", ErrConflict, what)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case isTaxonomy(err):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}

func isTaxonomy(err error) bool {
	for _, known := range []error{
		ErrContestLocked, ErrAlreadyGraded, ErrInvalidAnswerFormat, ErrNotFound,
		ErrUnauthorized, ErrNoActiveContest, ErrContestActive, ErrConflict,
		ErrInvalidInput, ErrStoreUnavailable,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
