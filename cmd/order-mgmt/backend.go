package main

import (
	"context"
	"time"
)

const (
	databaseName = "Database XYZ"
	externalName = "Service Audit"
)

// DependencyError reports a failed call to a simulated dependency.
type DependencyError struct {
	What string
}

func (e *DependencyError) Error() string {
	return e.What + " failed to process request"
}

// mockedCall stands in for a call to an unreliable dependency: it waits for
// delay (if positive) and then fails if shouldFail is set. The wait ends early
// with the context error when ctx is done.
func mockedCall(ctx context.Context, what string, delay time.Duration, shouldFail bool) error {
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	if shouldFail {
		return &DependencyError{What: what}
	}
	return nil
}

func callDatabase(ctx context.Context, delay time.Duration, shouldFail bool) error {
	return mockedCall(ctx, databaseName, delay, shouldFail)
}

func callExternal(ctx context.Context, delay time.Duration, shouldFail bool) error {
	return mockedCall(ctx, externalName, delay, shouldFail)
}
