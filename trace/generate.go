// SPDX-License-Identifier: MIT
//
// File: generate.go
// Role: the single entry point that runs an engine and classifies failures.

package trace

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/stepwise/fault"
)

// Engine is an algorithm over structure S with parameters P.
type Engine[S, P any] func(S, P) (*Trace, error)

// Generate runs engine to completion over structure with params.
//
// Precondition errors and context cancellation are returned as-is. Every
// other failure (an unexpected error, a panic, a nil or empty trace) is
// reported as fault.ErrEngineDefect so callers can tell bad input from a
// broken engine.
func Generate[S, P any](name string, engine Engine[S, P], structure S, params P) (tr *Trace, err error) {
	defer func() {
		if p := recover(); p != nil {
			tr = nil
			err = fmt.Errorf("%s: %w: panic: %v", name, fault.ErrEngineDefect, p)
		}
	}()

	tr, err = engine(structure, params)
	if err != nil {
		if passThrough(err) {
			return nil, err
		}

		return nil, fmt.Errorf("%s: %w: %w", name, fault.ErrEngineDefect, err)
	}
	if tr == nil || tr.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyTrace)
	}

	return tr, nil
}

func passThrough(err error) bool {
	return fault.IsPrecondition(err) ||
		errors.Is(err, fault.ErrEngineDefect) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
