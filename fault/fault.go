// SPDX-License-Identifier: MIT
//
// Package fault defines the error taxonomy shared by every stepwise package.
//
// Four categories exist:
//
//	ErrInputParse              - malformed numeric / matrix text.
//	ErrStructuralPrecondition  - the structure cannot be processed as asked
//	                             (missing start node, unweighted graph for a
//	                             shortest-path run, self-loop edge, ...).
//	ErrEmptyStructure          - pop/dequeue-style access on an empty structure.
//	ErrEngineDefect            - an engine failed after its preconditions held.
//
// Packages declare their own sentinels with Define so that a caller can match
// either the precise cause or the whole category:
//
//	var ErrSelfLoop = fault.Define(fault.ErrStructuralPrecondition, "core: self-loop not allowed")
//
//	errors.Is(err, core.ErrSelfLoop)                  // precise
//	errors.Is(err, fault.ErrStructuralPrecondition)   // category
package fault

import "errors"

// Category sentinels.
var (
	// ErrInputParse marks malformed user input text.
	ErrInputParse = errors.New("input parse error")

	// ErrStructuralPrecondition marks a structure that violates an engine or
	// mutator precondition.
	ErrStructuralPrecondition = errors.New("structural precondition violated")

	// ErrEmptyStructure marks an access on an empty structure.
	ErrEmptyStructure = errors.New("empty structure")

	// ErrEngineDefect marks a failure that happened after all preconditions
	// were confirmed. It is a bug in the engine, not a user error.
	ErrEngineDefect = errors.New("engine defect")
)

// sentinel is a named error that belongs to one category.
type sentinel struct {
	msg      string
	category error
}

func (s *sentinel) Error() string { return s.msg }

// Unwrap exposes the category so errors.Is matches it.
func (s *sentinel) Unwrap() error { return s.category }

// Define returns a new sentinel error with the given message that matches
// category under errors.Is.
func Define(category error, msg string) error {
	return &sentinel{msg: msg, category: category}
}

// IsPrecondition reports whether err belongs to one of the categories that
// are detected before a trace is produced (parse, structural, empty).
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrInputParse) ||
		errors.Is(err, ErrStructuralPrecondition) ||
		errors.Is(err, ErrEmptyStructure)
}

// Category returns the category sentinel err belongs to, or nil when err is
// not classified.
func Category(err error) error {
	for _, c := range []error{ErrInputParse, ErrStructuralPrecondition, ErrEmptyStructure, ErrEngineDefect} {
		if errors.Is(err, c) {
			return c
		}
	}
	return nil
}
