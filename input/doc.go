// SPDX-License-Identifier: MIT
//
// Package input normalizes raw user text into typed structures.
//
// What
//
//   - ParseArray:  whitespace and/or comma delimited numbers → []float64.
//   - ParseInts:   the same grammar restricted to integers → []int
//     (graph node values, tree insert sequences).
//   - ParseMatrix: newline separated rows of comma delimited numbers →
//     *matrix.Dense. Blank lines are ignored.
//
// Errors
//
// Every failure is a *ParseError that matches ErrParse and
// fault.ErrInputParse under errors.Is. The error carries the 1-based line
// and token position of the first offending token, so a front-end can point
// at it. NaN and ±Inf are rejected like any other non-numeric token.
//
// Complexity: O(len(text)) for every parser.
package input
