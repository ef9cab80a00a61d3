// SPDX-License-Identifier: MIT
//
// Package linear replays a list of stack or queue operations and records
// each one as a snapshot.
//
// The operation list is validated by a dry run before anything is recorded:
// removing or reading from an empty structure fails with ErrEmpty (a
// fault.ErrEmptyStructure), and an operation that does not belong to the
// chosen mode fails with ErrWrongMode. Validation never produces a partial
// trace.
//
// Operations are written as text, one per comma, semicolon or line:
//
//	push 3, push 4, pop, peek
//	enqueue 1; enqueue 2; dequeue; front
package linear
