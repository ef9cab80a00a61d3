// SPDX-License-Identifier: MIT
//
// Package trace defines the immutable output contract shared by every
// algorithm engine: a Trace is a finite, ordered sequence of Snapshots
// produced by exactly one engine invocation.
//
// Copy-on-snapshot
//
// A Snapshot never references an engine's working state. Engines hand their
// live collections to Recorder.Emit, and Emit deep-copies the State before
// storing it. Later mutation of the engine's maps and slices (a visited set
// that keeps growing, a stack that keeps changing) therefore cannot reach
// back into snapshots already emitted. The copy happens at this one boundary
// so no engine has to remember to do it.
//
// States
//
// The State interface is closed: GraphState, ArrayState, SearchState,
// ListState, TreeState and MatrixState are the only implementations. A
// projector can switch over them exhaustively.
//
// Generation
//
// Generate runs an engine synchronously to completion and classifies the
// outcome:
//
//   - precondition failures (fault.ErrInputParse, ErrStructuralPrecondition,
//     ErrEmptyStructure) and context cancellation pass through untouched;
//   - any other error, a panic, or an empty trace becomes
//     fault.ErrEngineDefect.
//
// Immutability is by convention: Snapshot pointers are shared with callers,
// who must treat them as read-only.
package trace
