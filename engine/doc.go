// SPDX-License-Identifier: MIT
//
// Package engine maps algorithm names to runnable descriptors.
//
// A descriptor decodes a loose parameter map (as read from flags, YAML or
// a UI form) into a typed parameter struct with mapstructure, rejecting
// unknown keys, and then runs its algorithm through trace.Generate so every
// failure arrives already classified:
//
//	reg := engine.Builtin()
//	out, err := reg.Run("bfs", engine.Input{Graph: g}, map[string]any{"start": 1})
//
// Graph parameters name nodes by value, never by id.
package engine
