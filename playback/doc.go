// SPDX-License-Identifier: MIT
//
// Package playback replays a trace.Trace under manual or timed control.
//
// A Controller is a small state machine:
//
//	Idle --Load--> Ready --Play--> Playing <--Pause/Play--> Paused
//	                                  |
//	                                  +--last index--> Complete
//
// Step and StepBack move one snapshot at a time from any state except
// Playing; Reset returns to Ready at index 0 from anywhere; Play from
// Complete restarts at index 0.
//
// Timed advance
//
// While Playing, each tick advances the index, applies the snapshot by
// notifying the listener, and schedules the next tick unless the last
// snapshot was reached. Every scheduled tick carries the controller's epoch
// at the time it was scheduled. Load, Unload, Pause, Reset and Close bump the
// epoch and stop the pending timer, so a tick that fires against a
// superseded trace or state is dropped without effect.
//
// Ticks commit under the controller's mutex and the next tick is scheduled
// only after the commit, so no two ticks ever race. The listener runs after
// the commit, outside the lock, and may call back into the controller.
//
// Time is injected through Scheduler. Production code uses the wall clock;
// tests drive a ManualScheduler.
package playback
