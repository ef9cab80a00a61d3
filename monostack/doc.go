// SPDX-License-Identifier: MIT
//
// Package monostack implements the monotonic-stack scan behind "next
// greater element", "next smaller element" and "days until warmer".
//
// One left-to-right pass keeps a stack of indices whose values are ordered
// under the configured comparison. For each new index, every stacked index
// whose value the current one beats (strictly) is popped and receives its
// answer; then the current index is pushed. Each index is pushed exactly
// once and popped at most once, so the scan is O(n). Indices still on the
// stack at the end keep the sentinel.
//
// The answer recorded on a pop is either the current value (AnswerValue) or
// the distance between the two indices (AnswerDistance).
//
// Snapshots: start, compare (stack top against current), pop, push, done.
package monostack
