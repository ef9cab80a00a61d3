// SPDX-License-Identifier: MIT
//
// Package islands labels the connected land regions of a matrix with a
// breadth-first flood fill and records every labeled cell.
//
// A cell is land when its value is at least the threshold (1 by default).
// Cells are scanned in row-major order; each unlabeled land cell seeds a
// new region that is filled before the scan moves on. Neighbours are taken
// N, E, S, W and, with WithDiagonals, also NE, SE, SW, NW, in that order.
//
// Snapshots
//
//	start     the matrix with no labels
//	discover  a land cell seeds region k
//	visit     a cell is dequeued and labeled; its land neighbours are queued
//	done      every land cell carries its region number
//
// Complexity: O(R·C·d) time and O(R·C) memory, d = 4 or 8.
package islands
