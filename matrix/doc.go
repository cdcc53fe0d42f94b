// SPDX-License-Identifier: MIT

// Package matrix provides the dense square matrices used to describe resource
// graphs: arc costs, travel times and load increments.
//
// Storage is row-major (offset = i*cols + j) behind a small Matrix interface
// whose accessors return sentinel errors instead of panicking.
//
// Numeric policy:
//   - NaN is always rejected by Set.
//   - +Inf is the "no arc" marker and is accepted only by matrices created
//     with WithAllowInf(); −Inf is always rejected.
//
// Algorithms:
//   - FloydWarshall: in-place all-pairs shortest paths, negative arcs allowed.
//   - ShortestPaths: copy-based closure plus a negative-cycle probe, used by
//     the pulse search to derive admissible completion bounds.
//
// Complexity quicksheet:
//   - NewDense/FromRows: O(r*c); At/Set/Get: O(1); Clone: O(r*c);
//     FloydWarshall: O(n³) time, O(1) extra space.
package matrix
