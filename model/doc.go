// SPDX-License-Identifier: MIT

// Package model holds the instance data shared by every solver in lvroute.
//
// Two kinds of instances live here:
//
//   - Problem: a single ESPPRC instance. Square cost, travel-time and load
//     matrices of order n, per-node time windows and service durations, a
//     vehicle capacity, an origin and a destination. Node indices are
//     zero-based; origin and destination may coincide.
//   - Solomon: a VRPTW instance with coordinates, a fleet and a request list.
//     Solomon.Network turns it into the Problem solved by the pricing loop.
//
// Arc conventions:
//   - cost(i,j) is any finite float (negative reduced costs are expected);
//   - time(i,j) is ≥ 0 or +Inf, where +Inf means "no arc";
//   - load(i,j) is ≥ 0, conventionally the demand of j.
//
// Validation is eager: NewProblem and Solomon.Validate reject malformed input
// with a *ValidationError that matches ErrInvalidInstance under errors.Is.
// A constructed Problem is read-only and safe for concurrent solvers.
//
// Complexity:
//   - NewProblem: O(n²) validation plus O(n²) forward-star preprocessing.
//   - WithCosts: O(n²) validation of the new cost matrix; other data is shared.
package model
