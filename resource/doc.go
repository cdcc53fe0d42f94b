// SPDX-License-Identifier: MIT

// Package resource is the resource extension engine shared by the ESPPRC
// strategies.
//
// A State carries the accumulated cost, time and load of a partial path plus
// its visited-node bitset. Extend pushes a State along one arc and either
// returns the successor State or a Verdict naming the violated constraint:
//
//	infeasible  if j ∈ visited (except j == destination == origin)
//	infeasible  if i == j or time(i,j) = +Inf
//	infeasible  if time + time(i,j) > late(j)
//	infeasible  if load + load(i,j) > capacity
//	otherwise   time' = max(time + time(i,j), early(j)) + service(j)
//	            load' = load + load(i,j)
//	            cost' = cost + cost(i,j)
//	            visited' = visited ∪ {j}
//
// Extend is pure: the input State is never mutated and the same inputs always
// yield the same output. Time and load never decrease along a path; cost may.
//
// Dominates implements the strict dominance partial order used to discard
// labels, and Reach marks nodes that a partial path can no longer reach,
// which strengthens dominance without losing solutions.
package resource
