// SPDX-License-Identifier: MIT

// Package vrptw solves the vehicle routing problem with time windows by
// column generation over ESPPRC pricing.
//
// An instance (model.Solomon) is turned into a pricing network: the depot as
// origin, one node per request, and a depot copy as destination. The
// restricted master LP chooses routes from a pool so that every request is
// covered and at most Fleet.Vehicles routes are used; its duals become
// reduced arc costs, and the configured espprc.Solver searches routes with
// negative reduced cost. The loop ends when pricing proves none exists.
//
// The integer route set is then found by branch-and-bound over the pool.
// With Options.ExactIntegral every route whose reduced cost fits in the gap
// between the LP bound and the best integer solution is enumerated first,
// which makes the result provably optimal (Result.Proven).
//
// The master LP is a collaborator (Master); SimplexMaster uses gonum.
package vrptw
