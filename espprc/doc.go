// SPDX-License-Identifier: MIT

// Package espprc solves the Elementary Shortest Path Problem with Resource
// Constraints: find a minimum-cost simple path from origin to destination
// whose time windows and capacity hold at every node.
//
// Two interchangeable strategies implement the Solver capability:
//
//   - LabelSetting: dynamic programming over labels with dominance and
//     unreachable-node marking; optionally the ng-route relaxation with
//     critical-set restarts.
//   - Pulse: bounded depth-first search with admissible cost bounds; also
//     enumerates every path under a cost threshold.
//
// Costs may be negative (reduced costs); time and load never decrease, which
// keeps dominance and reachability pruning sound.
//
// Outcomes are structured: every Solution carries a Status, and the error is
// ErrInfeasible (no path exists), ErrBudgetExceeded (stopped early, best
// paths so far returned) or nil. Invalid input never reaches the solver:
// model.NewProblem rejects it first.
//
// Example:
//
//	solver, _ := espprc.New(espprc.MethodLabelSetting, espprc.WithMaxPaths(3))
//	sol, err := solver.Solve(ctx, problem)
//	switch {
//	case errors.Is(err, espprc.ErrInfeasible):
//	    // no improving path
//	case err == nil:
//	    fmt.Println(sol.Best.Nodes, sol.Best.Cost)
//	}
//
// Solvers keep no state between calls and may be shared across goroutines;
// SolveBatch runs independent problems on a bounded worker group.
package espprc
