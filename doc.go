// SPDX-License-Identifier: MIT

// Package lvroute is a toolkit for resource-constrained routing: exact
// elementary shortest paths with time windows and capacity, and a column
// generation solver for the vehicle routing problem with time windows.
//
// 🚀 What is inside?
//
//	• model/    — validated instances: ESPPRC graphs (Problem), VRPTW fleets
//	              (Solomon), YAML and Solomon-text readers, path checks
//	• matrix/   — dense float64 matrices and Floyd–Warshall closure
//	• resource/ — resource states, extension, dominance, reachability
//	• espprc/   — two interchangeable exact solvers: label setting (with an
//	              optional ng-route relaxation) and pulse search
//	• vrptw/    — restricted master LP (gonum simplex), pricing loop, route
//	              pool, exact set partitioning over the pool
//	• metrics/  — Prometheus collectors for both solvers
//	• cmd/lvroute — CLI with espprc and vrptw subcommands
//
// ✨ Guarantees
//
//   - Paths are elementary and respect every time window and the capacity.
//   - Only costs may be negative; times and loads are monotone along a path,
//     which is what makes dominance and reachability pruning sound.
//   - Every blocking call takes a context.Context; budgets stop a search
//     cleanly and report the best result found so far.
//
// Quick start:
//
//	solver, _ := espprc.New(espprc.MethodPulse, espprc.WithMaxPaths(3))
//	sol, err := solver.Solve(ctx, problem)
//
//	res, err := vrptw.Solve(ctx, instance, vrptw.DefaultOptions())
//	fmt.Println(res.TotalDistance, res.Routes)
package lvroute
