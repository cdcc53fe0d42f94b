// SPDX-License-Identifier: MIT

package espprc

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvroute/model"
)

// BatchResult pairs one solve outcome with its error (ErrInfeasible,
// ErrBudgetExceeded or nil).
type BatchResult struct {
	Solution Solution
	Err      error
}

// SolveBatch runs solver on every problem with at most workers concurrent
// calls (workers ≤ 0 means GOMAXPROCS). Results keep the input order.
// Problems are read-only, so the calls share nothing mutable.
//
// The returned error is non-nil only when the batch itself failed: a nil
// problem, or ctx cancelled before every call started. Per-problem outcomes,
// including infeasibility and interrupted searches, are in the results.
func SolveBatch(ctx context.Context, solver Solver, problems []*model.Problem, workers int) ([]BatchResult, error) {
	for _, p := range problems {
		if p == nil {
			return nil, ErrNilProblem
		}
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]BatchResult, len(problems))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range problems {
		i, p := i, p
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			sol, err := solver.Solve(gctx, p)
			out[i] = BatchResult{Solution: sol, Err: err}
			if err != nil && !errors.Is(err, ErrInfeasible) && !errors.Is(err, ErrBudgetExceeded) {
				return err
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}

	return out, ctx.Err()
}
