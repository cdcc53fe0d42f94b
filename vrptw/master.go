// SPDX-License-Identifier: MIT

package vrptw

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// MasterColumn is one route as seen by the master LP.
type MasterColumn struct {
	Requests []int // request indices, 0-based
	Cost     float64
}

// MasterProblem is the restricted master LP:
//
//	min  Σ_r cost_r·x_r + Penalty·a
//	s.t. Σ_{r∋i} x_r ≥ 1        for every request i   (dual π_i ≥ 0)
//	     Σ_r x_r − a ≤ Vehicles                        (dual −μ, μ ≥ 0)
//	     x, a ≥ 0
//
// The artificial a keeps the LP feasible while the pool cannot yet serve
// every request within the fleet.
type MasterProblem struct {
	Requests int
	Vehicles int
	Columns  []MasterColumn
	Penalty  float64
}

// MasterSolution carries the primal values and the duals used for pricing.
type MasterSolution struct {
	Objective  float64
	X          []float64 // per column
	Artificial float64
	Duals      []float64 // π, per request
	FleetDual  float64   // μ ≥ 0, charged once per route
}

// Master solves restricted master problems. Implementations must return
// optimal primal values and optimal duals of the same LP.
type Master interface {
	Solve(ctx context.Context, mp MasterProblem) (MasterSolution, error)
}

// SimplexMaster solves the master with gonum's simplex, once in primal
// standard form for x and once in dual standard form for (π, μ).
type SimplexMaster struct {
	// Tol is the simplex tolerance; 0 means 1e-10.
	Tol float64
}

const defaultSimplexTol = 1e-10

// Solve implements Master.
//
// Primal standard form, variables [x (R) | s (m) | a | f]:
//
//	Σ_{r∋i} x_r − s_i = 1,   Σ x_r − a + f = V.
//
// Dual standard form, variables [π (m) | μ | t (R) | u]:
//
//	min −Σπ_i + V·μ   s.t.  Σ_{i∈r} π_i − μ + t_r = c_r,   μ + u = Penalty.
//
// Complexity: two simplex runs on (m+1)×(R+m+2) and (R+1)×(m+R+2) systems.
func (s SimplexMaster) Solve(ctx context.Context, mp MasterProblem) (MasterSolution, error) {
	if err := ctx.Err(); err != nil {
		return MasterSolution{}, err
	}
	if err := mp.validate(); err != nil {
		return MasterSolution{}, err
	}
	tol := s.Tol
	if tol == 0 {
		tol = defaultSimplexTol
	}

	m, nCols := mp.Requests, len(mp.Columns)
	v := float64(mp.Vehicles)

	// 1) Primal.
	pn := nCols + m + 2
	pc := make([]float64, pn)
	pa := mat.NewDense(m+1, pn, nil)
	pb := make([]float64, m+1)
	for r, col := range mp.Columns {
		pc[r] = col.Cost
		for _, i := range col.Requests {
			pa.Set(i, r, 1)
		}
		pa.Set(m, r, 1)
	}
	for i := 0; i < m; i++ {
		pa.Set(i, nCols+i, -1)
		pb[i] = 1
	}
	pc[nCols+m] = mp.Penalty
	pa.Set(m, nCols+m, -1)
	pa.Set(m, nCols+m+1, 1)
	pb[m] = v

	obj, x, err := lp.Simplex(pc, pa, pb, tol, nil)
	if err != nil {
		return MasterSolution{}, fmt.Errorf("%w: primal: %v", ErrMaster, err)
	}

	// 2) Dual.
	dn := m + 1 + nCols + 1
	dc := make([]float64, dn)
	da := mat.NewDense(nCols+1, dn, nil)
	db := make([]float64, nCols+1)
	for i := 0; i < m; i++ {
		dc[i] = -1
	}
	dc[m] = v
	for r, col := range mp.Columns {
		sign := 1.0
		if col.Cost < 0 {
			sign = -1
		}
		for _, i := range col.Requests {
			da.Set(r, i, sign)
		}
		da.Set(r, m, -sign)
		da.Set(r, m+1+r, sign)
		db[r] = sign * col.Cost
	}
	da.Set(nCols, m, 1)
	da.Set(nCols, dn-1, 1)
	db[nCols] = mp.Penalty

	dobj, y, err := lp.Simplex(dc, da, db, tol, nil)
	if err != nil {
		return MasterSolution{}, fmt.Errorf("%w: dual: %v", ErrMaster, err)
	}
	if gap := math.Abs(obj + dobj); gap > 1e-6*math.Max(1, math.Abs(obj)) {
		return MasterSolution{}, fmt.Errorf("%w: duality gap %g", ErrMaster, gap)
	}

	return MasterSolution{
		Objective:  obj,
		X:          clampNonNegative(x[:nCols]),
		Artificial: math.Max(0, x[nCols+m]),
		Duals:      clampNonNegative(y[:m]),
		FleetDual:  math.Max(0, y[m]),
	}, nil
}

func (mp MasterProblem) validate() error {
	if mp.Requests < 1 || mp.Vehicles < 1 || len(mp.Columns) == 0 {
		return fmt.Errorf("%w: empty master (requests=%d vehicles=%d columns=%d)",
			ErrMaster, mp.Requests, mp.Vehicles, len(mp.Columns))
	}
	covered := make([]bool, mp.Requests)
	for r, col := range mp.Columns {
		if len(col.Requests) == 0 {
			return fmt.Errorf("%w: column %d serves no request", ErrMaster, r)
		}
		for _, i := range col.Requests {
			if i < 0 || i >= mp.Requests {
				return fmt.Errorf("%w: column %d: request %d out of range", ErrMaster, r, i)
			}
			covered[i] = true
		}
	}
	for i, ok := range covered {
		if !ok {
			return fmt.Errorf("%w: request %d is in no column", ErrMaster, i)
		}
	}

	return nil
}

func clampNonNegative(v []float64) []float64 {
	out := make([]float64, len(v))
	for k, x := range v {
		if x > 0 {
			out[k] = x
		}
	}

	return out
}
