// SPDX-License-Identifier: MIT

package model

import (
	"math"

	"github.com/katalvlaran/lvroute/matrix"
)

// MinOrder is the smallest accepted number of nodes in a Problem.
const MinOrder = 2

// ProblemSpec is the raw, caller-facing description of an ESPPRC instance.
// All slices are indexed by zero-based node index.
type ProblemSpec struct {
	// Cost, Time and Load are n×n arc matrices. Time may hold +Inf ("no arc");
	// an arc whose Cost is +Inf is treated as absent as well.
	Cost [][]float64
	Time [][]float64
	Load [][]float64

	// Early and Late bound the service start at each node; Service is the
	// time spent there before leaving.
	Early   []float64
	Late    []float64
	Service []float64

	Capacity    float64
	Origin      int
	Destination int
}

// Problem is a validated, read-only ESPPRC instance.
type Problem struct {
	n                   int
	cost, time, load    *matrix.Dense
	early, late, svc    []float64
	capacity            float64
	origin, destination int

	// succ is the forward star after preprocessing, ascending by node index.
	succ [][]int
}

// NewProblem validates spec and builds the forward star.
//
// Stages:
//  1. Shape: n ≥ MinOrder, square matrices and slices of length n.
//  2. Scalars: origin/destination in range, capacity ≥ 0.
//  3. Node data: 0 ≤ early ≤ late, service ≥ 0, no NaN.
//  4. Arcs: time ≥ 0 or +Inf, load ≥ 0 and finite, cost finite on present arcs.
//  5. Preprocessing: see Successors.
//
// Errors: *ValidationError (errors.Is ErrInvalidInstance).
// Complexity: O(n²).
func NewProblem(spec ProblemSpec) (*Problem, error) {
	// 1) Shape.
	n := len(spec.Time)
	if n < MinOrder {
		return nil, invalid("Time", -1, "need at least %d nodes, got %d", MinOrder, n)
	}
	if err := checkSquare("Cost", spec.Cost, n); err != nil {
		return nil, err
	}
	if err := checkSquare("Time", spec.Time, n); err != nil {
		return nil, err
	}
	if err := checkSquare("Load", spec.Load, n); err != nil {
		return nil, err
	}
	for _, s := range []struct {
		name string
		v    []float64
	}{{"Early", spec.Early}, {"Late", spec.Late}, {"Service", spec.Service}} {
		if len(s.v) != n {
			return nil, invalid(s.name, -1, "length %d, want %d", len(s.v), n)
		}
	}

	// 2) Scalars.
	if spec.Origin < 0 || spec.Origin >= n {
		return nil, invalid("Origin", -1, "%d out of range [0,%d)", spec.Origin, n)
	}
	if spec.Destination < 0 || spec.Destination >= n {
		return nil, invalid("Destination", -1, "%d out of range [0,%d)", spec.Destination, n)
	}
	if math.IsNaN(spec.Capacity) || spec.Capacity < 0 {
		return nil, invalid("Capacity", -1, "must be ≥ 0, got %g", spec.Capacity)
	}

	// 3) Node data.
	for i := 0; i < n; i++ {
		if err := checkWindow(i, spec.Early[i], spec.Late[i]); err != nil {
			return nil, err
		}
		if s := spec.Service[i]; math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
			return nil, invalid("Service", i, "must be finite and ≥ 0, got %g", s)
		}
	}

	// 4) Arcs.
	p := &Problem{
		n:           n,
		early:       append([]float64(nil), spec.Early...),
		late:        append([]float64(nil), spec.Late...),
		svc:         append([]float64(nil), spec.Service...),
		capacity:    spec.Capacity,
		origin:      spec.Origin,
		destination: spec.Destination,
	}
	var err error
	if p.cost, err = matrix.NewDense(n, n); err != nil {
		return nil, err
	}
	if p.time, err = matrix.NewDense(n, n, matrix.WithAllowInf()); err != nil {
		return nil, err
	}
	if p.load, err = matrix.NewDense(n, n); err != nil {
		return nil, err
	}

	var c, t, l float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c, t, l = spec.Cost[i][j], spec.Time[i][j], spec.Load[i][j]
			if math.IsNaN(t) || math.IsInf(t, -1) || t < 0 {
				return nil, invalid("Time", i, "column %d: must be ≥ 0 or +Inf, got %g", j, t)
			}
			if math.IsNaN(l) || math.IsInf(l, 0) || l < 0 {
				return nil, invalid("Load", i, "column %d: must be finite and ≥ 0, got %g", j, l)
			}
			if math.IsNaN(c) || math.IsInf(c, -1) {
				return nil, invalid("Cost", i, "column %d: must be finite, got %g", j, c)
			}
			if math.IsInf(c, 1) || math.IsInf(t, 1) {
				// Absent arc: keep the matrices finite except for the time marker.
				c, t = 0, math.Inf(1)
			}
			_ = p.cost.Set(i, j, c)
			_ = p.time.Set(i, j, t)
			_ = p.load.Set(i, j, l)
		}
	}

	// 5) Preprocessing.
	p.buildSuccessors()

	return p, nil
}

func checkSquare(field string, rows [][]float64, n int) error {
	if len(rows) != n {
		return invalid(field, -1, "%d rows, want %d", len(rows), n)
	}
	for i, r := range rows {
		if len(r) != n {
			return invalid(field, i, "%d columns, want %d", len(r), n)
		}
	}

	return nil
}

func checkWindow(i int, early, late float64) error {
	if math.IsNaN(early) || math.IsInf(early, 0) || early < 0 {
		return invalid("Early", i, "must be finite and ≥ 0, got %g", early)
	}
	if math.IsNaN(late) || late < 0 {
		return invalid("Late", i, "must be ≥ 0, got %g", late)
	}
	if early > late {
		return invalid("Late", i, "window [%g,%g] has early > late", early, late)
	}

	return nil
}

// buildSuccessors drops arcs that no path can use:
// self loops, +Inf times, arcs leaving the destination or entering the
// origin (unless origin == destination, where only the closing arc into the
// origin is kept), arcs whose earliest departure misses late(j), and arcs
// whose load alone exceeds the capacity.
func (p *Problem) buildSuccessors() {
	p.succ = make([][]int, p.n)
	closed := p.origin == p.destination
	for i := 0; i < p.n; i++ {
		if i == p.destination && !closed {
			continue
		}
		for j := 0; j < p.n; j++ {
			if i == j || math.IsInf(p.time.Get(i, j), 1) {
				continue
			}
			if j == p.origin && !closed {
				continue
			}
			if p.early[i]+p.svc[i]+p.time.Get(i, j) > p.late[j] {
				continue
			}
			if p.load.Get(i, j) > p.capacity {
				continue
			}
			p.succ[i] = append(p.succ[i], j)
		}
	}
}

// WithCosts returns a Problem sharing every field with p except the cost
// matrix. It is how pricing swaps in reduced costs without revalidating the
// whole instance.
//
// Errors: *ValidationError if cost is nil, of the wrong order, or holds a
// non-finite value on an arc present in p.
// Complexity: O(n²).
func (p *Problem) WithCosts(cost *matrix.Dense) (*Problem, error) {
	if err := matrix.ValidateOrder(cost, p.n); err != nil {
		return nil, invalid("Cost", -1, "%v", err)
	}
	for i := 0; i < p.n; i++ {
		for j := 0; j < p.n; j++ {
			if math.IsInf(p.time.Get(i, j), 1) {
				continue
			}
			if c := cost.Get(i, j); math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, invalid("Cost", i, "column %d: must be finite, got %g", j, c)
			}
		}
	}
	cp := *p
	cp.cost = cost.CloneDense()

	return &cp, nil
}

// N returns the number of nodes.
func (p *Problem) N() int { return p.n }

// Origin returns the origin node index.
func (p *Problem) Origin() int { return p.origin }

// Destination returns the destination node index.
func (p *Problem) Destination() int { return p.destination }

// Capacity returns the load ceiling.
func (p *Problem) Capacity() float64 { return p.capacity }

// Cost returns cost(i,j). Indices must be in range.
func (p *Problem) Cost(i, j int) float64 { return p.cost.Get(i, j) }

// Time returns time(i,j), +Inf when the arc is absent. Indices must be in range.
func (p *Problem) Time(i, j int) float64 { return p.time.Get(i, j) }

// Load returns load(i,j). Indices must be in range.
func (p *Problem) Load(i, j int) float64 { return p.load.Get(i, j) }

// Early returns the earliest service start at i.
func (p *Problem) Early(i int) float64 { return p.early[i] }

// Late returns the latest service start at i.
func (p *Problem) Late(i int) float64 { return p.late[i] }

// Service returns the service duration at i.
func (p *Problem) Service(i int) float64 { return p.svc[i] }

// HasArc reports whether i→j exists in the raw instance (i ≠ j, finite time).
func (p *Problem) HasArc(i, j int) bool {
	return i != j && !math.IsInf(p.time.Get(i, j), 1)
}

// Successors returns the preprocessed forward star of i, ascending by index.
// The slice is shared; callers must not modify it.
func (p *Problem) Successors(i int) []int { return p.succ[i] }

// Costs returns a copy of the cost matrix.
func (p *Problem) Costs() *matrix.Dense { return p.cost.CloneDense() }

// Times returns a copy of the travel-time matrix (+Inf for absent arcs).
func (p *Problem) Times() *matrix.Dense { return p.time.CloneDense() }
