// SPDX-License-Identifier: MIT

// Pulse search for the ESPPRC: exact depth-first enumeration with pruning.
//
// From the origin, successors are tried in ascending arc cost. A branch is
// cut when:
//  1. the extension is resource-infeasible (resource.Extend);
//  2. the destination can no longer be reached in time or within capacity
//     (shortest travel times, resource.Reach);
//  3. cost + lb(j) cannot beat the incumbent (or exceeds the threshold in
//     enumeration mode), where lb(j) is the larger of
//     - the shortest cost from j to the destination, when the arc costs
//     contain no negative cycle, and
//     - minIn(dest) + Σ min(0, minIn(k)) over unvisited k ≠ dest.
//     Both never exceed the true completion cost, so the search is exact.
//
// With MaxPaths = k the k cheapest paths are kept and the pruning bound is the
// k-th best cost. The budget (MaxLabels counts pulses here, TimeLimit,
// context) is polled every checkEvery pulses.
//
// Complexity: exponential in the worst case; O(n³) precompute for bounds.

package espprc

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/katalvlaran/lvroute/matrix"
	"github.com/katalvlaran/lvroute/model"
	"github.com/katalvlaran/lvroute/resource"
)

// Pulse is the pulse strategy.
type Pulse struct {
	opts Options
}

// NewPulse returns a pulse solver for opts.
// Errors: ErrBadOptions.
func NewPulse(opts Options) (*Pulse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Pulse{opts: opts}, nil
}

// Method implements Solver.
func (s *Pulse) Method() Method { return MethodPulse }

// Solve implements Solver.
//
// In enumeration mode (Options.Enumerate) Paths holds every path with cost
// ≤ Threshold; reaching MaxPaths stops the search with StatusInterrupted.
func (s *Pulse) Solve(ctx context.Context, p *model.Problem) (Solution, error) {
	if err := checkProblem(p); err != nil {
		return Solution{}, err
	}
	start := time.Now()

	reach, err := resource.NewReach(p)
	if err != nil {
		return Solution{}, err
	}

	var sol Solution
	e, err := newPulseEngine(p, reach, s.opts, newBudget(ctx, s.opts, start), &sol.Stats)
	if err != nil {
		return Solution{}, err
	}
	e.run()
	sol.Paths = e.found
	sortPaths(sol.Paths)

	return finish(MethodPulse, s.opts, sol, e.b.stopped || e.full, start)
}

type pulseEngine struct {
	p     *model.Problem
	reach *resource.Reach
	b     *budget
	stats *Stats

	eps       float64
	k         int
	enumerate bool
	threshold float64
	dest      int

	order     [][]int   // successors by ascending arc cost
	costTo    []float64 // shortest cost to dest; nil with a negative cycle
	negIn     []float64 // min(0, cheapest incoming arc)
	minInDest float64

	openNeg float64 // Σ negIn over unvisited nodes other than dest
	path    []int
	found   []Path
	full    bool
}

func newPulseEngine(p *model.Problem, reach *resource.Reach, o Options, b *budget, stats *Stats) (*pulseEngine, error) {
	e := &pulseEngine{
		p:         p,
		reach:     reach,
		b:         b,
		stats:     stats,
		eps:       o.Eps,
		k:         o.MaxPaths,
		enumerate: o.Enumerate,
		threshold: o.Threshold,
		dest:      p.Destination(),
	}
	if err := e.precompute(); err != nil {
		return nil, err
	}

	return e, nil
}

// precompute builds the branching order and both cost bounds over the
// preprocessed arcs.
func (e *pulseEngine) precompute() error {
	n := e.p.N()
	inf := math.Inf(1)

	arcs, err := matrix.NewDense(n, n, matrix.WithAllowInf())
	if err != nil {
		return err
	}
	_ = arcs.Fill(infs(n * n))

	minIn := infs(n)
	e.order = make([][]int, n)
	for i := 0; i < n; i++ {
		succ := append([]int(nil), e.p.Successors(i)...)
		sort.SliceStable(succ, func(a, b int) bool { return e.p.Cost(i, succ[a]) < e.p.Cost(i, succ[b]) })
		e.order[i] = succ
		for _, j := range succ {
			c := e.p.Cost(i, j)
			_ = arcs.Set(i, j, c)
			if c < minIn[j] {
				minIn[j] = c
			}
		}
	}

	dist, negative, err := matrix.ShortestPaths(arcs)
	if err != nil {
		return err
	}
	if !negative {
		e.costTo = make([]float64, n)
		for v := 0; v < n; v++ {
			e.costTo[v] = dist.Get(v, e.dest)
		}
	}

	e.negIn = make([]float64, n)
	for v := 0; v < n; v++ {
		e.negIn[v] = math.Min(0, minIn[v])
		if v != e.dest && v != e.p.Origin() {
			e.openNeg += e.negIn[v]
		}
	}
	e.minInDest = minIn[e.dest]
	if e.minInDest == inf {
		e.order = make([][]int, n) // destination has no entering arc
	}

	return nil
}

func infs(n int) []float64 {
	out := make([]float64, n)
	for k := range out {
		out[k] = math.Inf(1)
	}

	return out
}

// bound is the admissible lower bound on the cost from j to the destination
// given open, the negative-in-arc mass still unvisited.
func (e *pulseEngine) bound(j int, open float64) float64 {
	lb := e.minInDest + open
	if e.costTo != nil && e.costTo[j] > lb {
		lb = e.costTo[j]
	}

	return lb
}

// incumbent is the cost a new path must beat.
func (e *pulseEngine) incumbent() float64 {
	if e.enumerate {
		return e.threshold + e.eps
	}
	if len(e.found) < e.k {
		return math.Inf(1)
	}

	return e.found[len(e.found)-1].Cost - e.eps
}

func (e *pulseEngine) run() {
	o := e.p.Origin()
	root := resource.Initial(e.p)
	if o != e.dest && !e.reach.CanReach(root, o, e.dest) {
		return
	}
	e.path = append(e.path[:0], o)
	e.pulse(o, root)
}

func (e *pulseEngine) pulse(v int, st resource.State) {
	e.stats.Pulses++
	if e.b.exceeded(e.stats.Pulses) {
		return
	}
	for _, j := range e.order[v] {
		if e.b.stopped || e.full {
			return
		}
		next, verdict := resource.Extend(e.p, st, v, j)
		if verdict != resource.Feasible {
			continue
		}
		if j == e.dest {
			e.record(next)
			continue
		}
		if !e.reach.CanReach(next, j, e.dest) {
			continue
		}
		open := e.openNeg - e.negIn[j]
		if lb := next.Cost + e.bound(j, open); lb > e.incumbent() || (!e.enumerate && lb == e.incumbent()) {
			continue
		}

		e.path = append(e.path, j)
		e.openNeg = open
		e.pulse(j, next)
		e.openNeg += e.negIn[j]
		e.path = e.path[:len(e.path)-1]
	}
}

// record stores the completed path e.path + dest if it qualifies.
func (e *pulseEngine) record(st resource.State) {
	if e.enumerate {
		if st.Cost > e.incumbent() {
			return
		}
	} else if st.Cost >= e.incumbent() {
		return
	}

	nodes := append(append([]int(nil), e.path...), e.dest)
	path := tracePath(e.p, nodes)
	pos := sort.Search(len(e.found), func(k int) bool { return e.found[k].Cost > path.Cost })
	e.found = append(e.found, Path{})
	copy(e.found[pos+1:], e.found[pos:])
	e.found[pos] = path

	if e.enumerate {
		if len(e.found) >= e.k {
			e.full = true
		}
		return
	}
	if len(e.found) > e.k {
		e.found = e.found[:e.k]
	}
}
