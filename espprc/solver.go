// SPDX-License-Identifier: MIT

package espprc

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/lvroute/metrics"
	"github.com/katalvlaran/lvroute/model"
)

// New builds the Solver for method with DefaultOptions overridden by opts.
//
// Errors: ErrUnknownMethod, ErrBadOptions.
func New(method Method, opts ...Option) (Solver, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	switch method {
	case MethodLabelSetting:
		return &LabelSetting{opts: o}, nil
	case MethodPulse:
		return &Pulse{opts: o}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, method)
	}
}

// budget enforces MaxLabels, TimeLimit and context cancellation.
// The clock and the context are polled every checkEvery ticks.
type budget struct {
	ctx         context.Context
	limit       int
	useDeadline bool
	deadline    time.Time
	ticks       int
	stopped     bool
}

const checkEvery = 256

func newBudget(ctx context.Context, o Options, start time.Time) *budget {
	b := &budget{ctx: ctx, limit: o.MaxLabels}
	if o.TimeLimit > 0 {
		b.useDeadline = true
		b.deadline = start.Add(o.TimeLimit)
	}

	return b
}

// exceeded reports whether the search must stop; count is the number of
// labels or pulses spent so far. Once true it stays true.
func (b *budget) exceeded(count int) bool {
	if b.stopped {
		return true
	}
	if b.limit > 0 && count >= b.limit {
		b.stopped = true
		return true
	}
	b.ticks++
	if b.ticks&(checkEvery-1) != 0 {
		return false
	}
	if b.ctx.Err() != nil || (b.useDeadline && time.Now().After(b.deadline)) {
		b.stopped = true
	}

	return b.stopped
}

// tracePath replays nodes from the origin and returns the Path with its
// per-node trace. nodes must be feasible for p.
func tracePath(p *model.Problem, nodes []int) Path {
	o := nodes[0]
	start := p.Early(o)
	trace := make([]Stop, len(nodes))
	trace[0] = Stop{Node: o, Arrival: start, Start: start}
	t := start + p.Service(o)
	var cost, load float64
	for k := 1; k < len(nodes); k++ {
		i, j := nodes[k-1], nodes[k]
		arrival := t + p.Time(i, j)
		begin := math.Max(arrival, p.Early(j))
		cost += p.Cost(i, j)
		load += p.Load(i, j)
		trace[k] = Stop{Node: j, Arrival: arrival, Start: begin, Load: load, Cost: cost}
		t = begin + p.Service(j)
	}

	return Path{
		Nodes: append([]int(nil), nodes...),
		Cost:  cost,
		Time:  t,
		Load:  load,
		Trace: trace,
	}
}

// isElementary reports whether nodes repeats no node, the closing origin of
// an origin == destination tour excepted. It also returns the repeated nodes.
func isElementary(p *model.Problem, nodes []int) (bool, []int) {
	seen := make([]bool, p.N())
	var repeated []int
	last := len(nodes) - 1
	for k, v := range nodes {
		if k == last && v == p.Origin() && v == p.Destination() && k > 0 {
			continue
		}
		if seen[v] {
			repeated = append(repeated, v)
			continue
		}
		seen[v] = true
	}

	return len(repeated) == 0, repeated
}

// sortPaths orders by cost, then lexicographically by nodes for determinism.
func sortPaths(paths []Path) {
	sort.SliceStable(paths, func(a, b int) bool {
		if paths[a].Cost != paths[b].Cost {
			return paths[a].Cost < paths[b].Cost
		}
		x, y := paths[a].Nodes, paths[b].Nodes
		for k := 0; k < len(x) && k < len(y); k++ {
			if x[k] != y[k] {
				return x[k] < y[k]
			}
		}

		return len(x) < len(y)
	})
}

// finish fills Status, Best and Stats, records metrics and logs the outcome.
func finish(method Method, o Options, sol Solution, interrupted bool, start time.Time) (Solution, error) {
	sol.Stats.Elapsed = time.Since(start)
	if len(sol.Paths) > 0 {
		sol.Best = sol.Paths[0]
	}

	var err error
	switch {
	case interrupted:
		sol.Status = StatusInterrupted
		err = ErrBudgetExceeded
	case len(sol.Paths) == 0:
		sol.Status = StatusInfeasible
		err = ErrInfeasible
	default:
		sol.Status = StatusOptimal
	}

	metrics.ObserveSolve(method.String(), sol.Status.String(), sol.Stats.Elapsed, sol.Stats.events())
	o.logger().WithFields(logrus.Fields{
		"method":    method.String(),
		"status":    sol.Status.String(),
		"paths":     len(sol.Paths),
		"labels":    sol.Stats.Labels,
		"dominated": sol.Stats.Dominated,
		"pulses":    sol.Stats.Pulses,
		"elapsed":   sol.Stats.Elapsed,
	}).Debug("espprc: search finished")

	return sol, err
}

func checkProblem(p *model.Problem) error {
	if p == nil {
		return ErrNilProblem
	}

	return nil
}
