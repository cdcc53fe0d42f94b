// SPDX-License-Identifier: MIT

package vrptw

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvroute/espprc"
	"github.com/katalvlaran/lvroute/model"
)

// rcEps is the reduced-cost tolerance: a column enters only below −rcEps.
const rcEps = 1e-6

// duals is one dual vector of the master: π per request and the fleet dual.
type duals struct {
	pi []float64
	mu float64
}

// mix returns α·center + (1−α)·d.
func (d duals) mix(center duals, alpha float64) duals {
	out := duals{pi: make([]float64, len(d.pi)), mu: alpha*center.mu + (1-alpha)*d.mu}
	for i := range d.pi {
		out.pi[i] = alpha*center.pi[i] + (1-alpha)*d.pi[i]
	}

	return out
}

// reducedCost returns the reduced cost of c under d.
func (d duals) reducedCost(c *column) float64 {
	rc := c.cost + d.mu
	for _, i := range c.requests {
		rc -= d.pi[i]
	}

	return rc
}

// reduced returns the network with arc costs cost(i,j) − π(j) on request
// nodes j and the fleet dual added to arcs leaving the depot.
func reduced(nw *model.Network, d duals) (*model.Problem, error) {
	cost := nw.Costs()
	n := nw.N()
	for i := 0; i < n; i++ {
		for j := 1; j <= len(d.pi); j++ {
			if i != j {
				_ = cost.Set(i, j, cost.Get(i, j)-d.pi[j-1])
			}
		}
	}
	for j := 1; j < n; j++ {
		_ = cost.Set(0, j, cost.Get(0, j)+d.mu)
	}

	return nw.WithCosts(cost)
}

// pricer turns dual vectors into new columns with the espprc solvers.
type pricer struct {
	nw       *model.Network
	primary  espprc.Solver
	fallback espprc.Solver // nil when primary is already pulse
	workers  int
}

func newPricer(nw *model.Network, o Options) (*pricer, error) {
	base := []espprc.Option{
		espprc.WithMaxPaths(o.MaxColumnsPerIter),
		espprc.WithMaxLabels(o.PricingMaxLabels),
		espprc.WithTimeLimit(o.PricingTimeLimit),
		espprc.WithLogger(o.logger()),
	}
	primary, err := espprc.New(o.PricingMethod, base...)
	if err != nil {
		return nil, err
	}
	pr := &pricer{nw: nw, primary: primary, workers: o.Workers}
	if o.PricingMethod != espprc.MethodPulse {
		if pr.fallback, err = espprc.New(espprc.MethodPulse, base...); err != nil {
			return nil, err
		}
	}

	return pr, nil
}

// priced is the outcome of one pricing round.
type priced struct {
	cols []*column
	// exact reports that the search on the true duals completed, so minRC
	// is the true minimum reduced cost.
	exact bool
	minRC float64
}

// price searches negative columns under d. With a smoothed vector the two
// searches run concurrently; every column is screened against d.
func (pr *pricer) price(ctx context.Context, d duals, smoothed *duals) (priced, error) {
	problems := make([]*model.Problem, 0, 2)
	p, err := reduced(pr.nw, d)
	if err != nil {
		return priced{}, err
	}
	problems = append(problems, p)
	if smoothed != nil {
		sp, err := reduced(pr.nw, *smoothed)
		if err != nil {
			return priced{}, err
		}
		problems = append(problems, sp)
	}

	results, err := espprc.SolveBatch(ctx, pr.primary, problems, pr.workers)
	if err != nil {
		return priced{}, err
	}

	out := priced{minRC: math.Inf(1)}
	first := results[0]
	if errors.Is(first.Err, espprc.ErrBudgetExceeded) && pr.fallback != nil {
		sol, ferr := pr.fallback.Solve(ctx, p)
		if ferr != nil && !errors.Is(ferr, espprc.ErrBudgetExceeded) && !errors.Is(ferr, espprc.ErrInfeasible) {
			return priced{}, ferr
		}
		first = espprc.BatchResult{Solution: sol, Err: ferr}
	}
	out.exact = first.Solution.Status != espprc.StatusInterrupted
	if out.exact && first.Solution.Found() {
		out.minRC = first.Solution.Best.Cost
	}

	seen := make(map[string]bool)
	for _, res := range append([]espprc.BatchResult{first}, results[1:]...) {
		for _, path := range res.Solution.Paths {
			c, err := pr.column(path)
			if err != nil {
				return priced{}, err
			}
			key := requestKey(c.requests)
			if seen[key] || d.reducedCost(c) >= -rcEps {
				continue
			}
			seen[key] = true
			out.cols = append(out.cols, c)
		}
	}

	return out, nil
}

// column converts a network path into a pool column with its true distance.
func (pr *pricer) column(path espprc.Path) (*column, error) {
	dist, err := pr.nw.PathCost(path.Nodes)
	if err != nil {
		return nil, fmt.Errorf("priced path %v: %w", path.Nodes, err)
	}
	reqs := make([]int, 0, len(path.Nodes)-2)
	for _, v := range path.Nodes[1 : len(path.Nodes)-1] {
		reqs = append(reqs, v-1)
	}

	return &column{
		nodes:    append([]int(nil), path.Nodes...),
		requests: reqs,
		cost:     dist,
		load:     path.Load,
		duration: path.Time,
	}, nil
}

// singleton builds the route depot → request k → depot copy.
// Errors: ErrInfeasibleInstance if that route violates a window or capacity.
func singleton(nw *model.Network, k int) (*column, error) {
	nodes := []int{0, k + 1, nw.DepotCopy()}
	if err := nw.CheckPath(nodes); err != nil {
		return nil, fmt.Errorf("%w: request %d (node %d): %v", ErrInfeasibleInstance, k, nw.NodeIDs[k+1], err)
	}
	dist, err := nw.PathCost(nodes)
	if err != nil {
		return nil, err
	}
	dur, err := nw.PathTime(nodes)
	if err != nil {
		return nil, err
	}

	return &column{
		nodes:    nodes,
		requests: []int{k},
		cost:     dist,
		load:     nw.Load(0, k+1) + nw.Load(k+1, nw.DepotCopy()),
		duration: dur,
	}, nil
}

// enumerate returns every route whose reduced cost under d is at most
// threshold, with the pulse strategy in threshold mode. complete is false
// when limit routes were reached or the context stopped the search.
func enumerate(ctx context.Context, nw *model.Network, d duals, threshold float64, limit int, o Options) ([]*column, bool, error) {
	p, err := reduced(nw, d)
	if err != nil {
		return nil, false, err
	}
	s, err := espprc.New(espprc.MethodPulse,
		espprc.WithThreshold(threshold),
		espprc.WithMaxPaths(limit),
		espprc.WithLogger(o.logger()),
	)
	if err != nil {
		return nil, false, err
	}
	sol, err := s.Solve(ctx, p)
	if err != nil && !errors.Is(err, espprc.ErrBudgetExceeded) && !errors.Is(err, espprc.ErrInfeasible) {
		return nil, false, err
	}

	pr := &pricer{nw: nw}
	cols := make([]*column, 0, len(sol.Paths))
	for _, path := range sol.Paths {
		c, err := pr.column(path)
		if err != nil {
			return nil, false, err
		}
		cols = append(cols, c)
	}

	return cols, sol.Status != espprc.StatusInterrupted, nil
}
