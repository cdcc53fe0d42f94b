// SPDX-License-Identifier: MIT

// Integer stage: exact set partitioning over the column pool.
//
// A depth-first branch-and-bound picks, at each node, the uncovered request
// with the fewest candidate routes and tries every pool route through it that
// is disjoint from the routes already chosen, cheapest share first.
//
// Bound: cost so far + Σ share(i) over uncovered requests i, where share(i)
// is the least cost/|r| among routes r serving i. Any partition pays each
// route's cost split evenly over its requests, so the bound never exceeds a
// completion. At most Vehicles routes are chosen.
//
// The context and the node limit are polled every 4096 nodes.
//
// Complexity: exponential in the number of requests; per node O(|candidates|·|r|).

package vrptw

import (
	"context"
	"math"
	"sort"

	"github.com/yourbasic/bit"
)

type partitionEngine struct {
	ctx      context.Context
	m        int
	vehicles int
	limit    int
	eps      float64

	cols  []*column
	cands [][]int   // per request: columns serving it, by ascending share
	share []float64 // per request: least cost/|r|
	order []int     // branching priority: fewest candidates first

	covered *bit.Set
	chosen  []int
	nodes   int
	stopped bool

	best     []int
	bestCost float64
}

// partition searches the cheapest partition of the m requests into at most
// vehicles routes of cols whose cost is below ub. It returns the chosen
// columns (nil if none beats ub) and whether the search was exhaustive.
func partition(ctx context.Context, cols []*column, m, vehicles, limit int, ub float64) ([]*column, float64, bool) {
	e := &partitionEngine{
		ctx:      ctx,
		m:        m,
		vehicles: vehicles,
		limit:    limit,
		eps:      1e-9,
		cols:     cols,
		cands:    make([][]int, m),
		share:    make([]float64, m),
		order:    make([]int, m),
		covered:  new(bit.Set),
		bestCost: ub,
	}
	for k, c := range cols {
		for _, r := range c.requests {
			e.cands[r] = append(e.cands[r], k)
		}
	}
	rest := 0.0
	for i := 0; i < m; i++ {
		if len(e.cands[i]) == 0 {
			return nil, math.Inf(1), true
		}
		cand := e.cands[i]
		sort.SliceStable(cand, func(a, b int) bool { return e.ratio(cand[a]) < e.ratio(cand[b]) })
		e.share[i] = e.ratio(cand[0])
		rest += e.share[i]
		e.order[i] = i
	}
	sort.SliceStable(e.order, func(a, b int) bool { return len(e.cands[e.order[a]]) < len(e.cands[e.order[b]]) })

	e.dfs(0, rest)
	if e.best == nil {
		return nil, math.Inf(1), !e.stopped
	}
	out := make([]*column, len(e.best))
	for k, idx := range e.best {
		out[k] = cols[idx]
	}

	return out, e.bestCost, !e.stopped
}

func (e *partitionEngine) ratio(k int) float64 {
	return e.cols[k].cost / float64(len(e.cols[k].requests))
}

func (e *partitionEngine) tick() bool {
	if e.stopped {
		return true
	}
	e.nodes++
	if e.nodes >= e.limit {
		e.stopped = true
	} else if e.nodes&4095 == 0 && e.ctx.Err() != nil {
		e.stopped = true
	}

	return e.stopped
}

func (e *partitionEngine) next() int {
	for _, i := range e.order {
		if !e.covered.Contains(i) {
			return i
		}
	}

	return -1
}

func (e *partitionEngine) disjoint(c *column) bool {
	for _, r := range c.requests {
		if e.covered.Contains(r) {
			return false
		}
	}

	return true
}

func (e *partitionEngine) dfs(cost, rest float64) {
	if e.tick() {
		return
	}
	if cost+rest >= e.bestCost-e.eps {
		return
	}
	i := e.next()
	if i < 0 {
		e.best = append(e.best[:0], e.chosen...)
		e.bestCost = cost
		return
	}
	if len(e.chosen) == e.vehicles {
		return
	}

	for _, k := range e.cands[i] {
		c := e.cols[k]
		if !e.disjoint(c) {
			continue
		}
		drop := 0.0
		for _, r := range c.requests {
			drop += e.share[r]
		}
		if cost+c.cost+rest-drop >= e.bestCost-e.eps {
			continue
		}
		for _, r := range c.requests {
			e.covered.Add(r)
		}
		e.chosen = append(e.chosen, k)
		e.dfs(cost+c.cost, rest-drop)
		e.chosen = e.chosen[:len(e.chosen)-1]
		for _, r := range c.requests {
			e.covered.Delete(r)
		}
		if e.stopped {
			return
		}
	}
}
