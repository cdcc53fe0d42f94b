// SPDX-License-Identifier: MIT

// Label setting for the ESPPRC (monodirectional, Feillet-style).
//
// Every partial path is a label {state, node, pred} stored in an arena and
// linked to its parent by index. Open labels wait in a min-heap ordered by
// (time, cost, index); since time never decreases along a path this visits
// labels in a topological order of the label tree.
//
// Per node, a bucket holds the live labels. A new label is rejected when an
// existing label covers it (weakly dominates, equal labels keep the older);
// otherwise every existing label it strictly dominates is flagged dead and
// skipped lazily when popped. Nodes a label can no longer reach are added to
// its visited set, which strengthens dominance.
//
// Labels reaching the destination go to a separate terminal list and are
// never expanded, so origin == destination tours work unchanged.
//
// NGRoute replaces the visited set by an ng-memory (the NGSize nearest
// neighbours of each node plus a critical set). If the cheapest completed
// path repeats a node, the repeated nodes join the critical set and the
// search restarts; the first elementary optimum is the elementary optimum.
//
// Complexity: exponential in the worst case (the problem is strongly
// NP-hard); per expansion O(|succ|·(bucket size + n/64)).

package espprc

import (
	"container/heap"
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourbasic/bit"

	"github.com/katalvlaran/lvroute/model"
	"github.com/katalvlaran/lvroute/resource"
)

// LabelSetting is the label-setting strategy.
type LabelSetting struct {
	opts Options
}

// NewLabelSetting returns a label-setting solver for opts.
// Errors: ErrBadOptions.
func NewLabelSetting(opts Options) (*LabelSetting, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &LabelSetting{opts: opts}, nil
}

// Method implements Solver.
func (s *LabelSetting) Method() Method { return MethodLabelSetting }

// Solve implements Solver.
//
// With MaxPaths > 1, Paths[1:] are the cheapest other completed paths the
// search retained; only Paths[0] is guaranteed optimal.
func (s *LabelSetting) Solve(ctx context.Context, p *model.Problem) (Solution, error) {
	if err := checkProblem(p); err != nil {
		return Solution{}, err
	}
	start := time.Now()
	log := s.opts.logger()

	reach, err := resource.NewReach(p)
	if err != nil {
		return Solution{}, err
	}
	b := newBudget(ctx, s.opts, start)

	var (
		sol      Solution
		neigh    [][]int
		critical = new(bit.Set)
	)
	if s.opts.Relaxation == NGRoute {
		neigh = nearest(p, s.opts.NGSize)
	}

	for {
		r := newLabelRun(p, reach, b, s.opts.Eps, &sol.Stats)
		if neigh != nil {
			r.keep = memories(neigh, critical)
		}
		interrupted := r.search()
		paths, repeated := r.collect(s.opts.MaxPaths)
		sol.Paths = paths
		if interrupted || len(repeated) == 0 {
			return finish(MethodLabelSetting, s.opts, sol, interrupted, start)
		}

		for _, v := range repeated {
			critical.Add(v)
		}
		sol.Stats.Restarts++
		log.WithFields(logrus.Fields{
			"restart":  sol.Stats.Restarts,
			"critical": critical.String(),
		}).Debug("espprc: ng-route best path cycles, restarting")
	}
}

// nearest returns, for every node i, i itself plus its size-1 closest other
// nodes by min(time(i,k), time(k,i)), ties broken by index.
func nearest(p *model.Problem, size int) [][]int {
	n := p.N()
	out := make([][]int, n)
	cand := make([]int, 0, n)
	for i := 0; i < n; i++ {
		cand = cand[:0]
		for k := 0; k < n; k++ {
			if k != i && (p.HasArc(i, k) || p.HasArc(k, i)) {
				cand = append(cand, k)
			}
		}
		sym := func(k int) float64 {
			a, b := p.Time(i, k), p.Time(k, i)
			if b < a {
				return b
			}
			return a
		}
		sort.SliceStable(cand, func(a, b int) bool { return sym(cand[a]) < sym(cand[b]) })
		if len(cand) > size-1 {
			cand = cand[:size-1]
		}
		out[i] = append([]int{i}, cand...)
	}

	return out
}

// memories builds the ng-memory of every node: its neighbourhood plus the
// critical set.
func memories(neigh [][]int, critical *bit.Set) []*bit.Set {
	keep := make([]*bit.Set, len(neigh))
	for i, ns := range neigh {
		keep[i] = new(bit.Set).SetOr(bit.New(ns...), critical)
	}

	return keep
}

// label is one arena record. pred is the parent's arena index, -1 at the root.
type label struct {
	st   resource.State
	node int
	pred int
	dead bool
}

// labelQueue is a min-heap of arena indices ordered by (time, cost, index).
type labelQueue struct {
	arena *[]label
	items []int
}

func (q labelQueue) Len() int { return len(q.items) }

func (q labelQueue) Less(a, b int) bool {
	arena := *q.arena
	x, y := &arena[q.items[a]], &arena[q.items[b]]
	if x.st.Time != y.st.Time {
		return x.st.Time < y.st.Time
	}
	if x.st.Cost != y.st.Cost {
		return x.st.Cost < y.st.Cost
	}

	return q.items[a] < q.items[b]
}

func (q labelQueue) Swap(a, b int) { q.items[a], q.items[b] = q.items[b], q.items[a] }

func (q *labelQueue) Push(x any) { q.items = append(q.items, x.(int)) }

func (q *labelQueue) Pop() any {
	old := q.items
	last := old[len(old)-1]
	q.items = old[:len(old)-1]

	return last
}

// labelRun is one label-setting pass.
type labelRun struct {
	p     *model.Problem
	reach *resource.Reach
	b     *budget
	eps   float64
	stats *Stats
	keep  []*bit.Set // ng-memories; nil for the elementary search

	arena     []label
	buckets   [][]int
	terminals []int
	queue     labelQueue
}

func newLabelRun(p *model.Problem, reach *resource.Reach, b *budget, eps float64, stats *Stats) *labelRun {
	r := &labelRun{
		p:       p,
		reach:   reach,
		b:       b,
		eps:     eps,
		stats:   stats,
		arena:   make([]label, 0, 4*p.N()),
		buckets: make([][]int, p.N()),
	}
	r.queue.arena = &r.arena

	return r
}

// search runs until no open label remains or the budget stops it; it
// reports whether it was interrupted.
func (r *labelRun) search() bool {
	o := r.p.Origin()
	root := resource.Initial(r.p)
	if !r.reach.MarkUnreachable(&root, o) {
		return false
	}
	r.add(label{st: root, node: o, pred: -1})
	r.buckets[o] = append(r.buckets[o], 0)
	heap.Push(&r.queue, 0)

	for r.queue.Len() > 0 {
		if r.b.exceeded(r.stats.Labels) {
			return true
		}
		idx := heap.Pop(&r.queue).(int)
		if r.arena[idx].dead {
			continue
		}
		r.expand(idx)
	}

	return false
}

func (r *labelRun) add(l label) int {
	r.arena = append(r.arena, l)
	r.stats.Labels++

	return len(r.arena) - 1
}

// expand extends label idx along every preprocessed successor arc.
func (r *labelRun) expand(idx int) {
	r.stats.Expanded++
	from := r.arena[idx].node
	st := r.arena[idx].st
	dest := r.p.Destination()

	var keep *bit.Set
	for _, j := range r.p.Successors(from) {
		if r.keep != nil {
			keep = r.keep[j]
		}
		next, verdict := resource.ExtendWithin(r.p, st, from, j, keep)
		if verdict != resource.Feasible {
			continue
		}
		if j == dest {
			r.terminals = append(r.terminals, r.add(label{st: next, node: j, pred: idx}))
			continue
		}
		if !r.reach.MarkUnreachable(&next, j) {
			continue
		}
		r.insert(j, next, idx)
	}
}

// insert applies dominance in the bucket of j and queues the survivor.
func (r *labelRun) insert(j int, st resource.State, pred int) {
	bucket := r.buckets[j]
	for _, k := range bucket {
		if resource.Covers(r.arena[k].st, st, r.eps) {
			r.stats.Dominated++
			return
		}
	}

	kept := bucket[:0]
	for _, k := range bucket {
		if resource.Dominates(st, r.arena[k].st, r.eps) {
			r.arena[k].dead = true
			r.stats.Dominated++
			continue
		}
		kept = append(kept, k)
	}
	idx := r.add(label{st: st, node: j, pred: pred})
	r.buckets[j] = append(kept, idx)
	heap.Push(&r.queue, idx)
}

// nodes rebuilds the node sequence of label idx by walking predecessors.
func (r *labelRun) nodes(idx int) []int {
	var rev []int
	for k := idx; k >= 0; k = r.arena[k].pred {
		rev = append(rev, r.arena[k].node)
	}
	for a, b := 0, len(rev)-1; a < b; a, b = a+1, b-1 {
		rev[a], rev[b] = rev[b], rev[a]
	}

	return rev
}

// collect returns up to k elementary completed paths by ascending cost and,
// when the cheapest completed path is not elementary, the nodes it repeats.
func (r *labelRun) collect(k int) ([]Path, []int) {
	term := append([]int(nil), r.terminals...)
	sort.SliceStable(term, func(a, b int) bool {
		return r.arena[term[a]].st.Cost < r.arena[term[b]].st.Cost
	})

	var (
		paths    []Path
		repeated []int
	)
	for pos, t := range term {
		nodes := r.nodes(t)
		ok, rep := isElementary(r.p, nodes)
		if !ok {
			if pos == 0 {
				repeated = rep
			}
			continue
		}
		paths = append(paths, tracePath(r.p, nodes))
		if len(paths) == k {
			break
		}
	}
	sortPaths(paths)

	return paths, repeated
}
