// SPDX-License-Identifier: MIT

package model

import "math"

// PathCost sums cost along path. Every consecutive pair must be an arc.
//
// Errors: ErrInvalidPath (wrapped) for short paths, bad indices, absent arcs.
// Complexity: O(len(path)).
func (p *Problem) PathCost(path []int) (float64, error) {
	if err := p.checkIndices(path); err != nil {
		return 0, err
	}
	var total float64
	for k := 1; k < len(path); k++ {
		if !p.HasArc(path[k-1], path[k]) {
			return 0, pathErrorf(k, "no arc %d→%d", path[k-1], path[k])
		}
		total += p.cost.Get(path[k-1], path[k])
	}

	return total, nil
}

// PathTime returns the time at which service at the last node of path
// completes, waiting at every node until its early bound. Windows are not
// enforced; use CheckPath for that.
//
// Errors: ErrInvalidPath (wrapped).
// Complexity: O(len(path)).
func (p *Problem) PathTime(path []int) (float64, error) {
	if err := p.checkIndices(path); err != nil {
		return 0, err
	}
	t := p.early[path[0]] + p.svc[path[0]]
	for k := 1; k < len(path); k++ {
		i, j := path[k-1], path[k]
		if !p.HasArc(i, j) {
			return 0, pathErrorf(k, "no arc %d→%d", i, j)
		}
		t = math.Max(t+p.time.Get(i, j), p.early[j]) + p.svc[j]
	}

	return t, nil
}

// CheckPath verifies that path is a feasible route of p: it starts at the
// origin, ends at the destination, uses only present arcs, visits no node
// twice (the origin may reappear once as a destination equal to it),
// respects every time window and never exceeds the capacity.
//
// Errors: ErrInvalidPath (wrapped) describing the first violation.
// Complexity: O(len(path)).
func (p *Problem) CheckPath(path []int) error {
	if err := p.checkIndices(path); err != nil {
		return err
	}
	if path[0] != p.origin {
		return pathErrorf(0, "starts at %d, want origin %d", path[0], p.origin)
	}
	last := len(path) - 1
	if path[last] != p.destination {
		return pathErrorf(last, "ends at %d, want destination %d", path[last], p.destination)
	}

	seen := make([]bool, p.n)
	seen[path[0]] = true
	t := p.early[path[0]] + p.svc[path[0]]
	var load float64
	for k := 1; k < len(path); k++ {
		i, j := path[k-1], path[k]
		if seen[j] && !(k == last && j == p.origin && p.origin == p.destination) {
			return pathErrorf(k, "node %d visited twice", j)
		}
		seen[j] = true
		if !p.HasArc(i, j) {
			return pathErrorf(k, "no arc %d→%d", i, j)
		}
		arrival := t + p.time.Get(i, j)
		if arrival > p.late[j] {
			return pathErrorf(k, "arrival %g at %d after late %g", arrival, j, p.late[j])
		}
		load += p.load.Get(i, j)
		if load > p.capacity {
			return pathErrorf(k, "load %g exceeds capacity %g", load, p.capacity)
		}
		t = math.Max(arrival, p.early[j]) + p.svc[j]
	}

	return nil
}

func (p *Problem) checkIndices(path []int) error {
	if len(path) < 2 {
		return pathErrorf(0, "need at least 2 nodes, got %d", len(path))
	}
	for k, v := range path {
		if v < 0 || v >= p.n {
			return pathErrorf(k, "node %d out of range [0,%d)", v, p.n)
		}
	}

	return nil
}
