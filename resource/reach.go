// SPDX-License-Identifier: MIT

package resource

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvroute/matrix"
	"github.com/katalvlaran/lvroute/model"
)

// Reach holds per-instance lower bounds used to decide that a partial path
// can no longer reach a node:
//   - shortest travel times between every pair (Floyd–Warshall over time);
//   - the smallest load increment on any arc entering each node.
//
// Waiting and service only delay a path, and loads are non-negative, so
// time + shortest(at,k) and load + minLoadIn(k) are valid lower bounds on the
// resources at k.
type Reach struct {
	p         *model.Problem
	shortest  *matrix.Dense
	minLoadIn []float64
}

// NewReach precomputes the bounds for p.
// Complexity: O(n³) time, O(n²) space.
func NewReach(p *model.Problem) (*Reach, error) {
	sp, _, err := matrix.ShortestPaths(p.Times())
	if err != nil {
		return nil, fmt.Errorf("resource: reach: %w", err)
	}
	n := p.N()
	minIn := make([]float64, n)
	for k := 0; k < n; k++ {
		minIn[k] = math.Inf(1)
		for i := 0; i < n; i++ {
			if p.HasArc(i, k) && p.Load(i, k) < minIn[k] {
				minIn[k] = p.Load(i, k)
			}
		}
	}

	return &Reach{p: p, shortest: sp, minLoadIn: minIn}, nil
}

// ShortestTime returns the least travel time from i to j, +Inf if j cannot
// be reached from i at all.
func (r *Reach) ShortestTime(i, j int) float64 { return r.shortest.Get(i, j) }

// CanReach reports whether a path in state s at node at may still arrive
// at k within its window and capacity.
func (r *Reach) CanReach(s State, at, k int) bool {
	if s.Time+r.shortest.Get(at, k) > r.p.Late(k) {
		return false
	}

	return s.Load+r.minLoadIn[k] <= r.p.Capacity()
}

// MarkUnreachable adds to s.Visited every node that s, standing at at, can no
// longer reach. It returns false when the destination itself became
// unreachable, in which case the partial path is dead. The destination is
// never added to the set.
//
// Complexity: O(n).
func (r *Reach) MarkUnreachable(s *State, at int) bool {
	dest := r.p.Destination()
	alive := at == dest || r.CanReach(*s, at, dest)
	for k := 0; k < r.p.N(); k++ {
		if k == dest || k == at || s.Visited.Contains(k) {
			continue
		}
		if !r.CanReach(*s, at, k) {
			s.Visited.Add(k)
		}
	}

	return alive
}
