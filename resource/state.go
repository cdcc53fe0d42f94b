// SPDX-License-Identifier: MIT

package resource

import (
	"fmt"
	"math"

	"github.com/yourbasic/bit"

	"github.com/katalvlaran/lvroute/model"
)

// State is the resource vector of a partial path.
type State struct {
	Cost    float64
	Time    float64
	Load    float64
	Visited *bit.Set
}

// Verdict explains the outcome of Extend.
type Verdict uint8

const (
	// Feasible means the extension produced a new State.
	Feasible Verdict = iota
	// VerdictVisited means j was already visited (or marked unreachable).
	VerdictVisited
	// VerdictNoArc means i == j or time(i,j) is +Inf.
	VerdictNoArc
	// VerdictTimeWindow means the arrival at j is after late(j).
	VerdictTimeWindow
	// VerdictCapacity means the load would exceed the capacity.
	VerdictCapacity
)

func (v Verdict) String() string {
	switch v {
	case Feasible:
		return "feasible"
	case VerdictVisited:
		return "visited"
	case VerdictNoArc:
		return "no-arc"
	case VerdictTimeWindow:
		return "time-window"
	case VerdictCapacity:
		return "capacity"
	default:
		return fmt.Sprintf("Verdict(%d)", uint8(v))
	}
}

// Initial returns the State of the one-node path at the origin:
// time = early(o) + service(o), zero cost and load, visited = {o}.
func Initial(p *model.Problem) State {
	o := p.Origin()

	return State{
		Time:    p.Early(o) + p.Service(o),
		Visited: bit.New(o),
	}
}

// Clone returns a copy with its own visited set.
func (s State) Clone() State {
	cp := s
	cp.Visited = new(bit.Set).Set(s.Visited)

	return cp
}

// Extend pushes s from i along i→j. See the package doc for the rule.
// Indices must be valid for p.
//
// Complexity: O(n/64) for the visited-set copy.
func Extend(p *model.Problem, s State, i, j int) (State, Verdict) {
	return ExtendWithin(p, s, i, j, nil)
}

// ExtendWithin is Extend with a bounded memory: the successor's visited set
// is (visited ∩ keep) ∪ {j}. A nil keep retains everything. It is how
// ng-route relaxations forget nodes outside the neighbourhood of j.
func ExtendWithin(p *model.Problem, s State, i, j int, keep *bit.Set) (State, Verdict) {
	if s.Visited.Contains(j) && !(j == p.Destination() && j == p.Origin()) {
		return State{}, VerdictVisited
	}
	t := p.Time(i, j)
	if i == j || math.IsInf(t, 1) {
		return State{}, VerdictNoArc
	}
	arrival := s.Time + t
	if arrival > p.Late(j) {
		return State{}, VerdictTimeWindow
	}
	load := s.Load + p.Load(i, j)
	if load > p.Capacity() {
		return State{}, VerdictCapacity
	}

	visited := new(bit.Set).Set(s.Visited)
	if keep != nil {
		visited.SetAnd(visited, keep)
	}
	visited.Add(j)

	return State{
		Cost:    s.Cost + p.Cost(i, j),
		Time:    math.Max(arrival, p.Early(j)) + p.Service(j),
		Load:    load,
		Visited: visited,
	}, Feasible
}

// Dominates reports whether a strictly dominates b: a is no worse on cost,
// time and load, a.Visited ⊆ b.Visited, and a is strictly better somewhere
// (cost by more than eps, time, load, or a strictly smaller visited set).
// The relation is irreflexive and transitive for any eps ≥ 0.
func Dominates(a, b State, eps float64) bool {
	if a.Cost > b.Cost || a.Time > b.Time || a.Load > b.Load {
		return false
	}
	if !a.Visited.Subset(b.Visited) {
		return false
	}

	return a.Cost < b.Cost-eps || a.Time < b.Time || a.Load < b.Load ||
		a.Visited.Size() < b.Visited.Size()
}

// Covers is the weak form used to reject new labels: a is no worse than b
// on every resource (cost within eps) and a.Visited ⊆ b.Visited. Equal
// states cover each other.
func Covers(a, b State, eps float64) bool {
	return a.Cost <= b.Cost+eps && a.Time <= b.Time && a.Load <= b.Load &&
		a.Visited.Subset(b.Visited)
}
