// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvroute/matrix"
)

// Node is a located point of a routing instance.
type Node struct {
	ID int     `yaml:"id"`
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
}

// Request is a customer visit: where, when, how much and for how long.
type Request struct {
	ID      int     `yaml:"id"`
	Early   float64 `yaml:"early"`
	Late    float64 `yaml:"late"`
	Demand  float64 `yaml:"demand"`
	Service float64 `yaml:"service"`
}

// Fleet holds the global resource ceilings shared by every route.
type Fleet struct {
	Vehicles      int     `yaml:"vehicles"`
	Capacity      float64 `yaml:"capacity"`
	MaxTravelTime float64 `yaml:"max_travel_time"`
}

// Solomon is a VRPTW instance in the style of the Solomon benchmarks.
type Solomon struct {
	Name     string    `yaml:"name"`
	Nodes    []Node    `yaml:"nodes"`
	Depot    int       `yaml:"depot"`
	Fleet    Fleet     `yaml:"fleet"`
	Requests []Request `yaml:"requests"`
}

// Validate checks the instance invariants: unique node ids with finite
// coordinates, an existing depot, a usable fleet, and one distinct non-depot
// node per request with a consistent window and a non-negative demand.
//
// Errors: *ValidationError (errors.Is ErrInvalidInstance).
// Complexity: O(|Nodes| + |Requests|).
func (s *Solomon) Validate() error {
	if len(s.Nodes) == 0 {
		return invalid("Nodes", -1, "empty")
	}
	ids := make(map[int]struct{}, len(s.Nodes))
	for k, nd := range s.Nodes {
		if _, dup := ids[nd.ID]; dup {
			return invalid("Nodes", k, "duplicate id %d", nd.ID)
		}
		if !finite(nd.X) || !finite(nd.Y) {
			return invalid("Nodes", k, "non-finite coordinates (%g,%g)", nd.X, nd.Y)
		}
		ids[nd.ID] = struct{}{}
	}
	if _, ok := ids[s.Depot]; !ok {
		return invalid("Depot", -1, "node %d: %v", s.Depot, ErrUnknownNode)
	}

	if s.Fleet.Vehicles < 1 {
		return invalid("Fleet.Vehicles", -1, "must be ≥ 1, got %d", s.Fleet.Vehicles)
	}
	if !finite(s.Fleet.Capacity) || s.Fleet.Capacity < 0 {
		return invalid("Fleet.Capacity", -1, "must be finite and ≥ 0, got %g", s.Fleet.Capacity)
	}
	if !finite(s.Fleet.MaxTravelTime) || s.Fleet.MaxTravelTime < 0 {
		return invalid("Fleet.MaxTravelTime", -1, "must be finite and ≥ 0, got %g", s.Fleet.MaxTravelTime)
	}

	if len(s.Requests) == 0 {
		return invalid("Requests", -1, "empty")
	}
	served := make(map[int]struct{}, len(s.Requests))
	for k, r := range s.Requests {
		if _, ok := ids[r.ID]; !ok {
			return invalid("Requests", k, "node %d: %v", r.ID, ErrUnknownNode)
		}
		if r.ID == s.Depot {
			return invalid("Requests", k, "node %d is the depot", r.ID)
		}
		if _, dup := served[r.ID]; dup {
			return invalid("Requests", k, "node %d requested twice", r.ID)
		}
		served[r.ID] = struct{}{}
		if err := checkWindow(k, r.Early, r.Late); err != nil {
			return err
		}
		if !finite(r.Demand) || r.Demand < 0 {
			return invalid("Requests", k, "demand must be finite and ≥ 0, got %g", r.Demand)
		}
		if !finite(r.Service) || r.Service < 0 {
			return invalid("Requests", k, "service must be finite and ≥ 0, got %g", r.Service)
		}
	}

	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// truncSlack absorbs binary representation error, so 3.2 stays 3.2 and not 3.199.
const truncSlack = 1e-9

// Truncate keeps digits decimals of v, dropping the rest toward zero;
// digits < 0 leaves v untouched.
func Truncate(v float64, digits int) float64 {
	if digits < 0 {
		return v
	}
	scale := math.Pow(10, float64(digits))

	return math.Trunc(v*scale+math.Copysign(truncSlack, v)) / scale
}

// EuclideanCosts returns the |nodes|×|nodes| matrix of Euclidean distances,
// each truncated with Truncate(·, digits).
//
// Complexity: O(|nodes|²).
func EuclideanCosts(nodes []Node, digits int) (*matrix.Dense, error) {
	n := len(nodes)
	d, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("EuclideanCosts: %w", err)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := Truncate(math.Hypot(nodes[i].X-nodes[j].X, nodes[i].Y-nodes[j].Y), digits)
			_ = d.Set(i, j, v)
			_ = d.Set(j, i, v)
		}
	}

	return d, nil
}

// Network is the ESPPRC graph used to price VRPTW routes.
//
// Layout: index 0 is the depot as origin, 1..m are the requests in request
// order, m+1 is the depot copy used as destination.
type Network struct {
	*Problem

	// NodeIDs maps a network index to the instance node id.
	NodeIDs []int
	// Requests holds the request served at network index k+1 at position k.
	Requests []Request
}

// DepotCopy returns the destination index (m+1).
func (nw *Network) DepotCopy() int { return len(nw.Requests) + 1 }

// RouteIDs translates a network path into instance node ids.
func (nw *Network) RouteIDs(path []int) []int {
	out := make([]int, len(path))
	for k, v := range path {
		out[k] = nw.NodeIDs[v]
	}

	return out
}

// Network validates s and builds its pricing graph.
//
// Travel time equals the truncated Euclidean distance, which is also the arc
// cost; load(i,j) is the demand of j; the depot window is
// [0, MaxTravelTime]; the empty route depot→copy is removed.
//
// Complexity: O(m²) for m requests.
func (s *Solomon) Network(digits int) (*Network, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	m := len(s.Requests)
	n := m + 2

	byID := make(map[int]Node, len(s.Nodes))
	for _, nd := range s.Nodes {
		byID[nd.ID] = nd
	}
	located := make([]Node, n)
	ids := make([]int, n)
	located[0], ids[0] = byID[s.Depot], s.Depot
	for k, r := range s.Requests {
		located[k+1], ids[k+1] = byID[r.ID], r.ID
	}
	located[m+1], ids[m+1] = byID[s.Depot], s.Depot

	dist, err := EuclideanCosts(located, digits)
	if err != nil {
		return nil, err
	}

	spec := ProblemSpec{
		Cost:        make([][]float64, n),
		Time:        make([][]float64, n),
		Load:        make([][]float64, n),
		Early:       make([]float64, n),
		Late:        make([]float64, n),
		Service:     make([]float64, n),
		Capacity:    s.Fleet.Capacity,
		Origin:      0,
		Destination: m + 1,
	}
	demand := make([]float64, n)
	spec.Late[0], spec.Late[m+1] = s.Fleet.MaxTravelTime, s.Fleet.MaxTravelTime
	for k, r := range s.Requests {
		spec.Early[k+1], spec.Late[k+1] = r.Early, r.Late
		spec.Service[k+1] = r.Service
		demand[k+1] = r.Demand
	}
	for i := 0; i < n; i++ {
		spec.Cost[i], _ = dist.Row(i)
		spec.Time[i], _ = dist.Row(i)
		spec.Load[i] = append([]float64(nil), demand...)
	}
	spec.Time[0][m+1] = math.Inf(1)
	spec.Time[m+1][0] = math.Inf(1)

	p, err := NewProblem(spec)
	if err != nil {
		return nil, fmt.Errorf("network %q: %w", s.Name, err)
	}

	return &Network{Problem: p, NodeIDs: ids, Requests: append([]Request(nil), s.Requests...)}, nil
}
