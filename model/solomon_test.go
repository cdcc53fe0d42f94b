// SPDX-License-Identifier: MIT

package model_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvroute/model"
)

func tinySolomon() *model.Solomon {
	return &model.Solomon{
		Name: "tiny",
		Nodes: []model.Node{
			{ID: 0, X: 0, Y: 0},
			{ID: 7, X: 3, Y: 4},
			{ID: 9, X: 0, Y: 1},
		},
		Depot: 0,
		Fleet: model.Fleet{Vehicles: 2, Capacity: 5, MaxTravelTime: 20},
		Requests: []model.Request{
			{ID: 9, Early: 0, Late: 5, Demand: 2},
			{ID: 7, Early: 6, Late: 9, Demand: 3, Service: 1},
		},
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	require.Equal(t, 2.0, model.Truncate(2.7, 0))
	require.Equal(t, -2.0, model.Truncate(-2.7, 0))
	require.Equal(t, 0.12, model.Truncate(0.129, 2))
	require.Equal(t, 1.414, model.Truncate(math.Sqrt2, 3))
	require.Equal(t, 3.605, model.Truncate(math.Sqrt(13), 3))
	// 3.1999999999999997 is how hypot reports 3.2 for some inputs.
	require.Equal(t, 3.2, model.Truncate(3.1999999999999997, 3))
	require.Equal(t, math.Sqrt2, model.Truncate(math.Sqrt2, -1))
}

func TestEuclideanCosts(t *testing.T) {
	t.Parallel()

	d, err := model.EuclideanCosts([]model.Node{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 1, Y: 1}}, 3)
	require.NoError(t, err)
	require.Equal(t, 5.0, d.Get(0, 1))
	require.Equal(t, 5.0, d.Get(1, 0))
	require.Equal(t, 1.414, d.Get(0, 2))
	require.Equal(t, 0.0, d.Get(2, 2))

	_, err = model.EuclideanCosts(nil, 3)
	require.Error(t, err)
}

func TestSolomon_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, tinySolomon().Validate())

	cases := map[string]func(*model.Solomon){
		"no nodes":         func(s *model.Solomon) { s.Nodes = nil },
		"duplicate node":   func(s *model.Solomon) { s.Nodes[2].ID = 7 },
		"nan coordinate":   func(s *model.Solomon) { s.Nodes[1].X = math.NaN() },
		"missing depot":    func(s *model.Solomon) { s.Depot = 4 },
		"no vehicles":      func(s *model.Solomon) { s.Fleet.Vehicles = 0 },
		"negative cap":     func(s *model.Solomon) { s.Fleet.Capacity = -1 },
		"inf max time":     func(s *model.Solomon) { s.Fleet.MaxTravelTime = math.Inf(1) },
		"no requests":      func(s *model.Solomon) { s.Requests = nil },
		"unknown request":  func(s *model.Solomon) { s.Requests[0].ID = 42 },
		"depot request":    func(s *model.Solomon) { s.Requests[0].ID = 0 },
		"repeated request": func(s *model.Solomon) { s.Requests[1].ID = 9 },
		"early > late":     func(s *model.Solomon) { s.Requests[1].Early = 10 },
		"negative demand":  func(s *model.Solomon) { s.Requests[0].Demand = -2 },
		"negative service": func(s *model.Solomon) { s.Requests[0].Service = -2 },
	}
	for name, mutate := range cases {
		s := tinySolomon()
		mutate(s)
		require.ErrorIs(t, s.Validate(), model.ErrInvalidInstance, name)
	}
}

func TestSolomon_Network(t *testing.T) {
	t.Parallel()

	nw, err := tinySolomon().Network(3)
	require.NoError(t, err)

	require.Equal(t, 4, nw.N())
	require.Equal(t, 0, nw.Origin())
	require.Equal(t, 3, nw.DepotCopy())
	require.Equal(t, nw.DepotCopy(), nw.Destination())
	require.Equal(t, []int{0, 9, 7, 0}, nw.NodeIDs)
	require.Equal(t, []int{0, 7, 0}, nw.RouteIDs([]int{0, 2, 3}))

	// Request order defines the layout: index 1 is node 9, index 2 is node 7.
	require.Equal(t, 1.0, nw.Cost(0, 1))
	require.Equal(t, 5.0, nw.Time(0, 2))
	require.Equal(t, nw.Cost(1, 2), nw.Time(1, 2))
	require.Equal(t, 3.0, nw.Load(1, 2))
	require.Equal(t, 0.0, nw.Load(2, 3))

	// Windows: depot copies use [0, MaxTravelTime].
	require.Equal(t, 20.0, nw.Late(0))
	require.Equal(t, 20.0, nw.Late(3))
	require.Equal(t, 6.0, nw.Early(2))
	require.Equal(t, 1.0, nw.Service(2))

	// The empty route is removed and the depot copy is a sink.
	require.False(t, nw.HasArc(0, 3))
	require.NotContains(t, nw.Successors(0), 3)
	require.Empty(t, nw.Successors(3))

	require.NoError(t, nw.CheckPath([]int{0, 1, 2, 3}))
	tm, err := nw.PathTime([]int{0, 1, 2, 3})
	require.NoError(t, err)
	// 0→9 at 1; 9→7 dist sqrt(18)=4.242 arrives 5.242, waits to 6, serves 1; →0 dist 5.
	require.InDelta(t, 12.0, tm, 1e-9)
}

func TestSolomon_NetworkRejectsInvalid(t *testing.T) {
	t.Parallel()

	s := tinySolomon()
	s.Fleet.Vehicles = 0
	_, err := s.Network(3)
	require.ErrorIs(t, err, model.ErrInvalidInstance)
}
