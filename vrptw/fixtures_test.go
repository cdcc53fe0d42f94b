// SPDX-License-Identifier: MIT

package vrptw_test

import (
	"github.com/katalvlaran/lvroute/model"
)

// workedExample is the 16-request instance whose optimal distance with
// distances truncated to 3 decimals is 55.128.
func workedExample() *model.Solomon {
	coords := [][2]float64{
		{4.56, 3.20},
		{2.28, 0.00}, {9.12, 0.00}, {0.00, 0.80}, {1.14, 8.00},
		{5.70, 1.60}, {7.98, 1.60}, {3.42, 2.40}, {6.84, 2.40},
		{5.70, 4.00}, {9.12, 4.00}, {1.14, 4.80}, {2.28, 4.80},
		{3.42, 5.60}, {6.84, 5.60}, {0.00, 6.40}, {7.98, 6.40},
	}
	windows := [][2]float64{
		{7, 12}, {10, 15}, {16, 18}, {10, 13}, {0, 5}, {5, 10}, {0, 4}, {5, 10},
		{0, 3}, {10, 16}, {10, 15}, {0, 5}, {5, 10}, {7, 8}, {10, 15}, {11, 15},
	}
	demands := []float64{1, 1, 2, 4, 2, 4, 8, 8, 1, 2, 1, 2, 4, 4, 8, 8}

	s := &model.Solomon{
		Name:  "worked example",
		Depot: 0,
		Fleet: model.Fleet{Vehicles: 16, Capacity: 15, MaxTravelTime: 35},
	}
	for id, c := range coords {
		s.Nodes = append(s.Nodes, model.Node{ID: id, X: c[0], Y: c[1]})
	}
	for k, w := range windows {
		s.Requests = append(s.Requests, model.Request{ID: k + 1, Early: w[0], Late: w[1], Demand: demands[k]})
	}

	return s
}

// heavyTrio has three requests that each fill most of the only vehicle.
func heavyTrio(vehicles int) *model.Solomon {
	return &model.Solomon{
		Name: "heavy trio",
		Nodes: []model.Node{
			{ID: 0, X: 0, Y: 0},
			{ID: 1, X: 1, Y: 0},
			{ID: 2, X: 0, Y: 1},
			{ID: 3, X: 1, Y: 1},
		},
		Depot: 0,
		Fleet: model.Fleet{Vehicles: vehicles, Capacity: 15, MaxTravelTime: 100},
		Requests: []model.Request{
			{ID: 1, Early: 0, Late: 100, Demand: 10},
			{ID: 2, Early: 0, Late: 100, Demand: 10},
			{ID: 3, Early: 0, Late: 100, Demand: 10},
		},
	}
}
