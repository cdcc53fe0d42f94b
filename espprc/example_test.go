// SPDX-License-Identifier: MIT

package espprc_test

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/lvroute/espprc"
	"github.com/katalvlaran/lvroute/model"
)

// Example prices a four-node graph with one negative reduced cost. Node 2 is
// only open at t = 6, so the solver waits there before finishing.
func Example() {
	inf := math.Inf(1)
	p, err := model.NewProblem(model.ProblemSpec{
		Cost: [][]float64{
			{0, 3, 2, 9},
			{0, 0, -4, 2},
			{0, 1, 0, 1},
			{0, 0, 0, 0},
		},
		Time: [][]float64{
			{0, 2, 3, inf},
			{inf, 0, 2, 3},
			{inf, 2, 0, 2},
			{inf, inf, inf, 0},
		},
		Load: [][]float64{
			{0, 1, 1, 0},
			{0, 1, 1, 0},
			{0, 1, 1, 0},
			{0, 1, 1, 0},
		},
		Early:       []float64{0, 0, 6, 0},
		Late:        []float64{0, 10, 8, 12},
		Service:     []float64{0, 1, 0, 0},
		Capacity:    2,
		Origin:      0,
		Destination: 3,
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, m := range []espprc.Method{espprc.MethodLabelSetting, espprc.MethodPulse} {
		solver, _ := espprc.New(m)
		sol, err := solver.Solve(context.Background(), p)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("%s: %v cost=%g time=%g load=%g\n", m, sol.Best.Nodes, sol.Best.Cost, sol.Best.Time, sol.Best.Load)
	}
	// Output:
	// labeling: [0 1 2 3] cost=0 time=8 load=2
	// pulse: [0 1 2 3] cost=0 time=8 load=2
}

// ExampleParseMethod maps configuration strings onto strategies.
func ExampleParseMethod() {
	m, _ := espprc.ParseMethod("label-setting")
	fmt.Println(m)
	_, err := espprc.ParseMethod("simplex")
	fmt.Println(err)
	// Output:
	// labeling
	// espprc: unknown method: "simplex"
}
