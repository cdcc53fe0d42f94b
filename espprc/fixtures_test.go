// SPDX-License-Identifier: MIT

package espprc_test

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvroute/model"
)

var inf = math.Inf(1)

// seventeen is a 17-node instance with a few disconnected pairs
// (0↔15, 5→10, 5→14, 10→1, 10→5), node demands broadcast to arc loads,
// capacity 15, origin 5, destination 2 and random negative costs.
func seventeen(t testing.TB, seed int64) *model.Problem {
	t.Helper()

	times := [][]float64{
		{0, 8, 3, 2, 6, 8, 4, 8, 8, 13, 7, 5, 8, 12, 10, inf, 6},
		{8, 0, 11, 10, 6, 3, 9, 5, 8, 4, 15, 14, 13, 9, 18, 9, 9},
		{3, 11, 0, 1, 7, 10, 6, 10, 10, 14, 6, 7, 9, 14, 6, 16, 8},
		{2, 10, 1, 0, 6, 9, 4, 8, 9, 13, 4, 6, 8, 12, 8, 14, 7},
		{6, 6, 7, 6, 0, 2, 3, 2, 2, 7, 9, 7, 7, 6, 12, 8, 3},
		{8, 3, 10, 9, 2, 0, 6, 2, 5, 4, inf, 10, 10, 6, inf, 5, 6},
		{4, 9, 6, 4, 3, 6, 0, 4, 4, 8, 5, 4, 3, 7, 8, 10, 2},
		{8, 5, 10, 8, 2, 2, 4, 0, 3, 4, 9, 8, 7, 3, 13, 6, 3},
		{8, 8, 10, 9, 2, 5, 4, 3, 0, 4, 6, 5, 4, 3, 9, 5, 2},
		{13, 4, 14, 13, 7, 4, 8, 4, 4, 0, 10, 9, 8, 4, 13, 4, 6},
		{7, inf, 6, 4, 9, inf, 5, 9, 6, 10, 0, 1, 3, 7, 3, 10, 6},
		{5, 14, 7, 6, 7, 10, 4, 8, 5, 9, 1, 0, 2, 6, 4, 8, 4},
		{8, 13, 9, 8, 7, 10, 3, 7, 4, 8, 3, 2, 0, 4, 5, 6, 4},
		{12, 9, 14, 12, 6, 6, 7, 3, 3, 4, 7, 6, 4, 0, 9, 2, 5},
		{10, 18, 6, 8, 12, 15, 8, 13, 9, 13, 3, 4, 5, 9, 0, 9, 9},
		{inf, 9, 16, 14, 8, 5, 10, 6, 5, 4, 10, 8, 6, 2, 9, 0, 7},
		{6, 9, 8, 7, 3, 6, 2, 3, 2, 6, 6, 4, 4, 5, 9, 7, 0},
	}
	demand := []float64{1, 1, 2, 4, 2, 4, 8, 8, 1, 2, 1, 2, 4, 4, 8, 8, 0}
	windows := [][2]float64{
		{0, 12}, {0, 15}, {16, 28}, {10, 13}, {0, 5}, {5, 10}, {0, 4}, {5, 10}, {0, 3},
		{10, 16}, {10, 15}, {0, 5}, {5, 10}, {7, 8}, {10, 15}, {11, 15}, {0, 35},
	}

	n := len(times)
	rng := rand.New(rand.NewSource(seed))
	spec := model.ProblemSpec{
		Cost:        make([][]float64, n),
		Time:        times,
		Load:        make([][]float64, n),
		Early:       make([]float64, n),
		Late:        make([]float64, n),
		Service:     make([]float64, n),
		Capacity:    15,
		Origin:      5,
		Destination: 2,
	}
	for i := 0; i < n; i++ {
		spec.Cost[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			spec.Cost[i][j] = -rng.Float64()
		}
		spec.Load[i] = append([]float64(nil), demand...)
		spec.Early[i], spec.Late[i] = windows[i][0], windows[i][1]
	}

	p, err := model.NewProblem(spec)
	require.NoError(t, err)

	return p
}

// randomProblem draws a small instance with integer signed costs, some
// missing arcs, random windows and demands. closed makes origin ==
// destination == 0; otherwise the destination is n-1.
func randomProblem(t testing.TB, seed int64, n int, closed bool) *model.Problem {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	spec := model.ProblemSpec{
		Cost:        make([][]float64, n),
		Time:        make([][]float64, n),
		Load:        make([][]float64, n),
		Early:       make([]float64, n),
		Late:        make([]float64, n),
		Service:     make([]float64, n),
		Capacity:    8,
		Origin:      0,
		Destination: n - 1,
	}
	if closed {
		spec.Destination = 0
	}
	demand := make([]float64, n)
	for i := 1; i < n; i++ {
		demand[i] = float64(rng.Intn(4))
		spec.Early[i] = float64(rng.Intn(12))
		spec.Late[i] = spec.Early[i] + float64(rng.Intn(16))
		spec.Service[i] = float64(rng.Intn(2))
	}
	spec.Late[0] = 40
	spec.Early[n-1], spec.Late[n-1], demand[n-1] = 0, 40, 0
	demand[0] = 0

	for i := 0; i < n; i++ {
		spec.Cost[i] = make([]float64, n)
		spec.Time[i] = make([]float64, n)
		spec.Load[i] = append([]float64(nil), demand...)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			spec.Cost[i][j] = float64(rng.Intn(21) - 12)
			if rng.Float64() < 0.15 {
				spec.Time[i][j] = inf
			} else {
				spec.Time[i][j] = float64(1 + rng.Intn(6))
			}
		}
	}

	p, err := model.NewProblem(spec)
	require.NoError(t, err)

	return p
}

// bruteForce enumerates every feasible elementary path with a direct DFS
// over raw arcs and returns their costs in ascending order.
func bruteForce(p *model.Problem) []float64 {
	var (
		costs []float64
		n     = p.N()
		o, d  = p.Origin(), p.Destination()
		seen  = make([]bool, n)
	)
	var dfs func(v int, t, load, cost float64)
	dfs = func(v int, t, load, cost float64) {
		for j := 0; j < n; j++ {
			if !p.HasArc(v, j) {
				continue
			}
			closing := j == d && j == o
			if seen[j] && !closing {
				continue
			}
			arrival := t + p.Time(v, j)
			if arrival > p.Late(j) || load+p.Load(v, j) > p.Capacity() {
				continue
			}
			if j == d {
				costs = append(costs, cost+p.Cost(v, j))
				continue
			}
			seen[j] = true
			dfs(j, math.Max(arrival, p.Early(j))+p.Service(j), load+p.Load(v, j), cost+p.Cost(v, j))
			seen[j] = false
		}
	}
	seen[o] = true
	dfs(o, p.Early(o)+p.Service(o), 0, 0)
	sort.Float64s(costs)

	return costs
}
