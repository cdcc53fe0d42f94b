// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Canonical dense APSP (Floyd–Warshall) with deterministic loop order.
//   - Negative arcs are allowed; a negative diagonal after the closure marks
//     a negative cycle.
//
// Contract:
//   - Square matrix; +Inf means "no path"; diagonal must be 0 before calling.

package matrix

import (
	"fmt"
	"math"
)

const opFloydWarshall = "FloydWarshall"

// floydWarshallInPlace runs the APSP closure on a square *Dense in place.
// Loop order is fixed (k → i → j). Time O(n³); extra space O(1).
func floydWarshallInPlace(d *Dense) {
	n := d.r

	var (
		k, i, j      int
		baseK, baseI int
		ik, kj, cand float64
	)
	data := d.data
	for k = 0; k < n; k++ {
		baseK = k * n
		for i = 0; i < n; i++ {
			ik = data[i*n+k]
			if math.IsInf(ik, 1) {
				continue
			}
			baseI = i * n
			for j = 0; j < n; j++ {
				kj = data[baseK+j]
				if math.IsInf(kj, 1) {
					continue
				}
				cand = ik + kj
				if cand < data[baseI+j] {
					data[baseI+j] = cand
				}
			}
		}
	}
}

// FloydWarshall computes all-pairs shortest paths in place on m.
//
// Contract:
//   - m must be square (n×n); +Inf denotes "no edge"; the diagonal MUST be 0.
//   - m must admit +Inf (WithAllowInf) when any pair is disconnected.
//
// Complexity: Time O(n³), extra space O(1).
func FloydWarshall(m Matrix) error {
	if err := ValidateSquare(m); err != nil {
		return fmt.Errorf("%s: %w", opFloydWarshall, err)
	}
	if d, ok := m.(*Dense); ok {
		floydWarshallInPlace(d)

		return nil
	}

	// Generic interface fallback.
	n := m.Rows()
	var (
		k, i, j       int
		dik, dkj, dij float64
		err           error
	)
	for k = 0; k < n; k++ {
		for i = 0; i < n; i++ {
			if dik, err = m.At(i, k); err != nil {
				return fmt.Errorf("%s: %w", opFloydWarshall, err)
			}
			if math.IsInf(dik, 1) {
				continue
			}
			for j = 0; j < n; j++ {
				if dkj, err = m.At(k, j); err != nil {
					return fmt.Errorf("%s: %w", opFloydWarshall, err)
				}
				if math.IsInf(dkj, 1) {
					continue
				}
				if dij, err = m.At(i, j); err != nil {
					return fmt.Errorf("%s: %w", opFloydWarshall, err)
				}
				if dik+dkj < dij {
					if err = m.Set(i, j, dik+dkj); err != nil {
						return fmt.Errorf("%s: %w", opFloydWarshall, err)
					}
				}
			}
		}
	}

	return nil
}

// ShortestPaths returns the all-pairs closure of arcs as a new *Dense.
// Missing arcs must be +Inf in arcs; the diagonal of arcs is ignored and
// treated as 0. negativeCycle reports whether any vertex lies on a cycle of
// negative total weight, in which case the returned distances are not
// meaningful lower bounds.
//
// Complexity: O(n³) time, O(n²) space.
func ShortestPaths(arcs *Dense) (dist *Dense, negativeCycle bool, err error) {
	if err = ValidateSquare(arcs); err != nil {
		return nil, false, fmt.Errorf("%s: %w", opFloydWarshall, err)
	}
	dist = arcs.CloneDense()
	dist.allowInf = true

	n := dist.r
	for i := 0; i < n; i++ {
		dist.data[i*n+i] = 0
	}
	floydWarshallInPlace(dist)
	for i := 0; i < n; i++ {
		if dist.data[i*n+i] < 0 {
			negativeCycle = true
			break
		}
	}

	return dist, negativeCycle, nil
}
