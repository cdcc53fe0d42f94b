// SPDX-License-Identifier: MIT

package vrptw

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/yourbasic/bit"
)

// column is one route of the pool, in network indices.
type column struct {
	id       uuid.UUID
	nodes    []int    // 0, requests..., m+1
	requests []int    // 0-based request indices, sorted
	set      *bit.Set // same requests as a set
	cost     float64  // true distance
	load     float64
	duration float64
}

// pool is the growing set of candidate routes. Routes are keyed by their
// request set: a second route over the same requests replaces the first only
// when it is strictly cheaper. Safe for concurrent use.
type pool struct {
	mu    sync.RWMutex
	cols  []*column
	byKey map[string]int
}

// newPool returns an empty pool.
func newPool() *pool {
	return &pool{byKey: make(map[string]int)}
}

func requestKey(requests []int) string {
	var sb strings.Builder
	for k, r := range requests {
		if k > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(r))
	}

	return sb.String()
}

// add inserts c and reports whether the pool changed.
func (pl *pool) add(c *column) bool {
	sort.Ints(c.requests)
	key := requestKey(c.requests)
	if c.set == nil {
		c.set = bit.New(c.requests...)
	}

	pl.mu.Lock()
	defer pl.mu.Unlock()
	if k, ok := pl.byKey[key]; ok {
		if c.cost >= pl.cols[k].cost {
			return false
		}
		c.id = pl.cols[k].id
		pl.cols[k] = c

		return true
	}
	if c.id == uuid.Nil {
		c.id = uuid.New()
	}
	pl.byKey[key] = len(pl.cols)
	pl.cols = append(pl.cols, c)

	return true
}

// size returns the number of routes in the pool.
func (pl *pool) size() int {
	pl.mu.RLock()
	defer pl.mu.RUnlock()

	return len(pl.cols)
}

// snapshot returns the current columns; the slice is a copy, the columns
// are shared and must not be mutated.
func (pl *pool) snapshot() []*column {
	pl.mu.RLock()
	defer pl.mu.RUnlock()

	return append([]*column(nil), pl.cols...)
}

// restricted builds the restricted master problem over cols.
func restricted(cols []*column, requests, vehicles int, penalty float64) MasterProblem {
	mp := MasterProblem{
		Requests: requests,
		Vehicles: vehicles,
		Columns:  make([]MasterColumn, len(cols)),
		Penalty:  penalty,
	}
	for k, c := range cols {
		mp.Columns[k] = MasterColumn{Requests: c.requests, Cost: c.cost}
	}

	return mp
}
