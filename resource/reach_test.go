// SPDX-License-Identifier: MIT

package resource_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvroute/model"
	"github.com/katalvlaran/lvroute/resource"
)

func TestReach_ShortestTimeUsesDetours(t *testing.T) {
	t.Parallel()

	p := triangle(t, func(s *model.ProblemSpec) { s.Time[0][2] = 9 })
	r, err := resource.NewReach(p)
	require.NoError(t, err)
	require.Equal(t, 5.0, r.ShortestTime(0, 2), "0→1→2 beats the direct arc")
	require.Equal(t, 1.0, r.ShortestTime(2, 0))
}

func TestReach_MarkUnreachable(t *testing.T) {
	t.Parallel()

	p := triangle(t, nil)
	r, err := resource.NewReach(p)
	require.NoError(t, err)

	s := resource.Initial(p)
	require.True(t, r.MarkUnreachable(&s, 0))
	require.False(t, s.Visited.Contains(1), "1 reachable at exactly 5")

	s.Time = 2.5
	require.True(t, r.MarkUnreachable(&s, 0))
	require.True(t, s.Visited.Contains(1), "arrival 5.5 > late(1)")
	require.False(t, s.Visited.Contains(2), "destination is never marked")

	full := resource.Initial(p)
	full.Load = 1.5
	require.True(t, r.MarkUnreachable(&full, 0))
	require.True(t, full.Visited.Contains(1), "load 1.5 + 2 > 3")

	dead := resource.Initial(p)
	dead.Time = 7
	require.False(t, r.MarkUnreachable(&dead, 0), "arrival 11 > late(2)")
}
