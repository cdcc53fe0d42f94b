// SPDX-License-Identifier: MIT

package espprc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvroute/espprc"
	"github.com/katalvlaran/lvroute/model"
)

func TestSolveBatch_MatchesSequential(t *testing.T) {
	t.Parallel()

	solver, err := espprc.New(espprc.MethodLabelSetting)
	require.NoError(t, err)

	problems := make([]*model.Problem, 0, 24)
	for seed := int64(1); seed <= 24; seed++ {
		problems = append(problems, randomProblem(t, seed, 7, seed%2 == 0))
	}

	results, err := espprc.SolveBatch(context.Background(), solver, problems, 4)
	require.NoError(t, err)
	require.Len(t, results, len(problems))
	for i, p := range problems {
		want, wantErr := solver.Solve(context.Background(), p)
		require.Equal(t, wantErr, results[i].Err, "problem %d", i)
		require.Equal(t, want.Status, results[i].Solution.Status)
		require.Equal(t, want.Best.Cost, results[i].Solution.Best.Cost)
	}
}

func TestSolveBatch_Errors(t *testing.T) {
	t.Parallel()

	solver, err := espprc.New(espprc.MethodPulse)
	require.NoError(t, err)

	_, err = espprc.SolveBatch(context.Background(), solver, []*model.Problem{nil}, 2)
	require.ErrorIs(t, err, espprc.ErrNilProblem)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = espprc.SolveBatch(ctx, solver, []*model.Problem{randomProblem(t, 3, 6, false)}, 0)
	require.ErrorIs(t, err, context.Canceled)
}
