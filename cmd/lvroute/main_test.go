// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(append([]string{"--env-file", "", "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestESPPRC_OneBased(t *testing.T) {
	for _, method := range []string{"labeling", "pulse"} {
		out, err := run(t, "espprc", "--instance", "testdata/diamond.yaml", "--one-based", "--method", method)
		require.NoError(t, err)

		var rep espprcReport
		require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
		require.Equal(t, method, rep.Method)
		require.Equal(t, "optimal", rep.Status)
		require.Len(t, rep.Paths, 1)
		require.Equal(t, []int{1, 2, 3, 4}, rep.Paths[0].Nodes)
		require.InDelta(t, 0.0, rep.Paths[0].Cost, 1e-9)
		require.InDelta(t, 8.0, rep.Paths[0].Time, 1e-9)
		require.InDelta(t, 2.0, rep.Paths[0].Load, 1e-9)
	}
}

func TestESPPRC_ZeroBasedRejectsOutOfRange(t *testing.T) {
	// Without --one-based, destination 4 does not exist in a 4-node graph.
	_, err := run(t, "espprc", "--instance", "testdata/diamond.yaml")
	require.Error(t, err)
}

func TestESPPRC_Errors(t *testing.T) {
	_, err := run(t, "espprc")
	require.Error(t, err)

	_, err = run(t, "espprc", "--instance", "testdata/missing.yaml")
	require.Error(t, err)

	_, err = run(t, "espprc", "--instance", "testdata/diamond.yaml", "--one-based", "--method", "astar")
	require.Error(t, err)
}

func TestVRPTW_WorkedExample(t *testing.T) {
	out, err := run(t, "vrptw", "--instance", "testdata/worked.yaml", "--digits", "3", "--pricing", "pulse")
	require.NoError(t, err)

	var rep vrptwReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	require.Equal(t, "worked example", rep.Instance)
	require.Equal(t, "optimal", rep.Status)
	require.True(t, rep.Proven)
	require.InDelta(t, 55.128, rep.TotalDistance, 1e-6)
	served := 0
	for _, r := range rep.Routes {
		require.NotEmpty(t, r.ID)
		require.Equal(t, 0, r.Nodes[0])
		require.Equal(t, 0, r.Nodes[len(r.Nodes)-1])
		served += len(r.Nodes) - 2
	}
	require.Equal(t, 16, served)
}

func TestVRPTW_SolomonText(t *testing.T) {
	out, err := run(t, "vrptw", "--solomon", "testdata/c101-mini.txt")
	require.NoError(t, err)

	var rep vrptwReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	require.Equal(t, "C101-mini", rep.Instance)
	require.Len(t, rep.Routes, 1)
	require.Equal(t, []int{0, 2, 1, 0}, rep.Routes[0].Nodes)
	require.InDelta(t, 20.615+2+18.681, rep.TotalDistance, 1e-9)
}

func TestVRPTW_NotConvergedStillReports(t *testing.T) {
	out, err := run(t, "vrptw", "--instance", "testdata/worked.yaml", "--max-iterations", "1")
	require.NoError(t, err)

	var rep vrptwReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	require.Equal(t, "not-converged", rep.Status)
	require.NotEmpty(t, rep.Routes)
}

func TestVRPTW_FlagErrors(t *testing.T) {
	_, err := run(t, "vrptw")
	require.Error(t, err)

	_, err = run(t, "vrptw", "--instance", "testdata/worked.yaml", "--solomon", "testdata/c101-mini.txt")
	require.Error(t, err)

	_, err = run(t, "vrptw", "--instance", "testdata/worked.yaml", "--smoothing", "2")
	require.Error(t, err)
}
