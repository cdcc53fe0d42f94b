// SPDX-License-Identifier: MIT

package model_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvroute/model"
)

const problemYAML = `
origin: 0
destination: 2
capacity: 4
cost:
  - [0, -1, 3]
  - [2, 0, -2]
  - [1, 1, 0]
time:
  - [0, 1, inf]
  - [1, 0, .inf]
  - [Infinity, 1, 0]
load_on_node: [0, 1, 0]
early: [0, 0, 0]
late: [10, 10, 10]
`

func TestReadProblemYAML(t *testing.T) {
	t.Parallel()

	p, err := model.ReadProblemYAML(strings.NewReader(problemYAML))
	require.NoError(t, err)
	require.Equal(t, 3, p.N())
	require.Equal(t, 2, p.Destination())
	require.True(t, math.IsInf(p.Time(0, 2), 1))
	require.True(t, math.IsInf(p.Time(1, 2), 1))
	require.Equal(t, -1.0, p.Cost(0, 1))
	require.Equal(t, 1.0, p.Load(2, 1))
	require.Equal(t, 0.0, p.Service(1))
}

func TestDecodeProblemSpecYAML_DefersValidation(t *testing.T) {
	t.Parallel()

	oneBased := strings.Replace(problemYAML, "destination: 2", "destination: 3", 1)
	spec, err := model.DecodeProblemSpecYAML(strings.NewReader(oneBased))
	require.NoError(t, err)
	require.Equal(t, 3, spec.Destination)
	require.Equal(t, []float64{0, 0, 0}, spec.Service)

	_, err = model.NewProblem(spec)
	require.ErrorIs(t, err, model.ErrInvalidInstance)

	spec.Destination--
	_, err = model.NewProblem(spec)
	require.NoError(t, err)
}

func TestReadProblemYAML_Errors(t *testing.T) {
	t.Parallel()

	_, err := model.ReadProblemYAML(strings.NewReader("origin: [1"))
	require.ErrorIs(t, err, model.ErrFormat)

	_, err = model.ReadProblemYAML(strings.NewReader("time: [[0, abc], [1, 0]]"))
	require.ErrorIs(t, err, model.ErrFormat)

	noLoad := strings.Replace(problemYAML, "load_on_node: [0, 1, 0]", "", 1)
	_, err = model.ReadProblemYAML(strings.NewReader(noLoad))
	require.ErrorIs(t, err, model.ErrFormat)

	badWindow := strings.Replace(problemYAML, "early: [0, 0, 0]", "early: [0, 11, 0]", 1)
	_, err = model.ReadProblemYAML(strings.NewReader(badWindow))
	require.ErrorIs(t, err, model.ErrInvalidInstance)
}

const solomonYAML = `
name: tiny
depot: 0
fleet: {vehicles: 2, capacity: 5, max_travel_time: 20}
nodes:
  - {id: 0, x: 0, y: 0}
  - {id: 1, x: 3, y: 4}
requests:
  - {id: 1, early: 0, late: 9, demand: 3, service: 1}
`

func TestReadSolomonYAML(t *testing.T) {
	t.Parallel()

	s, err := model.ReadSolomonYAML(strings.NewReader(solomonYAML))
	require.NoError(t, err)
	require.Equal(t, "tiny", s.Name)
	require.Equal(t, model.Fleet{Vehicles: 2, Capacity: 5, MaxTravelTime: 20}, s.Fleet)
	require.Len(t, s.Nodes, 2)
	require.Equal(t, model.Request{ID: 1, Late: 9, Demand: 3, Service: 1}, s.Requests[0])

	_, err = model.ReadSolomonYAML(strings.NewReader(strings.Replace(solomonYAML, "vehicles: 2", "vehicles: 0", 1)))
	require.ErrorIs(t, err, model.ErrInvalidInstance)
}

const solomonText = `C101-mini

VEHICLE
NUMBER     CAPACITY
  3          200

CUSTOMER
CUST NO.  XCOORD.   YCOORD.    DEMAND   READY TIME  DUE DATE   SERVICE   TIME

    0      40         50          0          0       1236          0
    1      45         68         10        912        967         90
    2      45         70         30        825        870         90
`

func TestReadSolomonText(t *testing.T) {
	t.Parallel()

	s, err := model.ReadSolomonText(strings.NewReader(solomonText))
	require.NoError(t, err)
	require.Equal(t, "C101-mini", s.Name)
	require.Equal(t, 0, s.Depot)
	require.Equal(t, model.Fleet{Vehicles: 3, Capacity: 200, MaxTravelTime: 1236}, s.Fleet)
	require.Equal(t, []model.Node{{ID: 0, X: 40, Y: 50}, {ID: 1, X: 45, Y: 68}, {ID: 2, X: 45, Y: 70}}, s.Nodes)
	require.Equal(t, []model.Request{
		{ID: 1, Early: 912, Late: 967, Demand: 10, Service: 90},
		{ID: 2, Early: 825, Late: 870, Demand: 30, Service: 90},
	}, s.Requests)
}

func TestReadSolomonText_Errors(t *testing.T) {
	t.Parallel()

	_, err := model.ReadSolomonText(strings.NewReader("C101\nVEHICLE\nNUMBER CAPACITY\n"))
	require.ErrorIs(t, err, model.ErrFormat)

	broken := strings.Replace(solomonText, "45         70", "45         xx", 1)
	_, err = model.ReadSolomonText(strings.NewReader(broken))
	require.ErrorIs(t, err, model.ErrFormat)
}
