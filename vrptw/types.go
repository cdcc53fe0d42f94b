// SPDX-License-Identifier: MIT

package vrptw

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/lvroute/espprc"
)

// Sentinel errors.
var (
	// ErrInfeasibleInstance means some request cannot be served by any
	// route, or pricing found no route at all.
	ErrInfeasibleInstance = errors.New("vrptw: infeasible instance")

	// ErrNotConverged means the iteration budget ran out before pricing
	// proved the LP optimal. The Result is still usable: it carries the
	// last LP value and an integer route set from the pool.
	ErrNotConverged = errors.New("vrptw: column generation did not converge")

	// ErrFleetTooSmall means no route set within the vehicle count covers
	// every request.
	ErrFleetTooSmall = errors.New("vrptw: fleet too small")

	// ErrMaster wraps failures of the master LP collaborator.
	ErrMaster = errors.New("vrptw: master problem failed")

	// ErrBadOptions indicates an out-of-range option value.
	ErrBadOptions = errors.New("vrptw: invalid options")

	// ErrNilInstance indicates a nil *model.Solomon.
	ErrNilInstance = errors.New("vrptw: instance is nil")
)

// Status is the outcome of Solve.
type Status int

const (
	// StatusOptimal means pricing converged (or the LP was integral with
	// StopOnIntegral) and an integer route set was found.
	StatusOptimal Status = iota
	// StatusNotConverged means MaxIterations was reached.
	StatusNotConverged
	// StatusInterrupted means the context was cancelled.
	StatusInterrupted
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusNotConverged:
		return "not-converged"
	case StatusInterrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Route is one vehicle route of a Result, in instance node ids.
type Route struct {
	ID       uuid.UUID
	Nodes    []int // depot, requests..., depot
	Requests []int // request node ids in visiting order
	Distance float64
	Load     float64
	Duration float64 // completion time back at the depot
}

// Result is the outcome of Solve.
type Result struct {
	Status Status
	// Routes lists each route as instance node ids, depot at both ends.
	Routes        [][]int
	Details       []Route
	TotalDistance float64

	// LPObjective is the last restricted master value; LowerBound is the
	// best valid bound on the optimal distance.
	LPObjective float64
	LowerBound  float64
	// Integral reports whether the last LP solution was integral.
	Integral bool
	// Proven reports whether the route set is proven optimal.
	Proven bool

	Iterations int
	Columns    int
	Elapsed    time.Duration
}

// Options configures Solve.
//
// Digits            – decimals kept of Euclidean distances (default 3; < 0 keeps all).
// PricingMethod     – espprc strategy for pricing (default label setting).
// Master            – LP collaborator (default SimplexMaster).
// MaxIterations     – pricing iterations before giving up (default 500).
// MaxColumnsPerIter – negative columns added per iteration (default 10).
// StopOnIntegral    – stop as soon as the LP solution is integral.
// Smoothing         – Wentges dual smoothing factor in [0,1); 0 disables.
// ExactIntegral     – enumerate improving routes before the final set partitioning (default true).
// EnumerationLimit  – cap on enumerated routes (default 200000).
// PricingTimeLimit  – per-call pricing time cap; 0 means none.
// PricingMaxLabels  – per-call pricing label cap; 0 means none.
// IntegerNodeLimit  – cap on branch-and-bound nodes (default 20e6).
// Workers           – concurrent pricing calls when smoothing (default 2).
// Logger            – optional structured logger; nil discards.
type Options struct {
	Digits            int
	PricingMethod     espprc.Method
	Master            Master
	MaxIterations     int
	MaxColumnsPerIter int
	StopOnIntegral    bool
	Smoothing         float64
	ExactIntegral     bool
	EnumerationLimit  int
	PricingTimeLimit  time.Duration
	PricingMaxLabels  int
	IntegerNodeLimit  int
	Workers           int
	Logger            logrus.FieldLogger
}

// Defaults.
const (
	DefaultDigits            = 3
	DefaultMaxIterations     = 500
	DefaultMaxColumnsPerIter = 10
	DefaultEnumerationLimit  = 200_000
	DefaultIntegerNodeLimit  = 20_000_000
	DefaultWorkers           = 2
)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Digits:            DefaultDigits,
		PricingMethod:     espprc.MethodLabelSetting,
		MaxIterations:     DefaultMaxIterations,
		MaxColumnsPerIter: DefaultMaxColumnsPerIter,
		ExactIntegral:     true,
		EnumerationLimit:  DefaultEnumerationLimit,
		IntegerNodeLimit:  DefaultIntegerNodeLimit,
		Workers:           DefaultWorkers,
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	switch {
	case o.MaxIterations < 1:
		return fmt.Errorf("%w: MaxIterations %d < 1", ErrBadOptions, o.MaxIterations)
	case o.MaxColumnsPerIter < 1:
		return fmt.Errorf("%w: MaxColumnsPerIter %d < 1", ErrBadOptions, o.MaxColumnsPerIter)
	case o.Smoothing < 0 || o.Smoothing >= 1:
		return fmt.Errorf("%w: Smoothing %g not in [0,1)", ErrBadOptions, o.Smoothing)
	case o.EnumerationLimit < 1:
		return fmt.Errorf("%w: EnumerationLimit %d < 1", ErrBadOptions, o.EnumerationLimit)
	case o.IntegerNodeLimit < 1:
		return fmt.Errorf("%w: IntegerNodeLimit %d < 1", ErrBadOptions, o.IntegerNodeLimit)
	case o.PricingTimeLimit < 0 || o.PricingMaxLabels < 0:
		return fmt.Errorf("%w: negative pricing budget", ErrBadOptions)
	case o.PricingMethod != espprc.MethodLabelSetting && o.PricingMethod != espprc.MethodPulse:
		return fmt.Errorf("%w: %v", espprc.ErrUnknownMethod, o.PricingMethod)
	}

	return nil
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
