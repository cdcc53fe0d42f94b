// SPDX-License-Identifier: MIT

package espprc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/lvroute/model"
)

// Sentinel errors returned by the solvers.
var (
	// ErrInfeasible means no resource-feasible elementary path exists from
	// origin to destination. It accompanies StatusInfeasible.
	ErrInfeasible = errors.New("espprc: no feasible path")

	// ErrBudgetExceeded means the search stopped on MaxLabels, TimeLimit or
	// context cancellation. It accompanies StatusInterrupted; the Solution
	// still carries the best paths found so far.
	ErrBudgetExceeded = errors.New("espprc: search budget exceeded")

	// ErrUnknownMethod is returned by ParseMethod and New.
	ErrUnknownMethod = errors.New("espprc: unknown method")

	// ErrNilProblem indicates a nil *model.Problem.
	ErrNilProblem = errors.New("espprc: problem is nil")

	// ErrBadOptions indicates an out-of-range option value.
	ErrBadOptions = errors.New("espprc: invalid options")
)

// Method selects a search strategy.
type Method int

const (
	// MethodLabelSetting is the dynamic-programming label-setting search.
	MethodLabelSetting Method = iota
	// MethodPulse is the bounded depth-first pulse search.
	MethodPulse
)

func (m Method) String() string {
	switch m {
	case MethodLabelSetting:
		return "labeling"
	case MethodPulse:
		return "pulse"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps "labeling", "label-setting" or "pulse" (any case) to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "labeling", "label-setting", "labelling":
		return MethodLabelSetting, nil
	case "pulse":
		return MethodPulse, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Relaxation selects how much of the visited set the label-setting search
// remembers.
type Relaxation int

const (
	// Elementary keeps the full visited set: exact, possibly many labels.
	Elementary Relaxation = iota
	// NGRoute keeps only each node's NGSize nearest neighbours plus a
	// critical set grown by restarts until the best path is elementary.
	NGRoute
)

// Status is the outcome of a solve.
type Status int

const (
	// StatusOptimal means the search completed; Best is optimal.
	StatusOptimal Status = iota
	// StatusInfeasible means the search completed and found no path.
	StatusInfeasible
	// StatusInterrupted means a budget stopped the search; Best is the best
	// path found so far, if any.
	StatusInterrupted
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusInterrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Stop is one node of a resource trace.
type Stop struct {
	Node    int
	Arrival float64 // time of arrival, before waiting
	Start   float64 // service start, max(Arrival, early)
	Load    float64 // accumulated load after arriving
	Cost    float64 // accumulated cost after arriving
}

// Path is a completed origin→destination path with its resources.
type Path struct {
	Nodes []int
	Cost  float64
	Time  float64 // completion time of service at the destination
	Load  float64
	Trace []Stop
}

// Stats are search counters, reported for diagnostics and metrics.
type Stats struct {
	Labels    int // labels created (label setting)
	Dominated int // labels discarded by dominance
	Expanded  int // labels expanded
	Pulses    int // recursive calls (pulse)
	Restarts  int // ng-route critical-set restarts
	Elapsed   time.Duration
}

func (s Stats) events() map[string]int {
	return map[string]int{
		"label":     s.Labels,
		"dominated": s.Dominated,
		"expanded":  s.Expanded,
		"pulse":     s.Pulses,
		"restart":   s.Restarts,
	}
}

// Solution is the structured result of Solver.Solve.
type Solution struct {
	Status Status
	// Best is the cheapest path found; zero when none was found.
	Best Path
	// Paths holds up to Options.MaxPaths distinct paths by ascending cost,
	// Paths[0] == Best. In threshold mode it holds every path within the
	// threshold (up to MaxPaths).
	Paths []Path
	Stats Stats
}

// Found reports whether at least one path was found.
func (s Solution) Found() bool { return len(s.Paths) > 0 }

// Solver is the single capability shared by both strategies.
type Solver interface {
	// Solve searches p. The returned error is nil for StatusOptimal,
	// wraps ErrInfeasible for StatusInfeasible and ErrBudgetExceeded for
	// StatusInterrupted; other errors mean the call was invalid.
	Solve(ctx context.Context, p *model.Problem) (Solution, error)
	// Method names the strategy.
	Method() Method
}

// Options configures both strategies.
//
// Eps        – tolerance on cost comparisons (default 1e-9); resource bounds are exact.
// MaxPaths   – number of best distinct paths to return (default 1).
// MaxLabels  – cap on labels (label setting) or pulses (pulse); 0 means none.
// TimeLimit  – wall-clock cap; 0 means none.
// Relaxation – Elementary (default) or NGRoute; label setting only.
// NGSize     – neighbourhood size for NGRoute (default 8).
// Enumerate  – pulse only: collect every path with cost ≤ Threshold.
// Logger     – optional structured logger; nil discards.
type Options struct {
	Eps        float64
	MaxPaths   int
	MaxLabels  int
	TimeLimit  time.Duration
	Relaxation Relaxation
	NGSize     int
	Enumerate  bool
	Threshold  float64
	Logger     logrus.FieldLogger
}

// Option is a functional override applied on top of DefaultOptions.
type Option func(*Options)

// Defaults.
const (
	DefaultEps      = 1e-9
	DefaultMaxPaths = 1
	DefaultNGSize   = 8
)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Eps:        DefaultEps,
		MaxPaths:   DefaultMaxPaths,
		Relaxation: Elementary,
		NGSize:     DefaultNGSize,
	}
}

// WithEps sets the cost tolerance.
func WithEps(eps float64) Option { return func(o *Options) { o.Eps = eps } }

// WithMaxPaths sets how many best paths are returned.
func WithMaxPaths(k int) Option { return func(o *Options) { o.MaxPaths = k } }

// WithMaxLabels caps labels (label setting) or pulses (pulse).
func WithMaxLabels(n int) Option { return func(o *Options) { o.MaxLabels = n } }

// WithTimeLimit caps the wall-clock time of one solve.
func WithTimeLimit(d time.Duration) Option { return func(o *Options) { o.TimeLimit = d } }

// WithNGRoute switches label setting to the ng-route relaxation with the
// given neighbourhood size.
func WithNGRoute(size int) Option {
	return func(o *Options) {
		o.Relaxation = NGRoute
		o.NGSize = size
	}
}

// WithThreshold switches pulse to enumeration of every path with cost ≤ v.
func WithThreshold(v float64) Option {
	return func(o *Options) {
		o.Enumerate = true
		o.Threshold = v
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option { return func(o *Options) { o.Logger = l } }

// Validate checks option ranges.
func (o Options) Validate() error {
	switch {
	case o.Eps < 0:
		return fmt.Errorf("%w: Eps %g < 0", ErrBadOptions, o.Eps)
	case o.MaxPaths < 1:
		return fmt.Errorf("%w: MaxPaths %d < 1", ErrBadOptions, o.MaxPaths)
	case o.MaxLabels < 0:
		return fmt.Errorf("%w: MaxLabels %d < 0", ErrBadOptions, o.MaxLabels)
	case o.TimeLimit < 0:
		return fmt.Errorf("%w: TimeLimit %v < 0", ErrBadOptions, o.TimeLimit)
	case o.Relaxation == NGRoute && o.NGSize < 1:
		return fmt.Errorf("%w: NGSize %d < 1", ErrBadOptions, o.NGSize)
	case o.Relaxation != Elementary && o.Relaxation != NGRoute:
		return fmt.Errorf("%w: Relaxation %d", ErrBadOptions, o.Relaxation)
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
