// SPDX-License-Identifier: MIT

package vrptw

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/lvroute/metrics"
	"github.com/katalvlaran/lvroute/model"
)

// integralTol decides whether an LP value counts as 0 or 1.
const integralTol = 1e-6

// Solve runs column generation on inst and returns an integer route set.
//
// Steps:
//  1. Build the pricing network (Euclidean distances truncated to opts.Digits)
//     and seed the pool with one single-request route per request.
//  2. Repeat: solve the restricted master, price routes with negative
//     reduced cost, add them to the pool. Stop when pricing proves none
//     exists, when the LP is integral (StopOnIntegral), or after
//     MaxIterations.
//  3. Partition the requests over the pool with branch-and-bound. With
//     ExactIntegral and a converged LP, every route whose reduced cost is
//     within the integrality gap is enumerated first, so the partition is
//     optimal when no limit was hit (Result.Proven).
//
// Errors:
//   - model.ErrInvalidInstance (via *model.ValidationError), ErrNilInstance, ErrBadOptions;
//   - ErrInfeasibleInstance when a request cannot be served alone;
//   - ErrFleetTooSmall when no partition fits in Fleet.Vehicles routes;
//   - ErrMaster (wrapped) when the LP collaborator fails;
//   - ErrNotConverged with StatusNotConverged, and the context error with
//     StatusInterrupted; both still return the best Result available.
func Solve(ctx context.Context, inst *model.Solomon, opts Options) (Result, error) {
	start := time.Now()
	if inst == nil {
		return Result{}, ErrNilInstance
	}
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	nw, err := inst.Network(opts.Digits)
	if err != nil {
		return Result{}, err
	}

	d := &driver{
		ctx:      ctx,
		nw:       nw,
		opts:     opts,
		log:      opts.logger().WithField("instance", inst.Name),
		master:   opts.Master,
		pool:     newPool(),
		m:        len(nw.Requests),
		vehicles: inst.Fleet.Vehicles,
	}
	if d.master == nil {
		d.master = SimplexMaster{}
	}
	if err = d.seed(); err != nil {
		return Result{}, err
	}
	if d.pricer, err = newPricer(nw, opts); err != nil {
		return Result{}, err
	}

	res, err := d.run()
	res.Columns = d.pool.size()
	res.Elapsed = time.Since(start)
	metrics.VRPTWDuration.WithLabelValues(res.Status.String()).Observe(res.Elapsed.Seconds())
	d.log.WithFields(logrus.Fields{
		"status":         res.Status.String(),
		"routes":         len(res.Routes),
		"total_distance": res.TotalDistance,
		"lower_bound":    res.LowerBound,
		"proven":         res.Proven,
		"iterations":     res.Iterations,
		"columns":        res.Columns,
		"elapsed":        res.Elapsed,
	}).Info("vrptw: solve finished")

	return res, err
}

type driver struct {
	ctx      context.Context
	nw       *model.Network
	opts     Options
	log      logrus.FieldLogger
	master   Master
	pricer   *pricer
	pool     *pool
	m        int
	vehicles int
	penalty  float64
}

// seed adds the single-request routes and sets the artificial penalty.
func (d *driver) seed() error {
	total := 0.0
	for k := 0; k < d.m; k++ {
		c, err := singleton(d.nw, k)
		if err != nil {
			return err
		}
		d.pool.add(c)
		total += c.cost
	}
	metrics.ColumnsAdded.WithLabelValues("initial").Add(float64(d.m))
	d.penalty = 100 * (1 + total)

	return nil
}

// run is the column-generation loop followed by the integer stage.
func (d *driver) run() (Result, error) {
	res := Result{Status: StatusNotConverged}
	var (
		ms        MasterSolution
		current   duals
		center    *duals
		converged bool
		integral  bool
	)

	for it := 1; it <= d.opts.MaxIterations; it++ {
		if err := d.ctx.Err(); err != nil {
			return d.interrupted(res, err)
		}
		cols := d.pool.snapshot()
		sol, err := d.master.Solve(d.ctx, restricted(cols, d.m, d.vehicles, d.penalty))
		if err != nil {
			if cerr := d.ctx.Err(); cerr != nil {
				return d.interrupted(res, cerr)
			}
			if !errors.Is(err, ErrMaster) {
				err = fmt.Errorf("%w: %w", ErrMaster, err)
			}
			return res, fmt.Errorf("vrptw: pricing iteration %d: %w", it, err)
		}
		ms = sol
		res.Iterations = it
		res.LPObjective = ms.Objective
		current = duals{pi: ms.Duals, mu: ms.FleetDual}
		integral = isIntegral(ms.X) && ms.Artificial <= integralTol
		if d.opts.StopOnIntegral && integral {
			res.Status = StatusOptimal
			break
		}

		var smoothed *duals
		if d.opts.Smoothing > 0 && center != nil {
			s := current.mix(*center, d.opts.Smoothing)
			smoothed = &s
		}
		pc, err := d.pricer.price(d.ctx, current, smoothed)
		if err != nil {
			if cerr := d.ctx.Err(); cerr != nil {
				return d.interrupted(res, cerr)
			}
			return res, fmt.Errorf("vrptw: pricing iteration %d: %w", it, err)
		}
		metrics.PricingIterations.Inc()
		if pc.exact {
			lb := ms.Objective + float64(d.vehicles)*math.Min(0, pc.minRC)
			res.LowerBound = math.Max(res.LowerBound, lb)
		}

		added := 0
		for _, c := range pc.cols {
			if d.pool.add(c) {
				added++
			}
		}
		metrics.ColumnsAdded.WithLabelValues("pricing").Add(float64(added))
		d.log.WithFields(logrus.Fields{
			"iteration":     it,
			"columns":       d.pool.size(),
			"added":         added,
			"lp_objective":  ms.Objective,
			"reduced_cost":  pc.minRC,
			"artificial":    ms.Artificial,
			"exact_pricing": pc.exact,
		}).Debug("vrptw: pricing iteration")

		c := current
		center = &c
		if pc.exact && len(pc.cols) == 0 {
			converged = true
			res.Status = StatusOptimal
			break
		}
		if added == 0 {
			// Pricing produced nothing new and could not prove optimality.
			break
		}
	}
	res.Integral = integral

	if converged {
		if ms.Artificial > integralTol {
			return res, fmt.Errorf("%w: LP needs %.3g extra vehicles", ErrFleetTooSmall, ms.Artificial)
		}
		res.LowerBound = math.Max(res.LowerBound, ms.Objective)
	}

	chosen, ub, _ := partition(d.ctx, d.pool.snapshot(), d.m, d.vehicles, d.opts.IntegerNodeLimit, math.Inf(1))
	if chosen == nil {
		if cerr := d.ctx.Err(); cerr != nil {
			return d.interrupted(res, cerr)
		}
		if res.Status == StatusNotConverged {
			return res, ErrNotConverged
		}
		return res, fmt.Errorf("%w: no partition into %d routes", ErrFleetTooSmall, d.vehicles)
	}

	if converged && ub-res.LowerBound <= integralTol {
		res.Proven = true
	} else if converged && d.opts.ExactIntegral {
		cols, complete, err := enumerate(d.ctx, d.nw, current, ub-ms.Objective+integralTol, d.opts.EnumerationLimit, d.opts)
		if err != nil {
			return res, fmt.Errorf("vrptw: enumeration: %w", err)
		}
		added := 0
		for _, c := range cols {
			if d.pool.add(c) {
				added++
			}
		}
		metrics.ColumnsAdded.WithLabelValues("enumeration").Add(float64(added))
		d.log.WithFields(logrus.Fields{
			"routes":   len(cols),
			"added":    added,
			"complete": complete,
			"gap":      ub - ms.Objective,
		}).Debug("vrptw: enumerated routes within the gap")

		better, _, done := partition(d.ctx, d.pool.snapshot(), d.m, d.vehicles, d.opts.IntegerNodeLimit, ub)
		if better != nil {
			chosen = better
		}
		res.Proven = complete && done
	}

	d.fill(&res, chosen)
	if cerr := d.ctx.Err(); cerr != nil {
		res.Status, res.Proven = StatusInterrupted, false
		return res, fmt.Errorf("vrptw: %w", cerr)
	}
	if res.Status == StatusNotConverged {
		return res, fmt.Errorf("%w after %d iterations", ErrNotConverged, res.Iterations)
	}

	return res, nil
}

// interruptedNodeLimit caps the partition search run after a cancellation.
const interruptedNodeLimit = 100_000

// interrupted completes res from the pool after a cancellation.
func (d *driver) interrupted(res Result, cause error) (Result, error) {
	res.Status = StatusInterrupted
	limit := min(d.opts.IntegerNodeLimit, interruptedNodeLimit)
	if chosen, _, _ := partition(context.Background(), d.pool.snapshot(), d.m, d.vehicles, limit, math.Inf(1)); chosen != nil {
		d.fill(&res, chosen)
	}

	return res, fmt.Errorf("vrptw: %w", cause)
}

// fill writes the chosen routes into res in instance node ids.
func (d *driver) fill(res *Result, chosen []*column) {
	sort.Slice(chosen, func(a, b int) bool { return chosen[a].nodes[1] < chosen[b].nodes[1] })
	res.Routes = make([][]int, len(chosen))
	res.Details = make([]Route, len(chosen))
	res.TotalDistance = 0
	for k, c := range chosen {
		ids := d.nw.RouteIDs(c.nodes)
		res.Routes[k] = ids
		res.Details[k] = Route{
			ID:       c.id,
			Nodes:    ids,
			Requests: append([]int(nil), ids[1:len(ids)-1]...),
			Distance: c.cost,
			Load:     c.load,
			Duration: c.duration,
		}
		res.TotalDistance += c.cost
	}
}

func isIntegral(x []float64) bool {
	for _, v := range x {
		if v > integralTol && v < 1-integralTol {
			return false
		}
	}

	return true
}
