// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvroute/model"
	"github.com/katalvlaran/lvroute/vrptw"
)

type routeReport struct {
	ID       string  `yaml:"id"`
	Nodes    []int   `yaml:"nodes"`
	Distance float64 `yaml:"distance"`
	Load     float64 `yaml:"load"`
	Duration float64 `yaml:"duration"`
}

type vrptwReport struct {
	Instance      string        `yaml:"instance"`
	Status        string        `yaml:"status"`
	Proven        bool          `yaml:"proven"`
	TotalDistance float64       `yaml:"total_distance"`
	LowerBound    float64       `yaml:"lower_bound"`
	Iterations    int           `yaml:"iterations"`
	Columns       int           `yaml:"columns"`
	Routes        []routeReport `yaml:"routes"`
}

func newVRPTWCmd(a *app) *cobra.Command {
	var instance, solomon string
	cmd := &cobra.Command{
		Use:   "vrptw",
		Short: "Solve a vehicle routing problem with time windows by column generation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			if f.Changed("digits") {
				a.cfg.VRPTW.Digits, _ = f.GetInt("digits")
			}
			if f.Changed("pricing") {
				a.cfg.VRPTW.Pricing, _ = f.GetString("pricing")
			}
			if f.Changed("max-iterations") {
				a.cfg.VRPTW.MaxIterations, _ = f.GetInt("max-iterations")
			}
			if f.Changed("smoothing") {
				a.cfg.VRPTW.Smoothing, _ = f.GetFloat64("smoothing")
			}

			return a.runVRPTW(cmd, instance, solomon)
		},
	}
	f := cmd.Flags()
	f.StringVar(&instance, "instance", "", "YAML instance file")
	f.StringVar(&solomon, "solomon", "", "Solomon benchmark text file")
	f.Int("digits", 0, "decimals kept of Euclidean distances")
	f.String("pricing", "", "pricing strategy: labeling or pulse")
	f.Int("max-iterations", 0, "column-generation iteration limit")
	f.Float64("smoothing", 0, "dual smoothing factor in [0,1)")
	cmd.MarkFlagsOneRequired("instance", "solomon")
	cmd.MarkFlagsMutuallyExclusive("instance", "solomon")

	return cmd
}

func readInstance(instance, solomon string) (*model.Solomon, error) {
	path, read := instance, model.ReadSolomonYAML
	if solomon != "" {
		path, read = solomon, model.ReadSolomonText
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	s, err := read(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

func (a *app) runVRPTW(cmd *cobra.Command, instance, solomon string) error {
	s, err := readInstance(instance, solomon)
	if err != nil {
		return err
	}
	opts, err := a.cfg.RoutingOptions(a.log)
	if err != nil {
		return err
	}

	res, err := vrptw.Solve(cmd.Context(), s, opts)
	switch {
	case errors.Is(err, vrptw.ErrNotConverged):
		a.log.WithError(err).Warn("reporting the best route set from the pool")
	case err != nil && res.Status == vrptw.StatusInterrupted && len(res.Routes) > 0:
		a.log.WithError(err).Warn("interrupted; reporting the best route set from the pool")
	case err != nil:
		return err
	}

	rep := vrptwReport{
		Instance:      s.Name,
		Status:        res.Status.String(),
		Proven:        res.Proven,
		TotalDistance: res.TotalDistance,
		LowerBound:    res.LowerBound,
		Iterations:    res.Iterations,
		Columns:       res.Columns,
	}
	for _, r := range res.Details {
		rep.Routes = append(rep.Routes, routeReport{
			ID:       r.ID.String(),
			Nodes:    r.Nodes,
			Distance: r.Distance,
			Load:     r.Load,
			Duration: r.Duration,
		})
	}

	return a.write(rep)
}
