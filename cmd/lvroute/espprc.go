// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvroute/espprc"
	"github.com/katalvlaran/lvroute/model"
)

type pathReport struct {
	Nodes []int   `yaml:"nodes"`
	Cost  float64 `yaml:"cost"`
	Time  float64 `yaml:"time"`
	Load  float64 `yaml:"load"`
}

type espprcReport struct {
	Method string       `yaml:"method"`
	Status string       `yaml:"status"`
	Paths  []pathReport `yaml:"paths"`
	Labels int          `yaml:"labels,omitempty"`
	Pulses int          `yaml:"pulses,omitempty"`
}

func newESPPRCCmd(a *app) *cobra.Command {
	var (
		instance string
		oneBased bool
	)
	cmd := &cobra.Command{
		Use:   "espprc",
		Short: "Solve one elementary shortest path problem with resource constraints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			if f.Changed("method") {
				a.cfg.ESPPRC.Method, _ = f.GetString("method")
			}
			if f.Changed("max-paths") {
				a.cfg.ESPPRC.MaxPaths, _ = f.GetInt("max-paths")
			}
			if f.Changed("time-limit") {
				a.cfg.ESPPRC.TimeLimit, _ = f.GetDuration("time-limit")
			}
			if f.Changed("ng") {
				a.cfg.ESPPRC.NGSize, _ = f.GetInt("ng")
			}

			return a.runESPPRC(cmd, instance, oneBased)
		},
	}
	f := cmd.Flags()
	f.StringVar(&instance, "instance", "", "YAML instance file")
	f.BoolVar(&oneBased, "one-based", false, "origin, destination and reported nodes are numbered from 1")
	f.String("method", "", "labeling or pulse")
	f.Int("max-paths", 0, "number of best paths to report")
	f.Duration("time-limit", 0, "wall-clock limit per solve")
	f.Int("ng", 0, "ng-route neighbourhood size (label setting); 0 keeps full elementarity")
	_ = cmd.MarkFlagRequired("instance")

	return cmd
}

func (a *app) runESPPRC(cmd *cobra.Command, instance string, oneBased bool) error {
	fh, err := os.Open(instance)
	if err != nil {
		return err
	}
	defer fh.Close()
	spec, err := model.DecodeProblemSpecYAML(fh)
	if err != nil {
		return fmt.Errorf("%s: %w", instance, err)
	}
	if oneBased {
		spec.Origin--
		spec.Destination--
	}
	p, err := model.NewProblem(spec)
	if err != nil {
		return fmt.Errorf("%s: %w", instance, err)
	}

	method, opts, err := a.cfg.SolverOptions(a.log)
	if err != nil {
		return err
	}
	solver, err := espprc.New(method, opts...)
	if err != nil {
		return err
	}
	sol, err := solver.Solve(cmd.Context(), p)
	switch {
	case errors.Is(err, espprc.ErrBudgetExceeded):
		a.log.Warn("search stopped by its budget; reporting the best paths found")
	case errors.Is(err, espprc.ErrInfeasible):
		a.log.Info("no feasible path")
	case err != nil:
		return err
	}

	shift := 0
	if oneBased {
		shift = 1
	}
	rep := espprcReport{
		Method: method.String(),
		Status: sol.Status.String(),
		Labels: sol.Stats.Labels,
		Pulses: sol.Stats.Pulses,
	}
	for _, path := range sol.Paths {
		nodes := make([]int, len(path.Nodes))
		for k, v := range path.Nodes {
			nodes[k] = v + shift
		}
		rep.Paths = append(rep.Paths, pathReport{Nodes: nodes, Cost: path.Cost, Time: path.Time, Load: path.Load})
	}
	a.log.WithFields(logrus.Fields{"status": rep.Status, "paths": len(rep.Paths)}).Debug("espprc done")

	return a.write(rep)
}

func (a *app) write(v any) error {
	enc := yaml.NewEncoder(a.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}
