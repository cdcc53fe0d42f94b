// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvroute/internal/config"
	"github.com/katalvlaran/lvroute/metrics"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath  string
	envFile     string
	logLevel    string
	metricsAddr string

	cfg     config.Config
	log     *logrus.Entry
	metrics *http.Server
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}
	root := &cobra.Command{
		Use:           "lvroute",
		Short:         "Resource-constrained shortest paths and VRPTW column generation",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file with LVROUTE_* overrides (optional)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (overrides configuration)")
	pf.StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	root.AddCommand(newESPPRCCmd(a), newVRPTWCmd(a))

	return root
}

// setup loads the configuration, builds the logger and starts the metrics
// endpoint when an address is configured.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, a.envFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.MetricsAddr = a.metricsAddr
	}
	l, err := cfg.Logger(a.errOut)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = l.WithFields(logrus.Fields{"run": uuid.NewString(), "command": cmd.Name()})

	metrics.RegisterDefault()
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
		a.metrics = &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := a.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.WithError(err).Error("metrics endpoint stopped")
			}
		}()
		a.log.WithField("addr", cfg.MetricsAddr).Info("serving metrics")
	}

	return nil
}

func (a *app) teardown() error {
	if a.metrics == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return a.metrics.Shutdown(ctx)
}
