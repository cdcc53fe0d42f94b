// SPDX-License-Identifier: MIT

// Package config loads lvroute CLI settings.
//
// Precedence, lowest first: Default(), the YAML file, variables from the
// .env file (never overriding the real environment), LVROUTE_* environment
// variables. Command flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvroute/espprc"
	"github.com/katalvlaran/lvroute/vrptw"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LVROUTE_"

// ErrConfig reports an unreadable file or an unparsable value.
var ErrConfig = errors.New("config: invalid configuration")

// Log configures the CLI logger.
type Log struct {
	Level  string `yaml:"level"`  // logrus level name
	Format string `yaml:"format"` // "text" or "json"
}

// ESPPRC configures the espprc subcommand.
type ESPPRC struct {
	Method    string        `yaml:"method"`
	MaxPaths  int           `yaml:"max_paths"`
	MaxLabels int           `yaml:"max_labels"`
	TimeLimit time.Duration `yaml:"time_limit"`
	NGSize    int           `yaml:"ng_size"` // > 0 switches label setting to ng-route
}

// VRPTW configures the vrptw subcommand.
type VRPTW struct {
	Digits           int           `yaml:"digits"`
	Pricing          string        `yaml:"pricing"`
	MaxIterations    int           `yaml:"max_iterations"`
	MaxColumns       int           `yaml:"max_columns"`
	Smoothing        float64       `yaml:"smoothing"`
	ExactIntegral    bool          `yaml:"exact_integral"`
	PricingTimeLimit time.Duration `yaml:"pricing_time_limit"`
	Workers          int           `yaml:"workers"`
}

// Config is the whole CLI configuration.
type Config struct {
	Log         Log    `yaml:"log"`
	MetricsAddr string `yaml:"metrics_addr"`
	ESPPRC      ESPPRC `yaml:"espprc"`
	VRPTW       VRPTW  `yaml:"vrptw"`
}

// Default mirrors the library defaults.
func Default() Config {
	vo := vrptw.DefaultOptions()

	return Config{
		Log:    Log{Level: "info", Format: "text"},
		ESPPRC: ESPPRC{Method: espprc.MethodLabelSetting.String(), MaxPaths: espprc.DefaultMaxPaths},
		VRPTW: VRPTW{
			Digits:        vo.Digits,
			Pricing:       vo.PricingMethod.String(),
			MaxIterations: vo.MaxIterations,
			MaxColumns:    vo.MaxColumnsPerIter,
			ExactIntegral: vo.ExactIntegral,
			Workers:       vo.Workers,
		},
	}
}

// Load builds the configuration from path (optional) and envFile (optional;
// a missing file is not an error).
func Load(path, envFile string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("%w: %v", ErrConfig, err)
		}
		defer f.Close()
		if err = cfg.decode(f); err != nil {
			return cfg, err
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s: %v", ErrConfig, envFile, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}

	return nil
}

// applyEnv overrides fields from LVROUTE_* variables found by lookup.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"LOG_LEVEL":     &c.Log.Level,
		"LOG_FORMAT":    &c.Log.Format,
		"METRICS_ADDR":  &c.MetricsAddr,
		"METHOD":        &c.ESPPRC.Method,
		"VRPTW_PRICING": &c.VRPTW.Pricing,
	}
	ints := map[string]*int{
		"MAX_PATHS":            &c.ESPPRC.MaxPaths,
		"MAX_LABELS":           &c.ESPPRC.MaxLabels,
		"NG_SIZE":              &c.ESPPRC.NGSize,
		"VRPTW_DIGITS":         &c.VRPTW.Digits,
		"VRPTW_MAX_ITERATIONS": &c.VRPTW.MaxIterations,
		"VRPTW_MAX_COLUMNS":    &c.VRPTW.MaxColumns,
		"VRPTW_WORKERS":        &c.VRPTW.Workers,
	}
	durs := map[string]*time.Duration{
		"TIME_LIMIT":               &c.ESPPRC.TimeLimit,
		"VRPTW_PRICING_TIME_LIMIT": &c.VRPTW.PricingTimeLimit,
	}

	for k, dst := range strs {
		if v, ok := lookup(EnvPrefix + k); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	for k, dst := range ints {
		if v, ok := lookup(EnvPrefix + k); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%w: %s%s=%q: %v", ErrConfig, EnvPrefix, k, v, err)
			}
			*dst = n
		}
	}
	for k, dst := range durs {
		if v, ok := lookup(EnvPrefix + k); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%w: %s%s=%q: %v", ErrConfig, EnvPrefix, k, v, err)
			}
			*dst = d
		}
	}
	if v, ok := lookup(EnvPrefix + "VRPTW_SMOOTHING"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%w: %sVRPTW_SMOOTHING=%q: %v", ErrConfig, EnvPrefix, v, err)
		}
		c.VRPTW.Smoothing = f
	}
	if v, ok := lookup(EnvPrefix + "VRPTW_EXACT_INTEGRAL"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %sVRPTW_EXACT_INTEGRAL=%q: %v", ErrConfig, EnvPrefix, v, err)
		}
		c.VRPTW.ExactIntegral = b
	}

	return nil
}

// Logger builds a logrus logger writing to w.
func (c Config) Logger(w io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	switch strings.ToLower(c.Log.Format) {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("%w: log format %q", ErrConfig, c.Log.Format)
	}

	return l, nil
}

// SolverOptions returns the espprc method and options.
func (c Config) SolverOptions(l logrus.FieldLogger) (espprc.Method, []espprc.Option, error) {
	m, err := espprc.ParseMethod(c.ESPPRC.Method)
	if err != nil {
		return 0, nil, err
	}
	opts := []espprc.Option{
		espprc.WithMaxPaths(c.ESPPRC.MaxPaths),
		espprc.WithMaxLabels(c.ESPPRC.MaxLabels),
		espprc.WithTimeLimit(c.ESPPRC.TimeLimit),
		espprc.WithLogger(l),
	}
	if c.ESPPRC.NGSize > 0 {
		opts = append(opts, espprc.WithNGRoute(c.ESPPRC.NGSize))
	}

	return m, opts, nil
}

// RoutingOptions returns the vrptw options.
func (c Config) RoutingOptions(l logrus.FieldLogger) (vrptw.Options, error) {
	m, err := espprc.ParseMethod(c.VRPTW.Pricing)
	if err != nil {
		return vrptw.Options{}, err
	}
	o := vrptw.DefaultOptions()
	o.Digits = c.VRPTW.Digits
	o.PricingMethod = m
	o.MaxIterations = c.VRPTW.MaxIterations
	o.MaxColumnsPerIter = c.VRPTW.MaxColumns
	o.Smoothing = c.VRPTW.Smoothing
	o.ExactIntegral = c.VRPTW.ExactIntegral
	o.PricingTimeLimit = c.VRPTW.PricingTimeLimit
	o.Workers = c.VRPTW.Workers
	o.Logger = l

	return o, o.Validate()
}
