// SPDX-License-Identifier: MIT

package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrFormat reports malformed instance files.
var ErrFormat = errors.New("model: malformed instance file")

// Float is a YAML scalar that also accepts "inf", "+inf" and "infinity"
// (any case) besides the YAML ".inf" spelling.
type Float float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *Float) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected a number", ErrFormat, value.Line)
	}
	s := strings.ToLower(strings.TrimSpace(value.Value))
	switch strings.TrimPrefix(strings.TrimPrefix(s, "+"), ".") {
	case "inf", "infinity":
		*f = Float(math.Inf(1))
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%w: line %d: %q is not a number", ErrFormat, value.Line, value.Value)
	}
	*f = Float(v)

	return nil
}

// problemFile is the YAML layout of an ESPPRC instance. Either Load or
// LoadOnNode must be present; LoadOnNode broadcasts demand(j) to load(i,j).
type problemFile struct {
	Origin      int       `yaml:"origin"`
	Destination int       `yaml:"destination"`
	Capacity    Float     `yaml:"capacity"`
	Cost        [][]Float `yaml:"cost"`
	Time        [][]Float `yaml:"time"`
	Load        [][]Float `yaml:"load"`
	LoadOnNode  []Float   `yaml:"load_on_node"`
	Early       []Float   `yaml:"early"`
	Late        []Float   `yaml:"late"`
	Service     []Float   `yaml:"service"`
}

// ReadProblemYAML decodes and validates an ESPPRC instance.
func ReadProblemYAML(r io.Reader) (*Problem, error) {
	spec, err := DecodeProblemSpecYAML(r)
	if err != nil {
		return nil, err
	}

	return NewProblem(spec)
}

// DecodeProblemSpecYAML decodes an ESPPRC instance without validating it, so
// callers can remap indices first. A missing service list means zero service
// everywhere.
func DecodeProblemSpecYAML(r io.Reader) (ProblemSpec, error) {
	var f problemFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return ProblemSpec{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	n := len(f.Time)
	spec := ProblemSpec{
		Cost:        floatRows(f.Cost),
		Time:        floatRows(f.Time),
		Early:       floats(f.Early),
		Late:        floats(f.Late),
		Service:     floats(f.Service),
		Capacity:    float64(f.Capacity),
		Origin:      f.Origin,
		Destination: f.Destination,
	}
	if spec.Service == nil {
		spec.Service = make([]float64, n)
	}
	switch {
	case f.Load != nil:
		spec.Load = floatRows(f.Load)
	case f.LoadOnNode != nil:
		row := floats(f.LoadOnNode)
		spec.Load = make([][]float64, len(row))
		for i := range spec.Load {
			spec.Load[i] = append([]float64(nil), row...)
		}
	default:
		return ProblemSpec{}, fmt.Errorf("%w: neither load nor load_on_node given", ErrFormat)
	}

	return spec, nil
}

// ReadSolomonYAML decodes and validates a VRPTW instance.
func ReadSolomonYAML(r io.Reader) (*Solomon, error) {
	var s Solomon
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// ReadSolomonText parses the classic Solomon benchmark layout:
//
//	NAME
//	VEHICLE
//	NUMBER  CAPACITY
//	  25      200
//	CUSTOMER
//	CUST NO. XCOORD. YCOORD. DEMAND READY TIME DUE DATE SERVICE TIME
//	  0   40  50   0    0  1236   0
//	  1   45  68  10  912   967  90
//
// The first customer row is the depot; its due date becomes the fleet's
// MaxTravelTime. Every other row becomes a request.
func ReadSolomonText(r io.Reader) (*Solomon, error) {
	const (
		stName = iota
		stVehicleHeader
		stVehicleRow
		stCustomerHeader
		stCustomers
	)

	var (
		s     Solomon
		state = stName
		line  int
		sc    = bufio.NewScanner(r)
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		upper := strings.ToUpper(text)
		switch state {
		case stName:
			s.Name = text
			state = stVehicleHeader
		case stVehicleHeader:
			if strings.HasPrefix(upper, "NUMBER") {
				state = stVehicleRow
			}
		case stVehicleRow:
			v, err := numbers(text, 2, line)
			if err != nil {
				return nil, err
			}
			s.Fleet.Vehicles, s.Fleet.Capacity = int(v[0]), v[1]
			state = stCustomerHeader
		case stCustomerHeader:
			if strings.HasPrefix(upper, "CUST") && strings.Contains(upper, "NO") {
				state = stCustomers
			}
		case stCustomers:
			v, err := numbers(text, 7, line)
			if err != nil {
				return nil, err
			}
			id := int(v[0])
			s.Nodes = append(s.Nodes, Node{ID: id, X: v[1], Y: v[2]})
			if len(s.Nodes) == 1 {
				s.Depot = id
				s.Fleet.MaxTravelTime = v[5]
				continue
			}
			s.Requests = append(s.Requests, Request{ID: id, Demand: v[3], Early: v[4], Late: v[5], Service: v[6]})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if state != stCustomers {
		return nil, fmt.Errorf("%w: truncated after line %d", ErrFormat, line)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

func numbers(text string, want, line int) ([]float64, error) {
	fields := strings.Fields(text)
	if len(fields) < want {
		return nil, fmt.Errorf("%w: line %d: %d fields, want %d", ErrFormat, line, len(fields), want)
	}
	out := make([]float64, want)
	for k := 0; k < want; k++ {
		v, err := strconv.ParseFloat(fields[k], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q is not a number", ErrFormat, line, fields[k])
		}
		out[k] = v
	}

	return out, nil
}

func floats(in []Float) []float64 {
	if in == nil {
		return nil
	}
	out := make([]float64, len(in))
	for k, v := range in {
		out[k] = float64(v)
	}

	return out
}

func floatRows(in [][]Float) [][]float64 {
	if in == nil {
		return nil
	}
	out := make([][]float64, len(in))
	for k, row := range in {
		out[k] = floats(row)
	}

	return out
}
