package model

import (
	"bytes"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"vcrc/failure"
)

// Case is the content of a case file: cycles to compute and sweeps to run.
type Case struct {
	Cycles []CycleRequest `json:"cycles" yaml:"cycles"`
	Sweeps []Sweep        `json:"sweeps,omitempty" yaml:"sweeps,omitempty"`
}

// Sweep varies one parameter of Base from From to To by Step.
type Sweep struct {
	Name      string       `json:"name,omitempty" yaml:"name,omitempty"`
	Base      CycleRequest `json:"base" yaml:"base"`
	Parameter string       `json:"parameter" yaml:"parameter"`
	From      float64      `json:"from" yaml:"from"`
	To        float64      `json:"to" yaml:"to"`
	Step      float64      `json:"step" yaml:"step"`
}

// SweepPoint is one computed member of a sweep. A failed build keeps its
// error message and leaves Result empty.
type SweepPoint struct {
	Value  float64      `json:"value" yaml:"value"`
	Result *CycleResult `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// MaxSweepPoints caps the number of cycles a single sweep may request.
const MaxSweepPoints = 10000

// Sweep parameters.
const (
	ParamEvaporatingTemperature = "evaporator.temperature"
	ParamSuperheat              = "evaporator.superheat"
	ParamCondensingTemperature  = "condenser.temperature"
	ParamSubcooling             = "condenser.subcooling"
	ParamGasCoolerTemperature   = "gas_cooler.temperature"
	ParamGasCoolerPressure      = "gas_cooler.pressure"
	ParamCompressorEfficiency   = "compressor_efficiency"
	ParamIntermediatePressure   = "intermediate_pressure"
)

var setters = map[string]func(*CycleRequest, float64) error{
	ParamEvaporatingTemperature: func(r *CycleRequest, v float64) error { r.Evaporator.Temperature = v; return nil },
	ParamSuperheat:              func(r *CycleRequest, v float64) error { r.Evaporator.Superheat = v; return nil },
	ParamCondensingTemperature: func(r *CycleRequest, v float64) error {
		if r.Condenser == nil {
			return failure.Configf("sweep over %s needs a condenser", ParamCondensingTemperature)
		}
		c := *r.Condenser
		c.Temperature = v
		r.Condenser = &c
		return nil
	},
	ParamSubcooling: func(r *CycleRequest, v float64) error {
		if r.Condenser == nil {
			return failure.Configf("sweep over %s needs a condenser", ParamSubcooling)
		}
		c := *r.Condenser
		c.Subcooling = v
		r.Condenser = &c
		return nil
	},
	ParamGasCoolerTemperature: func(r *CycleRequest, v float64) error {
		if r.GasCooler == nil {
			return failure.Configf("sweep over %s needs a gas cooler", ParamGasCoolerTemperature)
		}
		g := *r.GasCooler
		g.Temperature = v
		r.GasCooler = &g
		return nil
	},
	ParamGasCoolerPressure: func(r *CycleRequest, v float64) error {
		if r.GasCooler == nil {
			return failure.Configf("sweep over %s needs a gas cooler", ParamGasCoolerPressure)
		}
		g := *r.GasCooler
		g.Pressure = v
		r.GasCooler = &g
		return nil
	},
	ParamCompressorEfficiency: func(r *CycleRequest, v float64) error { r.CompressorEfficiency = v; return nil },
	ParamIntermediatePressure: func(r *CycleRequest, v float64) error { r.IntermediatePressure = v; return nil },
}

// Values lists the swept values, To included.
func (s Sweep) Values() ([]float64, error) {
	if !(s.Step > 0) {
		return nil, failure.Configf("sweep step should be positive, got %g", s.Step)
	}
	if s.To < s.From {
		return nil, failure.Configf("sweep end %g is before its start %g", s.To, s.From)
	}
	n := int(math.Floor((s.To-s.From)/s.Step+1e-9)) + 1
	if n > MaxSweepPoints {
		return nil, failure.Configf("sweep has %d points, at most %d allowed", n, MaxSweepPoints)
	}
	values := make([]float64, n)
	for i := range values {
		values[i] = s.From + float64(i)*s.Step
	}
	return values, nil
}

// Requests expands the sweep into one request per value.
func (s Sweep) Requests() ([]CycleRequest, []float64, error) {
	set, ok := setters[s.Parameter]
	if !ok {
		return nil, nil, failure.Configf("unknown sweep parameter %q", s.Parameter)
	}
	values, err := s.Values()
	if err != nil {
		return nil, nil, err
	}
	requests := make([]CycleRequest, len(values))
	for i, v := range values {
		r := s.Base
		if err := set(&r, v); err != nil {
			return nil, nil, err
		}
		requests[i] = r
	}
	return requests, values, nil
}

// SweepParameters lists the parameters a sweep may vary.
func SweepParameters() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	return names
}

// ParseCase decodes a YAML case. Unknown fields are rejected.
func ParseCase(data []byte) (*Case, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var c Case
	if err := dec.Decode(&c); err != nil {
		return nil, failure.Configf("bad case file: %v", err)
	}
	if len(c.Cycles) == 0 && len(c.Sweeps) == 0 {
		return nil, failure.Configf("case file defines neither cycles nor sweeps")
	}
	return &c, nil
}

// LoadCase reads a YAML case file.
func LoadCase(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCase(data)
}
