package model

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"vcrc/failure"
)

const caseYAML = `
cycles:
  - name: split unit
    topology: simple
    refrigerant: R32
    evaporator: {temperature: 5, superheat: 8}
    condenser: {temperature: 45, subcooling: 3}
    compressor_efficiency: 80
    boundary: {indoor: 18, outdoor: 35}
sweeps:
  - name: lift
    parameter: condenser.temperature
    from: 30
    to: 50
    step: 10
    base:
      topology: simple
      refrigerant: R32
      evaporator: {temperature: 5, superheat: 8}
      condenser: {temperature: 45, subcooling: 3}
      compressor_efficiency: 80
`

func TestParseCase(t *testing.T) {
	c, err := ParseCase([]byte(caseYAML))
	if err != nil {
		t.Fatal(err)
	}
	want := CycleRequest{
		Name:                 "split unit",
		Topology:             "simple",
		Refrigerant:          "R32",
		Evaporator:           Evaporator{Temperature: 5, Superheat: 8},
		Condenser:            &Condenser{Temperature: 45, Subcooling: 3},
		CompressorEfficiency: 80,
		Boundary:             &Boundary{Indoor: 18, Outdoor: 35},
	}
	if diff := cmp.Diff([]CycleRequest{want}, c.Cycles); diff != "" {
		t.Errorf("cycles (-want +got):\n%s", diff)
	}
	if len(c.Sweeps) != 1 || c.Sweeps[0].Base.Condenser == nil {
		t.Fatalf("sweeps %+v", c.Sweeps)
	}
}

func TestParseCaseErrors(t *testing.T) {
	for _, data := range []string{
		"",
		"cycles: []\n",
		"cycles:\n  - topology: simple\n    colour: red\n",
		"cycles: {",
	} {
		if _, err := ParseCase([]byte(data)); !errors.Is(err, failure.ErrConfig) {
			t.Errorf("%q: expected ErrConfig, got %v", data, err)
		}
	}
}

func TestLoadCase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.yaml")
	if err := os.WriteFile(path, []byte(caseYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCase(path); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCase(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestSweepRequests(t *testing.T) {
	c, err := ParseCase([]byte(caseYAML))
	if err != nil {
		t.Fatal(err)
	}
	s := c.Sweeps[0]
	requests, values, err := s.Requests()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{30, 40, 50}, values); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
	for i, r := range requests {
		if r.Condenser.Temperature != values[i] {
			t.Errorf("request %d condenses at %g", i, r.Condenser.Temperature)
		}
	}
	if s.Base.Condenser.Temperature != 45 {
		t.Errorf("sweep modified its base request: %g", s.Base.Condenser.Temperature)
	}
}

func TestSweepErrors(t *testing.T) {
	base := CycleRequest{Topology: "simple", Refrigerant: "R32", Condenser: &Condenser{Temperature: 45}}
	for name, s := range map[string]Sweep{
		"zero step":     {Base: base, Parameter: ParamSuperheat, From: 0, To: 5},
		"reversed":      {Base: base, Parameter: ParamSuperheat, From: 5, To: 0, Step: 1},
		"too many":      {Base: base, Parameter: ParamSuperheat, From: 0, To: 1, Step: 1e-5},
		"unknown":       {Base: base, Parameter: "condenser.colour", From: 0, To: 1, Step: 1},
		"no gas cooler": {Base: base, Parameter: ParamGasCoolerPressure, From: 8000, To: 9000, Step: 500},
	} {
		if _, _, err := s.Requests(); !errors.Is(err, failure.ErrConfig) {
			t.Errorf("%s: expected ErrConfig, got %v", name, err)
		}
	}
}

func TestSweepParameters(t *testing.T) {
	got := SweepParameters()
	sort.Strings(got)
	want := []string{
		ParamCompressorEfficiency, ParamCondensingTemperature, ParamSubcooling,
		ParamEvaporatingTemperature, ParamSuperheat, ParamGasCoolerPressure,
		ParamGasCoolerTemperature, ParamIntermediatePressure,
	}
	sort.Strings(want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parameters (-want +got):\n%s", diff)
	}
}
