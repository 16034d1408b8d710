package component

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"vcrc/failure"
	"vcrc/fluid"
	"vcrc/solver"
)

func newFluid(t *testing.T, name fluid.Refrigerant) *fluid.Fluid {
	t.Helper()
	f, err := fluid.New(name, fluid.NewCorrelationOracle())
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestEvaporator(t *testing.T) {
	r32 := newFluid(t, "R32")
	e, err := NewEvaporator(r32, fluid.FromCelsius(5), 5)
	if err != nil {
		t.Fatal(err)
	}
	dew, _ := r32.DewPointAt(fluid.Temperature(fluid.FromCelsius(5)))
	if e.Pressure() != dew.Pressure() {
		t.Errorf("pressure %g, expected %g", e.Pressure(), dew.Pressure())
	}
	if got := e.Outlet().Temperature(); math.Abs(got-fluid.FromCelsius(10)) > 1e-9 {
		t.Errorf("outlet temperature %g", got)
	}
	if e.Outlet().Phase() != fluid.Gas {
		t.Errorf("outlet phase %v", e.Outlet().Phase())
	}

	saturated, err := NewEvaporator(r32, fluid.FromCelsius(5), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !saturated.Outlet().Equal(dew, 1e-12) {
		t.Errorf("outlet %v should be the dew point %v", saturated.Outlet(), dew)
	}
}

func TestEvaporatorBounds(t *testing.T) {
	r32 := newFluid(t, "R32")
	cases := []struct {
		name        string
		temperature float64
		superheat   float64
	}{
		{"below triple", r32.TripleTemperature() - 1, 5},
		{"at triple", r32.TripleTemperature(), 5},
		{"at critical", r32.CriticalTemperature(), 5},
		{"negative superheat", fluid.FromCelsius(0), -0.1},
		{"superheat too large", fluid.FromCelsius(0), 50.1},
	}
	for _, c := range cases {
		if _, err := NewEvaporator(r32, c.temperature, c.superheat); !errors.Is(err, failure.ErrConfig) {
			t.Errorf("%s: expected ErrConfig, got %v", c.name, err)
		}
	}
	if _, err := NewEvaporator(nil, fluid.FromCelsius(0), 5); !errors.Is(err, failure.ErrConfig) {
		t.Errorf("nil fluid: expected ErrConfig, got %v", err)
	}
	if _, err := NewEvaporator(r32, fluid.FromCelsius(0), 50); err != nil {
		t.Errorf("superheat of 50 K should be accepted: %v", err)
	}
}

func TestCondenser(t *testing.T) {
	r32 := newFluid(t, "R32")
	c, err := NewCondenser(r32, fluid.FromCelsius(45), 5)
	if err != nil {
		t.Fatal(err)
	}
	bubble, _ := r32.BubblePointAt(fluid.Temperature(fluid.FromCelsius(45)))
	if c.Pressure() != bubble.Pressure() {
		t.Errorf("pressure %g, expected %g", c.Pressure(), bubble.Pressure())
	}
	if got := c.Outlet().Temperature(); math.Abs(got-fluid.FromCelsius(40)) > 1e-9 {
		t.Errorf("outlet temperature %g", got)
	}
	if c.Outlet().Phase() != fluid.Liquid || c.Transcritical() {
		t.Errorf("outlet phase %v", c.Outlet().Phase())
	}

	saturated, err := NewCondenser(r32, fluid.FromCelsius(45), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !saturated.Outlet().Equal(bubble, 1e-12) {
		t.Errorf("outlet %v should be the bubble point %v", saturated.Outlet(), bubble)
	}

	for _, sub := range []float64{-1, 50.5} {
		if _, err := NewCondenser(r32, fluid.FromCelsius(45), sub); !errors.Is(err, failure.ErrConfig) {
			t.Errorf("subcooling %g: expected ErrConfig, got %v", sub, err)
		}
	}
	if _, err := NewCondenser(r32, r32.CriticalTemperature()+1, 5); !errors.Is(err, failure.ErrConfig) {
		t.Errorf("supercritical condensing temperature: expected ErrConfig, got %v", err)
	}
}

func TestGasCooler(t *testing.T) {
	co2 := newFluid(t, "R744")
	g, err := NewGasCooler(co2, fluid.FromCelsius(35), 9e6)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Transcritical() || g.Outlet().Phase() != fluid.Supercritical {
		t.Errorf("outlet %v", g.Outlet())
	}
	if _, err := NewGasCooler(co2, fluid.FromCelsius(25), 9e6); !errors.Is(err, failure.ErrConfig) {
		t.Errorf("subcritical temperature: expected ErrConfig, got %v", err)
	}
	if _, err := NewGasCooler(co2, fluid.FromCelsius(35), 7e6); !errors.Is(err, failure.ErrConfig) {
		t.Errorf("subcritical pressure: expected ErrConfig, got %v", err)
	}

	opt, err := NewGasCoolerOptimal(co2, fluid.FromCelsius(35))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(opt.Pressure()-(2.759*35-9.912)*1e5) > 1e-6 {
		t.Errorf("optimal pressure %g", opt.Pressure())
	}
	if _, err := NewGasCoolerOptimal(newFluid(t, "R32"), fluid.FromCelsius(80)); !errors.Is(err, failure.ErrConfig) {
		t.Errorf("R32: expected ErrConfig, got %v", err)
	}
}

func TestEfficiencyBounds(t *testing.T) {
	for _, eta := range []float64{0, 1, -0.5, 1.2, math.NaN()} {
		if _, err := NewCompressor(eta); !errors.Is(err, failure.ErrConfig) {
			t.Errorf("compressor %g: expected ErrConfig, got %v", eta, err)
		}
		if _, err := NewEjector(eta, 0.9, 0.8); !errors.Is(err, failure.ErrConfig) {
			t.Errorf("ejector nozzle %g: expected ErrConfig, got %v", eta, err)
		}
		if _, err := NewEjector(0.9, 0.9, eta); !errors.Is(err, failure.ErrConfig) {
			t.Errorf("ejector diffuser %g: expected ErrConfig, got %v", eta, err)
		}
	}
	c, err := NewCompressor(0.8)
	if err != nil {
		t.Fatal(err)
	}
	if c.Efficiency() != 0.8 {
		t.Errorf("efficiency %g", c.Efficiency())
	}
}

func TestCompress(t *testing.T) {
	r32 := newFluid(t, "R32")
	e, _ := NewEvaporator(r32, fluid.FromCelsius(5), 5)
	c, _ := NewCompressor(0.8)
	actual, isentropic, err := c.Compress(e.Outlet(), 2.8e6)
	if err != nil {
		t.Fatal(err)
	}
	rise := isentropic.Enthalpy() - e.Outlet().Enthalpy()
	if got := actual.Enthalpy() - e.Outlet().Enthalpy(); math.Abs(got-rise/0.8) > 1e-6 {
		t.Errorf("real work %g, expected %g", got, rise/0.8)
	}
	if _, _, err := c.Compress(e.Outlet(), e.Pressure()/2); !errors.Is(err, failure.ErrInfeasible) {
		t.Errorf("expected ErrInfeasible, got %v", err)
	}
}

func TestTemperatureDifferences(t *testing.T) {
	for _, dt := range []float64{0, 50, -3, 60} {
		if _, err := NewRecuperator(dt); !errors.Is(err, failure.ErrConfig) {
			t.Errorf("recuperator %g: expected ErrConfig, got %v", dt, err)
		}
		if _, err := NewEconomizer(dt, 5); !errors.Is(err, failure.ErrConfig) {
			t.Errorf("economizer %g: expected ErrConfig, got %v", dt, err)
		}
		if _, err := NewEconomizerTPI(dt); !errors.Is(err, failure.ErrConfig) {
			t.Errorf("economizer TPI %g: expected ErrConfig, got %v", dt, err)
		}
	}
	if _, err := NewEconomizer(5, -1); !errors.Is(err, failure.ErrConfig) {
		t.Errorf("negative economizer superheat: expected ErrConfig, got %v", err)
	}

	r, _ := NewRecuperator(10)
	e, _ := NewEconomizer(5, 0)
	tpi, _ := NewEconomizerTPI(3)
	got := []float64{r.TemperatureDifference(), e.TemperatureDifference(), e.Superheat(), tpi.TemperatureDifference()}
	if diff := cmp.Diff([]float64{10, 5, 0, 3}, got); diff != "" {
		t.Errorf("accessors mismatch (-want +got):\n%s", diff)
	}
}

func TestIntermediateVessel(t *testing.T) {
	if _, err := NewIntermediateVessel(0); !errors.Is(err, failure.ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}
	v, err := NewIntermediateVessel(1.5e6)
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Check(0.9e6, 2.8e6); err != nil {
		t.Error(err)
	}
	for _, bounds := range [][2]float64{{1.5e6, 2.8e6}, {0.9e6, 1.5e6}, {2e6, 2.8e6}} {
		if err := v.Check(bounds[0], bounds[1]); !errors.Is(err, failure.ErrConfig) {
			t.Errorf("%v: expected ErrConfig, got %v", bounds, err)
		}
	}
}

func ejectorInlets(t *testing.T) (nozzle, suction fluid.Point) {
	t.Helper()
	r32 := newFluid(t, "R32")
	e, err := NewEvaporator(r32, fluid.FromCelsius(-5), 5)
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewCondenser(r32, fluid.FromCelsius(45), 5)
	if err != nil {
		t.Fatal(err)
	}
	return c.Outlet(), e.Outlet()
}

func TestEjectorCalculateFlows(t *testing.T) {
	nozzle, suction := ejectorInlets(t)
	ej, err := NewEjector(0.9, 0.9, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	flows, err := ej.CalculateFlows(nozzle, suction, solver.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	xi := flows.NozzleFraction
	if !(xi > 0 && xi < 1) {
		t.Fatalf("nozzle fraction %g", xi)
	}
	mixing := MixingPressureRatio * suction.Pressure()
	for name, p := range map[string]fluid.Point{
		"nozzle outlet":  flows.NozzleOutlet,
		"suction outlet": flows.SuctionOutlet,
		"mixing inlet":   flows.MixingInlet,
	} {
		if math.Abs(p.Pressure()-mixing) > 1e-6*mixing {
			t.Errorf("%s pressure %g, expected %g", name, p.Pressure(), mixing)
		}
	}
	out := flows.DiffuserOutlet
	if out.Pressure() <= suction.Pressure() || out.Pressure() >= nozzle.Pressure() {
		t.Errorf("diffuser pressure %g outside (%g, %g)", out.Pressure(), suction.Pressure(), nozzle.Pressure())
	}
	stagnation := xi*nozzle.Enthalpy() + (1-xi)*suction.Enthalpy()
	if math.Abs(out.Enthalpy()-stagnation) > 1e-6 {
		t.Errorf("diffuser enthalpy %g, expected %g", out.Enthalpy(), stagnation)
	}
	x, ok := out.Quality()
	if !ok {
		t.Fatalf("diffuser outlet should be two-phase, got %v", out.Phase())
	}
	if math.Abs(x-xi) > 1e-6 {
		t.Errorf("diffuser quality %g should match the nozzle fraction %g", x, xi)
	}
	if !(flows.EntrainmentRatio() > 0) {
		t.Errorf("entrainment ratio %g", flows.EntrainmentRatio())
	}
}

func TestEjectorTranscriticalNozzle(t *testing.T) {
	co2 := newFluid(t, "R744")
	e, err := NewEvaporator(co2, fluid.FromCelsius(-5), 5)
	if err != nil {
		t.Fatal(err)
	}
	ej, _ := NewEjector(0.9, 0.9, 0.8)
	for _, tc := range []float64{32, 35, 40} {
		g, err := NewGasCooler(co2, fluid.FromCelsius(tc), 9e6)
		if err != nil {
			t.Fatal(err)
		}
		flows, err := ej.CalculateFlows(g.Outlet(), e.Outlet(), solver.DefaultOptions())
		if err != nil {
			t.Fatalf("%g °C: %v", tc, err)
		}
		out := flows.DiffuserOutlet
		if out.Pressure() <= e.Pressure() || out.Pressure() >= co2.CriticalPressure() {
			t.Errorf("%g °C: diffuser pressure %g outside (%g, %g)", tc, out.Pressure(), e.Pressure(), co2.CriticalPressure())
		}
		x, ok := out.Quality()
		if !ok || math.Abs(x-flows.NozzleFraction) > 1e-6 {
			t.Errorf("%g °C: diffuser quality %g should match the nozzle fraction %g", tc, x, flows.NozzleFraction)
		}
	}
}

func TestEjectorInvalidInlets(t *testing.T) {
	nozzle, suction := ejectorInlets(t)
	ej, _ := NewEjector(0.9, 0.9, 0.8)
	if _, err := ej.CalculateFlows(suction, nozzle, solver.DefaultOptions()); !errors.Is(err, failure.ErrConfig) {
		t.Errorf("swapped inlets: expected ErrConfig, got %v", err)
	}
	co2 := newFluid(t, "R744")
	other, _ := NewEvaporator(co2, fluid.FromCelsius(-5), 5)
	if _, err := ej.CalculateFlows(nozzle, other.Outlet(), solver.DefaultOptions()); !errors.Is(err, failure.ErrConfig) {
		t.Errorf("mixed refrigerants: expected ErrConfig, got %v", err)
	}
}

func TestHeatReleaser(t *testing.T) {
	r32 := newFluid(t, "R32")
	co2 := newFluid(t, "R744")
	c, _ := NewCondenser(r32, fluid.FromCelsius(45), 5)
	g, _ := NewGasCooler(co2, fluid.FromCelsius(35), 9e6)
	releasers := []HeatReleaser{c, g}
	got := make([]bool, 0, len(releasers))
	for _, r := range releasers {
		got = append(got, r.Transcritical())
	}
	if diff := cmp.Diff([]bool{false, true}, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("transcritical mismatch (-want +got):\n%s", diff)
	}
}
