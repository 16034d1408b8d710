package component

import (
	"vcrc/failure"
	"vcrc/fluid"
)

// GasCooler is the heat releaser of a transcritical cycle.
type GasCooler struct {
	fluid       *fluid.Fluid
	temperature float64
	pressure    float64
	outlet      fluid.Point
}

// NewGasCooler takes the outlet temperature (K) and pressure (Pa); both must
// exceed the critical point.
func NewGasCooler(f *fluid.Fluid, temperature, pressure float64) (*GasCooler, error) {
	if f == nil {
		return nil, failure.Configf("gas cooler needs a refrigerant")
	}
	if temperature <= f.CriticalTemperature() {
		return nil, failure.Configf("gas cooler outlet temperature should be greater than the critical temperature (%g K), got %g K",
			f.CriticalTemperature(), temperature)
	}
	if pressure <= f.CriticalPressure() {
		return nil, failure.Configf("gas cooler pressure should be greater than the critical pressure (%g Pa), got %g Pa",
			f.CriticalPressure(), pressure)
	}
	outlet, err := f.WithState(fluid.Pressure(pressure), fluid.Temperature(temperature))
	if err != nil {
		return nil, err
	}
	if outlet.Phase() != fluid.Supercritical {
		return nil, failure.Infeasiblef("gas cooler outlet should be supercritical, got %v", outlet.Phase())
	}
	return &GasCooler{fluid: f, temperature: temperature, pressure: pressure, outlet: outlet}, nil
}

// NewGasCoolerOptimal uses the optimal high pressure correlation for R744
// (p = 2.759·t - 9.912, bar and °C).
func NewGasCoolerOptimal(f *fluid.Fluid, temperature float64) (*GasCooler, error) {
	if f == nil || f.Name() != "R744" {
		return nil, failure.Configf("optimal gas cooler pressure is only defined for R744")
	}
	pressure := (2.759*fluid.ToCelsius(temperature) - 9.912) * 1e5
	return NewGasCooler(f, temperature, pressure)
}

func (g *GasCooler) Fluid() *fluid.Fluid  { return g.fluid }
func (g *GasCooler) Temperature() float64 { return g.temperature }
func (g *GasCooler) Pressure() float64    { return g.pressure }
func (g *GasCooler) Outlet() fluid.Point  { return g.outlet }
func (g *GasCooler) Transcritical() bool  { return true }
