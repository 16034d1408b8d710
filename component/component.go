// Package component holds the validated configurations of the cycle
// components. Constructors fail on the first violated bound; every other
// member is a pure accessor.
package component

import (
	"vcrc/failure"
	"vcrc/fluid"
)

// MaxTemperatureOffset bounds superheat, subcooling and pinch temperature differences, K.
const MaxTemperatureOffset = 50.0

// closed interval check
func within(name string, v, lo, hi float64, unit string) error {
	if v < lo || v > hi {
		return failure.Configf("%s should be in [%g, %g] %s, got %g", name, lo, hi, unit, v)
	}
	return nil
}

// open interval check
func between(name string, v, lo, hi float64, unit string) error {
	if !(v > lo && v < hi) {
		return failure.Configf("%s should be in (%g, %g) %s, got %g", name, lo, hi, unit, v)
	}
	return nil
}

func saturationTemperature(name string, f *fluid.Fluid, t float64) error {
	if f == nil {
		return failure.Configf("%s needs a refrigerant", name)
	}
	return between(name+" temperature", t, f.TripleTemperature(), f.CriticalTemperature(), "K")
}

// HeatReleaser is a condenser or a gas cooler.
type HeatReleaser interface {
	Fluid() *fluid.Fluid
	// Temperature is the condensing temperature or the gas cooler outlet temperature, K.
	Temperature() float64
	Pressure() float64
	Outlet() fluid.Point
	// Transcritical reports a gas cooler.
	Transcritical() bool
}
