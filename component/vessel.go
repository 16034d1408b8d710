package component

import (
	"vcrc/failure"
)

// IntermediateVessel pins the intermediate pressure of a two-stage cycle.
type IntermediateVessel struct {
	pressure float64
}

func NewIntermediateVessel(pressure float64) (*IntermediateVessel, error) {
	if !(pressure > 0) {
		return nil, failure.Configf("intermediate pressure should be positive, got %g Pa", pressure)
	}
	return &IntermediateVessel{pressure: pressure}, nil
}

func (v *IntermediateVessel) Pressure() float64 { return v.pressure }

// Check fails unless the vessel pressure lies strictly between the cycle pressures.
func (v *IntermediateVessel) Check(low, high float64) error {
	if !(v.pressure > low && v.pressure < high) {
		return failure.Configf("intermediate pressure should be in (%g, %g) Pa, got %g Pa", low, high, v.pressure)
	}
	return nil
}
