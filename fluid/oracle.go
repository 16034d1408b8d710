package fluid

import (
	"fmt"
	"math"
)

// Parameter names an independent state variable.
type Parameter int

const (
	ParamPressure    Parameter = iota // Pa
	ParamTemperature                  // K
	ParamEnthalpy                     // J/kg
	ParamEntropy                      // J/(kg·K)
	ParamQuality                      // vapor mass fraction, [0, 1]
)

func (p Parameter) String() string {
	switch p {
	case ParamPressure:
		return "pressure"
	case ParamTemperature:
		return "temperature"
	case ParamEnthalpy:
		return "enthalpy"
	case ParamEntropy:
		return "entropy"
	case ParamQuality:
		return "quality"
	}
	return fmt.Sprintf("Parameter(%d)", int(p))
}

// Input is one of the two independent variables fixing a state.
type Input struct {
	Param Parameter
	Value float64
}

func Pressure(v float64) Input    { return Input{ParamPressure, v} }
func Temperature(v float64) Input { return Input{ParamTemperature, v} }
func Enthalpy(v float64) Input    { return Input{ParamEnthalpy, v} }
func Entropy(v float64) Input     { return Input{ParamEntropy, v} }
func Quality(v float64) Input     { return Input{ParamQuality, v} }

func (in Input) String() string { return fmt.Sprintf("%v=%g", in.Param, in.Value) }

// Props is a fully determined thermodynamic state.
type Props struct {
	Pressure    float64
	Temperature float64
	Enthalpy    float64
	Entropy     float64
	Quality     float64 // NaN outside the two-phase region
	Phase       Phase
}

func (p Props) finite() bool {
	for _, v := range []float64{p.Pressure, p.Temperature, p.Enthalpy, p.Entropy} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Oracle resolves thermodynamic properties. Implementations must be safe for
// concurrent read-only use.
type Oracle interface {
	// State resolves a state from two independent inputs.
	State(r Refrigerant, a, b Input) (Props, error)
	CriticalPoint(r Refrigerant) (Props, error)
	TriplePoint(r Refrigerant) (Props, error)
	// Glide is the temperature glide at atmospheric pressure, K.
	Glide(r Refrigerant) (float64, error)
}
