package fluid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"vcrc/failure"
)

// Point is an immutable thermodynamic state of a fluid. Every transition
// returns a new Point resolved by the oracle.
type Point struct {
	fluid *Fluid
	props Props
}

func (p Point) Fluid() *Fluid { return p.fluid }
func (p Point) Props() Props  { return p.props }

// Pressure, Pa.
func (p Point) Pressure() float64 { return p.props.Pressure }

// Temperature, K.
func (p Point) Temperature() float64 { return p.props.Temperature }

// Enthalpy, J/kg.
func (p Point) Enthalpy() float64 { return p.props.Enthalpy }

// Entropy, J/(kg·K).
func (p Point) Entropy() float64 { return p.props.Entropy }

func (p Point) Phase() Phase { return p.props.Phase }

// Quality is reported only inside the two-phase region.
func (p Point) Quality() (float64, bool) {
	if p.props.Phase != TwoPhase || math.IsNaN(p.props.Quality) {
		return 0, false
	}
	return p.props.Quality, true
}

// IsZero reports whether p was never resolved.
func (p Point) IsZero() bool { return p.fluid == nil }

// Equal compares two points property-wise within a relative tolerance.
func (p Point) Equal(o Point, tol float64) bool {
	if p.IsZero() || o.IsZero() {
		return p.IsZero() && o.IsZero()
	}
	if !p.fluid.SameAs(o.fluid) || p.props.Phase != o.props.Phase {
		return false
	}
	a := []float64{p.props.Pressure, p.props.Temperature, p.props.Enthalpy, p.props.Entropy}
	b := []float64{o.props.Pressure, o.props.Temperature, o.props.Enthalpy, o.props.Entropy}
	for i := range a {
		if !scalar.EqualWithinAbsOrRel(a[i], b[i], tol, tol) {
			return false
		}
	}
	qa, okA := p.Quality()
	qb, okB := o.Quality()
	return okA == okB && scalar.EqualWithinAbsOrRel(qa, qb, tol, tol)
}

func (p Point) String() string {
	if p.IsZero() {
		return "<unresolved>"
	}
	s := fmt.Sprintf("%s P=%.6g Pa T=%.6g K h=%.6g J/kg s=%.6g J/(kg·K) %v",
		p.fluid.name, p.props.Pressure, p.props.Temperature, p.props.Enthalpy, p.props.Entropy, p.props.Phase)
	if q, ok := p.Quality(); ok {
		s += fmt.Sprintf(" x=%.6g", q)
	}
	return s
}

// IsentropicCompressionTo keeps the entropy and raises the pressure.
func (p Point) IsentropicCompressionTo(pressure float64) (Point, error) {
	if pressure <= p.props.Pressure {
		return Point{}, failure.Infeasiblef("compression should increase the pressure (%g -> %g Pa)", p.props.Pressure, pressure)
	}
	return p.fluid.WithState(Pressure(pressure), Entropy(p.props.Entropy))
}

// CompressionTo is a real compression with the given isentropic efficiency.
func (p Point) CompressionTo(pressure, efficiency float64) (Point, error) {
	if err := checkEfficiency(efficiency); err != nil {
		return Point{}, err
	}
	isentropic, err := p.IsentropicCompressionTo(pressure)
	if err != nil {
		return Point{}, err
	}
	h := p.props.Enthalpy + (isentropic.Enthalpy()-p.props.Enthalpy)/efficiency
	return p.fluid.WithState(Pressure(pressure), Enthalpy(h))
}

// IsentropicExpansionTo keeps the entropy and lowers the pressure.
func (p Point) IsentropicExpansionTo(pressure float64) (Point, error) {
	if pressure >= p.props.Pressure {
		return Point{}, failure.Infeasiblef("expansion should decrease the pressure (%g -> %g Pa)", p.props.Pressure, pressure)
	}
	return p.fluid.WithState(Pressure(pressure), Entropy(p.props.Entropy))
}

// IsenthalpicExpansionTo models a throttling device.
func (p Point) IsenthalpicExpansionTo(pressure float64) (Point, error) {
	if pressure >= p.props.Pressure {
		return Point{}, failure.Infeasiblef("expansion should decrease the pressure (%g -> %g Pa)", p.props.Pressure, pressure)
	}
	return p.fluid.WithState(Pressure(pressure), Enthalpy(p.props.Enthalpy))
}

// ExpansionTo is an expansion recovering the given fraction of the isentropic
// enthalpy drop.
func (p Point) ExpansionTo(pressure, efficiency float64) (Point, error) {
	if err := checkEfficiency(efficiency); err != nil {
		return Point{}, err
	}
	isentropic, err := p.IsentropicExpansionTo(pressure)
	if err != nil {
		return Point{}, err
	}
	h := p.props.Enthalpy - efficiency*(p.props.Enthalpy-isentropic.Enthalpy())
	return p.fluid.WithState(Pressure(pressure), Enthalpy(h))
}

// HeatingTo raises the temperature at constant pressure.
func (p Point) HeatingTo(temperature float64) (Point, error) {
	if temperature <= p.props.Temperature {
		return Point{}, failure.Infeasiblef("during the heating process, the temperature should increase")
	}
	return p.fluid.WithState(Pressure(p.props.Pressure), Temperature(temperature))
}

// CoolingTo lowers the temperature at constant pressure.
func (p Point) CoolingTo(temperature float64) (Point, error) {
	if temperature >= p.props.Temperature {
		return Point{}, failure.Infeasiblef("during the cooling process, the temperature should decrease")
	}
	return p.fluid.WithState(Pressure(p.props.Pressure), Temperature(temperature))
}

// HeatingToEnthalpy raises the enthalpy at constant pressure.
func (p Point) HeatingToEnthalpy(enthalpy float64) (Point, error) {
	if enthalpy <= p.props.Enthalpy {
		return Point{}, failure.Infeasiblef("during the heating process, the enthalpy should increase")
	}
	return p.fluid.WithState(Pressure(p.props.Pressure), Enthalpy(enthalpy))
}

// CoolingToEnthalpy lowers the enthalpy at constant pressure.
func (p Point) CoolingToEnthalpy(enthalpy float64) (Point, error) {
	if enthalpy >= p.props.Enthalpy {
		return Point{}, failure.Infeasiblef("during the cooling process, the enthalpy should decrease")
	}
	return p.fluid.WithState(Pressure(p.props.Pressure), Enthalpy(enthalpy))
}

// DewPoint is the saturated vapor at the pressure of p.
func (p Point) DewPoint() (Point, error) {
	return p.fluid.DewPointAt(Pressure(p.props.Pressure))
}

// BubblePoint is the saturated liquid at the pressure of p.
func (p Point) BubblePoint() (Point, error) {
	return p.fluid.BubblePointAt(Pressure(p.props.Pressure))
}

// Mix is the adiabatic mixing of two flows at the same pressure.
func Mix(flowA float64, a Point, flowB float64, b Point) (Point, error) {
	if a.IsZero() || b.IsZero() || !a.fluid.SameAs(b.fluid) {
		return Point{}, failure.Configf("only flows of the same refrigerant can be mixed")
	}
	if flowA <= 0 || flowB <= 0 {
		return Point{}, failure.Infeasiblef("mixed flows should be positive (%g, %g)", flowA, flowB)
	}
	if !scalar.EqualWithinRel(a.props.Pressure, b.props.Pressure, 1e-9) {
		return Point{}, failure.Infeasiblef("mixed flows should have the same pressure (%g, %g Pa)", a.props.Pressure, b.props.Pressure)
	}
	flows := []float64{flowA, flowB}
	h := floats.Dot(flows, []float64{a.props.Enthalpy, b.props.Enthalpy}) / floats.Sum(flows)
	return a.fluid.WithState(Pressure(a.props.Pressure), Enthalpy(h))
}

func checkEfficiency(efficiency float64) error {
	if !(efficiency > 0 && efficiency < 1) {
		return failure.Configf("isentropic efficiency %g should be in (0, 1)", efficiency)
	}
	return nil
}
