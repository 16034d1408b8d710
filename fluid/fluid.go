// Package fluid binds a refrigerant to a property oracle and implements the
// immutable state point with its transition algebra.
package fluid

import (
	log "github.com/sirupsen/logrus"

	"vcrc/failure"
)

// GlideThreshold is the glide above which a fluid counts as a zeotropic blend, K.
const GlideThreshold = 0.01

// Fluid is a refrigerant resolved against an oracle.
type Fluid struct {
	name     Refrigerant
	oracle   Oracle
	critical Props
	triple   Props
	glide    float64
}

// New validates the refrigerant name and caches its fixed points.
func New(name Refrigerant, oracle Oracle) (*Fluid, error) {
	if err := name.Validate(); err != nil {
		return nil, err
	}
	if oracle == nil {
		return nil, failure.Configf("property oracle is required")
	}
	critical, err := oracle.CriticalPoint(name)
	if err != nil {
		return nil, err
	}
	triple, err := oracle.TriplePoint(name)
	if err != nil {
		return nil, err
	}
	glide, err := oracle.Glide(name)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"refrigerant":         name,
		"criticalTemperature": critical.Temperature,
		"criticalPressure":    critical.Pressure,
		"glide":               glide,
	}).Debug("fluid resolved")
	return &Fluid{name: name, oracle: oracle, critical: critical, triple: triple, glide: glide}, nil
}

func (f *Fluid) Name() Refrigerant            { return f.name }
func (f *Fluid) Oracle() Oracle               { return f.oracle }
func (f *Fluid) CriticalTemperature() float64 { return f.critical.Temperature }
func (f *Fluid) CriticalPressure() float64    { return f.critical.Pressure }
func (f *Fluid) TripleTemperature() float64   { return f.triple.Temperature }
func (f *Fluid) TriplePressure() float64      { return f.triple.Pressure }
func (f *Fluid) Glide() float64               { return f.glide }
func (f *Fluid) HasGlide() bool               { return f.glide > GlideThreshold }
func (f *Fluid) SameAs(other *Fluid) bool     { return other != nil && f.name == other.name }
func (f *Fluid) String() string               { return string(f.name) }

// WithState resolves a state point from two independent inputs.
func (f *Fluid) WithState(a, b Input) (Point, error) {
	props, err := f.oracle.State(f.name, a, b)
	if err != nil {
		return Point{}, err
	}
	if !props.finite() {
		return Point{}, failure.Infeasiblef("%s state (%v, %v) is not finite", f.name, a, b)
	}
	return Point{fluid: f, props: props}, nil
}

// DewPointAt is the saturated vapor at the given pressure or temperature.
func (f *Fluid) DewPointAt(in Input) (Point, error) {
	if err := saturationInput(in); err != nil {
		return Point{}, err
	}
	return f.WithState(in, Quality(1))
}

// BubblePointAt is the saturated liquid at the given pressure or temperature.
func (f *Fluid) BubblePointAt(in Input) (Point, error) {
	if err := saturationInput(in); err != nil {
		return Point{}, err
	}
	return f.WithState(in, Quality(0))
}

// SaturationPressure at temperature t.
func (f *Fluid) SaturationPressure(t float64) (float64, error) {
	dew, err := f.DewPointAt(Temperature(t))
	if err != nil {
		return 0, err
	}
	return dew.Pressure(), nil
}

// SaturationTemperature at pressure p.
func (f *Fluid) SaturationTemperature(p float64) (float64, error) {
	dew, err := f.DewPointAt(Pressure(p))
	if err != nil {
		return 0, err
	}
	return dew.Temperature(), nil
}

func saturationInput(in Input) error {
	if in.Param != ParamPressure && in.Param != ParamTemperature {
		return failure.Configf("saturation lookup needs pressure or temperature, got %v", in.Param)
	}
	return nil
}
