package component

import (
	"math"

	log "github.com/sirupsen/logrus"

	"vcrc/failure"
	"vcrc/fluid"
	"vcrc/solver"
)

// MixingPressureRatio is the mixing chamber pressure over the suction pressure.
const MixingPressureRatio = 0.9

// Ejector is a two-phase ejector with isentropic efficiencies (decimal
// fractions) for the motive nozzle, the suction nozzle and the diffuser.
type Ejector struct {
	nozzle   float64
	suction  float64
	diffuser float64
}

func NewEjector(nozzleEfficiency, suctionEfficiency, diffuserEfficiency float64) (*Ejector, error) {
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"ejector nozzle efficiency", nozzleEfficiency},
		{"ejector suction efficiency", suctionEfficiency},
		{"ejector diffuser efficiency", diffuserEfficiency},
	} {
		if err := between(c.name, c.v, 0, 1, ""); err != nil {
			return nil, err
		}
	}
	return &Ejector{nozzle: nozzleEfficiency, suction: suctionEfficiency, diffuser: diffuserEfficiency}, nil
}

func (e *Ejector) NozzleEfficiency() float64   { return e.nozzle }
func (e *Ejector) SuctionEfficiency() float64  { return e.suction }
func (e *Ejector) DiffuserEfficiency() float64 { return e.diffuser }

// EjectorFlows is the solved state of an ejector. NozzleFraction is the
// motive flow over the diffuser flow; the separator downstream returns the
// same share as vapor.
type EjectorFlows struct {
	NozzleFraction float64
	NozzleOutlet   fluid.Point
	SuctionOutlet  fluid.Point
	MixingInlet    fluid.Point
	DiffuserOutlet fluid.Point
}

// EntrainmentRatio is the suction flow over the motive flow.
func (f EjectorFlows) EntrainmentRatio() float64 {
	return (1 - f.NozzleFraction) / f.NozzleFraction
}

// CalculateFlows solves the ejector for the given motive and suction inlets.
// The nozzle fraction is chosen so that the diffuser outlet quality equals it,
// which keeps the separator in balance.
func (e *Ejector) CalculateFlows(nozzleInlet, suctionInlet fluid.Point, opts solver.Options) (EjectorFlows, error) {
	if nozzleInlet.IsZero() || suctionInlet.IsZero() || !nozzleInlet.Fluid().SameAs(suctionInlet.Fluid()) {
		return EjectorFlows{}, failure.Configf("ejector inlets should carry the same refrigerant")
	}
	if nozzleInlet.Pressure() <= suctionInlet.Pressure() {
		return EjectorFlows{}, failure.Configf("ejector nozzle inlet pressure (%g Pa) should be higher than suction pressure (%g Pa)",
			nozzleInlet.Pressure(), suctionInlet.Pressure())
	}
	f := nozzleInlet.Fluid()
	mixing := MixingPressureRatio * suctionInlet.Pressure()
	nozzleOutlet, err := nozzleInlet.ExpansionTo(mixing, e.nozzle)
	if err != nil {
		return EjectorFlows{}, err
	}
	suctionOutlet, err := suctionInlet.ExpansionTo(mixing, e.suction)
	if err != nil {
		return EjectorFlows{}, err
	}
	vn := math.Sqrt(2 * (nozzleInlet.Enthalpy() - nozzleOutlet.Enthalpy()))
	vs := math.Sqrt(2 * (suctionInlet.Enthalpy() - suctionOutlet.Enthalpy()))
	ceiling := math.Min(nozzleInlet.Pressure(), f.CriticalPressure()*(1-1e-6))

	mix := func(xi float64) (EjectorFlows, error) {
		v := xi*vn + (1-xi)*vs
		stagnation := xi*nozzleInlet.Enthalpy() + (1-xi)*suctionInlet.Enthalpy()
		kinetic := v * v / 2
		mixingInlet, err := f.WithState(fluid.Pressure(mixing), fluid.Enthalpy(stagnation-kinetic))
		if err != nil {
			return EjectorFlows{}, err
		}
		target := mixingInlet.Enthalpy() + e.diffuser*kinetic
		rise := func(p float64) (float64, error) {
			s, err := mixingInlet.IsentropicCompressionTo(p)
			if err != nil {
				return 0, err
			}
			return s.Enthalpy() - target, nil
		}
		pressure := ceiling
		top, err := rise(ceiling)
		if err != nil {
			return EjectorFlows{}, err
		}
		// the diffuser cannot recompress beyond the motive pressure
		if top > 0 {
			res, err := solver.FindRoot(rise, mixing*(1+1e-9), ceiling, opts)
			if err != nil {
				return EjectorFlows{}, err
			}
			pressure = res.X
		}
		outlet, err := f.WithState(fluid.Pressure(pressure), fluid.Enthalpy(stagnation))
		if err != nil {
			return EjectorFlows{}, err
		}
		return EjectorFlows{
			NozzleFraction: xi,
			NozzleOutlet:   nozzleOutlet,
			SuctionOutlet:  suctionOutlet,
			MixingInlet:    mixingInlet,
			DiffuserOutlet: outlet,
		}, nil
	}

	balance := func(xi float64) (float64, error) {
		flows, err := mix(xi)
		if err != nil {
			return 0, err
		}
		x, err := extendedQuality(flows.DiffuserOutlet)
		if err != nil {
			return 0, err
		}
		return x - xi, nil
	}
	low, high, err := balanceBracket(balance)
	if err != nil {
		return EjectorFlows{}, err
	}
	res, err := solver.FindRoot(balance, low, high, opts)
	if err != nil {
		return EjectorFlows{}, err
	}
	flows, err := mix(res.X)
	if err != nil {
		return EjectorFlows{}, err
	}
	if flows.DiffuserOutlet.Pressure() <= suctionInlet.Pressure() {
		return EjectorFlows{}, failure.Infeasiblef("ejector diffuser outlet pressure (%g Pa) should be higher than suction pressure (%g Pa)",
			flows.DiffuserOutlet.Pressure(), suctionInlet.Pressure())
	}
	log.WithFields(log.Fields{
		"nozzleFraction":   flows.NozzleFraction,
		"diffuserPressure": flows.DiffuserOutlet.Pressure(),
		"iterations":       res.Iterations,
	}).Debug("ejector solved")
	return flows, nil
}

// bracketSteps is the number of nozzle fraction intervals scanned for the
// separator balance.
const bracketSteps = 50

// balanceBracket scans the nozzle fraction for the first interval where the
// separator balance turns from surplus vapor to surplus liquid. Near a
// diffuser capped at the critical pressure the extended quality diverges, so
// the ends of the range cannot bracket the root on their own.
func balanceBracket(balance func(float64) (float64, error)) (float64, float64, error) {
	const lo, hi = 1e-6, 1 - 1e-6
	prev, prevOK := lo, false
	var prevRes float64
	for i := 0; i <= bracketSteps; i++ {
		xi := lo + (hi-lo)*float64(i)/bracketSteps
		r, err := balance(xi)
		ok := err == nil && !math.IsNaN(r) && !math.IsInf(r, 0)
		if ok && r == 0 {
			return xi, xi, nil
		}
		if ok && prevOK && prevRes > 0 && r < 0 {
			return prev, xi, nil
		}
		prev, prevRes, prevOK = xi, r, ok
	}
	return 0, 0, failure.NoSolutionf("separator balance does not change sign on [%g, %g]", lo, hi)
}

// extendedQuality is the vapor quality continued linearly outside the dome.
func extendedQuality(p fluid.Point) (float64, error) {
	bubble, err := p.BubblePoint()
	if err != nil {
		return 0, err
	}
	dew, err := p.DewPoint()
	if err != nil {
		return 0, err
	}
	return (p.Enthalpy() - bubble.Enthalpy()) / (dew.Enthalpy() - bubble.Enthalpy()), nil
}
