package cycle

import (
	"math"

	log "github.com/sirupsen/logrus"

	"vcrc/component"
	"vcrc/entropy"
	"vcrc/failure"
	"vcrc/fluid"
	"vcrc/solver"
)

// Zubadan couples a recuperator on the liquid line with a two-phase injection
// economizer. The recuperator high-side pressure is unknown and found by a
// root search:
// 1 evaporator outlet, 2 recuperator cold outlet, 3 first stage outlet,
// 4 second stage inlet, 5 second stage outlet, 6 heat releaser outlet,
// 7 first valve outlet, 8 recuperator hot outlet, 9 second valve outlet,
// 10 economizer cold outlet, 11 economizer hot outlet, 12 third valve outlet.
type Zubadan struct {
	base
	injection
	recuperator *component.Recuperator
	economizer  *component.EconomizerTPI
	recuperated float64
}

var zubadanLabels = []string{
	"evaporator outlet",
	"recuperator cold outlet",
	"first stage outlet",
	"second stage inlet",
	"second stage outlet",
	"heat releaser outlet",
	"first valve outlet",
	"recuperator hot outlet",
	"second valve outlet",
	"economizer cold outlet",
	"economizer hot outlet",
	"third valve outlet",
}

// zubadanTrial is the point chain evaluated at one recuperator pressure.
type zubadanTrial struct {
	p2, p2s, p3, p3s, p7, p8, p9, p11 fluid.Point
	injection                         float64
	residual                          float64
}

func NewZubadan(e *component.Evaporator, r component.HeatReleaser, c *component.Compressor,
	rec *component.Recuperator, econ *component.EconomizerTPI, opts ...Option) (*Zubadan, error) {
	b, err := newBase(TopologyZubadan, e, r, c, opts, true, true)
	if err != nil {
		return nil, err
	}
	if rec == nil || econ == nil {
		return nil, failure.Configf("%s cycle needs a recuperator and an economizer", TopologyZubadan)
	}
	f := e.Fluid()
	p0, pk := e.Pressure(), r.Pressure()
	pi, err := b.settings.intermediatePressure(p0, pk)
	if err != nil {
		return nil, err
	}
	p1, p6 := e.Outlet(), r.Outlet()
	p4, err := f.DewPointAt(fluid.Pressure(pi))
	if err != nil {
		return nil, err
	}
	t11 := p4.Temperature() + econ.TemperatureDifference()
	if t11 >= f.CriticalTemperature() {
		return nil, failure.Infeasiblef("economizer hot outlet (%g K) would be above the critical temperature", t11)
	}
	low, err := f.SaturationPressure(t11)
	if err != nil {
		return nil, err
	}
	low *= 1 + 1e-6
	// the recuperator high side stays subcritical behind a gas cooler
	high := math.Min(pk, f.CriticalPressure()) * (1 - 1e-6)
	if low >= high {
		return nil, failure.NoSolutionf("no recuperator pressure between %g Pa and %g Pa", low, high)
	}

	trial := func(prec float64) (zubadanTrial, error) {
		var t zubadanTrial
		var err error
		if t.p7, err = p6.IsenthalpicExpansionTo(prec); err != nil {
			return t, err
		}
		if t.p8, err = t.p7.BubblePoint(); err != nil {
			return t, err
		}
		if t.p2, err = f.WithState(fluid.Pressure(p0), fluid.Temperature(t.p8.Temperature()-rec.TemperatureDifference())); err != nil {
			return t, err
		}
		if t.p3, t.p3s, err = c.Compress(t.p2, pi); err != nil {
			return t, err
		}
		if t.p11, err = t.p8.CoolingTo(t11); err != nil {
			return t, err
		}
		if t.p9, err = t.p8.IsenthalpicExpansionTo(pi); err != nil {
			return t, err
		}
		h3, h4, h8, h11 := t.p3.Enthalpy(), p4.Enthalpy(), t.p8.Enthalpy(), t.p11.Enthalpy()
		t.injection = (h3 + h8 - h11 - h4) / (h4 - h8)
		duty := (1 + t.injection) * (t.p7.Enthalpy() - h8)
		heated, err := f.WithState(fluid.Pressure(p0), fluid.Enthalpy(p1.Enthalpy()+duty))
		if err != nil {
			return t, err
		}
		t.residual = t.p8.Temperature() - heated.Temperature() - rec.TemperatureDifference()
		return t, nil
	}
	res, err := solver.FindRoot(func(prec float64) (float64, error) {
		t, err := trial(prec)
		return t.residual, err
	}, low, high, b.settings.solver)
	if err != nil {
		return nil, err
	}
	t, err := trial(res.X)
	if err != nil {
		return nil, err
	}
	if _, ok := t.p7.Quality(); !ok {
		return nil, failure.Infeasiblef("recuperator hot inlet should be two-phase, got %v", t.p7.Phase())
	}
	if t.p2.Temperature() <= p1.Temperature() {
		return nil, failure.Infeasiblef("recuperator cold outlet (%g K) should be warmer than the evaporator outlet (%g K)",
			t.p2.Temperature(), p1.Temperature())
	}
	m := t.injection
	if err := positiveFlow("injection flow", m); err != nil {
		return nil, err
	}
	p10, err := injected(f, pi, t.p9.Enthalpy()+(t.p8.Enthalpy()-t.p11.Enthalpy())/m)
	if err != nil {
		return nil, err
	}
	p5, p5s, err := c.Compress(p4, pk)
	if err != nil {
		return nil, err
	}
	p12, err := t.p11.IsenthalpicExpansionTo(p0)
	if err != nil {
		return nil, err
	}

	total := 1 + m
	b.labels = zubadanLabels
	b.points = []fluid.Point{p1, t.p2, t.p3, p4, p5, p6, t.p7, t.p8, t.p9, p10, t.p11, p12}
	b.isentropic[3] = t.p3s
	b.isentropic[5] = p5s
	b.work = t.p3.Enthalpy() - t.p2.Enthalpy() + total*(p5.Enthalpy()-p4.Enthalpy())
	b.isentropicWork = t.p3s.Enthalpy() - t.p2.Enthalpy() + total*(p5s.Enthalpy()-p4.Enthalpy())
	b.cooling = p1.Enthalpy() - p12.Enthalpy()
	b.heating = total * (p5.Enthalpy() - p6.Enthalpy())
	b.legs = []entropy.Leg{
		b.releaserLeg(total, p5s),
		entropy.NewLeg(entropy.ExpansionValves, entropy.Adiabatic, total, p6, t.p7).Add(m, t.p8, t.p9).Add(1, t.p11, p12),
		entropy.NewLeg(entropy.Recuperator, entropy.Adiabatic, total, t.p7, t.p8).Add(1, p1, t.p2),
		entropy.NewLeg(entropy.Economizer, entropy.Adiabatic, m, t.p9, p10).Add(1, t.p8, t.p11),
		entropy.NewLeg(entropy.Mixing, entropy.Adiabatic, 1, t.p3, p4).Add(m, p10, p4),
		b.evaporatorLeg(p12),
	}
	if err := b.finish(log.Fields{"pi": pi, "prec": res.X, "injection": m, "iterations": res.Iterations}); err != nil {
		return nil, err
	}
	return &Zubadan{
		base:        b,
		injection:   injection{staged: staged{intermediate: pi}, flow: m},
		recuperator: rec,
		economizer:  econ,
		recuperated: res.X,
	}, nil
}

func (c *Zubadan) Recuperator() *component.Recuperator  { return c.recuperator }
func (c *Zubadan) Economizer() *component.EconomizerTPI { return c.economizer }

// RecuperatorPressure is the solved high-side pressure of the recuperator.
func (c *Zubadan) RecuperatorPressure() float64 { return c.recuperated }
