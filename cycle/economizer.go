package cycle

import (
	log "github.com/sirupsen/logrus"

	"vcrc/component"
	"vcrc/entropy"
	"vcrc/failure"
	"vcrc/fluid"
)

type injection struct {
	staged
	flow float64
}

func (i injection) InjectionFlow() float64 { return i.flow }

// Economized is the two-stage cycle with a vapor injection economizer:
// 1 evaporator outlet, 2 first stage outlet, 3 second stage inlet,
// 4 second stage outlet, 5 heat releaser outlet, 6 first valve outlet,
// 7 economizer cold outlet, 8 economizer hot outlet, 9 second valve outlet.
type Economized struct {
	base
	injection
	economizer *component.Economizer
}

var economizedLabels = []string{
	"evaporator outlet",
	"first stage outlet",
	"second stage inlet",
	"second stage outlet",
	"heat releaser outlet",
	"first valve outlet",
	"economizer cold outlet",
	"economizer hot outlet",
	"second valve outlet",
}

func NewEconomized(e *component.Evaporator, r component.HeatReleaser, c *component.Compressor,
	econ *component.Economizer, opts ...Option) (*Economized, error) {
	b, err := newBase(TopologyEconomizer, e, r, c, opts, true, true)
	if err != nil {
		return nil, err
	}
	if econ == nil {
		return nil, failure.Configf("%s cycle needs an economizer", TopologyEconomizer)
	}
	pi, err := b.settings.intermediatePressure(e.Pressure(), r.Pressure())
	if err != nil {
		return nil, err
	}
	p1, p5 := e.Outlet(), r.Outlet()
	p2, p2s, err := c.Compress(p1, pi)
	if err != nil {
		return nil, err
	}
	p6, _, err := throttle(p5, pi)
	if err != nil {
		return nil, err
	}
	p7, err := economizerColdOutlet(p6, p5, econ.Superheat())
	if err != nil {
		return nil, err
	}
	p8, err := economizerHotOutlet(p5, p6, econ.TemperatureDifference())
	if err != nil {
		return nil, err
	}
	m := (p5.Enthalpy() - p8.Enthalpy()) / (p7.Enthalpy() - p6.Enthalpy())
	if err := positiveFlow("injection flow", m); err != nil {
		return nil, err
	}
	p3, err := fluid.Mix(1, p2, m, p7)
	if err != nil {
		return nil, err
	}
	p4, p4s, err := c.Compress(p3, r.Pressure())
	if err != nil {
		return nil, err
	}
	p9, err := p8.IsenthalpicExpansionTo(e.Pressure())
	if err != nil {
		return nil, err
	}

	total := 1 + m
	b.labels = economizedLabels
	b.points = []fluid.Point{p1, p2, p3, p4, p5, p6, p7, p8, p9}
	b.isentropic[2] = p2s
	b.isentropic[4] = p4s
	b.work = p2.Enthalpy() - p1.Enthalpy() + total*(p4.Enthalpy()-p3.Enthalpy())
	b.isentropicWork = p2s.Enthalpy() - p1.Enthalpy() + total*(p4s.Enthalpy()-p3.Enthalpy())
	b.cooling = p1.Enthalpy() - p9.Enthalpy()
	b.heating = total * (p4.Enthalpy() - p5.Enthalpy())
	b.legs = []entropy.Leg{
		b.releaserLeg(total, p4s),
		entropy.NewLeg(entropy.ExpansionValves, entropy.Adiabatic, m, p5, p6).Add(1, p8, p9),
		entropy.NewLeg(entropy.Economizer, entropy.Adiabatic, m, p6, p7).Add(1, p5, p8),
		entropy.NewLeg(entropy.Mixing, entropy.Adiabatic, 1, p2, p3).Add(m, p7, p3),
		b.evaporatorLeg(p9),
	}
	if err := b.finish(log.Fields{"pi": pi, "injection": m}); err != nil {
		return nil, err
	}
	return &Economized{
		base:       b,
		injection:  injection{staged: staged{intermediate: pi}, flow: m},
		economizer: econ,
	}, nil
}

func (c *Economized) Economizer() *component.Economizer { return c.economizer }

// EconomizedParallel feeds the economizer vapor to a parallel compressor:
// 1 evaporator outlet, 2 main compressor outlet, 3 economizer cold outlet,
// 4 parallel compressor outlet, 5 heat releaser inlet, 6 heat releaser outlet,
// 7 first valve outlet, 8 economizer hot outlet, 9 second valve outlet.
type EconomizedParallel struct {
	base
	injection
	economizer *component.Economizer
}

var economizedParallelLabels = []string{
	"evaporator outlet",
	"main compressor outlet",
	"economizer cold outlet",
	"parallel compressor outlet",
	"heat releaser inlet",
	"heat releaser outlet",
	"first valve outlet",
	"economizer hot outlet",
	"second valve outlet",
}

func NewEconomizedParallel(e *component.Evaporator, r component.HeatReleaser, c *component.Compressor,
	econ *component.Economizer, opts ...Option) (*EconomizedParallel, error) {
	b, err := newBase(TopologyEconomizerPC, e, r, c, opts, true, true)
	if err != nil {
		return nil, err
	}
	if econ == nil {
		return nil, failure.Configf("%s cycle needs an economizer", TopologyEconomizerPC)
	}
	pi, err := b.settings.intermediatePressure(e.Pressure(), r.Pressure())
	if err != nil {
		return nil, err
	}
	p1, p6 := e.Outlet(), r.Outlet()
	p2, p2s, err := c.Compress(p1, r.Pressure())
	if err != nil {
		return nil, err
	}
	p7, _, err := throttle(p6, pi)
	if err != nil {
		return nil, err
	}
	p3, err := economizerColdOutlet(p7, p6, econ.Superheat())
	if err != nil {
		return nil, err
	}
	p8, err := economizerHotOutlet(p6, p7, econ.TemperatureDifference())
	if err != nil {
		return nil, err
	}
	m := (p6.Enthalpy() - p8.Enthalpy()) / (p3.Enthalpy() - p7.Enthalpy())
	if err := positiveFlow("economizer flow", m); err != nil {
		return nil, err
	}
	p4, p4s, err := c.Compress(p3, r.Pressure())
	if err != nil {
		return nil, err
	}
	p5, err := fluid.Mix(1, p2, m, p4)
	if err != nil {
		return nil, err
	}
	p9, err := p8.IsenthalpicExpansionTo(e.Pressure())
	if err != nil {
		return nil, err
	}

	b.labels = economizedParallelLabels
	b.points = []fluid.Point{p1, p2, p3, p4, p5, p6, p7, p8, p9}
	b.isentropic[2] = p2s
	b.isentropic[4] = p4s
	b.work = p2.Enthalpy() - p1.Enthalpy() + m*(p4.Enthalpy()-p3.Enthalpy())
	b.isentropicWork = p2s.Enthalpy() - p1.Enthalpy() + m*(p4s.Enthalpy()-p3.Enthalpy())
	b.cooling = p1.Enthalpy() - p9.Enthalpy()
	b.heating = (1 + m) * (p5.Enthalpy() - p6.Enthalpy())
	b.legs = []entropy.Leg{
		b.releaserLeg(1, p2s).Add(m, p4s, p6),
		entropy.NewLeg(entropy.ExpansionValves, entropy.Adiabatic, m, p6, p7).Add(1, p8, p9),
		entropy.NewLeg(entropy.Economizer, entropy.Adiabatic, m, p7, p3).Add(1, p6, p8),
		b.evaporatorLeg(p9),
	}
	if err := b.finish(log.Fields{"pi": pi, "economizer": m}); err != nil {
		return nil, err
	}
	return &EconomizedParallel{
		base:       b,
		injection:  injection{staged: staged{intermediate: pi}, flow: m},
		economizer: econ,
	}, nil
}

func (c *EconomizedParallel) Economizer() *component.Economizer { return c.economizer }

// EconomizedTPI injects two-phase refrigerant between the compression stages
// so that the second stage draws saturated vapor:
// 1 evaporator outlet, 2 first stage outlet, 3 second stage inlet,
// 4 second stage outlet, 5 heat releaser outlet, 6 first valve outlet,
// 7 economizer cold outlet, 8 economizer hot outlet, 9 second valve outlet.
type EconomizedTPI struct {
	base
	injection
	economizer *component.EconomizerTPI
}

func NewEconomizedTPI(e *component.Evaporator, r component.HeatReleaser, c *component.Compressor,
	econ *component.EconomizerTPI, opts ...Option) (*EconomizedTPI, error) {
	b, err := newBase(TopologyEconomizerTPI, e, r, c, opts, true, true)
	if err != nil {
		return nil, err
	}
	if econ == nil {
		return nil, failure.Configf("%s cycle needs an economizer", TopologyEconomizerTPI)
	}
	pi, err := b.settings.intermediatePressure(e.Pressure(), r.Pressure())
	if err != nil {
		return nil, err
	}
	p1, p5 := e.Outlet(), r.Outlet()
	p2, p2s, err := c.Compress(p1, pi)
	if err != nil {
		return nil, err
	}
	p6, _, err := throttle(p5, pi)
	if err != nil {
		return nil, err
	}
	p3, err := p6.DewPoint()
	if err != nil {
		return nil, err
	}
	p4, p4s, err := c.Compress(p3, r.Pressure())
	if err != nil {
		return nil, err
	}
	p8, err := economizerHotOutlet(p5, p6, econ.TemperatureDifference())
	if err != nil {
		return nil, err
	}
	m := (p2.Enthalpy() + p5.Enthalpy() - p8.Enthalpy() - p3.Enthalpy()) / (p3.Enthalpy() - p6.Enthalpy())
	if err := positiveFlow("injection flow", m); err != nil {
		return nil, err
	}
	p7, err := injected(p6.Fluid(), pi, p6.Enthalpy()+(p5.Enthalpy()-p8.Enthalpy())/m)
	if err != nil {
		return nil, err
	}
	p9, err := p8.IsenthalpicExpansionTo(e.Pressure())
	if err != nil {
		return nil, err
	}

	total := 1 + m
	b.labels = economizedLabels
	b.points = []fluid.Point{p1, p2, p3, p4, p5, p6, p7, p8, p9}
	b.isentropic[2] = p2s
	b.isentropic[4] = p4s
	b.work = p2.Enthalpy() - p1.Enthalpy() + total*(p4.Enthalpy()-p3.Enthalpy())
	b.isentropicWork = p2s.Enthalpy() - p1.Enthalpy() + total*(p4s.Enthalpy()-p3.Enthalpy())
	b.cooling = p1.Enthalpy() - p9.Enthalpy()
	b.heating = total * (p4.Enthalpy() - p5.Enthalpy())
	b.legs = []entropy.Leg{
		b.releaserLeg(total, p4s),
		entropy.NewLeg(entropy.ExpansionValves, entropy.Adiabatic, m, p5, p6).Add(1, p8, p9),
		entropy.NewLeg(entropy.Economizer, entropy.Adiabatic, m, p6, p7).Add(1, p5, p8),
		entropy.NewLeg(entropy.Mixing, entropy.Adiabatic, 1, p2, p3).Add(m, p7, p3),
		b.evaporatorLeg(p9),
	}
	if err := b.finish(log.Fields{"pi": pi, "injection": m}); err != nil {
		return nil, err
	}
	return &EconomizedTPI{
		base:       b,
		injection:  injection{staged: staged{intermediate: pi}, flow: m},
		economizer: econ,
	}, nil
}

func (c *EconomizedTPI) Economizer() *component.EconomizerTPI { return c.economizer }
