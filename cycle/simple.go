package cycle

import (
	log "github.com/sirupsen/logrus"

	"vcrc/component"
	"vcrc/entropy"
	"vcrc/failure"
	"vcrc/fluid"
)

// Simple is the single stage cycle:
// 1 evaporator outlet, 2 compressor outlet, 3 heat releaser outlet, 4 expansion valve outlet.
type Simple struct {
	base
}

var simpleLabels = []string{
	"evaporator outlet",
	"compressor outlet",
	"heat releaser outlet",
	"expansion valve outlet",
}

func NewSimple(e *component.Evaporator, r component.HeatReleaser, c *component.Compressor, opts ...Option) (*Simple, error) {
	b, err := newBase(TopologySimple, e, r, c, opts, false, false)
	if err != nil {
		return nil, err
	}
	p1, p3 := e.Outlet(), r.Outlet()
	p2, p2s, err := c.Compress(p1, r.Pressure())
	if err != nil {
		return nil, err
	}
	p4, err := p3.IsenthalpicExpansionTo(e.Pressure())
	if err != nil {
		return nil, err
	}

	b.labels = simpleLabels
	b.points = []fluid.Point{p1, p2, p3, p4}
	b.isentropic[2] = p2s
	b.work = p2.Enthalpy() - p1.Enthalpy()
	b.isentropicWork = p2s.Enthalpy() - p1.Enthalpy()
	b.cooling = p1.Enthalpy() - p4.Enthalpy()
	b.heating = p2.Enthalpy() - p3.Enthalpy()
	b.legs = []entropy.Leg{
		b.releaserLeg(1, p2s),
		entropy.NewLeg(entropy.ExpansionValves, entropy.Adiabatic, 1, p3, p4),
		b.evaporatorLeg(p4),
	}
	if err := b.finish(nil); err != nil {
		return nil, err
	}
	return &Simple{base: b}, nil
}

// Recuperative is the single stage cycle with a suction line heat exchanger:
// 1 evaporator outlet, 2 recuperator cold outlet, 3 compressor outlet,
// 4 heat releaser outlet, 5 recuperator hot outlet, 6 expansion valve outlet.
type Recuperative struct {
	base
	recuperator *component.Recuperator
}

var recuperativeLabels = []string{
	"evaporator outlet",
	"recuperator cold outlet",
	"compressor outlet",
	"heat releaser outlet",
	"recuperator hot outlet",
	"expansion valve outlet",
}

func NewRecuperative(e *component.Evaporator, r component.HeatReleaser, c *component.Compressor,
	rec *component.Recuperator, opts ...Option) (*Recuperative, error) {
	b, err := newBase(TopologyRecuperator, e, r, c, opts, false, false)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, failure.Configf("%s cycle needs a recuperator", TopologyRecuperator)
	}
	p1, p4 := e.Outlet(), r.Outlet()
	t2 := p4.Temperature() - rec.TemperatureDifference()
	if t2 <= p1.Temperature() {
		return nil, failure.Infeasiblef("recuperator temperature difference %g K leaves no room to heat the suction gas (%g K -> %g K)",
			rec.TemperatureDifference(), p1.Temperature(), t2)
	}
	p2, err := p1.HeatingTo(t2)
	if err != nil {
		return nil, err
	}
	p3, p3s, err := c.Compress(p2, r.Pressure())
	if err != nil {
		return nil, err
	}
	p5, err := p4.CoolingToEnthalpy(p4.Enthalpy() - (p2.Enthalpy() - p1.Enthalpy()))
	if err != nil {
		return nil, err
	}
	if p5.Temperature() <= p1.Temperature() {
		return nil, failure.Infeasiblef("recuperator hot outlet (%g K) should stay warmer than the suction gas (%g K)",
			p5.Temperature(), p1.Temperature())
	}
	p6, err := p5.IsenthalpicExpansionTo(e.Pressure())
	if err != nil {
		return nil, err
	}

	b.labels = recuperativeLabels
	b.points = []fluid.Point{p1, p2, p3, p4, p5, p6}
	b.isentropic[3] = p3s
	b.work = p3.Enthalpy() - p2.Enthalpy()
	b.isentropicWork = p3s.Enthalpy() - p2.Enthalpy()
	b.cooling = p1.Enthalpy() - p6.Enthalpy()
	b.heating = p3.Enthalpy() - p4.Enthalpy()
	b.legs = []entropy.Leg{
		b.releaserLeg(1, p3s),
		entropy.NewLeg(entropy.Recuperator, entropy.Adiabatic, 1, p1, p2).Add(1, p4, p5),
		entropy.NewLeg(entropy.ExpansionValves, entropy.Adiabatic, 1, p5, p6),
		b.evaporatorLeg(p6),
	}
	if err := b.finish(log.Fields{"t2": t2}); err != nil {
		return nil, err
	}
	return &Recuperative{base: b, recuperator: rec}, nil
}

func (c *Recuperative) Recuperator() *component.Recuperator { return c.recuperator }
