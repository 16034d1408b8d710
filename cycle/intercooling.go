package cycle

import (
	log "github.com/sirupsen/logrus"

	"vcrc/component"
	"vcrc/entropy"
	"vcrc/fluid"
)

type staged struct {
	intermediate float64
}

func (s staged) IntermediatePressure() float64 { return s.intermediate }

// IncompleteIntercooling is the two-stage cycle whose flash vessel vapor is
// mixed with the first stage discharge:
// 1 evaporator outlet, 2 first stage outlet, 3 second stage inlet,
// 4 second stage outlet, 5 heat releaser outlet, 6 first valve outlet,
// 7 vessel vapor, 8 vessel liquid, 9 second valve outlet.
type IncompleteIntercooling struct {
	base
	staged
}

var incompleteIntercoolingLabels = []string{
	"evaporator outlet",
	"first stage outlet",
	"second stage inlet",
	"second stage outlet",
	"heat releaser outlet",
	"first valve outlet",
	"vessel vapor",
	"vessel liquid",
	"second valve outlet",
}

func NewIncompleteIntercooling(e *component.Evaporator, r component.HeatReleaser, c *component.Compressor,
	opts ...Option) (*IncompleteIntercooling, error) {
	b, err := newBase(TopologyIIC, e, r, c, opts, true, true)
	if err != nil {
		return nil, err
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
	p6, p7, p8, x6, err := flash(p5, pi)
	if err != nil {
		return nil, err
	}
	total := 1 / (1 - x6)
	vapor := total * x6
	p3, err := fluid.Mix(1, p2, vapor, p7)
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

	b.labels = incompleteIntercoolingLabels
	b.points = []fluid.Point{p1, p2, p3, p4, p5, p6, p7, p8, p9}
	b.isentropic[2] = p2s
	b.isentropic[4] = p4s
	b.work = p2.Enthalpy() - p1.Enthalpy() + total*(p4.Enthalpy()-p3.Enthalpy())
	b.isentropicWork = p2s.Enthalpy() - p1.Enthalpy() + total*(p4s.Enthalpy()-p3.Enthalpy())
	b.cooling = p1.Enthalpy() - p9.Enthalpy()
	b.heating = total * (p4.Enthalpy() - p5.Enthalpy())
	b.legs = []entropy.Leg{
		b.releaserLeg(total, p4s),
		entropy.NewLeg(entropy.ExpansionValves, entropy.Adiabatic, total, p5, p6).Add(1, p8, p9),
		entropy.NewLeg(entropy.Mixing, entropy.Adiabatic, vapor, p6, p7).Add(1, p6, p8),
		entropy.NewLeg(entropy.Mixing, entropy.Adiabatic, 1, p2, p3).Add(vapor, p7, p3),
		b.evaporatorLeg(p9),
	}
	if err := b.finish(log.Fields{"pi": pi, "total": total}); err != nil {
		return nil, err
	}
	return &IncompleteIntercooling{base: b, staged: staged{intermediate: pi}}, nil
}

// CompleteIntercooling is the two-stage cycle whose first stage discharge is
// bubbled through the vessel liquid:
// 1 evaporator outlet, 2 first stage outlet, 3 vessel vapor,
// 4 second stage outlet, 5 heat releaser outlet, 6 first valve outlet,
// 7 vessel liquid, 8 second valve outlet.
type CompleteIntercooling struct {
	base
	staged
	secondStage float64
}

var completeIntercoolingLabels = []string{
	"evaporator outlet",
	"first stage outlet",
	"vessel vapor",
	"second stage outlet",
	"heat releaser outlet",
	"first valve outlet",
	"vessel liquid",
	"second valve outlet",
}

func NewCompleteIntercooling(e *component.Evaporator, r component.HeatReleaser, c *component.Compressor,
	opts ...Option) (*CompleteIntercooling, error) {
	b, err := newBase(TopologyCIC, e, r, c, opts, true, true)
	if err != nil {
		return nil, err
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
	p6, p3, p7, _, err := flash(p5, pi)
	if err != nil {
		return nil, err
	}
	m2 := (p2.Enthalpy() - p7.Enthalpy()) / (p3.Enthalpy() - p6.Enthalpy())
	if err := positiveFlow("second stage flow", m2); err != nil {
		return nil, err
	}
	p4, p4s, err := c.Compress(p3, r.Pressure())
	if err != nil {
		return nil, err
	}
	p8, err := p7.IsenthalpicExpansionTo(e.Pressure())
	if err != nil {
		return nil, err
	}

	b.labels = completeIntercoolingLabels
	b.points = []fluid.Point{p1, p2, p3, p4, p5, p6, p7, p8}
	b.isentropic[2] = p2s
	b.isentropic[4] = p4s
	b.work = p2.Enthalpy() - p1.Enthalpy() + m2*(p4.Enthalpy()-p3.Enthalpy())
	b.isentropicWork = p2s.Enthalpy() - p1.Enthalpy() + m2*(p4s.Enthalpy()-p3.Enthalpy())
	b.cooling = p1.Enthalpy() - p8.Enthalpy()
	b.heating = m2 * (p4.Enthalpy() - p5.Enthalpy())
	b.legs = []entropy.Leg{
		b.releaserLeg(m2, p4s),
		entropy.NewLeg(entropy.ExpansionValves, entropy.Adiabatic, m2, p5, p6).Add(1, p7, p8),
		entropy.NewLeg(entropy.Mixing, entropy.Adiabatic, m2, p6, p3).Add(1, p2, p7),
		b.evaporatorLeg(p8),
	}
	if err := b.finish(log.Fields{"pi": pi, "m2": m2}); err != nil {
		return nil, err
	}
	return &CompleteIntercooling{base: b, staged: staged{intermediate: pi}, secondStage: m2}, nil
}

// SecondStageFlow is the flow through the second stage and the heat releaser.
func (c *CompleteIntercooling) SecondStageFlow() float64 { return c.secondStage }

// ParallelCompression sends the flash vessel vapor to a parallel compressor:
// 1 evaporator outlet, 2 main compressor outlet, 3 vessel vapor,
// 4 parallel compressor outlet, 5 heat releaser inlet, 6 heat releaser outlet,
// 7 first valve outlet, 8 vessel liquid, 9 second valve outlet.
type ParallelCompression struct {
	base
	staged
	parallel float64
}

var parallelCompressionLabels = []string{
	"evaporator outlet",
	"main compressor outlet",
	"vessel vapor",
	"parallel compressor outlet",
	"heat releaser inlet",
	"heat releaser outlet",
	"first valve outlet",
	"vessel liquid",
	"second valve outlet",
}

func NewParallelCompression(e *component.Evaporator, r component.HeatReleaser, c *component.Compressor,
	opts ...Option) (*ParallelCompression, error) {
	b, err := newBase(TopologyPC, e, r, c, opts, true, true)
	if err != nil {
		return nil, err
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
	p7, p3, p8, x7, err := flash(p6, pi)
	if err != nil {
		return nil, err
	}
	m := x7 / (1 - x7)
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

	b.labels = parallelCompressionLabels
	b.points = []fluid.Point{p1, p2, p3, p4, p5, p6, p7, p8, p9}
	b.isentropic[2] = p2s
	b.isentropic[4] = p4s
	b.work = p2.Enthalpy() - p1.Enthalpy() + m*(p4.Enthalpy()-p3.Enthalpy())
	b.isentropicWork = p2s.Enthalpy() - p1.Enthalpy() + m*(p4s.Enthalpy()-p3.Enthalpy())
	b.cooling = p1.Enthalpy() - p9.Enthalpy()
	b.heating = (1 + m) * (p5.Enthalpy() - p6.Enthalpy())
	b.legs = []entropy.Leg{
		b.releaserLeg(1, p2s).Add(m, p4s, p6),
		entropy.NewLeg(entropy.ExpansionValves, entropy.Adiabatic, 1+m, p6, p7).Add(1, p8, p9),
		entropy.NewLeg(entropy.Mixing, entropy.Adiabatic, m, p7, p3).Add(1, p7, p8),
		b.evaporatorLeg(p9),
	}
	if err := b.finish(log.Fields{"pi": pi, "parallel": m}); err != nil {
		return nil, err
	}
	return &ParallelCompression{base: b, staged: staged{intermediate: pi}, parallel: m}, nil
}

// ParallelFlow is the flow through the parallel compressor.
func (c *ParallelCompression) ParallelFlow() float64 { return c.parallel }
