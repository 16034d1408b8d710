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

// FixedPointTolerance closes the intermediate pressure of the ejector
// economizer cycles, relative.
const FixedPointTolerance = 1e-9

type ejected struct {
	ejector *component.Ejector
	flows   component.EjectorFlows
}

func (e ejected) Ejector() *component.Ejector          { return e.ejector }
func (e ejected) EjectorFlows() component.EjectorFlows { return e.flows }

// NozzleFlow is the motive flow, equal to the separator vapor flow.
func (e ejected) NozzleFlow() float64 {
	return e.flows.NozzleFraction / (1 - e.flows.NozzleFraction)
}

// separate splits the diffuser outlet into separator vapor and liquid.
func (e ejected) separate() (vapor, liquid fluid.Point, err error) {
	if vapor, err = e.flows.DiffuserOutlet.DewPoint(); err != nil {
		return
	}
	liquid, err = e.flows.DiffuserOutlet.BubblePoint()
	return
}

func (e ejected) legs(vapor, liquid, nozzleInlet, suctionInlet fluid.Point) []entropy.Leg {
	m := e.NozzleFlow()
	out := e.flows.DiffuserOutlet
	return []entropy.Leg{
		entropy.NewLeg(entropy.Ejector, entropy.Adiabatic, m, nozzleInlet, out).Add(1, suctionInlet, out),
		entropy.NewLeg(entropy.Mixing, entropy.Adiabatic, m, out, vapor).Add(1, out, liquid),
	}
}

func needEjector(t Topology, ej *component.Ejector) error {
	if ej == nil {
		return failure.Configf("%s cycle needs an ejector", t)
	}
	return nil
}

// EjectorExpansion replaces the expansion valve by an ejector feeding a separator:
// 1 separator vapor, 2 compressor outlet, 3 heat releaser outlet, 4 nozzle outlet,
// 5 mixing chamber inlet, 6 diffuser outlet, 7 separator liquid,
// 8 expansion valve outlet, 9 evaporator outlet, 10 suction nozzle outlet.
type EjectorExpansion struct {
	base
	ejected
}

var ejectorLabels = []string{
	"separator vapor",
	"compressor outlet",
	"heat releaser outlet",
	"nozzle outlet",
	"mixing chamber inlet",
	"diffuser outlet",
	"separator liquid",
	"expansion valve outlet",
	"evaporator outlet",
	"suction nozzle outlet",
}

func NewEjectorExpansion(e *component.Evaporator, r component.HeatReleaser, c *component.Compressor,
	ej *component.Ejector, opts ...Option) (*EjectorExpansion, error) {
	b, err := newBase(TopologyEjector, e, r, c, opts, true, false)
	if err != nil {
		return nil, err
	}
	if err := needEjector(TopologyEjector, ej); err != nil {
		return nil, err
	}
	p3, p9 := r.Outlet(), e.Outlet()
	flows, err := ej.CalculateFlows(p3, p9, b.settings.solver)
	if err != nil {
		return nil, err
	}
	x := ejected{ejector: ej, flows: flows}
	p1, p7, err := x.separate()
	if err != nil {
		return nil, err
	}
	p2, p2s, err := c.Compress(p1, r.Pressure())
	if err != nil {
		return nil, err
	}
	p8, err := p7.IsenthalpicExpansionTo(e.Pressure())
	if err != nil {
		return nil, err
	}

	m := x.NozzleFlow()
	b.labels = ejectorLabels
	b.points = []fluid.Point{p1, p2, p3, flows.NozzleOutlet, flows.MixingInlet, flows.DiffuserOutlet, p7, p8, p9, flows.SuctionOutlet}
	b.isentropic[2] = p2s
	b.work = m * (p2.Enthalpy() - p1.Enthalpy())
	b.isentropicWork = m * (p2s.Enthalpy() - p1.Enthalpy())
	b.cooling = p9.Enthalpy() - p8.Enthalpy()
	b.heating = m * (p2.Enthalpy() - p3.Enthalpy())
	b.legs = append([]entropy.Leg{
		b.releaserLeg(m, p2s),
		entropy.NewLeg(entropy.ExpansionValves, entropy.Adiabatic, 1, p7, p8),
		b.evaporatorLeg(p8),
	}, x.legs(p1, p7, p3, p9)...)
	if err := b.finish(log.Fields{"pd": flows.DiffuserOutlet.Pressure(), "nozzle": m}); err != nil {
		return nil, err
	}
	return &EjectorExpansion{base: b, ejected: x}, nil
}

// DiffuserPressure is the separator pressure.
func (c *EjectorExpansion) DiffuserPressure() float64 { return c.flows.DiffuserOutlet.Pressure() }

// ejectorStage closes the intermediate pressure pi = sqrt(pd·pk) of the
// ejector economizer cycles. nozzleInlet builds the economizer hot outlet
// for a trial pi.
func ejectorStage(b *base, ej *component.Ejector,
	nozzleInlet func(pi float64) (fluid.Point, error)) (float64, component.EjectorFlows, error) {
	pk, suction := b.releaser.Pressure(), b.evaporator.Outlet()
	diffuser := func(pi float64) (component.EjectorFlows, error) {
		in, err := nozzleInlet(pi)
		if err != nil {
			return component.EjectorFlows{}, err
		}
		return ej.CalculateFlows(in, suction, b.settings.solver)
	}
	step := func(pi float64) (float64, error) {
		flows, err := diffuser(pi)
		if err != nil {
			return 0, err
		}
		return math.Sqrt(flows.DiffuserOutlet.Pressure() * pk), nil
	}
	opts := b.settings.solver
	opts.Tolerance = math.Max(opts.Tolerance, FixedPointTolerance)
	res, err := solver.FixedPoint(step, math.Sqrt(b.evaporator.Pressure()*pk), opts)
	if err != nil {
		return 0, component.EjectorFlows{}, err
	}
	flows, err := diffuser(res.X)
	if err != nil {
		return 0, component.EjectorFlows{}, err
	}
	log.WithFields(log.Fields{
		"pi":         res.X,
		"iterations": res.Iterations,
	}).Debug("ejector intermediate pressure closed")
	return res.X, flows, nil
}

// EjectorEconomizedParallel combines the ejector, an economizer and a
// parallel compressor:
// 1 separator vapor, 2 main compressor outlet, 3 economizer cold outlet,
// 4 parallel compressor outlet, 5 heat releaser inlet, 6 heat releaser outlet,
// 7 first valve outlet, 8 economizer hot outlet, 9 nozzle outlet,
// 10 mixing chamber inlet, 11 diffuser outlet, 12 separator liquid,
// 13 second valve outlet, 14 evaporator outlet, 15 suction nozzle outlet.
type EjectorEconomizedParallel struct {
	base
	injection
	ejected
	economizer *component.Economizer
}

var ejectorEconomizedParallelLabels = []string{
	"separator vapor",
	"main compressor outlet",
	"economizer cold outlet",
	"parallel compressor outlet",
	"heat releaser inlet",
	"heat releaser outlet",
	"first valve outlet",
	"economizer hot outlet",
	"nozzle outlet",
	"mixing chamber inlet",
	"diffuser outlet",
	"separator liquid",
	"second valve outlet",
	"evaporator outlet",
	"suction nozzle outlet",
}

func NewEjectorEconomizedParallel(e *component.Evaporator, r component.HeatReleaser, c *component.Compressor,
	econ *component.Economizer, ej *component.Ejector, opts ...Option) (*EjectorEconomizedParallel, error) {
	b, err := newBase(TopologyEjectorEconomizerPC, e, r, c, opts, true, false)
	if err != nil {
		return nil, err
	}
	if econ == nil {
		return nil, failure.Configf("%s cycle needs an economizer", TopologyEjectorEconomizerPC)
	}
	if err := needEjector(TopologyEjectorEconomizerPC, ej); err != nil {
		return nil, err
	}
	p6, p14 := r.Outlet(), e.Outlet()
	hot := func(pi float64) (fluid.Point, error) {
		p7, _, err := throttle(p6, pi)
		if err != nil {
			return fluid.Point{}, err
		}
		return economizerHotOutlet(p6, p7, econ.TemperatureDifference())
	}
	pi, flows, err := ejectorStage(&b, ej, hot)
	if err != nil {
		return nil, err
	}
	x := ejected{ejector: ej, flows: flows}
	p7, _, err := throttle(p6, pi)
	if err != nil {
		return nil, err
	}
	p8, err := economizerHotOutlet(p6, p7, econ.TemperatureDifference())
	if err != nil {
		return nil, err
	}
	p3, err := economizerColdOutlet(p7, p6, econ.Superheat())
	if err != nil {
		return nil, err
	}
	p1, p12, err := x.separate()
	if err != nil {
		return nil, err
	}
	p2, p2s, err := c.Compress(p1, r.Pressure())
	if err != nil {
		return nil, err
	}
	mn := x.NozzleFlow()
	me := mn * (p6.Enthalpy() - p8.Enthalpy()) / (p3.Enthalpy() - p7.Enthalpy())
	if err := positiveFlow("economizer flow", me); err != nil {
		return nil, err
	}
	p4, p4s, err := c.Compress(p3, r.Pressure())
	if err != nil {
		return nil, err
	}
	p5, err := fluid.Mix(mn, p2, me, p4)
	if err != nil {
		return nil, err
	}
	p13, err := p12.IsenthalpicExpansionTo(e.Pressure())
	if err != nil {
		return nil, err
	}

	b.labels = ejectorEconomizedParallelLabels
	b.points = []fluid.Point{p1, p2, p3, p4, p5, p6, p7, p8,
		flows.NozzleOutlet, flows.MixingInlet, flows.DiffuserOutlet, p12, p13, p14, flows.SuctionOutlet}
	b.isentropic[2] = p2s
	b.isentropic[4] = p4s
	b.work = mn*(p2.Enthalpy()-p1.Enthalpy()) + me*(p4.Enthalpy()-p3.Enthalpy())
	b.isentropicWork = mn*(p2s.Enthalpy()-p1.Enthalpy()) + me*(p4s.Enthalpy()-p3.Enthalpy())
	b.cooling = p14.Enthalpy() - p13.Enthalpy()
	b.heating = (mn + me) * (p5.Enthalpy() - p6.Enthalpy())
	b.legs = append([]entropy.Leg{
		b.releaserLeg(mn, p2s).Add(me, p4s, p6),
		entropy.NewLeg(entropy.ExpansionValves, entropy.Adiabatic, me, p6, p7).Add(1, p12, p13),
		entropy.NewLeg(entropy.Economizer, entropy.Adiabatic, me, p7, p3).Add(mn, p6, p8),
		b.evaporatorLeg(p13),
	}, x.legs(p1, p12, p8, p14)...)
	if err := b.finish(log.Fields{"pi": pi, "pd": flows.DiffuserOutlet.Pressure(), "nozzle": mn, "economizer": me}); err != nil {
		return nil, err
	}
	return &EjectorEconomizedParallel{
		base:       b,
		injection:  injection{staged: staged{intermediate: pi}, flow: me},
		ejected:    x,
		economizer: econ,
	}, nil
}

func (c *EjectorEconomizedParallel) Economizer() *component.Economizer { return c.economizer }

// EjectorEconomizedTPI combines the ejector with two-phase injection between
// the compression stages:
// 1 separator vapor, 2 first stage outlet, 3 second stage inlet,
// 4 second stage outlet, 5 heat releaser outlet, 6 first valve outlet,
// 7 economizer cold outlet, 8 economizer hot outlet, 9 nozzle outlet,
// 10 mixing chamber inlet, 11 diffuser outlet, 12 separator liquid,
// 13 second valve outlet, 14 evaporator outlet, 15 suction nozzle outlet.
type EjectorEconomizedTPI struct {
	base
	injection
	ejected
	economizer *component.EconomizerTPI
}

var ejectorEconomizedTPILabels = []string{
	"separator vapor",
	"first stage outlet",
	"second stage inlet",
	"second stage outlet",
	"heat releaser outlet",
	"first valve outlet",
	"economizer cold outlet",
	"economizer hot outlet",
	"nozzle outlet",
	"mixing chamber inlet",
	"diffuser outlet",
	"separator liquid",
	"second valve outlet",
	"evaporator outlet",
	"suction nozzle outlet",
}

func NewEjectorEconomizedTPI(e *component.Evaporator, r component.HeatReleaser, c *component.Compressor,
	econ *component.EconomizerTPI, ej *component.Ejector, opts ...Option) (*EjectorEconomizedTPI, error) {
	b, err := newBase(TopologyEjectorEconomizerTPI, e, r, c, opts, true, false)
	if err != nil {
		return nil, err
	}
	if econ == nil {
		return nil, failure.Configf("%s cycle needs an economizer", TopologyEjectorEconomizerTPI)
	}
	if err := needEjector(TopologyEjectorEconomizerTPI, ej); err != nil {
		return nil, err
	}
	p5, p14 := r.Outlet(), e.Outlet()
	hot := func(pi float64) (fluid.Point, error) {
		p6, _, err := throttle(p5, pi)
		if err != nil {
			return fluid.Point{}, err
		}
		return economizerHotOutlet(p5, p6, econ.TemperatureDifference())
	}
	pi, flows, err := ejectorStage(&b, ej, hot)
	if err != nil {
		return nil, err
	}
	x := ejected{ejector: ej, flows: flows}
	p6, _, err := throttle(p5, pi)
	if err != nil {
		return nil, err
	}
	p8, err := economizerHotOutlet(p5, p6, econ.TemperatureDifference())
	if err != nil {
		return nil, err
	}
	p1, p12, err := x.separate()
	if err != nil {
		return nil, err
	}
	p2, p2s, err := c.Compress(p1, pi)
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
	mn := x.NozzleFlow()
	m := mn * (p2.Enthalpy() + p5.Enthalpy() - p8.Enthalpy() - p3.Enthalpy()) / (p3.Enthalpy() - p6.Enthalpy())
	if err := positiveFlow("injection flow", m); err != nil {
		return nil, err
	}
	p7, err := injected(p6.Fluid(), pi, p6.Enthalpy()+mn*(p5.Enthalpy()-p8.Enthalpy())/m)
	if err != nil {
		return nil, err
	}
	p13, err := p12.IsenthalpicExpansionTo(e.Pressure())
	if err != nil {
		return nil, err
	}

	total := mn + m
	b.labels = ejectorEconomizedTPILabels
	b.points = []fluid.Point{p1, p2, p3, p4, p5, p6, p7, p8,
		flows.NozzleOutlet, flows.MixingInlet, flows.DiffuserOutlet, p12, p13, p14, flows.SuctionOutlet}
	b.isentropic[2] = p2s
	b.isentropic[4] = p4s
	b.work = mn*(p2.Enthalpy()-p1.Enthalpy()) + total*(p4.Enthalpy()-p3.Enthalpy())
	b.isentropicWork = mn*(p2s.Enthalpy()-p1.Enthalpy()) + total*(p4s.Enthalpy()-p3.Enthalpy())
	b.cooling = p14.Enthalpy() - p13.Enthalpy()
	b.heating = total * (p4.Enthalpy() - p5.Enthalpy())
	b.legs = append([]entropy.Leg{
		b.releaserLeg(total, p4s),
		entropy.NewLeg(entropy.ExpansionValves, entropy.Adiabatic, m, p5, p6).Add(1, p12, p13),
		entropy.NewLeg(entropy.Economizer, entropy.Adiabatic, m, p6, p7).Add(mn, p5, p8),
		entropy.NewLeg(entropy.Mixing, entropy.Adiabatic, mn, p2, p3).Add(m, p7, p3),
		b.evaporatorLeg(p13),
	}, x.legs(p1, p12, p8, p14)...)
	if err := b.finish(log.Fields{"pi": pi, "pd": flows.DiffuserOutlet.Pressure(), "nozzle": mn, "injection": m}); err != nil {
		return nil, err
	}
	return &EjectorEconomizedTPI{
		base:       b,
		injection:  injection{staged: staged{intermediate: pi}, flow: m},
		ejected:    x,
		economizer: econ,
	}, nil
}

func (c *EjectorEconomizedTPI) Economizer() *component.EconomizerTPI { return c.economizer }
