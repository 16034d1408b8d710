// Package cycle builds vapor compression cycles. Every topology chains state
// points with the fluid transition algebra, closes its flow or pressure
// balance and exposes the same accessors, so reports and the entropy
// analysis never need to know which topology they look at.
package cycle

import (
	"math"
	"strconv"

	log "github.com/sirupsen/logrus"

	"vcrc/component"
	"vcrc/entropy"
	"vcrc/failure"
	"vcrc/fluid"
	"vcrc/solver"
)

type Topology string

const (
	TopologySimple               Topology = "simple"
	TopologyRecuperator          Topology = "recuperator"
	TopologyIIC                  Topology = "iic"
	TopologyCIC                  Topology = "cic"
	TopologyPC                   Topology = "pc"
	TopologyEconomizer           Topology = "economizer"
	TopologyEconomizerPC         Topology = "economizer-pc"
	TopologyEconomizerTPI        Topology = "economizer-tpi"
	TopologyEjector              Topology = "ejector"
	TopologyEjectorEconomizerPC  Topology = "ejector-economizer-pc"
	TopologyEjectorEconomizerTPI Topology = "ejector-economizer-tpi"
	TopologyZubadan              Topology = "zubadan"
)

// Topologies lists every supported topology.
func Topologies() []Topology {
	return []Topology{
		TopologySimple, TopologyRecuperator, TopologyIIC, TopologyCIC, TopologyPC,
		TopologyEconomizer, TopologyEconomizerPC, TopologyEconomizerTPI,
		TopologyEjector, TopologyEjectorEconomizerPC, TopologyEjectorEconomizerTPI,
		TopologyZubadan,
	}
}

// Cycle is a built cycle. Points are numbered from 1; flows and specific
// quantities are per unit of evaporator flow.
type Cycle interface {
	Topology() Topology
	Fluid() *fluid.Fluid
	Evaporator() *component.Evaporator
	HeatReleaser() component.HeatReleaser
	Compressor() *component.Compressor

	// Points returns the state points in order, point n at index n-1.
	Points() []fluid.Point
	// Point returns the zero Point when n is out of range.
	Point(n int) fluid.Point
	Label(n int) string
	// IsentropicPoint returns the isentropic reference of compressor outlet n.
	IsentropicPoint(n int) (fluid.Point, bool)

	SpecificWork() float64
	IsentropicSpecificWork() float64
	SpecificCoolingCapacity() float64
	SpecificHeatingCapacity() float64
	EER() float64
	COP() float64

	EvaporatingTemperature() float64
	HeatReleaserTemperature() float64
	Legs() []entropy.Leg
	EntropyAnalysis(indoor, outdoor float64) (entropy.Result, error)
}

// HasIntermediatePressure is implemented by two-stage and economized cycles.
type HasIntermediatePressure interface {
	IntermediatePressure() float64
}

// HasEconomizer is implemented by cycles with an economizer or an injection line.
type HasEconomizer interface {
	HasIntermediatePressure
	// InjectionFlow is the flow through the economizer cold side.
	InjectionFlow() float64
}

type HasRecuperator interface {
	Recuperator() *component.Recuperator
}

type HasEjector interface {
	Ejector() *component.Ejector
	EjectorFlows() component.EjectorFlows
}

type settings struct {
	vessel *component.IntermediateVessel
	solver solver.Options
}

// Option tunes a cycle build.
type Option func(*settings)

// Vessel pins the intermediate pressure. Without it two-stage cycles use the
// geometric mean of the evaporating and heat releaser pressures.
func Vessel(v *component.IntermediateVessel) Option {
	return func(s *settings) { s.vessel = v }
}

// SolverOptions bounds the root searches of the build.
func SolverOptions(o solver.Options) Option {
	return func(s *settings) { s.solver = o }
}

func newSettings(opts []Option) settings {
	s := settings{solver: solver.DefaultOptions()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s settings) intermediatePressure(low, high float64) (float64, error) {
	if s.vessel == nil {
		return math.Sqrt(low * high), nil
	}
	if err := s.vessel.Check(low, high); err != nil {
		return 0, err
	}
	return s.vessel.Pressure(), nil
}

type base struct {
	topology   Topology
	evaporator *component.Evaporator
	releaser   component.HeatReleaser
	compressor *component.Compressor
	settings   settings

	points     []fluid.Point
	labels     []string
	isentropic map[int]fluid.Point
	legs       []entropy.Leg

	work           float64
	isentropicWork float64
	cooling        float64
	heating        float64
}

// multiStream cycles mix or split refrigerant flows; staged cycles use the
// intermediate pressure.
func newBase(t Topology, e *component.Evaporator, r component.HeatReleaser, c *component.Compressor,
	opts []Option, multiStream, usesVessel bool) (base, error) {
	if e == nil || r == nil || c == nil {
		return base{}, failure.Configf("%s cycle needs an evaporator, a heat releaser and a compressor", t)
	}
	if !e.Fluid().SameAs(r.Fluid()) {
		return base{}, failure.Configf("evaporator (%v) and heat releaser (%v) should use the same refrigerant",
			e.Fluid(), r.Fluid())
	}
	if r.Temperature() <= e.Temperature() {
		return base{}, failure.Configf("condensing temperature (%g K) should be greater than evaporating temperature (%g K)",
			r.Temperature(), e.Temperature())
	}
	if multiStream && e.Fluid().HasGlide() {
		return base{}, failure.Configf("%s cycle needs a refrigerant without temperature glide, %v has %g K",
			t, e.Fluid(), e.Fluid().Glide())
	}
	s := newSettings(opts)
	if s.vessel != nil && !usesVessel {
		return base{}, failure.Configf("%s cycle has no intermediate pressure to set", t)
	}
	return base{
		topology:   t,
		evaporator: e,
		releaser:   r,
		compressor: c,
		settings:   s,
		isentropic: make(map[int]fluid.Point),
	}, nil
}

func (b *base) Topology() Topology                   { return b.topology }
func (b *base) Fluid() *fluid.Fluid                  { return b.evaporator.Fluid() }
func (b *base) Evaporator() *component.Evaporator    { return b.evaporator }
func (b *base) HeatReleaser() component.HeatReleaser { return b.releaser }
func (b *base) Compressor() *component.Compressor    { return b.compressor }

func (b *base) Points() []fluid.Point {
	return append([]fluid.Point(nil), b.points...)
}

func (b *base) Point(n int) fluid.Point {
	if n < 1 || n > len(b.points) {
		return fluid.Point{}
	}
	return b.points[n-1]
}

func (b *base) Label(n int) string {
	if n < 1 || n > len(b.labels) {
		return ""
	}
	return b.labels[n-1]
}

func (b *base) IsentropicPoint(n int) (fluid.Point, bool) {
	p, ok := b.isentropic[n]
	return p, ok
}

func (b *base) SpecificWork() float64            { return b.work }
func (b *base) IsentropicSpecificWork() float64  { return b.isentropicWork }
func (b *base) SpecificCoolingCapacity() float64 { return b.cooling }
func (b *base) SpecificHeatingCapacity() float64 { return b.heating }
func (b *base) EER() float64                     { return b.cooling / b.work }
func (b *base) COP() float64                     { return b.heating / b.work }
func (b *base) EvaporatingTemperature() float64  { return b.evaporator.Temperature() }
func (b *base) HeatReleaserTemperature() float64 { return b.releaser.Temperature() }

func (b *base) Legs() []entropy.Leg {
	return append([]entropy.Leg(nil), b.legs...)
}

func (b *base) EntropyAnalysis(indoor, outdoor float64) (entropy.Result, error) {
	return entropy.Analyze(b, indoor, outdoor)
}

func (b *base) releaserCategory() entropy.Category {
	if b.releaser.Transcritical() {
		return entropy.GasCooler
	}
	return entropy.Condenser
}

// releaserLeg starts from the isentropic outlets of the compression stages
// discharging into the heat releaser.
func (b *base) releaserLeg(flow float64, in fluid.Point) entropy.Leg {
	return entropy.NewLeg(b.releaserCategory(), entropy.HeatRelease, flow, in, b.releaser.Outlet())
}

func (b *base) evaporatorLeg(in fluid.Point) entropy.Leg {
	return entropy.NewLeg(entropy.Evaporator, entropy.HeatAbsorption, 1, in, b.evaporator.Outlet())
}

// finish checks the aggregates and logs the build.
func (b *base) finish(fields log.Fields) error {
	for name, v := range map[string]float64{
		"specific work":            b.work,
		"isentropic specific work": b.isentropicWork,
		"cooling capacity":         b.cooling,
		"heating capacity":         b.heating,
	} {
		if !(v > 0) || math.IsInf(v, 0) {
			return failure.Infeasiblef("%s cycle has a non-positive %s (%g J/kg)", b.topology, name, v)
		}
	}
	entry := log.WithFields(log.Fields{
		"topology":    b.topology,
		"refrigerant": b.Fluid().Name(),
		"p0":          b.evaporator.Pressure(),
		"pk":          b.releaser.Pressure(),
		"eer":         b.EER(),
	})
	if fields != nil {
		entry = entry.WithFields(fields)
	}
	entry.Debug("cycle built")
	return nil
}

// pointIndex formats a point number, with an "s" suffix for isentropic references.
func pointIndex(n int, isentropic bool) string {
	if isentropic {
		return strconv.Itoa(n) + "s"
	}
	return strconv.Itoa(n)
}
