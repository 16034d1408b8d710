// Package entropy decomposes the specific work of a cycle into the minimum
// reversible work and the irreversibility of each component.
package entropy

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"vcrc/fluid"
)

// Category groups the legs of a cycle in the loss breakdown.
type Category int

const (
	Compressor Category = iota
	Condenser
	GasCooler
	ExpansionValves
	Evaporator
	Recuperator
	Economizer
	Mixing
	Ejector
	categoryCount
)

var categoryNames = [categoryCount]string{
	"compressor",
	"condenser",
	"gas_cooler",
	"expansion_valves",
	"evaporator",
	"recuperator",
	"economizer",
	"mixing",
	"ejector",
}

// Categories lists every category in report order.
func Categories() []Category {
	out := make([]Category, categoryCount)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

func (c Category) String() string {
	if c < 0 || c >= categoryCount {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

func (c Category) MarshalText() ([]byte, error) {
	if c < 0 || c >= categoryCount {
		return nil, fmt.Errorf("unknown loss category %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	for i, name := range categoryNames {
		if name == string(text) {
			*c = Category(i)
			return nil
		}
	}
	return fmt.Errorf("unknown loss category %q", text)
}

// Kind tells how a leg exchanges heat with the surroundings.
type Kind int

const (
	Adiabatic Kind = iota
	HeatRelease
	HeatAbsorption
)

// Stream is a flow (relative to the evaporator flow) going from In to Out.
type Stream struct {
	Flow float64
	In   fluid.Point
	Out  fluid.Point
}

// Leg is one irreversible process of a cycle.
type Leg struct {
	Category Category
	Kind     Kind
	Streams  []Stream
}

// NewLeg is a shorthand for a leg made of a single stream.
func NewLeg(c Category, k Kind, flow float64, in, out fluid.Point) Leg {
	return Leg{Category: c, Kind: k, Streams: []Stream{{Flow: flow, In: in, Out: out}}}
}

// Add appends a stream to the leg.
func (l Leg) Add(flow float64, in, out fluid.Point) Leg {
	l.Streams = append(l.Streams[:len(l.Streams):len(l.Streams)], Stream{Flow: flow, In: in, Out: out})
	return l
}

// Duty is the heat the leg takes in, J/kg of evaporator flow. It is negative
// for a heat releaser.
func (l Leg) Duty() float64 {
	flows, dh := l.deltas(fluid.Point.Enthalpy)
	return floats.Dot(flows, dh)
}

// EntropyGeneration returns the specific entropy generated by the leg
// exchanging heat with the given sources, J/(kg·K).
func (l Leg) EntropyGeneration(cold, hot float64) float64 {
	flows, ds := l.deltas(fluid.Point.Entropy)
	gen := floats.Dot(flows, ds)
	switch l.Kind {
	case HeatRelease:
		gen -= l.Duty() / hot
	case HeatAbsorption:
		gen -= l.Duty() / cold
	}
	return gen
}

func (l Leg) deltas(prop func(fluid.Point) float64) (flows, delta []float64) {
	flows = make([]float64, len(l.Streams))
	delta = make([]float64, len(l.Streams))
	for i, s := range l.Streams {
		flows[i] = s.Flow
		delta[i] = prop(s.Out) - prop(s.In)
	}
	return flows, delta
}
