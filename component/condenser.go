package component

import (
	"vcrc/fluid"
)

// Condenser fixes the high pressure of a subcritical cycle.
type Condenser struct {
	fluid       *fluid.Fluid
	temperature float64
	subcooling  float64
	pressure    float64
	outlet      fluid.Point
}

// NewCondenser takes the condensing temperature (K) and the subcooling (K).
func NewCondenser(f *fluid.Fluid, temperature, subcooling float64) (*Condenser, error) {
	if err := saturationTemperature("condensing", f, temperature); err != nil {
		return nil, err
	}
	if err := within("subcooling", subcooling, 0, MaxTemperatureOffset, "K"); err != nil {
		return nil, err
	}
	bubble, err := f.BubblePointAt(fluid.Temperature(temperature))
	if err != nil {
		return nil, err
	}
	outlet := bubble
	if subcooling > 0 {
		if outlet, err = bubble.CoolingTo(temperature - subcooling); err != nil {
			return nil, err
		}
	}
	return &Condenser{
		fluid:       f,
		temperature: temperature,
		subcooling:  subcooling,
		pressure:    bubble.Pressure(),
		outlet:      outlet,
	}, nil
}

func (c *Condenser) Fluid() *fluid.Fluid  { return c.fluid }
func (c *Condenser) Temperature() float64 { return c.temperature }
func (c *Condenser) Subcooling() float64  { return c.subcooling }
func (c *Condenser) Pressure() float64    { return c.pressure }
func (c *Condenser) Outlet() fluid.Point  { return c.outlet }
func (c *Condenser) Transcritical() bool  { return false }
