package component

import (
	"vcrc/fluid"
)

// Evaporator fixes the low pressure and the suction state.
type Evaporator struct {
	fluid       *fluid.Fluid
	temperature float64
	superheat   float64
	pressure    float64
	outlet      fluid.Point
}

// NewEvaporator takes the evaporating temperature (K) and the superheat (K).
func NewEvaporator(f *fluid.Fluid, temperature, superheat float64) (*Evaporator, error) {
	if err := saturationTemperature("evaporating", f, temperature); err != nil {
		return nil, err
	}
	if err := within("superheat", superheat, 0, MaxTemperatureOffset, "K"); err != nil {
		return nil, err
	}
	dew, err := f.DewPointAt(fluid.Temperature(temperature))
	if err != nil {
		return nil, err
	}
	outlet := dew
	if superheat > 0 {
		if outlet, err = dew.HeatingTo(temperature + superheat); err != nil {
			return nil, err
		}
	}
	return &Evaporator{
		fluid:       f,
		temperature: temperature,
		superheat:   superheat,
		pressure:    dew.Pressure(),
		outlet:      outlet,
	}, nil
}

func (e *Evaporator) Fluid() *fluid.Fluid  { return e.fluid }
func (e *Evaporator) Temperature() float64 { return e.temperature }
func (e *Evaporator) Superheat() float64   { return e.superheat }
func (e *Evaporator) Pressure() float64    { return e.pressure }
func (e *Evaporator) Outlet() fluid.Point  { return e.outlet }
