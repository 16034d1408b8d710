package cycle

import (
	"vcrc/failure"
	"vcrc/fluid"
)

// throttle expands in to pressure and requires a two-phase result.
func throttle(in fluid.Point, pressure float64) (fluid.Point, float64, error) {
	out, err := in.IsenthalpicExpansionTo(pressure)
	if err != nil {
		return fluid.Point{}, 0, err
	}
	x, ok := out.Quality()
	if !ok || x <= 0 || x >= 1 {
		return fluid.Point{}, 0, failure.Infeasiblef("throttled refrigerant should be two-phase at %g Pa, got %v", pressure, out.Phase())
	}
	return out, x, nil
}

// flash throttles in into a separator vessel at pressure and returns the
// vessel inlet, its saturated vapor and liquid outlets and the vapor share.
func flash(in fluid.Point, pressure float64) (inlet, vapor, liquid fluid.Point, x float64, err error) {
	if inlet, x, err = throttle(in, pressure); err != nil {
		return
	}
	if vapor, err = inlet.DewPoint(); err != nil {
		return
	}
	liquid, err = inlet.BubblePoint()
	return
}

// superheated returns the dew point at the pressure of p heated by superheat.
func superheated(p fluid.Point, superheat float64) (fluid.Point, error) {
	dew, err := p.DewPoint()
	if err != nil || superheat == 0 {
		return dew, err
	}
	return dew.HeatingTo(dew.Temperature() + superheat)
}

// economizerHotOutlet cools the liquid hot to the cold side inlet temperature
// plus the pinch temperature difference.
func economizerHotOutlet(hot, cold fluid.Point, dt float64) (fluid.Point, error) {
	t := cold.Temperature() + dt
	if t >= hot.Temperature() {
		return fluid.Point{}, failure.Infeasiblef("economizer temperature difference %g K is too large: hot side enters at %g K, cold side at %g K",
			dt, hot.Temperature(), cold.Temperature())
	}
	return hot.CoolingTo(t)
}

// economizerColdOutlet is the superheated injection vapor, which has to stay
// colder than the liquid heating it.
func economizerColdOutlet(cold, hot fluid.Point, superheat float64) (fluid.Point, error) {
	out, err := superheated(cold, superheat)
	if err != nil {
		return fluid.Point{}, err
	}
	if out.Temperature() >= hot.Temperature() {
		return fluid.Point{}, failure.Infeasiblef("economizer superheat %g K is too large: injected vapor would leave at %g K, above the liquid at %g K",
			superheat, out.Temperature(), hot.Temperature())
	}
	return out, nil
}

// injected returns the economizer cold outlet of a two-phase injection line
// at enthalpy h, which has to stay inside the dome.
func injected(f *fluid.Fluid, pressure, h float64) (fluid.Point, error) {
	p, err := f.WithState(fluid.Pressure(pressure), fluid.Enthalpy(h))
	if err != nil {
		return fluid.Point{}, err
	}
	if _, ok := p.Quality(); !ok {
		return fluid.Point{}, failure.Infeasiblef("injected refrigerant should be two-phase, got %v at %g Pa", p.Phase(), pressure)
	}
	return p, nil
}

func positiveFlow(name string, m float64) error {
	if !(m > 0) {
		return failure.Infeasiblef("%s should be positive, got %g", name, m)
	}
	return nil
}
