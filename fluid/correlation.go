package fluid

import (
	"math"

	"vcrc/failure"
)

// IIR reference state: saturated liquid at 0 °C.
const (
	referenceTemperature = CelsiusZero
	referenceEnthalpy    = 200e3 // J/kg
	referenceEntropy     = 1e3   // J/(kg·K)

	watsonExponent = 0.38
	gasConstant    = 8.314462618 // J/(mol·K)
)

// correlation holds the constants of one refrigerant.
//
//	saturation:  ln(P/Pc) = A·(1 - Tc/T),  A = 7/3·(1+ω)·ln 10
//	liquid:      h = h0 + cl·(T-T0),  s = s0 + cl·ln(T/T0)
//	latent heat: L = L0·((Tc-T)/(Tc-T0))^0.38
//	vapor:       measured from the dew line with constant cpv
//	supercritical: continuous at the critical point, ideal-gas pressure term
type correlation struct {
	tc, pc    float64 // critical point, K and Pa
	ttp       float64 // triple point temperature, K
	omega     float64 // acentric factor
	molarMass float64 // kg/mol
	cl, cpv   float64 // liquid and vapor heat capacities, J/(kg·K)
	l0        float64 // latent heat at 0 °C, J/kg
	glide     float64 // K
}

var catalogue = map[Refrigerant]correlation{
	"R32":     {tc: 351.255, pc: 5.782e6, ttp: 136.34, omega: 0.2769, molarMass: 0.052024, cl: 1750, cpv: 1300, l0: 315.3e3},
	"R134a":   {tc: 374.21, pc: 4.05928e6, ttp: 169.85, omega: 0.32684, molarMass: 0.102032, cl: 1340, cpv: 900, l0: 198.6e3},
	"R410A":   {tc: 344.494, pc: 4.90126e6, ttp: 200, omega: 0.296, molarMass: 0.072585, cl: 1530, cpv: 1200, l0: 221.1e3},
	"R407C":   {tc: 359.345, pc: 4.6319e6, ttp: 200, omega: 0.363, molarMass: 0.086204, cl: 1400, cpv: 1000, l0: 215.4e3, glide: 7.1},
	"R290":    {tc: 369.89, pc: 4.2512e6, ttp: 85.525, omega: 0.1521, molarMass: 0.044096, cl: 2450, cpv: 1700, l0: 374.6e3},
	"R717":    {tc: 405.4, pc: 11.333e6, ttp: 195.495, omega: 0.25601, molarMass: 0.017031, cl: 4600, cpv: 2700, l0: 1262.2e3},
	"R744":    {tc: 304.1282, pc: 7.3773e6, ttp: 216.592, omega: 0.22394, molarMass: 0.0440098, cl: 2500, cpv: 2200, l0: 230.9e3},
	"R1234yf": {tc: 367.85, pc: 3.3822e6, ttp: 220, omega: 0.276, molarMass: 0.114042, cl: 1300, cpv: 950, l0: 163.3e3},
}

// CorrelationOracle is a built-in Oracle based on generalized saturation and
// heat capacity correlations. It is stateless and safe for concurrent use.
type CorrelationOracle struct{}

// NewCorrelationOracle returns the built-in oracle.
func NewCorrelationOracle() *CorrelationOracle { return &CorrelationOracle{} }

// Refrigerants lists the fluids the oracle knows.
func (CorrelationOracle) Refrigerants() []Refrigerant {
	names := make([]Refrigerant, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	return names
}

func lookup(r Refrigerant) (correlation, error) {
	c, ok := catalogue[r]
	if !ok {
		return correlation{}, failure.Configf("unknown refrigerant %q", string(r))
	}
	return c, nil
}

func (CorrelationOracle) CriticalPoint(r Refrigerant) (Props, error) {
	c, err := lookup(r)
	if err != nil {
		return Props{}, err
	}
	return Props{
		Pressure:    c.pc,
		Temperature: c.tc,
		Enthalpy:    c.hl(c.tc),
		Entropy:     c.sl(c.tc),
		Quality:     math.NaN(),
		Phase:       Supercritical,
	}, nil
}

func (CorrelationOracle) TriplePoint(r Refrigerant) (Props, error) {
	c, err := lookup(r)
	if err != nil {
		return Props{}, err
	}
	return c.twoPhase(c.ttp, 0), nil
}

func (CorrelationOracle) Glide(r Refrigerant) (float64, error) {
	c, err := lookup(r)
	if err != nil {
		return 0, err
	}
	return c.glide, nil
}

func (CorrelationOracle) State(r Refrigerant, a, b Input) (Props, error) {
	c, err := lookup(r)
	if err != nil {
		return Props{}, err
	}
	if b.Param < a.Param {
		a, b = b, a
	}
	for _, in := range []Input{a, b} {
		if math.IsNaN(in.Value) || math.IsInf(in.Value, 0) {
			return Props{}, failure.Infeasiblef("%v is not finite", in.Param)
		}
	}
	switch {
	case a.Param == ParamPressure && b.Param == ParamTemperature:
		if err := c.checkPressure(a.Value); err != nil {
			return Props{}, err
		}
		return c.fromPT(a.Value, b.Value)
	case a.Param == ParamPressure && b.Param == ParamEnthalpy:
		if err := c.checkPressure(a.Value); err != nil {
			return Props{}, err
		}
		return c.fromPH(a.Value, b.Value)
	case a.Param == ParamPressure && b.Param == ParamEntropy:
		if err := c.checkPressure(a.Value); err != nil {
			return Props{}, err
		}
		return c.fromPS(a.Value, b.Value)
	case a.Param == ParamPressure && b.Param == ParamQuality:
		if err := c.checkPressure(a.Value); err != nil {
			return Props{}, err
		}
		if a.Value >= c.pc {
			return Props{}, failure.Infeasiblef("quality is undefined at or above the critical pressure")
		}
		if err := checkQuality(b.Value); err != nil {
			return Props{}, err
		}
		return c.twoPhaseAt(a.Value, c.tsat(a.Value), b.Value), nil
	case a.Param == ParamTemperature && b.Param == ParamQuality:
		if a.Value < c.ttp || a.Value >= c.tc {
			return Props{}, failure.Infeasiblef(
				"saturation temperature %g K outside [%g, %g) K", a.Value, c.ttp, c.tc)
		}
		if err := checkQuality(b.Value); err != nil {
			return Props{}, err
		}
		return c.twoPhase(a.Value, b.Value), nil
	}
	return Props{}, failure.Configf("unsupported input pair (%v, %v)", a.Param, b.Param)
}

func checkQuality(x float64) error {
	if x < 0 || x > 1 {
		return failure.Infeasiblef("quality %g outside [0, 1]", x)
	}
	return nil
}

func (c correlation) checkPressure(p float64) error {
	if p <= 0 {
		return failure.Infeasiblef("pressure %g Pa must be positive", p)
	}
	if p < c.psat(c.ttp) {
		return failure.Infeasiblef("pressure %g Pa below the triple point pressure", p)
	}
	return nil
}

func (c correlation) slope() float64 { return 7.0 / 3.0 * (1 + c.omega) * math.Ln10 }

func (c correlation) psat(t float64) float64 { return c.pc * math.Exp(c.slope()*(1-c.tc/t)) }

func (c correlation) tsat(p float64) float64 { return c.tc / (1 - math.Log(p/c.pc)/c.slope()) }

func (c correlation) hl(t float64) float64 {
	return referenceEnthalpy + c.cl*(t-referenceTemperature)
}

func (c correlation) sl(t float64) float64 {
	return referenceEntropy + c.cl*math.Log(t/referenceTemperature)
}

func (c correlation) latent(t float64) float64 {
	if t >= c.tc {
		return 0
	}
	return c.l0 * math.Pow((c.tc-t)/(c.tc-referenceTemperature), watsonExponent)
}

func (c correlation) hg(t float64) float64 { return c.hl(t) + c.latent(t) }

func (c correlation) sg(t float64) float64 { return c.sl(t) + c.latent(t)/t }

func (c correlation) rg() float64 { return gasConstant / c.molarMass }

func (c correlation) twoPhase(t, x float64) Props {
	return c.twoPhaseAt(c.psat(t), t, x)
}

func (c correlation) twoPhaseAt(p, t, x float64) Props {
	l := c.latent(t)
	return Props{
		Pressure:    p,
		Temperature: t,
		Enthalpy:    c.hl(t) + x*l,
		Entropy:     c.sl(t) + x*l/t,
		Quality:     x,
		Phase:       TwoPhase,
	}
}

func (c correlation) checkTemperature(t float64) error {
	if t < c.ttp {
		return failure.Infeasiblef("temperature %g K below the triple point %g K", t, c.ttp)
	}
	return nil
}

func (c correlation) liquid(p, t float64) (Props, error) {
	if err := c.checkTemperature(t); err != nil {
		return Props{}, err
	}
	return Props{
		Pressure:    p,
		Temperature: t,
		Enthalpy:    c.hl(t),
		Entropy:     c.sl(t),
		Quality:     math.NaN(),
		Phase:       Liquid,
	}, nil
}

func (c correlation) vapor(p, t, ts float64) Props {
	out := Props{
		Pressure:    p,
		Temperature: t,
		Enthalpy:    c.hg(ts) + c.cpv*(t-ts),
		Entropy:     c.sg(ts) + c.cpv*math.Log(t/ts),
		Quality:     math.NaN(),
		Phase:       Gas,
	}
	if t > c.tc {
		out.Phase = SupercriticalGas
	}
	return out
}

func (c correlation) supercritical(p, t float64) (Props, error) {
	if err := c.checkTemperature(t); err != nil {
		return Props{}, err
	}
	pressureTerm := c.rg() * math.Log(p/c.pc)
	out := Props{Pressure: p, Temperature: t, Quality: math.NaN()}
	if t <= c.tc {
		out.Enthalpy = c.hl(t)
		out.Entropy = c.sl(t) - pressureTerm
		out.Phase = SupercriticalLiquid
		return out, nil
	}
	out.Enthalpy = c.hl(c.tc) + c.cpv*(t-c.tc)
	out.Entropy = c.sl(c.tc) + c.cpv*math.Log(t/c.tc) - pressureTerm
	out.Phase = Supercritical
	return out, nil
}

func (c correlation) fromPT(p, t float64) (Props, error) {
	if p >= c.pc {
		return c.supercritical(p, t)
	}
	ts := c.tsat(p)
	if t < ts {
		return c.liquid(p, t)
	}
	return c.vapor(p, t, ts), nil
}

func (c correlation) fromPH(p, h float64) (Props, error) {
	if p >= c.pc {
		hc := c.hl(c.tc)
		if h <= hc {
			return c.supercritical(p, referenceTemperature+(h-referenceEnthalpy)/c.cl)
		}
		return c.supercritical(p, c.tc+(h-hc)/c.cpv)
	}
	ts := c.tsat(p)
	hl, hg := c.hl(ts), c.hg(ts)
	switch {
	case h < hl:
		return c.liquid(p, referenceTemperature+(h-referenceEnthalpy)/c.cl)
	case h > hg:
		return c.vapor(p, ts+(h-hg)/c.cpv, ts), nil
	}
	return c.twoPhaseAt(p, ts, (h-hl)/(hg-hl)), nil
}

func (c correlation) fromPS(p, s float64) (Props, error) {
	if p >= c.pc {
		adjusted := s + c.rg()*math.Log(p/c.pc)
		sc := c.sl(c.tc)
		if adjusted <= sc {
			return c.supercritical(p, referenceTemperature*math.Exp((adjusted-referenceEntropy)/c.cl))
		}
		return c.supercritical(p, c.tc*math.Exp((adjusted-sc)/c.cpv))
	}
	ts := c.tsat(p)
	sl, sg := c.sl(ts), c.sg(ts)
	switch {
	case s < sl:
		return c.liquid(p, referenceTemperature*math.Exp((s-referenceEntropy)/c.cl))
	case s > sg:
		return c.vapor(p, ts*math.Exp((s-sg)/c.cpv), ts), nil
	}
	return c.twoPhaseAt(p, ts, (s-sl)/(sg-sl)), nil
}
