package cycle

import (
	"strconv"

	"vcrc/component"
	"vcrc/failure"
	"vcrc/fluid"
	"vcrc/model"
)

// R744 gas coolers may omit the pressure and use the optimal high pressure.
func heatReleaser(f *fluid.Fluid, req model.CycleRequest) (component.HeatReleaser, error) {
	switch {
	case req.Condenser != nil && req.GasCooler != nil:
		return nil, failure.Configf("cycle %q sets both a condenser and a gas cooler", req.Name)
	case req.Condenser != nil:
		return component.NewCondenser(f, fluid.FromCelsius(req.Condenser.Temperature), req.Condenser.Subcooling)
	case req.GasCooler != nil && req.GasCooler.Pressure == 0:
		return component.NewGasCoolerOptimal(f, fluid.FromCelsius(req.GasCooler.Temperature))
	case req.GasCooler != nil:
		return component.NewGasCooler(f, fluid.FromCelsius(req.GasCooler.Temperature), req.GasCooler.Pressure*1e3)
	}
	return nil, failure.Configf("cycle %q needs a condenser or a gas cooler", req.Name)
}

func recuperator(req model.CycleRequest) (*component.Recuperator, error) {
	if req.Recuperator == nil {
		return nil, failure.Configf("%s cycle needs a recuperator", req.Topology)
	}
	return component.NewRecuperator(req.Recuperator.TemperatureDifference)
}

func economizer(req model.CycleRequest) (*component.Economizer, error) {
	if req.Economizer == nil {
		return nil, failure.Configf("%s cycle needs an economizer", req.Topology)
	}
	return component.NewEconomizer(req.Economizer.TemperatureDifference, req.Economizer.Superheat)
}

func economizerTPI(req model.CycleRequest) (*component.EconomizerTPI, error) {
	if req.Economizer == nil {
		return nil, failure.Configf("%s cycle needs an economizer", req.Topology)
	}
	return component.NewEconomizerTPI(req.Economizer.TemperatureDifference)
}

func ejector(req model.CycleRequest) (*component.Ejector, error) {
	if req.Ejector == nil {
		return nil, failure.Configf("%s cycle needs an ejector", req.Topology)
	}
	return component.NewEjector(req.Ejector.NozzleEfficiency/100, req.Ejector.SuctionEfficiency/100, req.Ejector.DiffuserEfficiency/100)
}

func built[T Cycle](c T, err error) (Cycle, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Build creates the cycle described by req.
func Build(req model.CycleRequest, oracle fluid.Oracle, opts ...Option) (Cycle, error) {
	f, err := fluid.New(fluid.Refrigerant(req.Refrigerant), oracle)
	if err != nil {
		return nil, err
	}
	e, err := component.NewEvaporator(f, fluid.FromCelsius(req.Evaporator.Temperature), req.Evaporator.Superheat)
	if err != nil {
		return nil, err
	}
	r, err := heatReleaser(f, req)
	if err != nil {
		return nil, err
	}
	c, err := component.NewCompressor(req.CompressorEfficiency / 100)
	if err != nil {
		return nil, err
	}
	if req.IntermediatePressure != 0 {
		v, err := component.NewIntermediateVessel(req.IntermediatePressure * 1e3)
		if err != nil {
			return nil, err
		}
		opts = append(opts[:len(opts):len(opts)], Vessel(v))
	}

	switch Topology(req.Topology) {
	case TopologySimple:
		return built(NewSimple(e, r, c, opts...))
	case TopologyRecuperator:
		rec, err := recuperator(req)
		if err != nil {
			return nil, err
		}
		return built(NewRecuperative(e, r, c, rec, opts...))
	case TopologyIIC:
		return built(NewIncompleteIntercooling(e, r, c, opts...))
	case TopologyCIC:
		return built(NewCompleteIntercooling(e, r, c, opts...))
	case TopologyPC:
		return built(NewParallelCompression(e, r, c, opts...))
	case TopologyEconomizer:
		econ, err := economizer(req)
		if err != nil {
			return nil, err
		}
		return built(NewEconomized(e, r, c, econ, opts...))
	case TopologyEconomizerPC:
		econ, err := economizer(req)
		if err != nil {
			return nil, err
		}
		return built(NewEconomizedParallel(e, r, c, econ, opts...))
	case TopologyEconomizerTPI:
		econ, err := economizerTPI(req)
		if err != nil {
			return nil, err
		}
		return built(NewEconomizedTPI(e, r, c, econ, opts...))
	case TopologyEjector:
		ej, err := ejector(req)
		if err != nil {
			return nil, err
		}
		return built(NewEjectorExpansion(e, r, c, ej, opts...))
	case TopologyEjectorEconomizerPC:
		econ, err := economizer(req)
		if err != nil {
			return nil, err
		}
		ej, err := ejector(req)
		if err != nil {
			return nil, err
		}
		return built(NewEjectorEconomizedParallel(e, r, c, econ, ej, opts...))
	case TopologyEjectorEconomizerTPI:
		econ, err := economizerTPI(req)
		if err != nil {
			return nil, err
		}
		ej, err := ejector(req)
		if err != nil {
			return nil, err
		}
		return built(NewEjectorEconomizedTPI(e, r, c, econ, ej, opts...))
	case TopologyZubadan:
		rec, err := recuperator(req)
		if err != nil {
			return nil, err
		}
		econ, err := economizerTPI(req)
		if err != nil {
			return nil, err
		}
		return built(NewZubadan(e, r, c, rec, econ, opts...))
	}
	return nil, failure.Configf("unknown topology %q", req.Topology)
}

// Report converts a built cycle to the outer units. The entropy analysis
// runs when boundary is set.
func Report(c Cycle, name string, boundary *model.Boundary) (model.CycleResult, error) {
	res := model.CycleResult{
		Name:                   name,
		Topology:               string(c.Topology()),
		Refrigerant:            string(c.Fluid().Name()),
		SpecificWork:           c.SpecificWork() / 1e3,
		IsentropicSpecificWork: c.IsentropicSpecificWork() / 1e3,
		CoolingCapacity:        c.SpecificCoolingCapacity() / 1e3,
		HeatingCapacity:        c.SpecificHeatingCapacity() / 1e3,
		EER:                    c.EER(),
		COP:                    c.COP(),
	}
	if s, ok := c.(HasIntermediatePressure); ok {
		res.IntermediatePressure = s.IntermediatePressure() / 1e3
	}
	for i, p := range c.Points() {
		n := i + 1
		if s, ok := c.IsentropicPoint(n); ok {
			res.Points = append(res.Points, pointData(pointIndex(n, true), "isentropic "+c.Label(n), s))
		}
		res.Points = append(res.Points, pointData(strconv.Itoa(n), c.Label(n), p))
	}
	if boundary == nil {
		return res, nil
	}
	a, err := c.EntropyAnalysis(fluid.FromCelsius(boundary.Indoor), fluid.FromCelsius(boundary.Outdoor))
	if err != nil {
		return model.CycleResult{}, err
	}
	ratios := make(map[string]float64, len(a.Ratios))
	for cat, v := range a.Ratios {
		ratios[cat.String()] = v
	}
	res.Analysis = &model.Analysis{
		Mode:             string(a.Mode),
		Ratios:           ratios,
		MinimumWorkRatio: a.MinimumWorkRatio,
		Perfection:       a.Perfection,
		RelativeError:    a.RelativeError,
	}
	return res, nil
}

func pointData(index, label string, p fluid.Point) model.PointData {
	d := model.PointData{
		Index:       index,
		Label:       label,
		Pressure:    p.Pressure() / 1e3,
		Temperature: fluid.ToCelsius(p.Temperature()),
		Enthalpy:    p.Enthalpy() / 1e3,
		Entropy:     p.Entropy() / 1e3,
		Phase:       p.Phase().String(),
	}
	if x, ok := p.Quality(); ok {
		d.Quality = &x
	}
	return d
}

// Run builds req and reports it with its own boundary temperatures.
func Run(req model.CycleRequest, oracle fluid.Oracle, opts ...Option) (model.CycleResult, error) {
	c, err := Build(req, oracle, opts...)
	if err != nil {
		return model.CycleResult{}, err
	}
	return Report(c, req.Name, req.Boundary)
}
