package entropy

import (
	"math"

	log "github.com/sirupsen/logrus"

	"vcrc/failure"
)

// Cycle is what the analyzer needs from a built cycle. Compressor legs are
// not listed: their loss is the gap between real and isentropic work.
type Cycle interface {
	EvaporatingTemperature() float64
	HeatReleaserTemperature() float64
	SpecificCoolingCapacity() float64
	SpecificWork() float64
	IsentropicSpecificWork() float64
	Legs() []Leg
}

// Mode is cooling when the indoor side is the colder one.
type Mode string

const (
	Cooling Mode = "cooling"
	Heating Mode = "heating"
)

// Result is the loss breakdown of one cycle. Ratios are percentages of the
// reconstructed work, so they add up to 100 together with MinimumWorkRatio.
type Result struct {
	Mode             Mode                 `json:"mode" yaml:"mode"`
	ColdTemperature  float64              `json:"cold_temperature" yaml:"cold_temperature"`
	HotTemperature   float64              `json:"hot_temperature" yaml:"hot_temperature"`
	MinimumWork      float64              `json:"minimum_work" yaml:"minimum_work"`
	Losses           map[Category]float64 `json:"losses" yaml:"losses"`
	Ratios           map[Category]float64 `json:"ratios" yaml:"ratios"`
	MinimumWorkRatio float64              `json:"minimum_work_ratio" yaml:"minimum_work_ratio"`
	Perfection       float64              `json:"perfection" yaml:"perfection"`
	RelativeError    float64              `json:"relative_error" yaml:"relative_error"`
}

// Sum adds every ratio and the minimum work ratio.
func (r Result) Sum() float64 {
	sum := r.MinimumWorkRatio
	for _, c := range Categories() {
		sum += r.Ratios[c]
	}
	return sum
}

// Analyze splits the specific work of c between the minimum reversible work
// and the component losses. indoor and outdoor are the boundary temperatures
// in K; the colder one is the heat source.
func Analyze(c Cycle, indoor, outdoor float64) (Result, error) {
	if math.IsNaN(indoor) || math.IsNaN(outdoor) || indoor <= 0 || outdoor <= 0 {
		return Result{}, failure.Boundaryf("boundary temperatures should be positive, got %g K and %g K", indoor, outdoor)
	}
	if indoor == outdoor {
		return Result{}, failure.Boundaryf("indoor and outdoor temperatures should differ, both are %g K", indoor)
	}
	mode, cold, hot := Cooling, indoor, outdoor
	if indoor > outdoor {
		mode, cold, hot = Heating, outdoor, indoor
	}
	if te := c.EvaporatingTemperature(); cold <= te {
		return Result{}, failure.Boundaryf("heat source temperature (%g K) should be higher than the evaporating temperature (%g K)", cold, te)
	}
	if tk := c.HeatReleaserTemperature(); hot >= tk {
		return Result{}, failure.Boundaryf("heat sink temperature (%g K) should be lower than the heat releaser temperature (%g K)", hot, tk)
	}

	res := Result{
		Mode:            mode,
		ColdTemperature: cold,
		HotTemperature:  hot,
		MinimumWork:     c.SpecificCoolingCapacity() * (hot - cold) / cold,
		Losses:          make(map[Category]float64, categoryCount),
		Ratios:          make(map[Category]float64, categoryCount),
	}
	for _, cat := range Categories() {
		res.Losses[cat] = 0
	}
	for _, leg := range c.Legs() {
		res.Losses[leg.Category] += hot * leg.EntropyGeneration(cold, hot)
	}
	isentropic := res.MinimumWork
	for _, cat := range Categories() {
		isentropic += res.Losses[cat]
	}
	w, ws := c.SpecificWork(), c.IsentropicSpecificWork()
	res.Losses[Compressor] = w - ws
	total := isentropic + res.Losses[Compressor]

	for _, cat := range Categories() {
		res.Ratios[cat] = res.Losses[cat] / total * 100
	}
	res.MinimumWorkRatio = res.MinimumWork / total * 100
	res.Perfection = res.MinimumWork / w * 100
	res.RelativeError = math.Abs(isentropic-ws) / ws * 100

	log.WithFields(log.Fields{
		"mode":          mode,
		"perfection":    res.Perfection,
		"relativeError": res.RelativeError,
	}).Debug("entropy analysis done")
	return res, nil
}
