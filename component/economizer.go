package component

// Economizer is a plate heat exchanger fed by a throttled share of the liquid.
// The injected stream leaves with the given superheat; the main liquid leaves
// the temperature difference above the intermediate saturation temperature.
type Economizer struct {
	superheat             float64
	temperatureDifference float64
}

func NewEconomizer(temperatureDifference, superheat float64) (*Economizer, error) {
	if err := between("economizer temperature difference", temperatureDifference, 0, MaxTemperatureOffset, "K"); err != nil {
		return nil, err
	}
	if err := within("economizer superheat", superheat, 0, MaxTemperatureOffset, "K"); err != nil {
		return nil, err
	}
	return &Economizer{superheat: superheat, temperatureDifference: temperatureDifference}, nil
}

func (e *Economizer) Superheat() float64             { return e.superheat }
func (e *Economizer) TemperatureDifference() float64 { return e.temperatureDifference }

// EconomizerTPI injects two-phase refrigerant into the compressor between stages.
type EconomizerTPI struct {
	temperatureDifference float64
}

func NewEconomizerTPI(temperatureDifference float64) (*EconomizerTPI, error) {
	if err := between("economizer temperature difference", temperatureDifference, 0, MaxTemperatureOffset, "K"); err != nil {
		return nil, err
	}
	return &EconomizerTPI{temperatureDifference: temperatureDifference}, nil
}

func (e *EconomizerTPI) TemperatureDifference() float64 { return e.temperatureDifference }
