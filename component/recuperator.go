package component

// Recuperator transfers heat from the liquid line to the suction line.
// The hot stream outlet is cooled to the hot inlet temperature minus the
// temperature difference.
type Recuperator struct {
	temperatureDifference float64
}

func NewRecuperator(temperatureDifference float64) (*Recuperator, error) {
	if err := between("recuperator temperature difference", temperatureDifference, 0, MaxTemperatureOffset, "K"); err != nil {
		return nil, err
	}
	return &Recuperator{temperatureDifference: temperatureDifference}, nil
}

func (r *Recuperator) TemperatureDifference() float64 { return r.temperatureDifference }
