package fluid

import (
	"regexp"

	"vcrc/failure"
)

// Refrigerant is the identity of a working fluid, e.g. "R32" or "R744".
type Refrigerant string

var refrigerantName = regexp.MustCompile(`^R\d+[A-Za-z]*$`)

// Validate checks the ASHRAE naming convention. Plain fluid names such as
// "Water" are rejected even when an oracle knows them.
func (r Refrigerant) Validate() error {
	if !refrigerantName.MatchString(string(r)) {
		return failure.Configf("the selected fluid %q is not a refrigerant (its name should start with 'R')", string(r))
	}
	return nil
}

func (r Refrigerant) String() string { return string(r) }

// Zero of the Celsius scale in kelvin.
const CelsiusZero = 273.15

// FromCelsius converts °C to K.
func FromCelsius(t float64) float64 { return t + CelsiusZero }

// ToCelsius converts K to °C.
func ToCelsius(t float64) float64 { return t - CelsiusZero }
