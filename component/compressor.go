package component

import (
	"vcrc/fluid"
)

// Compressor has a fixed isentropic efficiency, a decimal fraction.
type Compressor struct {
	efficiency float64
}

func NewCompressor(efficiency float64) (*Compressor, error) {
	if err := between("compressor isentropic efficiency", efficiency, 0, 1, ""); err != nil {
		return nil, err
	}
	return &Compressor{efficiency: efficiency}, nil
}

func (c *Compressor) Efficiency() float64 { return c.efficiency }

// Compress returns the real and the isentropic discharge states.
func (c *Compressor) Compress(inlet fluid.Point, pressure float64) (actual, isentropic fluid.Point, err error) {
	if isentropic, err = inlet.IsentropicCompressionTo(pressure); err != nil {
		return
	}
	actual, err = inlet.CompressionTo(pressure, c.efficiency)
	return
}
