package freqsps

import (
	"errors"
	"fmt"
)

var (
	// ErrBlockSize is returned when a block does not hold exactly Decimation samples.
	ErrBlockSize = errors.New("freqsps: block length must equal decimation")
	// ErrZeroPower is returned for blocks without energy, whose spectra carry no peak.
	ErrZeroPower = errors.New("freqsps: block has zero power")
	// ErrNonFinite is returned for blocks holding NaN or Inf samples.
	ErrNonFinite = errors.New("freqsps: block has non-finite samples")
)

func (c Config) validate() error {
	if c.Decimation <= 0 {
		return fmt.Errorf("freqsps: decimation must be > 0: %d", c.Decimation)
	}
	if c.Subdivisions < 1 {
		return fmt.Errorf("freqsps: subdivisions must be >= 1: %d", c.Subdivisions)
	}
	if w := 2*exclusionHalfWidth(c.Decimation) + 1; c.Decimation <= w {
		return fmt.Errorf("freqsps: decimation %d does not exceed the %d-bin sps exclusion window", c.Decimation, w)
	}
	return nil
}
