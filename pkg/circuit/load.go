package circuit

import (
	"github.com/jrvargas/ampsim/pkg/spec"
)

// Drive applies the load network to the amplifier's open-loop output phasor
// vamp and returns the output voltage across the measured resistor and the
// load current. Mode dispatch is a closed set; there is no extensible load
// contract.
//
// For ResistiveOnly and SeriesRC the output is measured across R, so
// vout = i·R with i = vamp/Ztot. With a purely resistive load this makes
// vout equal vamp exactly; the resistor only bounds the current.
func Drive(load spec.LoadSpec, omega float64, vamp complex128) (vout, i complex128, err error) {
	switch load.Mode {
	case spec.Short:
		return 0, 0, nil

	case spec.Open:
		return vamp, 0, nil

	case spec.ResistiveOnly:
		zr := complex(load.R, 0)
		i = vamp / zr
		return i * zr, i, nil

	default: // spec.SeriesRC
		if load.C == 0 {
			// No capacitor wired; behaves as the resistor alone.
			zr := complex(load.R, 0)
			i = vamp / zr
			return i * zr, i, nil
		}
		if omega == 0 {
			return 0, 0, ErrZeroFrequency
		}
		zr := complex(load.R, 0)
		zc := 1 / (1i * complex(omega*load.C, 0))
		ztot := zr + zc
		if ztot == 0 {
			return 0, 0, ErrZeroDenominator
		}
		i = vamp / ztot
		return i * zr, i, nil
	}
}
