package circuit

import "errors"

var (
	// ErrZeroDenominator indicates a transfer-function or load denominator
	// evaluated to exactly zero. Not expected for physical inputs, but
	// guarded rather than letting a division poison the run with Inf/NaN.
	ErrZeroDenominator = errors.New("circuit: denominator is zero")

	// ErrZeroFrequency indicates a series RC load was solved at ω = 0,
	// where the capacitor impedance 1/(jωC) is undefined. The component is
	// rejected instead of being treated as an open circuit.
	ErrZeroFrequency = errors.New("circuit: series RC load at zero frequency")
)
