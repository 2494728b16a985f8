package circuit

// Amplifier frequency response H(ω) = Vout_amp / V_F (RMS phasors), fit
// piecewise from nodal analysis of the stage. The coefficients are empirical
// curve-fit constants; keep them verbatim.

// Region bounds in rad/s. Comparisons are strict on the lower form: a
// frequency sits in region 1 when ω < lowCutoff, region 2 when
// lowCutoff <= ω < highCutoff, region 3 otherwise. ω = 0 is a valid input
// (region 1), though the DC term of a signal never passes through here.
const (
	lowCutoff  = 18.0
	highCutoff = 2e9
)

// Gain evaluates the amplifier's complex frequency response at ω rad/s.
// Returns ErrZeroDenominator if the region denominator evaluates to
// exactly zero.
func Gain(omega float64) (complex128, error) {
	w := complex(omega, 0)

	var num, den complex128
	switch {
	case omega < lowCutoff:
		num = -13.03 * (1i*w - 0.6143)
		den = w*w - 23.55i*w - 79.68
	case omega < highCutoff:
		num = -43.03 * w * w
		den = w*w - 22.94i*w - 73.48
	default:
		num = w * w * (0.4*w + 8.61e10i)
		den = w*w*w - 2e9i*w*w - 4.69e10*w + 1.41e11i
	}

	if den == 0 {
		return 0, ErrZeroDenominator
	}
	return num / den, nil
}
