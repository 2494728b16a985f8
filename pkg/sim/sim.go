package sim

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/jrvargas/ampsim/pkg/circuit"
	"github.com/jrvargas/ampsim/pkg/spec"
	"github.com/jrvargas/ampsim/pkg/wave"
)

// Component is the solved output for one frequency component: the voltage
// phasor across the measured resistor and the load current phasor.
type Component struct {
	Freq float64 // Hz
	Vout complex128
	I    complex128
}

// VoutRMS returns the RMS magnitude of the output voltage phasor.
func (c Component) VoutRMS() float64 { return cmplx.Abs(c.Vout) }

// Phase returns the output voltage phase in radians.
func (c Component) Phase() float64 { return cmplx.Phase(c.Vout) }

// Tone converts the solved component to its time-domain description. The
// reconstructed waveform uses the solved output phasor, not the input
// amplitude.
func (c Component) Tone() wave.Tone {
	return wave.Tone{Freq: c.Freq, RMS: c.VoutRMS(), Phase: c.Phase()}
}

// Result holds the aggregate electrical quantities of one run.
// Units:
//   - VRMS: Volts
//   - IRMS: Amps
//   - P: Watts (real power in the resistor)
//   - THD: dimensionless ratio
type Result struct {
	VRMS float64
	IRMS float64
	P    float64
	THD  float64
}

// solveComponent computes the output phasors for one frequency component:
// the input phasor V_F = A_rms·e^{jφ} is scaled by the amplifier gain at
// ω = 2πf, then driven into the load.
func solveComponent(h spec.HarmonicSpec, load spec.LoadSpec) (Component, error) {
	omega := 2 * math.Pi * h.Freq
	vf := cmplx.Rect(h.ARMS, h.Phase)

	g, err := circuit.Gain(omega)
	if err != nil {
		return Component{}, err
	}
	vamp := g * vf

	vout, i, err := circuit.Drive(load, omega, vamp)
	if err != nil {
		return Component{}, err
	}
	return Component{Freq: h.Freq, Vout: vout, I: i}, nil
}

// aggregate folds the solved components into the global quantities.
// Component amplitudes are RMS magnitudes of orthogonal-frequency sinusoids,
// so total RMS is the quadrature sum and total real power is the plain sum
// of per-frequency real powers; no extra factor of 2 or ½ appears anywhere.
// Accumulation runs in component order (fundamental first) so the float
// rounding is reproducible across runs.
func aggregate(comps []Component, mode spec.Mode) (Result, error) {
	if mode == spec.Short {
		return Result{}, nil
	}

	var sumV2, sumI2, p, sumHarm2 float64
	for k, c := range comps {
		v2 := real(c.Vout)*real(c.Vout) + imag(c.Vout)*imag(c.Vout)
		sumV2 += v2
		if k > 0 {
			sumHarm2 += v2
		}
		if mode != spec.Open {
			sumI2 += real(c.I)*real(c.I) + imag(c.I)*imag(c.I)
			p += real(c.Vout * cmplx.Conj(c.I))
		}
	}

	res := Result{VRMS: math.Sqrt(sumV2)}
	if mode != spec.Open {
		res.IRMS = math.Sqrt(sumI2)
		res.P = p
	}

	fund := comps[0].VoutRMS()
	switch {
	case len(comps) == 1:
		res.THD = 0
	case fund == 0:
		return Result{}, ErrUndefinedTHD
	default:
		res.THD = math.Sqrt(sumHarm2) / fund
	}
	return res, nil
}

// Run performs one full simulation: solve every component of the signal
// against the load, aggregate, and synthesize the output waveform over tv.
// It is pure; identical inputs give bit-identical outputs. A failure in any
// single component aborts the whole run with that component's error; no
// partial result is ever returned.
func Run(load spec.LoadSpec, signal spec.SignalSpec, tv wave.TimeVector) (Result, []Component, wave.Series, error) {
	specs := signal.Components()
	comps := make([]Component, 0, len(specs))
	for k, h := range specs {
		c, err := solveComponent(h, load)
		if err != nil {
			return Result{}, nil, wave.Series{}, fmt.Errorf("component %d (f=%g Hz): %w", k, h.Freq, err)
		}
		comps = append(comps, c)
	}

	res, err := aggregate(comps, load.Mode)
	if err != nil {
		return Result{}, nil, wave.Series{}, err
	}

	tones := make([]wave.Tone, len(comps))
	for k, c := range comps {
		tones[k] = c.Tone()
	}
	series := wave.Synthesize(signal.DC, tones, tv)

	return res, comps, series, nil
}
