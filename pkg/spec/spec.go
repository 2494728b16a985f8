package spec

import (
	"fmt"
	"math"
)

// Mode selects the network connected to the amplifier output.
type Mode int

const (
	// SeriesRC is a resistor and capacitor in series; output is measured
	// across the resistor.
	SeriesRC Mode = iota + 1
	// ResistiveOnly is the resistor alone (C forced to 0).
	ResistiveOnly
	// Short ties the output to ground.
	Short
	// Open leaves the output unloaded.
	Open
)

func (m Mode) String() string {
	switch m {
	case SeriesRC:
		return "series-rc"
	case ResistiveOnly:
		return "resistive"
	case Short:
		return "short"
	case Open:
		return "open"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a mode name (as used in scenario files) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "series-rc", "rc":
		return SeriesRC, nil
	case "resistive", "r":
		return ResistiveOnly, nil
	case "short":
		return Short, nil
	case "open":
		return Open, nil
	default:
		return 0, fmt.Errorf("spec: unknown load mode %q", s)
	}
}

// LoadSpec is a validated R/C load.
// Units:
//   - R: Ohms, > 0
//   - C: Farads, >= 0 (always 0 when Mode is ResistiveOnly)
type LoadSpec struct {
	R    float64
	C    float64
	Mode Mode
}

// NewLoadSpec validates and constructs a LoadSpec. ResistiveOnly discards
// any capacitance instead of rejecting it, matching how the load would be
// wired physically.
func NewLoadSpec(r, c float64, mode Mode) (LoadSpec, error) {
	switch mode {
	case SeriesRC, ResistiveOnly, Short, Open:
	default:
		return LoadSpec{}, fmt.Errorf("spec: invalid load mode %d", int(mode))
	}
	if r <= 0 {
		return LoadSpec{}, fmt.Errorf("spec: resistance must be > 0, got %g", r)
	}
	if c < 0 {
		return LoadSpec{}, fmt.Errorf("spec: capacitance must be >= 0, got %g", c)
	}
	if mode == ResistiveOnly {
		c = 0
	}
	return LoadSpec{R: r, C: c, Mode: mode}, nil
}

// AmplitudeUnit says how a raw amplitude value is expressed.
type AmplitudeUnit int

const (
	AmplitudeRMS AmplitudeUnit = iota
	AmplitudePeak
)

// ParseAmplitudeUnit maps a unit name to an AmplitudeUnit. An empty string
// means RMS, which is what the model works in internally.
func ParseAmplitudeUnit(s string) (AmplitudeUnit, error) {
	switch s {
	case "", "rms":
		return AmplitudeRMS, nil
	case "peak":
		return AmplitudePeak, nil
	default:
		return 0, fmt.Errorf("spec: unknown amplitude unit %q", s)
	}
}

// HarmonicSpec is one validated frequency component of the input signal.
// Amplitude is stored as an RMS magnitude and phase in radians; peak values
// and degrees are converted here, at the boundary, never inside the model.
type HarmonicSpec struct {
	Freq  float64 // Hz
	ARMS  float64 // Volts RMS
	Phase float64 // radians
}

// NewHarmonic validates and constructs a HarmonicSpec from boundary-side
// units (peak or RMS amplitude, phase in degrees).
func NewHarmonic(freq, amp float64, unit AmplitudeUnit, phaseDeg float64) (HarmonicSpec, error) {
	if freq <= 0 {
		return HarmonicSpec{}, fmt.Errorf("spec: frequency must be > 0, got %g", freq)
	}
	if amp < 0 {
		return HarmonicSpec{}, fmt.Errorf("spec: amplitude must be >= 0, got %g", amp)
	}
	if unit == AmplitudePeak {
		amp /= math.Sqrt2
	}
	return HarmonicSpec{
		Freq:  freq,
		ARMS:  amp,
		Phase: phaseDeg * math.Pi / 180,
	}, nil
}

// MaxHarmonics bounds the number of components beyond the fundamental.
const MaxHarmonics = 10

// SignalSpec is a validated input signal: a raw DC offset (no amplitude-unit
// interpretation) plus a fundamental and up to MaxHarmonics harmonics.
// Harmonic order is preserved for display; aggregation is order-independent.
type SignalSpec struct {
	DC          float64
	Fundamental HarmonicSpec
	Harmonics   []HarmonicSpec
}

// NewSignalSpec validates and constructs a SignalSpec.
func NewSignalSpec(dc float64, fundamental HarmonicSpec, harmonics []HarmonicSpec) (SignalSpec, error) {
	if fundamental.Freq <= 0 {
		return SignalSpec{}, fmt.Errorf("spec: fundamental frequency must be > 0, got %g", fundamental.Freq)
	}
	if len(harmonics) > MaxHarmonics {
		return SignalSpec{}, fmt.Errorf("spec: at most %d harmonics, got %d", MaxHarmonics, len(harmonics))
	}
	s := SignalSpec{
		DC:          dc,
		Fundamental: fundamental,
	}
	if len(harmonics) > 0 {
		s.Harmonics = make([]HarmonicSpec, len(harmonics))
		copy(s.Harmonics, harmonics)
	}
	return s, nil
}

// Components returns the fundamental followed by the harmonics in input
// order. Index 0 is always the fundamental.
func (s SignalSpec) Components() []HarmonicSpec {
	out := make([]HarmonicSpec, 0, 1+len(s.Harmonics))
	out = append(out, s.Fundamental)
	out = append(out, s.Harmonics...)
	return out
}

// MaxFreq returns the highest component frequency, used for the sampling
// floor when building a time vector.
func (s SignalSpec) MaxFreq() float64 {
	top := s.Fundamental.Freq
	for _, h := range s.Harmonics {
		if h.Freq > top {
			top = h.Freq
		}
	}
	return top
}
