package wave

import (
	"errors"
	"fmt"
	"math"
)

// ErrAliasing indicates a time vector too coarse to represent the highest
// frequency component: below 2× the component frequency the reconstructed
// waveform is silently wrong, so construction refuses it.
var ErrAliasing = errors.New("wave: sample rate below Nyquist floor")

// NyquistRecommend is the sample-rate multiple (relative to the highest
// component frequency) below which a plot looks jagged even though it is
// technically unaliased.
const NyquistRecommend = 10.0

// Tone describes one sinusoid of the output waveform: v(t) =
// RMS·√2·sin(2πf·t + Phase).
type Tone struct {
	Freq  float64 // Hz
	RMS   float64 // Volts RMS
	Phase float64 // radians
}

// TimeVector is an evenly spaced sample grid starting at t = 0.
type TimeVector struct {
	Step    float64
	Samples int
}

// NewTimeVector builds a grid of n samples spanning `periods` periods of the
// fundamental at freq Hz, and rejects grids that would alias maxFreq (the
// highest component of the signal).
func NewTimeVector(freq float64, periods, n int, maxFreq float64) (TimeVector, error) {
	if freq <= 0 {
		return TimeVector{}, fmt.Errorf("wave: fundamental frequency must be > 0, got %g", freq)
	}
	if periods <= 0 || n < 2 {
		return TimeVector{}, fmt.Errorf("wave: need at least 1 period and 2 samples, got %d/%d", periods, n)
	}
	span := float64(periods) / freq
	tv := TimeVector{Step: span / float64(n-1), Samples: n}
	if maxFreq > 0 && tv.Rate() < 2*maxFreq {
		return TimeVector{}, fmt.Errorf("%w: %.4g Hz for a %.4g Hz component", ErrAliasing, tv.Rate(), maxFreq)
	}
	return tv, nil
}

// Rate returns the sampling rate in Hz.
func (tv TimeVector) Rate() float64 { return 1 / tv.Step }

// At returns the time of sample i.
func (tv TimeVector) At(i int) float64 { return float64(i) * tv.Step }

// Series is a sampled waveform: T[i] is the time of sample i, V[i] its
// value in Volts.
type Series struct {
	T []float64
	V []float64
}

// Len returns the number of samples.
func (s Series) Len() int { return len(s.T) }

// Peak returns the largest absolute sample value, useful for axis scaling.
func (s Series) Peak() float64 {
	var peak float64
	for _, v := range s.V {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// Synthesize reconstructs the time-domain waveform by superposing the DC
// offset with every tone: v(t) = DC + Σ RMS_k·√2·sin(2πf_k·t + φ_k).
// The DC term is added directly; it never passed through the amplifier
// model and has no RMS interpretation.
func Synthesize(dc float64, tones []Tone, tv TimeVector) Series {
	s := Series{
		T: make([]float64, tv.Samples),
		V: make([]float64, tv.Samples),
	}
	for i := range s.T {
		t := tv.At(i)
		v := dc
		for _, tone := range tones {
			v += tone.RMS * math.Sqrt2 * math.Sin(2*math.Pi*tone.Freq*t+tone.Phase)
		}
		s.T[i] = t
		s.V[i] = v
	}
	return s
}
