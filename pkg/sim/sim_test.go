package sim

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrvargas/ampsim/pkg/circuit"
	"github.com/jrvargas/ampsim/pkg/spec"
	"github.com/jrvargas/ampsim/pkg/wave"
)

func mustHarmonic(t *testing.T, freq, amp float64, unit spec.AmplitudeUnit, phaseDeg float64) spec.HarmonicSpec {
	t.Helper()
	h, err := spec.NewHarmonic(freq, amp, unit, phaseDeg)
	require.NoError(t, err)
	return h
}

func mustSignal(t *testing.T, dc float64, fund spec.HarmonicSpec, harmonics ...spec.HarmonicSpec) spec.SignalSpec {
	t.Helper()
	s, err := spec.NewSignalSpec(dc, fund, harmonics)
	require.NoError(t, err)
	return s
}

func mustLoad(t *testing.T, r, c float64, mode spec.Mode) spec.LoadSpec {
	t.Helper()
	l, err := spec.NewLoadSpec(r, c, mode)
	require.NoError(t, err)
	return l
}

func testTV(t *testing.T, signal spec.SignalSpec) wave.TimeVector {
	t.Helper()
	tv, err := wave.NewTimeVector(signal.Fundamental.Freq, 2, 1000, signal.MaxFreq())
	require.NoError(t, err)
	return tv
}

func TestRun_ShortIsAllZero(t *testing.T) {
	load := mustLoad(t, 1000, 1e-6, spec.Short)
	signal := mustSignal(t, 1.5,
		mustHarmonic(t, 1000, 1, spec.AmplitudeRMS, 0),
		mustHarmonic(t, 3000, 0.3, spec.AmplitudeRMS, 45),
	)

	res, comps, series, err := Run(load, signal, testTV(t, signal))
	require.NoError(t, err)

	for k, c := range comps {
		assert.Equal(t, complex128(0), c.Vout, "component %d", k)
		assert.Equal(t, complex128(0), c.I, "component %d", k)
	}
	assert.Equal(t, Result{}, res)

	// Only the DC offset survives in the waveform.
	for i := 0; i < series.Len(); i += 100 {
		assert.InDelta(t, 1.5, series.V[i], 1e-12, "sample %d", i)
	}
}

func TestRun_OpenFollowsAmplifier(t *testing.T) {
	load := mustLoad(t, 1000, 1e-6, spec.Open)
	fund := mustHarmonic(t, 1000, 1, spec.AmplitudeRMS, 30)
	harm := mustHarmonic(t, 2000, 0.25, spec.AmplitudeRMS, -15)
	signal := mustSignal(t, 0, fund, harm)

	res, comps, _, err := Run(load, signal, testTV(t, signal))
	require.NoError(t, err)

	for k, h := range signal.Components() {
		g, gerr := circuit.Gain(2 * math.Pi * h.Freq)
		require.NoError(t, gerr)
		want := g * cmplx.Rect(h.ARMS, h.Phase)
		assert.InDelta(t, real(want), real(comps[k].Vout), 1e-12, "component %d", k)
		assert.InDelta(t, imag(want), imag(comps[k].Vout), 1e-12, "component %d", k)
		assert.Equal(t, complex128(0), comps[k].I, "component %d", k)
	}
	assert.Zero(t, res.IRMS)
	assert.Zero(t, res.P)

	wantVRMS := math.Sqrt(comps[0].VoutRMS()*comps[0].VoutRMS() + comps[1].VoutRMS()*comps[1].VoutRMS())
	assert.InDelta(t, wantVRMS, res.VRMS, 1e-12)
	assert.InDelta(t, comps[1].VoutRMS()/comps[0].VoutRMS(), res.THD, 1e-12)
}

func TestRun_ResistiveOnlyInvariants(t *testing.T) {
	const r = 1000.0
	load := mustLoad(t, r, 0, spec.ResistiveOnly)
	signal := mustSignal(t, 0,
		mustHarmonic(t, 1000, 1, spec.AmplitudeRMS, 0),
		mustHarmonic(t, 3000, 0.5, spec.AmplitudeRMS, 90),
		mustHarmonic(t, 5000, 0.2, spec.AmplitudeRMS, -30),
	)

	res, comps, _, err := Run(load, signal, testTV(t, signal))
	require.NoError(t, err)

	var sumI2R float64
	for k, c := range comps {
		// The resistor-only load never attenuates voltage.
		wantI := c.Vout / complex(r, 0)
		assert.InDelta(t, real(wantI), real(c.I), 1e-15, "component %d", k)
		assert.InDelta(t, imag(wantI), imag(c.I), 1e-15, "component %d", k)

		mi := cmplx.Abs(c.I)
		sumI2R += mi * mi * r
	}

	// P == Σ|I_k|²·R, algebraically equal to Σ Re{V·conj(I)} when V = I·R.
	assert.InDelta(t, sumI2R, res.P, 1e-9*math.Abs(sumI2R))
}

func TestRun_NoHarmonicsMeansZeroTHD(t *testing.T) {
	for _, mode := range []spec.Mode{spec.SeriesRC, spec.ResistiveOnly, spec.Open} {
		load := mustLoad(t, 1000, 1e-6, mode)
		signal := mustSignal(t, 0, mustHarmonic(t, 1000, 1, spec.AmplitudeRMS, 0))

		res, _, _, err := Run(load, signal, testTV(t, signal))
		require.NoError(t, err, "mode=%s", mode)
		assert.Zero(t, res.THD, "mode=%s", mode)
	}
}

func TestRun_RoundTripScalarCheck(t *testing.T) {
	// 1 V peak, 0° phase, 1 kHz fundamental into 1 kΩ resistive-only.
	const r = 1000.0
	load := mustLoad(t, r, 0, spec.ResistiveOnly)
	fund := mustHarmonic(t, 1000, 1, spec.AmplitudePeak, 0)
	assert.InDelta(t, 0.70711, fund.ARMS, 1e-5, "peak 1 V converts to RMS at the boundary")

	signal := mustSignal(t, 0, fund)
	res, comps, _, err := Run(load, signal, testTV(t, signal))
	require.NoError(t, err)

	// ω ≈ 6283.19 rad/s sits in the mid band of the amplifier fit.
	omega := 2 * math.Pi * 1000.0
	w := complex(omega, 0)
	h := (-43.03 * w * w) / (w*w - 22.94i*w - 73.48)
	vamp := h * complex(fund.ARMS, 0)

	require.Len(t, comps, 1)
	assert.InDelta(t, real(vamp), real(comps[0].Vout), 1e-9)
	assert.InDelta(t, imag(vamp), imag(comps[0].Vout), 1e-9)

	mv := cmplx.Abs(vamp)
	assert.InDelta(t, mv, res.VRMS, 1e-9)
	assert.InDelta(t, mv/r, res.IRMS, 1e-12)
	assert.InDelta(t, mv*mv/r, res.P, 1e-9)
	assert.Zero(t, res.THD)
}

func TestRun_UndefinedTHDSignaled(t *testing.T) {
	// Zero-amplitude fundamental with a live harmonic: the THD denominator
	// is exactly zero and must surface as an error, not NaN.
	load := mustLoad(t, 1000, 0, spec.ResistiveOnly)
	signal := mustSignal(t, 0,
		mustHarmonic(t, 1000, 0, spec.AmplitudeRMS, 0),
		mustHarmonic(t, 3000, 0.5, spec.AmplitudeRMS, 0),
	)

	_, _, _, err := Run(load, signal, testTV(t, signal))
	require.ErrorIs(t, err, ErrUndefinedTHD)
}

func TestRun_ComponentErrorAbortsRun(t *testing.T) {
	// A zero-frequency harmonic cannot pass the boundary constructors, but
	// the core must still reject it rather than divide by zero.
	load := mustLoad(t, 1000, 1e-6, spec.SeriesRC)
	signal := spec.SignalSpec{
		Fundamental: mustHarmonic(t, 1000, 1, spec.AmplitudeRMS, 0),
		Harmonics:   []spec.HarmonicSpec{{Freq: 0, ARMS: 0.5}},
	}

	_, comps, _, err := Run(load, signal, testTV(t, signal))
	require.ErrorIs(t, err, circuit.ErrZeroFrequency)
	assert.Nil(t, comps, "no partial result on failure")
}

func TestRun_Reproducible(t *testing.T) {
	load := mustLoad(t, 220, 4.7e-6, spec.SeriesRC)
	signal := mustSignal(t, 0.25,
		mustHarmonic(t, 50, 10, spec.AmplitudePeak, 12),
		mustHarmonic(t, 150, 3, spec.AmplitudeRMS, -45),
		mustHarmonic(t, 250, 1, spec.AmplitudePeak, 90),
	)
	tv := testTV(t, signal)

	res1, _, s1, err := Run(load, signal, tv)
	require.NoError(t, err)
	res2, _, s2, err := Run(load, signal, tv)
	require.NoError(t, err)

	assert.Equal(t, res1, res2, "identical inputs must give bit-identical aggregates")
	assert.Equal(t, s1.V, s2.V)
}

func TestSession_ReplaceSpecs(t *testing.T) {
	loadA := mustLoad(t, 1000, 0, spec.ResistiveOnly)
	loadB := mustLoad(t, 1000, 1e-6, spec.Short)
	signal := mustSignal(t, 0, mustHarmonic(t, 1000, 1, spec.AmplitudeRMS, 0))
	tv := testTV(t, signal)

	s := NewSession(loadA, signal)
	resA, _, _, err := s.Run(tv)
	require.NoError(t, err)
	assert.Positive(t, resA.VRMS)

	s.SetLoad(loadB)
	resB, _, _, err := s.Run(tv)
	require.NoError(t, err)
	assert.Zero(t, resB.VRMS, "replacing the load fully replaces the run's inputs")
	assert.Equal(t, loadB, s.Load())
}
