// Package sim computes the steady-state response of a linear amplifier
// driving an R/C load for an input of DC offset + fundamental + up to 10
// harmonics. It combines the per-frequency circuit solve (pkg/circuit) with
// Parseval-style aggregation and hands the solved components to pkg/wave for
// time-domain reconstruction.
//
// # Model
//
// Each frequency component is solved independently:
//
//	ω     = 2πf
//	V_F   = A_rms·e^{jφ}          (input phasor)
//	V_amp = H(ω)·V_F              (amplifier open-loop output)
//	V_out, I = load rule(V_amp)   (pkg/circuit.Drive)
//
// Component amplitudes are RMS magnitudes of orthogonal-frequency sinusoids,
// so the aggregates reduce to plain sums, with no cross terms and no extra
// factor of 2 or ½:
//
//	VRMS = √Σ|V_out_k|²
//	IRMS = √Σ|I_k|²
//	P    = Σ Re{V_out_k·conj(I_k)}
//	THD  = √(Σ harmonics |V_out_k|²) / |V_out_fundamental|
//
// Short loads collapse everything to zero; open loads carry voltage but no
// current or power. The DC term never passes through H(ω); it is added
// directly during synthesis.
//
// # Determinism
//
// A run is one pure computation over at most 11 components. Sums accumulate
// in component order (fundamental first, harmonics in input order), so
// identical inputs give bit-identical results.
//
// # Errors
//
// A failure in any single component (zero denominator, series RC at ω = 0)
// aborts the whole run with that error; no partial or NaN-poisoned aggregate
// is ever returned. ErrUndefinedTHD is raised when the fundamental's solved
// output magnitude is exactly zero while harmonics are present.
//
// # Example
//
//	load, _ := spec.NewLoadSpec(1000, 0.1e-6, spec.SeriesRC)
//	fund, _ := spec.NewHarmonic(1000, 1, spec.AmplitudePeak, 0)
//	signal, _ := spec.NewSignalSpec(0.5, fund, nil)
//	tv, _ := wave.NewTimeVector(1000, 5, 5000, signal.MaxFreq())
//
//	res, comps, series, err := sim.Run(load, signal, tv)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("VRMS=%.4f IRMS=%.4f P=%.4f THD=%.2f%%\n",
//		res.VRMS, res.IRMS, res.P, res.THD*100)
//	_ = comps
//	_ = series
package sim
