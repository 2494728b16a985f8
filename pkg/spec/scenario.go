package spec

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is the on-disk description of one simulation: a load and a
// signal, in boundary-side units (microfarads, degrees, peak-or-RMS
// amplitudes). Decode it with LoadScenario/ReadScenario, then Build to get
// validated specs.
type Scenario struct {
	Load struct {
		Resistance    float64 `yaml:"resistance"`     // Ohms
		CapacitanceUF float64 `yaml:"capacitance_uf"` // microfarads
		Mode          string  `yaml:"mode"`
	} `yaml:"load"`
	Signal struct {
		DC          float64             `yaml:"dc"`
		Fundamental ScenarioComponent   `yaml:"fundamental"`
		Harmonics   []ScenarioComponent `yaml:"harmonics"`
	} `yaml:"signal"`
}

// ScenarioComponent is one sinusoid as written in a scenario file.
type ScenarioComponent struct {
	Freq      float64 `yaml:"freq"`      // Hz
	Amplitude float64 `yaml:"amplitude"` // Volts, peak or RMS per Unit
	Unit      string  `yaml:"unit"`      // "peak" or "rms" (default rms)
	PhaseDeg  float64 `yaml:"phase_deg"`
}

// ReadScenario decodes a scenario document from r.
func ReadScenario(r io.Reader) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("spec: decode scenario: %w", err)
	}
	return &sc, nil
}

// LoadScenario reads and decodes a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadScenario(f)
}

// Build validates the scenario and constructs the typed specs the model
// consumes. All unit conversion (µF→F, peak→RMS, degrees→radians) happens
// here; the model never sees a raw scenario value.
func (sc *Scenario) Build() (LoadSpec, SignalSpec, error) {
	mode, err := ParseMode(sc.Load.Mode)
	if err != nil {
		return LoadSpec{}, SignalSpec{}, err
	}
	load, err := NewLoadSpec(sc.Load.Resistance, sc.Load.CapacitanceUF*1e-6, mode)
	if err != nil {
		return LoadSpec{}, SignalSpec{}, err
	}

	fund, err := buildComponent(sc.Signal.Fundamental)
	if err != nil {
		return LoadSpec{}, SignalSpec{}, fmt.Errorf("fundamental: %w", err)
	}
	harmonics := make([]HarmonicSpec, 0, len(sc.Signal.Harmonics))
	for i, c := range sc.Signal.Harmonics {
		h, err := buildComponent(c)
		if err != nil {
			return LoadSpec{}, SignalSpec{}, fmt.Errorf("harmonic %d: %w", i+1, err)
		}
		harmonics = append(harmonics, h)
	}

	signal, err := NewSignalSpec(sc.Signal.DC, fund, harmonics)
	if err != nil {
		return LoadSpec{}, SignalSpec{}, err
	}
	return load, signal, nil
}

func buildComponent(c ScenarioComponent) (HarmonicSpec, error) {
	unit, err := ParseAmplitudeUnit(c.Unit)
	if err != nil {
		return HarmonicSpec{}, err
	}
	return NewHarmonic(c.Freq, c.Amplitude, unit, c.PhaseDeg)
}
