package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/jrvargas/ampsim/pkg/sim"
	"github.com/jrvargas/ampsim/pkg/spec"
	"github.com/jrvargas/ampsim/pkg/wave"
)

var pretty bool

type opts struct {
	// input
	scenarioPath string

	// time vector
	periods int
	samples int

	// outputs
	csvPath  string
	jsonPath string
	htmlPath string
	plotPath string
}

type sampleRow struct {
	T float64 `json:"t_s"`
	V float64 `json:"v_out_v"`
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "ampsim -f scenario.yaml",
		Short: "Linear amplifier with R/C load simulator",
		Long: `ampsim simulates the response of a linear amplifier driving a selectable
R/C load for an input signal of DC offset + fundamental + up to 10 harmonics.
It reports VRMS, IRMS, real power and THD, and reconstructs the output
waveform as CSV/JSON samples, an HTML report, or a PNG plot.

Examples:
  ampsim -f scenario.yaml
  ampsim -f scenario.yaml --plot out.png --csv samples.csv
  ampsim -f scenario.yaml --periods 3 --samples 2000 --html report.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o)
		},
	}

	root.Flags().StringVarP(&o.scenarioPath, "scenario", "f", "", "scenario YAML file (load + signal)")
	root.Flags().BoolVar(&pretty, "pretty", true, "format results as a table instead of CSV-like lines")
	root.Flags().IntVar(&o.periods, "periods", 5, "fundamental periods to synthesize")
	root.Flags().IntVar(&o.samples, "samples", 5000, "number of waveform samples")
	root.Flags().StringVar(&o.csvPath, "csv", "", "write waveform samples to CSV file")
	root.Flags().StringVar(&o.jsonPath, "json", "", "write waveform samples to JSON file")
	root.Flags().StringVar(&o.htmlPath, "html", "", "write results and samples to HTML file")
	root.Flags().StringVar(&o.plotPath, "plot", "", "render the waveform to a PNG file")
	_ = root.MarkFlagRequired("scenario")

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(o opts) error {
	sc, err := spec.LoadScenario(o.scenarioPath)
	if err != nil {
		return err
	}
	load, signal, err := sc.Build()
	if err != nil {
		return fmt.Errorf("scenario %s: %w", o.scenarioPath, err)
	}

	tv, err := wave.NewTimeVector(signal.Fundamental.Freq, o.periods, o.samples, signal.MaxFreq())
	if err != nil {
		return err
	}
	if tv.Rate() < wave.NyquistRecommend*signal.MaxFreq() {
		slog.Warn("sample rate below 10x the highest component; plot may look jagged",
			"rate_hz", tv.Rate(), "max_freq_hz", signal.MaxFreq())
	}

	session := sim.NewSession(load, signal)
	res, comps, series, err := session.Run(tv)
	if err != nil {
		return err
	}

	fmt.Printf("Load: R=%g Ohm, C=%g uF, mode=%s\n\n", load.R, load.C*1e6, load.Mode)

	if pretty {
		printComponents(comps)
		printSummary(res)
	} else {
		printCsvLike(res, comps)
	}

	if o.csvPath != "" {
		if err := writeCSV(o.csvPath, series); err != nil {
			slog.Error("write csv", "err", err)
		}
	}
	if o.jsonPath != "" {
		if err := writeJSON(o.jsonPath, series); err != nil {
			slog.Error("write json", "err", err)
		}
	}
	if o.htmlPath != "" {
		if err := writeHTML(o.htmlPath, load, res, comps, series); err != nil {
			slog.Error("write html", "err", err)
		}
	}
	if o.plotPath != "" {
		if err := writePlot(o.plotPath, series); err != nil {
			slog.Error("write plot", "err", err)
		}
	}

	return nil
}

func printComponents(comps []sim.Component) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COMPONENT\tf (Hz)\t|Vout| (Vrms)\tphase (deg)\t|I| (Arms)")
	fmt.Fprintln(tw, "---------\t------\t-------------\t-----------\t----------")
	for k, c := range comps {
		name := "fundamental"
		if k > 0 {
			name = "harmonic " + strconv.Itoa(k)
		}
		fmt.Fprintf(tw, "%s\t%.4g\t%.6f\t%.2f\t%.6g\n",
			name, c.Freq, c.VoutRMS(), c.Phase()*180/math.Pi, cmplxAbs(c.I))
	}
	tw.Flush()
}

func printSummary(res sim.Result) {
	fmt.Println()
	fmt.Printf("VRMS:  %.4f V\n", res.VRMS)
	fmt.Printf("IRMS:  %.4f A\n", res.IRMS)
	fmt.Printf("P:     %.4f W\n", res.P)
	fmt.Printf("THD:   %.2f %%\n", res.THD*100)
}

func printCsvLike(res sim.Result, comps []sim.Component) {
	fmt.Println("# f_hz, vout_rms, phase_rad, i_rms")
	for _, c := range comps {
		fmt.Printf("%g, %.6g, %.6g, %.6g\n", c.Freq, c.VoutRMS(), c.Phase(), cmplxAbs(c.I))
	}
	fmt.Printf("# vrms=%.6g irms=%.6g p=%.6g thd=%.6g\n", res.VRMS, res.IRMS, res.P, res.THD)
}

func cmplxAbs(z complex128) float64 {
	return math.Hypot(real(z), imag(z))
}

func writeCSV(path string, s wave.Series) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"t_s", "v_out_v"}); err != nil {
		return err
	}
	for i := range s.T {
		if err := w.Write([]string{
			strconv.FormatFloat(s.T[i], 'g', -1, 64),
			strconv.FormatFloat(s.V[i], 'g', -1, 64),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, s wave.Series) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	rows := make([]sampleRow, s.Len())
	for i := range s.T {
		rows[i] = sampleRow{T: s.T[i], V: s.V[i]}
	}
	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func writePlot(path string, s wave.Series) error {
	p := plot.New()
	p.Title.Text = "Output waveform"
	p.X.Label.Text = "t [s]"
	p.Y.Label.Text = "v_out(t) [V]"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, s.Len())
	for i := range s.T {
		pts[i].X = s.T[i]
		pts[i].Y = s.V[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

func writeHTML(path string, load spec.LoadSpec, res sim.Result, comps []sim.Component, s wave.Series) error {
	type compView struct {
		Name     string
		Freq     float64
		VoutRMS  float64
		PhaseDeg float64
		IRMS     float64
	}
	type view struct {
		Load    spec.LoadSpec
		CMicro  float64
		Res     sim.Result
		THDPct  float64
		Comps   []compView
		Samples int
	}

	v := view{
		Load:    load,
		CMicro:  load.C * 1e6,
		Res:     res,
		THDPct:  res.THD * 100,
		Samples: s.Len(),
	}
	for k, c := range comps {
		name := "fundamental"
		if k > 0 {
			name = "harmonic " + strconv.Itoa(k)
		}
		v.Comps = append(v.Comps, compView{
			Name:     name,
			Freq:     c.Freq,
			VoutRMS:  c.VoutRMS(),
			PhaseDeg: c.Phase() * 180 / math.Pi,
			IRMS:     cmplxAbs(c.I),
		})
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return tpl.Execute(f, v)
}

var tpl = template.Must(template.New("rep").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>ampsim Report</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
table{border-collapse:collapse;font-size:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
th:first-child,td:first-child{text-align:left}
ul{margin:6px 0 14px;padding-left:20px}
.small{color:#555}
</style>

<h1>Amplifier Simulation Report</h1>

<p class="small">
Load: R={{printf "%g" .Load.R}} &Omega;, C={{printf "%g" .CMicro}} µF, mode={{.Load.Mode}}
&nbsp;|&nbsp; Samples: {{.Samples}}
</p>

<h2>Summary</h2>
<ul>
<li>VRMS: {{printf "%.4f" .Res.VRMS}} V</li>
<li>IRMS: {{printf "%.4f" .Res.IRMS}} A</li>
<li>P: {{printf "%.4f" .Res.P}} W</li>
<li>THD: {{printf "%.2f" .THDPct}} %</li>
</ul>

<h2>Components</h2>
<table>
<thead>
<tr><th>component</th><th>f (Hz)</th><th>|Vout| (Vrms)</th><th>phase (deg)</th><th>|I| (Arms)</th></tr>
</thead>
<tbody>
{{range .Comps}}
<tr>
<td>{{.Name}}</td>
<td>{{printf "%.4g" .Freq}}</td>
<td>{{printf "%.6f" .VoutRMS}}</td>
<td>{{printf "%.2f" .PhaseDeg}}</td>
<td>{{printf "%.6g" .IRMS}}</td>
</tr>
{{end}}
</tbody>
</table>
</html>`))
