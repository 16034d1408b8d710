package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"vcrc/entropy"
	"vcrc/model"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func encode(out io.Writer, format string, v interface{}) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(v)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func newTable(out io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

func renderCycle(out io.Writer, res model.CycleResult) {
	title := fmt.Sprintf("%s, %s", res.Topology, res.Refrigerant)
	if res.Name != "" {
		title = res.Name + ": " + title
	}
	t := newTable(out, title)
	t.AppendHeader(table.Row{"#", "Point", "p (kPa)", "T (°C)", "h (kJ/kg)", "s (kJ/kg·K)", "x", "Phase"})
	for _, p := range res.Points {
		x := ""
		if p.Quality != nil {
			x = fmt.Sprintf("%.4f", *p.Quality)
		}
		t.AppendRow(table.Row{p.Index, p.Label,
			fmt.Sprintf("%.2f", p.Pressure), fmt.Sprintf("%.2f", p.Temperature),
			fmt.Sprintf("%.3f", p.Enthalpy), fmt.Sprintf("%.5f", p.Entropy), x, p.Phase})
	}
	t.Render()

	m := newTable(out, "Performance")
	m.AppendRows([]table.Row{
		{"Specific work (kJ/kg)", fmt.Sprintf("%.3f", res.SpecificWork)},
		{"Isentropic specific work (kJ/kg)", fmt.Sprintf("%.3f", res.IsentropicSpecificWork)},
		{"Cooling capacity (kJ/kg)", fmt.Sprintf("%.3f", res.CoolingCapacity)},
		{"Heating capacity (kJ/kg)", fmt.Sprintf("%.3f", res.HeatingCapacity)},
		{"EER", fmt.Sprintf("%.4f", res.EER)},
		{"COP", fmt.Sprintf("%.4f", res.COP)},
	})
	if res.IntermediatePressure > 0 {
		m.AppendRow(table.Row{"Intermediate pressure (kPa)", fmt.Sprintf("%.2f", res.IntermediatePressure)})
	}
	m.Render()

	if res.Analysis == nil {
		return
	}
	a := newTable(out, "Entropy analysis ("+res.Analysis.Mode+")")
	a.AppendHeader(table.Row{"Loss", "Share of work (%)"})
	a.AppendRow(table.Row{"minimum work", fmt.Sprintf("%.3f", res.Analysis.MinimumWorkRatio)})
	for _, c := range entropy.Categories() {
		if v := res.Analysis.Ratios[c.String()]; v != 0 {
			a.AppendRow(table.Row{c.String(), fmt.Sprintf("%.3f", v)})
		}
	}
	a.AppendFooter(table.Row{"perfection", fmt.Sprintf("%.3f", res.Analysis.Perfection)})
	a.AppendFooter(table.Row{"relative error", fmt.Sprintf("%.3g", res.Analysis.RelativeError)})
	a.Render()
}

func renderSweep(out io.Writer, r sweepResult) {
	t := newTable(out, fmt.Sprintf("%s (%s)", r.Name, r.Parameter))
	t.AppendHeader(table.Row{r.Parameter, "W (kJ/kg)", "q0 (kJ/kg)", "EER", "COP", "Error"})
	for _, p := range r.Points {
		if p.Result == nil {
			t.AppendRow(table.Row{p.Value, "", "", "", "", p.Error})
			continue
		}
		res := p.Result
		t.AppendRow(table.Row{p.Value,
			fmt.Sprintf("%.3f", res.SpecificWork), fmt.Sprintf("%.3f", res.CoolingCapacity),
			fmt.Sprintf("%.4f", res.EER), fmt.Sprintf("%.4f", res.COP), ""})
	}
	t.Render()
}
