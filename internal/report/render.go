package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/rpggio/mortality/internal/dataset"
	"github.com/rpggio/mortality/internal/domain/comparison"
)

// WriteJSON encodes the report as indented JSON. NaN correlations become null.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sanitize(r)); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteText renders the report as plain-text sections.
func WriteText(w io.Writer, r *Report) error {
	p := &printer{w: w}

	p.section("BASIC INFORMATION")
	p.linef("Rows: %d", r.Overview.Rows)
	p.table([]string{"Measure", "Count", "Sum", "Mean", "Std", "Min", "Max"}, func(add func(...string)) {
		for _, m := range r.Measures {
			add(m.Measure, fmt.Sprint(m.Count), number(m.Sum), decimal(m.Mean), decimal(m.StdDev), number(m.Min), number(m.Max))
		}
	})

	p.section(fmt.Sprintf("First %d rows", PreviewRows))
	p.table(r.Preview.Columns, func(add func(...string)) {
		for _, row := range r.Preview.Rows {
			add(row...)
		}
	})

	p.section("MISSING VALUES")
	p.table([]string{"Column", "Missing"}, func(add func(...string)) {
		for _, c := range r.Overview.Missing {
			add(c.Column, fmt.Sprint(c.Missing))
		}
	})

	p.section("Z-TESTS")
	if len(r.Comparisons) == 0 {
		p.linef("No comparisons completed.")
	}
	for _, c := range r.Comparisons {
		WriteComparison(p, c)
	}

	p.section(fmt.Sprintf("Top Age Groups by COVID-19 Deaths (%s)", r.State))
	p.totals("Age Group", r.TopAgeGroups)

	p.section(fmt.Sprintf("COVID-19 Deaths by Sex (%s)", r.State))
	p.totals("Sex", r.DeathsBySex)

	p.section(fmt.Sprintf("COVID-19 Deaths by Age Group (%s)", r.State))
	p.totals("Age Group", r.DeathsByAgeGroup)

	p.section(fmt.Sprintf("Pneumonia Deaths vs COVID-19 Deaths (%s)", r.State))
	p.table([]string{"Sex", "Points", "Correlation"}, func(add func(...string)) {
		for _, c := range r.PneumoniaVsCOVID {
			add(c.Sex, fmt.Sprint(c.Points), decimal(c.Correlation))
		}
	})

	p.section(fmt.Sprintf("Correlation Matrix of Death Metrics (%s)", r.State))
	p.matrix(r.Correlations)

	p.section("Top States by COVID-19 Deaths")
	p.totals("State", r.TopStates)

	p.section(fmt.Sprintf("COVID-19 Deaths by Age Group and Sex (%s)", r.State))
	p.sexAge(r.DeathsBySexAge)

	p.section(fmt.Sprintf("Distribution of COVID-19 Deaths by Age Group (%s)", r.State))
	p.table([]string{"Age Group", "N", "Min", "Q1", "Median", "Q3", "Max"}, func(add func(...string)) {
		for _, d := range r.AgeDistribution {
			s := d.Summary
			add(d.AgeGroup, fmt.Sprint(s.Count), number(s.Min), number(s.Q1), number(s.Median), number(s.Q3), number(s.Max))
		}
	})

	p.section(fmt.Sprintf("Trend of COVID-19 Deaths by Age Group and Sex (%s)", r.State))
	p.sexAge(r.AgeBandTrend)

	p.section(fmt.Sprintf("Pair Plot of Given Data (first %d rows)", PairPlotRows))
	p.matrix(r.PairPlot)

	p.linef("")
	p.linef("=== COVID-19 DEATHS ANALYSIS COMPLETE ===")
	return p.err
}

// WriteComparison prints the verdict block for one z-test.
func WriteComparison(w io.Writer, c comparison.Comparison) {
	res := c.Result
	verdict := fmt.Sprintf("No significant difference (p >= %g)", res.Alpha)
	if res.Significant {
		verdict = fmt.Sprintf("Significant difference (p < %g)", res.Alpha)
	}
	fmt.Fprintf(w, "\nZ-Test Results: %s vs %s\n", c.LabelA, c.LabelB)
	fmt.Fprintf(w, "Proportion %s: %.4f (%s deaths / %s total)\n", c.LabelA, res.ProportionA, number(c.GroupA.EventCount), number(c.GroupA.TotalCount))
	fmt.Fprintf(w, "Proportion %s: %.4f (%s deaths / %s total)\n", c.LabelB, res.ProportionB, number(c.GroupB.EventCount), number(c.GroupB.TotalCount))
	fmt.Fprintf(w, "Z-score: %.4f\n", res.ZScore)
	fmt.Fprintf(w, "P-value: %s\n", pValue(res.PValue))
	fmt.Fprintf(w, "Conclusion: %s\n", verdict)
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) Write(b []byte) (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	n, err := p.w.Write(b)
	p.err = err
	return n, err
}

func (p *printer) linef(format string, args ...any) {
	fmt.Fprintf(p, format+"\n", args...)
}

func (p *printer) section(title string) {
	p.linef("\n=== %s ===", strings.ToUpper(title))
}

func (p *printer) table(header []string, fill func(add func(...string))) {
	tw := tabwriter.NewWriter(p, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fill(func(cells ...string) {
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	})
	tw.Flush()
}

func (p *printer) totals(keyHeader string, totals []dataset.GroupTotal) {
	p.table([]string{keyHeader, "COVID-19 Deaths"}, func(add func(...string)) {
		for _, t := range totals {
			add(t.Key, number(t.Value))
		}
	})
}

func (p *printer) matrix(m dataset.Matrix) {
	p.table(append([]string{""}, m.Labels...), func(add func(...string)) {
		for i, label := range m.Labels {
			cells := []string{label}
			for _, v := range m.Values[i] {
				cells = append(cells, decimal(v))
			}
			add(cells...)
		}
	})
}

func (p *printer) sexAge(cells []SexAgeTotal) {
	p.table([]string{"Age Group", "Sex", "COVID-19 Deaths"}, func(add func(...string)) {
		for _, c := range cells {
			add(c.AgeGroup, c.Sex, number(c.Value))
		}
	})
}

// number formats whole counts with thousands separators.
func number(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if v != math.Trunc(v) || math.Abs(v) >= 1e15 {
		return fmt.Sprintf("%.2f", v)
	}
	s := fmt.Sprintf("%d", int64(math.Abs(v)))
	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func decimal(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.2f", v)
}

func pValue(p float64) string {
	if p > 0 && p < 1e-4 {
		return fmt.Sprintf("%.3e", p)
	}
	return fmt.Sprintf("%.4f", p)
}

type nullableMatrix struct {
	Labels []string     `json:"labels"`
	Values [][]*float64 `json:"values"`
}

func nullableMatrixOf(m dataset.Matrix) nullableMatrix {
	out := nullableMatrix{Labels: m.Labels}
	for _, row := range m.Values {
		cells := make([]*float64, len(row))
		for i, v := range row {
			cells[i] = nullable(v)
		}
		out.Values = append(out.Values, cells)
	}
	return out
}

// sanitize replaces NaN entries so the report can be JSON encoded.
func sanitize(r *Report) any {
	type nullableCorrelation struct {
		Sex         string   `json:"sex"`
		Points      int      `json:"points"`
		Correlation *float64 `json:"correlation"`
	}

	var scatter []nullableCorrelation
	for _, c := range r.PneumoniaVsCOVID {
		scatter = append(scatter, nullableCorrelation{Sex: c.Sex, Points: c.Points, Correlation: nullable(c.Correlation)})
	}

	return struct {
		*Report
		PneumoniaVsCOVID []nullableCorrelation `json:"pneumonia_vs_covid"`
		Correlations     nullableMatrix        `json:"correlations"`
		PairPlot         nullableMatrix        `json:"pair_plot"`
	}{
		Report:           r,
		PneumoniaVsCOVID: scatter,
		Correlations:     nullableMatrixOf(r.Correlations),
		PairPlot:         nullableMatrixOf(r.PairPlot),
	}
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
