// Package report assembles and renders the descriptive analysis of the dataset.
package report

import (
	"strconv"

	"github.com/rpggio/mortality/internal/dataset"
	"github.com/rpggio/mortality/internal/domain/comparison"
)

// Row counts taken from the head of the dataset.
const (
	PreviewRows  = 5
	PairPlotRows = 30
)

// Options controls report assembly.
type Options struct {
	// State selects the national rows used by most tables.
	State string
	// TopN bounds the ranked tables.
	TopN int
}

// DefaultOptions mirrors the national analysis.
func DefaultOptions() Options {
	return Options{State: dataset.StateUnitedStates, TopN: 10}
}

// SexAgeTotal is one cell of the age-by-sex table.
type SexAgeTotal struct {
	AgeGroup string  `json:"age_group"`
	Sex      string  `json:"sex"`
	Value    float64 `json:"value"`
}

// AgeDistribution is the box-plot summary for one age group.
type AgeDistribution struct {
	AgeGroup string             `json:"age_group"`
	Summary  dataset.FiveNumber `json:"summary"`
}

// SexCorrelation relates pneumonia and COVID-19 deaths within one sex.
type SexCorrelation struct {
	Sex         string  `json:"sex"`
	Points      int     `json:"points"`
	Correlation float64 `json:"correlation"`
}

// Preview is the first rows of the dataset as loaded. Missing cells are empty.
type Preview struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Report is the full analysis output.
type Report struct {
	State            string                   `json:"state"`
	Overview         dataset.Overview         `json:"overview"`
	Preview          Preview                  `json:"preview"`
	Measures         []dataset.MeasureSummary `json:"measures"`
	Comparisons      []comparison.Comparison  `json:"comparisons"`
	TopAgeGroups     []dataset.GroupTotal     `json:"top_age_groups"`
	DeathsBySex      []dataset.GroupTotal     `json:"deaths_by_sex"`
	DeathsByAgeGroup []dataset.GroupTotal     `json:"deaths_by_age_group"`
	PneumoniaVsCOVID []SexCorrelation         `json:"pneumonia_vs_covid"`
	Correlations     dataset.Matrix           `json:"correlations"`
	TopStates        []dataset.GroupTotal     `json:"top_states"`
	DeathsBySexAge   []SexAgeTotal            `json:"deaths_by_sex_and_age"`
	AgeDistribution  []AgeDistribution        `json:"age_distribution"`
	AgeBandTrend     []SexAgeTotal            `json:"age_band_trend"`
	// PairPlot correlates every measure over the first PairPlotRows rows.
	PairPlot dataset.Matrix `json:"pair_plot"`
}

// Build computes every table from the loaded rows. comparisons are carried
// through unchanged.
func Build(rows []dataset.Row, comparisons []comparison.Comparison, opts Options) *Report {
	if opts.State == "" {
		opts.State = dataset.StateUnitedStates
	}
	national := dataset.Filter(rows, dataset.Selector{States: []string{opts.State}})

	r := &Report{
		State:       opts.State,
		Overview:    dataset.Info(rows),
		Preview:     preview(head(rows, PreviewRows)),
		Measures:    dataset.Describe(rows),
		Comparisons: comparisons,
	}

	r.TopAgeGroups = dataset.Top(dataset.SumBy(national, dataset.ByAgeGroup, dataset.COVIDDeaths), opts.TopN)
	r.DeathsBySex = dataset.SumBy(national, dataset.BySex, dataset.COVIDDeaths)
	r.DeathsByAgeGroup = dataset.SumBy(
		dataset.Filter(national, dataset.Selector{ExcludeAgeGroups: []string{dataset.AgeGroupAll}}),
		dataset.ByAgeGroup, dataset.COVIDDeaths)

	for _, sex := range distinct(national, dataset.BySex) {
		subset := dataset.Filter(national, dataset.Selector{Sexes: []string{sex}})
		r.PneumoniaVsCOVID = append(r.PneumoniaVsCOVID, SexCorrelation{
			Sex:         sex,
			Points:      pairs(subset, dataset.PneumoniaDeaths, dataset.COVIDDeaths),
			Correlation: dataset.Correlation(subset, dataset.PneumoniaDeaths, dataset.COVIDDeaths),
		})
	}

	r.Correlations = dataset.CorrelationMatrix(national, dataset.Measures())

	r.TopStates = dataset.Top(dataset.SumBy(
		dataset.Filter(rows, dataset.Selector{ExcludeStates: []string{opts.State}}),
		dataset.ByState, dataset.COVIDDeaths), opts.TopN)

	bySexAge := dataset.Filter(national, dataset.Selector{
		ExcludeSexes:     []string{dataset.SexAll},
		ExcludeAgeGroups: []string{dataset.AgeGroupAll},
	})
	r.DeathsBySexAge = sexAgeTotals(bySexAge, distinct(bySexAge, dataset.ByAgeGroup))

	allSexes := dataset.Filter(national, dataset.Selector{
		Sexes:            []string{dataset.SexAll},
		ExcludeAgeGroups: []string{dataset.AgeGroupAll},
	})
	for _, age := range distinct(allSexes, dataset.ByAgeGroup) {
		subset := dataset.Filter(allSexes, dataset.Selector{AgeGroups: []string{age}})
		r.AgeDistribution = append(r.AgeDistribution, AgeDistribution{
			AgeGroup: age,
			Summary:  dataset.Quartiles(dataset.Values(subset, dataset.COVIDDeaths)),
		})
	}

	r.AgeBandTrend = sexAgeTotals(
		dataset.Filter(national, dataset.Selector{AgeGroups: dataset.AgeBands, ExcludeSexes: []string{dataset.SexAll}}),
		dataset.AgeBands)

	r.PairPlot = dataset.CorrelationMatrix(head(rows, PairPlotRows), dataset.Measures())

	return r
}

func head(rows []dataset.Row, n int) []dataset.Row {
	return rows[:min(n, len(rows))]
}

func preview(rows []dataset.Row) Preview {
	p := Preview{
		Columns: []string{"State", "Sex", "Age Group"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, m := range dataset.Measures() {
		p.Columns = append(p.Columns, m.String())
	}
	for _, row := range rows {
		cells := []string{row.State, row.Sex, row.AgeGroup}
		for _, m := range dataset.Measures() {
			cell := ""
			if v, ok := row.Value(m); ok {
				cell = strconv.FormatFloat(v, 'f', -1, 64)
			}
			cells = append(cells, cell)
		}
		p.Rows = append(p.Rows, cells)
	}
	return p
}

// sexAgeTotals sums COVID-19 deaths per (age group, sex), following ageOrder.
func sexAgeTotals(rows []dataset.Row, ageOrder []string) []SexAgeTotal {
	var out []SexAgeTotal
	sexes := distinct(rows, dataset.BySex)
	for _, age := range ageOrder {
		ageRows := dataset.Filter(rows, dataset.Selector{AgeGroups: []string{age}})
		for _, sex := range sexes {
			cell := dataset.Filter(ageRows, dataset.Selector{Sexes: []string{sex}})
			if len(dataset.Values(cell, dataset.COVIDDeaths)) == 0 {
				continue
			}
			out = append(out, SexAgeTotal{AgeGroup: age, Sex: sex, Value: dataset.Sum(cell, dataset.COVIDDeaths)})
		}
	}
	return out
}

// distinct returns keys in first-seen order.
func distinct(rows []dataset.Row, key dataset.KeyFunc) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		k := key(r)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

func pairs(rows []dataset.Row, x, y dataset.Measure) int {
	n := 0
	for _, r := range rows {
		_, okx := r.Value(x)
		_, oky := r.Value(y)
		if okx && oky {
			n++
		}
	}
	return n
}
