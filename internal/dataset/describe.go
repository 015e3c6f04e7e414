package dataset

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat"
)

// ColumnMissing counts empty cells of one column.
type ColumnMissing struct {
	Column  string `json:"column"`
	Missing int    `json:"missing"`
}

// Overview describes the shape of the loaded table.
type Overview struct {
	Rows    int             `json:"rows"`
	Missing []ColumnMissing `json:"missing"`
}

// Info counts rows and missing cells per column.
func Info(rows []Row) Overview {
	text := []struct {
		name string
		get  func(Row) string
	}{
		{colDataAsOf, func(r Row) string { return r.DataAsOf }},
		{colStartDate, func(r Row) string { return r.StartDate }},
		{colEndDate, func(r Row) string { return r.EndDate }},
		{colGroup, func(r Row) string { return r.Group }},
		{colYear, func(r Row) string { return r.Year }},
		{colMonth, func(r Row) string { return r.Month }},
		{colState, func(r Row) string { return r.State }},
		{colSex, func(r Row) string { return r.Sex }},
		{colAgeGroup, func(r Row) string { return r.AgeGroup }},
	}

	ov := Overview{Rows: len(rows)}
	for _, col := range text {
		n := 0
		for _, r := range rows {
			if col.get(r) == "" {
				n++
			}
		}
		ov.Missing = append(ov.Missing, ColumnMissing{Column: col.name, Missing: n})
	}
	for _, m := range Measures() {
		ov.Missing = append(ov.Missing, ColumnMissing{Column: m.String(), Missing: len(rows) - len(Values(rows, m))})
	}
	n := 0
	for _, r := range rows {
		if r.Footnote == "" {
			n++
		}
	}
	ov.Missing = append(ov.Missing, ColumnMissing{Column: colFootnote, Missing: n})
	return ov
}

// MeasureSummary holds descriptive statistics for one measure.
type MeasureSummary struct {
	Measure string  `json:"measure"`
	Count   int     `json:"count"`
	Missing int     `json:"missing"`
	Sum     float64 `json:"sum"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Describe summarizes every measure. Statistics of a measure with no values
// are zero.
func Describe(rows []Row) []MeasureSummary {
	out := make([]MeasureSummary, 0, numMeasures)
	for _, m := range Measures() {
		xs := Values(rows, m)
		ms := MeasureSummary{Measure: m.String(), Count: len(xs), Missing: len(rows) - len(xs)}
		if len(xs) > 0 {
			sample := stats.Sample{Xs: xs}
			ms.Sum = sample.Sum()
			ms.Mean = sample.Mean()
			ms.Min, ms.Max = sample.Bounds()
			if len(xs) > 1 {
				ms.StdDev = sample.StdDev()
			}
		}
		out = append(out, ms)
	}
	return out
}

// FiveNumber is a box-plot summary.
type FiveNumber struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Quartiles computes the five-number summary of xs. Quartiles interpolate
// linearly between order statistics (Hyndman-Fan type 7, as numpy and
// seaborn box plots do). xs is not modified.
func Quartiles(xs []float64) FiveNumber {
	if len(xs) == 0 {
		return FiveNumber{}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return FiveNumber{
		Count:  len(sorted),
		Min:    sorted[0],
		Q1:     linearQuantile(sorted, 0.25),
		Median: linearQuantile(sorted, 0.5),
		Q3:     linearQuantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

// linearQuantile expects sorted to be non-empty and ascending.
func linearQuantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := int(math.Floor(h))
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// Matrix is a labeled square correlation matrix. Undefined entries are NaN.
type Matrix struct {
	Labels []string    `json:"labels"`
	Values [][]float64 `json:"values"`
}

// CorrelationMatrix computes pairwise-complete Pearson correlations.
func CorrelationMatrix(rows []Row, measures []Measure) Matrix {
	mat := Matrix{
		Labels: make([]string, len(measures)),
		Values: make([][]float64, len(measures)),
	}
	for i, m := range measures {
		mat.Labels[i] = m.String()
		mat.Values[i] = make([]float64, len(measures))
	}
	for i := range measures {
		for j := i; j < len(measures); j++ {
			c := Correlation(rows, measures[i], measures[j])
			mat.Values[i][j] = c
			mat.Values[j][i] = c
		}
	}
	return mat
}

// Correlation is the Pearson correlation of two measures over rows where
// both are present. It is NaN with fewer than two such rows or zero variance.
func Correlation(rows []Row, x, y Measure) float64 {
	var xs, ys []float64
	for _, r := range rows {
		xv, okx := r.Value(x)
		yv, oky := r.Value(y)
		if okx && oky {
			xs = append(xs, xv)
			ys = append(ys, yv)
		}
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}
