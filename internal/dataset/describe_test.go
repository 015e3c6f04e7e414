package dataset_test

import (
	"math"
	"testing"

	"github.com/rpggio/mortality/internal/dataset"
	"github.com/stretchr/testify/require"
)

func TestInfo_CountsMissing(t *testing.T) {
	rows := loadSample(t)
	ov := dataset.Info(rows)

	require.Equal(t, 7, ov.Rows)
	missing := map[string]int{}
	for _, c := range ov.Missing {
		missing[c.Column] = c.Missing
	}
	require.Equal(t, 7, missing["Year"])
	require.Equal(t, 0, missing["State"])
	require.Equal(t, 1, missing["COVID-19 Deaths"])
	require.Equal(t, 1, missing["Influenza Deaths"])
	require.Equal(t, 6, missing["Footnote"])
}

func TestDescribe(t *testing.T) {
	rows := []dataset.Row{}
	for _, v := range []float64{1, 2, 3, 4} {
		r := dataset.NewRow("X", "Male", "All Ages")
		r.SetValue(dataset.COVIDDeaths, v)
		rows = append(rows, r)
	}
	rows = append(rows, dataset.NewRow("X", "Female", "All Ages"))

	summaries := dataset.Describe(rows)
	require.Len(t, summaries, 6)

	covid := summaries[0]
	require.Equal(t, "COVID-19 Deaths", covid.Measure)
	require.Equal(t, 4, covid.Count)
	require.Equal(t, 1, covid.Missing)
	require.Equal(t, 10.0, covid.Sum)
	require.Equal(t, 2.5, covid.Mean)
	require.InDelta(t, 1.2909944, covid.StdDev, 1e-6)
	require.Equal(t, 1.0, covid.Min)
	require.Equal(t, 4.0, covid.Max)

	total := summaries[1]
	require.Equal(t, 0, total.Count)
	require.Equal(t, 0.0, total.Mean)
}

func TestQuartiles(t *testing.T) {
	xs := []float64{5, 1, 4, 2, 3}
	q := dataset.Quartiles(xs)

	require.Equal(t, 5, q.Count)
	require.Equal(t, 1.0, q.Min)
	require.Equal(t, 2.0, q.Q1)
	require.Equal(t, 3.0, q.Median)
	require.Equal(t, 4.0, q.Q3)
	require.Equal(t, 5.0, q.Max)
	require.Equal(t, []float64{5, 1, 4, 2, 3}, xs, "input is not reordered")

	require.Equal(t, dataset.FiveNumber{}, dataset.Quartiles(nil))
}

func TestQuartiles_InterpolatesEvenLength(t *testing.T) {
	q := dataset.Quartiles([]float64{4, 2, 3, 1})

	require.Equal(t, 4, q.Count)
	require.InDelta(t, 1.75, q.Q1, 1e-12)
	require.InDelta(t, 2.5, q.Median, 1e-12)
	require.InDelta(t, 3.25, q.Q3, 1e-12)
	require.Equal(t, 4.0, q.Max)

	single := dataset.Quartiles([]float64{7})
	require.Equal(t, 7.0, single.Q1)
	require.Equal(t, 7.0, single.Median)
	require.Equal(t, 7.0, single.Q3)
}

func TestCorrelation(t *testing.T) {
	var rows []dataset.Row
	for i, v := range []float64{1, 2, 3, 4} {
		r := dataset.NewRow("X", "Male", "All Ages")
		r.SetValue(dataset.COVIDDeaths, v)
		r.SetValue(dataset.TotalDeaths, 10*v)
		r.SetValue(dataset.PneumoniaDeaths, -v)
		if i == 3 {
			r.SetValue(dataset.InfluenzaDeaths, 7)
		}
		rows = append(rows, r)
	}

	require.InDelta(t, 1, dataset.Correlation(rows, dataset.COVIDDeaths, dataset.TotalDeaths), 1e-12)
	require.InDelta(t, -1, dataset.Correlation(rows, dataset.COVIDDeaths, dataset.PneumoniaDeaths), 1e-12)
	require.True(t, math.IsNaN(dataset.Correlation(rows, dataset.COVIDDeaths, dataset.InfluenzaDeaths)))

	mat := dataset.CorrelationMatrix(rows, []dataset.Measure{dataset.COVIDDeaths, dataset.TotalDeaths, dataset.PneumoniaDeaths})
	require.Equal(t, []string{"COVID-19 Deaths", "Total Deaths", "Pneumonia Deaths"}, mat.Labels)
	require.InDelta(t, 1, mat.Values[0][0], 1e-12)
	require.InDelta(t, mat.Values[1][2], mat.Values[2][1], 1e-12)
	require.InDelta(t, -1, mat.Values[2][1], 1e-12)
}
