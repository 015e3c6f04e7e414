package dataset_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpggio/mortality/internal/dataset"
	"github.com/stretchr/testify/require"
)

func TestRead_ParsesRows(t *testing.T) {
	rows := loadSample(t)

	first := rows[0]
	require.Equal(t, "United States", first.State)
	require.Equal(t, "All Sexes", first.Sex)
	require.Equal(t, "All Ages", first.AgeGroup, "header whitespace is trimmed")
	require.Equal(t, "By Total", first.Group)
	require.Equal(t, "01/01/2020", first.StartDate)

	v, ok := first.Value(dataset.PneumoniaInfluenzaOrCOVIDDeaths)
	require.True(t, ok)
	require.Equal(t, 1550.0, v)

	_, ok = rows[4].Value(dataset.COVIDDeaths)
	require.False(t, ok, "empty cell is missing")
	require.NotEmpty(t, rows[4].Footnote)

	v, ok = rows[5].Value(dataset.COVIDDeaths)
	require.True(t, ok)
	require.Equal(t, 1250.0, v, "thousands separator is accepted")
}

func TestRead_MissingRequiredColumn(t *testing.T) {
	_, err := dataset.Read(strings.NewReader("State,Sex,COVID-19 Deaths\nTexas,Male,1\n"))
	require.ErrorIs(t, err, dataset.ErrMissingColumn)
}

func TestRead_InvalidNumber(t *testing.T) {
	input := "State,Sex,Age Group,COVID-19 Deaths\nTexas,Male,All Ages,lots\n"
	_, err := dataset.Read(strings.NewReader(input))
	require.ErrorIs(t, err, dataset.ErrInvalidValue)
	require.Contains(t, err.Error(), "line 2")
}

func TestRead_Empty(t *testing.T) {
	_, err := dataset.Read(strings.NewReader(""))
	require.ErrorIs(t, err, dataset.ErrEmpty)
}

func TestRead_AbsentMeasureColumnIsMissing(t *testing.T) {
	rows, err := dataset.Read(strings.NewReader("State,Sex,Age Group,Total Deaths\nTexas,Male,All Ages,10\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	_, ok := rows[0].Value(dataset.COVIDDeaths)
	require.False(t, ok)
	v, ok := rows[0].Value(dataset.TotalDeaths)
	require.True(t, ok)
	require.Equal(t, 10.0, v)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deaths.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	rows, err := dataset.Load(path)
	require.NoError(t, err)
	require.Len(t, rows, 7)

	_, err = dataset.Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestParseMeasure(t *testing.T) {
	m, err := dataset.ParseMeasure("  total deaths ")
	require.NoError(t, err)
	require.Equal(t, dataset.TotalDeaths, m)

	m, err = dataset.ParseMeasure("Pneumonia, Influenza, or COVID-19 Deaths")
	require.NoError(t, err)
	require.Equal(t, dataset.PneumoniaInfluenzaOrCOVIDDeaths, m)

	_, err = dataset.ParseMeasure("Flu")
	require.ErrorIs(t, err, dataset.ErrUnknownMeasure)

	require.Len(t, dataset.Measures(), 6)
}
