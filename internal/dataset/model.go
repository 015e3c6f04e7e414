// Package dataset loads and aggregates the provisional deaths-by-sex-and-age table.
package dataset

import (
	"fmt"
	"math"
	"strings"
)

// Measure identifies a numeric column of the dataset.
type Measure int

const (
	COVIDDeaths Measure = iota
	TotalDeaths
	PneumoniaDeaths
	PneumoniaAndCOVIDDeaths
	InfluenzaDeaths
	PneumoniaInfluenzaOrCOVIDDeaths

	numMeasures
)

var measureNames = [numMeasures]string{
	COVIDDeaths:                     "COVID-19 Deaths",
	TotalDeaths:                     "Total Deaths",
	PneumoniaDeaths:                 "Pneumonia Deaths",
	PneumoniaAndCOVIDDeaths:         "Pneumonia and COVID-19 Deaths",
	InfluenzaDeaths:                 "Influenza Deaths",
	PneumoniaInfluenzaOrCOVIDDeaths: "Pneumonia, Influenza, or COVID-19 Deaths",
}

// Measures lists every numeric column in file order.
func Measures() []Measure {
	out := make([]Measure, 0, numMeasures)
	for m := Measure(0); m < numMeasures; m++ {
		out = append(out, m)
	}
	return out
}

// String returns the column header of the measure.
func (m Measure) String() string {
	if m < 0 || m >= numMeasures {
		return fmt.Sprintf("Measure(%d)", int(m))
	}
	return measureNames[m]
}

// ParseMeasure resolves a column header (case-insensitive, whitespace-trimmed).
func ParseMeasure(name string) (Measure, error) {
	name = strings.TrimSpace(name)
	for m, n := range measureNames {
		if strings.EqualFold(n, name) {
			return Measure(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMeasure, name)
}

// Row is one line of the dataset.
type Row struct {
	DataAsOf  string
	StartDate string
	EndDate   string
	Group     string
	Year      string
	Month     string
	State     string
	Sex       string
	AgeGroup  string
	Footnote  string

	values [numMeasures]float64
}

// Value returns the measure and whether it is present. Suppressed or empty
// cells are reported as missing.
func (r Row) Value(m Measure) (float64, bool) {
	if m < 0 || m >= numMeasures {
		return 0, false
	}
	v := r.values[m]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// SetValue stores a measure value. NaN marks the cell as missing.
func (r *Row) SetValue(m Measure, v float64) {
	if m < 0 || m >= numMeasures {
		return
	}
	r.values[m] = v
}

// NewRow returns a row with every measure missing.
func NewRow(state, sex, ageGroup string) Row {
	r := Row{State: state, Sex: sex, AgeGroup: ageGroup}
	for i := range r.values {
		r.values[i] = math.NaN()
	}
	return r
}

// Well-known category labels.
const (
	StateUnitedStates = "United States"
	SexAll            = "All Sexes"
	SexMale           = "Male"
	SexFemale         = "Female"
	AgeGroupAll       = "All Ages"
)

// AgeBands is the ten-year band ordering used for trend tables.
var AgeBands = []string{
	"Under 1 year", "1-4 years", "5-14 years", "15-24 years", "25-34 years",
	"35-44 years", "45-54 years", "55-64 years", "65-74 years",
	"75-84 years", "85 years and over",
}
