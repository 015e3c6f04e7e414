package comparison

import "github.com/rpggio/mortality/internal/dataset"

// Age bands of the adult comparison.
var (
	OlderAdultAgeGroups   = []string{"65-74 years", "75-84 years", "85 years and over"}
	YoungerAdultAgeGroups = []string{"18-29 years", "30-39 years", "40-49 years", "50-64 years"}
)

// DefaultDefinitions returns the sex and adult-age comparisons for one state.
func DefaultDefinitions(state string) []Definition {
	states := []string{state}
	return []Definition{
		{
			Name: "sex",
			GroupA: Group{
				Label:    "Males",
				Selector: dataset.Selector{States: states, Sexes: []string{dataset.SexMale}},
			},
			GroupB: Group{
				Label:    "Females",
				Selector: dataset.Selector{States: states, Sexes: []string{dataset.SexFemale}},
			},
		},
		{
			Name: "age",
			GroupA: Group{
				Label:    "Adults 65+",
				Selector: dataset.Selector{States: states, AgeGroups: OlderAdultAgeGroups},
			},
			GroupB: Group{
				Label:    "Adults 18-64",
				Selector: dataset.Selector{States: states, AgeGroups: YoungerAdultAgeGroups},
			},
		},
	}
}
