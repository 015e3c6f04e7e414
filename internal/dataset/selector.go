package dataset

// Selector picks rows by categorical value. An empty list places no
// constraint on that dimension; exclusions apply after inclusions.
type Selector struct {
	States           []string `yaml:"states,omitempty" json:"states,omitempty"`
	ExcludeStates    []string `yaml:"exclude_states,omitempty" json:"exclude_states,omitempty"`
	Sexes            []string `yaml:"sexes,omitempty" json:"sexes,omitempty"`
	ExcludeSexes     []string `yaml:"exclude_sexes,omitempty" json:"exclude_sexes,omitempty"`
	AgeGroups        []string `yaml:"age_groups,omitempty" json:"age_groups,omitempty"`
	ExcludeAgeGroups []string `yaml:"exclude_age_groups,omitempty" json:"exclude_age_groups,omitempty"`
}

// Match reports whether the row satisfies every constraint.
func (s Selector) Match(r Row) bool {
	return included(s.States, r.State) && !contains(s.ExcludeStates, r.State) &&
		included(s.Sexes, r.Sex) && !contains(s.ExcludeSexes, r.Sex) &&
		included(s.AgeGroups, r.AgeGroup) && !contains(s.ExcludeAgeGroups, r.AgeGroup)
}

// Filter returns the rows matched by sel, preserving order.
func Filter(rows []Row, sel Selector) []Row {
	var out []Row
	for _, r := range rows {
		if sel.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func included(list []string, v string) bool {
	return len(list) == 0 || contains(list, v)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
