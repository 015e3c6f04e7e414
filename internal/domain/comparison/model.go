package comparison

import (
	"time"

	"github.com/rpggio/mortality/internal/dataset"
	"github.com/rpggio/mortality/internal/domain/ztest"
)

// Group names one side of a comparison and the rows it covers.
type Group struct {
	Label    string           `yaml:"label" json:"label"`
	Selector dataset.Selector `yaml:"selector" json:"selector"`
}

// Definition describes a two-group proportion test over the dataset.
type Definition struct {
	Name   string  `yaml:"name" json:"name"`
	GroupA Group   `yaml:"group_a" json:"group_a"`
	GroupB Group   `yaml:"group_b" json:"group_b"`
	Event  string  `yaml:"event,omitempty" json:"event,omitempty"`
	Total  string  `yaml:"total,omitempty" json:"total,omitempty"`
	Alpha  float64 `yaml:"alpha,omitempty" json:"alpha,omitempty"`
}

// Comparison is a completed test together with its inputs.
type Comparison struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	LabelA    string             `json:"label_a"`
	LabelB    string             `json:"label_b"`
	Event     string             `json:"event"`
	Total     string             `json:"total"`
	GroupA    ztest.GroupSummary `json:"group_a"`
	GroupB    ztest.GroupSummary `json:"group_b"`
	Result    ztest.Result       `json:"result"`
	Source    string             `json:"source,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}
