package ztest

// GroupSummary holds the aggregate counts for one side of a comparison.
type GroupSummary struct {
	EventCount float64 `json:"event_count"`
	TotalCount float64 `json:"total_count"`
}

// Proportion returns EventCount/TotalCount without validation.
func (g GroupSummary) Proportion() float64 {
	return g.EventCount / g.TotalCount
}

// Result is the outcome of a pooled two-proportion z-test.
type Result struct {
	ProportionA      float64 `json:"proportion_a"`
	ProportionB      float64 `json:"proportion_b"`
	PooledProportion float64 `json:"pooled_proportion"`
	StandardError    float64 `json:"standard_error"`
	ZScore           float64 `json:"z_score"`
	PValue           float64 `json:"p_value"`
	Alpha            float64 `json:"alpha"`
	Significant      bool    `json:"significant"`
}
