package dataset

import (
	"sort"

	"github.com/rpggio/mortality/internal/domain/ztest"
)

// KeyFunc extracts a grouping key from a row.
type KeyFunc func(Row) string

// Common grouping keys.
var (
	ByState    KeyFunc = func(r Row) string { return r.State }
	BySex      KeyFunc = func(r Row) string { return r.Sex }
	ByAgeGroup KeyFunc = func(r Row) string { return r.AgeGroup }
)

// GroupTotal is the sum of a measure over one group.
type GroupTotal struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	// Rows counts the rows that contributed a non-missing value.
	Rows int `json:"rows"`
}

// Sum adds the measure over rows, skipping missing cells.
func Sum(rows []Row, m Measure) float64 {
	var total float64
	for _, r := range rows {
		if v, ok := r.Value(m); ok {
			total += v
		}
	}
	return total
}

// Values returns the non-missing values of a measure.
func Values(rows []Row, m Measure) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		if v, ok := r.Value(m); ok {
			out = append(out, v)
		}
	}
	return out
}

// Summarize sums the event and total measures into a z-test input.
func Summarize(rows []Row, event, total Measure) ztest.GroupSummary {
	return ztest.GroupSummary{
		EventCount: Sum(rows, event),
		TotalCount: Sum(rows, total),
	}
}

// SumBy totals a measure per key, ordered by descending value then key.
// Groups whose cells are all missing are dropped.
func SumBy(rows []Row, key KeyFunc, m Measure) []GroupTotal {
	totals := sumByKey(rows, key, m)
	out := make([]GroupTotal, 0, len(totals))
	for _, gt := range totals {
		out = append(out, *gt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// SumByOrdered totals a measure for the listed keys in the given order.
// Keys without data are omitted.
func SumByOrdered(rows []Row, key KeyFunc, m Measure, order []string) []GroupTotal {
	totals := sumByKey(rows, key, m)
	out := make([]GroupTotal, 0, len(order))
	for _, k := range order {
		if gt, ok := totals[k]; ok {
			out = append(out, *gt)
		}
	}
	return out
}

// Top returns at most n leading totals.
func Top(totals []GroupTotal, n int) []GroupTotal {
	if n < 0 || n >= len(totals) {
		return totals
	}
	return totals[:n]
}

func sumByKey(rows []Row, key KeyFunc, m Measure) map[string]*GroupTotal {
	totals := make(map[string]*GroupTotal)
	for _, r := range rows {
		v, ok := r.Value(m)
		if !ok {
			continue
		}
		k := key(r)
		gt, exists := totals[k]
		if !exists {
			gt = &GroupTotal{Key: k}
			totals[k] = gt
		}
		gt.Value += v
		gt.Rows++
	}
	return totals
}
