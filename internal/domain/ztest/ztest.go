// Package ztest implements the pooled two-proportion z-test.
package ztest

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// DefaultAlpha is the significance threshold used when none is given.
const DefaultAlpha = 0.05

// ComputeDefault runs Compute at DefaultAlpha.
func ComputeDefault(a, b GroupSummary) (Result, error) {
	return Compute(a, b, DefaultAlpha)
}

// Compute tests the null hypothesis that groups a and b share the same
// event proportion. The p-value is two-tailed.
func Compute(a, b GroupSummary, alpha float64) (Result, error) {
	if math.IsNaN(alpha) || alpha <= 0 || alpha >= 1 {
		return Result{}, fmt.Errorf("%w: alpha %v not in (0, 1)", ErrInvalidInput, alpha)
	}
	if err := validateGroup("a", a); err != nil {
		return Result{}, err
	}
	if err := validateGroup("b", b); err != nil {
		return Result{}, err
	}

	pa := a.Proportion()
	pb := b.Proportion()
	pool := (a.EventCount + b.EventCount) / (a.TotalCount + b.TotalCount)
	se := math.Sqrt(pool * (1 - pool) * (1/a.TotalCount + 1/b.TotalCount))
	if se == 0 || math.IsNaN(se) {
		return Result{}, fmt.Errorf("%w: pooled proportion %v", ErrUndefinedTest, pool)
	}

	z := (pa - pb) / se
	p := TwoTailedP(z)

	return Result{
		ProportionA:      pa,
		ProportionB:      pb,
		PooledProportion: pool,
		StandardError:    se,
		ZScore:           z,
		PValue:           p,
		Alpha:            alpha,
		Significant:      p < alpha,
	}, nil
}

// TwoTailedP returns 2*(1-Φ(|z|)). The upper tail is evaluated as Φ(-|z|),
// which the erfc-based CDF computes without cancellation.
func TwoTailedP(z float64) float64 {
	p := 2 * stats.StdNormal.CDF(-math.Abs(z))
	if p > 1 {
		return 1
	}
	return p
}

func validateGroup(name string, g GroupSummary) error {
	if !finite(g.EventCount) || !finite(g.TotalCount) {
		return fmt.Errorf("%w: group %s has non-finite counts", ErrInvalidInput, name)
	}
	if g.TotalCount == 0 {
		return fmt.Errorf("%w: group %s", ErrZeroTotal, name)
	}
	if g.TotalCount < 0 {
		return fmt.Errorf("%w: group %s total %v is negative", ErrInvalidInput, name, g.TotalCount)
	}
	if g.EventCount < 0 || g.EventCount > g.TotalCount {
		return fmt.Errorf("%w: group %s event count %v outside [0, %v]", ErrInvalidInput, name, g.EventCount, g.TotalCount)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
