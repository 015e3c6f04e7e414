package ztest_test

import (
	"math"
	"testing"

	"github.com/rpggio/mortality/internal/domain/ztest"
	"github.com/stretchr/testify/require"
)

func TestCompute_SignificantDifference(t *testing.T) {
	a := ztest.GroupSummary{EventCount: 1000, TotalCount: 100000}
	b := ztest.GroupSummary{EventCount: 800, TotalCount: 100000}

	res, err := ztest.ComputeDefault(a, b)
	require.NoError(t, err)
	require.InDelta(t, 0.01, res.ProportionA, 1e-12)
	require.InDelta(t, 0.008, res.ProportionB, 1e-12)
	require.InDelta(t, 0.009, res.PooledProportion, 1e-12)
	require.InDelta(t, 0.000421, res.StandardError, 1e-6)
	require.InDelta(t, 4.74, res.ZScore, 0.01)
	require.Less(t, res.PValue, 0.001)
	require.Equal(t, ztest.DefaultAlpha, res.Alpha)
	require.True(t, res.Significant)
}

func TestCompute_NearlyIdenticalProportions(t *testing.T) {
	a := ztest.GroupSummary{EventCount: 500, TotalCount: 50000}
	b := ztest.GroupSummary{EventCount: 505, TotalCount: 50500}

	res, err := ztest.ComputeDefault(a, b)
	require.NoError(t, err)
	require.InDelta(t, 0.01, res.ProportionA, 1e-12)
	require.InDelta(t, 0.01, res.ProportionB, 1e-12)
	require.InDelta(t, 0, res.ZScore, 1e-9)
	require.InDelta(t, 1, res.PValue, 1e-9)
	require.False(t, res.Significant)
}

func TestCompute_EqualProportions(t *testing.T) {
	res, err := ztest.ComputeDefault(
		ztest.GroupSummary{EventCount: 25, TotalCount: 100},
		ztest.GroupSummary{EventCount: 50, TotalCount: 200},
	)
	require.NoError(t, err)
	require.Equal(t, 0.0, res.ZScore)
	require.Equal(t, 1.0, res.PValue)
	require.False(t, res.Significant)
}

func TestCompute_Symmetry(t *testing.T) {
	a := ztest.GroupSummary{EventCount: 37, TotalCount: 410}
	b := ztest.GroupSummary{EventCount: 81, TotalCount: 530}

	ab, err := ztest.ComputeDefault(a, b)
	require.NoError(t, err)
	ba, err := ztest.ComputeDefault(b, a)
	require.NoError(t, err)

	require.InDelta(t, ab.ZScore, -ba.ZScore, 1e-12)
	require.InDelta(t, ab.PValue, ba.PValue, 1e-15)
	require.Equal(t, ab.ProportionA, ba.ProportionB)
	require.Equal(t, ab.Significant, ba.Significant)
}

func TestCompute_SignFollowsDifference(t *testing.T) {
	res, err := ztest.ComputeDefault(
		ztest.GroupSummary{EventCount: 10, TotalCount: 100},
		ztest.GroupSummary{EventCount: 20, TotalCount: 100},
	)
	require.NoError(t, err)
	require.Less(t, res.ZScore, 0.0)
}

func TestCompute_PValueDecreasesWithDifference(t *testing.T) {
	b := ztest.GroupSummary{EventCount: 100, TotalCount: 1000}
	prev := 2.0
	for events := 100.0; events <= 200; events += 10 {
		res, err := ztest.ComputeDefault(ztest.GroupSummary{EventCount: events, TotalCount: 1000}, b)
		require.NoError(t, err)
		require.Less(t, res.PValue, prev, "events=%v", events)
		prev = res.PValue
	}
}

func TestCompute_ProportionsWithinUnitInterval(t *testing.T) {
	cases := []struct {
		a, b ztest.GroupSummary
	}{
		{ztest.GroupSummary{EventCount: 0, TotalCount: 10}, ztest.GroupSummary{EventCount: 10, TotalCount: 10}},
		{ztest.GroupSummary{EventCount: 1, TotalCount: 3}, ztest.GroupSummary{EventCount: 2, TotalCount: 7}},
		{ztest.GroupSummary{EventCount: 0.5, TotalCount: 1.5}, ztest.GroupSummary{EventCount: 0, TotalCount: 4}},
	}
	for _, tc := range cases {
		res, err := ztest.ComputeDefault(tc.a, tc.b)
		require.NoError(t, err)
		require.GreaterOrEqual(t, res.ProportionA, 0.0)
		require.LessOrEqual(t, res.ProportionA, 1.0)
		require.GreaterOrEqual(t, res.ProportionB, 0.0)
		require.LessOrEqual(t, res.ProportionB, 1.0)
		require.GreaterOrEqual(t, res.PValue, 0.0)
		require.LessOrEqual(t, res.PValue, 1.0)
	}
}

func TestCompute_LargeZKeepsTailPrecision(t *testing.T) {
	res, err := ztest.ComputeDefault(
		ztest.GroupSummary{EventCount: 20000, TotalCount: 100000},
		ztest.GroupSummary{EventCount: 15000, TotalCount: 100000},
	)
	require.NoError(t, err)
	require.Greater(t, res.ZScore, 20.0)
	require.Greater(t, res.PValue, 0.0, "tail must not collapse to zero")
	require.True(t, res.Significant)
}

func TestTwoTailedP(t *testing.T) {
	require.Equal(t, 1.0, ztest.TwoTailedP(0))
	require.InDelta(t, 0.05, ztest.TwoTailedP(1.959963984540054), 1e-9)
	require.InDelta(t, 0.0026997960632601866, ztest.TwoTailedP(-3), 1e-12)

	// Deep tail compared against the closed form erfc(|z|/sqrt 2).
	for _, z := range []float64{6, 8, 10, 20} {
		want := math.Erfc(z / math.Sqrt2)
		got := ztest.TwoTailedP(z)
		require.InEpsilon(t, want, got, 1e-9, "z=%v", z)
		require.Greater(t, got, 0.0)
	}
}

func TestCompute_CustomAlpha(t *testing.T) {
	a := ztest.GroupSummary{EventCount: 60, TotalCount: 500}
	b := ztest.GroupSummary{EventCount: 45, TotalCount: 500}

	loose, err := ztest.Compute(a, b, 0.2)
	require.NoError(t, err)
	strict, err := ztest.Compute(a, b, 0.001)
	require.NoError(t, err)

	require.Equal(t, loose.PValue, strict.PValue)
	require.True(t, loose.Significant)
	require.False(t, strict.Significant)
}

func TestCompute_Errors(t *testing.T) {
	valid := ztest.GroupSummary{EventCount: 5, TotalCount: 50}

	cases := []struct {
		name  string
		a, b  ztest.GroupSummary
		alpha float64
		want  error
	}{
		{"zero total a", ztest.GroupSummary{}, valid, 0.05, ztest.ErrZeroTotal},
		{"zero total b", valid, ztest.GroupSummary{EventCount: 0, TotalCount: 0}, 0.05, ztest.ErrZeroTotal},
		{"event above total", ztest.GroupSummary{EventCount: 51, TotalCount: 50}, valid, 0.05, ztest.ErrInvalidInput},
		{"negative event", valid, ztest.GroupSummary{EventCount: -1, TotalCount: 50}, 0.05, ztest.ErrInvalidInput},
		{"negative total", ztest.GroupSummary{EventCount: 0, TotalCount: -5}, valid, 0.05, ztest.ErrInvalidInput},
		{"nan event", ztest.GroupSummary{EventCount: math.NaN(), TotalCount: 50}, valid, 0.05, ztest.ErrInvalidInput},
		{"inf total", valid, ztest.GroupSummary{EventCount: 1, TotalCount: math.Inf(1)}, 0.05, ztest.ErrInvalidInput},
		{"alpha zero", valid, valid, 0, ztest.ErrInvalidInput},
		{"alpha one", valid, valid, 1, ztest.ErrInvalidInput},
		{"alpha nan", valid, valid, math.NaN(), ztest.ErrInvalidInput},
		{"no events anywhere", ztest.GroupSummary{EventCount: 0, TotalCount: 10}, ztest.GroupSummary{EventCount: 0, TotalCount: 20}, 0.05, ztest.ErrUndefinedTest},
		{"all events everywhere", ztest.GroupSummary{EventCount: 10, TotalCount: 10}, ztest.GroupSummary{EventCount: 20, TotalCount: 20}, 0.05, ztest.ErrUndefinedTest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ztest.Compute(tc.a, tc.b, tc.alpha)
			require.ErrorIs(t, err, tc.want)
		})
	}
}
