package metalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/govalues/metalog/fixed"
	"github.com/stretchr/testify/require"
)

func TestNewDistribution(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		coefs := parseAll("1", "0.5", "0.25")
		d, err := NewDistribution(coefs, NewBoundedBelow(fixed.Zero))
		require.NoError(t, err)
		require.Equal(t, 3, d.Terms())
		require.Equal(t, NewBoundedBelow(fixed.Zero), d.Bounds())

		// Mutating the input or the returned slice does not affect d.
		coefs[0] = fixed.NewFromInt64(100)
		got := d.Coefficients()
		got[1] = fixed.NewFromInt64(100)
		if diff := cmp.Diff(parseAll("1", "0.5", "0.25"), d.Coefficients(), fixedComparer); diff != "" {
			t.Errorf("Coefficients() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("error", func(t *testing.T) {
		_, err := NewDistribution(parseAll("1"), NewUnbounded())
		require.ErrorIs(t, err, ErrInvalidTerms)
		_, err = NewDistribution(nineTerms, Bounds{Choice: Bounded})
		require.ErrorIs(t, err, ErrInvalidBounds)
	})

	t.Run("panic", func(t *testing.T) {
		require.Panics(t, func() {
			MustNewDistribution(nil, NewUnbounded())
		})
		require.NotPanics(t, func() {
			MustNewDistribution(nineTerms, NewUnbounded())
		})
	})
}

func TestDistribution_Methods(t *testing.T) {
	bounded, err := NewBounded(fixed.New(5, 1), fixed.New(15, 1))
	require.NoError(t, err)

	for _, b := range []Bounds{NewUnbounded(), NewBoundedBelow(fixed.Zero), bounded} {
		d := MustNewDistribution(nineTerms, b)
		require.NoError(t, d.CheckFeasibility())

		for _, s := range []string{"0.05", "0.5", "0.8"} {
			p := fixed.MustParse(s)

			want, err := Quantile(p, nineTerms, b)
			require.NoError(t, err)
			got, err := d.Quantile(p)
			require.NoError(t, err)
			require.Equal(t, want, got)

			wantDensity, err := QuantileDensity(p, nineTerms, b)
			require.NoError(t, err)
			gotDensity, err := d.QuantileDensity(p)
			require.NoError(t, err)
			require.Equal(t, wantDensity, gotDensity)

			wantPDF, err := Density(p, nineTerms, b)
			require.NoError(t, err)
			gotPDF, err := d.Density(p)
			require.NoError(t, err)
			require.Equal(t, wantPDF, gotPDF)

			wantP, err := ApproximatePercentile(want, nineTerms, b)
			require.NoError(t, err)
			gotP, err := d.Percentile(want)
			require.NoError(t, err)
			require.Equal(t, wantP, gotP)

			gotP, err = d.PercentileWithOptions(want, DefaultInverterOptions())
			require.NoError(t, err)
			require.Equal(t, wantP, gotP)
		}
	}
}

func TestDistribution_String(t *testing.T) {
	bounded, err := NewBounded(fixed.Zero, fixed.NewFromInt64(10))
	require.NoError(t, err)
	tests := []struct {
		d    Distribution
		want string
	}{
		{MustNewDistribution(parseAll("1", "0.5"), NewUnbounded()), "metalog[1, 0.5] on (-inf, +inf)"},
		{MustNewDistribution(parseAll("-2", "0.125", "0"), bounded), "metalog[-2, 0.125, 0] on (0, 10)"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.d.String())
	}
}
