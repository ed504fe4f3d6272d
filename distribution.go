package metalog

import (
	"fmt"
	"strings"

	"github.com/govalues/metalog/fixed"
)

// Distribution is a metalog distribution with fixed coefficients and bounds.
// It is immutable and safe for concurrent use.
type Distribution struct {
	coefs  []fixed.Fixed
	bounds Bounds
}

// NewDistribution returns a distribution with the given coefficients and
// bounds. The coefficients are copied.
//
// NewDistribution returns an error if the number of coefficients or the
// bounds are invalid. Feasibility is not checked, see [CheckFeasibility].
func NewDistribution(coefs []fixed.Fixed, bounds Bounds) (Distribution, error) {
	if err := checkTerms(len(coefs)); err != nil {
		return Distribution{}, err
	}
	if err := bounds.Validate(); err != nil {
		return Distribution{}, err
	}
	return Distribution{
		coefs:  append([]fixed.Fixed(nil), coefs...),
		bounds: bounds,
	}, nil
}

// MustNewDistribution is like [NewDistribution] but panics on error.
func MustNewDistribution(coefs []fixed.Fixed, bounds Bounds) Distribution {
	d, err := NewDistribution(coefs, bounds)
	if err != nil {
		panic(fmt.Sprintf("NewDistribution(%v, %v) failed: %v", coefs, bounds, err))
	}
	return d
}

// Coefficients returns a copy of the coefficients.
func (d Distribution) Coefficients() []fixed.Fixed {
	return append([]fixed.Fixed(nil), d.coefs...)
}

// Bounds returns the bounds of the support.
func (d Distribution) Bounds() Bounds {
	return d.bounds
}

// Terms returns the number of coefficients.
func (d Distribution) Terms() int {
	return len(d.coefs)
}

// Quantile is like the package-level [Quantile].
func (d Distribution) Quantile(p fixed.Fixed) (fixed.Fixed, error) {
	return Quantile(p, d.coefs, d.bounds)
}

// QuantileDensity is like the package-level [QuantileDensity].
func (d Distribution) QuantileDensity(p fixed.Fixed) (fixed.Fixed, error) {
	return QuantileDensity(p, d.coefs, d.bounds)
}

// Density is like the package-level [Density].
func (d Distribution) Density(p fixed.Fixed) (fixed.Fixed, error) {
	return Density(p, d.coefs, d.bounds)
}

// Percentile is like [ApproximatePercentile].
func (d Distribution) Percentile(x fixed.Fixed) (fixed.Fixed, error) {
	return ApproximatePercentile(x, d.coefs, d.bounds)
}

// PercentileWithOptions is like [ApproximatePercentileWithOptions].
func (d Distribution) PercentileWithOptions(x fixed.Fixed, opts InverterOptions) (fixed.Fixed, error) {
	return ApproximatePercentileWithOptions(x, d.coefs, d.bounds, opts)
}

// CheckFeasibility is like the package-level [CheckFeasibility].
func (d Distribution) CheckFeasibility() error {
	return CheckFeasibility(d.coefs)
}

// String returns the coefficients and the support, for example
// "metalog[1, 0.5] on (-inf, +inf)".
func (d Distribution) String() string {
	var sb strings.Builder
	sb.WriteString("metalog[")
	for i, a := range d.coefs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteString("] on ")
	sb.WriteString(d.bounds.String())
	return sb.String()
}
