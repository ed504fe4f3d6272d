package metalog

import (
	"github.com/cockroachdb/errors"
	"github.com/govalues/metalog/fixed"
)

const (
	MinTerms = 2  // minimum number of coefficients
	MaxTerms = 16 // maximum number of coefficients
)

var (
	// ErrOverflow is returned when an intermediate result does not fit
	// into a fixed-point number.
	ErrOverflow = fixed.ErrOverflow
	// ErrDivisionByZero is returned when an intermediate divisor is 0.
	ErrDivisionByZero = fixed.ErrDivisionByZero
	// ErrDomain is returned when a logarithm argument is not positive or
	// when a value lies outside the support implied by the bounds.
	ErrDomain = fixed.ErrDomain
	// ErrInvalidPercentile is returned when a percentile is not strictly
	// between 0 and 1.
	ErrInvalidPercentile = errors.New("invalid percentile")
	// ErrNonConvergence is returned when the percentile search reaches
	// its iteration ceiling or the value cannot be reached.
	ErrNonConvergence = errors.New("percentile search did not converge")
	// ErrInvalidBounds is returned when bound parameters are inconsistent
	// with the bound choice.
	ErrInvalidBounds = errors.New("invalid bounds")
	// ErrInvalidTerms is returned when the number of coefficients is
	// outside [MinTerms, MaxTerms].
	ErrInvalidTerms = errors.New("invalid number of terms")
	// ErrInfeasible is returned when the quantile function is not strictly
	// increasing for the given coefficients.
	ErrInfeasible = errors.New("infeasible coefficients")
	// ErrInvalidOptions is returned when inverter options are out of range.
	ErrInvalidOptions = errors.New("invalid inverter options")

	// The messages of these errors are relied upon by existing callers.
	errPercentileTooLow  = errors.Mark(errors.New("percentile_ <= 0%"), ErrInvalidPercentile)
	errPercentileTooHigh = errors.Mark(errors.New("percentile_ >= 100%"), ErrInvalidPercentile)
)

// checkPercentile verifies that 0 < p < 1.
func checkPercentile(p fixed.Fixed) error {
	switch {
	case p.Sign() <= 0:
		return errPercentileTooLow
	case p.Cmp(fixed.One) >= 0:
		return errPercentileTooHigh
	}
	return nil
}

func checkTerms(n int) error {
	if n < MinTerms || n > MaxTerms {
		return errors.Wrapf(ErrInvalidTerms, "got %v coefficients, want from %v to %v", n, MinTerms, MaxTerms)
	}
	return nil
}

// Quantile returns the value of the metalog distribution at percentile p,
// which must be strictly between 0 and 1.
// The coefficients weight the basis functions in order, see [Terms].
//
// Quantile returns an error if:
//   - p <= 0, with the message "percentile_ <= 0%";
//   - p >= 1, with the message "percentile_ >= 100%";
//   - the number of coefficients or the bounds are invalid;
//   - an intermediate result overflows.
func Quantile(p fixed.Fixed, coefs []fixed.Fixed, bounds Bounds) (fixed.Fixed, error) {
	if err := checkPercentile(p); err != nil {
		return fixed.Fixed{}, err
	}
	if err := checkTerms(len(coefs)); err != nil {
		return fixed.Fixed{}, err
	}
	if err := bounds.Validate(); err != nil {
		return fixed.Fixed{}, err
	}
	pt, err := newPoint(p)
	if err != nil {
		return fixed.Fixed{}, err
	}
	y, err := pt.quantile(coefs)
	if err != nil {
		return fixed.Fixed{}, err
	}
	return bounds.Transform(y)
}

// QuantileDensity returns the derivative of the quantile function at
// percentile p, including the bound transform.
// For feasible coefficients it is positive and equal to the inverse
// of [Density].
func QuantileDensity(p fixed.Fixed, coefs []fixed.Fixed, bounds Bounds) (fixed.Fixed, error) {
	if err := checkPercentile(p); err != nil {
		return fixed.Fixed{}, err
	}
	if err := checkTerms(len(coefs)); err != nil {
		return fixed.Fixed{}, err
	}
	if err := bounds.Validate(); err != nil {
		return fixed.Fixed{}, err
	}
	pt, err := newPoint(p)
	if err != nil {
		return fixed.Fixed{}, err
	}
	y, err := pt.quantile(coefs)
	if err != nil {
		return fixed.Fixed{}, err
	}
	dy, err := pt.quantileDerivative(coefs)
	if err != nil {
		return fixed.Fixed{}, err
	}
	slope, err := bounds.slope(y)
	if err != nil {
		return fixed.Fixed{}, err
	}
	return dy.Mul(slope)
}

// Density returns the probability density at the quantile of percentile p.
//
// Density returns [ErrInfeasible] if the quantile function is not
// increasing at p.
func Density(p fixed.Fixed, coefs []fixed.Fixed, bounds Bounds) (fixed.Fixed, error) {
	dx, err := QuantileDensity(p, coefs, bounds)
	if err != nil {
		return fixed.Fixed{}, err
	}
	if !dx.IsPos() {
		return fixed.Fixed{}, errors.Wrapf(ErrInfeasible, "quantile density at %v is %v", p, dx)
	}
	return dx.Inv()
}

// feasibilityGrid lists the percentiles probed by [CheckFeasibility]:
// 0.0001, 0.001, 0.005, 0.010, ..., 0.995, 0.999, 0.9999.
var feasibilityGrid = func() []fixed.Fixed {
	grid := []fixed.Fixed{fixed.New(1, 4), fixed.New(1, 3)}
	for k := int64(1); k < 200; k++ {
		grid = append(grid, fixed.New(5*k, 3))
	}
	return append(grid, fixed.New(999, 3), fixed.New(9999, 4))
}()

// CheckFeasibility verifies that the derivative of the quantile function
// is positive on a fixed grid of percentiles, which is the condition for
// the coefficients to describe a valid distribution.
// Bound transforms are strictly increasing and do not affect feasibility.
//
// CheckFeasibility returns [ErrInfeasible] naming the first percentile
// where the condition fails.
func CheckFeasibility(coefs []fixed.Fixed) error {
	if err := checkTerms(len(coefs)); err != nil {
		return err
	}
	for _, p := range feasibilityGrid {
		pt, err := newPoint(p)
		if err != nil {
			return err
		}
		dy, err := pt.quantileDerivative(coefs)
		if err != nil {
			return err
		}
		if !dy.IsPos() {
			return errors.Wrapf(ErrInfeasible, "quantile density at %v is %v", p, dy)
		}
	}
	return nil
}
