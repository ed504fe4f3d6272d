package metalog

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/govalues/metalog/fixed"
)

// BoundChoice selects the support of a metalog distribution.
type BoundChoice int

const (
	Unbounded    BoundChoice = iota // support is the whole real line
	BoundedBelow                    // support is (Lower, +inf)
	BoundedAbove                    // support is (-inf, Upper)
	Bounded                         // support is (Lower, Upper)
)

func (c BoundChoice) String() string {
	switch c {
	case Unbounded:
		return "unbounded"
	case BoundedBelow:
		return "bounded below"
	case BoundedAbove:
		return "bounded above"
	case Bounded:
		return "bounded"
	}
	return fmt.Sprintf("BoundChoice(%d)", int(c))
}

// Bounds describes the support of a metalog distribution.
// Only the fields required by Choice may be set, the others must be zero.
// For [Bounded], Lower must be less than Upper.
// Use [Bounds.Validate] to check these requirements.
//
// The zero value is an unbounded support.
type Bounds struct {
	Choice BoundChoice
	Lower  fixed.Fixed
	Upper  fixed.Fixed
}

// NewUnbounded returns bounds of a distribution supported on the whole real line.
func NewUnbounded() Bounds {
	return Bounds{Choice: Unbounded}
}

// NewBoundedBelow returns bounds of a distribution supported on (lo, +inf).
func NewBoundedBelow(lo fixed.Fixed) Bounds {
	return Bounds{Choice: BoundedBelow, Lower: lo}
}

// NewBoundedAbove returns bounds of a distribution supported on (-inf, hi).
func NewBoundedAbove(hi fixed.Fixed) Bounds {
	return Bounds{Choice: BoundedAbove, Upper: hi}
}

// NewBounded returns bounds of a distribution supported on (lo, hi).
// NewBounded returns an error if lo >= hi.
func NewBounded(lo, hi fixed.Fixed) (Bounds, error) {
	b := Bounds{Choice: Bounded, Lower: lo, Upper: hi}
	if err := b.Validate(); err != nil {
		return Bounds{}, err
	}
	return b, nil
}

// Validate returns [ErrInvalidBounds] if the fields of b are inconsistent
// with its choice.
func (b Bounds) Validate() error {
	switch b.Choice {
	case Unbounded:
		if !b.Lower.IsZero() || !b.Upper.IsZero() {
			return errors.Wrapf(ErrInvalidBounds, "unbounded support with lower %v and upper %v", b.Lower, b.Upper)
		}
	case BoundedBelow:
		if !b.Upper.IsZero() {
			return errors.Wrapf(ErrInvalidBounds, "support bounded below with upper %v", b.Upper)
		}
	case BoundedAbove:
		if !b.Lower.IsZero() {
			return errors.Wrapf(ErrInvalidBounds, "support bounded above with lower %v", b.Lower)
		}
	case Bounded:
		if b.Lower.Cmp(b.Upper) >= 0 {
			return errors.Wrapf(ErrInvalidBounds, "lower %v is not less than upper %v", b.Lower, b.Upper)
		}
	default:
		return errors.Wrapf(ErrInvalidBounds, "unknown choice %v", b.Choice)
	}
	return nil
}

// Contains reports whether x lies inside the support.
func (b Bounds) Contains(x fixed.Fixed) bool {
	switch b.Choice {
	case BoundedBelow:
		return x.Cmp(b.Lower) > 0
	case BoundedAbove:
		return x.Cmp(b.Upper) < 0
	case Bounded:
		return x.Cmp(b.Lower) > 0 && x.Cmp(b.Upper) < 0
	}
	return true
}

// Transform maps an unbounded quantile y into the support:
//
//	Unbounded:    y
//	BoundedBelow: Lower + exp(y)
//	BoundedAbove: Upper - exp(-y)
//	Bounded:      (Lower + Upper * exp(y)) / (1 + exp(y))
//
// Exponentials below 10^-18 flush to 0, as in [fixed.Fixed.Exp], so for
// |y| beyond about 41.4 the result can equal Lower or Upper exactly,
// which lies outside the open support reported by [Bounds.Contains].
//
// The caller must ensure that b is valid.
func (b Bounds) Transform(y fixed.Fixed) (fixed.Fixed, error) {
	var c calc
	var x fixed.Fixed
	switch b.Choice {
	case BoundedBelow:
		x = c.add(b.Lower, c.exp(y))
	case BoundedAbove:
		x = c.sub(b.Upper, c.exp(y.Neg()))
	case Bounded:
		// With t = exp(-|y|) the fraction stays in [0, 1/2].
		t := c.exp(y.Abs().Neg())
		s := c.quo(c.mul(c.sub(b.Upper, b.Lower), t), c.add(fixed.One, t))
		if y.IsNeg() {
			x = c.add(b.Lower, s)
		} else {
			x = c.sub(b.Upper, s)
		}
	default:
		x = y
	}
	if c.err != nil {
		return fixed.Fixed{}, errors.Wrapf(c.err, "transforming %v to %v support", y, b.Choice)
	}
	return x, nil
}

// Inverse maps a value of the support back to the unbounded quantile:
//
//	Unbounded:    x
//	BoundedBelow: ln(x - Lower)
//	BoundedAbove: -ln(Upper - x)
//	Bounded:      ln(x - Lower) - ln(Upper - x)
//
// Inverse returns [ErrDomain] if x lies outside the support.
// The caller must ensure that b is valid.
func (b Bounds) Inverse(x fixed.Fixed) (fixed.Fixed, error) {
	if !b.Contains(x) {
		return fixed.Fixed{}, errors.Wrapf(ErrDomain, "value %v is outside of support %v", x, b)
	}
	var c calc
	var y fixed.Fixed
	switch b.Choice {
	case BoundedBelow:
		y = c.ln(c.sub(x, b.Lower))
	case BoundedAbove:
		y = c.ln(c.sub(b.Upper, x)).Neg()
	case Bounded:
		y = c.sub(c.ln(c.sub(x, b.Lower)), c.ln(c.sub(b.Upper, x)))
	default:
		y = x
	}
	if c.err != nil {
		return fixed.Fixed{}, errors.Wrapf(c.err, "mapping %v from %v support", x, b.Choice)
	}
	return y, nil
}

// slope returns the derivative of [Bounds.Transform] at y.
func (b Bounds) slope(y fixed.Fixed) (fixed.Fixed, error) {
	var c calc
	var d fixed.Fixed
	switch b.Choice {
	case BoundedBelow:
		d = c.exp(y)
	case BoundedAbove:
		d = c.exp(y.Neg())
	case Bounded:
		// (Upper - Lower) * t / (1 + t)^2, which is symmetric in y.
		t := c.exp(y.Abs().Neg())
		u := c.add(fixed.One, t)
		d = c.quo(c.quo(c.mul(c.sub(b.Upper, b.Lower), t), u), u)
	default:
		d = fixed.One
	}
	if c.err != nil {
		return fixed.Fixed{}, errors.Wrapf(c.err, "computing slope of %v transform at %v", b.Choice, y)
	}
	return d, nil
}

// String returns the support as an open interval, for example "(0, +inf)".
func (b Bounds) String() string {
	switch b.Choice {
	case Unbounded:
		return "(-inf, +inf)"
	case BoundedBelow:
		return fmt.Sprintf("(%v, +inf)", b.Lower)
	case BoundedAbove:
		return fmt.Sprintf("(-inf, %v)", b.Upper)
	case Bounded:
		return fmt.Sprintf("(%v, %v)", b.Lower, b.Upper)
	}
	return fmt.Sprintf("%v[%v, %v]", b.Choice, b.Lower, b.Upper)
}
