package metalog

import (
	"github.com/govalues/metalog/fixed"
)

// calc chains fixed-point operations and keeps the first error.
// Once an error occurs all further operations return zero.
type calc struct {
	err error
}

func (c *calc) add(d, e fixed.Fixed) fixed.Fixed {
	if c.err != nil {
		return fixed.Zero
	}
	f, err := d.Add(e)
	c.err = err
	return f
}

func (c *calc) sub(d, e fixed.Fixed) fixed.Fixed {
	if c.err != nil {
		return fixed.Zero
	}
	f, err := d.Sub(e)
	c.err = err
	return f
}

func (c *calc) mul(d, e fixed.Fixed) fixed.Fixed {
	if c.err != nil {
		return fixed.Zero
	}
	f, err := d.Mul(e)
	c.err = err
	return f
}

func (c *calc) quo(d, e fixed.Fixed) fixed.Fixed {
	if c.err != nil {
		return fixed.Zero
	}
	f, err := d.Quo(e)
	c.err = err
	return f
}

func (c *calc) inv(d fixed.Fixed) fixed.Fixed {
	if c.err != nil {
		return fixed.Zero
	}
	f, err := d.Inv()
	c.err = err
	return f
}

func (c *calc) ln(d fixed.Fixed) fixed.Fixed {
	if c.err != nil {
		return fixed.Zero
	}
	f, err := d.Ln()
	c.err = err
	return f
}

func (c *calc) exp(d fixed.Fixed) fixed.Fixed {
	if c.err != nil {
		return fixed.Zero
	}
	f, err := d.Exp()
	c.err = err
	return f
}

func (c *calc) powInt(d fixed.Fixed, power int) fixed.Fixed {
	if c.err != nil {
		return fixed.Zero
	}
	f, err := d.PowInt(power)
	c.err = err
	return f
}

// point holds the factors of the basis functions at a percentile.
type point struct {
	p        fixed.Fixed
	logit    fixed.Fixed // ln(p / (1 - p))
	dlogit   fixed.Fixed // 1/p + 1/(1 - p), the derivative of logit
	centered fixed.Fixed // p - 0.5
}

// newPoint computes the basis factors at p.
// If p is not strictly between 0 and 1, the result is undefined.
func newPoint(p fixed.Fixed) (point, error) {
	var c calc
	q := c.sub(fixed.One, p)
	pt := point{
		p:        p,
		logit:    c.ln(c.quo(p, q)),
		dlogit:   c.add(c.inv(p), c.inv(q)),
		centered: c.sub(p, fixed.Half),
	}
	if c.err != nil {
		return point{}, c.err
	}
	return pt, nil
}

// term returns the k-th basis function, where k starts from 1:
//
//	k = 1:            1
//	k = 2:            logit
//	k = 3:            centered * logit
//	k = 4:            centered
//	k >= 5, k odd:    centered^((k-1)/2)
//	k >= 6, k even:   centered^(k/2-1) * logit
func (pt point) term(k int) (fixed.Fixed, error) {
	var c calc
	var f fixed.Fixed
	switch {
	case k == 1:
		f = fixed.One
	case k == 2:
		f = pt.logit
	case k == 3:
		f = c.mul(pt.centered, pt.logit)
	case k == 4:
		f = pt.centered
	case k%2 == 1:
		f = c.powInt(pt.centered, (k-1)/2)
	default:
		f = c.mul(c.powInt(pt.centered, k/2-1), pt.logit)
	}
	return f, c.err
}

// termDerivative returns the derivative of the k-th basis function
// with respect to the percentile, obtained by the chain rule.
func (pt point) termDerivative(k int) (fixed.Fixed, error) {
	var c calc
	var f fixed.Fixed
	switch {
	case k == 1:
		f = fixed.Zero
	case k == 2:
		f = pt.dlogit
	case k == 3:
		f = c.add(pt.logit, c.mul(pt.centered, pt.dlogit))
	case k == 4:
		f = fixed.One
	case k%2 == 1:
		m := (k - 1) / 2
		f = c.mul(fixed.NewFromInt64(int64(m)), c.powInt(pt.centered, m-1))
	default:
		m := k/2 - 1
		g := c.mul(c.mul(fixed.NewFromInt64(int64(m)), c.powInt(pt.centered, m-1)), pt.logit)
		h := c.mul(c.powInt(pt.centered, m), pt.dlogit)
		f = c.add(g, h)
	}
	return f, c.err
}

// quantile returns the unbounded quantile, which is the sum of the basis
// functions weighted by the coefficients.
func (pt point) quantile(coefs []fixed.Fixed) (fixed.Fixed, error) {
	var c calc
	sum := fixed.Zero
	for i, a := range coefs {
		t, err := pt.term(i + 1)
		if err != nil {
			return fixed.Fixed{}, err
		}
		sum = c.add(sum, c.mul(a, t))
	}
	return sum, c.err
}

// quantileDerivative returns the derivative of the unbounded quantile
// with respect to the percentile.
func (pt point) quantileDerivative(coefs []fixed.Fixed) (fixed.Fixed, error) {
	var c calc
	sum := fixed.Zero
	for i, a := range coefs {
		t, err := pt.termDerivative(i + 1)
		if err != nil {
			return fixed.Fixed{}, err
		}
		sum = c.add(sum, c.mul(a, t))
	}
	return sum, c.err
}

// Terms returns the first n basis functions of the metalog distribution
// at percentile p.
// The i-th coefficient passed to [Quantile] weights the i-th term.
func Terms(p fixed.Fixed, n int) ([]fixed.Fixed, error) {
	if err := checkPercentile(p); err != nil {
		return nil, err
	}
	if err := checkTerms(n); err != nil {
		return nil, err
	}
	pt, err := newPoint(p)
	if err != nil {
		return nil, err
	}
	terms := make([]fixed.Fixed, n)
	for k := range terms {
		terms[k], err = pt.term(k + 1)
		if err != nil {
			return nil, err
		}
	}
	return terms, nil
}
