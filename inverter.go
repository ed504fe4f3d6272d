package metalog

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/govalues/metalog/fixed"
)

// DefaultMaxIterations is the default ceiling on the number of steps taken
// by the percentile search.
// Plain bisection of [1e-15, 1 - 1e-15] reaches the resolution of 1e-18
// in 60 steps, and the search bisects at least every other step.
const DefaultMaxIterations = 128

var (
	// defaultTolerance is the relative residual accepted by the search.
	defaultTolerance = fixed.New(1, 12)
	// minPercentile and maxPercentile enclose the search bracket.
	minPercentile = fixed.New(1, 15)
	maxPercentile = fixed.One.MustSub(minPercentile)
)

// Method tells how the percentile of a search step was chosen.
type Method int

const (
	MethodStart     Method = iota // the initial guess of 0.5
	MethodNewton                  // a Newton-Raphson step
	MethodBisection               // the midpoint of the bracket
)

func (m Method) String() string {
	switch m {
	case MethodStart:
		return "start"
	case MethodNewton:
		return "newton"
	case MethodBisection:
		return "bisection"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// Step describes one evaluation of the percentile search.
type Step struct {
	Iteration  int         // 0 for the initial guess
	Percentile fixed.Fixed // percentile being evaluated
	Residual   fixed.Fixed // unbounded quantile minus the target
	Method     Method      // how Percentile was chosen
}

// InverterOptions control [ApproximatePercentileWithOptions].
type InverterOptions struct {
	// Tolerance is the accepted residual relative to the magnitude of the
	// target in unbounded space, or absolute if the magnitude is below 1.
	// It must not be negative.
	// With a zero tolerance only an exact root is accepted.
	Tolerance fixed.Fixed
	// MaxIterations is the ceiling on the number of steps after the
	// initial guess. It must be positive.
	MaxIterations int
	// Trace, if not nil, is called for every evaluated step.
	Trace func(Step)
}

// DefaultInverterOptions returns a relative tolerance of 1e-12 and
// [DefaultMaxIterations].
func DefaultInverterOptions() InverterOptions {
	return InverterOptions{
		Tolerance:     defaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

func (o InverterOptions) validate() error {
	if o.Tolerance.IsNeg() {
		return errors.Wrapf(ErrInvalidOptions, "negative tolerance %v", o.Tolerance)
	}
	if o.MaxIterations <= 0 {
		return errors.Wrapf(ErrInvalidOptions, "max iterations %v is not positive", o.MaxIterations)
	}
	return nil
}

// ApproximatePercentile returns the percentile p such that the quantile at p
// approximately equals x, using [DefaultInverterOptions].
//
// ApproximatePercentile returns an error if:
//   - x lies outside the support ([ErrDomain]);
//   - x lies beyond the quantiles of 1e-15 or 1 - 1e-15, the search
//     exceeds its iteration ceiling, or the bracket shrinks to a single
//     ulp while the residual is still above tolerance ([ErrNonConvergence]);
//   - the number of coefficients or the bounds are invalid.
func ApproximatePercentile(x fixed.Fixed, coefs []fixed.Fixed, bounds Bounds) (fixed.Fixed, error) {
	return ApproximatePercentileWithOptions(x, coefs, bounds, DefaultInverterOptions())
}

// ApproximatePercentileWithOptions is like [ApproximatePercentile] but
// takes explicit search options.
//
// The value x is mapped into unbounded space once and the search then
// combines Newton-Raphson steps with bisection of a bracket that always
// contains the solution.
// A Newton step is replaced by bisection when the quantile density is not
// positive, when the step leaves the bracket or when it is not at least
// half of the step before last.
// The search succeeds only when the residual is within tolerance.
// In the far tails one ulp of percentile can move the quantile by more
// than the tolerance; when the bracket shrinks to a single ulp there the
// search fails with [ErrNonConvergence] instead of returning the nearest
// representable percentile.
func ApproximatePercentileWithOptions(x fixed.Fixed, coefs []fixed.Fixed, bounds Bounds, opts InverterOptions) (fixed.Fixed, error) {
	if err := checkTerms(len(coefs)); err != nil {
		return fixed.Fixed{}, err
	}
	if err := bounds.Validate(); err != nil {
		return fixed.Fixed{}, err
	}
	if err := opts.validate(); err != nil {
		return fixed.Fixed{}, err
	}
	target, err := bounds.Inverse(x)
	if err != nil {
		return fixed.Fixed{}, err
	}
	s, err := newSearch(target, coefs, opts)
	if err != nil {
		return fixed.Fixed{}, err
	}
	p, err := s.run()
	if err != nil {
		return fixed.Fixed{}, errors.Wrapf(err, "approximating percentile of %v", x)
	}
	return p, nil
}

// search finds the root of Q(p) - target on [minPercentile, maxPercentile].
type search struct {
	target fixed.Fixed
	coefs  []fixed.Fixed
	tol    fixed.Fixed // absolute tolerance
	opts   InverterOptions
}

func newSearch(target fixed.Fixed, coefs []fixed.Fixed, opts InverterOptions) (*search, error) {
	tol, err := opts.Tolerance.Mul(target.Abs().Max(fixed.One))
	if err != nil {
		return nil, err
	}
	return &search{target: target, coefs: coefs, tol: tol, opts: opts}, nil
}

// eval returns the residual and the quantile density at p.
func (s *search) eval(p fixed.Fixed) (f, q fixed.Fixed, err error) {
	pt, err := newPoint(p)
	if err != nil {
		return fixed.Fixed{}, fixed.Fixed{}, err
	}
	y, err := pt.quantile(s.coefs)
	if err != nil {
		return fixed.Fixed{}, fixed.Fixed{}, err
	}
	f, err = y.Sub(s.target)
	if err != nil {
		return fixed.Fixed{}, fixed.Fixed{}, err
	}
	q, err = pt.quantileDerivative(s.coefs)
	if err != nil {
		return fixed.Fixed{}, fixed.Fixed{}, err
	}
	return f, q, nil
}

func (s *search) converged(f fixed.Fixed) bool {
	return f.CmpAbs(s.tol) <= 0
}

func (s *search) trace(i int, p, f fixed.Fixed, m Method) {
	if s.opts.Trace != nil {
		s.opts.Trace(Step{Iteration: i, Percentile: p, Residual: f, Method: m})
	}
}

func (s *search) run() (fixed.Fixed, error) {
	lo, hi := minPercentile, maxPercentile

	// The solution must be inside the bracket.
	flo, _, err := s.eval(lo)
	if err != nil {
		return fixed.Fixed{}, err
	}
	if s.converged(flo) {
		return lo, nil
	}
	fhi, _, err := s.eval(hi)
	if err != nil {
		return fixed.Fixed{}, err
	}
	if s.converged(fhi) {
		return hi, nil
	}
	if flo.IsPos() || fhi.IsNeg() {
		qlo, err := flo.Add(s.target)
		if err != nil {
			return fixed.Fixed{}, err
		}
		qhi, err := fhi.Add(s.target)
		if err != nil {
			return fixed.Fixed{}, err
		}
		return fixed.Fixed{}, errors.Wrapf(ErrNonConvergence, "target %v is not bracketed by Q(%v) = %v and Q(%v) = %v", s.target, lo, qlo, hi, qhi)
	}

	p, method := fixed.Half, MethodStart
	dx := hi.MustSub(lo)
	dxOld := dx
	for i := 0; ; i++ {
		f, q, err := s.eval(p)
		if err != nil {
			return fixed.Fixed{}, err
		}
		s.trace(i, p, f, method)
		if s.converged(f) {
			return p, nil
		}
		if f.IsNeg() {
			lo = p
		} else {
			hi = p
		}
		width := hi.MustSub(lo)
		if width.Cmp(width.ULP()) <= 0 {
			return fixed.Fixed{}, errors.Wrapf(ErrNonConvergence, "bracket [%v, %v] cannot shrink, residual %v exceeds tolerance %v", lo, hi, f, s.tol)
		}
		if i == s.opts.MaxIterations {
			return fixed.Fixed{}, errors.Wrapf(ErrNonConvergence, "%v iterations exceeded, last percentile %v, residual %v", s.opts.MaxIterations, p, f)
		}
		step, ok := newtonStep(f, q, dxOld)
		var next fixed.Fixed
		if ok {
			next, err = p.Sub(step)
			ok = err == nil && next.Cmp(lo) > 0 && next.Cmp(hi) < 0
		}
		dxOld = dx
		if ok {
			method = MethodNewton
			dx = step.Abs()
		} else {
			method = MethodBisection
			dx = width.MustQuo(fixed.Two)
			next = lo.MustAdd(dx)
		}
		p = next
	}
}

// newtonStep returns f / q, or false if q is not positive or the step is
// larger than half of limit.
func newtonStep(f, q, limit fixed.Fixed) (fixed.Fixed, bool) {
	if !q.IsPos() {
		return fixed.Fixed{}, false
	}
	step, err := f.Quo(q)
	if err != nil {
		return fixed.Fixed{}, false
	}
	double, err := step.Abs().Mul(fixed.Two)
	if err != nil || double.Cmp(limit) > 0 {
		return fixed.Fixed{}, false
	}
	return step, true
}
