/*
Package metalog evaluates the quantile function of the [metalog distribution]
and inverts it, using only the fixed-point arithmetic of package [fixed].
All results are deterministic: the same inputs produce the same digits on
every platform, and every computation finishes in a bounded number of steps.

# Quantile function

A metalog distribution with n terms is defined by n coefficients a1, ..., an.
Its unbounded quantile at percentile p is the weighted sum of basis functions:

	Q(p) = a1 + a2*L + a3*C*L + a4*C + a5*C^2 + a6*C^2*L + a7*C^3 + ...

where L = ln(p / (1 - p)) and C = p - 0.5.
See [Terms] for the exact order of the basis functions.
The number of coefficients must be from [MinTerms] to [MaxTerms].

# Bounds

The unbounded quantile can be mapped into a semi-bounded or bounded support:

	| Choice         | Quantile                        | Support          |
	| -------------- | ------------------------------- | ---------------- |
	| [Unbounded]    | Q                               | (-inf, +inf)     |
	| [BoundedBelow] | lo + exp(Q)                     | (lo, +inf)       |
	| [BoundedAbove] | hi - exp(-Q)                    | (-inf, hi)       |
	| [Bounded]      | (lo + hi*exp(Q)) / (1 + exp(Q)) | (lo, hi)         |

# Operations

  - [Quantile] computes the value at a percentile.
  - [QuantileDensity] and [Density] compute the derivative of the quantile
    function and the probability density.
  - [ApproximatePercentile] finds the percentile of a value.
    There is no closed form, so the search combines Newton-Raphson steps
    with bisection and stops after at most [DefaultMaxIterations] steps.
  - [CheckFeasibility] verifies that coefficients describe a valid
    distribution.

[Distribution] bundles coefficients with bounds and exposes the same
operations as methods.

# Errors

All functions are panic-free and pure.
Errors are returned in the following cases:

  - Invalid Percentile.
    Percentiles must be strictly between 0 and 1.
    The message is "percentile_ <= 0%" or "percentile_ >= 100%",
    and [errors.Is] reports [ErrInvalidPercentile].

  - Domain.
    [ApproximatePercentile] returns [ErrDomain] if the value lies outside
    the support.

  - Non-Convergence.
    [ApproximatePercentile] returns [ErrNonConvergence] if the value lies
    beyond the quantiles of 1e-15 and 1 - 1e-15, if the search reaches
    its iteration ceiling, or if the bracket shrinks to a single ulp while
    the residual is still above tolerance, which can happen in the far
    tails where one ulp of percentile moves the quantile by more than the
    tolerance.
    An unconverged percentile is never returned.

  - Overflow and Division by Zero.
    Intermediate results that do not fit into a [fixed.Fixed] produce
    [ErrOverflow] or [ErrDivisionByZero].

[metalog distribution]: https://en.wikipedia.org/wiki/Metalog_distribution
[errors.Is]: https://pkg.go.dev/github.com/cockroachdb/errors#Is
*/
package metalog
