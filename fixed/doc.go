/*
Package fixed implements immutable signed fixed-point decimal numbers
with 18 digits after the decimal point, together with the exponential,
logarithm and power functions computed without floating-point arithmetic.
Every result is a deterministic function of its arguments, so the same
computation produces the same digits on every platform.

# Representation

[Fixed] is a struct with two fields:

  - Sign: a boolean indicating whether the number is negative.
  - Coefficient: a 256-bit unsigned integer equal to the absolute value
    of the number multiplied by 10^18.
    For example, a fixed with a coefficient of 2_500_000_000_000_000_000
    represents the value 2.5.

The numerical value of a fixed is calculated as:

  - -Coefficient / 10^18, if Sign is true.
  - Coefficient / 10^18, if Sign is false.

Unlike a decimal floating-point number, each value has exactly one
representation and the scale never changes.

# Constraints

The coefficient is at most 2^255 - 1, so the range of a fixed is:

	| Minimum                                                                           | Maximum                                                                          |
	| --------------------------------------------------------------------------------- | -------------------------------------------------------------------------------- |
	| -57896044618658097711785492504343953926634992332820282019728.792003956564819967 | 57896044618658097711785492504343953926634992332820282019728.792003956564819967 |

The smallest positive number is 10^-18.

Special values such as NaN, Infinity, or negative zeros are not supported.
This ensures that arithmetic operations always produce either valid
numbers or errors.

# Conversions

The package provides methods for converting numbers:

  - from/to string:
    [Parse], [Fixed.String], [Fixed.MarshalText], [Fixed.UnmarshalText].
  - from/to raw 18-decimal integers:
    [FromRaw], [Fixed.Raw].
  - from int64:
    [New], [NewFromInt64].
  - to float64, for diagnostics only:
    [Fixed.Float64].

# Operations

Each multiplication and division is carried out in two steps:

 1. The operation is initially performed using uint64 arithmetic with
    a 128-bit intermediate product.
    If no overflow occurs, the result is immediately returned.
    If an overflow does occur, the operation proceeds to step 2.

 2. The operation is repeated using [big.Int] arithmetic.

Both steps produce identical results.
Products and quotients are rounded towards zero.

[Fixed.Exp], [Fixed.Exp2], [Fixed.Ln], [Fixed.Log2] and [Fixed.Pow] use
36 digits of intermediate precision and a fixed ladder of 64 binary roots
of 2, so each of them performs a bounded number of integer operations.
Their results are rounded towards zero.
The following identities hold exactly:

	Exp(0) == 1
	Ln(1) == 0
	Exp2(n) == 2^n, for integer n
	Log2(2^n) == n, for integer n
	Pow(2^n, m) == 2^(n*m), for integers n and m

# Errors

All methods are panic-free and pure, except for the Must* helpers.
Errors are returned in the following cases:

  - Division by Zero.
    [Fixed.Quo], [Fixed.Inv], [Fixed.PowInt] and [Fixed.Pow] return
    [ErrDivisionByZero] instead of panicking.

  - Domain.
    [Fixed.Ln] and [Fixed.Log2] return [ErrDomain] for non-positive
    arguments, [Fixed.Pow] for a negative base with a non-integer exponent.

  - Overflow.
    There is no "wrap around" for fixed-point numbers.
    For out-of-range values, arithmetic operations return [ErrOverflow].

Errors are not returned in the following cases:

  - Underflow.
    Results smaller than 10^-18 in absolute value are rounded to 0.

[big.Int]: https://pkg.go.dev/math/big#Int
*/
package fixed
