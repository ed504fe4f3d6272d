package fixed

import (
	"math/big"
	"math/bits"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Fixed type is a representation of a signed fixed-point decimal number
// with exactly [Scale] digits after the decimal point.
// The zero value is the numeric value of 0.
// It is designed to be safe for concurrent use by multiple goroutines.
//
// A fixed type is a struct with two parameters:
//
//   - Sign: a boolean indicating whether the number is negative.
//   - Coefficient: a 256-bit unsigned integer equal to the absolute value
//     of the number multiplied by 10^18.
//
// For example, a fixed with a coefficient of 1_500_000_000_000_000_000
// represents the value 1.5.
// Unlike a floating-point number, every value has exactly one representation,
// so fixed values can be compared with the == operator.
type Fixed struct {
	neg  bool // indicates whether the number is negative
	coef wint // the absolute value multiplied by 10^Scale
}

const (
	Scale = 18 // number of digits after the decimal point
)

var (
	// ErrOverflow is returned when the result of an operation has
	// a coefficient greater than 2^255 - 1.
	ErrOverflow = errors.New("fixed-point overflow")
	// ErrDivisionByZero is returned when the divisor is 0.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrDomain is returned when an argument lies outside the domain
	// of a function, such as the logarithm of a non-positive number.
	ErrDomain = errors.New("argument out of domain")

	errInvalidFixed = errors.New("invalid fixed-point number")
	errScaleRange   = errors.New("scale out of range")
)

var (
	// Zero is the fixed-point number 0.
	Zero = Fixed{}
	// One is the fixed-point number 1.
	One = Fixed{coef: wint{scaleWord}}
	// Half is the fixed-point number 0.5.
	Half = Fixed{coef: wint{scaleWord / 2}}
	// Two is the fixed-point number 2.
	Two = Fixed{coef: wint{2 * scaleWord}}
)

// pow10 is a cache of powers of 10, where pow10[x] = 10^x.
var pow10 = [...]uint64{
	1,                         // 10^0
	10,                        // 10^1
	100,                       // 10^2
	1_000,                     // 10^3
	10_000,                    // 10^4
	100_000,                   // 10^5
	1_000_000,                 // 10^6
	10_000_000,                // 10^7
	100_000_000,               // 10^8
	1_000_000_000,             // 10^9
	10_000_000_000,            // 10^10
	100_000_000_000,           // 10^11
	1_000_000_000_000,         // 10^12
	10_000_000_000_000,        // 10^13
	100_000_000_000_000,       // 10^14
	1_000_000_000_000_000,     // 10^15
	10_000_000_000_000_000,    // 10^16
	100_000_000_000_000_000,   // 10^17
	1_000_000_000_000_000_000, // 10^18
}

func newFixed(neg bool, coef wint) (Fixed, error) {
	if coef.cmp(maxWint) > 0 {
		return Fixed{}, ErrOverflow
	}
	if coef.isZero() {
		neg = false
	}
	return Fixed{neg: neg, coef: coef}, nil
}

// newFixedFromBint converts a signed integer scaled by 10^Scale
// to a fixed-point number.
func newFixedFromBint(z *bint) (Fixed, error) {
	neg, coef, ok := z.wint()
	if !ok {
		return Fixed{}, ErrOverflow
	}
	return newFixed(neg, coef)
}

// New returns a fixed-point number equal to coef / 10^scale.
// New panics if scale is less than 0 or greater than [Scale].
func New(coef int64, scale int) Fixed {
	if scale < 0 || scale > Scale {
		panic(errors.Wrapf(errScaleRange, "New(%v, %v) failed", coef, scale))
	}
	neg := coef < 0
	abs := uint64(coef)
	if neg {
		abs = -abs
	}
	hi, lo := bits.Mul64(abs, pow10[Scale-scale])
	d, err := newFixed(neg, wint{lo, hi})
	if err != nil {
		panic(errors.Wrapf(err, "New(%v, %v) failed", coef, scale)) // unexpected
	}
	return d
}

// NewFromInt64 returns a fixed-point number equal to i.
func NewFromInt64(i int64) Fixed {
	return New(i, 0)
}

// FromRaw converts an integer scaled by 10^18 to a fixed-point number.
// This is the representation used by callers that exchange raw
// 18-decimal integers, so FromRaw(10^18) is equal to [One].
// FromRaw returns an error if the absolute value of raw exceeds 2^255 - 1.
func FromRaw(raw *big.Int) (Fixed, error) {
	d, err := newFixedFromBint((*bint)(raw))
	if err != nil {
		return Fixed{}, errors.Wrapf(err, "converting %v", raw)
	}
	return d, nil
}

// MustFromRaw is like [FromRaw] but panics if the integer is out of range.
// This function simplifies safe initialization of global variables holding
// fixed-point numbers.
func MustFromRaw(raw *big.Int) Fixed {
	d, err := FromRaw(raw)
	if err != nil {
		panic(errors.Wrapf(err, "MustFromRaw(%v) failed", raw))
	}
	return d
}

// Raw returns the value of d multiplied by 10^18 as an integer.
// It is the inverse of [FromRaw].
func (d Fixed) Raw() *big.Int {
	z := new(bint)
	z.setWint(d.neg, d.coef)
	return (*big.Int)(z)
}

// setFixed sets z to the coefficient of d with the sign of d.
func (z *bint) setFixed(d Fixed) {
	z.setWint(d.neg, d.coef)
}

// Parse converts a string to a fixed-point number.
// The input string must be in one of the following formats:
//
//	1.234
//	-1234
//	+0.000001234
//	.5
//
// Digits beyond the 18th digit after the decimal point are truncated.
// Parse returns an error if the string is malformed or if the number
// is out of range.
func Parse(s string) (Fixed, error) {
	d, err := parse(s)
	if err != nil {
		return Fixed{}, errors.Wrapf(err, "parsing %q", s)
	}
	return d, nil
}

func parse(s string) (Fixed, error) {
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return Fixed{}, errInvalidFixed
	}
	if !isDigits(whole) || !isDigits(frac) {
		return Fixed{}, errInvalidFixed
	}
	if len(frac) > Scale {
		frac = frac[:Scale]
	}
	frac = frac + strings.Repeat("0", Scale-len(frac))

	// Fast path
	digits := strings.TrimLeft(whole+frac, "0")
	if len(digits) <= 19 {
		u, err := strconv.ParseUint("0"+digits, 10, 64)
		if err == nil {
			return newFixed(neg, wint{u})
		}
	}

	// Slow path
	z := getBint()
	defer putBint(z)
	if _, ok := (*big.Int)(z).SetString(digits, 10); !ok {
		return Fixed{}, errInvalidFixed
	}
	if neg {
		z.neg(z)
	}
	return newFixedFromBint(z)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding
// fixed-point numbers.
func MustParse(s string) Fixed {
	d, err := Parse(s)
	if err != nil {
		panic(errors.Wrapf(err, "MustParse(%q) failed", s))
	}
	return d
}

// String implements the [fmt.Stringer] interface and returns
// a string representation of the number.
// Trailing zeros after the decimal point are omitted.
//
//	0.5
//	-2.718281828459045235
//	8
func (d Fixed) String() string {
	var digits string
	if d.coef.isWord() {
		digits = strconv.FormatUint(d.coef[0], 10)
	} else {
		z := getBint()
		defer putBint(z)
		z.setWint(false, d.coef)
		digits = z.string()
	}
	if len(digits) <= Scale {
		digits = strings.Repeat("0", Scale+1-len(digits)) + digits
	}
	whole := digits[:len(digits)-Scale]
	frac := strings.TrimRight(digits[len(digits)-Scale:], "0")

	var buf strings.Builder
	if d.neg {
		buf.WriteByte('-')
	}
	buf.WriteString(whole)
	if frac != "" {
		buf.WriteByte('.')
		buf.WriteString(frac)
	}
	return buf.String()
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also method [Parse].
func (d *Fixed) UnmarshalText(text []byte) error {
	var err error
	*d, err = Parse(string(text))
	return err
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [Fixed.String].
func (d Fixed) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Float64 returns the nearest binary floating-point number rounded
// using [rounding half to even] rule.
// It is intended for diagnostics and must not feed back into computations.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (d Fixed) Float64() (f float64, ok bool) {
	f, err := strconv.ParseFloat(d.String(), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ULP (Unit in the Last Place) returns the smallest representable positive
// number, which is equal to 10^-18.
func (d Fixed) ULP() Fixed {
	return Fixed{coef: wint{1}}
}

// Sign returns:
//
//	-1 if d < 0
//	 0 if d == 0
//	+1 if d > 0
func (d Fixed) Sign() int {
	switch {
	case d.neg:
		return -1
	case d.coef.isZero():
		return 0
	}
	return 1
}

// IsPos returns true if d > 0.
func (d Fixed) IsPos() bool {
	return !d.neg && !d.coef.isZero()
}

// IsNeg returns true if d < 0.
func (d Fixed) IsNeg() bool {
	return d.neg
}

// IsZero returns true if d == 0.
func (d Fixed) IsZero() bool {
	return d.coef.isZero()
}

// IsOne returns true if d == 1.
func (d Fixed) IsOne() bool {
	return d == One
}

// IsInt returns true if the fractional part of d is equal to 0.
func (d Fixed) IsInt() bool {
	if d.coef.isWord() {
		return d.coef[0]%scaleWord == 0
	}
	z, r := getBint(), getBint()
	defer putBint(z)
	defer putBint(r)
	z.setWint(false, d.coef)
	z.quoRem(z, bpow10[Scale], r)
	return r.sign() == 0
}

// Neg returns a number with the opposite sign.
func (d Fixed) Neg() Fixed {
	if d.coef.isZero() {
		return d
	}
	return Fixed{neg: !d.neg, coef: d.coef}
}

// Abs returns the absolute value of the number.
func (d Fixed) Abs() Fixed {
	return Fixed{coef: d.coef}
}

// Trunc returns the integer part of d, rounding towards zero.
func (d Fixed) Trunc() Fixed {
	if d.coef.isWord() {
		coef := d.coef[0] - d.coef[0]%scaleWord
		f, _ := newFixed(d.neg, wint{coef})
		return f
	}
	z := getBint()
	defer putBint(z)
	z.setFixed(d)
	z.rshDown(z, Scale)
	z.lsh(z, Scale)
	f, err := newFixedFromBint(z)
	if err != nil {
		panic(errors.Wrapf(err, "%v.Trunc() failed", d)) // unexpected
	}
	return f
}

// Cmp compares d and e numerically and returns:
//
//	-1 if d < e
//	 0 if d == e
//	+1 if d > e
func (d Fixed) Cmp(e Fixed) int {
	switch {
	case d.neg && !e.neg:
		return -1
	case !d.neg && e.neg:
		return 1
	case d.neg:
		return -d.coef.cmp(e.coef)
	}
	return d.coef.cmp(e.coef)
}

// CmpAbs compares abs(d) and abs(e).
func (d Fixed) CmpAbs(e Fixed) int {
	return d.coef.cmp(e.coef)
}

// Max returns the larger number.
func (d Fixed) Max(e Fixed) Fixed {
	if d.Cmp(e) >= 0 {
		return d
	}
	return e
}

// Min returns the smaller number.
func (d Fixed) Min(e Fixed) Fixed {
	if d.Cmp(e) <= 0 {
		return d
	}
	return e
}

// Add returns the (exact) sum of d and e.
//
// Add returns an error if the coefficient of the sum exceeds 2^255 - 1.
func (d Fixed) Add(e Fixed) (Fixed, error) {
	f, err := add(d, e)
	if err != nil {
		return Fixed{}, errors.Wrapf(err, "computing [%v + %v]", d, e)
	}
	return f, nil
}

func add(d, e Fixed) (Fixed, error) {
	if d.neg == e.neg {
		coef, ok := d.coef.add(e.coef)
		if !ok {
			return Fixed{}, ErrOverflow
		}
		return newFixed(d.neg, coef)
	}
	coef := d.coef.dist(e.coef)
	neg := d.neg
	if d.coef.cmp(e.coef) < 0 {
		neg = e.neg
	}
	return newFixed(neg, coef)
}

// Sub returns the (exact) difference between d and e.
//
// Sub returns an error if the coefficient of the difference exceeds 2^255 - 1.
func (d Fixed) Sub(e Fixed) (Fixed, error) {
	f, err := add(d, e.Neg())
	if err != nil {
		return Fixed{}, errors.Wrapf(err, "computing [%v - %v]", d, e)
	}
	return f, nil
}

// Mul returns the product of d and e rounded towards zero
// to 18 digits after the decimal point.
//
// Mul returns an error if the coefficient of the product exceeds 2^255 - 1.
func (d Fixed) Mul(e Fixed) (Fixed, error) {
	f, err := mulFast(d, e)
	if err != nil {
		f, err = mulSlow(d, e)
		if err != nil {
			return Fixed{}, errors.Wrapf(err, "computing [%v * %v]", d, e)
		}
	}
	return f, nil
}

// mulFast computes the product using uint64 arithmetic.
// It fails if either coefficient or the product does not fit into a word.
func mulFast(d, e Fixed) (Fixed, error) {
	if !d.coef.isWord() || !e.coef.isWord() {
		return Fixed{}, ErrOverflow
	}
	coef, ok := mulWord(d.coef[0], e.coef[0])
	if !ok {
		return Fixed{}, ErrOverflow
	}
	return newFixed(d.neg != e.neg, wint{coef})
}

// mulSlow computes the product using big.Int arithmetic.
func mulSlow(d, e Fixed) (Fixed, error) {
	dcoef, ecoef := getBint(), getBint()
	defer putBint(dcoef)
	defer putBint(ecoef)
	dcoef.setFixed(d)
	ecoef.setFixed(e)

	dcoef.mul(dcoef, ecoef)
	dcoef.rshDown(dcoef, Scale)

	return newFixedFromBint(dcoef)
}

// Quo returns the quotient of d and e rounded towards zero
// to 18 digits after the decimal point.
//
// Quo returns an error if:
//   - the divisor is 0;
//   - the coefficient of the quotient exceeds 2^255 - 1.
func (d Fixed) Quo(e Fixed) (Fixed, error) {
	// Special case: zero divisor
	if e.IsZero() {
		return Fixed{}, errors.Wrapf(ErrDivisionByZero, "computing [%v / %v]", d, e)
	}

	// General case
	f, err := quoFast(d, e)
	if err != nil {
		f, err = quoSlow(d, e)
		if err != nil {
			return Fixed{}, errors.Wrapf(err, "computing [%v / %v]", d, e)
		}
	}
	return f, nil
}

// quoFast computes the quotient using uint64 arithmetic.
func quoFast(d, e Fixed) (Fixed, error) {
	if !d.coef.isWord() || !e.coef.isWord() {
		return Fixed{}, ErrOverflow
	}
	coef, ok := quoWord(d.coef[0], e.coef[0])
	if !ok {
		return Fixed{}, ErrOverflow
	}
	return newFixed(d.neg != e.neg, wint{coef})
}

// quoSlow computes the quotient using big.Int arithmetic.
func quoSlow(d, e Fixed) (Fixed, error) {
	dcoef, ecoef := getBint(), getBint()
	defer putBint(dcoef)
	defer putBint(ecoef)
	dcoef.setFixed(d)
	ecoef.setFixed(e)

	// Dividend alignment
	dcoef.lsh(dcoef, Scale)

	dcoef.quo(dcoef, ecoef)

	return newFixedFromBint(dcoef)
}

// Inv returns the (possibly rounded) inverse of d, which is equal to 1 / d.
//
// Inv returns an error if d is 0 or if the coefficient of the inverse
// exceeds 2^255 - 1.
func (d Fixed) Inv() (Fixed, error) {
	f, err := One.Quo(d)
	if err != nil {
		return Fixed{}, errors.Wrapf(err, "inverting %v", d)
	}
	return f, nil
}

// PowInt returns d raised to the integer power, computed by repeated squaring.
// Every intermediate product is rounded towards zero.
// Negative powers are computed as the inverse of the positive power.
//
// PowInt returns an error if:
//   - d is 0 and power is negative;
//   - the coefficient of the result exceeds 2^255 - 1.
func (d Fixed) PowInt(power int) (Fixed, error) {
	if power < 0 {
		f, err := d.powInt(-power)
		if err != nil {
			return Fixed{}, errors.Wrapf(err, "computing [%v^%v]", d, power)
		}
		return f.Inv()
	}
	f, err := d.powInt(power)
	if err != nil {
		return Fixed{}, errors.Wrapf(err, "computing [%v^%v]", d, power)
	}
	return f, nil
}

func (d Fixed) powInt(power int) (Fixed, error) {
	// Special case
	if power == 0 {
		return One, nil
	}
	// General case
	f, err := d.powInt(power / 2)
	if err != nil {
		return Fixed{}, err
	}
	f, err = mul(f, f)
	if err != nil {
		return Fixed{}, err
	}
	if power%2 == 0 {
		return f, nil
	}
	return mul(f, d)
}

// mul is [Fixed.Mul] without error wrapping, for use in loops.
func mul(d, e Fixed) (Fixed, error) {
	f, err := mulFast(d, e)
	if err != nil {
		f, err = mulSlow(d, e)
	}
	return f, err
}
