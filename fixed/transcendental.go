package fixed

import (
	"math/big"

	"github.com/cockroachdb/errors"
)

const (
	wideScale = 2 * Scale // number of digits after the decimal point in intermediate results
	ladderLen = 64        // number of binary digits resolved by the exponent ladders
	maxExp2   = 256       // 2^maxExp2 exceeds the range of any fixed-point number
)

// bexp2 is a ladder of binary roots of 2, where bexp2[k] = round(2^(1/2^k) * 10^36).
// Exp2 multiplies the rungs selected by the binary digits of the fraction,
// Log2 divides out every rung the mantissa exceeds.
var bexp2 = [...]*bint{
	mustParseBint("2000000000000000000000000000000000000"), // 2^(1/2^0)
	mustParseBint("1414213562373095048801688724209698079"), // 2^(1/2^1)
	mustParseBint("1189207115002721066717499970560475915"), // 2^(1/2^2)
	mustParseBint("1090507732665257659207010655760707979"), // 2^(1/2^3)
	mustParseBint("1044273782427413840321966478739929009"), // 2^(1/2^4)
	mustParseBint("1021897148654116678234480134783299440"), // 2^(1/2^5)
	mustParseBint("1010889286051700460020409790561860524"), // 2^(1/2^6)
	mustParseBint("1005429901112802821351383955934799815"), // 2^(1/2^7)
	mustParseBint("1002711275050202485430745588450362040"), // 2^(1/2^8)
	mustParseBint("1001354719892108205880881526784094947"), // 2^(1/2^9)
	mustParseBint("1000677130693066356678172784874647195"), // 2^(1/2^10)
	mustParseBint("1000338508052682312953305481856216404"), // 2^(1/2^11)
	mustParseBint("1000169239705302231083640758064073503"), // 2^(1/2^12)
	mustParseBint("1000084616272694313202633330783591225"), // 2^(1/2^13)
	mustParseBint("1000042307241395819339251908864052928"), // 2^(1/2^14)
	mustParseBint("1000021153396964808094249807333199656"), // 2^(1/2^15)
	mustParseBint("1000010576642549720234848628420564532"), // 2^(1/2^16)
	mustParseBint("1000005288307291763111366867464240909"), // 2^(1/2^17)
	mustParseBint("1000002644150150116547502753385226174"), // 2^(1/2^18)
	mustParseBint("1000001322074201118177120243570283605"), // 2^(1/2^19)
	mustParseBint("1000000661036882074208828926050248901"), // 2^(1/2^20)
	mustParseBint("1000000330518386415902534977092444026"), // 2^(1/2^21)
	mustParseBint("1000000165259179552653054280535547057"), // 2^(1/2^22)
	mustParseBint("1000000082629586362502255921158376993"), // 2^(1/2^23)
	mustParseBint("1000000041314792327795095416160949033"), // 2^(1/2^24)
	mustParseBint("1000000020657395950533543979520644025"), // 2^(1/2^25)
	mustParseBint("1000000010328697921925771608563445603"), // 2^(1/2^26)
	mustParseBint("1000000005164348947627635777850388228"), // 2^(1/2^27)
	mustParseBint("1000000002582174470480005390925845998"), // 2^(1/2^28)
	mustParseBint("1000000001291087234406549572039146659"), // 2^(1/2^29)
	mustParseBint("1000000000645543616994911505298136830"), // 2^(1/2^30)
	mustParseBint("1000000000322771808445364932485522738"), // 2^(1/2^31)
	mustParseBint("1000000000161385904209659761203976631"), // 2^(1/2^32)
	mustParseBint("1000000000080692952101574204342554841"), // 2^(1/2^33)
	mustParseBint("1000000000040346476049973183106451891"), // 2^(1/2^34)
	mustParseBint("1000000000020173238024783111787023668"), // 2^(1/2^35)
	mustParseBint("1000000000010086619012340685951961778"), // 2^(1/2^36)
	mustParseBint("1000000000005043309506157625490593439"), // 2^(1/2^37)
	mustParseBint("1000000000002521654753075633373949865"), // 2^(1/2^38)
	mustParseBint("1000000000001260827376537021844138220"), // 2^(1/2^39)
	mustParseBint("1000000000000630413688268312211359932"), // 2^(1/2^40)
	mustParseBint("1000000000000315206844134106428002671"), // 2^(1/2^41)
	mustParseBint("1000000000000157603422067040794582012"), // 2^(1/2^42)
	mustParseBint("1000000000000078801711033517292436175"), // 2^(1/2^43)
	mustParseBint("1000000000000039400855516757870004380"), // 2^(1/2^44)
	mustParseBint("1000000000000019700427758378740948763"), // 2^(1/2^45)
	mustParseBint("1000000000000009850213879189321961025"), // 2^(1/2^46)
	mustParseBint("1000000000000004925106939594648852173"), // 2^(1/2^47)
	mustParseBint("1000000000000002462553469797321394002"), // 2^(1/2^48)
	mustParseBint("1000000000000001231276734898659938980"), // 2^(1/2^49)
	mustParseBint("1000000000000000615638367449329779985"), // 2^(1/2^50)
	mustParseBint("1000000000000000307819183724664842616"), // 2^(1/2^51)
	mustParseBint("1000000000000000153909591862332409464"), // 2^(1/2^52)
	mustParseBint("1000000000000000076954795931166201771"), // 2^(1/2^53)
	mustParseBint("1000000000000000038477397965583100145"), // 2^(1/2^54)
	mustParseBint("1000000000000000019238698982791549888"), // 2^(1/2^55)
	mustParseBint("1000000000000000009619349491395774898"), // 2^(1/2^56)
	mustParseBint("1000000000000000004809674745697887437"), // 2^(1/2^57)
	mustParseBint("1000000000000000002404837372848943716"), // 2^(1/2^58)
	mustParseBint("1000000000000000001202418686424471857"), // 2^(1/2^59)
	mustParseBint("1000000000000000000601209343212235928"), // 2^(1/2^60)
	mustParseBint("1000000000000000000300604671606117964"), // 2^(1/2^61)
	mustParseBint("1000000000000000000150302335803058982"), // 2^(1/2^62)
	mustParseBint("1000000000000000000075151167901529491"), // 2^(1/2^63)
	mustParseBint("1000000000000000000037575583950764746"), // 2^(1/2^64)
}

var (
	// blog2e is round(log2(e) * 10^36).
	blog2e = mustParseBint("1442695040888963407359924681001892137")
	// bln2 is round(ln(2) * 10^36).
	bln2 = mustParseBint("693147180559945309417232121458176568")
)

// exp2Wide calculates z = 2^x, where both x and z are scaled by 10^wideScale.
// Results smaller than 10^-wideScale are flushed to 0.
func (z *bint) exp2Wide(x *bint) error {
	n, f := getBint(), getBint()
	defer putBint(n)
	defer putBint(f)

	// x = n + f, where n is an integer and 0 <= f < 1
	n.divMod(x, bpow10[wideScale], f)
	switch {
	case n.cmpInt(maxExp2) > 0:
		return ErrOverflow
	case n.cmpInt(-maxExp2) < 0:
		z.setUint64(0)
		return nil
	}
	shift := int((*big.Int)(n).Int64())

	// Binary digits of the fraction, the most significant digit first
	f.dbl(f, ladderLen)
	f.quo(f, bpow10[wideScale])
	digits := f.uint64()

	z.setBint(bpow10[wideScale])
	for k := 1; k <= ladderLen; k++ {
		if digits&(1<<(ladderLen-k)) == 0 {
			continue
		}
		z.mul(z, bexp2[k])
		z.quo(z, bpow10[wideScale])
	}

	if shift >= 0 {
		z.dbl(z, uint(shift))
	} else {
		z.hlf(z, uint(-shift))
	}
	return nil
}

// log2Wide calculates z = log2(x), where x is a positive integer scaled
// by 10^Scale and z is scaled by 10^wideScale.
// If x is not positive, the result is unpredictable.
func (z *bint) log2Wide(x *bint) {
	m := getBint()
	defer putBint(m)
	m.lsh(x, Scale)
	one := bpow10[wideScale]

	// Integer part: normalize the mantissa into [1, 2)
	var n int
	if m.cmp(one) >= 0 {
		q := getBint()
		defer putBint(q)
		q.quo(m, one)
		n = q.bitLen() - 1
		m.hlf(m, uint(n))
	} else {
		s := one.bitLen() - m.bitLen()
		m.dbl(m, uint(s))
		if m.cmp(one) < 0 {
			m.dbl(m, 1)
			s++
		}
		n = -s
	}

	// Fractional part: after step k the mantissa is below bexp2[k]
	var digits uint64
	for k := 1; k <= ladderLen; k++ {
		if m.cmp(bexp2[k]) < 0 {
			continue
		}
		m.mul(m, one)
		m.quo(m, bexp2[k])
		digits |= 1 << (ladderLen - k)
	}

	// z = n + digits / 2^ladderLen
	z.setUint64(digits)
	z.mul(z, one)
	z.hlf(z, ladderLen)
	m.setInt64(int64(n))
	m.mul(m, one)
	z.add(z, m)
}

// cmpInt compares z and x.
func (z *bint) cmpInt(x int) int {
	y := getBint()
	defer putBint(y)
	y.setInt64(int64(x))
	return z.cmp(y)
}

// Exp2 returns 2 raised to the power of d, rounded towards zero.
// The result is composed from a ladder of binary roots of 2 selected
// by the first 64 binary digits of the fractional part of d.
// Exp2 is exact for integer powers.
//
// Exp2 returns an error if the coefficient of the result exceeds 2^255 - 1.
// Results smaller than 10^-18 are rounded to 0.
func (d Fixed) Exp2() (Fixed, error) {
	x := getBint()
	defer putBint(x)
	x.setFixed(d)
	x.lsh(x, wideScale-Scale)
	f, err := exp2(x)
	if err != nil {
		return Fixed{}, errors.Wrapf(err, "computing [2^%v]", d)
	}
	return f, nil
}

// Exp returns e raised to the power of d, rounded towards zero.
// It is computed as 2^(d * log2(e)) with 36 digits of intermediate precision.
// Exp(0) is exactly 1.
//
// Exp returns an error if the coefficient of the result exceeds 2^255 - 1,
// which happens for d greater than about 135.3.
// Results smaller than 10^-18 are rounded to 0.
func (d Fixed) Exp() (Fixed, error) {
	x := getBint()
	defer putBint(x)
	x.setFixed(d)
	x.mul(x, blog2e)
	x.rshDown(x, Scale)
	f, err := exp2(x)
	if err != nil {
		return Fixed{}, errors.Wrapf(err, "computing [exp(%v)]", d)
	}
	return f, nil
}

// exp2 calculates 2^x, where x is scaled by 10^wideScale.
func exp2(x *bint) (Fixed, error) {
	z := getBint()
	defer putBint(z)
	if err := z.exp2Wide(x); err != nil {
		return Fixed{}, err
	}
	z.rshDown(z, wideScale-Scale)
	return newFixedFromBint(z)
}

// Log2 returns the binary logarithm of d, rounded towards zero.
// Log2 is exact for integer powers of 2.
//
// Log2 returns an error if d is less than or equal to 0.
func (d Fixed) Log2() (Fixed, error) {
	if !d.IsPos() {
		return Fixed{}, errors.Wrapf(ErrDomain, "computing [log2(%v)]", d)
	}
	z, x := getBint(), getBint()
	defer putBint(z)
	defer putBint(x)
	x.setFixed(d)
	z.log2Wide(x)
	z.rshDown(z, wideScale-Scale)
	return newFixedFromBint(z)
}

// Ln returns the natural logarithm of d, rounded towards zero.
// It is computed as log2(d) * ln(2) with 36 digits of intermediate precision.
// Ln(1) is exactly 0.
//
// Ln returns an error if d is less than or equal to 0.
func (d Fixed) Ln() (Fixed, error) {
	if !d.IsPos() {
		return Fixed{}, errors.Wrapf(ErrDomain, "computing [ln(%v)]", d)
	}
	z, x := getBint(), getBint()
	defer putBint(z)
	defer putBint(x)
	x.setFixed(d)
	z.log2Wide(x)
	z.mul(z, bln2)
	z.rshDown(z, wideScale)
	z.rshDown(z, wideScale-Scale)
	return newFixedFromBint(z)
}

// Pow returns d raised to the power of e, rounded towards zero.
// For non-negative e it is computed as 2^(e * log2(d)) with 36 digits
// of intermediate precision, for negative e as the inverse of d^(-e).
// Pow is exact when d is an integer power of 2 and e is an integer.
// A negative d is accepted only with an integer e.
//
// Pow returns an error if:
//   - d is 0 and e is negative;
//   - d is negative and e is not an integer;
//   - the coefficient of the result exceeds 2^255 - 1.
func (d Fixed) Pow(e Fixed) (Fixed, error) {
	if e.IsNeg() {
		f, err := d.Pow(e.Neg())
		if err != nil {
			return Fixed{}, err
		}
		f, err = f.Inv()
		if err != nil {
			return Fixed{}, errors.Wrapf(err, "computing [%v^%v]", d, e)
		}
		return f, nil
	}
	f, err := pow(d, e)
	if err != nil {
		return Fixed{}, errors.Wrapf(err, "computing [%v^%v]", d, e)
	}
	return f, nil
}

func pow(d, e Fixed) (Fixed, error) {
	// Special cases
	switch {
	case e.IsZero():
		return One, nil
	case d.IsZero():
		return Zero, nil
	case d.IsNeg() && !e.IsInt():
		return Fixed{}, ErrDomain
	}

	// General case
	z, x := getBint(), getBint()
	defer putBint(z)
	defer putBint(x)
	x.setFixed(d.Abs())
	z.log2Wide(x)
	x.setFixed(e)
	z.mul(z, x)
	z.rshDown(z, Scale)
	if err := z.exp2Wide(z); err != nil {
		return Fixed{}, err
	}
	z.rshDown(z, wideScale-Scale)
	if d.IsNeg() && e.isOddInt() {
		z.neg(z)
	}
	return newFixedFromBint(z)
}

// isOddInt returns true if d is an odd integer.
func (d Fixed) isOddInt() bool {
	if !d.IsInt() {
		return false
	}
	z := getBint()
	defer putBint(z)
	z.setFixed(d)
	z.rshDown(z, Scale)
	return (*big.Int)(z).Bit(0) != 0
}
