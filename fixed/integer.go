package fixed

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"math/bits"
	"sync"
)

// wint (Wide INTeger) is a 256-bit unsigned integer stored as four
// little-endian 64-bit words.
type wint [4]uint64

// maxWint is a maximum value of wint, which is equal to 2^255 - 1.
var maxWint = wint{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0) >> 1}

// scaleWord is 10^Scale as a single word.
const scaleWord uint64 = 1_000_000_000_000_000_000

func (x wint) isZero() bool {
	return x == wint{}
}

// isWord returns true if x fits into a single uint64.
func (x wint) isWord() bool {
	return x[1]|x[2]|x[3] == 0
}

func (x wint) cmp(y wint) int {
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

// add calculates x + y and checks overflow.
func (x wint) add(y wint) (z wint, ok bool) {
	var carry uint64
	for i := range z {
		z[i], carry = bits.Add64(x[i], y[i], carry)
	}
	if carry != 0 || z.cmp(maxWint) > 0 {
		return wint{}, false
	}
	return z, true
}

// sub calculates x - y.
// If x < y, the result is undefined.
func (x wint) sub(y wint) wint {
	var z wint
	var borrow uint64
	for i := range z {
		z[i], borrow = bits.Sub64(x[i], y[i], borrow)
	}
	return z
}

// dist calculates abs(x - y).
func (x wint) dist(y wint) wint {
	if x.cmp(y) > 0 {
		return x.sub(y)
	}
	return y.sub(x)
}

// mulWord calculates x * y / 10^Scale, rounding towards zero,
// and checks overflow.
func mulWord(x, y uint64) (z uint64, ok bool) {
	hi, lo := bits.Mul64(x, y)
	if hi >= scaleWord {
		return 0, false
	}
	z, _ = bits.Div64(hi, lo, scaleWord)
	return z, true
}

// quoWord calculates x * 10^Scale / y, rounding towards zero,
// and checks overflow.
func quoWord(x, y uint64) (z uint64, ok bool) {
	if y == 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(x, scaleWord)
	if hi >= y {
		return 0, false
	}
	z, _ = bits.Div64(hi, lo, y)
	return z, true
}

// bint (Big INTeger) is a wrapper around big.Int.
// Unlike wint it is signed.
type bint big.Int

// bpow10 is a cache of powers of 10, where bpow10[x] = 10^x.
var bpow10 = [...]*bint{
	mustParseBint("1"),
	mustParseBint("10"),
	mustParseBint("100"),
	mustParseBint("1000"),
	mustParseBint("10000"),
	mustParseBint("100000"),
	mustParseBint("1000000"),
	mustParseBint("10000000"),
	mustParseBint("100000000"),
	mustParseBint("1000000000"),
	mustParseBint("10000000000"),
	mustParseBint("100000000000"),
	mustParseBint("1000000000000"),
	mustParseBint("10000000000000"),
	mustParseBint("100000000000000"),
	mustParseBint("1000000000000000"),
	mustParseBint("10000000000000000"),
	mustParseBint("100000000000000000"),
	mustParseBint("1000000000000000000"),
	mustParseBint("10000000000000000000"),
	mustParseBint("100000000000000000000"),
	mustParseBint("1000000000000000000000"),
	mustParseBint("10000000000000000000000"),
	mustParseBint("100000000000000000000000"),
	mustParseBint("1000000000000000000000000"),
	mustParseBint("10000000000000000000000000"),
	mustParseBint("100000000000000000000000000"),
	mustParseBint("1000000000000000000000000000"),
	mustParseBint("10000000000000000000000000000"),
	mustParseBint("100000000000000000000000000000"),
	mustParseBint("1000000000000000000000000000000"),
	mustParseBint("10000000000000000000000000000000"),
	mustParseBint("100000000000000000000000000000000"),
	mustParseBint("1000000000000000000000000000000000"),
	mustParseBint("10000000000000000000000000000000000"),
	mustParseBint("100000000000000000000000000000000000"),
	mustParseBint("1000000000000000000000000000000000000"),
}

// mustParseBint converts a string to *big.Int, panicking on error.
// Use only for package variable initialization and test code!
func mustParseBint(s string) *bint {
	z, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic(fmt.Sprintf("mustParseBint(%q) failed: parsing error", s))
	}
	return (*bint)(z)
}

func (z *bint) sign() int {
	return (*big.Int)(z).Sign()
}

func (z *bint) cmp(x *bint) int {
	return (*big.Int)(z).Cmp((*big.Int)(x))
}

func (z *bint) string() string {
	return (*big.Int)(z).String()
}

func (z *bint) bitLen() int {
	return (*big.Int)(z).BitLen()
}

func (z *bint) setBint(x *bint) {
	(*big.Int)(z).Set((*big.Int)(x))
}

func (z *bint) setInt64(x int64) {
	(*big.Int)(z).SetInt64(x)
}

func (z *bint) setUint64(x uint64) {
	(*big.Int)(z).SetUint64(x)
}

// setWint sets z to x, or to -x if neg is true.
func (z *bint) setWint(neg bool, x wint) {
	var buf [32]byte
	for i := range x {
		binary.BigEndian.PutUint64(buf[24-8*i:], x[i])
	}
	(*big.Int)(z).SetBytes(buf[:])
	if neg {
		(*big.Int)(z).Neg((*big.Int)(z))
	}
}

// wint splits z into a sign and a magnitude.
// wint returns false if the magnitude exceeds maxWint.
func (z *bint) wint() (neg bool, x wint, ok bool) {
	if z.bitLen() > 255 {
		return false, wint{}, false
	}
	var buf [32]byte
	(*big.Int)(z).FillBytes(buf[:]) // FillBytes uses the absolute value
	for i := range x {
		x[i] = binary.BigEndian.Uint64(buf[24-8*i:])
	}
	return z.sign() < 0, x, true
}

// uint64 returns the absolute value of z truncated to a word.
func (z *bint) uint64() uint64 {
	x := getBint()
	defer putBint(x)
	(*big.Int)(x).Abs((*big.Int)(z))
	return (*big.Int)(x).Uint64()
}

// add calculates z = x + y.
func (z *bint) add(x, y *bint) {
	(*big.Int)(z).Add((*big.Int)(x), (*big.Int)(y))
}

// sub calculates z = x - y.
func (z *bint) sub(x, y *bint) {
	(*big.Int)(z).Sub((*big.Int)(x), (*big.Int)(y))
}

// neg calculates z = -x.
func (z *bint) neg(x *bint) {
	(*big.Int)(z).Neg((*big.Int)(x))
}

// mul calculates z = x * y.
func (z *bint) mul(x, y *bint) {
	(*big.Int)(z).Mul((*big.Int)(x), (*big.Int)(y))
}

// quo calculates z = x / y, rounding towards zero.
func (z *bint) quo(x, y *bint) {
	r := getBint()
	defer putBint(r)
	// Passing r to prevent heap allocations.
	z.quoRem(x, y, r)
}

// quoRem calculates z and r such that x = z * y + r, where z is
// rounded towards zero.
func (z *bint) quoRem(x, y, r *bint) {
	(*big.Int)(z).QuoRem((*big.Int)(x), (*big.Int)(y), (*big.Int)(r))
}

// divMod calculates z and m such that x = z * y + m, where 0 <= m < abs(y).
func (z *bint) divMod(x, y, m *bint) {
	(*big.Int)(z).DivMod((*big.Int)(x), (*big.Int)(y), (*big.Int)(m))
}

// lsh (Left Shift) calculates z = x * 10^shift.
func (z *bint) lsh(x *bint, shift int) {
	z.mul(x, bpow10[shift])
}

// rshDown (Right Shift) calculates z = x / 10^shift and rounds
// result towards zero.
func (z *bint) rshDown(x *bint, shift int) {
	// Special cases
	switch {
	case x.sign() == 0:
		z.setUint64(0)
		return
	case shift <= 0:
		z.setBint(x)
		return
	}
	// General case
	z.quo(x, bpow10[shift])
}

// dbl (Double) calculates z = x * 2^n.
func (z *bint) dbl(x *bint, n uint) {
	(*big.Int)(z).Lsh((*big.Int)(x), n)
}

// hlf (Half) calculates z = x / 2^n.
// If x is negative, the result is unpredictable.
func (z *bint) hlf(x *bint, n uint) {
	(*big.Int)(z).Rsh((*big.Int)(x), n)
}

// pool is a cache of reusable *big.Int instances.
var pool = sync.Pool{
	New: func() any {
		return (*bint)(new(big.Int))
	},
}

// getBint obtains a *big.Int from the pool.
func getBint() *bint {
	return pool.Get().(*bint)
}

// putBint returns the *big.Int into the pool.
func putBint(b *bint) {
	pool.Put(b)
}
