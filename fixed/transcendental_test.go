package fixed

import (
	"math"
	"math/big"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestBexp2(t *testing.T) {
	// Each entry is the square root of the previous one.
	one := bpow10[wideScale]
	for k := 1; k < len(bexp2); k++ {
		sq := new(bint)
		sq.mul(bexp2[k], bexp2[k])
		sq.quo(sq, one)
		diff := new(bint)
		diff.sub(sq, bexp2[k-1])
		if diff.cmpInt(2) > 0 || diff.cmpInt(-2) < 0 {
			t.Errorf("bexp2[%v]^2 = %v, want %v", k, sq.string(), bexp2[k-1].string())
		}
	}
}

func TestFixed_Exp(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			d, want string
		}{
			{"0", "1"},
			{"1", "2.718281828459045235"},
			{"-1", "0.367879441171442321"},
			{"0.5", "1.648721270700128146"},
			{"2", "7.389056098930650226"},
			{"10", "22026.465794806716516225"},
			{"-10", "0.000045399929762484"},
			{"0.000000000000000001", "1"},
			{"-0.000000000000000001", "0.999999999999999998"},
			{"-41.5", "0"},
			{"-50", "0"},
			{"135", "42633899483147210447413517244384207787018317244580429106637.367352335018584929"},
		}
		for _, tt := range tests {
			d := MustParse(tt.d)
			got, err := d.Exp()
			if err != nil {
				t.Errorf("%q.Exp() failed: %v", d, err)
				continue
			}
			want := MustParse(tt.want)
			if got != want {
				t.Errorf("%q.Exp() = %q, want %q", d, got, want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			d string
		}{
			"overflow 1": {"136"},
			"overflow 2": {"1000"},
			"overflow 3": {maxFixedString},
		}
		for _, tt := range tests {
			d := MustParse(tt.d)
			_, err := d.Exp()
			if !errors.Is(err, ErrOverflow) {
				t.Errorf("%q.Exp() failed with %v, want %v", d, err, ErrOverflow)
			}
		}
	})

	t.Run("underflow", func(t *testing.T) {
		d := MustParse("-" + maxFixedString)
		got, err := d.Exp()
		if err != nil {
			t.Fatalf("%q.Exp() failed: %v", d, err)
		}
		if !got.IsZero() {
			t.Errorf("%q.Exp() = %q, want 0", d, got)
		}
	})
}

func TestFixed_Exp2(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			d, want string
		}{
			{"0", "1"},
			{"1", "2"},
			{"-1", "0.5"},
			{"-2", "0.25"},
			{"10", "1024"},
			{"0.5", "1.414213562373095048"},
			{"3.5", "11.31370849898476039"},
			{"-60", "0"},
		}
		for _, tt := range tests {
			d := MustParse(tt.d)
			got, err := d.Exp2()
			if err != nil {
				t.Errorf("%q.Exp2() failed: %v", d, err)
				continue
			}
			want := MustParse(tt.want)
			if got != want {
				t.Errorf("%q.Exp2() = %q, want %q", d, got, want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			d string
		}{
			"overflow 1": {"200"},
			"overflow 2": {"256"},
			"overflow 3": {"257"},
		}
		for _, tt := range tests {
			d := MustParse(tt.d)
			_, err := d.Exp2()
			if !errors.Is(err, ErrOverflow) {
				t.Errorf("%q.Exp2() failed with %v, want %v", d, err, ErrOverflow)
			}
		}
	})
}

func TestFixed_Ln(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			d, want string
		}{
			{"1", "0"},
			{"2", "0.693147180559945309"},
			{"0.5", "-0.693147180559945309"},
			{"3", "1.098612288668109691"},
			{"8", "2.079441541679835928"},
			{"10", "2.302585092994045684"},
			{"1024", "6.931471805599453094"},
			{"2.718281828459045235", "0.999999999999999999"},
			{"100000000000", "25.328436022934502524"},
			{"0.000000000000000001", "-41.446531673892822312"},
		}
		for _, tt := range tests {
			d := MustParse(tt.d)
			got, err := d.Ln()
			if err != nil {
				t.Errorf("%q.Ln() failed: %v", d, err)
				continue
			}
			want := MustParse(tt.want)
			if got != want {
				t.Errorf("%q.Ln() = %q, want %q", d, got, want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			d string
		}{
			"zero 1":     {"0"},
			"negative 1": {"-1"},
			"negative 2": {"-0.000000000000000001"},
		}
		for _, tt := range tests {
			d := MustParse(tt.d)
			_, err := d.Ln()
			if !errors.Is(err, ErrDomain) {
				t.Errorf("%q.Ln() failed with %v, want %v", d, err, ErrDomain)
			}
		}
	})
}

func TestFixed_Log2(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			d, want string
		}{
			{"1", "0"},
			{"2", "1"},
			{"8", "3"},
			{"1024", "10"},
			{"0.5", "-1"},
			{"0.25", "-2"},
			{"3", "1.584962500721156181"},
			{"10", "3.321928094887362347"},
		}
		for _, tt := range tests {
			d := MustParse(tt.d)
			got, err := d.Log2()
			if err != nil {
				t.Errorf("%q.Log2() failed: %v", d, err)
				continue
			}
			want := MustParse(tt.want)
			if got != want {
				t.Errorf("%q.Log2() = %q, want %q", d, got, want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		for _, s := range []string{"0", "-8"} {
			d := MustParse(s)
			_, err := d.Log2()
			if !errors.Is(err, ErrDomain) {
				t.Errorf("%q.Log2() failed with %v, want %v", d, err, ErrDomain)
			}
		}
	})
}

func TestFixed_Pow(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			d, e, want string
		}{
			{"1", "2", "1"},
			{"1", "8", "1"},
			{"2", "2", "4"},
			{"2", "3", "8"},
			{"2", "-1", "0.5"},
			{"2", "-2", "0.25"},
			{"2", "0.5", "1.414213562373095048"},
			{"10", "-2", "0.01"},
			{"-2", "3", "-8"},
			{"-2", "2", "4"},
			{"0", "5", "0"},
			{"5", "0", "1"},
			{"0", "0", "1"},
			{"9", "0.5", "2.999999999999999999"},
			{"1.5", "2.5", "2.75567596063107536"},
			{"0.5", "10", "0.0009765625"},
		}
		for _, tt := range tests {
			d := MustParse(tt.d)
			e := MustParse(tt.e)
			got, err := d.Pow(e)
			if err != nil {
				t.Errorf("%q.Pow(%q) failed: %v", d, e, err)
				continue
			}
			want := MustParse(tt.want)
			if got != want {
				t.Errorf("%q.Pow(%q) = %q, want %q", d, e, got, want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			d, e    string
			wantErr error
		}{
			"zero 1":     {"0", "-1", ErrDivisionByZero},
			"domain 1":   {"-2", "0.5", ErrDomain},
			"domain 2":   {"-0.5", "-1.5", ErrDomain},
			"overflow 1": {"10", "60", ErrOverflow},
			"overflow 2": {"2", "256", ErrOverflow},
		}
		for _, tt := range tests {
			d := MustParse(tt.d)
			e := MustParse(tt.e)
			_, err := d.Pow(e)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("%q.Pow(%q) failed with %v, want %v", d, e, err, tt.wantErr)
			}
		}
	})
}

// withinBPS reports whether got deviates from want by less than
// bps basis points.
func withinBPS(got, want Fixed, bps int64) bool {
	diff, err := got.Sub(want)
	if err != nil {
		return false
	}
	limit, err := want.Abs().Mul(New(bps, 4))
	if err != nil {
		return false
	}
	return diff.CmpAbs(limit) <= 0
}

func TestFixed_WithinBPS(t *testing.T) {
	e := MustFromRaw(big.NewInt(2_718_281_828_459_045_235))
	e2 := e.MustMul(e)
	e4 := e2.MustMul(e2)
	tests := []struct {
		name string
		f    func() (Fixed, error)
		want Fixed
	}{
		{"exp(1)", One.Exp, e},
		{"exp(2)", Two.Exp, e2},
		{"exp(4)", NewFromInt64(4).Exp, e4},
		{"exp(-1)", One.Neg().Exp, One.MustQuo(e)},
		{"ln(e)", e.Ln, One},
		{"ln(8)", NewFromInt64(8).Ln, MustFromRaw(big.NewInt(2_079_441_541_679_835_928))},
	}
	for _, tt := range tests {
		got, err := tt.f()
		if err != nil {
			t.Errorf("%v failed: %v", tt.name, err)
			continue
		}
		if !withinBPS(got, tt.want, 1) {
			t.Errorf("%v = %q, want %q within 1 bps", tt.name, got, tt.want)
		}
	}
}

// oracle returns an arbitrary-precision reference context.
func oracle() *apd.Context {
	return apd.BaseContext.WithPrecision(100)
}

// toFixed truncates an arbitrary-precision decimal to a fixed-point number.
func toFixed(t *testing.T, d *apd.Decimal) Fixed {
	t.Helper()
	f, err := Parse(d.Text('f'))
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", d.Text('f'), err)
	}
	return f
}

// closeTo reports whether |got - want| <= ulps + |want| * rel.
func closeTo(got, want Fixed, ulps int64, rel Fixed) bool {
	diff, err := got.Sub(want)
	if err != nil {
		return false
	}
	limit := want.Abs().MustMul(rel).MustAdd(New(ulps, Scale))
	return diff.CmpAbs(limit) <= 0
}

func TestFixed_Exp_Oracle(t *testing.T) {
	ctx := oracle()
	rel := New(1, 18)
	for i := int64(-400); i <= 1350; i += 13 {
		d := New(i*100_000_007, 9) // -40.00000028 .. 135.1000009
		x, _, err := apd.NewFromString(d.String())
		if err != nil {
			t.Fatalf("apd.NewFromString(%q) failed: %v", d, err)
		}
		w := new(apd.Decimal)
		if _, err := ctx.Exp(w, x); err != nil {
			t.Fatalf("apd.Exp(%v) failed: %v", x, err)
		}
		want := toFixed(t, w)
		got, err := d.Exp()
		if err != nil {
			t.Errorf("%q.Exp() failed: %v", d, err)
			continue
		}
		if !closeTo(got, want, 2, rel) {
			t.Errorf("%q.Exp() = %q, want %q", d, got, want)
		}
	}
}

func TestFixed_Ln_Oracle(t *testing.T) {
	ctx := oracle()
	for _, s := range []string{
		"0.000000000000000001",
		"0.000000000123456789",
		"0.001",
		"0.1",
		"0.333333333333333333",
		"0.999999999999999999",
		"1.000000000000000001",
		"1.5",
		"2.718281828459045235",
		"7",
		"123456.789",
		"10000000000000000000000000000",
		maxFixedString,
	} {
		d := MustParse(s)
		x, _, err := apd.NewFromString(s)
		if err != nil {
			t.Fatalf("apd.NewFromString(%q) failed: %v", s, err)
		}
		w := new(apd.Decimal)
		if _, err := ctx.Ln(w, x); err != nil {
			t.Fatalf("apd.Ln(%v) failed: %v", x, err)
		}
		want := toFixed(t, w)
		got, err := d.Ln()
		if err != nil {
			t.Errorf("%q.Ln() failed: %v", d, err)
			continue
		}
		if !closeTo(got, want, 2, Zero) {
			t.Errorf("%q.Ln() = %q, want %q", d, got, want)
		}
	}
}

func TestFixed_Pow_Oracle(t *testing.T) {
	ctx := oracle()
	rel := New(1, 17)
	for _, tt := range []struct {
		d, e string
	}{
		{"0.01", "0.5"},
		{"0.5", "3.25"},
		{"1.01", "100"},
		{"3", "1.7"},
		{"12.5", "4.2"},
		{"99.9", "0.123456789"},
	} {
		d := MustParse(tt.d)
		e := MustParse(tt.e)
		x, _, err := apd.NewFromString(tt.d)
		if err != nil {
			t.Fatalf("apd.NewFromString(%q) failed: %v", tt.d, err)
		}
		y, _, err := apd.NewFromString(tt.e)
		if err != nil {
			t.Fatalf("apd.NewFromString(%q) failed: %v", tt.e, err)
		}
		w := new(apd.Decimal)
		if _, err := ctx.Pow(w, x, y); err != nil {
			t.Fatalf("apd.Pow(%v, %v) failed: %v", x, y, err)
		}
		want := toFixed(t, w)
		got, err := d.Pow(e)
		if err != nil {
			t.Errorf("%q.Pow(%q) failed: %v", d, e, err)
			continue
		}
		if !closeTo(got, want, 2, rel) {
			t.Errorf("%q.Pow(%q) = %q, want %q", d, e, got, want)
		}
	}
}

func TestFixed_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	fromRaw := func(raw int64) Fixed {
		return MustFromRaw(big.NewInt(raw))
	}

	properties.Property("exp(ln(x)) = x", prop.ForAll(
		func(raw int64) bool {
			x := fromRaw(raw)
			y, err := x.Ln()
			if err != nil {
				return false
			}
			z, err := y.Exp()
			if err != nil {
				return false
			}
			return closeTo(z, x, 10, New(1, 17))
		},
		gen.Int64Range(1_000_000_000_000_000, math.MaxInt64),
	))

	properties.Property("exp(a + b) = exp(a) * exp(b)", prop.ForAll(
		func(a, b int64) bool {
			x, y := fromRaw(a), fromRaw(b)
			lhs, err := x.MustAdd(y).Exp()
			if err != nil {
				return false
			}
			ex, err := x.Exp()
			if err != nil {
				return false
			}
			ey, err := y.Exp()
			if err != nil {
				return false
			}
			return closeTo(ex.MustMul(ey), lhs, 10, New(1, 14))
		},
		gen.Int64Range(-5_000_000_000_000_000_000+1, 5_000_000_000_000_000_000-1),
		gen.Int64Range(-5_000_000_000_000_000_000+1, 5_000_000_000_000_000_000-1),
	))

	properties.Property("pow(x, n) = powint(x, n)", prop.ForAll(
		func(raw int64, n int) bool {
			x := fromRaw(raw)
			got, err := x.Pow(NewFromInt64(int64(n)))
			if err != nil {
				return false
			}
			want, err := x.PowInt(n)
			if err != nil {
				return false
			}
			return closeTo(got, want, 16, New(1, 14))
		},
		gen.Int64Range(500_000_000_000_000_000, 2_000_000_000_000_000_000),
		gen.IntRange(0, 8),
	))

	properties.Property("ln is odd around 1", prop.ForAll(
		func(raw int64) bool {
			x := fromRaw(raw)
			a, err := x.Ln()
			if err != nil {
				return false
			}
			inv, err := x.Inv()
			if err != nil {
				return false
			}
			b, err := inv.Ln()
			if err != nil {
				return false
			}
			return closeTo(a.MustAdd(b), Zero, 100, Zero)
		},
		gen.Int64Range(100_000_000_000_000_000, 9_000_000_000_000_000_000),
	))

	properties.TestingRun(t)
}
