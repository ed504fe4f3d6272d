package fixed_test

import (
	"fmt"
	"math/big"

	"github.com/govalues/metalog/fixed"
)

func ExampleParse() {
	d, err := fixed.Parse("-1.234567890123456789123")
	if err != nil {
		panic(err)
	}
	fmt.Println(d)
	// Output: -1.234567890123456789
}

func ExampleNew() {
	fmt.Println(fixed.New(-15, 1))
	fmt.Println(fixed.New(1, 18))
	// Output:
	// -1.5
	// 0.000000000000000001
}

func ExampleFromRaw() {
	d, err := fixed.FromRaw(big.NewInt(2_500_000_000_000_000_000))
	if err != nil {
		panic(err)
	}
	fmt.Println(d)
	fmt.Println(d.Raw())
	// Output:
	// 2.5
	// 2500000000000000000
}

func ExampleFixed_Mul() {
	d := fixed.MustParse("1.5")
	e := fixed.MustParse("-2")
	fmt.Println(d.Mul(e))
	// Output: -3 <nil>
}

func ExampleFixed_Quo() {
	d := fixed.MustParse("1")
	e := fixed.MustParse("3")
	fmt.Println(d.Quo(e))
	// Output: 0.333333333333333333 <nil>
}

func ExampleFixed_Inv() {
	d := fixed.MustParse("0.5")
	fmt.Println(d.Inv())
	// Output: 2 <nil>
}

func ExampleFixed_PowInt() {
	d := fixed.MustParse("1.1")
	fmt.Println(d.PowInt(2))
	fmt.Println(d.PowInt(0))
	// Output:
	// 1.21 <nil>
	// 1 <nil>
}

func ExampleFixed_Exp() {
	fmt.Println(fixed.One.Exp())
	fmt.Println(fixed.Zero.Exp())
	// Output:
	// 2.718281828459045235 <nil>
	// 1 <nil>
}

func ExampleFixed_Ln() {
	d := fixed.MustParse("8")
	fmt.Println(d.Ln())
	fmt.Println(fixed.One.Ln())
	// Output:
	// 2.079441541679835928 <nil>
	// 0 <nil>
}

func ExampleFixed_Pow() {
	d := fixed.MustParse("2")
	fmt.Println(d.Pow(fixed.MustParse("3")))
	fmt.Println(d.Pow(fixed.MustParse("-2")))
	fmt.Println(d.Pow(fixed.MustParse("0.5")))
	// Output:
	// 8 <nil>
	// 0.25 <nil>
	// 1.414213562373095048 <nil>
}

func ExampleFixed_Cmp() {
	d := fixed.MustParse("-1.5")
	e := fixed.MustParse("0.5")
	fmt.Println(d.Cmp(e))
	fmt.Println(d.CmpAbs(e))
	// Output:
	// -1
	// 1
}
