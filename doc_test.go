package metalog_test

import (
	"fmt"

	"github.com/govalues/metalog"
	"github.com/govalues/metalog/fixed"
)

func coefficients(ss ...string) []fixed.Fixed {
	coefs := make([]fixed.Fixed, len(ss))
	for i, s := range ss {
		coefs[i] = fixed.MustParse(s)
	}
	return coefs
}

var nine = coefficients(
	"0.996043875471054",
	"0.051024209692504",
	"-0.0403409112868691",
	"-0.181985469221972",
	"0.0891948871036856",
	"-0.162518488572285",
	"0.516451225277333",
	"0.118180213813597",
	"-0.261748715887528",
)

func ExampleQuantile() {
	p := fixed.MustParse("0.01")
	fmt.Println(metalog.Quantile(p, nine, metalog.NewUnbounded()))
	fmt.Println(metalog.Quantile(fixed.Half, nine, metalog.NewUnbounded()))
	_, err := metalog.Quantile(fixed.One, nine, metalog.NewUnbounded())
	fmt.Println(err)
	// Output:
	// 0.948683175116357722 <nil>
	// 0.996043875471054 <nil>
	// percentile_ >= 100%
}

func ExampleQuantile_bounded() {
	p := fixed.MustParse("0.9")
	below := metalog.NewBoundedBelow(fixed.Zero)
	fmt.Println(metalog.Quantile(p, nine, below))
	bounded, err := metalog.NewBounded(fixed.MustParse("0.5"), fixed.MustParse("1.5"))
	if err != nil {
		panic(err)
	}
	fmt.Println(metalog.Quantile(p, nine, bounded))
	// Output:
	// 2.718319491082512864 <nil>
	// 1.231061302720689448 <nil>
}

func ExampleDensity() {
	fmt.Println(metalog.QuantileDensity(fixed.Half, nine, metalog.NewUnbounded()))
	fmt.Println(metalog.Density(fixed.Half, nine, metalog.NewUnbounded()))
	// Output:
	// 0.022111369548044 <nil>
	// 45.225602051794266973 <nil>
}

func ExampleApproximatePercentile() {
	x := fixed.MustParse("0.948683175129611")
	p, err := metalog.ApproximatePercentile(x, nine, metalog.NewUnbounded())
	if err != nil {
		panic(err)
	}
	f, _ := p.Float64()
	fmt.Printf("%.9f\n", f)

	_, err = metalog.ApproximatePercentile(fixed.MustParse("-1"), nine, metalog.NewBoundedBelow(fixed.Zero))
	fmt.Println(err)
	// Output:
	// 0.010000000
	// value -1 is outside of support (0, +inf): argument out of domain
}

func ExampleApproximatePercentileWithOptions() {
	x := fixed.MustParse("0.948683175129611")
	opts := metalog.DefaultInverterOptions()
	opts.Tolerance = fixed.MustParse("0.000001")
	opts.Trace = func(s metalog.Step) {
		if s.Iteration == 0 {
			fmt.Println(s.Iteration, s.Method, s.Percentile)
		}
	}
	p, err := metalog.ApproximatePercentileWithOptions(x, nine, metalog.NewUnbounded(), opts)
	if err != nil {
		panic(err)
	}
	f, _ := p.Float64()
	fmt.Printf("%.4f\n", f)
	// Output:
	// 0 start 0.5
	// 0.0100
}

func ExampleTerms() {
	fmt.Println(metalog.Terms(fixed.MustParse("0.75"), 4))
	// Output: [1 1.098612288668109691 0.274653072167027422 0.25] <nil>
}

func ExampleCheckFeasibility() {
	fmt.Println(metalog.CheckFeasibility(nine))
	fmt.Println(metalog.CheckFeasibility(coefficients("1", "-1")))
	// Output:
	// <nil>
	// quantile density at 0.0001 is -10001.0001000100010001: infeasible coefficients
}

func ExampleBounds_Transform() {
	b, err := metalog.NewBounded(fixed.MustParse("0.5"), fixed.MustParse("1.5"))
	if err != nil {
		panic(err)
	}
	fmt.Println(b)
	fmt.Println(b.Transform(fixed.Zero))
	fmt.Println(b.Inverse(fixed.MustParse("1.25")))
	// Output:
	// (0.5, 1.5)
	// 1 <nil>
	// 1.098612288668109691 <nil>
}

func ExampleDistribution() {
	d, err := metalog.NewDistribution(nine, metalog.NewBoundedBelow(fixed.Zero))
	if err != nil {
		panic(err)
	}
	x, err := d.Quantile(fixed.MustParse("0.25"))
	if err != nil {
		panic(err)
	}
	fmt.Println(x)
	p, err := d.Percentile(x)
	if err != nil {
		panic(err)
	}
	f, _ := p.Float64()
	fmt.Printf("%.9f\n", f)
	fmt.Println(d.Terms(), d.Bounds())
	// Output:
	// 2.675336183067699755
	// 0.250000000
	// 9 (0, +inf)
}
