package fixed

import "fmt"

// MustAdd is like [Fixed.Add] but panics if computing error.
func (d Fixed) MustAdd(e Fixed) Fixed {
	f, err := d.Add(e)
	if err != nil {
		panic(fmt.Sprintf("MustAdd(%v) failed: %v", d, err))
	}
	return f
}

// MustSub is like [Fixed.Sub] but panics if computing error.
func (d Fixed) MustSub(e Fixed) Fixed {
	f, err := d.Sub(e)
	if err != nil {
		panic(fmt.Sprintf("MustSub(%v) failed: %v", d, err))
	}
	return f
}

// MustMul is like [Fixed.Mul] but panics if computing error.
func (d Fixed) MustMul(e Fixed) Fixed {
	f, err := d.Mul(e)
	if err != nil {
		panic(fmt.Sprintf("MustMul(%v) failed: %v", d, err))
	}
	return f
}

// MustQuo is like [Fixed.Quo] but panics if computing error.
func (d Fixed) MustQuo(e Fixed) Fixed {
	f, err := d.Quo(e)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v) failed: %v", d, err))
	}
	return f
}

// MustInv is like [Fixed.Inv] but panics if computing error.
func (d Fixed) MustInv() Fixed {
	f, err := d.Inv()
	if err != nil {
		panic(fmt.Sprintf("MustInv(%v) failed: %v", d, err))
	}
	return f
}
