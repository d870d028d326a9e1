package grid

import (
	"fmt"

	"github.com/matzehuels/rowgrid/pkg/errors"
)

// Fraction is a reduced ratio such as 3/8.
type Fraction struct {
	Num int
	Den int
}

// String renders the fraction as "num/den".
func (f Fraction) String() string { return fmt.Sprintf("%d/%d", f.Num, f.Den) }

// Reduce divides numerator and denominator by their greatest common divisor.
// It is defined only for den > 0.
func Reduce(num, den int) (Fraction, error) {
	if den <= 0 {
		return Fraction{}, errors.New(errors.ErrCodeInvalidInput, "denominator must be positive, got %d", den)
	}
	g := GCD(num, den)
	if num%g != 0 || den%g != 0 {
		return Fraction{}, errors.New(errors.ErrCodeInternal, "gcd %d does not divide %d/%d", g, num, den)
	}
	return Fraction{Num: num / g, Den: den / g}, nil
}

// GCD returns the greatest common divisor using the Euclidean algorithm.
// The result is always non-negative; GCD(0, 0) is 0.
func GCD(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// SizeFraction returns the reduced fraction of a component size over base.
// It falls back to the unreduced form when base is not positive.
func SizeFraction(size, base int) string {
	f, err := Reduce(size, base)
	if err != nil {
		return fmt.Sprintf("%d/%d", size, base)
	}
	return f.String()
}
