// Package shamir implements threshold secret sharing over the field
// defined by shamirfield: a random degree-(t-1) polynomial with the
// secret as its constant term, evaluated at n random distinct points.
package shamir

import (
	"io"

	"github.com/rsinha/derec-go/pkg/derec/derecerr"
	"github.com/rsinha/derec-go/pkg/derec/shamirfield"
)

const op = "shamir"

// SecretSize is the byte length of the shared secret.
const SecretSize = 32

// Point is one evaluation (x, p(x)) of the sharing polynomial.
type Point struct {
	X *shamirfield.Element
	Y *shamirfield.Element
}

// Share samples a random degree-(t-1) polynomial with secret as its
// constant term and evaluates it at n random distinct points, returning
// the n points. t and n must satisfy 1 <= t <= n; n must be at least 1.
func Share(secret [SecretSize]byte, t, n int, rng io.Reader) ([]Point, error) {
	if t < 1 || t > n || n < 1 {
		return nil, derecerr.Newf(derecerr.KindThresholdUnsatisfiable, op+".Share", "invalid (t=%d, n=%d)", t, n)
	}

	coeffs := make([]*shamirfield.Element, t)
	coeffs[0] = shamirfield.FromBytes32(secret)
	for i := 1; i < t; i++ {
		c, err := shamirfield.Random(rng)
		if err != nil {
			return nil, derecerr.New(derecerr.KindSerialization, op+".Share", err)
		}
		coeffs[i] = c
	}

	seen := make(map[string]bool, n)
	points := make([]Point, n)
	for i := 0; i < n; i++ {
		var x *shamirfield.Element
		for {
			candidate, err := shamirfield.Random(rng)
			if err != nil {
				return nil, derecerr.New(derecerr.KindSerialization, op+".Share", err)
			}
			key := string(candidate.Bytes())
			if !seen[key] {
				seen[key] = true
				x = candidate
				break
			}
		}
		points[i] = Point{X: x, Y: evalPoly(coeffs, x)}
	}
	return points, nil
}

func evalPoly(coeffs []*shamirfield.Element, x *shamirfield.Element) *shamirfield.Element {
	// Horner's method, highest degree first.
	acc := coeffs[len(coeffs)-1]
	for i := len(coeffs) - 2; i >= 0; i-- {
		acc = acc.Mul(x).Add(coeffs[i])
	}
	return acc
}

// Recover reconstructs the secret from shares via Lagrange interpolation
// at x=0. It does not verify that len(shares) >= the original threshold;
// it trusts the caller. Duplicate or otherwise degenerate x values are
// reported as a Reconstruction error.
func Recover(points []Point) ([SecretSize]byte, error) {
	var secret [SecretSize]byte
	if len(points) == 0 {
		return secret, derecerr.Newf(derecerr.KindReconstruction, op+".Recover", "no shares supplied")
	}

	seen := make(map[string]bool, len(points))
	for _, p := range points {
		key := string(p.X.Bytes())
		if seen[key] {
			return secret, derecerr.Newf(derecerr.KindReconstruction, op+".Recover", "duplicate evaluation point")
		}
		seen[key] = true
	}

	acc := shamirfield.Zero()
	for i, pi := range points {
		coeff, err := lagrangeCoefficientAtZero(points, i)
		if err != nil {
			return secret, derecerr.New(derecerr.KindReconstruction, op+".Recover", err)
		}
		acc = acc.Add(pi.Y.Mul(coeff))
	}

	secret = acc.Last32Bytes()
	return secret, nil
}

// lagrangeCoefficientAtZero computes the i-th Lagrange basis polynomial
// of points, evaluated at x=0: prod_{j!=i} (0 - x_j) / (x_i - x_j).
func lagrangeCoefficientAtZero(points []Point, i int) (*shamirfield.Element, error) {
	numerator := identityOne()
	denominator := identityOne()

	xi := points[i].X
	for j, pj := range points {
		if j == i {
			continue
		}
		xj := pj.X
		numerator = numerator.Mul(shamirfield.Zero().Sub(xj))
		denominator = denominator.Mul(xi.Sub(xj))
	}

	denomInv, err := denominator.Inverse()
	if err != nil {
		return nil, err
	}
	return numerator.Mul(denomInv), nil
}

func identityOne() *shamirfield.Element {
	var one [32]byte
	one[31] = 1
	return shamirfield.FromBytes32(one)
}
