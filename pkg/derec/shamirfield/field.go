// Package shamirfield implements modular arithmetic over the NIST P-521
// prime 2^521-1, the field Shamir sharing operates over. The field is
// plain math/big modular arithmetic, independent of any elliptic curve
// group; P-521 was chosen only because its order comfortably exceeds
// 2^256, leaving headroom above a 256-bit secret so the constant term
// never collides with the modulus.
package shamirfield

import (
	"io"
	"math/big"

	"github.com/rsinha/derec-go/pkg/derec/derecerr"
)

const op = "shamirfield"

// ElementSize is the byte length of the fixed-width big-endian encoding
// used for field elements on the wire (ceil(521/8) = 66 bytes).
const ElementSize = 66

// Modulus is 2^521 - 1.
var Modulus = func() *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), 521)
	return m.Sub(m, big.NewInt(1))
}()

// Element is a value in the field Z/Modulus.
type Element struct {
	v *big.Int
}

// Zero is the additive identity.
func Zero() *Element { return &Element{v: new(big.Int)} }

// FromBytes32 interprets a 32-byte secret as a field element, which is
// always valid since Modulus vastly exceeds 2^256.
func FromBytes32(b [32]byte) *Element {
	return &Element{v: new(big.Int).SetBytes(b[:])}
}

// FromFixedBytes decodes a fixed-width ElementSize big-endian encoding.
func FromFixedBytes(b []byte) (*Element, error) {
	if len(b) != ElementSize {
		return nil, derecerr.Newf(derecerr.KindSerialization, op+".FromFixedBytes", "want %d bytes, got %d", ElementSize, len(b))
	}
	v := new(big.Int).SetBytes(b)
	if v.Cmp(Modulus) >= 0 {
		return nil, derecerr.Newf(derecerr.KindSerialization, op+".FromFixedBytes", "value exceeds modulus")
	}
	return &Element{v: v}, nil
}

// Bytes returns the fixed-width ElementSize big-endian encoding of e.
func (e *Element) Bytes() []byte {
	out := make([]byte, ElementSize)
	b := e.v.Bytes()
	copy(out[ElementSize-len(b):], b)
	return out
}

// Last32Bytes returns the trailing 32 bytes of e's big-endian encoding,
// used to recover a 256-bit secret from the constant term of a
// reconstructed polynomial.
func (e *Element) Last32Bytes() [32]byte {
	var out [32]byte
	b := e.Bytes()
	copy(out[:], b[ElementSize-32:])
	return out
}

// Equal reports whether e and o represent the same field element.
func (e *Element) Equal(o *Element) bool {
	return e.v.Cmp(o.v) == 0
}

// IsZero reports whether e is the additive identity.
func (e *Element) IsZero() bool {
	return e.v.Sign() == 0
}

// Add returns e + o mod Modulus.
func (e *Element) Add(o *Element) *Element {
	r := new(big.Int).Add(e.v, o.v)
	r.Mod(r, Modulus)
	return &Element{v: r}
}

// Sub returns e - o mod Modulus.
func (e *Element) Sub(o *Element) *Element {
	r := new(big.Int).Sub(e.v, o.v)
	r.Mod(r, Modulus)
	return &Element{v: r}
}

// Mul returns e * o mod Modulus.
func (e *Element) Mul(o *Element) *Element {
	r := new(big.Int).Mul(e.v, o.v)
	r.Mod(r, Modulus)
	return &Element{v: r}
}

// Inverse returns e^-1 mod Modulus. e must be nonzero.
func (e *Element) Inverse() (*Element, error) {
	if e.IsZero() {
		return nil, derecerr.Newf(derecerr.KindReconstruction, op+".Inverse", "zero has no inverse")
	}
	r := new(big.Int).ModInverse(e.v, Modulus)
	if r == nil {
		return nil, derecerr.Newf(derecerr.KindReconstruction, op+".Inverse", "no modular inverse exists")
	}
	return &Element{v: r}, nil
}

// Random draws a uniformly random nonzero field element using rng.
func Random(rng io.Reader) (*Element, error) {
	for {
		b := make([]byte, ElementSize)
		if _, err := io.ReadFull(rng, b); err != nil {
			return nil, derecerr.New(derecerr.KindSerialization, op+".Random", err)
		}
		// clear high bits beyond the modulus's bit length to keep the
		// distribution close to uniform without needing rejection on
		// every draw.
		b[0] &= 0x01
		v := new(big.Int).SetBytes(b)
		if v.Sign() == 0 || v.Cmp(Modulus) >= 0 {
			continue
		}
		return &Element{v: v}, nil
	}
}
