// Package curve wraps secp256k1 scalar and point arithmetic for the
// pairing protocol's ECIES step. Unlike a cgo-backed curve library this
// package is pure Go, built directly on btcec/v2; there is no external
// handle to free, so callers work with plain values rather than a
// finalizer-managed resource.
package curve

import (
	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/rsinha/derec-go/pkg/derec/derecerr"
)

const op = "curve"

// ScalarSize is the byte length of a secp256k1 scalar.
const ScalarSize = 32

// UncompressedPointSize is the byte length of an uncompressed affine
// point encoding (0x04 || X(32) || Y(32)).
const UncompressedPointSize = 65

// Scalar is a secp256k1 private scalar, reduced modulo the group order.
type Scalar struct {
	priv *btcec.PrivateKey
}

// Point is a secp256k1 affine point.
type Point struct {
	pub *btcec.PublicKey
}

// ScalarFromBytes interprets b (big-endian, ScalarSize bytes) as a
// secp256k1 scalar, reducing modulo the group order. It returns a
// Serialization error if b is not exactly ScalarSize bytes.
func ScalarFromBytes(b []byte) (*Scalar, error) {
	if len(b) != ScalarSize {
		return nil, derecerr.Newf(derecerr.KindSerialization, op+".ScalarFromBytes", "want %d bytes, got %d", ScalarSize, len(b))
	}
	priv, _ := btcec.PrivKeyFromBytes(b)
	return &Scalar{priv: priv}, nil
}

// Bytes returns the big-endian ScalarSize-byte encoding of s.
func (s *Scalar) Bytes() []byte {
	b := s.priv.Serialize()
	out := make([]byte, ScalarSize)
	copy(out[ScalarSize-len(b):], b)
	return out
}

// PublicPoint returns g*s, the point generated by scalar s.
func (s *Scalar) PublicPoint() *Point {
	return &Point{pub: s.priv.PubKey()}
}

// PointFromUncompressedBytes parses an uncompressed affine point
// encoding. Any malformed or off-curve encoding is a Serialization
// error.
func PointFromUncompressedBytes(b []byte) (*Point, error) {
	if len(b) != UncompressedPointSize {
		return nil, derecerr.Newf(derecerr.KindSerialization, op+".PointFromUncompressedBytes", "want %d bytes, got %d", UncompressedPointSize, len(b))
	}
	pub, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, derecerr.New(derecerr.KindSerialization, op+".PointFromUncompressedBytes", err)
	}
	return &Point{pub: pub}, nil
}

// Bytes returns the uncompressed affine encoding of p.
func (p *Point) Bytes() []byte {
	return p.pub.SerializeUncompressed()
}

// ScalarMul returns s*p, the point p scaled by s.
func ScalarMul(s *Scalar, p *Point) *Point {
	curve := btcec.S256()
	x, y := curve.ScalarMult(p.pub.X(), p.pub.Y(), s.priv.Serialize())
	return &Point{pub: btcec.NewPublicKey(x, y)}
}
