// Package ecies implements the ECDH-based key agreement over secp256k1
// used by the pairing protocol: a random scalar keypair and a SHA-256
// hash-to-key derivation from the shared point.
package ecies

import (
	"crypto/sha256"
	"io"

	"github.com/rsinha/derec-go/pkg/derec/curve"
	"github.com/rsinha/derec-go/pkg/derec/derecerr"
)

const op = "ecies"

// SharedKeySize is the byte length of a derived shared key.
const SharedKeySize = 32

// KeyPair is a secp256k1 scalar/point keypair.
type KeyPair struct {
	SecretKey *curve.Scalar
	PublicKey *curve.Point
}

// Keygen draws a random secp256k1 scalar from rng and returns it paired
// with its public point g*sk.
func Keygen(rng io.Reader) (*KeyPair, error) {
	var buf [curve.ScalarSize]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return nil, derecerr.New(derecerr.KindSerialization, op+".Keygen", err)
	}
	sk, err := curve.ScalarFromBytes(buf[:])
	if err != nil {
		return nil, derecerr.New(derecerr.KindSerialization, op+".Keygen", err)
	}
	return &KeyPair{SecretKey: sk, PublicKey: sk.PublicPoint()}, nil
}

// KeygenFromSeed is the deterministic counterpart of Keygen, consuming
// exactly ScalarSize bytes of seed material. Used by the pairing
// protocol so a 32-byte handshake seed reproducibly drives this
// subprotocol.
func KeygenFromSeed(seed [curve.ScalarSize]byte) (*KeyPair, error) {
	sk, err := curve.ScalarFromBytes(seed[:])
	if err != nil {
		return nil, derecerr.New(derecerr.KindSerialization, op+".KeygenFromSeed", err)
	}
	return &KeyPair{SecretKey: sk, PublicKey: sk.PublicPoint()}, nil
}

// Derive computes SHA-256(encode(peerPublic * sk)), the shared key for
// this side of an ECDH exchange.
func Derive(sk *curve.Scalar, peerPublic *curve.Point) [SharedKeySize]byte {
	shared := curve.ScalarMul(sk, peerPublic)
	return sha256.Sum256(shared.Bytes())
}
