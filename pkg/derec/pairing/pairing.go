// Package pairing implements the two-message hybrid handshake that
// combines ML-KEM-768 and secp256k1 ECDH into one 32-byte channel key.
//
// A single 32-byte seed funnels all protocol randomness: it is split via
// HKDF into independent sub-seeds that separately drive the ML-KEM and
// ECIES keygen/encapsulation steps, so the two subprotocols never share
// correlated randomness even though the caller supplies just one seed.
package pairing

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/rsinha/derec-go/pkg/derec/curve"
	"github.com/rsinha/derec-go/pkg/derec/derecerr"
	"github.com/rsinha/derec-go/pkg/derec/ecies"
	"github.com/rsinha/derec-go/pkg/derec/mlkem"
)

const op = "pairing"

// ChannelKeySize is the byte length of the derived channel key K.
const ChannelKeySize = 32

// ContactMaterial is the public material sent by the initiator.
type ContactMaterial struct {
	MLKemEncapsulationKey [mlkem.EncapsulationKeySize]byte
	EciesPublicKey        [curve.UncompressedPointSize]byte
}

// RequestMaterial is the public material sent back by the responder.
type RequestMaterial struct {
	MLKemCiphertext [mlkem.CiphertextSize]byte
	EciesPublicKey  [curve.UncompressedPointSize]byte
}

// role tags which shape a Secret carries, gating which Finish function
// may consume it.
type role int

const (
	roleInitiator role = iota
	roleResponder
)

// Secret is the private half of a pairing handshake, tagged by the role
// that created it. Finishing the handshake in the wrong role is a
// PairingState error rather than silently producing a wrong key.
type Secret struct {
	role role

	// initiator fields
	mlkemDecapsulationKey [mlkem.DecapsulationKeySize]byte
	eciesSecretKey        *curve.Scalar

	// responder fields
	mlkemSharedSecret [mlkem.SharedSecretSize]byte
}

func splitSeed(seed [32]byte) (mlkemSeed [32]byte, eciesSeed [curve.ScalarSize]byte, err error) {
	reader := hkdf.New(sha256.New, seed[:], nil, []byte("derec-pairing-seed-split"))
	if _, rErr := io.ReadFull(reader, mlkemSeed[:]); rErr != nil {
		err = derecerr.New(derecerr.KindSerialization, op+".splitSeed", rErr)
		return
	}
	if _, rErr := io.ReadFull(reader, eciesSeed[:]); rErr != nil {
		err = derecerr.New(derecerr.KindSerialization, op+".splitSeed", rErr)
		return
	}
	return
}

// ContactMessage runs the initiator's side of step one: generate an
// ML-KEM keypair and an ECIES keypair, both deterministically derived
// from seed, and return the public material to send plus the private
// Secret needed to finish the handshake later.
func ContactMessage(seed [32]byte) (*ContactMaterial, *Secret, error) {
	mlkemSeed, eciesSeed, err := splitSeed(seed)
	if err != nil {
		return nil, nil, err
	}

	kemKP, err := mlkemKeygenFromSeed(mlkemSeed)
	if err != nil {
		return nil, nil, derecerr.New(derecerr.KindMLKemEncaps, op+".ContactMessage", err)
	}
	eciesKP, err := ecies.KeygenFromSeed(eciesSeed)
	if err != nil {
		return nil, nil, derecerr.New(derecerr.KindSerialization, op+".ContactMessage", err)
	}

	material := &ContactMaterial{
		MLKemEncapsulationKey: kemKP.EncapsulationKey,
		EciesPublicKey:        [curve.UncompressedPointSize]byte(eciesKP.PublicKey.Bytes()),
	}
	secret := &Secret{
		role:                  roleInitiator,
		mlkemDecapsulationKey: kemKP.DecapsulationKey,
		eciesSecretKey:        eciesKP.SecretKey,
	}
	return material, secret, nil
}

// RequestMessage runs the responder's side of step two: encapsulate to
// the initiator's ML-KEM key and generate a fresh ECIES keypair, both
// deterministically derived from seed, and return the public material
// to send back plus the private Secret needed to finish the handshake.
func RequestMessage(seed [32]byte, contact *ContactMaterial) (*RequestMaterial, *Secret, error) {
	mlkemSeed, eciesSeed, err := splitSeed(seed)
	if err != nil {
		return nil, nil, err
	}

	ct, ss, err := mlkem.EncapsDerand(contact.MLKemEncapsulationKey, mlkemSeed[:mlkem.SeedSize])
	if err != nil {
		return nil, nil, derecerr.New(derecerr.KindMLKemEncaps, op+".RequestMessage", err)
	}
	eciesKP, err := ecies.KeygenFromSeed(eciesSeed)
	if err != nil {
		return nil, nil, derecerr.New(derecerr.KindSerialization, op+".RequestMessage", err)
	}

	material := &RequestMaterial{
		MLKemCiphertext: ct,
		EciesPublicKey:  [curve.UncompressedPointSize]byte(eciesKP.PublicKey.Bytes()),
	}
	secret := &Secret{
		role:              roleResponder,
		mlkemSharedSecret: ss,
		eciesSecretKey:    eciesKP.SecretKey,
	}
	return material, secret, nil
}

// FinishInitiator completes the handshake on the initiator side:
// decapsulate the responder's ML-KEM ciphertext and derive the ECDH
// shared key against the responder's ECIES public key, then XOR the two
// into the channel key. secret must have been produced by ContactMessage.
func FinishInitiator(secret *Secret, request *RequestMaterial) ([ChannelKeySize]byte, error) {
	var key [ChannelKeySize]byte
	if secret.role != roleInitiator {
		return key, derecerr.Newf(derecerr.KindPairingState, op+".FinishInitiator", "secret was not created by ContactMessage")
	}

	ssK, err := mlkem.Decaps(secret.mlkemDecapsulationKey, request.MLKemCiphertext)
	if err != nil {
		return key, derecerr.New(derecerr.KindMLKemDecaps, op+".FinishInitiator", err)
	}
	peerPoint, err := curve.PointFromUncompressedBytes(request.EciesPublicKey[:])
	if err != nil {
		return key, derecerr.New(derecerr.KindSerialization, op+".FinishInitiator", err)
	}
	ssE := ecies.Derive(secret.eciesSecretKey, peerPoint)

	key = xorKeys(ssK, ssE)
	return key, nil
}

// FinishResponder completes the handshake on the responder side:
// derive the ECDH shared key against the initiator's ECIES public key
// and combine it with the ML-KEM shared secret produced by
// RequestMessage. secret must have been produced by RequestMessage.
func FinishResponder(secret *Secret, contact *ContactMaterial) ([ChannelKeySize]byte, error) {
	var key [ChannelKeySize]byte
	if secret.role != roleResponder {
		return key, derecerr.Newf(derecerr.KindPairingState, op+".FinishResponder", "secret was not created by RequestMessage")
	}

	peerPoint, err := curve.PointFromUncompressedBytes(contact.EciesPublicKey[:])
	if err != nil {
		return key, derecerr.New(derecerr.KindSerialization, op+".FinishResponder", err)
	}
	ssE := ecies.Derive(secret.eciesSecretKey, peerPoint)

	key = xorKeys(secret.mlkemSharedSecret, ssE)
	return key, nil
}

func xorKeys(a, b [32]byte) [ChannelKeySize]byte {
	var out [ChannelKeySize]byte
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}

func mlkemKeygenFromSeed(seed [32]byte) (*mlkem.KeyPair, error) {
	// ML-KEM keygen is itself randomized by the underlying algorithm's
	// internal coin-generation, so we feed it a deterministic stream
	// keyed off seed rather than relying on a derand entry point (the
	// reference library does not expose one for keygen).
	r := hkdf.New(sha256.New, seed[:], nil, []byte("derec-pairing-mlkem-keygen"))
	return mlkem.Keygen(r)
}
