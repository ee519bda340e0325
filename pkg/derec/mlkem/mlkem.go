// Package mlkem wraps ML-KEM-768 key encapsulation with the fixed byte
// sizes the pairing protocol expects, surfacing only library-reported
// encapsulation/decapsulation failures as typed errors.
package mlkem

import (
	"io"

	"github.com/cloudflare/circl/kem/mlkem/mlkem768"

	"github.com/rsinha/derec-go/pkg/derec/derecerr"
)

const op = "mlkem"

const (
	// EncapsulationKeySize is the byte length of a public encapsulation key.
	EncapsulationKeySize = mlkem768.PublicKeySize
	// DecapsulationKeySize is the byte length of a private decapsulation key.
	DecapsulationKeySize = mlkem768.PrivateKeySize
	// CiphertextSize is the byte length of an encapsulation ciphertext.
	CiphertextSize = mlkem768.CiphertextSize
	// SharedSecretSize is the byte length of the derived shared secret.
	SharedSecretSize = mlkem768.SharedKeySize
	// SeedSize is the byte length of the deterministic encapsulation seed
	// accepted by EncapsDerand.
	SeedSize = mlkem768.EncapsulationSeedSize
)

// KeyPair holds a generated ML-KEM-768 key pair in its fixed-size wire
// encoding.
type KeyPair struct {
	EncapsulationKey [EncapsulationKeySize]byte
	DecapsulationKey [DecapsulationKeySize]byte
}

// Keygen generates a fresh key pair, reading randomness from rng.
func Keygen(rng io.Reader) (*KeyPair, error) {
	ek, dk, err := mlkem768.GenerateKeyPair(rng)
	if err != nil {
		return nil, derecerr.New(derecerr.KindMLKemEncaps, op+".Keygen", err)
	}
	ekBytes, err := ek.MarshalBinary()
	if err != nil {
		return nil, derecerr.New(derecerr.KindSerialization, op+".Keygen", err)
	}
	dkBytes, err := dk.MarshalBinary()
	if err != nil {
		return nil, derecerr.New(derecerr.KindSerialization, op+".Keygen", err)
	}

	var kp KeyPair
	copy(kp.EncapsulationKey[:], ekBytes)
	copy(kp.DecapsulationKey[:], dkBytes)
	return &kp, nil
}

// Encaps encapsulates a fresh shared secret to ek, reading randomness
// from rng. Returns the ciphertext and shared secret.
func Encaps(ek [EncapsulationKeySize]byte, rng io.Reader) (ct [CiphertextSize]byte, ss [SharedSecretSize]byte, err error) {
	seed := make([]byte, SeedSize)
	if _, readErr := io.ReadFull(rng, seed); readErr != nil {
		err = derecerr.New(derecerr.KindMLKemEncaps, op+".Encaps", readErr)
		return
	}
	return EncapsDerand(ek, seed)
}

// EncapsDerand encapsulates deterministically, driven entirely by seed
// (SeedSize bytes). The same (ek, seed) always produces the same
// ciphertext; used by the pairing protocol so a single 32-byte handshake
// seed yields reproducible transcripts.
func EncapsDerand(ek [EncapsulationKeySize]byte, seed []byte) (ct [CiphertextSize]byte, ss [SharedSecretSize]byte, err error) {
	if len(seed) != SeedSize {
		err = derecerr.Newf(derecerr.KindMLKemEncaps, op+".EncapsDerand", "want %d byte seed, got %d", SeedSize, len(seed))
		return
	}

	var pub mlkem768.PublicKey
	if unpackErr := pub.Unpack(ek[:]); unpackErr != nil {
		err = derecerr.New(derecerr.KindSerialization, op+".EncapsDerand", unpackErr)
		return
	}

	ctBuf := make([]byte, CiphertextSize)
	ssBuf := make([]byte, SharedSecretSize)
	pub.EncapsulateTo(ctBuf, ssBuf, seed)

	copy(ct[:], ctBuf)
	copy(ss[:], ssBuf)
	return
}

// Decaps decapsulates ct under dk, recovering the shared secret that was
// established during Encaps or EncapsDerand.
func Decaps(dk [DecapsulationKeySize]byte, ct [CiphertextSize]byte) (ss [SharedSecretSize]byte, err error) {
	var priv mlkem768.PrivateKey
	if unpackErr := priv.Unpack(dk[:]); unpackErr != nil {
		err = derecerr.New(derecerr.KindSerialization, op+".Decaps", unpackErr)
		return
	}

	ssBuf := make([]byte, SharedSecretSize)
	priv.DecapsulateTo(ssBuf, ct[:])
	copy(ss[:], ssBuf)
	return
}
