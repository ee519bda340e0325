// Package channel implements the AES-256-GCM framing used by all paired
// derec channels: nonce(12) || gcm_ciphertext_and_tag.
package channel

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"

	"github.com/rsinha/derec-go/pkg/derec/derecerr"
)

const (
	// KeySize is the channel key length in bytes.
	KeySize = 32
	// NonceSeedSize is the length of the caller-supplied seal randomness;
	// only the first NonceSize bytes are used as the GCM nonce.
	NonceSeedSize = 32
	// NonceSize is the GCM nonce length embedded in every frame.
	NonceSize = 12
)

const op = "channel"

// Seal encrypts plaintext under key, using the first NonceSize bytes of
// nonceSeed as the GCM nonce, and returns nonce(12) || ciphertext+tag.
func Seal(key [KeySize]byte, nonceSeed [NonceSeedSize]byte, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, derecerr.New(derecerr.KindSerialization, op+".Seal", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, derecerr.New(derecerr.KindSerialization, op+".Seal", err)
	}

	nonce := nonceSeed[:NonceSize]
	out := make([]byte, 0, NonceSize+len(plaintext)+gcm.Overhead())
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, plaintext, nil)
	return out, nil
}

// Open splits the leading NonceSize bytes of ciphertext as the GCM nonce
// and decrypts the remainder under key. Returns a ChannelAuth error on tag
// mismatch.
func Open(key [KeySize]byte, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < NonceSize {
		return nil, derecerr.Newf(derecerr.KindChannelAuth, op+".Open", "frame shorter than nonce")
	}
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, derecerr.New(derecerr.KindSerialization, op+".Open", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, derecerr.New(derecerr.KindSerialization, op+".Open", err)
	}

	nonce := ciphertext[:NonceSize]
	body := ciphertext[NonceSize:]
	plaintext, err := gcm.Open(nil, nonce, body, nil)
	if err != nil {
		return nil, derecerr.New(derecerr.KindChannelAuth, op+".Open", err)
	}
	return plaintext, nil
}

// ConstantTimeEqual reports whether a and b are equal, in constant time
// with respect to their contents (not their lengths).
func ConstantTimeEqual(a, b []byte) bool {
	return len(a) == len(b) && subtle.ConstantTimeCompare(a, b) == 1
}
