package vss_test

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rsinha/derec-go/pkg/derec/derecerr"
	"github.com/rsinha/derec-go/pkg/derec/vss"
)

func TestProtectRecoverRoundTrip(t *testing.T) {
	payload := []byte("password")

	shares, err := vss.Protect(payload, 2, 3, 1, rand.Reader)
	require.NoError(t, err)
	require.Len(t, shares, 3)

	got, err := vss.Recover(shares[:2])
	require.NoError(t, err)
	require.Equal(t, payload, got)

	got, err = vss.Recover([]vss.Share{shares[0], shares[2]})
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestDetectErrorCatchesTamperedCommitment(t *testing.T) {
	shares, err := vss.Protect([]byte("abc123"), 2, 3, 1, rand.Reader)
	require.NoError(t, err)

	tampered := shares
	tampered[0].Commitment[0] ^= 0xFF

	err = vss.DetectError(tampered)
	require.Error(t, err)
	require.True(t, errors.Is(err, derecerr.ErrInconsistentCommitments))
}

func TestDetectErrorCatchesTamperedCiphertext(t *testing.T) {
	shares, err := vss.Protect([]byte("abc123"), 2, 3, 1, rand.Reader)
	require.NoError(t, err)

	tampered := shares
	tampered[0].EncryptedSecret = append([]byte{}, tampered[0].EncryptedSecret...)
	tampered[0].EncryptedSecret[0] ^= 0xFF

	err = vss.DetectError(tampered)
	require.Error(t, err)
	require.True(t, errors.Is(err, derecerr.ErrInconsistentCiphertexts))
}

func TestDetectErrorCatchesCorruptMerklePath(t *testing.T) {
	shares, err := vss.Protect([]byte("abc123"), 2, 3, 1, rand.Reader)
	require.NoError(t, err)

	tampered := shares
	tampered[0].MerklePath = append([]vss.SiblingHash{}, tampered[0].MerklePath...)
	tampered[0].MerklePath[0].Hash[0] ^= 0xFF

	err = vss.DetectError(tampered)
	require.Error(t, err)
	require.True(t, errors.Is(err, derecerr.ErrCorruptShares))
}

func TestDetectErrorAcceptsConsistentShares(t *testing.T) {
	shares, err := vss.Protect([]byte("abc123"), 2, 3, 1, rand.Reader)
	require.NoError(t, err)
	require.NoError(t, vss.DetectError(shares))
}
