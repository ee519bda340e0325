package mlkem_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rsinha/derec-go/pkg/derec/mlkem"
)

func TestKeygenEncapsDecapsRoundTrip(t *testing.T) {
	kp, err := mlkem.Keygen(rand.Reader)
	require.NoError(t, err)

	ct, ss, err := mlkem.Encaps(kp.EncapsulationKey, rand.Reader)
	require.NoError(t, err)

	got, err := mlkem.Decaps(kp.DecapsulationKey, ct)
	require.NoError(t, err)
	require.Equal(t, ss, got)
}

func TestEncapsDerandIsDeterministic(t *testing.T) {
	kp, err := mlkem.Keygen(rand.Reader)
	require.NoError(t, err)

	seed := make([]byte, mlkem.SeedSize)
	_, err = rand.Read(seed)
	require.NoError(t, err)

	ct1, ss1, err := mlkem.EncapsDerand(kp.EncapsulationKey, seed)
	require.NoError(t, err)
	ct2, ss2, err := mlkem.EncapsDerand(kp.EncapsulationKey, seed)
	require.NoError(t, err)

	require.Equal(t, ct1, ct2)
	require.Equal(t, ss1, ss2)
}

func TestEncapsDerandRejectsWrongSeedLength(t *testing.T) {
	kp, err := mlkem.Keygen(rand.Reader)
	require.NoError(t, err)

	_, _, err = mlkem.EncapsDerand(kp.EncapsulationKey, []byte{1, 2, 3})
	require.Error(t, err)
}

func TestDistinctKeyPairsHaveDistinctEncapsulationKeys(t *testing.T) {
	kp1, err := mlkem.Keygen(rand.Reader)
	require.NoError(t, err)
	kp2, err := mlkem.Keygen(rand.Reader)
	require.NoError(t, err)

	require.False(t, bytes.Equal(kp1.EncapsulationKey[:], kp2.EncapsulationKey[:]))
}
