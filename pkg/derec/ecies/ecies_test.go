package ecies_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rsinha/derec-go/pkg/derec/curve"
	"github.com/rsinha/derec-go/pkg/derec/ecies"
)

func TestDeriveAgreesBothSides(t *testing.T) {
	a, err := ecies.Keygen(rand.Reader)
	require.NoError(t, err)
	b, err := ecies.Keygen(rand.Reader)
	require.NoError(t, err)

	left := ecies.Derive(a.SecretKey, b.PublicKey)
	right := ecies.Derive(b.SecretKey, a.PublicKey)
	require.Equal(t, left, right)
}

func TestKeygenFromSeedIsDeterministic(t *testing.T) {
	var seed [curve.ScalarSize]byte
	seed[curve.ScalarSize-1] = 9

	a, err := ecies.KeygenFromSeed(seed)
	require.NoError(t, err)
	b, err := ecies.KeygenFromSeed(seed)
	require.NoError(t, err)

	require.Equal(t, a.PublicKey.Bytes(), b.PublicKey.Bytes())
}
