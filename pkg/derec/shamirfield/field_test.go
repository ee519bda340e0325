package shamirfield_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rsinha/derec-go/pkg/derec/shamirfield"
)

func TestModulusExceeds256Bits(t *testing.T) {
	require.Greater(t, shamirfield.Modulus.BitLen(), 256)
}

func TestFromBytes32RoundTripsThroughLast32Bytes(t *testing.T) {
	var secret [32]byte
	_, err := rand.Read(secret[:])
	require.NoError(t, err)

	e := shamirfield.FromBytes32(secret)
	require.True(t, bytes.Equal(secret[:], e.Last32Bytes()[:]))
}

func TestArithmeticRoundTrips(t *testing.T) {
	a, err := shamirfield.Random(rand.Reader)
	require.NoError(t, err)
	b, err := shamirfield.Random(rand.Reader)
	require.NoError(t, err)

	sum := a.Add(b)
	back := sum.Sub(b)
	require.True(t, back.Equal(a))

	inv, err := b.Inverse()
	require.NoError(t, err)
	require.True(t, b.Mul(inv).Equal(identityOne(t)))
}

func TestFromFixedBytesRejectsOversizedValue(t *testing.T) {
	oversized := bytes.Repeat([]byte{0xFF}, shamirfield.ElementSize)
	_, err := shamirfield.FromFixedBytes(oversized)
	require.Error(t, err)
}

func identityOne(t *testing.T) *shamirfield.Element {
	t.Helper()
	var one [32]byte
	one[31] = 1
	return shamirfield.FromBytes32(one)
}
