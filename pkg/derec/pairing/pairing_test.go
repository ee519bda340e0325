package pairing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rsinha/derec-go/pkg/derec/pairing"
)

func TestHandshakeWithZeroSeedsAgreesOnChannelKey(t *testing.T) {
	var initiatorSeed, responderSeed [32]byte // zero seeds, per the deterministic agreement scenario

	contact, initSecret, err := pairing.ContactMessage(initiatorSeed)
	require.NoError(t, err)

	request, respSecret, err := pairing.RequestMessage(responderSeed, contact)
	require.NoError(t, err)

	kInitiator, err := pairing.FinishInitiator(initSecret, request)
	require.NoError(t, err)
	kResponder, err := pairing.FinishResponder(respSecret, contact)
	require.NoError(t, err)

	require.Equal(t, kInitiator, kResponder)
}

func TestHandshakeWithNonZeroSeedsAgreesOnChannelKey(t *testing.T) {
	initiatorSeed := [32]byte{1, 2, 3, 4}
	responderSeed := [32]byte{5, 6, 7, 8}

	contact, initSecret, err := pairing.ContactMessage(initiatorSeed)
	require.NoError(t, err)

	request, respSecret, err := pairing.RequestMessage(responderSeed, contact)
	require.NoError(t, err)

	kInitiator, err := pairing.FinishInitiator(initSecret, request)
	require.NoError(t, err)
	kResponder, err := pairing.FinishResponder(respSecret, contact)
	require.NoError(t, err)

	require.Equal(t, kInitiator, kResponder)
}

func TestFinishRejectsWrongRoleSecret(t *testing.T) {
	var initiatorSeed, responderSeed [32]byte

	contact, initSecret, err := pairing.ContactMessage(initiatorSeed)
	require.NoError(t, err)

	request, _, err := pairing.RequestMessage(responderSeed, contact)
	require.NoError(t, err)

	// initSecret was produced by ContactMessage; FinishResponder must reject it.
	_, err = pairing.FinishResponder(initSecret, contact)
	require.Error(t, err)

	// a Secret from RequestMessage must likewise be rejected by FinishInitiator.
	_, respSecret, err := pairing.RequestMessage(responderSeed, contact)
	require.NoError(t, err)
	_, err = pairing.FinishInitiator(respSecret, request)
	require.Error(t, err)
}

func TestDistinctSeedsProduceDistinctChannelKeys(t *testing.T) {
	contactA, initSecretA, err := pairing.ContactMessage([32]byte{1})
	require.NoError(t, err)
	requestA, _, err := pairing.RequestMessage([32]byte{2}, contactA)
	require.NoError(t, err)
	kA, err := pairing.FinishInitiator(initSecretA, requestA)
	require.NoError(t, err)

	contactB, initSecretB, err := pairing.ContactMessage([32]byte{3})
	require.NoError(t, err)
	requestB, _, err := pairing.RequestMessage([32]byte{4}, contactB)
	require.NoError(t, err)
	kB, err := pairing.FinishInitiator(initSecretB, requestB)
	require.NoError(t, err)

	require.NotEqual(t, kA, kB)
}
