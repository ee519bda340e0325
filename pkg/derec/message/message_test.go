package message_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rsinha/derec-go/pkg/derec/derecerr"
	"github.com/rsinha/derec-go/pkg/derec/message"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := message.ContactMessage{
		PublicKeyID:           7,
		TransportURI:          "https://helper.example/inbox",
		MLKemEncapsulationKey: []byte{1, 2, 3},
		EciesPublicKey:        []byte{4, 5, 6},
		Nonce:                 42,
		MessageEncodingType:   0,
	}

	b, err := message.Encode(want)
	require.NoError(t, err)

	var got message.ContactMessage
	require.NoError(t, message.Decode(b, &got))
	require.Equal(t, want, got)
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	var out message.ContactMessage
	err := message.Decode([]byte("not json"), &out)
	require.Error(t, err)
	require.True(t, errors.Is(err, derecerr.ErrSerialization))
}

func TestCommittedDeRecShareRoundTrip(t *testing.T) {
	inner := message.DeRecShare{
		EncryptedSecret: []byte{9, 9},
		X:               []byte{1},
		Y:               []byte{2},
		SecretID:        []byte("sid"),
		Version:         1,
	}
	innerBytes, err := message.Encode(inner)
	require.NoError(t, err)

	outer := message.CommittedDeRecShare{
		DeRecShare: innerBytes,
		Commitment: []byte{0xAA},
		MerklePath: []message.SiblingHashMessage{{IsLeft: true, Hash: []byte{1}}},
	}
	outerBytes, err := message.Encode(outer)
	require.NoError(t, err)

	var decodedOuter message.CommittedDeRecShare
	require.NoError(t, message.Decode(outerBytes, &decodedOuter))

	var decodedInner message.DeRecShare
	require.NoError(t, message.Decode(decodedOuter.DeRecShare, &decodedInner))
	require.Equal(t, inner, decodedInner)
}
