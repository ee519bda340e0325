package sharing_test

import (
	"context"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rsinha/derec-go/pkg/derec/derecconfig"
	"github.com/rsinha/derec-go/pkg/derec/derecerr"
	"github.com/rsinha/derec-go/pkg/derec/message"
	"github.com/rsinha/derec-go/pkg/derec/sharing"
)

func TestProtectSecretBuildsOneRequestPerChannel(t *testing.T) {
	var o sharing.Orchestrator
	channels := []sharing.ChannelID{1, 2, 3}

	out, err := o.ProtectSecret(context.Background(), []byte("sid"), []byte("password"), channels, 2, 1, nil, "", rand.Reader)
	require.NoError(t, err)
	require.Len(t, out, 3)

	for _, ch := range channels {
		req, ok := out[ch]
		require.True(t, ok)
		require.Equal(t, sharing.ShareAlgorithm, req.ShareAlgorithm)
		require.Equal(t, int32(1), req.Version)

		var committed message.CommittedDeRecShare
		require.NoError(t, message.Decode(req.Share, &committed))
		var inner message.DeRecShare
		require.NoError(t, message.Decode(committed.DeRecShare, &inner))
		require.Equal(t, []byte("sid"), inner.SecretID)
	}
}

func TestProtectSecretRejectsTooFewChannels(t *testing.T) {
	var o sharing.Orchestrator
	channels := []sharing.ChannelID{1}

	_, err := o.ProtectSecret(context.Background(), []byte("sid"), []byte("password"), channels, 2, 1, nil, "", rand.Reader)
	require.Error(t, err)
	require.True(t, errors.Is(err, derecerr.ErrThresholdUnsatisfiable))
}

func TestProtectSecretRejectsThresholdAboveConfiguredMax(t *testing.T) {
	o := sharing.Orchestrator{Config: &derecconfig.Config{MerkleDepthFloor: 1, MaxThreshold: 2}}
	channels := []sharing.ChannelID{1, 2, 3}

	_, err := o.ProtectSecret(context.Background(), []byte("sid"), []byte("password"), channels, 3, 1, nil, "", rand.Reader)
	require.Error(t, err)
	require.True(t, errors.Is(err, derecerr.ErrThresholdUnsatisfiable))
}

func TestProtectSecretHonorsConfiguredMerkleDepthFloor(t *testing.T) {
	o := sharing.Orchestrator{Config: &derecconfig.Config{MerkleDepthFloor: 8, MaxThreshold: 64}}
	channels := []sharing.ChannelID{1, 2, 3}

	out, err := o.ProtectSecret(context.Background(), []byte("sid"), []byte("password"), channels, 2, 1, nil, "", rand.Reader)
	require.NoError(t, err)

	req := out[channels[0]]
	var committed message.CommittedDeRecShare
	require.NoError(t, message.Decode(req.Share, &committed))
	// floor=8 forces a deeper tree than ceil(log2(3))=2 would alone,
	// so the Merkle path carries 8 sibling hashes.
	require.Len(t, committed.MerklePath, 8)
}

func TestProtectSecretThreadsKeepListAndDescription(t *testing.T) {
	var o sharing.Orchestrator
	channels := []sharing.ChannelID{1, 2}
	keepList := []int32{1, 2, 3}

	out, err := o.ProtectSecret(context.Background(), []byte("sid"), []byte("secret"), channels, 2, 5, keepList, "v5 notes", rand.Reader)
	require.NoError(t, err)

	for _, ch := range channels {
		req := out[ch]
		require.Equal(t, keepList, req.KeepList)
		require.Equal(t, "v5 notes", req.VersionDescription)
	}
}
