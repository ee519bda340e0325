// Package recovery implements the recovery orchestrator: building share
// retrieval requests, echoing stored shares back verbatim, and
// reconstructing a secret from a set of helper responses.
package recovery

import (
	"bytes"
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rsinha/derec-go/pkg/derec/derecerr"
	"github.com/rsinha/derec-go/pkg/derec/derecmetrics"
	"github.com/rsinha/derec-go/pkg/derec/derecslog"
	"github.com/rsinha/derec-go/pkg/derec/message"
	"github.com/rsinha/derec-go/pkg/derec/shamirfield"
	"github.com/rsinha/derec-go/pkg/derec/vss"
)

const op = "recovery"

// ChannelID identifies one paired channel; opaque to this package.
type ChannelID uint64

// Orchestrator drives share retrieval and reconstruction. The zero
// value is ready to use; Logger, Metrics and Tracer may all be left
// nil.
type Orchestrator struct {
	Logger  derecslog.Logger
	Metrics *derecmetrics.Recorder
	Tracer  trace.Tracer
}

func (o *Orchestrator) logger() derecslog.Logger {
	if o.Logger == nil {
		return derecslog.Noop()
	}
	return o.Logger
}

// GenerateShareRequest builds the retrieval request a sharer sends to
// one helper channel. channel is accepted for symmetry with the
// verification orchestrator's per-channel API; it does not appear in
// the returned message.
func (o *Orchestrator) GenerateShareRequest(channel ChannelID, secretID []byte, version int32) *message.GetShareRequestMessage {
	return &message.GetShareRequestMessage{
		SecretID:     secretID,
		ShareVersion: version,
	}
}

// GenerateShareResponse builds a helper's reply: the stored share blob,
// returned verbatim, with an OK status. channel and request are accepted
// for symmetry with the verification orchestrator's API.
func (o *Orchestrator) GenerateShareResponse(channel ChannelID, secretID []byte, request *message.GetShareRequestMessage, storedShare []byte) *message.GetShareResponseMessage {
	return &message.GetShareResponseMessage{
		ShareAlgorithm:      0,
		CommittedDeRecShare: storedShare,
		Result:              message.Result{Status: message.StatusOK},
	}
}

// RecoverFromShareResponses assembles responses into VSS shares, runs
// the share-set consistency check, and reconstructs the original
// payload. Every response must report StatusOK and its decoded
// secret_id and version must match the caller's expectation, or the
// whole call fails — a single mismatched response indicates the helper
// answered about the wrong sharing, not that it can simply be dropped.
func (o *Orchestrator) RecoverFromShareResponses(
	ctx context.Context,
	responses []*message.GetShareResponseMessage,
	secretID []byte,
	version int32,
) ([]byte, error) {
	ctx, end := derecslog.StartSpan(ctx, o.Tracer, "derec.recovery.RecoverFromShareResponses",
		attribute.Int("responses", len(responses)))
	o.Metrics.IncRecoveryAttempted()

	fail := func(err error) ([]byte, error) {
		o.Metrics.IncRecoveryFailed(derecerr.KindOf(err))
		end(err)
		return nil, err
	}

	shares := make([]vss.Share, 0, len(responses))
	for _, resp := range responses {
		if resp.Result.Status != message.StatusOK {
			o.logger().Warn(ctx, "recover_from_share_responses: non-OK response", "status", resp.Result.Status)
			return fail(derecerr.Newf(derecerr.KindReconstruction, op+".RecoverFromShareResponses", "response status %d != OK", resp.Result.Status))
		}

		share, gotSecretID, gotVersion, err := decodeCommittedShare(resp.CommittedDeRecShare)
		if err != nil {
			return fail(derecerr.New(derecerr.KindSerialization, op+".RecoverFromShareResponses", err))
		}
		if !bytes.Equal(gotSecretID, secretID) {
			return fail(derecerr.Newf(derecerr.KindSecretIdMismatch, op+".RecoverFromShareResponses", "response secret_id does not match request"))
		}
		if gotVersion != version {
			return fail(derecerr.Newf(derecerr.KindVersionMismatch, op+".RecoverFromShareResponses", "response version %d != requested %d", gotVersion, version))
		}
		shares = append(shares, share)
	}

	payload, err := vss.Recover(shares)
	if err != nil {
		o.logger().Warn(ctx, "recover_from_share_responses: recovery failed", "err", err)
		return fail(err)
	}

	o.logger().Info(ctx, "recover_from_share_responses: reconstructed secret", "shares", len(shares))
	end(nil)
	return payload, nil
}

// decodeCommittedShare decodes a CommittedDeRecShare blob (as stored
// verbatim by a helper) back into a vss.Share, plus the inner
// DeRecShare's secret_id and version.
func decodeCommittedShare(blob []byte) (vss.Share, []byte, int32, error) {
	var committed message.CommittedDeRecShare
	if err := message.Decode(blob, &committed); err != nil {
		return vss.Share{}, nil, 0, err
	}

	var inner message.DeRecShare
	if err := message.Decode(committed.DeRecShare, &inner); err != nil {
		return vss.Share{}, nil, 0, err
	}

	x, err := shamirfield.FromFixedBytes(inner.X)
	if err != nil {
		return vss.Share{}, nil, 0, err
	}
	y, err := shamirfield.FromFixedBytes(inner.Y)
	if err != nil {
		return vss.Share{}, nil, 0, err
	}

	if len(committed.Commitment) != 32 {
		return vss.Share{}, nil, 0, derecerr.Newf(derecerr.KindSerialization, op+".decodeCommittedShare", "commitment must be 32 bytes")
	}
	var commitment [32]byte
	copy(commitment[:], committed.Commitment)

	path := make([]vss.SiblingHash, len(committed.MerklePath))
	for i, s := range committed.MerklePath {
		if len(s.Hash) != 32 {
			return vss.Share{}, nil, 0, derecerr.Newf(derecerr.KindSerialization, op+".decodeCommittedShare", "sibling hash must be 32 bytes")
		}
		var h [32]byte
		copy(h[:], s.Hash)
		path[i] = vss.SiblingHash{IsLeft: s.IsLeft, Hash: h}
	}

	share := vss.Share{
		X:               x,
		Y:               y,
		EncryptedSecret: inner.EncryptedSecret,
		Commitment:      commitment,
		MerklePath:      path,
	}
	return share, inner.SecretID, inner.Version, nil
}
