// Package sharing implements the sharing orchestrator: turning a secret
// into one store-share request per helper channel.
package sharing

import (
	"context"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rsinha/derec-go/pkg/derec/derecconfig"
	"github.com/rsinha/derec-go/pkg/derec/derecerr"
	"github.com/rsinha/derec-go/pkg/derec/derecmetrics"
	"github.com/rsinha/derec-go/pkg/derec/derecslog"
	"github.com/rsinha/derec-go/pkg/derec/message"
	"github.com/rsinha/derec-go/pkg/derec/vss"
)

const op = "sharing"

// ChannelID identifies one paired channel; opaque to this package.
type ChannelID uint64

// ShareAlgorithm is the only algorithm identifier this library emits.
const ShareAlgorithm int32 = 0

// Orchestrator produces store-share requests from a secret and a set of
// helper channels. The zero value is ready to use; Logger, Metrics,
// Tracer and Config may all be left nil.
type Orchestrator struct {
	Logger  derecslog.Logger
	Metrics *derecmetrics.Recorder
	Tracer  trace.Tracer
	Config  *derecconfig.Config
}

func (o *Orchestrator) logger() derecslog.Logger {
	if o.Logger == nil {
		return derecslog.Noop()
	}
	return o.Logger
}

func (o *Orchestrator) config() *derecconfig.Config {
	if o.Config == nil {
		return derecconfig.Default()
	}
	return o.Config
}

// ProtectSecret splits secretData across len(channels) shares requiring
// t of them to reconstruct, and returns one StoreShareRequestMessage per
// channel, keyed by channel ID; the i-th share goes to channels[i]. It fails with
// ThresholdUnsatisfiable if there are fewer channels than t. keepList and
// versionDescription are threaded through verbatim onto every request.
func (o *Orchestrator) ProtectSecret(
	ctx context.Context,
	secretID []byte,
	secretData []byte,
	channels []ChannelID,
	t int,
	version int32,
	keepList []int32,
	versionDescription string,
	rng io.Reader,
) (map[ChannelID]*message.StoreShareRequestMessage, error) {
	ctx, end := derecslog.StartSpan(ctx, o.Tracer, "derec.sharing.ProtectSecret",
		attribute.Int("t", t), attribute.Int("n", len(channels)))

	cfg := o.config()
	n := len(channels)
	if n < t {
		o.logger().Warn(ctx, "protect_secret: threshold unsatisfiable", "t", t, "n", n)
		err := derecerr.Newf(derecerr.KindThresholdUnsatisfiable, op+".ProtectSecret", "%d channels < threshold %d", n, t)
		end(err)
		return nil, err
	}
	if t > cfg.MaxThreshold {
		o.logger().Warn(ctx, "protect_secret: threshold exceeds configured maximum", "t", t, "max", cfg.MaxThreshold)
		err := derecerr.Newf(derecerr.KindThresholdUnsatisfiable, op+".ProtectSecret", "threshold %d exceeds configured max %d", t, cfg.MaxThreshold)
		end(err)
		return nil, err
	}

	shares, err := vss.Protect(secretData, t, n, cfg.MerkleDepthFloor, rng)
	if err != nil {
		o.logger().Warn(ctx, "protect_secret: vss.Protect failed", "err", err)
		wrapped := derecerr.New(derecerr.KindReconstruction, op+".ProtectSecret", err)
		end(wrapped)
		return nil, wrapped
	}

	out := make(map[ChannelID]*message.StoreShareRequestMessage, n)
	for i, ch := range channels {
		req, err := buildStoreShareRequest(shares[i], secretID, version, keepList, versionDescription)
		if err != nil {
			end(err)
			return nil, err
		}
		out[ch] = req
	}

	o.Metrics.IncSharesStored(n)
	o.logger().Info(ctx, "protect_secret: built store-share requests", "n", n, "t", t)
	end(nil)
	return out, nil
}

func buildStoreShareRequest(share vss.Share, secretID []byte, version int32, keepList []int32, versionDescription string) (*message.StoreShareRequestMessage, error) {
	derecShare := message.DeRecShare{
		EncryptedSecret: share.EncryptedSecret,
		X:               share.X.Bytes(),
		Y:               share.Y.Bytes(),
		SecretID:        secretID,
		Version:         version,
	}
	derecShareBytes, err := message.Encode(derecShare)
	if err != nil {
		return nil, derecerr.New(derecerr.KindSerialization, op+".buildStoreShareRequest", err)
	}

	path := make([]message.SiblingHashMessage, len(share.MerklePath))
	for i, s := range share.MerklePath {
		path[i] = message.SiblingHashMessage{IsLeft: s.IsLeft, Hash: s.Hash[:]}
	}
	committed := message.CommittedDeRecShare{
		DeRecShare: derecShareBytes,
		Commitment: share.Commitment[:],
		MerklePath: path,
	}
	committedBytes, err := message.Encode(committed)
	if err != nil {
		return nil, derecerr.New(derecerr.KindSerialization, op+".buildStoreShareRequest", err)
	}

	return &message.StoreShareRequestMessage{
		Share:              committedBytes,
		ShareAlgorithm:     ShareAlgorithm,
		Version:            version,
		KeepList:           keepList,
		VersionDescription: versionDescription,
	}, nil
}
