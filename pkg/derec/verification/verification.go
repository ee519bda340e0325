// Package verification implements the verification orchestrator:
// nonce-challenge possession proofs over shares a helper claims to
// still hold.
package verification

import (
	"context"
	"crypto/rand"
	"crypto/sha512"
	"io"

	"go.opentelemetry.io/otel/trace"

	"github.com/rsinha/derec-go/pkg/derec/channel"
	"github.com/rsinha/derec-go/pkg/derec/derecerr"
	"github.com/rsinha/derec-go/pkg/derec/derecmetrics"
	"github.com/rsinha/derec-go/pkg/derec/derecslog"
	"github.com/rsinha/derec-go/pkg/derec/message"
)

const op = "verification"

// NonceSize is the byte length of a verification challenge nonce.
const NonceSize = 32

// HashSize is the byte length of a possession proof hash (SHA-384).
const HashSize = sha512.Size384

// ChannelID identifies one paired channel; opaque to this package.
type ChannelID uint64

// Orchestrator drives possession-proof challenges. The zero value reads
// fresh nonces from crypto/rand; set Rand to override (for tests).
// Logger, Metrics and Tracer may all be left nil.
type Orchestrator struct {
	Rand    io.Reader
	Logger  derecslog.Logger
	Metrics *derecmetrics.Recorder
	Tracer  trace.Tracer
}

func (o *Orchestrator) rng() io.Reader {
	if o.Rand == nil {
		return rand.Reader
	}
	return o.Rand
}

func (o *Orchestrator) logger() derecslog.Logger {
	if o.Logger == nil {
		return derecslog.Noop()
	}
	return o.Logger
}

// GenerateVerificationRequest builds a fresh possession challenge for
// version. The nonce MUST be fresh per call — reusing one defeats the
// freshness property the protocol relies on to detect replay.
func (o *Orchestrator) GenerateVerificationRequest(ctx context.Context, secretID []byte, version int32) (*message.VerifyShareRequestMessage, error) {
	ctx, end := derecslog.StartSpan(ctx, o.Tracer, "derec.verification.GenerateVerificationRequest")
	var nonce [NonceSize]byte
	if _, err := io.ReadFull(o.rng(), nonce[:]); err != nil {
		err = derecerr.New(derecerr.KindSerialization, op+".GenerateVerificationRequest", err)
		end(err)
		return nil, err
	}
	o.logger().Debug(ctx, "verification: issued challenge", "version", version)
	end(nil)
	return &message.VerifyShareRequestMessage{
		Version: version,
		Nonce:   nonce[:],
	}, nil
}

// GenerateVerificationResponse answers a request with a proof that
// commits to the exact bytes of shareBlob, the share this helper
// actually stored for channel.
func (o *Orchestrator) GenerateVerificationResponse(channel ChannelID, secretID []byte, shareBlob []byte, request *message.VerifyShareRequestMessage) *message.VerifyShareResponseMessage {
	return &message.VerifyShareResponseMessage{
		Result:  message.Result{Status: message.StatusOK},
		Version: request.Version,
		Nonce:   request.Nonce,
		Hash:    possessionHash(shareBlob, request.Nonce),
	}
}

// VerifyShareResponse recomputes the possession proof over
// expectedShareBlob and response.Nonce and compares it against
// response.Hash in constant time.
func (o *Orchestrator) VerifyShareResponse(ch ChannelID, secretID []byte, expectedShareBlob []byte, response *message.VerifyShareResponseMessage) bool {
	want := possessionHash(expectedShareBlob, response.Nonce)
	ok := channel.ConstantTimeEqual(want, response.Hash)
	if !ok {
		o.logger().Warn(context.Background(), "verification: possession proof mismatch", "version", response.Version)
		o.Metrics.IncVerificationFailure()
	}
	return ok
}

func possessionHash(shareBlob, nonce []byte) []byte {
	h := sha512.New384()
	h.Write(shareBlob)
	h.Write(nonce)
	return h.Sum(nil)
}
