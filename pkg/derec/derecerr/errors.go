// Package derecerr defines the error taxonomy shared by every derec
// package: a typed Kind plus a wrapped Error carrying the failing
// operation and underlying cause.
package derecerr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error so callers can branch on failure category
// without string-matching messages.
type Kind string

const (
	KindSerialization           Kind = "serialization"
	KindMLKemEncaps             Kind = "mlkem_encaps"
	KindMLKemDecaps             Kind = "mlkem_decaps"
	KindChannelAuth             Kind = "channel_auth"
	KindPairingState            Kind = "pairing_state"
	KindInconsistentCommitments Kind = "inconsistent_commitments"
	KindInconsistentCiphertexts Kind = "inconsistent_ciphertexts"
	KindCorruptShares           Kind = "corrupt_shares"
	KindThresholdUnsatisfiable  Kind = "threshold_unsatisfiable"
	KindReconstruction          Kind = "reconstruction"
	KindSecretIdMismatch        Kind = "secret_id_mismatch"
	KindVersionMismatch         Kind = "version_mismatch"
	// KindVerificationFailed is reserved for integrators: this package's
	// own verification.VerifyShareResponse reports a failed possession
	// proof as a bool per the protocol's own definition, not an error, so
	// nothing here produces this kind.
	KindVerificationFailed Kind = "verification_failed"
)

// sentinel per-kind values, so errors.Is(err, derecerr.ErrChannelAuth) works
// without every caller needing to know the Error struct shape.
var (
	ErrSerialization           = errors.New(string(KindSerialization))
	ErrMLKemEncaps             = errors.New(string(KindMLKemEncaps))
	ErrMLKemDecaps             = errors.New(string(KindMLKemDecaps))
	ErrChannelAuth             = errors.New(string(KindChannelAuth))
	ErrPairingState            = errors.New(string(KindPairingState))
	ErrInconsistentCommitments = errors.New(string(KindInconsistentCommitments))
	ErrInconsistentCiphertexts = errors.New(string(KindInconsistentCiphertexts))
	ErrCorruptShares           = errors.New(string(KindCorruptShares))
	ErrThresholdUnsatisfiable  = errors.New(string(KindThresholdUnsatisfiable))
	ErrReconstruction          = errors.New(string(KindReconstruction))
	ErrSecretIdMismatch        = errors.New(string(KindSecretIdMismatch))
	ErrVersionMismatch         = errors.New(string(KindVersionMismatch))
	ErrVerificationFailed      = errors.New(string(KindVerificationFailed))
)

var sentinels = map[Kind]error{
	KindSerialization:           ErrSerialization,
	KindMLKemEncaps:             ErrMLKemEncaps,
	KindMLKemDecaps:             ErrMLKemDecaps,
	KindChannelAuth:             ErrChannelAuth,
	KindPairingState:            ErrPairingState,
	KindInconsistentCommitments: ErrInconsistentCommitments,
	KindInconsistentCiphertexts: ErrInconsistentCiphertexts,
	KindCorruptShares:           ErrCorruptShares,
	KindThresholdUnsatisfiable:  ErrThresholdUnsatisfiable,
	KindReconstruction:          ErrReconstruction,
	KindSecretIdMismatch:        ErrSecretIdMismatch,
	KindVersionMismatch:         ErrVersionMismatch,
	KindVerificationFailed:      ErrVerificationFailed,
}

// Error wraps an underlying cause with the Kind and operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("derec.%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("derec.%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, derecerr.ErrChannelAuth) match any Error of the
// corresponding Kind, regardless of the wrapped cause.
func (e *Error) Is(target error) bool {
	sentinel, ok := sentinels[e.Kind]
	return ok && errors.Is(sentinel, target)
}

// KindOf extracts the Kind of err for metrics labeling, returning
// "unknown" if err was not produced by this package.
func KindOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return string(e.Kind)
	}
	return "unknown"
}

// New builds an Error for op failing with kind, wrapping cause (which may
// be nil).
func New(kind Kind, op string, cause error) error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

// Newf is New with a formatted cause message.
func Newf(kind Kind, op, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}
