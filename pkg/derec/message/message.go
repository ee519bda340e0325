// Package message defines the opaque wire messages the protocol
// exchanges once pairing has produced a channel key, and encodes them
// with JSON so the cryptographic core never depends on a particular
// schema. Integrators are free to swap this codec for protobuf or any
// other length-prefixed, self-describing encoding without touching
// anything under pkg/derec/pairing, vss, sharing, recovery, or
// verification, which only ever see the decoded structs below.
package message

import (
	"encoding/json"

	"github.com/rsinha/derec-go/pkg/derec/derecerr"
)

const op = "message"

// Status mirrors the integrator-defined result status carried on every
// response message; OK is the only value this package interprets.
type Status int32

const StatusOK Status = 0

// Result is the {status, memo} pair attached to response messages.
type Result struct {
	Status Status `json:"status"`
	Memo   string `json:"memo,omitempty"`
}

// SenderKind distinguishes who originated a pairing message.
type SenderKind int32

const (
	SenderSharerNonRecovery SenderKind = 0
	SenderSharerRecovery    SenderKind = 1
	SenderHelper            SenderKind = 2
)

// ContactMessage is the first pairing message, sent by the initiator.
type ContactMessage struct {
	PublicKeyID           uint64 `json:"public_key_id"`
	TransportURI          string `json:"transport_uri"`
	MLKemEncapsulationKey []byte `json:"mlkem_encapsulation_key"`
	EciesPublicKey        []byte `json:"ecies_public_key"`
	Nonce                 uint64 `json:"nonce"`
	MessageEncodingType   int32  `json:"message_encoding_type"`
}

// PairRequestMessage is the pairing reply, sent by the responder. It
// must echo the contact message's nonce.
type PairRequestMessage struct {
	SenderKind        SenderKind `json:"sender_kind"`
	MLKemCiphertext   []byte     `json:"mlkem_ciphertext"`
	EciesPublicKey    []byte     `json:"ecies_public_key"`
	PublicKeyID       uint64     `json:"public_key_id"`
	Nonce             uint64     `json:"nonce"`
	CommunicationInfo []byte     `json:"communication_info,omitempty"`
	ParameterRange    []byte     `json:"parameter_range,omitempty"`
}

// PairResponseMessage acknowledges a PairRequestMessage and must echo
// its nonce.
type PairResponseMessage struct {
	SenderKind        SenderKind `json:"sender_kind"`
	Result            Result     `json:"result"`
	Nonce             uint64     `json:"nonce"`
	CommunicationInfo []byte     `json:"communication_info,omitempty"`
	ParameterRange    []byte     `json:"parameter_range,omitempty"`
}

// SiblingHashMessage is one Merkle path step on the wire.
type SiblingHashMessage struct {
	IsLeft bool   `json:"is_left"`
	Hash   []byte `json:"hash"`
}

// DeRecShare is the inner share payload, before Merkle commitment.
type DeRecShare struct {
	EncryptedSecret []byte `json:"encrypted_secret"`
	X               []byte `json:"x"`
	Y               []byte `json:"y"`
	SecretID        []byte `json:"secret_id"`
	Version         int32  `json:"version"`
}

// CommittedDeRecShare wraps a DeRecShare with its Merkle commitment and
// path, as handed to (and verbatim stored by) a helper.
type CommittedDeRecShare struct {
	DeRecShare []byte               `json:"de_rec_share"`
	Commitment []byte               `json:"commitment"`
	MerklePath []SiblingHashMessage `json:"merkle_path"`
}

// StoreShareRequestMessage asks a helper to persist a share.
type StoreShareRequestMessage struct {
	Share              []byte  `json:"share"`
	ShareAlgorithm     int32   `json:"share_algorithm"`
	Version            int32   `json:"version"`
	KeepList           []int32 `json:"keep_list,omitempty"`
	VersionDescription string  `json:"version_description,omitempty"`
}

// GetShareRequestMessage asks a helper to return a previously stored
// share.
type GetShareRequestMessage struct {
	SecretID     []byte `json:"secret_id"`
	ShareVersion int32  `json:"share_version"`
}

// GetShareResponseMessage is the helper's reply to a
// GetShareRequestMessage.
type GetShareResponseMessage struct {
	ShareAlgorithm      int32  `json:"share_algorithm"`
	CommittedDeRecShare []byte `json:"committed_de_rec_share"`
	Result              Result `json:"result"`
}

// VerifyShareRequestMessage challenges a helper to prove possession of
// the share it stored for version.
type VerifyShareRequestMessage struct {
	Version int32  `json:"version"`
	Nonce   []byte `json:"nonce"`
}

// VerifyShareResponseMessage is the helper's possession proof.
type VerifyShareResponseMessage struct {
	Result  Result `json:"result"`
	Version int32  `json:"version"`
	Nonce   []byte `json:"nonce"`
	Hash    []byte `json:"hash"`
}

// Encode serializes v with the integrator-facing codec.
func Encode(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, derecerr.New(derecerr.KindSerialization, op+".Encode", err)
	}
	return b, nil
}

// Decode deserializes b into v with the integrator-facing codec.
func Decode(b []byte, v any) error {
	if err := json.Unmarshal(b, v); err != nil {
		return derecerr.New(derecerr.KindSerialization, op+".Decode", err)
	}
	return nil
}
