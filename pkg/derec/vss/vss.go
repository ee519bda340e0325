// Package vss implements the verifiable secret sharing envelope: Shamir
// sharing of a random 32-byte key, a random-oracle one-time pad over the
// actual payload, and a Merkle commitment over the per-share leaves so a
// dishonest helper's tampering is detectable before reconstruction.
package vss

import (
	"io"

	"github.com/rsinha/derec-go/pkg/derec/derecerr"
	"github.com/rsinha/derec-go/pkg/derec/shamir"
	"github.com/rsinha/derec-go/pkg/derec/shamirfield"
)

const op = "vss"

// randomnessSize is the byte length of r, the per-sharing randomness
// prefixed onto the envelope ciphertext.
const randomnessSize = 32

// Share is one helper's view of a VSS sharing: its Shamir evaluation
// point, the envelope ciphertext and commitment shared by every share in
// the sharing, and this share's Merkle path against that commitment.
type Share struct {
	X               *shamirfield.Element
	Y               *shamirfield.Element
	EncryptedSecret []byte
	Commitment      [hashSize]byte
	MerklePath      []SiblingHash
}

// Protect splits payload into n shares recoverable from any t of them.
// It draws an independent random 32-byte key s, Shamir-shares s, derives
// a one-time pad from s via the random oracle, and commits the (x, y)
// pairs under a fixed-depth Merkle tree. merkleDepthFloor raises the
// tree's depth beyond ceil(log2(n)) when a deployment wants to hide n
// more aggressively than the minimal tree would; pass 1 for the
// protocol minimum.
func Protect(payload []byte, t, n, merkleDepthFloor int, rng io.Reader) ([]Share, error) {
	var r [randomnessSize]byte
	if _, err := io.ReadFull(rng, r[:]); err != nil {
		return nil, derecerr.New(derecerr.KindSerialization, op+".Protect", err)
	}

	var s [32]byte
	if _, err := io.ReadFull(rng, s[:]); err != nil {
		return nil, derecerr.New(derecerr.KindSerialization, op+".Protect", err)
	}

	kappa := expand(s[:], r[:], "enc", len(payload))
	ciphertext := xorBytes(payload, kappa)
	encryptedSecret := append(append([]byte{}, r[:]...), ciphertext...)

	points, err := shamir.Share(s, t, n, rng)
	if err != nil {
		return nil, derecerr.New(derecerr.KindThresholdUnsatisfiable, op+".Protect", err)
	}

	leaves := make([][hashSize]byte, n)
	for i, p := range points {
		leaves[i] = leafHash(p.X.Bytes(), p.Y.Bytes())
	}

	depth := merkleDepth(n, merkleDepthFloor)
	root, paths, err := buildMerkleTree(leaves, depth, rng)
	if err != nil {
		return nil, derecerr.New(derecerr.KindCorruptShares, op+".Protect", err)
	}

	shares := make([]Share, n)
	for i, p := range points {
		shares[i] = Share{
			X:               p.X,
			Y:               p.Y,
			EncryptedSecret: encryptedSecret,
			Commitment:      root,
			MerklePath:      paths[i],
		}
	}
	return shares, nil
}

// Recover reconstructs the original payload from a multiset of shares.
// It runs DetectError before touching Shamir reconstruction, so a single
// tampered share is reported precisely rather than corrupting the
// result.
func Recover(shares []Share) ([]byte, error) {
	if err := DetectError(shares); err != nil {
		return nil, err
	}

	points := make([]shamir.Point, len(shares))
	for i, sh := range shares {
		points[i] = shamir.Point{X: sh.X, Y: sh.Y}
	}
	s, err := shamir.Recover(points)
	if err != nil {
		return nil, derecerr.New(derecerr.KindReconstruction, op+".Recover", err)
	}

	envelope := shares[0].EncryptedSecret
	if len(envelope) < randomnessSize {
		return nil, derecerr.Newf(derecerr.KindCorruptShares, op+".Recover", "encrypted_secret shorter than randomness prefix")
	}
	r := envelope[:randomnessSize]
	ciphertext := envelope[randomnessSize:]

	kappa := expand(s[:], r, "enc", len(ciphertext))
	payload := xorBytes(ciphertext, kappa)
	return payload, nil
}

// DetectError runs the three-way share-set consistency check in the
// order the protocol requires: commitments first, then ciphertexts,
// then per-share Merkle paths. It reports the first disagreement found,
// so a dishonest helper can at most cause recovery to refuse rather
// than silently poison it.
func DetectError(shares []Share) error {
	if len(shares) == 0 {
		return derecerr.Newf(derecerr.KindReconstruction, op+".DetectError", "no shares supplied")
	}

	commitment := shares[0].Commitment
	for _, sh := range shares[1:] {
		if sh.Commitment != commitment {
			return derecerr.Newf(derecerr.KindInconsistentCommitments, op+".DetectError", "shares disagree on commitment")
		}
	}

	ciphertext := shares[0].EncryptedSecret
	for _, sh := range shares[1:] {
		if !bytesEqual(sh.EncryptedSecret, ciphertext) {
			return derecerr.Newf(derecerr.KindInconsistentCiphertexts, op+".DetectError", "shares disagree on encrypted_secret")
		}
	}

	for _, sh := range shares {
		leaf := leafHash(sh.X.Bytes(), sh.Y.Bytes())
		if !verifyMerklePath(leaf, sh.MerklePath, sh.Commitment) {
			return derecerr.Newf(derecerr.KindCorruptShares, op+".DetectError", "merkle path does not verify")
		}
	}
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
