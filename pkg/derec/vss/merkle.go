package vss

import (
	"crypto/sha256"
	"io"
	"math/bits"

	"github.com/rsinha/derec-go/pkg/derec/derecerr"
)

const hashSize = sha256.Size

// SiblingHash is one step of a Merkle path: the sibling's hash and
// whether that sibling sits to the left of the path so far.
type SiblingHash struct {
	IsLeft bool
	Hash   [hashSize]byte
}

// merkleDepth returns ceil(log2(n)), raised to floor if that is higher,
// so a tree always has at least two leaf slots even for n=1 and an
// operator can force a deeper tree than n alone would require to
// further obscure n from a helper inspecting only its own path.
func merkleDepth(n, floor int) int {
	depth := 1
	if n > 1 {
		depth = bits.Len(uint(n - 1))
	}
	if floor > depth {
		return floor
	}
	return depth
}

func leafHash(x, y []byte) [hashSize]byte {
	h := sha256.New()
	h.Write(x)
	h.Write(y)
	var out [hashSize]byte
	copy(out[:], h.Sum(nil))
	return out
}

func intermediateHash(left, right [hashSize]byte) [hashSize]byte {
	h := sha256.New()
	h.Write(left[:])
	h.Write(right[:])
	var out [hashSize]byte
	copy(out[:], h.Sum(nil))
	return out
}

// buildMerkleTree builds a fixed-depth binary tree over leaves, padding
// any slots beyond len(leaves) up to 2^depth with fresh random values
// drawn from rng so a helper cannot infer the true share count n from
// its own path. It returns the root and, for each real leaf (index <
// len(leaves)), the ordered sibling path from leaf to root.
func buildMerkleTree(leaves [][hashSize]byte, depth int, rng io.Reader) (root [hashSize]byte, paths [][]SiblingHash, err error) {
	width := 1 << depth
	if len(leaves) > width {
		err = derecerr.Newf(derecerr.KindCorruptShares, "vss.buildMerkleTree", "%d leaves exceed tree width %d", len(leaves), width)
		return
	}

	level := make([][hashSize]byte, width)
	copy(level, leaves)
	for i := len(leaves); i < width; i++ {
		var padBuf [hashSize]byte
		if _, rErr := io.ReadFull(rng, padBuf[:]); rErr != nil {
			err = derecerr.New(derecerr.KindSerialization, "vss.buildMerkleTree", rErr)
			return
		}
		level[i] = padBuf
	}

	// levels[0] is the leaf level, levels[depth] is the single root.
	levels := make([][][hashSize]byte, depth+1)
	levels[0] = level
	for d := 0; d < depth; d++ {
		cur := levels[d]
		next := make([][hashSize]byte, len(cur)/2)
		for i := 0; i < len(next); i++ {
			next[i] = intermediateHash(cur[2*i], cur[2*i+1])
		}
		levels[d+1] = next
	}
	root = levels[depth][0]

	paths = make([][]SiblingHash, len(leaves))
	for leafIdx := range leaves {
		path := make([]SiblingHash, depth)
		idx := leafIdx
		for d := 0; d < depth; d++ {
			siblingIdx := idx ^ 1
			isLeft := siblingIdx < idx // sibling is the left node relative to idx
			path[d] = SiblingHash{IsLeft: isLeft, Hash: levels[d][siblingIdx]}
			idx /= 2
		}
		paths[leafIdx] = path
	}
	return
}

// verifyMerklePath recomputes the root from leaf using path and reports
// whether it matches root.
func verifyMerklePath(leaf [hashSize]byte, path []SiblingHash, root [hashSize]byte) bool {
	cur := leaf
	for _, step := range path {
		if step.IsLeft {
			cur = intermediateHash(step.Hash, cur)
		} else {
			cur = intermediateHash(cur, step.Hash)
		}
	}
	return cur == root
}
