package vss

import "crypto/sha256"

// randomOracle is the SHA-256 counter-mode PRF used throughout this
// package: block_i = SHA256(msg || rand || tag || i), for i = 0..3,
// concatenated to 128 bytes. Callers truncate to whatever length they
// need; if more than 128 bytes are required the counter range extends
// beyond 4 (expand does this for payloads longer than 128 bytes).
func randomOracle(msg, rnd []byte, tag string, numBlocks int) []byte {
	out := make([]byte, 0, numBlocks*sha256.Size)
	for i := 0; i < numBlocks; i++ {
		h := sha256.New()
		h.Write(msg)
		h.Write(rnd)
		h.Write([]byte(tag))
		h.Write([]byte{byte(i)})
		out = h.Sum(out)
	}
	return out
}

// expand returns the first n bytes of randomOracle's output, extending
// the block count as needed.
func expand(msg, rnd []byte, tag string, n int) []byte {
	blocks := (n + sha256.Size - 1) / sha256.Size
	if blocks < 4 {
		blocks = 4
	}
	return randomOracle(msg, rnd, tag, blocks)[:n]
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
