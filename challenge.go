package zkimg

import (
	"math/big"

	"github.com/minio/sha256-simd"
)

// TaggedHash computes SHA256(SHA256(tag) || SHA256(tag) || parts...).
func TaggedHash(tag string, parts ...[]byte) [sha256.Size]byte {
	prefix := sha256.Sum256([]byte(tag))
	h := sha256.New()
	h.Write(prefix[:])
	h.Write(prefix[:])
	for _, p := range parts {
		h.Write(p)
	}
	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// Challenge derives the BIP-340 challenge e = H_tag(bytes(r) || bytes(P.x) || msg) mod n.
// r must fit in 32 bytes.
func Challenge(r *big.Int, pk PublicKey, msg []byte) *big.Int {
	var rb [SCALAR_BYTES]byte
	r.FillBytes(rb[:])
	px := pk.XOnly()
	sum := TaggedHash(CHALLENGE_TAG, rb[:], px[:], msg)
	e := new(big.Int).SetBytes(sum[:])
	return e.Mod(e, N)
}
