package zkimg

import (
	"github.com/consensys/gnark-crypto/ecc/secp256k1"
	"github.com/consensys/gnark-crypto/ecc/secp256k1/fp"
	"github.com/consensys/gnark-crypto/ecc/secp256k1/fr"
)

const SCALAR_BYTES = 32
const POINT_BYTES = 2 * SCALAR_BYTES
const INPUT_BYTES = 3*SCALAR_BYTES + POINT_BYTES

// DEFAULT_MAX_DRAWS bounds the reject-and-resample loops of a Sampler. Each
// nonce candidate is accepted with probability close to 1/2, so exhausting
// the cap happens with probability about 2^-256.
const DEFAULT_MAX_DRAWS = 256

const CHALLENGE_TAG = "BIP0340/challenge"

// P is the order of the secp256k1 base field.
var P = fp.Modulus()

// N is the order of the secp256k1 group (the scalar field).
var N = fr.Modulus()

// G is the secp256k1 generator in affine coordinates.
var G = func() secp256k1.G1Affine {
	_, g := secp256k1.Generators()
	return g
}()
