// Centralizes Poseidon2 parameters for both native and circuit code.
package hasher

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/poseidon2"
)

const WIDTH = 2
const ROUND_FULL = 8
const ROUND_PARTIAL = 56
const SEED = "ZKIMG_POSEIDON2_STATEMENT_SEED"

// values entering a digest are split into NB_LIMBS little-endian limbs of
// LIMB_BITS bits, so every limb fits the BLS12-381 scalar field.
const LIMB_BITS = 64
const NB_LIMBS = 4

// GetPermutation returns a native Poseidon2 permutation using the parameters above.
var GetPermutation = sync.OnceValue(func() *poseidon2.Permutation {
	return poseidon2.NewPermutationWithSeed(WIDTH, ROUND_FULL, ROUND_PARTIAL, SEED)
})
