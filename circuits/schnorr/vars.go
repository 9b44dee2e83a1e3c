package schnorr

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/std/algebra/emulated/sw_emulated"
	"github.com/consensys/gnark/std/math/emulated"
)

type Fp = emulated.Secp256k1Fp
type Fr = emulated.Secp256k1Fr

// Element carries a 256-bit verifier input in emulated base field limbs.
type Element = emulated.Element[Fp]
type PublicKey = sw_emulated.AffinePoint[Fp]

const NB_BITS = 256

var FIELD = ecc.BLS12_381.ScalarField()

var ErrUnrepresentable = errors.New("value is not a canonical secp256k1 base field element")
