// native (off-circuit) Poseidon hasher functions
package hasher

import (
	"log"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Compress runs the native Poseidon2 permutation on (x,y) and returns
// perm([x,y])[1] + y, matching the circuit's Compress semantics (t=2).
func Compress(x, y fr.Element) fr.Element {
	vars := [WIDTH]fr.Element{x, y}
	if err := GetPermutation().Permutation(vars[:]); err != nil {
		log.Fatalln(err)
	}
	var ret fr.Element
	ret.Add(&vars[1], &y)
	return ret
}

// Sum folds a sequence using Compress(acc, v) starting from zero.
func Sum(val ...fr.Element) fr.Element {
	var ret fr.Element
	for _, v := range val {
		ret = Compress(ret, v)
	}
	return ret
}

// Limbs splits a non-negative value below 2^256 into little-endian limbs.
// Higher bits are ignored.
func Limbs(v *big.Int) [NB_LIMBS]fr.Element {
	var ret [NB_LIMBS]fr.Element
	mask := new(big.Int).Lsh(big.NewInt(1), LIMB_BITS)
	mask.Sub(mask, big.NewInt(1))
	rest := new(big.Int).Set(v)
	for i := range ret {
		var limb big.Int
		limb.And(rest, mask)
		ret[i].SetBigInt(&limb)
		rest.Rsh(rest, LIMB_BITS)
	}
	return ret
}

// LimbDigest folds the limbs of every value with Sum, in order.
func LimbDigest(values ...*big.Int) fr.Element {
	limbs := make([]fr.Element, 0, NB_LIMBS*len(values))
	for _, v := range values {
		l := Limbs(v)
		limbs = append(limbs, l[:]...)
	}
	return Sum(limbs...)
}
