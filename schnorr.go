// Package zkimg verifies Schnorr signatures over secp256k1 under the even-y
// nonce convention, without validating the public key, and generates
// signature instances for exercising the verifier and its circuit form.
package zkimg

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/secp256k1"
)

// Verify decides whether (r, s, msgHash) is a valid signature for pk:
//
//	r < p, 0 < s < n, 0 < msgHash < n,
//	R = s·G - msgHash·pk with (s·G).x != (msgHash·pk).x,
//	R.y even, R.x < n and R.x == r.
//
// Every condition is evaluated and the results are combined with AND. The key
// is trusted as given, see PublicKey.
func Verify(pk PublicKey, r, s, msgHash *big.Int) bool {
	v := newVerification(pk, r, s, msgHash)
	ok := true
	for _, p := range v.predicates() {
		ok = p.eval() && ok
	}
	return ok
}

type predicate struct {
	name string
	eval func() bool
}

// verification holds the points shared by the predicates of one Verify call.
type verification struct {
	r, s, e *big.Int

	sG, eP secp256k1.G1Affine
	R      secp256k1.G1Affine
	// distinct is the x_neq outcome; R is only computed when it holds.
	distinct bool
}

func newVerification(pk PublicKey, r, s, msgHash *big.Int) *verification {
	v := &verification{
		r: r,
		s: s,
		e: msgHash,
	}
	v.sG = FixedBaseMultiply(s)
	v.eP = VariableBaseMultiply(pk.point, msgHash)
	v.distinct = !XEqual(v.sG, v.eP)
	if v.distinct {
		v.R = SubtractAssumeUnequal(v.sG, v.eP)
	}
	return v
}

func (me *verification) predicates() []predicate {
	return []predicate{
		{"r_valid", me.rValid},
		{"s_valid", me.sValid},
		{"e_valid", me.eValid},
		{"x_neq", me.xNeq},
		{"y_even", me.yEven},
		{"x_match", me.xMatch},
	}
}

func (me *verification) rValid() bool {
	return IsInBaseFieldRange(me.r)
}

func (me *verification) sValid() bool {
	return IsSoftNonzero(me.s)
}

func (me *verification) eValid() bool {
	return IsSoftNonzero(me.e)
}

func (me *verification) xNeq() bool {
	return me.distinct
}

func (me *verification) yEven() bool {
	return me.distinct && IsEven(me.R.Y)
}

// xMatch enforces R.x < n before comparing with r.
func (me *verification) xMatch() bool {
	if !me.distinct || me.r == nil {
		return false
	}
	rx := canonical(me.R.X)
	return rx.Cmp(N) < 0 && rx.Cmp(me.r) == 0
}
