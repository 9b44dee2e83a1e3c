// Package schnorr expresses the no-pubkey-check Schnorr verifier as a gnark
// circuit over emulated secp256k1 arithmetic.
package schnorr

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/algopts"
	"github.com/consensys/gnark/std/algebra/emulated/sw_emulated"
	"github.com/consensys/gnark/std/math/emulated"

	"github.com/eon-protocol/zkimg"
	"github.com/eon-protocol/zkimg/circuits/hasher"
)

// Circuit binds a signature instance to its verification outcome. Digest
// commits to the key and the message hash so the instance can be identified
// from the public inputs alone.
//
// The in-circuit range predicates only see values that Assign accepts, that is
// inputs in [0, p); r, s or msgHash at or above p are rejected before a
// witness exists.
type Circuit struct {
	PK      PublicKey
	R       Element
	S       Element
	MsgHash Element

	Digest frontend.Variable `gnark:",public"`
	Valid  frontend.Variable `gnark:",public"`
}

func (c *Circuit) Define(api frontend.API) error {
	v, err := newVerifier(api)
	if err != nil {
		return err
	}
	h, err := hasher.NewPermutation(api)
	if err != nil {
		return fmt.Errorf("new poseidon2 perm: %w", err)
	}
	api.AssertIsEqual(c.Valid, v.verify(&c.PK, &c.R, &c.S, &c.MsgHash))
	api.AssertIsEqual(c.Digest, h.LimbDigest(
		v.base.ToBits(&c.PK.X),
		v.base.ToBits(&c.PK.Y),
		v.base.ToBits(&c.MsgHash),
	))
	return nil
}

// VerifyNoPubkeyCheck returns 1 when (r, s, msgHash) verifies under pk and 0
// otherwise. Every input is a 256-bit integer held in base field limbs; the
// key is used as given.
//
// Invalid inputs never make the circuit unsatisfiable: scalar multiplications
// use complete arithmetic and R is formed by unified addition, so a witness
// with (s·G).x == (msgHash·pk).x still solves, with output 0.
func VerifyNoPubkeyCheck(api frontend.API, pk *PublicKey, r, s, msgHash *Element) frontend.Variable {
	v, err := newVerifier(api)
	if err != nil {
		panic(err)
	}
	return v.verify(pk, r, s, msgHash)
}

type verifier struct {
	api    frontend.API
	base   *emulated.Field[Fp]
	scalar *emulated.Field[Fr]
	curve  *sw_emulated.Curve[Fp, Fr]
}

func newVerifier(api frontend.API) (*verifier, error) {
	base, err := emulated.NewField[Fp](api)
	if err != nil {
		return nil, fmt.Errorf("new base field: %w", err)
	}
	scalar, err := emulated.NewField[Fr](api)
	if err != nil {
		return nil, fmt.Errorf("new scalar field: %w", err)
	}
	curve, err := sw_emulated.New[Fp, Fr](api, sw_emulated.GetSecp256k1Params())
	if err != nil {
		return nil, fmt.Errorf("new curve: %w", err)
	}
	return &verifier{api: api, base: base, scalar: scalar, curve: curve}, nil
}

func (v *verifier) verify(pk *PublicKey, r, s, msgHash *Element) frontend.Variable {
	api := v.api
	rBits := v.base.ToBits(r)
	sBits := v.base.ToBits(s)
	eBits := v.base.ToBits(msgHash)

	rValid := bitsLessThan(api, rBits, zkimg.P)
	sValid := api.And(bitsNonzero(api, sBits), bitsLessThan(api, sBits, zkimg.N))
	eValid := api.And(bitsNonzero(api, eBits), bitsLessThan(api, eBits, zkimg.N))

	// scalars are re-read modulo n, the range predicates above decide validity
	sScalar := v.scalar.FromBits(fixedBits(sBits, NB_BITS)...)
	eScalar := v.scalar.FromBits(fixedBits(eBits, NB_BITS)...)
	sG := v.curve.ScalarMulBase(sScalar, algopts.WithCompleteArithmetic())
	eP := v.curve.ScalarMul(pk, eScalar, algopts.WithCompleteArithmetic())

	xNeq := api.Sub(1, v.base.IsZero(v.base.Sub(&sG.X, &eP.X)))
	R := v.curve.AddUnified(sG, v.curve.Neg(eP))

	ryBits := v.base.ToBits(v.base.ReduceStrict(&R.Y))
	yEven := api.And(xNeq, api.Sub(1, ryBits[0]))

	rxBits := v.base.ToBits(v.base.ReduceStrict(&R.X))
	xMatch := api.And(xNeq, api.And(
		bitsLessThan(api, rxBits, zkimg.N),
		bitsEqual(api, rxBits, rBits),
	))

	valid := rValid
	for _, p := range []frontend.Variable{sValid, eValid, xNeq, yEven, xMatch} {
		valid = api.And(valid, p)
	}
	return valid
}
