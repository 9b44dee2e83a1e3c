// Package hasher provides a Poseidon2-based hashing gadget for gnark circuits.
// Currently only supports BLS12-381 and width 2.

package hasher

import (
	"errors"
	"math/big"

	poseidonbls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381/fr/poseidon2"
	"github.com/consensys/gnark/frontend"
)

var (
	ErrInvalidSizebuffer = errors.New("the size of the input should match the size of the hash buffer")
)

// In-circuit Poseidon2 permutation implementation.
type Permutation struct {
	api    frontend.API
	params parameters
}

// parameters holds the Poseidon2 parameters needed by the circuit.
type parameters struct {
	degreeSBox      int
	nbFullRounds    int
	nbPartialRounds int
	// Round keys arranged as [round][lane].
	roundKeys [][]big.Int
}

// NewPermutation builds a Permutation from WIDTH/ROUND_* and SEED defined in
// vars.go.
func NewPermutation(api frontend.API) (*Permutation, error) {
	params := parameters{
		degreeSBox:      poseidonbls12381.DegreeSBox(),
		nbFullRounds:    ROUND_FULL,
		nbPartialRounds: ROUND_PARTIAL,
	}
	if params.degreeSBox < 2 {
		return nil, errors.New("poseidon2: unsupported sBox degree")
	}

	concreteParams := poseidonbls12381.NewParametersWithSeed(WIDTH, ROUND_FULL, ROUND_PARTIAL, SEED)

	// Copy round keys into big.Int constants for circuit use.
	params.roundKeys = make([][]big.Int, len(concreteParams.RoundKeys))
	for i := range params.roundKeys {
		params.roundKeys[i] = make([]big.Int, len(concreteParams.RoundKeys[i]))
		for j := range params.roundKeys[i] {
			concreteParams.RoundKeys[i][j].BigInt(&params.roundKeys[i][j])
		}
	}

	return &Permutation{api: api, params: params}, nil
}

// sBox raises input[index] to degreeSBox by square-and-multiply.
func (h *Permutation) sBox(index int, input []frontend.Variable) {
	base := input[index]
	d := h.params.degreeSBox
	var acc frontend.Variable = base
	for bit := bitLen(d) - 2; bit >= 0; bit-- {
		acc = h.api.Mul(acc, acc)
		if d>>bit&1 == 1 {
			acc = h.api.Mul(acc, base)
		}
	}
	input[index] = acc
}

func bitLen(d int) int {
	n := 0
	for ; d > 0; d >>= 1 {
		n++
	}
	return n
}

// external MDS for t=2: circ(2, 1)
func (h *Permutation) matMulExternalInPlace(input []frontend.Variable) {
	tmp := h.api.Add(input[0], input[1])
	input[0] = h.api.Add(tmp, input[0])
	input[1] = h.api.Add(tmp, input[1])
}

// internal MDS for t=2: [[2, 1], [1, 3]], aligned with gnark-crypto.
func (h *Permutation) matMulInternalInPlace(input []frontend.Variable) {
	sum := h.api.Add(input[0], input[1])
	input[0] = h.api.Add(input[0], sum)
	input[1] = h.api.Mul(2, input[1])
	input[1] = h.api.Add(input[1], sum)
}

func (h *Permutation) addRoundKeyInPlace(round int, input []frontend.Variable) {
	for i := 0; i < len(h.params.roundKeys[round]); i++ {
		input[i] = h.api.Add(input[i], h.params.roundKeys[round][i])
	}
}

// Permutation applies the Poseidon2 permutation in place.
func (h *Permutation) Permutation(input []frontend.Variable) error {
	if len(input) != WIDTH {
		return ErrInvalidSizebuffer
	}

	h.matMulExternalInPlace(input)

	rf := h.params.nbFullRounds / 2
	for i := 0; i < rf; i++ {
		h.addRoundKeyInPlace(i, input)
		for j := 0; j < WIDTH; j++ {
			h.sBox(j, input)
		}
		h.matMulExternalInPlace(input)
	}
	// partial rounds only touch lane 0
	for i := rf; i < rf+h.params.nbPartialRounds; i++ {
		h.addRoundKeyInPlace(i, input)
		h.sBox(0, input)
		h.matMulInternalInPlace(input)
	}
	for i := rf + h.params.nbPartialRounds; i < h.params.nbFullRounds+h.params.nbPartialRounds; i++ {
		h.addRoundKeyInPlace(i, input)
		for j := 0; j < WIDTH; j++ {
			h.sBox(j, input)
		}
		h.matMulExternalInPlace(input)
	}
	return nil
}

// Compress returns perm([left,right])[1] + right.
func (h *Permutation) Compress(left, right frontend.Variable) frontend.Variable {
	vars := [WIDTH]frontend.Variable{left, right}
	if err := h.Permutation(vars[:]); err != nil {
		panic(err)
	}
	return h.api.Add(vars[1], right)
}

// Sum folds values from zero using Compress.
func (h *Permutation) Sum(vals ...frontend.Variable) frontend.Variable {
	var acc frontend.Variable = 0
	for i := range vals {
		acc = h.Compress(acc, vals[i])
	}
	return acc
}

// LimbDigest matches the native LimbDigest. Every value is given by its
// LSB-first bits, which must already be constrained to be boolean; bits past
// NB_LIMBS*LIMB_BITS are ignored.
func (h *Permutation) LimbDigest(values ...[]frontend.Variable) frontend.Variable {
	limbs := make([]frontend.Variable, 0, NB_LIMBS*len(values))
	for _, bitsLE := range values {
		for i := 0; i < NB_LIMBS; i++ {
			chunk := make([]frontend.Variable, LIMB_BITS)
			for j := range chunk {
				if k := i*LIMB_BITS + j; k < len(bitsLE) {
					chunk[j] = bitsLE[k]
				} else {
					chunk[j] = 0
				}
			}
			limbs = append(limbs, h.api.FromBinary(chunk...))
		}
	}
	return h.Sum(limbs...)
}
