package schnorr

import (
	"fmt"
	"math/big"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/logger"
	"github.com/consensys/gnark/std/math/emulated"

	"github.com/eon-protocol/zkimg"
	"github.com/eon-protocol/zkimg/circuits/hasher"
)

// StatementDigest is the native counterpart of the circuit's Digest.
// msgHash must be below 2^256.
func StatementDigest(pk zkimg.PublicKey, msgHash *big.Int) fr.Element {
	var x, y big.Int
	p := pk.Point()
	p.X.BigInt(&x)
	p.Y.BigInt(&y)
	return hasher.LimbDigest(&x, &y, msgHash)
}

// Assign builds a full assignment for input, claiming the outcome valid.
// R, S and MsgHash must lie in [0, p) to be carried by base field limbs.
func Assign(input *zkimg.SignatureInput, valid bool) (*Circuit, error) {
	for _, v := range []struct {
		name string
		val  *big.Int
	}{{"r", input.R}, {"s", input.S}, {"msg hash", input.MsgHash}} {
		if !zkimg.IsInBaseFieldRange(v.val) {
			return nil, fmt.Errorf("%s: %w", v.name, ErrUnrepresentable)
		}
	}
	var x, y big.Int
	p := input.PK.Point()
	p.X.BigInt(&x)
	p.Y.BigInt(&y)

	digest := StatementDigest(input.PK, input.MsgHash)
	assignment := &Circuit{
		PK: PublicKey{
			X: emulated.ValueOf[Fp](&x),
			Y: emulated.ValueOf[Fp](&y),
		},
		R:       emulated.ValueOf[Fp](input.R),
		S:       emulated.ValueOf[Fp](input.S),
		MsgHash: emulated.ValueOf[Fp](input.MsgHash),
		Digest:  digest.String(),
		Valid:   0,
	}
	if valid {
		assignment.Valid = 1
	}
	return assignment, nil
}

// Compile compiles the circuit for the BLS12-381 scalar field with the PLONK
// builder.
func Compile() (constraint.ConstraintSystem, error) {
	start := time.Now()
	ccs, err := frontend.Compile(FIELD, scs.NewBuilder, &Circuit{})
	if err != nil {
		return nil, err
	}
	log := logger.Logger().With().Str("circuit", "schnorr").Logger()
	log.Debug().
		Int("nbConstraints", ccs.GetNbConstraints()).
		Int("nbPublic", ccs.GetNbPublicVariables()).
		Dur("took", time.Since(start)).
		Msg("circuit compiled")
	return ccs, nil
}

// Solve checks that assignment satisfies the compiled ccs.
func Solve(ccs constraint.ConstraintSystem, assignment *Circuit) error {
	witness, err := frontend.NewWitness(assignment, FIELD)
	if err != nil {
		return err
	}
	return ccs.IsSolved(witness)
}
