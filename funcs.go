package zkimg

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/secp256k1"
	"github.com/consensys/gnark-crypto/ecc/secp256k1/fp"
)

// IsInBaseFieldRange reports whether 0 <= x < p.
func IsInBaseFieldRange(x *big.Int) bool {
	return x != nil && x.Sign() >= 0 && x.Cmp(P) < 0
}

// IsSoftNonzero reports whether 0 < x < n. It only rejects the zero and
// overflow encodings; it says nothing about malleability.
func IsSoftNonzero(x *big.Int) bool {
	return x != nil && x.Sign() > 0 && x.Cmp(N) < 0
}

// IsEven tests the parity of the canonical representative of x.
func IsEven(x fp.Element) bool {
	return x.Bits()[0]&1 == 0
}

// FixedBaseMultiply returns s·G. The scalar is reduced modulo n and a nil
// scalar is treated as zero, which yields the point at infinity.
func FixedBaseMultiply(s *big.Int) secp256k1.G1Affine {
	return VariableBaseMultiply(G, s)
}

// VariableBaseMultiply returns s·p with the same scalar conventions as
// FixedBaseMultiply.
func VariableBaseMultiply(p secp256k1.G1Affine, s *big.Int) secp256k1.G1Affine {
	var res secp256k1.G1Affine
	res.ScalarMultiplication(&p, reduceScalar(s))
	return res
}

// PointsEqual compares affine coordinates. The point at infinity is only
// equal to itself.
func PointsEqual(a, b secp256k1.G1Affine) bool {
	if a.IsInfinity() || b.IsInfinity() {
		return a.IsInfinity() && b.IsInfinity()
	}
	return a.X.Equal(&b.X) && a.Y.Equal(&b.Y)
}

// XEqual compares the x-coordinates of a and b only.
func XEqual(a, b secp256k1.G1Affine) bool {
	return a.X.Equal(&b.X)
}

// SubtractAssumeUnequal returns a - b with the affine chord rule.
//
// The caller must make sure a.x != b.x whenever both operands are finite; the
// chord through two points sharing an x-coordinate is undefined and the call
// panics instead of returning a wrong point.
func SubtractAssumeUnequal(a, b secp256k1.G1Affine) secp256k1.G1Affine {
	var res secp256k1.G1Affine
	switch {
	case b.IsInfinity():
		return a
	case a.IsInfinity():
		res.Neg(&b)
		return res
	case XEqual(a, b):
		panic(fmt.Sprintf("zkimg: SubtractAssumeUnequal called on points sharing x = %s", a.X.String()))
	}

	// a - b = a + (x2, -y2), so lambda = (y1 + y2) / (x1 - x2)
	var num, den, lambda, t fp.Element
	num.Add(&a.Y, &b.Y)
	den.Sub(&a.X, &b.X)
	den.Inverse(&den)
	lambda.Mul(&num, &den)

	res.X.Square(&lambda)
	res.X.Sub(&res.X, &a.X)
	res.X.Sub(&res.X, &b.X)

	t.Sub(&a.X, &res.X)
	res.Y.Mul(&lambda, &t)
	res.Y.Sub(&res.Y, &a.Y)
	return res
}

func reduceScalar(s *big.Int) *big.Int {
	if s == nil {
		return new(big.Int)
	}
	return new(big.Int).Mod(s, N)
}

// canonical returns the integer value of a base field element.
func canonical(x fp.Element) *big.Int {
	var b big.Int
	x.BigInt(&b)
	return &b
}
