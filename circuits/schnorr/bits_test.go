package schnorr

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"
)

var bound = big.NewInt(1000)

type bitsCircuit struct {
	X, Y    frontend.Variable
	LT      frontend.Variable `gnark:",public"`
	EQ      frontend.Variable `gnark:",public"`
	NonZero frontend.Variable `gnark:",public"`
}

func (c *bitsCircuit) Define(api frontend.API) error {
	x := api.ToBinary(c.X, 16)
	y := api.ToBinary(c.Y, 12)
	api.AssertIsEqual(c.LT, bitsLessThan(api, x, bound))
	api.AssertIsEqual(c.EQ, bitsEqual(api, x, y))
	api.AssertIsEqual(c.NonZero, bitsNonzero(api, x))
	return nil
}

func TestBitsGadgets(t *testing.T) {
	for _, tc := range []struct {
		x, y            uint64
		lt, eq, nonZero int
	}{
		{0, 0, 1, 1, 0},
		{5, 5, 1, 1, 1},
		{999, 999, 1, 1, 1},
		{1000, 1000, 0, 1, 1},
		{1001, 7, 0, 0, 1},
		{4096 + 5, 5, 0, 0, 1},
		{65535, 4095, 0, 0, 1},
	} {
		assignment := bitsCircuit{X: tc.x, Y: tc.y, LT: tc.lt, EQ: tc.eq, NonZero: tc.nonZero}
		require.NoError(t, test.IsSolved(&bitsCircuit{}, &assignment, FIELD), "x = %d, y = %d", tc.x, tc.y)

		assignment.LT = 1 - tc.lt
		require.Error(t, test.IsSolved(&bitsCircuit{}, &assignment, FIELD), "x = %d flipped lt", tc.x)
	}
}

func TestFixedBits(t *testing.T) {
	in := []frontend.Variable{1, 0, 1}
	require.Equal(t, []frontend.Variable{1, 0}, fixedBits(in, 2))
	require.Equal(t, []frontend.Variable{1, 0, 1, 0, 0}, fixedBits(in, 5))
}
