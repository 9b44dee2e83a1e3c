package schnorr

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
)

// bitsLessThan returns 1 iff the LSB-first bits encode an integer below c.
// The bits must already be constrained to be boolean.
func bitsLessThan(api frontend.API, xBitsLE []frontend.Variable, c *big.Int) frontend.Variable {
	n := max(len(xBitsLE), c.BitLen())
	// eq: the bits above i equal those of c; lt: some higher bit already decided x < c
	eq := frontend.Variable(1)
	lt := frontend.Variable(0)
	for i := n - 1; i >= 0; i-- {
		xi := bitAt(xBitsLE, i)
		if c.Bit(i) == 1 {
			lt = api.Add(lt, api.Mul(eq, api.Sub(1, xi)))
			eq = api.Mul(eq, xi)
		} else {
			eq = api.Mul(eq, api.Sub(1, xi))
		}
	}
	return lt
}

// bitsEqual returns 1 iff both LSB-first bit strings encode the same integer.
func bitsEqual(api frontend.API, a, b []frontend.Variable) frontend.Variable {
	var diff frontend.Variable = 0
	for i := 0; i < max(len(a), len(b)); i++ {
		ai, bi := bitAt(a, i), bitAt(b, i)
		// XOR = ai + bi - 2*ai*bi
		xor := api.Sub(api.Add(ai, bi), api.Mul(2, ai, bi))
		diff = api.Add(diff, xor)
	}
	return api.IsZero(diff)
}

func bitsNonzero(api frontend.API, bitsLE []frontend.Variable) frontend.Variable {
	var sum frontend.Variable = 0
	for _, b := range bitsLE {
		sum = api.Add(sum, b)
	}
	return api.Sub(1, api.IsZero(sum))
}

// fixedBits pads with zeros or truncates to exactly n bits.
func fixedBits(bitsLE []frontend.Variable, n int) []frontend.Variable {
	ret := make([]frontend.Variable, n)
	for i := range ret {
		ret[i] = bitAt(bitsLE, i)
	}
	return ret
}

func bitAt(bitsLE []frontend.Variable, i int) frontend.Variable {
	if i < len(bitsLE) {
		return bitsLE[i]
	}
	return 0
}
