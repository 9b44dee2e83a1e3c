package schnorr

import (
	"encoding/hex"
	"math/big"
	mrand "math/rand/v2"
	"testing"

	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"

	"github.com/eon-protocol/zkimg"
)

func seededSampler(seed byte) *zkimg.Sampler {
	var key [32]byte
	key[0] = seed
	return zkimg.NewSampler(zkimg.WithRandomness(mrand.NewChaCha8(key)))
}

func isSolved(t *testing.T, input *zkimg.SignatureInput, valid bool) error {
	t.Helper()
	assignment, err := Assign(input, valid)
	require.NoError(t, err)
	return test.IsSolved(&Circuit{}, assignment, FIELD)
}

func TestCircuit_Valid(t *testing.T) {
	in, err := seededSampler(1).Sample()
	require.NoError(t, err)
	require.True(t, in.Verify())

	require.NoError(t, isSolved(t, in, true))
	require.Error(t, isSolved(t, in, false))
}

func TestCircuit_BIP340Vector0(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping emulated arithmetic test in short mode")
	}
	pkBytes, _ := hex.DecodeString("F9308A019258C31049344F85F89D5229B531C845836F99B08601F113BCE036F9")
	pk, err := zkimg.ParsePublicKey(pkBytes)
	require.NoError(t, err)
	r, _ := new(big.Int).SetString("E907831F80848D1069A5371B402410364BDF1C5F8307B0084C55F1CE2DCA8215", 16)
	s, _ := new(big.Int).SetString("25F66A4A85EA8B71E482A74F382D2CE5EBEEE8FDB2172F477DF4900D310536C0", 16)
	in := &zkimg.SignatureInput{R: r, S: s, MsgHash: zkimg.Challenge(r, pk, make([]byte, 32)), PK: pk}
	require.True(t, in.Verify())

	require.NoError(t, isSolved(t, in, true))
}

func TestCircuit_PerturbedS(t *testing.T) {
	in, err := seededSampler(2).Sample()
	require.NoError(t, err)
	s := new(big.Int).Add(in.S, big.NewInt(1))
	in.S = s.Mod(s, zkimg.N)
	require.False(t, in.Verify())

	require.NoError(t, isSolved(t, in, false))
	require.Error(t, isSolved(t, in, true))
}

func TestCircuit_OutOfRange(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping emulated arithmetic test in short mode")
	}
	in, err := seededSampler(3).Sample()
	require.NoError(t, err)

	for _, tc := range []struct {
		name   string
		mutate func(in *zkimg.SignatureInput)
	}{
		{"s = n", func(in *zkimg.SignatureInput) { in.S = zkimg.N }},
		{"s = p - 1", func(in *zkimg.SignatureInput) { in.S = new(big.Int).Sub(zkimg.P, big.NewInt(1)) }},
		{"e = 0", func(in *zkimg.SignatureInput) { in.MsgHash = big.NewInt(0) }},
		{"r = p - 1", func(in *zkimg.SignatureInput) { in.R = new(big.Int).Sub(zkimg.P, big.NewInt(1)) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			bad := *in
			tc.mutate(&bad)
			require.False(t, bad.Verify())
			require.NoError(t, isSolved(t, &bad, false))
			require.Error(t, isSolved(t, &bad, true))
		})
	}
}

func TestCircuit_EqualX(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping emulated arithmetic test in short mode")
	}
	pk, err := zkimg.NewPublicKey(zkimg.G)
	require.NoError(t, err)
	e := big.NewInt(12345)
	in := &zkimg.SignatureInput{R: big.NewInt(7), S: e, MsgHash: e, PK: pk}
	require.False(t, in.Verify())

	// s·G - e·pk is the point at infinity
	require.NoError(t, isSolved(t, in, false))

	in.S = new(big.Int).Sub(zkimg.N, e)
	require.NoError(t, isSolved(t, in, false))
}

func TestCircuit_Digest(t *testing.T) {
	in, err := seededSampler(4).Sample()
	require.NoError(t, err)
	assignment, err := Assign(in, true)
	require.NoError(t, err)

	other := StatementDigest(in.PK, new(big.Int).Add(in.MsgHash, big.NewInt(1)))
	assignment.Digest = other.String()
	require.Error(t, test.IsSolved(&Circuit{}, assignment, FIELD))
}

func TestAssign_Unrepresentable(t *testing.T) {
	in, err := seededSampler(5).Sample()
	require.NoError(t, err)

	for _, mutate := range []func(in *zkimg.SignatureInput){
		func(in *zkimg.SignatureInput) { in.R = zkimg.P },
		func(in *zkimg.SignatureInput) { in.S = nil },
		func(in *zkimg.SignatureInput) { in.MsgHash = big.NewInt(-1) },
	} {
		bad := *in
		mutate(&bad)
		_, err := Assign(&bad, false)
		require.ErrorIs(t, err, ErrUnrepresentable)
	}
}

func TestStatementDigest(t *testing.T) {
	in, err := seededSampler(6).Sample()
	require.NoError(t, err)
	a := StatementDigest(in.PK, in.MsgHash)
	b := StatementDigest(in.PK, in.MsgHash)
	require.Equal(t, a, b)

	other, err := seededSampler(7).Sample()
	require.NoError(t, err)
	require.NotEqual(t, a, StatementDigest(other.PK, in.MsgHash))
}

func TestCompile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping circuit compilation in short mode")
	}
	ccs, err := Compile()
	require.NoError(t, err)
	require.Positive(t, ccs.GetNbConstraints())

	in, err := seededSampler(8).Sample()
	require.NoError(t, err)
	valid, err := Assign(in, true)
	require.NoError(t, err)
	require.NoError(t, Solve(ccs, valid))

	invalid, err := Assign(in, false)
	require.NoError(t, err)
	require.Error(t, Solve(ccs, invalid))
}
