package zkimg

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyBatch(t *testing.T) {
	sampler := seededSampler(50)
	inputs := make([]*SignatureInput, 12)
	want := make([]bool, len(inputs))
	for i := range inputs {
		in, err := sampler.Sample()
		require.NoError(t, err)
		if i%3 == 1 {
			s := new(big.Int).Add(in.S, big.NewInt(1))
			in.S = s.Mod(s, N)
		} else {
			want[i] = true
		}
		inputs[i] = in
	}
	inputs[5] = nil
	want[5] = false

	for _, limit := range []int{0, 1, 4} {
		got, err := VerifyBatch(context.Background(), inputs, limit)
		require.NoError(t, err)
		require.Equal(t, want, got, "limit %d", limit)
	}
}

func TestVerifyBatch_Empty(t *testing.T) {
	got, err := VerifyBatch(context.Background(), nil, 2)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestVerifyBatch_Cancelled(t *testing.T) {
	in, err := seededSampler(51).Sample()
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = VerifyBatch(ctx, []*SignatureInput{in, in}, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestVerifyBatch_Sampled(t *testing.T) {
	sampler := seededSampler(52)
	inputs := make([]*SignatureInput, 32)
	for i := range inputs {
		in, err := sampler.Sample()
		require.NoError(t, err)
		inputs[i] = in
	}
	got, err := VerifyBatch(context.Background(), inputs, 8)
	require.NoError(t, err)
	for i, ok := range got {
		require.True(t, ok, "vector %d", i)
	}
}
