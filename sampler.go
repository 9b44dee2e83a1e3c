package zkimg

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

var (
	ErrSamplingFailed = errors.New("sampling failed: draw cap exceeded")
	ErrInvalidScalar  = errors.New("scalar must satisfy 0 < x < n")
)

// Sampler produces signature instances that satisfy the verifier by
// construction.
//
// Nonces are drawn in a reject-and-resample loop until k·G has an even
// y-coordinate. Termination is probabilistic (about two draws on average);
// the loop is bounded by the draw cap so an exhausted or broken randomness
// source surfaces as ErrSamplingFailed rather than a hang.
//
// A Sampler is safe for concurrent use only if its randomness source is.
type Sampler struct {
	rand     io.Reader
	maxDraws int
}

type SamplerOption func(*Sampler)

// WithRandomness sets the randomness source. A seeded deterministic reader
// gives reproducible vectors.
func WithRandomness(r io.Reader) SamplerOption {
	return func(s *Sampler) {
		s.rand = r
	}
}

// WithMaxDraws caps every resampling loop at n draws; n <= 0 removes the cap.
func WithMaxDraws(n int) SamplerOption {
	return func(s *Sampler) {
		s.maxDraws = n
	}
}

func NewSampler(opts ...SamplerOption) *Sampler {
	s := &Sampler{
		rand:     rand.Reader,
		maxDraws: DEFAULT_MAX_DRAWS,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scalar draws a uniform scalar in [1, n).
func (me *Sampler) Scalar() (*big.Int, error) {
	return me.resample(func(*big.Int) bool { return true })
}

// Sample draws a secret key and a message hash, then signs.
func (me *Sampler) Sample() (*SignatureInput, error) {
	sk, err := me.Scalar()
	if err != nil {
		return nil, fmt.Errorf("draw secret key: %w", err)
	}
	e, err := me.Scalar()
	if err != nil {
		return nil, fmt.Errorf("draw msg hash: %w", err)
	}
	return me.SignHash(sk, e)
}

// SignHash signs a given message hash with sk: s = k + sk·msgHash mod n.
func (me *Sampler) SignHash(sk, msgHash *big.Int) (*SignatureInput, error) {
	if !IsSoftNonzero(msgHash) {
		return nil, fmt.Errorf("msg hash: %w", ErrInvalidScalar)
	}
	e := new(big.Int).Set(msgHash)
	return me.sign(sk, func(*big.Int, PublicKey) *big.Int { return e })
}

// SignMessage signs msg the BIP-340 way: the message hash is the tagged
// challenge of the nonce commitment, the key and msg.
func (me *Sampler) SignMessage(sk *big.Int, msg []byte) (*SignatureInput, error) {
	return me.sign(sk, func(r *big.Int, pk PublicKey) *big.Int {
		return Challenge(r, pk, msg)
	})
}

func (me *Sampler) sign(sk *big.Int, challenge func(r *big.Int, pk PublicKey) *big.Int) (*SignatureInput, error) {
	if !IsSoftNonzero(sk) {
		return nil, fmt.Errorf("secret key: %w", ErrInvalidScalar)
	}
	pk := PublicKey{point: FixedBaseMultiply(sk)}

	var in *SignatureInput
	_, err := me.resample(func(k *big.Int) bool {
		R := FixedBaseMultiply(k)
		if !IsEven(R.Y) {
			return false
		}
		// the verifier compares R.x to r only below n
		r := canonical(R.X)
		if r.Cmp(N) >= 0 {
			return false
		}
		e := challenge(r, pk)
		if !IsSoftNonzero(e) {
			return false
		}
		s := new(big.Int).Mul(sk, e)
		s.Add(s, k).Mod(s, N)
		if s.Sign() == 0 {
			return false
		}
		if XEqual(FixedBaseMultiply(s), VariableBaseMultiply(pk.point, e)) {
			return false
		}
		in = &SignatureInput{R: r, S: s, MsgHash: e, PK: pk}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("draw nonce: %w", err)
	}
	return in, nil
}

// resample draws candidates in [1, n) until accept holds. Out-of-range draws
// count towards the cap.
func (me *Sampler) resample(accept func(k *big.Int) bool) (*big.Int, error) {
	var b [SCALAR_BYTES]byte
	for i := 0; me.maxDraws <= 0 || i < me.maxDraws; i++ {
		if _, err := io.ReadFull(me.rand, b[:]); err != nil {
			return nil, fmt.Errorf("read randomness: %w", err)
		}
		k := new(big.Int).SetBytes(b[:])
		if IsSoftNonzero(k) && accept(k) {
			return k, nil
		}
	}
	return nil, ErrSamplingFailed
}
