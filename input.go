package zkimg

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/secp256k1"
)

var ErrValueOutOfRange = errors.New("value does not fit in 32 unsigned bytes")

// SignatureInput bundles the four verifier inputs. It is built once, by a
// caller or a Sampler, and not modified afterwards.
type SignatureInput struct {
	R       *big.Int
	S       *big.Int
	MsgHash *big.Int
	PK      PublicKey
}

func (me *SignatureInput) Verify() bool {
	return Verify(me.PK, me.R, me.S, me.MsgHash)
}

// WriteTo encodes R, S and MsgHash as 32-byte big-endian integers followed by
// the key coordinates X and Y.
func (me *SignatureInput) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, 0, INPUT_BYTES)
	for _, v := range []*big.Int{me.R, me.S, me.MsgHash} {
		if v == nil || v.Sign() < 0 || v.BitLen() > 8*SCALAR_BYTES {
			return 0, ErrValueOutOfRange
		}
		var b [SCALAR_BYTES]byte
		v.FillBytes(b[:])
		buf = append(buf, b[:]...)
	}
	x, y := me.PK.point.X.Bytes(), me.PK.point.Y.Bytes()
	buf = append(buf, x[:]...)
	buf = append(buf, y[:]...)
	n, err := w.Write(buf)
	return int64(n), err
}

// ReadFrom decodes an input written by WriteTo. The key is validated with
// NewPublicKey.
func (me *SignatureInput) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, INPUT_BYTES)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return int64(n), err
	}
	me.R = new(big.Int).SetBytes(buf[:SCALAR_BYTES])
	me.S = new(big.Int).SetBytes(buf[SCALAR_BYTES : 2*SCALAR_BYTES])
	me.MsgHash = new(big.Int).SetBytes(buf[2*SCALAR_BYTES : 3*SCALAR_BYTES])

	var p secp256k1.G1Affine
	if err := p.X.SetBytesCanonical(buf[3*SCALAR_BYTES : 4*SCALAR_BYTES]); err != nil {
		return int64(n), fmt.Errorf("decode public key x: %w", err)
	}
	if err := p.Y.SetBytesCanonical(buf[4*SCALAR_BYTES:]); err != nil {
		return int64(n), fmt.Errorf("decode public key y: %w", err)
	}
	if me.PK, err = NewPublicKey(p); err != nil {
		return int64(n), err
	}
	return int64(n), nil
}
