package zkimg

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/secp256k1"
	dcrsecp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

var (
	ErrPointAtInfinity        = errors.New("public key is the point at infinity")
	ErrPointNotOnCurve        = errors.New("public key is not on secp256k1")
	ErrInvalidPublicKeyLength = errors.New("public key must be 32, 33 or 65 bytes")
)

// PublicKey is a secp256k1 point that the verifier trusts without further
// checks. Keys built by NewPublicKey or ParsePublicKey are on the curve and
// not the identity; UncheckedPublicKey skips that validation.
type PublicKey struct {
	point secp256k1.G1Affine
}

// NewPublicKey validates p and wraps it.
func NewPublicKey(p secp256k1.G1Affine) (PublicKey, error) {
	if p.IsInfinity() {
		return PublicKey{}, ErrPointAtInfinity
	}
	if !p.IsOnCurve() {
		return PublicKey{}, ErrPointNotOnCurve
	}
	return PublicKey{point: p}, nil
}

// UncheckedPublicKey wraps p as is. Verification against an off-curve or
// identity key gives an unspecified result; the caller owns that contract.
func UncheckedPublicKey(p secp256k1.G1Affine) PublicKey {
	return PublicKey{point: p}
}

// ParsePublicKey decodes a 32-byte x-only key (even y), a 33-byte compressed
// or a 65-byte uncompressed SEC1 key.
func ParsePublicKey(b []byte) (PublicKey, error) {
	var serialized []byte
	switch len(b) {
	case SCALAR_BYTES:
		serialized = append([]byte{dcrsecp256k1.PubKeyFormatCompressedEven}, b...)
	case dcrsecp256k1.PubKeyBytesLenCompressed, dcrsecp256k1.PubKeyBytesLenUncompressed:
		serialized = b
	default:
		return PublicKey{}, fmt.Errorf("%w: got %d", ErrInvalidPublicKeyLength, len(b))
	}
	key, err := dcrsecp256k1.ParsePubKey(serialized)
	if err != nil {
		return PublicKey{}, fmt.Errorf("invalid secp256k1 public key: %w", err)
	}
	var p secp256k1.G1Affine
	p.X.SetBigInt(key.X())
	p.Y.SetBigInt(key.Y())
	return NewPublicKey(p)
}

// Point returns a copy of the underlying affine point.
func (me PublicKey) Point() secp256k1.G1Affine {
	return me.point
}

// XOnly returns the 32-byte big-endian x-coordinate.
func (me PublicKey) XOnly() [SCALAR_BYTES]byte {
	return me.point.X.Bytes()
}

// HasEvenY reports whether the key is the lift_x representative of its x-coordinate.
func (me PublicKey) HasEvenY() bool {
	return IsEven(me.point.Y)
}

func (me PublicKey) Equal(other PublicKey) bool {
	return PointsEqual(me.point, other.point)
}
