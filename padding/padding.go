// Package padding implements the padding schemes used by the block cipher
// modes of operation.
package padding

import (
	"errors"

	"github.com/aacfactory/ciphers/internal/subtle"
)

// ErrInvalid is returned when the trailing bytes of a decrypted message do
// not form a well formed padding. The message is intentionally uniform so
// that callers cannot distinguish which byte failed.
var ErrInvalid = errors.New("padding: invalid padding")

// Scheme pads a byte sequence up to a block boundary and validates and strips
// the padding again after decryption. Implementations must not retain src.
// New schemes plug into the mode engine without changing its contract.
type Scheme interface {
	Name() string
	// Pad returns src extended to a multiple of blockSize. A src that is
	// already block aligned still gains a full padding block.
	Pad(src []byte, blockSize int) []byte
	// Unpad validates the padding of src, which must be block aligned, and
	// returns src without it. It fails with ErrInvalid on malformed input.
	Unpad(src []byte, blockSize int) ([]byte, error)
}

var (
	// PKCS7 appends n bytes of value n, per RFC 5652.
	PKCS7 Scheme = pkcs7{}
	// Bit appends a single 0x80 byte and then zero bytes, per ISO/IEC 7816-4.
	Bit Scheme = bit{}
	// None passes data through unchanged. The mode engine requires block
	// aligned input when it is selected for a block mode.
	None Scheme = none{}
)

type pkcs7 struct{}

func (pkcs7) Name() string { return "pkcs7" }

func (pkcs7) Pad(src []byte, blockSize int) []byte {
	n := blockSize - len(src)%blockSize
	dst := make([]byte, len(src)+n)
	copy(dst, src)
	for i := len(src); i < len(dst); i++ {
		dst[i] = byte(n)
	}
	return dst
}

// Unpad scans the entire final block without short circuiting on the first
// mismatching byte, so that validation time does not depend on where a
// corruption sits.
func (pkcs7) Unpad(src []byte, blockSize int) ([]byte, error) {
	if len(src) == 0 || len(src)%blockSize != 0 {
		return nil, ErrInvalid
	}
	last := src[len(src)-1]
	n := int(last)
	good := subtle.ConstantTimeLessOrEq(1, n) & subtle.ConstantTimeLessOrEq(n, blockSize)
	block := src[len(src)-blockSize:]
	for i := 0; i < blockSize; i++ {
		// the byte at offset i participates when it lies inside the padding
		inPad := subtle.ConstantTimeLessOrEq(blockSize-n, i)
		eq := subtle.ConstantTimeByteEq(block[i], last)
		good &= subtle.ConstantTimeSelect(inPad, eq, 1)
	}
	if good != 1 {
		return nil, ErrInvalid
	}
	return src[:len(src)-n], nil
}

type bit struct{}

func (bit) Name() string { return "bit" }

func (bit) Pad(src []byte, blockSize int) []byte {
	n := blockSize - len(src)%blockSize
	dst := make([]byte, len(src)+n)
	copy(dst, src)
	dst[len(src)] = 0x80
	return dst
}

// Unpad scans the whole final block for the 0x80 marker, accumulating the
// verdict instead of returning at the first suspicious byte.
func (bit) Unpad(src []byte, blockSize int) ([]byte, error) {
	if len(src) == 0 || len(src)%blockSize != 0 {
		return nil, ErrInvalid
	}
	block := src[len(src)-blockSize:]
	marker := -1
	bad := 0
	for i := blockSize - 1; i >= 0; i-- {
		isMarker := subtle.ConstantTimeByteEq(block[i], 0x80)
		isZero := subtle.ConstantTimeByteEq(block[i], 0)
		if marker < 0 {
			bad |= ^(isMarker | isZero) & 1
			if isMarker == 1 {
				marker = i
			}
		}
	}
	if marker < 0 || bad == 1 {
		return nil, ErrInvalid
	}
	return src[:len(src)-blockSize+marker], nil
}

type none struct{}

func (none) Name() string { return "none" }

func (none) Pad(src []byte, blockSize int) []byte { return src }

func (none) Unpad(src []byte, blockSize int) ([]byte, error) { return src, nil }
