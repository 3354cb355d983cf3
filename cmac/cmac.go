// Package cmac implements the CMAC message authentication code over a block
// cipher, per NIST SP 800-38B and RFC 4493.
package cmac

import (
	goCipher "crypto/cipher"
	"errors"
	"strconv"

	"github.com/aacfactory/ciphers/internal/subtle"
)

// ErrAuthentication is returned by Verify when the tag does not match. The
// comparison runs in constant time and the error does not reveal the
// position of the mismatch.
var ErrAuthentication = errors.New("cmac: authentication failed")

// BlockSizeError is returned when the underlying cipher's block size has no
// defined doubling constant.
type BlockSizeError int

func (e BlockSizeError) Error() string {
	return "cmac: unsupported block size " + strconv.Itoa(int(e))
}

// reduction constants for doubling in GF(2^64) and GF(2^128)
const (
	rb64  = 0x1b
	rb128 = 0x87
)

// CMAC is a streaming CMAC context. It follows the hash.Hash shape: Sum does
// not alter the state, Reset restores the keyed initial state. It is not safe
// for concurrent use.
type CMAC struct {
	b         goCipher.Block
	blockSize int
	k1, k2    []byte
	chain     []byte
	buf       []byte
	n         int
}

// New derives the CMAC subkeys from b and returns a ready context. The
// derivation encrypts the zero block once and doubles it twice in the
// cipher's field; it is cached for the lifetime of the context.
func New(b goCipher.Block) (*CMAC, error) {
	blockSize := b.BlockSize()
	var rb byte
	switch blockSize {
	case 8:
		rb = rb64
	case 16:
		rb = rb128
	default:
		return nil, BlockSizeError(blockSize)
	}
	c := &CMAC{
		b:         b,
		blockSize: blockSize,
		k1:        make([]byte, blockSize),
		k2:        make([]byte, blockSize),
		chain:     make([]byte, blockSize),
		buf:       make([]byte, blockSize),
	}
	l := make([]byte, blockSize)
	b.Encrypt(l, l)
	dbl(c.k1, l, rb)
	dbl(c.k2, c.k1, rb)
	subtle.Wipe(l)
	return c, nil
}

// dbl left shifts src one bit and conditionally folds in the reduction
// constant, without branching on the secret top bit.
func dbl(dst, src []byte, rb byte) {
	var carry byte
	for i := len(src) - 1; i >= 0; i-- {
		dst[i] = src[i]<<1 | carry
		carry = src[i] >> 7
	}
	dst[len(dst)-1] ^= rb & -carry
}

func (c *CMAC) BlockSize() int { return c.blockSize }

// Size returns the native tag length, one cipher block.
func (c *CMAC) Size() int { return c.blockSize }

// Write absorbs p. The final block of the message is always withheld in the
// buffer because its treatment depends on whether more data follows.
func (c *CMAC) Write(p []byte) (int, error) {
	written := len(p)
	if c.n > 0 && c.n < c.blockSize {
		t := copy(c.buf[c.n:], p)
		c.n += t
		p = p[t:]
	}
	if c.n == c.blockSize && len(p) > 0 {
		c.cycle(c.buf)
		c.n = 0
	}
	for len(p) > c.blockSize {
		c.cycle(p[:c.blockSize])
		p = p[c.blockSize:]
	}
	if len(p) > 0 {
		c.n = copy(c.buf, p)
	}
	return written, nil
}

func (c *CMAC) cycle(block []byte) {
	subtle.XORBytes(c.chain, c.chain, block)
	c.b.Encrypt(c.chain, c.chain)
}

// Sum appends the tag to in and returns the result. The context state is
// unchanged, so a caller can keep writing afterwards.
func (c *CMAC) Sum(in []byte) []byte {
	last := make([]byte, c.blockSize)
	if c.n == c.blockSize {
		subtle.XORBytes(last, c.buf, c.k1)
	} else {
		copy(last, c.buf[:c.n])
		last[c.n] = 0x80
		subtle.XORBytes(last, last, c.k2)
	}
	subtle.XORBytes(last, last, c.chain)
	tag := make([]byte, c.blockSize)
	c.b.Encrypt(tag, last)
	subtle.Wipe(last)
	return append(in, tag...)
}

// Reset restores the keyed initial state; the cached subkeys survive.
func (c *CMAC) Reset() {
	subtle.Wipe(c.chain)
	subtle.Wipe(c.buf)
	c.n = 0
}

// Close wipes the subkeys and chaining state. The context must not be used
// afterwards.
func (c *CMAC) Close() {
	subtle.Wipe(c.k1)
	subtle.Wipe(c.k2)
	subtle.Wipe(c.chain)
	subtle.Wipe(c.buf)
	c.n = 0
}

// Sum computes the CMAC tag of msg under b in one shot.
func Sum(b goCipher.Block, msg []byte) ([]byte, error) {
	c, err := New(b)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	c.Write(msg)
	return c.Sum(nil), nil
}

// SumTruncated computes the tag and truncates it to n bytes,
// 1 <= n <= block size.
func SumTruncated(b goCipher.Block, msg []byte, n int) ([]byte, error) {
	tag, err := Sum(b, msg)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(tag) {
		return nil, BlockSizeError(n)
	}
	return tag[:n], nil
}

// Verify recomputes the tag of msg under b and compares it with tag in
// constant time. A truncated tag is matched against the same-length prefix.
func Verify(b goCipher.Block, msg, tag []byte) error {
	if len(tag) == 0 {
		return ErrAuthentication
	}
	sum, err := Sum(b, msg)
	if err != nil {
		return err
	}
	if len(tag) > len(sum) {
		return ErrAuthentication
	}
	if subtle.ConstantTimeCompare(sum[:len(tag)], tag) != 1 {
		return ErrAuthentication
	}
	return nil
}
