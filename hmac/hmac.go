// Package hmac implements the keyed hash message authentication code per
// FIPS 198-1, over any hash capability exposing the hash.Hash interface.
package hmac

import (
	"errors"
	"hash"

	"github.com/aacfactory/ciphers/internal/subtle"
)

// ErrAuthentication is returned by Verify when the tag does not match. The
// comparison runs in constant time.
var ErrAuthentication = errors.New("hmac: authentication failed")

const (
	ipad = 0x36
	opad = 0x5c
)

// HMAC is a streaming HMAC context following the hash.Hash shape. It is not
// safe for concurrent use.
type HMAC struct {
	inner, outer hash.Hash
	ipad, opad   []byte
	size         int
	blockSize    int
}

// New returns a context keyed with key over the hash built by h. A key
// longer than the hash block size is hashed down first; a shorter one is
// zero padded. The normalized key is cached XORed with the two pad
// constants.
func New(h func() hash.Hash, key []byte) *HMAC {
	m := &HMAC{
		inner: h(),
		outer: h(),
	}
	m.size = m.inner.Size()
	m.blockSize = m.inner.BlockSize()
	m.ipad = make([]byte, m.blockSize)
	m.opad = make([]byte, m.blockSize)
	if len(key) > m.blockSize {
		m.outer.Write(key)
		key = m.outer.Sum(nil)
		m.outer.Reset()
	}
	copy(m.ipad, key)
	copy(m.opad, key)
	for i := range m.ipad {
		m.ipad[i] ^= ipad
	}
	for i := range m.opad {
		m.opad[i] ^= opad
	}
	m.inner.Write(m.ipad)
	return m
}

func (m *HMAC) Size() int { return m.size }

func (m *HMAC) BlockSize() int { return m.blockSize }

func (m *HMAC) Write(p []byte) (int, error) {
	return m.inner.Write(p)
}

// Sum appends the tag to in. The inner state is unchanged, so writing may
// continue afterwards.
func (m *HMAC) Sum(in []byte) []byte {
	innerSum := m.inner.Sum(nil)
	m.outer.Reset()
	m.outer.Write(m.opad)
	m.outer.Write(innerSum)
	return m.outer.Sum(in)
}

// Reset restores the keyed initial state.
func (m *HMAC) Reset() {
	m.inner.Reset()
	m.inner.Write(m.ipad)
}

// Close wipes the cached key pads. The context must not be used afterwards.
func (m *HMAC) Close() {
	subtle.Wipe(m.ipad)
	subtle.Wipe(m.opad)
	m.inner.Reset()
	m.outer.Reset()
}

// Sum computes the HMAC tag of msg under key in one shot.
func Sum(h func() hash.Hash, key, msg []byte) []byte {
	m := New(h, key)
	defer m.Close()
	m.Write(msg)
	return m.Sum(nil)
}

// SumTruncated computes the tag truncated to n bytes, 1 <= n <= hash size.
func SumTruncated(h func() hash.Hash, key, msg []byte, n int) ([]byte, error) {
	tag := Sum(h, key, msg)
	if n < 1 || n > len(tag) {
		return nil, errors.New("hmac: invalid tag length")
	}
	return tag[:n], nil
}

// Verify recomputes the tag of msg under key and compares it with tag in
// constant time. A truncated tag is matched against the same-length prefix.
func Verify(h func() hash.Hash, key, msg, tag []byte) error {
	if len(tag) == 0 {
		return ErrAuthentication
	}
	sum := Sum(h, key, msg)
	if len(tag) > len(sum) {
		return ErrAuthentication
	}
	if subtle.ConstantTimeCompare(sum[:len(tag)], tag) != 1 {
		return ErrAuthentication
	}
	return nil
}
