package zuc

import (
	"encoding/binary"
	"errors"

	"github.com/aacfactory/ciphers/internal/subtle"
)

// TagSize is the ZUC MAC output length in bytes.
const TagSize = 4

// ErrAuthentication is returned by Verify when the tag does not match. The
// comparison runs in constant time.
var ErrAuthentication = errors.New("zuc: authentication failed")

// Mac is the ZUC integrity engine: a universal hash over the message bits
// driven by the keystream, producing a 32-bit tag. The message is implicitly
// padded with a single 1 bit (folded in at finalization) and zero bits to a
// word boundary. A context is terminal once the tag has been produced.
// Not safe for concurrent use.
type Mac struct {
	s        *state
	k0, k1   uint32
	t        uint32
	pos      uint64
	finished bool
}

// NewMac returns an integrity context under a 128-bit key and 128-bit iv.
// The first two keystream words are drawn eagerly so that Write is
// independent of chunking.
func NewMac(key, iv []byte) (*Mac, error) {
	s, err := newState(key, iv)
	if err != nil {
		return nil, err
	}
	m := &Mac{s: s}
	m.k0 = s.nextWord()
	m.k1 = s.nextWord()
	return m, nil
}

// NewEIA3 returns a context with the 128-EIA3 iv expansion of the LTE
// integrity profile: the direction bit is folded into bytes 8 and 14, a
// derivation distinct from the confidentiality variant. Only the low 5 bits
// of bearer are significant.
func NewEIA3(count uint32, bearer, direction uint8, ik []byte) (*Mac, error) {
	var iv [IVSize]byte
	binary.BigEndian.PutUint32(iv[0:4], count)
	iv[4] = bearer << 3
	iv[8] = iv[0] ^ (direction&1)<<7
	iv[9] = iv[1]
	copy(iv[10:14], iv[2:6])
	iv[14] = iv[6] ^ (direction&1)<<7
	iv[15] = iv[7]
	return NewMac(ik, iv[:])
}

// absorb folds one message bit into the accumulator and advances the
// keystream window.
func (m *Mac) absorb(bit byte) {
	rem := uint(m.pos & 31)
	if bit != 0 {
		if rem == 0 {
			m.t ^= m.k0
		} else {
			m.t ^= m.k0<<rem | m.k1>>(32-rem)
		}
	}
	m.pos++
	if rem == 31 {
		m.k0 = m.k1
		m.k1 = m.s.nextWord()
	}
}

// Write absorbs whole bytes of the message, most significant bit first.
func (m *Mac) Write(p []byte) (int, error) {
	if m.finished {
		return 0, ErrFinalized
	}
	for _, b := range p {
		for i := 7; i >= 0; i-- {
			m.absorb(b >> uint(i) & 1)
		}
	}
	return len(p), nil
}

// WriteBits absorbs the nbits most significant bits of b, 0 <= nbits <= 8,
// for messages whose length is not a whole number of octets.
func (m *Mac) WriteBits(b byte, nbits int) error {
	if m.finished {
		return ErrFinalized
	}
	for i := 0; i < nbits; i++ {
		m.absorb(b >> uint(7-i) & 1)
	}
	return nil
}

// Sum32 finalizes the context and returns the 32-bit tag: the keystream
// window at the message length (the appended 1 bit) and the final whole
// keystream word are folded in. The context is terminal afterwards.
func (m *Mac) Sum32() uint32 {
	if !m.finished {
		rem := uint(m.pos & 31)
		if rem == 0 {
			m.t ^= m.k0
			m.t ^= m.k1
		} else {
			m.t ^= m.k0<<rem | m.k1>>(32-rem)
			m.t ^= m.s.nextWord()
		}
		m.finished = true
	}
	return m.t
}

// Sum appends the big endian tag to in.
func (m *Mac) Sum(in []byte) []byte {
	var tag [TagSize]byte
	binary.BigEndian.PutUint32(tag[:], m.Sum32())
	return append(in, tag[:]...)
}

func (m *Mac) Size() int { return TagSize }

// Close wipes the generator state and the accumulator.
func (m *Mac) Close() {
	m.s.wipe()
	m.k0 = 0
	m.k1 = 0
	m.t = 0
	m.pos = 0
	m.finished = true
}

// Sum computes the 32-bit tag of msg under key and iv in one shot.
func Sum(key, iv, msg []byte) ([]byte, error) {
	m, err := NewMac(key, iv)
	if err != nil {
		return nil, err
	}
	defer m.Close()
	m.Write(msg)
	return m.Sum(nil), nil
}

// Verify recomputes the tag of msg under key and iv and compares it with tag
// in constant time.
func Verify(key, iv, msg, tag []byte) error {
	sum, err := Sum(key, iv, msg)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(sum, tag) != 1 {
		return ErrAuthentication
	}
	return nil
}
