package zuc

import (
	"encoding/binary"

	"github.com/aacfactory/ciphers/internal/alias"
)

// Cipher is the ZUC-128 confidentiality engine. It implements
// crypto/cipher.Stream: the keystream is consumed word at a time in big
// endian order and XORed onto the data, so encryption and decryption are the
// same operation. Leftover keystream bytes carry over between calls, making
// the output independent of chunking. Not safe for concurrent use.
type Cipher struct {
	s  *state
	ks [4]byte
	n  int
}

// NewCipher returns a keystream cipher under a 128-bit key and 128-bit iv.
func NewCipher(key, iv []byte) (*Cipher, error) {
	s, err := newState(key, iv)
	if err != nil {
		return nil, err
	}
	return &Cipher{s: s}, nil
}

// NewEEA3 returns a cipher with the 128-EEA3 iv expansion of the LTE
// confidentiality profile. Only the low 5 bits of bearer are significant.
func NewEEA3(count uint32, bearer, direction uint8, ck []byte) (*Cipher, error) {
	var iv [IVSize]byte
	binary.BigEndian.PutUint32(iv[0:4], count)
	iv[4] = bearer<<3 | (direction&1)<<2
	copy(iv[8:13], iv[0:5])
	return NewCipher(ck, iv[:])
}

// XORKeyStream XORs src with the keystream into dst. dst must be at least as
// long as src and must not inexactly overlap it.
func (c *Cipher) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("zuc: output smaller than input")
	}
	if alias.InexactOverlap(dst[:len(src)], src) {
		panic("zuc: invalid buffer overlap")
	}
	// drain the leftover keystream bytes first
	for c.n > 0 && len(src) > 0 {
		dst[0] = src[0] ^ c.ks[4-c.n]
		dst = dst[1:]
		src = src[1:]
		c.n--
	}
	for len(src) >= 4 {
		z := c.s.nextWord()
		binary.BigEndian.PutUint32(dst[:4], binary.BigEndian.Uint32(src[:4])^z)
		dst = dst[4:]
		src = src[4:]
	}
	if len(src) > 0 {
		binary.BigEndian.PutUint32(c.ks[:], c.s.nextWord())
		for i := range src {
			dst[i] = src[i] ^ c.ks[i]
		}
		c.n = 4 - len(src)
	}
}

// Close wipes the generator state and buffered keystream.
func (c *Cipher) Close() {
	c.s.wipe()
	c.ks = [4]byte{}
	c.n = 0
}

// Generate produces n raw keystream bytes under key and iv.
func Generate(key, iv []byte, n int) ([]byte, error) {
	c, err := NewCipher(key, iv)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	out := make([]byte, n)
	c.XORKeyStream(out, out)
	return out, nil
}

// Encrypt XORs data with the keystream under key and iv in one shot.
func Encrypt(key, iv, data []byte) ([]byte, error) {
	c, err := NewCipher(key, iv)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	out := make([]byte, len(data))
	c.XORKeyStream(out, data)
	return out, nil
}

// Decrypt is the inverse of Encrypt; the cipher is symmetric.
func Decrypt(key, iv, data []byte) ([]byte, error) {
	return Encrypt(key, iv, data)
}
