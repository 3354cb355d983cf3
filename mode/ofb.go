package mode

import (
	goCipher "crypto/cipher"

	"github.com/aacfactory/ciphers/internal/subtle"
)

// Output feedback: the keystream is the iterated encryption of the IV,
// independent of plaintext and ciphertext, so encryption and decryption are
// the same operation. Reusing an IV under the same key reuses the keystream.

type ofb struct {
	b         goCipher.Block
	blockSize int
	reg       []byte
}

func newOFB(b goCipher.Block, iv []byte) *ofb {
	x := &ofb{
		b:         b,
		blockSize: b.BlockSize(),
		reg:       make([]byte, b.BlockSize()),
	}
	copy(x.reg, iv)
	return x
}

func (x *ofb) blocks(dst, src []byte) {
	for len(src) > 0 {
		x.b.Encrypt(x.reg, x.reg)
		subtle.XORBytes(dst[:x.blockSize], src[:x.blockSize], x.reg)
		src = src[x.blockSize:]
		dst = dst[x.blockSize:]
	}
}

func (x *ofb) tail(dst, src []byte) {
	x.b.Encrypt(x.reg, x.reg)
	subtle.XORBytes(dst, src, x.reg)
}

func (x *ofb) wipe() {
	subtle.Wipe(x.reg)
}
