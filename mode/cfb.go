package mode

import (
	goCipher "crypto/cipher"

	"github.com/aacfactory/ciphers/internal/subtle"
)

// Cipher feedback (full block segments): the feedback register starts at the
// IV, every step encrypts it into a keystream block and the produced
// ciphertext block becomes the next register value. One corrupted ciphertext
// block therefore resynchronizes after a single block.

type cfb struct {
	b         goCipher.Block
	blockSize int
	reg       []byte
	ks        []byte
	decrypt   bool
}

func newCFB(b goCipher.Block, iv []byte, decrypt bool) *cfb {
	x := &cfb{
		b:         b,
		blockSize: b.BlockSize(),
		reg:       make([]byte, b.BlockSize()),
		ks:        make([]byte, b.BlockSize()),
		decrypt:   decrypt,
	}
	copy(x.reg, iv)
	return x
}

func (x *cfb) blocks(dst, src []byte) {
	for len(src) > 0 {
		x.b.Encrypt(x.ks, x.reg)
		subtle.XORBytes(dst[:x.blockSize], src[:x.blockSize], x.ks)
		if x.decrypt {
			copy(x.reg, src[:x.blockSize])
		} else {
			copy(x.reg, dst[:x.blockSize])
		}
		src = src[x.blockSize:]
		dst = dst[x.blockSize:]
	}
}

func (x *cfb) tail(dst, src []byte) {
	x.b.Encrypt(x.ks, x.reg)
	subtle.XORBytes(dst, src, x.ks)
}

func (x *cfb) wipe() {
	subtle.Wipe(x.reg)
	subtle.Wipe(x.ks)
}
