package mode

import (
	goCipher "crypto/cipher"

	"github.com/aacfactory/ciphers/internal/subtle"
)

// Counter mode: keystream block = E(nonce‖counter). The counter occupies the
// full block, increments big endian once per block and wraps modulo the
// block's bit width without error. The same worker serves both directions.

type ctr struct {
	b         goCipher.Block
	blockSize int
	counter   []byte
	ks        []byte
}

func newCTR(b goCipher.Block, iv []byte) *ctr {
	x := &ctr{
		b:         b,
		blockSize: b.BlockSize(),
		counter:   make([]byte, b.BlockSize()),
		ks:        make([]byte, b.BlockSize()),
	}
	copy(x.counter, iv)
	return x
}

func (x *ctr) blocks(dst, src []byte) {
	for len(src) > 0 {
		x.b.Encrypt(x.ks, x.counter)
		subtle.XORBytes(dst[:x.blockSize], src[:x.blockSize], x.ks)
		x.increment()
		src = src[x.blockSize:]
		dst = dst[x.blockSize:]
	}
}

func (x *ctr) tail(dst, src []byte) {
	x.b.Encrypt(x.ks, x.counter)
	subtle.XORBytes(dst, src, x.ks)
	x.increment()
}

func (x *ctr) increment() {
	for i := len(x.counter) - 1; i >= 0; i-- {
		x.counter[i]++
		if x.counter[i] != 0 {
			break
		}
	}
}

func (x *ctr) wipe() {
	subtle.Wipe(x.counter)
	subtle.Wipe(x.ks)
}
