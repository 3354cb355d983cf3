package mode

import (
	goCipher "crypto/cipher"

	"github.com/aacfactory/ciphers/internal/subtle"
)

// Cipher block chaining: ciphertext[i] = E(plaintext[i] XOR ciphertext[i-1]),
// with the IV standing in for ciphertext[-1]. Decryption mirrors it, so a
// single corrupted ciphertext block damages exactly two plaintext blocks.

type cbcEncrypter struct {
	b         goCipher.Block
	blockSize int
	chain     []byte
	tmp       []byte
}

func newCBCEncrypter(b goCipher.Block, iv []byte) *cbcEncrypter {
	x := &cbcEncrypter{
		b:         b,
		blockSize: b.BlockSize(),
		chain:     make([]byte, b.BlockSize()),
		tmp:       make([]byte, b.BlockSize()),
	}
	copy(x.chain, iv)
	return x
}

func (x *cbcEncrypter) blocks(dst, src []byte) {
	for len(src) > 0 {
		subtle.XORBytes(x.tmp, src[:x.blockSize], x.chain)
		x.b.Encrypt(x.chain, x.tmp)
		copy(dst[:x.blockSize], x.chain)
		src = src[x.blockSize:]
		dst = dst[x.blockSize:]
	}
}

func (x *cbcEncrypter) wipe() {
	subtle.Wipe(x.chain)
	subtle.Wipe(x.tmp)
}

type cbcDecrypter struct {
	b         goCipher.Block
	blockSize int
	chain     []byte
	tmp       []byte
}

func newCBCDecrypter(b goCipher.Block, iv []byte) *cbcDecrypter {
	x := &cbcDecrypter{
		b:         b,
		blockSize: b.BlockSize(),
		chain:     make([]byte, b.BlockSize()),
		tmp:       make([]byte, b.BlockSize()),
	}
	copy(x.chain, iv)
	return x
}

func (x *cbcDecrypter) blocks(dst, src []byte) {
	for len(src) > 0 {
		x.b.Decrypt(x.tmp, src[:x.blockSize])
		subtle.XORBytes(dst[:x.blockSize], x.tmp, x.chain)
		copy(x.chain, src[:x.blockSize])
		src = src[x.blockSize:]
		dst = dst[x.blockSize:]
	}
}

func (x *cbcDecrypter) wipe() {
	subtle.Wipe(x.chain)
	subtle.Wipe(x.tmp)
}
